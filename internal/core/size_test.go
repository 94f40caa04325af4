package core

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jmylchreest/popkit/internal/geometry"
)

func sizePtr(w, h int) *geometry.Size {
	return &geometry.Size{Width: w, Height: h}
}

func testContainer() Container {
	return Container{Bounds: geometry.NewRect(0, 0, 1024, 768)}
}

func TestNegotiateSize_LargeOverrideWinsOverIntrinsic(t *testing.T) {
	pref := SizePreference{
		LargeOverride: sizePtr(600, 600),
		Intrinsic:     geometry.Size{Width: 200, Height: 200},
	}

	got := NegotiateSize(pref, DeviceLarge, testContainer())
	assert.Equal(t, geometry.Size{Width: 600, Height: 600}, got)
}

func TestNegotiateSize_LargeOverrideIgnoredOnCompact(t *testing.T) {
	pref := SizePreference{
		LargeOverride: sizePtr(600, 600),
		Intrinsic:     geometry.Size{Width: 200, Height: 200},
	}

	got := NegotiateSize(pref, DeviceCompact, testContainer())
	assert.Equal(t, geometry.Size{Width: 200, Height: 200}, got)
}

func TestNegotiateSize_CompactOverride(t *testing.T) {
	pref := SizePreference{
		Override:  sizePtr(280, 350),
		Intrinsic: geometry.Size{Width: 200, Height: 200},
	}

	got := NegotiateSize(pref, DeviceCompact, testContainer())
	assert.Equal(t, geometry.Size{Width: 280, Height: 350}, got)
}

func TestNegotiateSize_SentinelOverrideSkippedOnCompact(t *testing.T) {
	pref := SizePreference{
		Override:  sizePtr(320, 1100),
		Intrinsic: geometry.Size{Width: 250, Height: 300},
	}

	got := NegotiateSize(pref, DeviceCompact, testContainer())
	assert.Equal(t, geometry.Size{Width: 250, Height: 300}, got, "legacy sentinel must fall through to intrinsic")
}

func TestNegotiateSize_SentinelWithoutIntrinsicFallsToDefault(t *testing.T) {
	pref := SizePreference{Override: sizePtr(320, 1100)}

	got := NegotiateSize(pref, DeviceCompact, testContainer())
	assert.Equal(t, geometry.Size{Width: 320, Height: 400}, got)
}

func TestNegotiateSize_IntrinsicRequiresBothDimensions(t *testing.T) {
	pref := SizePreference{Intrinsic: geometry.Size{Width: 300, Height: 0}}

	got := NegotiateSize(pref, DeviceCompact, testContainer())
	assert.Equal(t, geometry.Size{Width: 320, Height: 400}, got)
}

func TestNegotiateSize_DefaultCompact(t *testing.T) {
	got := NegotiateSize(SizePreference{}, DeviceCompact, testContainer())
	assert.Equal(t, geometry.Size{Width: 320, Height: 400}, got)
}

func TestNegotiateSize_DefaultLarge(t *testing.T) {
	got := NegotiateSize(SizePreference{}, DeviceLarge, testContainer())
	assert.Equal(t, geometry.Size{Width: 320, Height: 800}, got)
}

func TestNegotiateSize_DefaultSubtractsEdgeSpacing(t *testing.T) {
	c := Container{
		Bounds: geometry.NewRect(0, 0, 1024, 768),
		Margin: geometry.EdgeAll(10),
		Inset:  geometry.Edges{Left: 5, Right: 5},
	}

	got := NegotiateSize(SizePreference{}, DeviceCompact, c)
	assert.Equal(t, geometry.Size{Width: 320 - 20 - 10, Height: 400}, got)
}

func TestNegotiateSize_DefaultWidthNeverBelowOne(t *testing.T) {
	c := Container{
		Bounds: geometry.NewRect(0, 0, 1024, 768),
		Margin: geometry.EdgeAll(200),
	}

	got := NegotiateSize(SizePreference{}, DeviceCompact, c)
	assert.Equal(t, 1, got.Width)
}

func TestClassForWidth(t *testing.T) {
	assert.Equal(t, DeviceCompact, ClassForWidth(480, 768))
	assert.Equal(t, DeviceLarge, ClassForWidth(768, 768))
	assert.Equal(t, DeviceCompact, ClassForWidth(1024, 0), "zero threshold disables large class")
}
