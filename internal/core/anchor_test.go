package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmylchreest/popkit/internal/geometry"
)

func TestResolveAnchor_NilSpaceIsContainerRelative(t *testing.T) {
	rect, err := ResolveAnchor(Anchor{Rect: geometry.NewRect(10, 20, 30, 40)}, nil)
	require.NoError(t, err)
	assert.Equal(t, geometry.NewRect(10, 20, 30, 40), rect)
}

func TestResolveAnchor_NestedSpaces(t *testing.T) {
	root := NewFrameSpace(nil, geometry.NewRect(0, 0, 1024, 768))
	container := NewFrameSpace(root, geometry.NewRect(100, 100, 800, 600))
	panel := NewFrameSpace(root, geometry.NewRect(200, 50, 300, 300))
	button := NewFrameSpace(panel, geometry.NewRect(20, 30, 100, 40))

	// Button-relative anchor: absolute origin is 200+20+5, 50+30+5;
	// container origin is 100,100.
	rect, err := ResolveAnchor(Anchor{Rect: geometry.NewRect(5, 5, 10, 10), In: button}, container)
	require.NoError(t, err)
	assert.Equal(t, geometry.NewRect(125, -15, 10, 10), rect)
}

func TestResolveAnchor_SameSpace(t *testing.T) {
	root := NewFrameSpace(nil, geometry.NewRect(0, 0, 640, 480))
	rect, err := ResolveAnchor(Anchor{Rect: geometry.NewRect(1, 2, 3, 4), In: root}, root)
	require.NoError(t, err)
	assert.Equal(t, geometry.NewRect(1, 2, 3, 4), rect)
}

func TestResolveAnchor_DisconnectedHierarchy(t *testing.T) {
	rootA := NewFrameSpace(nil, geometry.NewRect(0, 0, 100, 100))
	rootB := NewFrameSpace(nil, geometry.NewRect(0, 0, 100, 100))
	detached := NewFrameSpace(rootA, geometry.NewRect(10, 10, 50, 50))

	_, err := ResolveAnchor(Anchor{Rect: geometry.NewRect(0, 0, 5, 5), In: detached}, rootB)
	assert.ErrorIs(t, err, ErrUnresolvableAnchor)
}

func TestResolveAnchor_NilContainerWithSpace(t *testing.T) {
	root := NewFrameSpace(nil, geometry.NewRect(0, 0, 100, 100))
	_, err := ResolveAnchor(Anchor{Rect: geometry.NewRect(0, 0, 5, 5), In: root}, nil)
	assert.ErrorIs(t, err, ErrUnresolvableAnchor)
}

func TestResolveAnchor_CyclicHierarchy(t *testing.T) {
	a := NewFrameSpace(nil, geometry.NewRect(0, 0, 10, 10))
	b := NewFrameSpace(a, geometry.NewRect(1, 1, 5, 5))
	a.parent = b // corrupt the chain

	_, err := ResolveAnchor(Anchor{Rect: geometry.NewRect(0, 0, 1, 1), In: a}, b)
	assert.ErrorIs(t, err, ErrUnresolvableAnchor)
}

func TestResolveAnchor_DegenerateAnchor(t *testing.T) {
	root := NewFrameSpace(nil, geometry.NewRect(0, 0, 100, 100))
	child := NewFrameSpace(root, geometry.NewRect(40, 40, 0, 0))

	rect, err := ResolveAnchor(Anchor{Rect: geometry.NewRect(0, 0, 0, 0), In: child}, root)
	require.NoError(t, err)
	assert.Equal(t, geometry.NewRect(40, 40, 0, 0), rect)
	assert.True(t, rect.IsEmpty())
}

func TestResolveAnchor_NegativeDimensionsClampToZero(t *testing.T) {
	rect, err := ResolveAnchor(Anchor{Rect: geometry.NewRect(10, 10, -5, -5)}, nil)
	require.NoError(t, err)
	assert.Equal(t, geometry.NewRect(10, 10, 0, 0), rect)
}
