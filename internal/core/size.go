package core

import "github.com/jmylchreest/popkit/internal/geometry"

// Size negotiation constants. The base width and the per-class default
// heights match the historical platform defaults hosts expect.
const (
	baseContentWidth     = 320
	compactDefaultHeight = 400
	largeDefaultHeight   = 800
)

// legacySentinel is the tablet-only default (320×1100) that older
// content sources report when no explicit size was ever set. On compact
// hosts it must not be honored as an override.
var legacySentinel = geometry.Size{Width: 320, Height: 1100}

// SizePreference is the ordered record of candidate content sizes a
// negotiation considers. Nil pointers mean "absent"; Intrinsic is absent
// when either dimension is zero.
type SizePreference struct {
	// LargeOverride is a device-class-specific override consulted only
	// on large-format hosts.
	LargeOverride *geometry.Size

	// Override is an explicitly requested content size.
	Override *geometry.Size

	// Intrinsic is the size the content reports for itself.
	Intrinsic geometry.Size
}

// NegotiateSize derives the effective preferred content size from the
// candidate cascade, first satisfied rule wins:
//
//  1. Large-format host with a class-specific override: use it.
//  2. Compact host with an override that is not the legacy 320×1100
//     sentinel: use it.
//  3. Intrinsic size non-zero in both dimensions: use it.
//  4. Computed default: base width minus container margins and insets
//     (at least 1), height 800 on large-format hosts, 400 otherwise.
//
// The sentinel check in rule 2 exists because honoring the legacy
// default verbatim produces a popover taller than a compact screen.
func NegotiateSize(pref SizePreference, class DeviceClass, c Container) geometry.Size {
	if class == DeviceLarge && pref.LargeOverride != nil {
		return *pref.LargeOverride
	}

	if class != DeviceLarge && pref.Override != nil && *pref.Override != legacySentinel {
		return *pref.Override
	}

	if pref.Intrinsic.Positive() {
		return pref.Intrinsic
	}

	width := baseContentWidth - c.EdgeSpacing()
	if width < 1 {
		width = 1
	}
	height := compactDefaultHeight
	if class == DeviceLarge {
		height = largeDefaultHeight
	}
	return geometry.Size{Width: width, Height: height}
}
