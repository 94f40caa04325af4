// Package core provides the placement, sizing, and interaction-routing
// logic for anchored popovers: pure functions over geometry values,
// independent of any display backend.
package core

import "github.com/jmylchreest/popkit/internal/geometry"

// Container describes the surface a popover is presented into.
type Container struct {
	// Bounds is the container rectangle in its own coordinate space.
	Bounds geometry.Rect

	// Margin is outer spacing kept clear around the container edge.
	Margin geometry.Edges

	// Inset is additional inner spacing (e.g. reserved bars).
	Inset geometry.Edges

	// Gap is the standoff between the anchor edge and the popover edge.
	Gap int
}

// Available returns the region placement may use: the bounds inset by
// margin and inset.
func (c Container) Available() geometry.Rect {
	return c.Bounds.Inset(c.Margin).Inset(c.Inset)
}

// EdgeSpacing returns the total horizontal margin plus inset, the amount
// subtracted from the base width when computing a default content size.
func (c Container) EdgeSpacing() int {
	return c.Margin.Horizontal() + c.Inset.Horizontal()
}

// DeviceClass partitions hosts by available screen space. Size
// negotiation rules differ between the two classes.
type DeviceClass int

const (
	// DeviceCompact is a small-format host (phone-sized surface).
	DeviceCompact DeviceClass = iota
	// DeviceLarge is a large-format host (tablet-sized surface).
	DeviceLarge
)

// String returns the class name.
func (d DeviceClass) String() string {
	if d == DeviceLarge {
		return "large"
	}
	return "compact"
}

// MarshalText implements encoding.TextMarshaler.
func (d DeviceClass) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// ClassForWidth maps a container width to a device class using the given
// threshold: widths at or above the threshold are large-format.
func ClassForWidth(width, threshold int) DeviceClass {
	if threshold > 0 && width >= threshold {
		return DeviceLarge
	}
	return DeviceCompact
}
