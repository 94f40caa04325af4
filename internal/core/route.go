package core

import "github.com/jmylchreest/popkit/internal/geometry"

// Route is the classification of a pointer event against a visible
// popover.
type Route int

const (
	// RouteInside means the event landed in the popover frame; the
	// content handles it and the popover stays.
	RouteInside Route = iota
	// RoutePassthrough means the event landed in a passthrough region;
	// it is forwarded to the underlying content and the popover stays.
	RoutePassthrough
	// RouteDismiss means the event should dismiss the popover.
	RouteDismiss
)

// String returns the route name.
func (r Route) String() string {
	switch r {
	case RouteInside:
		return "inside"
	case RoutePassthrough:
		return "passthrough"
	default:
		return "dismiss"
	}
}

// Classify routes a pointer event. Rules, in order: a point inside the
// popover frame is RouteInside regardless of anything else; under modal
// presentation every outside point dismisses, passthrough regions
// included; otherwise a point inside any passthrough region is
// forwarded; everything else dismisses.
func Classify(p geometry.Point, frame geometry.Rect, passthrough []geometry.Rect, modal bool) Route {
	if p.In(frame) {
		return RouteInside
	}
	if modal {
		return RouteDismiss
	}
	for _, region := range passthrough {
		if p.In(region) {
			return RoutePassthrough
		}
	}
	return RouteDismiss
}
