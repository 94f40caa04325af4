package core

import (
	"fmt"
	"strings"

	"github.com/jmylchreest/popkit/internal/geometry"
)

// Direction is the side of the anchor the popover body is placed on.
type Direction int

const (
	// DirectionNone means no arrow: the popover is not attached to a
	// visible side of the anchor. As a request it means "solver's
	// choice"; as a result it marks an off-screen anchor.
	DirectionNone Direction = iota
	DirectionUp
	DirectionDown
	DirectionLeft
	DirectionRight
)

// String returns the direction name.
func (d Direction) String() string {
	switch d {
	case DirectionUp:
		return "up"
	case DirectionDown:
		return "down"
	case DirectionLeft:
		return "left"
	case DirectionRight:
		return "right"
	default:
		return "none"
	}
}

// MarshalText renders the direction name in JSON and YAML output.
func (d Direction) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// ParseDirection parses a direction name. Empty input and "none"/"any"
// leave the choice to the solver.
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "none", "any":
		return DirectionNone, nil
	case "up", "above":
		return DirectionUp, nil
	case "down", "below":
		return DirectionDown, nil
	case "left":
		return DirectionLeft, nil
	case "right":
		return DirectionRight, nil
	default:
		return DirectionNone, fmt.Errorf("unknown direction %q", s)
	}
}

// Placement is the solver's result: the chosen arrow direction, the
// final frame in container coordinates, and whether the frame had to be
// shrunk from the preferred size to fit.
type Placement struct {
	Direction Direction     `json:"direction" yaml:"direction"`
	Frame     geometry.Rect `json:"frame" yaml:"frame"`
	Shrunk    bool          `json:"shrunk" yaml:"shrunk"`
}

// fallbackOrder breaks ties between directions with equal available
// space.
var fallbackOrder = [4]Direction{DirectionDown, DirectionUp, DirectionRight, DirectionLeft}

// Place selects an arrow direction and computes the popover frame for
// the given anchor (in container coordinates) and preferred size.
//
// The solver degrades gracefully rather than failing: a direction that
// fully fits the preferred size is used when one exists, otherwise the
// roomiest direction is used and the frame shrinks along the constrained
// axis. An anchor fully outside the container yields DirectionNone with
// an edge-adjacent frame. A zero-area container yields a minimal 1×1
// frame.
func Place(anchor geometry.Rect, preferred geometry.Size, c Container, requested Direction) Placement {
	avail := c.Available()
	if avail.IsEmpty() {
		return Placement{
			Direction: DirectionNone,
			Frame:     geometry.RectAt(c.Bounds.Origin(), geometry.Size{Width: 1, Height: 1}),
			Shrunk:    true,
		}
	}

	preferred = preferred.Floor(1)
	anchor = normalizeAnchorRect(anchor)

	if !anchorTouches(anchor, avail) {
		return placeOffscreen(anchor, preferred, avail)
	}

	space := sideSpace(anchor, avail, c.Gap)
	dir := chooseDirection(space, preferred, requested)
	return buildFrame(dir, anchor, preferred, avail, space, c.Gap)
}

// anchorTouches reports whether any part of the anchor lies within the
// available region. Degenerate anchors are tested as points.
func anchorTouches(anchor, avail geometry.Rect) bool {
	if anchor.IsEmpty() {
		return avail.Contains(anchor.X, anchor.Y)
	}
	return anchor.Intersects(avail)
}

// sideSpace computes the room on each side of the anchor within the
// available region, net of the anchor gap. Values floor at zero.
type sides struct {
	up, down, left, right int
}

func sideSpace(anchor, avail geometry.Rect, gap int) sides {
	s := sides{
		up:    anchor.Y - avail.Y - gap,
		down:  avail.Bottom() - anchor.Bottom() - gap,
		left:  anchor.X - avail.X - gap,
		right: avail.Right() - anchor.Right() - gap,
	}
	if s.up < 0 {
		s.up = 0
	}
	if s.down < 0 {
		s.down = 0
	}
	if s.left < 0 {
		s.left = 0
	}
	if s.right < 0 {
		s.right = 0
	}
	return s
}

func (s sides) along(d Direction) int {
	switch d {
	case DirectionUp:
		return s.up
	case DirectionDown:
		return s.down
	case DirectionLeft:
		return s.left
	case DirectionRight:
		return s.right
	default:
		return 0
	}
}

// needed returns the preferred extent along the main axis of d.
func needed(d Direction, preferred geometry.Size) int {
	if d == DirectionLeft || d == DirectionRight {
		return preferred.Width
	}
	return preferred.Height
}

// chooseDirection picks the arrow direction: the requested direction
// when it has any room, else the roomiest direction that fully fits the
// preferred size, else the roomiest direction overall. Ties resolve in
// the order down, up, right, left.
func chooseDirection(space sides, preferred geometry.Size, requested Direction) Direction {
	if requested != DirectionNone && space.along(requested) > 0 {
		return requested
	}

	best := DirectionNone
	for _, d := range fallbackOrder {
		if space.along(d) < needed(d, preferred) {
			continue
		}
		if best == DirectionNone || space.along(d) > space.along(best) {
			best = d
		}
	}
	if best != DirectionNone {
		return best
	}

	// Nothing fits fully; take the most room.
	best = fallbackOrder[0]
	for _, d := range fallbackOrder[1:] {
		if space.along(d) > space.along(best) {
			best = d
		}
	}
	return best
}

// buildFrame computes the final frame for the chosen direction, shrinking
// along the main axis when the side cannot hold the preferred size and
// clamping the cross axis into the available region.
func buildFrame(dir Direction, anchor geometry.Rect, preferred geometry.Size, avail geometry.Rect, space sides, gap int) Placement {
	size := preferred
	shrunk := false

	main := space.along(dir)
	if main < 1 {
		main = 1
	}
	switch dir {
	case DirectionLeft, DirectionRight:
		if size.Width > main {
			size.Width = main
			shrunk = true
		}
		if size.Height > avail.Height {
			size.Height = avail.Height
			shrunk = true
		}
	default:
		if size.Height > main {
			size.Height = main
			shrunk = true
		}
		if size.Width > avail.Width {
			size.Width = avail.Width
			shrunk = true
		}
	}

	center := anchor.Center()
	var frame geometry.Rect
	switch dir {
	case DirectionDown:
		frame = geometry.NewRect(center.X-size.Width/2, anchor.Bottom()+gap, size.Width, size.Height)
	case DirectionUp:
		frame = geometry.NewRect(center.X-size.Width/2, anchor.Y-gap-size.Height, size.Width, size.Height)
	case DirectionRight:
		frame = geometry.NewRect(anchor.Right()+gap, center.Y-size.Height/2, size.Width, size.Height)
	case DirectionLeft:
		frame = geometry.NewRect(anchor.X-gap-size.Width, center.Y-size.Height/2, size.Width, size.Height)
	}

	frame = frame.ClampInto(avail)
	return Placement{Direction: dir, Frame: frame, Shrunk: shrunk}
}

// placeOffscreen handles an anchor fully outside the container: the
// popover keeps its preferred size and sits flush against the container
// edge nearest the anchor, with no arrow. No shrink-to-fit is attempted
// for this branch.
func placeOffscreen(anchor geometry.Rect, preferred geometry.Size, avail geometry.Rect) Placement {
	center := anchor.Center()

	// Start centered on the anchor's projection onto the available
	// region, then clamp flush to the nearest edges.
	frame := geometry.NewRect(center.X-preferred.Width/2, center.Y-preferred.Height/2, preferred.Width, preferred.Height)
	frame = frame.ClampInto(avail)

	return Placement{Direction: DirectionNone, Frame: frame, Shrunk: false}
}
