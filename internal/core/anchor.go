package core

import (
	"errors"

	"github.com/jmylchreest/popkit/internal/geometry"
)

// ErrUnresolvableAnchor is returned when an anchor's coordinate space is
// not connected to the container's space, e.g. the originating view is
// not attached to any presentable hierarchy. Callers recover by
// supplying a fallback anchor or aborting the presentation.
var ErrUnresolvableAnchor = errors.New("anchor coordinate space not reachable from container")

// maxSpaceDepth bounds the parent walk so a corrupted hierarchy with a
// cycle resolves to ErrUnresolvableAnchor instead of spinning.
const maxSpaceDepth = 256

// Space is a coordinate space in a view hierarchy. Frame is the space's
// rectangle expressed in its parent's coordinates; the root's frame is
// absolute. Parent returns nil at the root.
type Space interface {
	Parent() Space
	Frame() geometry.Rect
}

// Anchor is the rectangle a popover points at, together with the
// coordinate space it is defined in. A nil space means the rectangle is
// already container-relative.
type Anchor struct {
	Rect geometry.Rect
	In   Space
}

// FrameSpace is a basic Space backed by a stored frame. Hosts that do not
// have their own space type can build hierarchies out of these.
type FrameSpace struct {
	parent Space
	frame  geometry.Rect
}

// NewFrameSpace creates a space with the given parent and frame. A nil
// parent makes it a root space.
func NewFrameSpace(parent Space, frame geometry.Rect) *FrameSpace {
	return &FrameSpace{parent: parent, frame: frame}
}

// Parent returns the parent space, or nil at the root.
func (s *FrameSpace) Parent() Space { return s.parent }

// Frame returns the space's frame in parent coordinates.
func (s *FrameSpace) Frame() geometry.Rect { return s.frame }

// SetFrame updates the space's frame in parent coordinates.
func (s *FrameSpace) SetFrame(frame geometry.Rect) { s.frame = frame }

// ResolveAnchor converts the anchor rectangle into coordinates relative
// to the given container space. Degenerate (zero-area) anchors resolve
// normally; negative dimensions are treated as zero. When the anchor's
// space and the container do not share a root, ErrUnresolvableAnchor is
// returned.
func ResolveAnchor(a Anchor, container Space) (geometry.Rect, error) {
	rect := normalizeAnchorRect(a.Rect)

	if a.In == nil {
		return rect, nil
	}
	if container == nil {
		return geometry.Rect{}, ErrUnresolvableAnchor
	}

	anchorOrigin, anchorRoot, ok := originToRoot(a.In)
	if !ok {
		return geometry.Rect{}, ErrUnresolvableAnchor
	}
	containerOrigin, containerRoot, ok := originToRoot(container)
	if !ok {
		return geometry.Rect{}, ErrUnresolvableAnchor
	}
	if anchorRoot != containerRoot {
		return geometry.Rect{}, ErrUnresolvableAnchor
	}

	offset := anchorOrigin.Sub(containerOrigin)
	return rect.Translate(offset.X, offset.Y), nil
}

// originToRoot accumulates the absolute origin of a space by walking the
// parent chain, returning the origin, the root space, and whether the
// walk terminated within maxSpaceDepth.
func originToRoot(s Space) (geometry.Point, Space, bool) {
	var origin geometry.Point
	for depth := 0; ; depth++ {
		if depth >= maxSpaceDepth {
			return geometry.Point{}, nil, false
		}
		origin = origin.Add(s.Frame().Origin())
		parent := s.Parent()
		if parent == nil {
			return origin, s, true
		}
		s = parent
	}
}

// normalizeAnchorRect clamps negative dimensions to zero so a malformed
// anchor degrades to a point anchor instead of corrupting placement.
func normalizeAnchorRect(r geometry.Rect) geometry.Rect {
	if r.Width < 0 {
		r.Width = 0
	}
	if r.Height < 0 {
		r.Height = 0
	}
	return r
}
