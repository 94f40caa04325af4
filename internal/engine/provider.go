package engine

import "github.com/jmylchreest/popkit/internal/geometry"

// Region is anything with a frame in container coordinates. Popover
// content views and passthrough views both satisfy it.
type Region interface {
	Frame() geometry.Rect
}

// ContentProvider is the capability a content source must offer to be
// presented. The engine never assumes a deeper hierarchy of provider
// types: a plain view, a scrollable list, or a nested navigation stack
// all present through this same surface.
//
// The engine holds the provider as a non-owning reference and must not
// assume it stays alive between calls; providers commonly hold a
// back-reference to the engine to request resizes.
type ContentProvider interface {
	// View returns the content region.
	View() Region

	// PreferredContentSize returns the content's intrinsic size. The
	// second result is false when the content has no opinion.
	PreferredContentSize() (geometry.Size, bool)

	// OnContentSizeChanged registers a callback invoked when the
	// intrinsic size changes, returning a cancel func that removes the
	// subscription.
	OnContentSizeChanged(fn func(geometry.Size)) (cancel func())
}

// Hooks are the optional delegate callbacks the state machine consults
// during dismissal. They may observe the engine but never mutate its
// geometry.
type Hooks struct {
	// ShouldDismiss is consulted before a dismissal begins; returning
	// false turns the request into a no-op.
	ShouldDismiss func() bool

	// WillDismiss fires after a dismissal is accepted, before the
	// disappearance transition starts.
	WillDismiss func()

	// DidDismiss fires once the engine has returned to idle.
	DidDismiss func()
}

// StaticContent is a minimal ContentProvider around a fixed region and
// an optional intrinsic size. Hosts use it for content that never
// resizes itself; tests use it as a stub.
type StaticContent struct {
	Body      Region
	Intrinsic geometry.Size

	subs   map[int]func(geometry.Size)
	nextID int
}

// NewStaticContent creates a provider for the given region. A zero
// intrinsic size means "no opinion".
func NewStaticContent(body Region, intrinsic geometry.Size) *StaticContent {
	return &StaticContent{Body: body, Intrinsic: intrinsic}
}

// View returns the content region.
func (s *StaticContent) View() Region { return s.Body }

// PreferredContentSize returns the configured intrinsic size.
func (s *StaticContent) PreferredContentSize() (geometry.Size, bool) {
	return s.Intrinsic, s.Intrinsic.Positive()
}

// OnContentSizeChanged registers a size-change subscriber.
func (s *StaticContent) OnContentSizeChanged(fn func(geometry.Size)) (cancel func()) {
	if s.subs == nil {
		s.subs = make(map[int]func(geometry.Size))
	}
	id := s.nextID
	s.nextID++
	s.subs[id] = fn
	return func() { delete(s.subs, id) }
}

// SetIntrinsic updates the intrinsic size and notifies subscribers.
func (s *StaticContent) SetIntrinsic(size geometry.Size) {
	s.Intrinsic = size
	for _, fn := range s.subs {
		fn(size)
	}
}

// StaticRegion is a Region backed by a stored rectangle.
type StaticRegion geometry.Rect

// Frame returns the rectangle.
func (r StaticRegion) Frame() geometry.Rect { return geometry.Rect(r) }
