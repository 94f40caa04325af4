// Package engine owns the popover presentation lifecycle: it runs the
// anchor/size/placement pipeline from internal/core and serializes
// presentation and dismissal requests through a small state machine.
//
// The engine is single-threaded by contract: every method, and every
// Animator completion, must run on the host's event loop. The state
// machine's transition guard is the sole concurrency-safety mechanism.
package engine

import (
	"crypto/rand"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/jmylchreest/popkit/internal/core"
	"github.com/jmylchreest/popkit/internal/geometry"
)

// State is the lifecycle state of a presentation cycle.
type State int

const (
	StateIdle State = iota
	StatePresenting
	StateVisible
	StateDismissing
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StatePresenting:
		return "presenting"
	case StateVisible:
		return "visible"
	case StateDismissing:
		return "dismissing"
	default:
		return "idle"
	}
}

// PresentRequest carries everything a presentation needs.
type PresentRequest struct {
	// Content is the capability being presented. Required.
	Content ContentProvider

	// Anchor is the rectangle the popover points at, in the coordinate
	// space it was captured in.
	Anchor core.Anchor

	// Space is the container's coordinate space, used to resolve the
	// anchor. Nil means the anchor is already container-relative.
	Space core.Space

	// Container describes the presentation surface.
	Container core.Container

	// Class is the host's device class.
	Class core.DeviceClass

	// Sizes are the override candidates for size negotiation; the
	// intrinsic candidate is read from Content, not from here.
	Sizes core.SizePreference

	// Direction is the caller's preferred arrow direction.
	// DirectionNone leaves the choice to the solver.
	Direction core.Direction

	// Animated selects an animated appearance transition.
	Animated bool
}

// Snapshot is a read-only view of the current presentation cycle.
type Snapshot struct {
	State       State
	Cycle       string
	Placement   core.Placement
	PresentedAt time.Time
}

// Engine presents at most one popover at a time.
type Engine struct {
	logger   *slog.Logger
	animator Animator

	presentDuration time.Duration
	dismissDuration time.Duration

	state       State
	cycle       string
	presentedAt time.Time

	content     ContentProvider
	unsubscribe func()

	anchor     core.Anchor
	space      core.Space
	anchorRect geometry.Rect
	container  core.Container
	class      core.DeviceClass
	sizes      core.SizePreference
	requested  core.Direction
	placement  core.Placement

	modal       bool
	passthrough []Region

	hooks       Hooks
	onState     func(State)
	onPlacement func(core.Placement, bool)

	cancelTransition func()
}

// New creates an idle engine. Transitions complete synchronously until
// an animator is configured.
func New(logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{logger: logger}
}

// SetAnimator configures the transition driver and durations. A nil
// animator or non-positive duration degrades to synchronous completion.
func (e *Engine) SetAnimator(a Animator, present, dismiss time.Duration) {
	e.animator = a
	e.presentDuration = present
	e.dismissDuration = dismiss
}

// SetHooks installs the delegate callbacks.
func (e *Engine) SetHooks(h Hooks) {
	e.hooks = h
}

// SetModal switches modal presentation: while modal, every tap outside
// the popover dismisses, passthrough views included.
func (e *Engine) SetModal(modal bool) {
	e.modal = modal
}

// Modal returns whether presentation is modal.
func (e *Engine) Modal() bool { return e.modal }

// SetPassthroughViews replaces the passthrough set. The slice is copied;
// the change takes effect at the next classification, so an in-flight
// event never observes a half-updated set.
func (e *Engine) SetPassthroughViews(views []Region) {
	e.passthrough = slices.Clone(views)
}

// OnStateChange registers a callback invoked after every state
// transition.
func (e *Engine) OnStateChange(fn func(State)) {
	e.onState = fn
}

// OnPlacementChange registers a callback invoked whenever the placement
// is computed or recomputed. The bool reports whether the host should
// animate the frame change.
func (e *Engine) OnPlacementChange(fn func(core.Placement, bool)) {
	e.onPlacement = fn
}

// State returns the current lifecycle state.
func (e *Engine) State() State { return e.state }

// Placement returns the placement of the current cycle. Only meaningful
// outside StateIdle.
func (e *Engine) Placement() core.Placement { return e.placement }

// Snapshot returns the current cycle for status surfaces.
func (e *Engine) Snapshot() Snapshot {
	return Snapshot{
		State:       e.state,
		Cycle:       e.cycle,
		Placement:   e.placement,
		PresentedAt: e.presentedAt,
	}
}

// Present starts a presentation cycle. It is allowed only from idle;
// any other state returns ErrAlreadyPresenting and leaves the existing
// presentation untouched.
func (e *Engine) Present(req PresentRequest) error {
	if e.state != StateIdle {
		e.logger.Warn("present rejected", "state", e.state.String(), "cycle", e.cycle)
		return ErrAlreadyPresenting
	}
	if req.Content == nil {
		return ErrNoContentProvider
	}

	anchorRect, err := core.ResolveAnchor(req.Anchor, req.Space)
	if err != nil {
		return fmt.Errorf("resolve anchor: %w", err)
	}

	sizes := req.Sizes
	sizes.Intrinsic = geometry.Size{}
	if intrinsic, ok := req.Content.PreferredContentSize(); ok {
		sizes.Intrinsic = intrinsic
	}

	id, err := ulid.New(ulid.Timestamp(time.Now()), rand.Reader)
	if err != nil {
		return fmt.Errorf("generate cycle id: %w", err)
	}

	e.cycle = id.String()
	e.presentedAt = time.Now()
	e.content = req.Content
	e.anchor = req.Anchor
	e.space = req.Space
	e.anchorRect = anchorRect
	e.container = req.Container
	e.class = req.Class
	e.sizes = sizes
	e.requested = req.Direction

	preferred := core.NegotiateSize(sizes, e.class, e.container)
	e.placement = core.Place(anchorRect, preferred, e.container, e.requested)
	if e.container.Available().IsEmpty() {
		e.logger.Warn("degenerate container, placing minimal frame", "cycle", e.cycle)
	}

	e.unsubscribe = req.Content.OnContentSizeChanged(e.contentSizeChanged)

	e.logger.Debug("presenting popover",
		"cycle", e.cycle,
		"anchor", anchorRect,
		"direction", e.placement.Direction.String(),
		"frame", e.placement.Frame,
		"shrunk", e.placement.Shrunk,
	)

	e.setState(StatePresenting)
	e.notifyPlacement(req.Animated)
	e.transition(req.Animated, e.presentDuration, e.finishPresent)
	return nil
}

// Dismiss ends the current presentation. It is a no-op while idle or
// already dismissing, and while the ShouldDismiss hook vetoes it.
// Dismissing during the appearance transition cancels the transition
// and begins the disappearance immediately.
func (e *Engine) Dismiss(animated bool) {
	switch e.state {
	case StateIdle, StateDismissing:
		return
	}

	if e.hooks.ShouldDismiss != nil && !e.hooks.ShouldDismiss() {
		e.logger.Debug("dismiss vetoed by hook", "cycle", e.cycle)
		return
	}
	if e.hooks.WillDismiss != nil {
		e.hooks.WillDismiss()
	}

	e.cancelPendingTransition()
	e.logger.Debug("dismissing popover", "cycle", e.cycle)
	e.setState(StateDismissing)
	e.transition(animated, e.dismissDuration, e.finishDismiss)
}

// SetPreferredContentSize records an explicit content size override and
// re-runs placement in place. Allowed only while visible.
func (e *Engine) SetPreferredContentSize(size geometry.Size, animated bool) error {
	if e.state != StateVisible {
		return ErrNotVisible
	}
	e.sizes.Override = &size
	e.replace(animated)
	return nil
}

// Reflow recomputes placement against updated container bounds with the
// previous size preferences. The host forwards external layout events
// (rotation, monitor changes) here; the engine never assumes it receives
// them automatically. Allowed only while visible.
func (e *Engine) Reflow(container core.Container) error {
	if e.state != StateVisible {
		return ErrNotVisible
	}
	e.container = container

	// Re-resolve the anchor against the updated hierarchy; if the
	// originating view went away mid-cycle, keep the last good anchor.
	if rect, err := core.ResolveAnchor(e.anchor, e.space); err == nil {
		e.anchorRect = rect
	} else {
		e.logger.Warn("reflow kept stale anchor", "cycle", e.cycle, "error", err)
	}

	e.replace(true)
	return nil
}

// Classify routes a pointer event against the current popover frame and
// a point-in-time copy of the passthrough set. Events arriving outside
// the visible state are forwarded untouched.
func (e *Engine) Classify(p geometry.Point) core.Route {
	if e.state != StateVisible {
		return core.RoutePassthrough
	}

	regions := make([]geometry.Rect, 0, len(e.passthrough))
	for _, v := range e.passthrough {
		if v != nil {
			regions = append(regions, v.Frame())
		}
	}
	return core.Classify(p, e.placement.Frame, regions, e.modal)
}

// HandleTap classifies a pointer event and, when the decision is a
// dismissal, feeds it back into the state machine.
func (e *Engine) HandleTap(p geometry.Point) core.Route {
	route := e.Classify(p)
	if route == core.RouteDismiss {
		e.Dismiss(true)
	}
	return route
}

// contentSizeChanged is the provider's size-change subscription; while
// visible it behaves like an implicit resize request.
func (e *Engine) contentSizeChanged(size geometry.Size) {
	if e.state != StateVisible {
		return
	}
	e.sizes.Intrinsic = size
	e.replace(true)
}

// replace re-runs negotiation and placement for the current cycle.
func (e *Engine) replace(animated bool) {
	if e.content != nil {
		if intrinsic, ok := e.content.PreferredContentSize(); ok {
			e.sizes.Intrinsic = intrinsic
		}
	}

	preferred := core.NegotiateSize(e.sizes, e.class, e.container)
	e.placement = core.Place(e.anchorRect, preferred, e.container, e.requested)

	e.logger.Debug("placement updated",
		"cycle", e.cycle,
		"direction", e.placement.Direction.String(),
		"frame", e.placement.Frame,
		"shrunk", e.placement.Shrunk,
	)
	e.notifyPlacement(animated)
}

// transition schedules done via the animator, or completes synchronously
// when animation is disabled or unavailable.
func (e *Engine) transition(animated bool, d time.Duration, done func()) {
	if !animated || e.animator == nil || d <= 0 {
		done()
		return
	}
	e.cancelTransition = e.animator.Animate(d, func() {
		e.cancelTransition = nil
		done()
	})
}

func (e *Engine) notifyPlacement(animated bool) {
	if e.onPlacement != nil {
		e.onPlacement(e.placement, animated)
	}
}

func (e *Engine) cancelPendingTransition() {
	if e.cancelTransition != nil {
		e.cancelTransition()
		e.cancelTransition = nil
	}
}

func (e *Engine) finishPresent() {
	if e.state != StatePresenting {
		return
	}
	e.setState(StateVisible)
}

func (e *Engine) finishDismiss() {
	if e.state != StateDismissing {
		return
	}

	if e.unsubscribe != nil {
		e.unsubscribe()
		e.unsubscribe = nil
	}
	e.content = nil
	e.placement = core.Placement{}
	e.anchorRect = geometry.Rect{}

	e.setState(StateIdle)
	if e.hooks.DidDismiss != nil {
		e.hooks.DidDismiss()
	}
}

func (e *Engine) setState(s State) {
	if e.state == s {
		return
	}
	e.logger.Debug("state changed", "cycle", e.cycle, "from", e.state.String(), "to", s.String())
	e.state = s
	if e.onState != nil {
		e.onState(s)
	}
}
