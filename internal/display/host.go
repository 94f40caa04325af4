package display

import (
	"log/slog"
	"time"

	"github.com/diamondburned/gotk4/pkg/glib/v2"
	"github.com/diamondburned/gotk4/pkg/gtk/v4"

	"github.com/jmylchreest/popkit/internal/config"
	"github.com/jmylchreest/popkit/internal/core"
	"github.com/jmylchreest/popkit/internal/engine"
	"github.com/jmylchreest/popkit/internal/geometry"
)

// GLibAnimator schedules transition completion on the GTK main loop so
// engine state changes land on the same thread as widget updates.
type GLibAnimator struct{}

// Animate implements engine.Animator using a one-shot glib timeout.
func (GLibAnimator) Animate(d time.Duration, done func()) func() {
	ms := uint(d.Milliseconds())
	if ms == 0 {
		ms = 1
	}

	handle := glib.TimeoutAdd(ms, func() {
		done()
	})

	return func() {
		glib.SourceRemove(handle)
	}
}

// Host connects an engine to a popover window and screen.
type Host struct {
	engine *engine.Engine
	window *PopoverWindow
	screen *Screen
	cfg    *config.Config
	logger *slog.Logger
}

// NewHost creates a host for the given application and configuration.
func NewHost(app *gtk.Application, cfg *config.Config, logger *slog.Logger) *Host {
	if logger == nil {
		logger = slog.Default()
	}

	h := &Host{
		cfg:    cfg,
		logger: logger,
	}

	h.engine = engine.New(logger)
	h.engine.SetAnimator(GLibAnimator{}, cfg.PresentDuration(), cfg.DismissDuration())
	h.engine.SetModal(cfg.Behavior.Modal)

	h.window = NewPopoverWindow(app, logger)
	h.screen = NewScreen(0, logger)
	h.screen.Attach(h.window.window)

	h.window.OnTap(func(p geometry.Point) {
		route := h.engine.HandleTap(p)
		h.logger.Debug("tap routed", "point", p, "route", route.String())
	})

	h.window.OnHover(func(hovering bool) {
		h.logger.Debug("pointer hover", "hovering", hovering)
	})

	h.engine.OnPlacementChange(func(p core.Placement, animated bool) {
		h.window.ApplyPlacement(p)
	})

	h.engine.OnStateChange(func(s engine.State) {
		switch s {
		case engine.StatePresenting:
			h.window.Show()
		case engine.StateIdle:
			h.window.Hide()
		}
	})

	return h
}

// Engine returns the underlying presentation engine.
func (h *Host) Engine() *engine.Engine {
	return h.engine
}

// Container builds the current container from the screen bounds and
// display settings. Falls back to a zero container when no monitor
// information is available.
func (h *Host) Container() core.Container {
	bounds, ok := h.screen.Bounds()
	if !ok {
		h.logger.Warn("no screen bounds available")
	}
	return h.cfg.Container(bounds)
}

// Present shows text content anchored at the given rect in screen
// coordinates.
func (h *Host) Present(text string, anchor geometry.Rect, direction core.Direction) error {
	h.window.SetText(text)

	c := h.Container()
	return h.engine.Present(engine.PresentRequest{
		Content:   engine.NewStaticContent(engine.StaticRegion(geometry.Rect{}), geometry.Size{}),
		Anchor:    core.Anchor{Rect: anchor},
		Container: c,
		Class:     h.cfg.ResolveDeviceClass(c.Bounds),
		Direction: direction,
		Animated:  h.cfg.Animation.Enabled,
	})
}

// Dismiss hides the popover.
func (h *Host) Dismiss() {
	h.engine.Dismiss(h.cfg.Animation.Enabled)
}

// HandleDisplayChange refreshes the screen and reflows any visible
// popover against the new bounds.
func (h *Host) HandleDisplayChange() {
	h.screen.Refresh()
	h.engine.Reflow(h.Container())
}

// ApplyConfig swaps in a freshly loaded configuration.
func (h *Host) ApplyConfig(cfg *config.Config) {
	h.cfg = cfg
	h.engine.SetAnimator(GLibAnimator{}, cfg.PresentDuration(), cfg.DismissDuration())
	h.engine.SetModal(cfg.Behavior.Modal)

	h.engine.Reflow(h.Container())
	h.logger.Info("configuration applied")
}

// Close destroys the popover window.
func (h *Host) Close() {
	h.window.Close()
}
