package display

import (
	"log/slog"
	"unsafe"

	layershell "github.com/diamondburned/gotk4-layer-shell/pkg/gtk4layershell"
	"github.com/diamondburned/gotk4/pkg/core/glib"
	"github.com/diamondburned/gotk4/pkg/gdk/v4"
	"github.com/diamondburned/gotk4/pkg/gtk/v4"

	"github.com/jmylchreest/popkit/internal/geometry"
)

// Screen tracks the output the popover containers are derived from.
type Screen struct {
	display *gdk.Display
	monitor int // 1-indexed, 0 means default
	logger  *slog.Logger
}

// NewScreen creates a screen tracker. monitor selects a specific output
// (1-indexed); 0 uses the first available.
func NewScreen(monitor int, logger *slog.Logger) *Screen {
	if logger == nil {
		logger = slog.Default()
	}
	return &Screen{
		display: gdk.DisplayGetDefault(),
		monitor: monitor,
		logger:  logger,
	}
}

// Bounds returns the geometry of the selected monitor as a rect with
// origin (0, 0). Returns false when no monitor information is available.
func (s *Screen) Bounds() (geometry.Rect, bool) {
	m := s.Monitor()
	if m == nil {
		return geometry.Rect{}, false
	}

	geom := m.Geometry()
	return geometry.NewRect(0, 0, geom.Width(), geom.Height()), true
}

// Monitor returns the configured monitor, or the first available one.
func (s *Screen) Monitor() *gdk.Monitor {
	if s.display == nil {
		return nil
	}

	monitors := s.display.Monitors()
	if monitors == nil || monitors.NItems() == 0 {
		s.logger.Warn("no monitors list available")
		return nil
	}

	index := uint(0)
	if s.monitor > 0 {
		index = uint(s.monitor - 1)
		if index >= monitors.NItems() {
			s.logger.Warn("configured monitor not available, using first",
				"configured", s.monitor,
				"available", monitors.NItems(),
			)
			index = 0
		}
	}

	obj := monitors.Item(index)
	if obj == nil {
		return nil
	}

	return wrapMonitor(obj)
}

// wrapMonitor wraps a coreglib.Object as a gdk.Monitor.
// This is necessary because gotk4 doesn't expose the wrapMonitor function.
func wrapMonitor(obj *glib.Object) *gdk.Monitor {
	if obj == nil {
		return nil
	}
	// The gdk.Monitor struct embeds a *coreglib.Object, so we can create
	// one by casting the native pointer. This is how gotk4 does it internally.
	type monitor struct {
		_ [0]func()
		*glib.Object
	}
	m := &monitor{Object: obj}
	return (*gdk.Monitor)(unsafe.Pointer(m))
}

// Attach configures a window to appear on the selected monitor.
func (s *Screen) Attach(window *gtk.Window) {
	m := s.Monitor()
	if m == nil {
		return
	}
	layershell.SetMonitor(window, m)
}

// Refresh should be called when the monitor configuration changes.
func (s *Screen) Refresh() {
	s.display = gdk.DisplayGetDefault()
	if s.display == nil {
		s.logger.Warn("no display available after monitor change")
		return
	}

	monitors := s.display.Monitors()
	if monitors != nil {
		s.logger.Info("monitor configuration changed", "count", monitors.NItems())
	}
}
