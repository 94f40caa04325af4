// Package display renders popovers as layer-shell surfaces.
package display

import (
	"log/slog"

	layershell "github.com/diamondburned/gotk4-layer-shell/pkg/gtk4layershell"
	"github.com/diamondburned/gotk4/pkg/gtk/v4"

	"github.com/jmylchreest/popkit/internal/core"
	"github.com/jmylchreest/popkit/internal/geometry"
)

// PopoverWindow is a borderless layer-shell surface positioned by a
// resolved placement. The frame is in container coordinates; the window
// is pinned to the top-left screen corner and offset with layer-shell
// margins so the two coordinate spaces coincide.
type PopoverWindow struct {
	window *gtk.Window
	logger *slog.Logger

	box   *gtk.Box
	label *gtk.Label

	onTap   func(geometry.Point)
	onHover func(hovering bool)

	frame  geometry.Rect
	closed bool
}

// NewPopoverWindow creates a hidden popover window attached to app.
func NewPopoverWindow(app *gtk.Application, logger *slog.Logger) *PopoverWindow {
	if logger == nil {
		logger = slog.Default()
	}

	w := &PopoverWindow{
		logger: logger,
	}

	w.window = gtk.NewWindow()
	w.window.SetApplication(app)
	w.window.SetDecorated(false)
	w.window.SetResizable(false)

	layershell.InitForWindow(w.window)
	layershell.SetLayer(w.window, layershell.LayerShellLayerTop)
	layershell.SetExclusiveZone(w.window, 0) // Don't reserve space
	layershell.SetKeyboardMode(w.window, layershell.LayerShellKeyboardModeNone)
	layershell.SetNamespace(w.window, "popkit-popover")

	// Pin to the top-left corner; placement offsets come in as margins.
	layershell.SetAnchor(w.window, layershell.LayerShellEdgeTop, true)
	layershell.SetAnchor(w.window, layershell.LayerShellEdgeLeft, true)

	w.buildUI()
	w.connectSignals()

	return w
}

// buildUI constructs the popover widget hierarchy.
func (w *PopoverWindow) buildUI() {
	w.box = gtk.NewBox(gtk.OrientationVertical, 6)
	w.box.AddCSSClass("popkit-popover")
	w.box.SetMarginTop(8)
	w.box.SetMarginBottom(8)
	w.box.SetMarginStart(12)
	w.box.SetMarginEnd(12)

	w.label = gtk.NewLabel("")
	w.label.AddCSSClass("popkit-content")
	w.label.SetXAlign(0)
	w.label.SetWrap(true)
	w.box.Append(w.label)

	w.window.SetChild(w.box)
}

// connectSignals sets up event handlers.
func (w *PopoverWindow) connectSignals() {
	motionCtrl := gtk.NewEventControllerMotion()
	motionCtrl.ConnectEnter(func(x, y float64) {
		if w.onHover != nil {
			w.onHover(true)
		}
	})
	motionCtrl.ConnectLeave(func() {
		if w.onHover != nil {
			w.onHover(false)
		}
	})
	w.window.AddController(motionCtrl)

	clickCtrl := gtk.NewGestureClick()
	clickCtrl.SetButton(0) // All buttons
	clickCtrl.ConnectReleased(func(nPress int, x, y float64) {
		if w.onTap == nil {
			return
		}
		// Translate the window-local click into container space.
		p := geometry.Point{
			X: w.frame.X + int(x),
			Y: w.frame.Y + int(y),
		}
		w.onTap(p)
	})
	w.window.AddController(clickCtrl)
}

// OnTap sets the callback for clicks on the popover surface. The point
// is reported in container coordinates.
func (w *PopoverWindow) OnTap(cb func(geometry.Point)) {
	w.onTap = cb
}

// OnHover sets the callback for pointer enter/leave events.
func (w *PopoverWindow) OnHover(cb func(hovering bool)) {
	w.onHover = cb
}

// SetText updates the popover's label content.
func (w *PopoverWindow) SetText(text string) {
	w.label.SetText(text)
}

// ApplyPlacement moves and resizes the window to the resolved frame.
func (w *PopoverWindow) ApplyPlacement(p core.Placement) {
	w.frame = p.Frame

	layershell.SetMargin(w.window, layershell.LayerShellEdgeLeft, p.Frame.X)
	layershell.SetMargin(w.window, layershell.LayerShellEdgeTop, p.Frame.Y)
	w.window.SetDefaultSize(p.Frame.Width, p.Frame.Height)

	w.logger.Debug("applied placement",
		"direction", p.Direction.String(),
		"frame", p.Frame,
		"shrunk", p.Shrunk)
}

// Show presents the window.
func (w *PopoverWindow) Show() {
	w.window.Present()
}

// Hide withdraws the window without destroying it.
func (w *PopoverWindow) Hide() {
	w.window.SetVisible(false)
}

// Close destroys the window.
func (w *PopoverWindow) Close() {
	if w.closed {
		return
	}
	w.closed = true
	w.window.Close()
}
