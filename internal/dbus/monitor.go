// Package dbus observes display configuration changes on the session bus.
package dbus

import (
	"fmt"
	"log/slog"

	"github.com/godbus/dbus/v5"
)

const (
	displayConfigInterface = "org.gnome.Mutter.DisplayConfig"
	displayConfigPath      = "/org/gnome/Mutter/DisplayConfig"
	monitorsChangedMember  = "MonitorsChanged"
)

// DisplayChangeHandler is invoked when the monitor layout changes.
type DisplayChangeHandler func()

// DisplayMonitor listens for MonitorsChanged signals from the compositor.
// Popover frames go stale when the output geometry changes, so the daemon
// uses this to trigger a reflow against the new bounds.
type DisplayMonitor struct {
	conn   *dbus.Conn
	logger *slog.Logger

	onChange DisplayChangeHandler
}

// NewDisplayMonitor creates a new display configuration monitor.
func NewDisplayMonitor(logger *slog.Logger) *DisplayMonitor {
	if logger == nil {
		logger = slog.Default()
	}
	return &DisplayMonitor{
		logger: logger,
	}
}

// SetChangeHandler sets the callback for display configuration changes.
func (m *DisplayMonitor) SetChangeHandler(handler DisplayChangeHandler) {
	m.onChange = handler
}

// Start begins listening for display configuration signals.
func (m *DisplayMonitor) Start() error {
	conn, err := dbus.SessionBus()
	if err != nil {
		return fmt.Errorf("failed to connect to session bus: %w", err)
	}
	m.conn = conn

	err = conn.AddMatchSignal(
		dbus.WithMatchInterface(displayConfigInterface),
		dbus.WithMatchObjectPath(displayConfigPath),
		dbus.WithMatchMember(monitorsChangedMember),
	)
	if err != nil {
		return fmt.Errorf("failed to add match rule: %w", err)
	}

	m.logger.Info("started display configuration monitor")

	go m.processSignals()

	return nil
}

// processSignals reads and processes D-Bus signals.
func (m *DisplayMonitor) processSignals() {
	ch := make(chan *dbus.Signal, 16)
	m.conn.Signal(ch)

	for sig := range ch {
		if sig.Name != displayConfigInterface+"."+monitorsChangedMember {
			continue
		}

		m.logger.Debug("display configuration changed")

		if m.onChange != nil {
			m.onChange()
		}
	}
}

// Stop stops the monitor.
func (m *DisplayMonitor) Stop() error {
	if m.conn != nil {
		return m.conn.Close()
	}
	return nil
}
