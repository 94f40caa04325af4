// Package main is the entry point for the popkitd popover daemon.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"sync/atomic"
	"syscall"

	"github.com/diamondburned/gotk4-adwaita/pkg/adw"
	"github.com/diamondburned/gotk4/pkg/glib/v2"

	"github.com/jmylchreest/popkit/internal/config"
	"github.com/jmylchreest/popkit/internal/core"
	"github.com/jmylchreest/popkit/internal/dbus"
	"github.com/jmylchreest/popkit/internal/display"
	"github.com/jmylchreest/popkit/internal/geometry"
)

const appID = "io.github.jmylchreest.popkitd"

var (
	// Build-time variables
	version = "dev"
)

func main() {
	anchorSpec := flag.String("anchor", "20,20,16,16", "Anchor rect as x,y,w,h in screen coordinates")
	text := flag.String("text", "popkit", "Popover text content")
	directionSpec := flag.String("direction", "", "Requested direction (up, down, left, right)")
	configPath := flag.String("config", "", "Path to config file")
	showVersion := flag.Bool("version", false, "Show version and exit")
	flag.Parse()

	if *showVersion {
		println("popkitd version", version)
		os.Exit(0)
	}

	// Set up structured logging
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
	slog.SetDefault(logger)

	logger.Info("starting popkitd", "version", version)

	anchor, err := parseRect(*anchorSpec)
	if err != nil {
		logger.Error("invalid anchor", "error", err)
		os.Exit(1)
	}

	direction, err := core.ParseDirection(*directionSpec)
	if err != nil {
		logger.Error("invalid direction", "error", err)
		os.Exit(1)
	}

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// Create the libadwaita application
	app := adw.NewApplication(appID, 0)

	// Shared state between GTK main loop and signal handlers
	var (
		host           *display.Host
		displayMonitor *dbus.DisplayMonitor
		configWatcher  *config.Watcher
		running        atomic.Bool
	)

	// Set up signal handling for graceful shutdown
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		sig := <-sigCh
		logger.Info("received signal, shutting down", "signal", sig)

		glib.IdleAdd(func() {
			if running.Load() {
				if configWatcher != nil {
					_ = configWatcher.Stop()
				}
				if displayMonitor != nil {
					_ = displayMonitor.Stop()
				}
				if host != nil {
					host.Close()
				}
				app.Quit()
			}
		})
	}()

	// Handle application activation
	app.ConnectActivate(func() {
		if running.Load() {
			logger.Warn("application already running")
			return
		}
		running.Store(true)

		host = display.NewHost(&app.Application, cfg, logger)

		// Reflow whenever the compositor reports a monitor change
		displayMonitor = dbus.NewDisplayMonitor(logger)
		displayMonitor.SetChangeHandler(func() {
			glib.IdleAdd(func() {
				host.HandleDisplayChange()
			})
		})
		if err := displayMonitor.Start(); err != nil {
			logger.Warn("failed to start display monitor", "error", err)
		}

		// Hot-reload the config file
		configWatcher, err = config.NewWatcher(*configPath, func(newCfg *config.Config) {
			glib.IdleAdd(func() {
				host.ApplyConfig(newCfg)
			})
		})
		if err != nil {
			logger.Warn("failed to create config watcher", "error", err)
		} else if err := configWatcher.Start(); err != nil {
			logger.Warn("failed to start config watcher", "error", err)
		}

		if err := host.Present(*text, anchor, direction); err != nil {
			logger.Error("failed to present popover", "error", err)
			app.Quit()
			return
		}

		logger.Info("popkitd ready", "anchor", anchor, "direction", direction.String())
	})

	// Handle shutdown
	app.ConnectShutdown(func() {
		logger.Info("application shutting down")
		if configWatcher != nil {
			_ = configWatcher.Stop()
		}
		if displayMonitor != nil {
			_ = displayMonitor.Stop()
		}
		running.Store(false)
	})

	// Run the application
	status := app.Run(nil)

	if status != 0 {
		logger.Error("application exited with error", "status", status)
		os.Exit(status)
	}

	logger.Info("popkitd stopped")
}

// parseRect parses "x,y,w,h" into a rect.
func parseRect(s string) (geometry.Rect, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return geometry.Rect{}, fmt.Errorf("want x,y,w,h, got %q", s)
	}

	vals := make([]int, 4)
	for i, p := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return geometry.Rect{}, err
		}
		vals[i] = v
	}

	return geometry.NewRect(vals[0], vals[1], vals[2], vals[3]), nil
}
