package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/jmylchreest/popkit/internal/core"
	"github.com/jmylchreest/popkit/internal/geometry"
)

var solveOpts struct {
	anchor    string
	container string
	size      string
	large     string
	intrinsic string
	class     string
	direction string
	format    string
}

var solveCmd = &cobra.Command{
	Use:   "solve",
	Short: "Resolve a popover placement for an anchor",
	Long: `Resolve a popover placement against a container.

The anchor is given in container coordinates. Sizes run through the
normal negotiation cascade; margins, insets, and the anchor gap come
from the config file.

Examples:
  # Place a popover near an anchor in a 320x480 container
  popkit solve --anchor 150,50,20,20 --container 320x480

  # Request a direction and an explicit content size
  popkit solve --anchor 10,10,16,16 --container 800x600 --size 200x150 --direction up

  # Machine-readable output
  popkit solve --anchor 150,50,20,20 --container 320x480 --format json`,
	RunE: runSolve,
}

func init() {
	rootCmd.AddCommand(solveCmd)

	solveCmd.Flags().StringVarP(&solveOpts.anchor, "anchor", "a", "",
		"Anchor rect as x,y,w,h in container coordinates (required)")
	solveCmd.Flags().StringVarP(&solveOpts.container, "container", "c", "",
		"Container size as WxH (required)")
	solveCmd.Flags().StringVarP(&solveOpts.size, "size", "s", "",
		"Explicit content size override as WxH")
	solveCmd.Flags().StringVar(&solveOpts.large, "large-size", "",
		"Large-format content size override as WxH")
	solveCmd.Flags().StringVar(&solveOpts.intrinsic, "intrinsic", "",
		"Intrinsic content size as WxH")
	solveCmd.Flags().StringVar(&solveOpts.class, "class", "",
		"Device class (auto, compact, large; default from config)")
	solveCmd.Flags().StringVarP(&solveOpts.direction, "direction", "d", "",
		"Requested direction (up, down, left, right; empty lets space decide)")
	solveCmd.Flags().StringVarP(&solveOpts.format, "format", "f", "text",
		"Output format (text, json, yaml)")

	solveCmd.MarkFlagRequired("anchor")
	solveCmd.MarkFlagRequired("container")
}

func runSolve(cmd *cobra.Command, args []string) error {
	anchorRect, err := parseRect(solveOpts.anchor)
	if err != nil {
		return fmt.Errorf("invalid --anchor: %w", err)
	}

	bounds, err := parseBounds(solveOpts.container)
	if err != nil {
		return fmt.Errorf("invalid --container: %w", err)
	}

	pref := core.SizePreference{}
	if solveOpts.size != "" {
		s, err := parseSize(solveOpts.size)
		if err != nil {
			return fmt.Errorf("invalid --size: %w", err)
		}
		pref.Override = &s
	}
	if solveOpts.large != "" {
		s, err := parseSize(solveOpts.large)
		if err != nil {
			return fmt.Errorf("invalid --large-size: %w", err)
		}
		pref.LargeOverride = &s
	}
	if solveOpts.intrinsic != "" {
		s, err := parseSize(solveOpts.intrinsic)
		if err != nil {
			return fmt.Errorf("invalid --intrinsic: %w", err)
		}
		pref.Intrinsic = s
	}

	requested, err := core.ParseDirection(solveOpts.direction)
	if err != nil {
		return fmt.Errorf("invalid --direction: %w", err)
	}

	c := cfg.Container(bounds)

	class := cfg.ResolveDeviceClass(bounds)
	switch strings.ToLower(solveOpts.class) {
	case "", "auto":
	case "compact":
		class = core.DeviceCompact
	case "large":
		class = core.DeviceLarge
	default:
		return fmt.Errorf("invalid --class %q", solveOpts.class)
	}

	size := core.NegotiateSize(pref, class, c)
	placement := core.Place(anchorRect, size, c, requested)

	return writePlacement(placement, size, class)
}

// solveResult is the output document for the solve command.
type solveResult struct {
	Direction core.Direction   `json:"direction" yaml:"direction"`
	Frame     geometry.Rect    `json:"frame" yaml:"frame"`
	Shrunk    bool             `json:"shrunk" yaml:"shrunk"`
	Size      geometry.Size    `json:"negotiated_size" yaml:"negotiated_size"`
	Class     core.DeviceClass `json:"device_class" yaml:"device_class"`
}

func writePlacement(p core.Placement, size geometry.Size, class core.DeviceClass) error {
	result := solveResult{
		Direction: p.Direction,
		Frame:     p.Frame,
		Shrunk:    p.Shrunk,
		Size:      size,
		Class:     class,
	}

	switch solveOpts.format {
	case "json":
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(result)

	case "yaml":
		enc := yaml.NewEncoder(os.Stdout)
		defer enc.Close()
		return enc.Encode(result)

	case "text":
		fmt.Printf("direction: %s\n", p.Direction)
		fmt.Printf("frame:     %d,%d %dx%d\n", p.Frame.X, p.Frame.Y, p.Frame.Width, p.Frame.Height)
		fmt.Printf("shrunk:    %v\n", p.Shrunk)
		fmt.Printf("size:      %dx%d (%s)\n", size.Width, size.Height, class)
		return nil

	default:
		return fmt.Errorf("invalid --format %q", solveOpts.format)
	}
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

// parseSize parses "WxH" into a size.
func parseSize(s string) (geometry.Size, error) {
	parts := strings.SplitN(s, "x", 2)
	if len(parts) != 2 {
		return geometry.Size{}, fmt.Errorf("want WxH, got %q", s)
	}

	w, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return geometry.Size{}, err
	}
	h, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return geometry.Size{}, err
	}

	return geometry.Size{Width: w, Height: h}, nil
}

// parseBounds parses "WxH" into a rect at the origin.
func parseBounds(s string) (geometry.Rect, error) {
	size, err := parseSize(s)
	if err != nil {
		return geometry.Rect{}, err
	}
	return geometry.RectAt(geometry.Point{}, size), nil
}
