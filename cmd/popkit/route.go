package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/popkit/internal/core"
	"github.com/jmylchreest/popkit/internal/geometry"
)

var routeOpts struct {
	point       string
	frame       string
	passthrough []string
	modal       bool
}

var routeCmd = &cobra.Command{
	Use:   "route",
	Short: "Classify a tap point against a popover frame",
	Long: `Classify a tap point against a visible popover frame.

Points inside the frame route to the content. Outside points route to a
passthrough view when one contains the point, otherwise they dismiss.
Modal popovers dismiss on any outside tap.

Examples:
  popkit route --point 50,60 --frame 40,40,100,80
  popkit route --point 5,5 --frame 40,40,100,80 --passthrough 0,0,20,20
  popkit route --point 5,5 --frame 40,40,100,80 --passthrough 0,0,20,20 --modal`,
	RunE: runRoute,
}

func init() {
	rootCmd.AddCommand(routeCmd)

	routeCmd.Flags().StringVarP(&routeOpts.point, "point", "p", "",
		"Tap point as x,y in container coordinates (required)")
	routeCmd.Flags().StringVarP(&routeOpts.frame, "frame", "f", "",
		"Popover frame as x,y,w,h (required)")
	routeCmd.Flags().StringArrayVar(&routeOpts.passthrough, "passthrough", nil,
		"Passthrough view rect as x,y,w,h (repeatable)")
	routeCmd.Flags().BoolVarP(&routeOpts.modal, "modal", "m", false,
		"Treat the popover as modal")

	routeCmd.MarkFlagRequired("point")
	routeCmd.MarkFlagRequired("frame")
}

func runRoute(cmd *cobra.Command, args []string) error {
	point, err := parsePoint(routeOpts.point)
	if err != nil {
		return fmt.Errorf("invalid --point: %w", err)
	}

	frame, err := parseRect(routeOpts.frame)
	if err != nil {
		return fmt.Errorf("invalid --frame: %w", err)
	}

	passthrough := make([]geometry.Rect, 0, len(routeOpts.passthrough))
	for _, s := range routeOpts.passthrough {
		r, err := parseRect(s)
		if err != nil {
			return fmt.Errorf("invalid --passthrough: %w", err)
		}
		passthrough = append(passthrough, r)
	}

	route := core.Classify(point, frame, passthrough, routeOpts.modal)
	fmt.Println(route)
	return nil
}

// parsePoint parses "x,y" into a point.
func parsePoint(s string) (geometry.Point, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return geometry.Point{}, fmt.Errorf("want x,y, got %q", s)
	}

	x, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return geometry.Point{}, err
	}
	y, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return geometry.Point{}, err
	}

	return geometry.Point{X: x, Y: y}, nil
}
