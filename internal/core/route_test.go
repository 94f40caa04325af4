package core

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jmylchreest/popkit/internal/geometry"
)

func TestClassify_InsideNeverDismisses(t *testing.T) {
	frame := geometry.NewRect(50, 50, 100, 100)
	p := geometry.Point{X: 60, Y: 60}

	assert.Equal(t, RouteInside, Classify(p, frame, nil, false))
	assert.Equal(t, RouteInside, Classify(p, frame, nil, true), "modal flag is irrelevant inside the frame")
}

func TestClassify_ModalIgnoresPassthrough(t *testing.T) {
	frame := geometry.NewRect(50, 50, 100, 100)
	passthrough := []geometry.Rect{geometry.NewRect(0, 0, 30, 30)}
	p := geometry.Point{X: 10, Y: 10}

	assert.Equal(t, RoutePassthrough, Classify(p, frame, passthrough, false))
	assert.Equal(t, RouteDismiss, Classify(p, frame, passthrough, true))
}

func TestClassify_OutsideDismisses(t *testing.T) {
	frame := geometry.NewRect(50, 50, 100, 100)

	assert.Equal(t, RouteDismiss, Classify(geometry.Point{X: 0, Y: 0}, frame, nil, false))
}

func TestClassify_PassthroughChecksEveryRegion(t *testing.T) {
	frame := geometry.NewRect(200, 200, 50, 50)
	passthrough := []geometry.Rect{
		geometry.NewRect(0, 0, 10, 10),
		geometry.NewRect(100, 100, 10, 10),
	}

	assert.Equal(t, RoutePassthrough, Classify(geometry.Point{X: 105, Y: 105}, frame, passthrough, false))
	assert.Equal(t, RouteDismiss, Classify(geometry.Point{X: 50, Y: 50}, frame, passthrough, false))
}

func TestClassify_FrameWinsOverOverlappingPassthrough(t *testing.T) {
	frame := geometry.NewRect(50, 50, 100, 100)
	passthrough := []geometry.Rect{frame}

	assert.Equal(t, RouteInside, Classify(geometry.Point{X: 60, Y: 60}, frame, passthrough, false))
}
