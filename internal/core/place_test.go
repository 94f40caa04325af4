package core

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jmylchreest/popkit/internal/geometry"
)

func plainContainer(w, h int) Container {
	return Container{Bounds: geometry.NewRect(0, 0, w, h)}
}

func TestPlace_PrefersDown(t *testing.T) {
	anchor := geometry.NewRect(200, 50, 40, 20)
	p := Place(anchor, geometry.Size{Width: 100, Height: 100}, plainContainer(480, 800), DirectionNone)

	assert.Equal(t, DirectionDown, p.Direction)
	assert.False(t, p.Shrunk)
	assert.Equal(t, 70, p.Frame.Y, "frame starts at anchor bottom")
	assert.Equal(t, geometry.Size{Width: 100, Height: 100}, p.Frame.Size())
}

func TestPlace_FallsBackUpWhenNoRoomBelow(t *testing.T) {
	anchor := geometry.NewRect(200, 700, 40, 20)
	p := Place(anchor, geometry.Size{Width: 100, Height: 100}, plainContainer(480, 800), DirectionNone)

	assert.Equal(t, DirectionUp, p.Direction)
	assert.Equal(t, 600, p.Frame.Y)
	assert.False(t, p.Shrunk)
}

func TestPlace_RequestedDirectionHonored(t *testing.T) {
	anchor := geometry.NewRect(200, 100, 40, 20)
	p := Place(anchor, geometry.Size{Width: 100, Height: 50}, plainContainer(480, 800), DirectionRight)

	assert.Equal(t, DirectionRight, p.Direction)
	assert.Equal(t, 240, p.Frame.X)
}

func TestPlace_RequestedDirectionWithoutRoomIgnored(t *testing.T) {
	// Anchor flush against the left edge: no room to the left at all.
	anchor := geometry.NewRect(0, 100, 40, 20)
	p := Place(anchor, geometry.Size{Width: 100, Height: 50}, plainContainer(480, 800), DirectionLeft)

	assert.NotEqual(t, DirectionLeft, p.Direction)
}

func TestPlace_RequestedDirectionShrinksWhenTight(t *testing.T) {
	// Some room above, but less than preferred: the explicit request
	// still wins and the frame shrinks.
	anchor := geometry.NewRect(200, 60, 40, 20)
	p := Place(anchor, geometry.Size{Width: 100, Height: 100}, plainContainer(480, 800), DirectionUp)

	assert.Equal(t, DirectionUp, p.Direction)
	assert.True(t, p.Shrunk)
	assert.Equal(t, 60, p.Frame.Height)
	assert.Equal(t, 0, p.Frame.Y)
}

func TestPlace_ShrinksInRoomiestDirection(t *testing.T) {
	// Nothing fits fully: 90px above and below, 140px left and right.
	// The roomiest side (right) wins and both axes shrink to fit.
	anchor := geometry.NewRect(140, 90, 40, 20)
	p := Place(anchor, geometry.Size{Width: 200, Height: 300}, plainContainer(320, 200), DirectionNone)

	assert.Equal(t, DirectionRight, p.Direction)
	assert.True(t, p.Shrunk)
	assert.Equal(t, geometry.NewRect(180, 0, 140, 200), p.Frame)
}

func TestPlace_ShrinkMarksResult(t *testing.T) {
	anchor := geometry.NewRect(140, 100, 40, 20)
	c := plainContainer(320, 200)
	p := Place(anchor, geometry.Size{Width: 100, Height: 300}, c, DirectionNone)

	assert.True(t, p.Shrunk)
	assert.True(t, c.Bounds.ContainsRect(p.Frame), "shrunk frame stays inside container")
}

func TestPlace_TieBreaksDownFirst(t *testing.T) {
	// Anchor dead center: equal space on all four sides, nothing fits
	// fully, so the roomiest tie resolves to down.
	anchor := geometry.NewRect(190, 190, 20, 20)
	p := Place(anchor, geometry.Size{Width: 500, Height: 500}, plainContainer(400, 400), DirectionNone)

	assert.Equal(t, DirectionDown, p.Direction)
	assert.True(t, p.Shrunk)
}

func TestPlace_ContainmentProperty(t *testing.T) {
	c := Container{Bounds: geometry.NewRect(0, 0, 320, 480), Margin: geometry.EdgeAll(8), Gap: 4}
	anchors := []geometry.Rect{
		{X: 10, Y: 10, Width: 30, Height: 30},
		{X: 280, Y: 10, Width: 30, Height: 30},
		{X: 10, Y: 440, Width: 30, Height: 30},
		{X: 280, Y: 440, Width: 30, Height: 30},
		{X: 150, Y: 240, Width: 0, Height: 0},
		{X: 0, Y: 0, Width: 320, Height: 480},
	}
	prefs := []geometry.Size{
		{Width: 100, Height: 100},
		{Width: 320, Height: 480},
		{Width: 600, Height: 900},
		{Width: 1, Height: 1},
	}

	for _, anchor := range anchors {
		for _, pref := range prefs {
			p := Place(anchor, pref, c, DirectionNone)
			assert.True(t, c.Bounds.ContainsRect(p.Frame),
				"anchor=%+v pref=%+v frame=%+v escaped container", anchor, pref, p.Frame)
		}
	}
}

func TestPlace_DegenerateAnchorIsPointAnchor(t *testing.T) {
	anchor := geometry.NewRect(160, 100, 0, 0)
	p := Place(anchor, geometry.Size{Width: 50, Height: 50}, plainContainer(320, 480), DirectionNone)

	assert.Equal(t, DirectionDown, p.Direction)
	assert.Equal(t, 100, p.Frame.Y)
	assert.Equal(t, 135, p.Frame.X, "centered on the point")
}

func TestPlace_OffscreenAnchor(t *testing.T) {
	anchor := geometry.NewRect(-500, 100, 40, 20)
	p := Place(anchor, geometry.Size{Width: 100, Height: 100}, plainContainer(320, 480), DirectionNone)

	assert.Equal(t, DirectionNone, p.Direction)
	assert.False(t, p.Shrunk)
	assert.Equal(t, 0, p.Frame.X, "flush against the nearest (left) edge")
	assert.Equal(t, geometry.Size{Width: 100, Height: 100}, p.Frame.Size())
}

func TestPlace_DegenerateContainer(t *testing.T) {
	p := Place(geometry.NewRect(10, 10, 5, 5), geometry.Size{Width: 100, Height: 100}, plainContainer(0, 0), DirectionNone)

	assert.Equal(t, DirectionNone, p.Direction)
	assert.Equal(t, geometry.NewRect(0, 0, 1, 1), p.Frame)
	assert.True(t, p.Shrunk)
}

func TestPlace_EndToEndScenario(t *testing.T) {
	// Anchor (100,50,40,40) in a 320×480 container with 10px margins and
	// a 10px gap, preferred 300×300: below wins, the frame sits under the
	// anchor and is recentred into the 20px of horizontal slack.
	c := Container{
		Bounds: geometry.NewRect(0, 0, 320, 480),
		Margin: geometry.EdgeAll(10),
		Gap:    10,
	}
	p := Place(geometry.NewRect(100, 50, 40, 40), geometry.Size{Width: 300, Height: 300}, c, DirectionNone)

	assert.Equal(t, DirectionDown, p.Direction)
	assert.Equal(t, geometry.NewRect(10, 100, 300, 300), p.Frame)
	assert.False(t, p.Shrunk)
}

func TestParseDirection(t *testing.T) {
	for input, want := range map[string]Direction{
		"":      DirectionNone,
		"none":  DirectionNone,
		"any":   DirectionNone,
		"up":    DirectionUp,
		"Down":  DirectionDown,
		"LEFT":  DirectionLeft,
		"right": DirectionRight,
	} {
		got, err := ParseDirection(input)
		assert.NoError(t, err)
		assert.Equal(t, want, got, "input %q", input)
	}

	_, err := ParseDirection("sideways")
	assert.Error(t, err)
}
