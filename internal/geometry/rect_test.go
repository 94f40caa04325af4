package geometry

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRect_Edges(t *testing.T) {
	r := NewRect(10, 20, 30, 40)
	assert.Equal(t, 40, r.Right())
	assert.Equal(t, 60, r.Bottom())
	assert.Equal(t, Point{X: 10, Y: 20}, r.Origin())
	assert.Equal(t, Size{Width: 30, Height: 40}, r.Size())
	assert.Equal(t, Point{X: 25, Y: 40}, r.Center())
}

func TestRect_Contains(t *testing.T) {
	r := NewRect(0, 0, 10, 10)

	assert.True(t, r.Contains(0, 0))
	assert.True(t, r.Contains(9, 9))
	assert.False(t, r.Contains(10, 5), "right edge is exclusive")
	assert.False(t, r.Contains(5, 10), "bottom edge is exclusive")
	assert.False(t, r.Contains(-1, 5))
}

func TestRect_ContainsRect(t *testing.T) {
	outer := NewRect(0, 0, 100, 100)

	assert.True(t, outer.ContainsRect(NewRect(10, 10, 20, 20)))
	assert.True(t, outer.ContainsRect(outer))
	assert.False(t, outer.ContainsRect(NewRect(90, 90, 20, 20)))
	assert.False(t, outer.ContainsRect(NewRect(-5, 0, 10, 10)))
}

func TestRect_ContainsRect_Degenerate(t *testing.T) {
	outer := NewRect(0, 0, 100, 100)

	assert.True(t, outer.ContainsRect(NewRect(50, 50, 0, 0)))
	assert.False(t, outer.ContainsRect(NewRect(150, 50, 0, 0)))
}

func TestRect_Inset(t *testing.T) {
	r := NewRect(0, 0, 100, 100).Inset(EdgeAll(10))
	assert.Equal(t, NewRect(10, 10, 80, 80), r)

	asym := NewRect(0, 0, 100, 100).Inset(Edges{Top: 1, Right: 2, Bottom: 3, Left: 4})
	assert.Equal(t, NewRect(4, 1, 94, 96), asym)
}

func TestRect_Intersect(t *testing.T) {
	a := NewRect(0, 0, 10, 10)
	b := NewRect(5, 5, 10, 10)

	assert.Equal(t, NewRect(5, 5, 5, 5), a.Intersect(b))
	assert.True(t, a.Intersects(b))

	c := NewRect(20, 20, 5, 5)
	assert.True(t, a.Intersect(c).IsEmpty())
	assert.False(t, a.Intersects(c))

	// Touching edges do not overlap.
	d := NewRect(10, 0, 5, 5)
	assert.False(t, a.Intersects(d))
}

func TestRect_ClampInto(t *testing.T) {
	bounds := NewRect(0, 0, 100, 100)

	// Already inside: unchanged.
	assert.Equal(t, NewRect(10, 10, 20, 20), NewRect(10, 10, 20, 20).ClampInto(bounds))

	// Overflow right/bottom: pulled back.
	assert.Equal(t, NewRect(80, 80, 20, 20), NewRect(95, 95, 20, 20).ClampInto(bounds))

	// Overflow left/top: pushed forward.
	assert.Equal(t, NewRect(0, 0, 20, 20), NewRect(-5, -5, 20, 20).ClampInto(bounds))

	// Larger than bounds: leading-edge aligned.
	assert.Equal(t, NewRect(0, 0, 120, 120), NewRect(30, 30, 120, 120).ClampInto(bounds))
}

func TestPoint_In(t *testing.T) {
	r := NewRect(5, 5, 10, 10)
	assert.True(t, Point{X: 5, Y: 5}.In(r))
	assert.False(t, Point{X: 15, Y: 5}.In(r))
}

func TestSize_Positive(t *testing.T) {
	assert.True(t, Size{Width: 1, Height: 1}.Positive())
	assert.False(t, Size{Width: 0, Height: 10}.Positive())
	assert.False(t, Size{Width: 10, Height: 0}.Positive())
}

func TestSize_Floor(t *testing.T) {
	assert.Equal(t, Size{Width: 1, Height: 1}, Size{Width: -3, Height: 0}.Floor(1))
	assert.Equal(t, Size{Width: 5, Height: 5}, Size{Width: 5, Height: 5}.Floor(1))
}
