package geometry

// Size represents a width/height pair in pixels.
type Size struct {
	Width  int `json:"width" yaml:"width"`
	Height int `json:"height" yaml:"height"`
}

// Positive returns true if both dimensions are greater than zero.
func (s Size) Positive() bool {
	return s.Width > 0 && s.Height > 0
}

// Floor returns the size with each dimension raised to at least n.
func (s Size) Floor(n int) Size {
	if s.Width < n {
		s.Width = n
	}
	if s.Height < n {
		s.Height = n
	}
	return s
}

// Edges represents spacing on four sides.
type Edges struct {
	Top, Right, Bottom, Left int
}

// EdgeAll creates Edges with the same value on all sides.
func EdgeAll(n int) Edges {
	return Edges{Top: n, Right: n, Bottom: n, Left: n}
}

// Horizontal returns the combined left and right spacing.
func (e Edges) Horizontal() int {
	return e.Left + e.Right
}

// Vertical returns the combined top and bottom spacing.
func (e Edges) Vertical() int {
	return e.Top + e.Bottom
}
