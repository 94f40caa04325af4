package engine

import "errors"

// Presentation errors. Dismiss rejections (a ShouldDismiss hook
// returning false) are a normal no-op outcome, not an error.
var (
	// ErrAlreadyPresenting is returned when Present is called while a
	// presentation cycle is in flight. The request is rejected, not
	// queued, and the existing presentation is untouched.
	ErrAlreadyPresenting = errors.New("a popover is already being presented")

	// ErrNoContentProvider is returned when Present is called without a
	// content capability.
	ErrNoContentProvider = errors.New("present requires a content provider")

	// ErrNotVisible is returned when a resize or reflow is requested
	// outside the Visible state.
	ErrNotVisible = errors.New("popover is not visible")
)
