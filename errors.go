package pullrefresh

import "errors"

// Setup-time contract violations. New and SetProps wrap these with detail;
// test for them with errors.Is.
var (
	// ErrMissingRefreshFunc means Props.OnRefresh was nil.
	ErrMissingRefreshFunc = errors.New("pullrefresh: OnRefresh callback is required")

	// ErrMissingContent means Props.Content was nil.
	ErrMissingContent = errors.New("pullrefresh: content view is required")

	// ErrMissingRegistry means no animation registry was supplied to drive springs.
	ErrMissingRegistry = errors.New("pullrefresh: animation registry is required")

	// ErrInvalidConfig means a Config field is out of range.
	ErrInvalidConfig = errors.New("pullrefresh: invalid configuration")
)
