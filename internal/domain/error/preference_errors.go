// Package error defines domain-specific errors for the expense tracker core.
package error

import "errors"

// ErrPreferenceNotFound is returned when a preference key has no stored value.
var ErrPreferenceNotFound = errors.New("preference not found")
