// Package error defines domain-specific errors for the expense tracker core.
package error

import "errors"

// Budget alert delivery errors.
var (
	// ErrPermanentAlertFailure marks a delivery failure that retrying cannot fix.
	ErrPermanentAlertFailure = errors.New("permanent alert delivery failure")

	// ErrTemporaryAlertFailure marks a delivery failure worth retrying.
	ErrTemporaryAlertFailure = errors.New("temporary alert delivery failure")

	// ErrAlertNotFound is returned when a queued alert id does not resolve.
	ErrAlertNotFound = errors.New("alert not found")
)

// AlertErrorCode defines error codes for budget alert errors.
type AlertErrorCode string

const (
	ErrCodePermanentAlertFailure AlertErrorCode = "ALERT-010001"
	ErrCodeTemporaryAlertFailure AlertErrorCode = "ALERT-010002"
)

// AlertError represents an alert delivery error with code and message.
type AlertError struct {
	Code    AlertErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *AlertError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *AlertError) Unwrap() error {
	return e.Err
}

// NewAlertError creates a new AlertError with the given code and message.
func NewAlertError(code AlertErrorCode, message string, err error) *AlertError {
	return &AlertError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
