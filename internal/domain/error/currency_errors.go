// Package error defines domain-specific errors for the expense tracker core.
package error

import "errors"

// Currency domain errors.
var (
	// ErrQuoteUnavailable is returned when no exchange rate could be obtained.
	ErrQuoteUnavailable = errors.New("exchange rate unavailable")

	// ErrUnknownCurrency is returned when the provider does not quote the requested pair.
	ErrUnknownCurrency = errors.New("unknown currency")
)

// CurrencyErrorCode defines error codes for currency errors.
type CurrencyErrorCode string

const (
	ErrCodeQuoteUnavailable CurrencyErrorCode = "CUR-010001"
	ErrCodeUnknownCurrency  CurrencyErrorCode = "CUR-010002"
)

// CurrencyError represents a currency error with code and message.
type CurrencyError struct {
	Code    CurrencyErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *CurrencyError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *CurrencyError) Unwrap() error {
	return e.Err
}

// NewCurrencyError creates a new CurrencyError with the given code and message.
func NewCurrencyError(code CurrencyErrorCode, message string, err error) *CurrencyError {
	return &CurrencyError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
