// Package error defines domain-specific errors for the expense tracker core.
package error

import "errors"

// Category domain errors.
var (
	// ErrCategoryNotFound is returned when a category is not found in the local store.
	ErrCategoryNotFound = errors.New("category not found")

	// ErrCategoryReserved is returned when attempting to delete or rewrite a reserved fallback category.
	ErrCategoryReserved = errors.New("category is reserved")

	// ErrCategoryTitleRequired is returned when the category title is empty.
	ErrCategoryTitleRequired = errors.New("category title is required")

	// ErrCategoryTitleTooLong is returned when the category title exceeds the maximum length.
	ErrCategoryTitleTooLong = errors.New("category title too long")

	// ErrInvalidCategoryType is returned when the category type is invalid.
	ErrInvalidCategoryType = errors.New("invalid category type")

	// ErrInvalidCategoryLimit is returned when the budget limit is negative.
	ErrInvalidCategoryLimit = errors.New("invalid category limit")
)

// CategoryErrorCode defines error codes for category errors.
// Format: CAT-XXYYYY where XX is the error class and YYYY the specific error.
type CategoryErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeCategoryTitleRequired CategoryErrorCode = "CAT-010001"
	ErrCodeCategoryTitleTooLong  CategoryErrorCode = "CAT-010002"
	ErrCodeInvalidCategoryType   CategoryErrorCode = "CAT-010003"
	ErrCodeInvalidCategoryLimit  CategoryErrorCode = "CAT-010004"
	ErrCodeCategoryNotFound      CategoryErrorCode = "CAT-010005"
	ErrCodeCategoryReserved      CategoryErrorCode = "CAT-010006"

	// Store errors (02XXXX)
	ErrCodeCategoryStoreFailure CategoryErrorCode = "CAT-020001"
)

// CategoryError represents a category error with code and message.
type CategoryError struct {
	Code    CategoryErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *CategoryError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *CategoryError) Unwrap() error {
	return e.Err
}

// NewCategoryError creates a new CategoryError with the given code and message.
func NewCategoryError(code CategoryErrorCode, message string, err error) *CategoryError {
	return &CategoryError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
