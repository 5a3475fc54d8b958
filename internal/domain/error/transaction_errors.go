// Package error defines domain-specific errors for the expense tracker core.
package error

import "errors"

// Transaction domain errors.
var (
	// ErrTransactionNotFound is returned when a transaction is not found in the local store.
	ErrTransactionNotFound = errors.New("transaction not found")

	// ErrInvalidTransactionType is returned when the transaction type is invalid.
	ErrInvalidTransactionType = errors.New("invalid transaction type")

	// ErrInvalidTransactionAmount is returned when the transaction amount is invalid.
	ErrInvalidTransactionAmount = errors.New("invalid transaction amount")

	// ErrTransactionNameRequired is returned when the transaction name is empty.
	ErrTransactionNameRequired = errors.New("transaction name is required")

	// ErrTransactionNameTooLong is returned when the transaction name exceeds the maximum length.
	ErrTransactionNameTooLong = errors.New("transaction name too long")

	// ErrNoteTooLong is returned when the transaction note exceeds the maximum length.
	ErrNoteTooLong = errors.New("note too long")

	// ErrCategoryNotFoundForTransaction is returned when the referenced category does not resolve.
	ErrCategoryNotFoundForTransaction = errors.New("category not found")

	// ErrImageDataRequired is returned when an attachment is requested with no image bytes.
	ErrImageDataRequired = errors.New("image data is required")
)

// TransactionErrorCode defines error codes for transaction errors.
// Format: TXN-XXYYYY where XX is the error class and YYYY the specific error.
type TransactionErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeInvalidTransactionType   TransactionErrorCode = "TXN-010001"
	ErrCodeInvalidTransactionAmount TransactionErrorCode = "TXN-010002"
	ErrCodeTransactionNameRequired  TransactionErrorCode = "TXN-010003"
	ErrCodeTransactionNameTooLong   TransactionErrorCode = "TXN-010004"
	ErrCodeNoteTooLong              TransactionErrorCode = "TXN-010005"
	ErrCodeTxnCategoryNotFound      TransactionErrorCode = "TXN-010006"
	ErrCodeTransactionNotFound      TransactionErrorCode = "TXN-010007"
	ErrCodeImageDataRequired        TransactionErrorCode = "TXN-010008"

	// Store errors (02XXXX)
	ErrCodeTransactionStoreFailure TransactionErrorCode = "TXN-020001"

	// Remote errors (03XXXX)
	ErrCodeImageUploadFailure TransactionErrorCode = "TXN-030001"
)

// TransactionError represents a transaction error with code and message.
type TransactionError struct {
	Code    TransactionErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *TransactionError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *TransactionError) Unwrap() error {
	return e.Err
}

// NewTransactionError creates a new TransactionError with the given code and message.
func NewTransactionError(code TransactionErrorCode, message string, err error) *TransactionError {
	return &TransactionError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
