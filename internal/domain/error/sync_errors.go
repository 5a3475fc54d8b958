// Package error defines domain-specific errors for the expense tracker core.
package error

import "errors"

// Sync domain errors.
var (
	// ErrRemoteSnapshotUnavailable is returned when the remote transaction list
	// cannot be fetched. Without a snapshot no merge can run.
	ErrRemoteSnapshotUnavailable = errors.New("remote snapshot unavailable")

	// ErrSyncAlreadyRunning is returned when a sync pass is started while
	// another pass for the same user is still in flight.
	ErrSyncAlreadyRunning = errors.New("sync already running")
)

// SyncErrorCode defines error codes for reconciliation errors.
// Format: SYNC-XXYYYY where XX is the error class and YYYY the specific error.
type SyncErrorCode string

const (
	ErrCodeRemoteSnapshotUnavailable SyncErrorCode = "SYNC-010001"
	ErrCodeSyncAlreadyRunning        SyncErrorCode = "SYNC-010002"
	ErrCodeSyncLocalStoreFailure     SyncErrorCode = "SYNC-020001"
)

// SyncError represents a reconciliation error with code and message.
type SyncError struct {
	Code    SyncErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *SyncError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *SyncError) Unwrap() error {
	return e.Err
}

// NewSyncError creates a new SyncError with the given code and message.
func NewSyncError(code SyncErrorCode, message string, err error) *SyncError {
	return &SyncError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
