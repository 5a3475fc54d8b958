// Package error defines domain-specific errors for the expense tracker core.
package error

import "errors"

// Auth domain errors.
var (
	// ErrInvalidCredentials is returned when the identity provider rejects the credential.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrEmailAlreadyInUse is returned when signup is attempted with a taken email.
	ErrEmailAlreadyInUse = errors.New("email already in use")

	// ErrSessionExpired is returned when the persisted session token has expired.
	ErrSessionExpired = errors.New("session expired")

	// ErrNoActiveSession is returned when an authenticated operation runs in guest mode.
	ErrNoActiveSession = errors.New("no active session")

	// ErrIdentityUnavailable is returned when the relay's identity endpoints cannot be reached.
	ErrIdentityUnavailable = errors.New("identity service unavailable")
)

// AuthErrorCode defines error codes for authentication errors.
// Format: AUTH-XXYYYY where XX is the error class and YYYY the specific error.
type AuthErrorCode string

const (
	ErrCodeInvalidCredentials  AuthErrorCode = "AUTH-010001"
	ErrCodeEmailAlreadyInUse   AuthErrorCode = "AUTH-010002"
	ErrCodeSessionExpired      AuthErrorCode = "AUTH-010003"
	ErrCodeNoActiveSession     AuthErrorCode = "AUTH-010004"
	ErrCodeIdentityUnavailable AuthErrorCode = "AUTH-020001"
	ErrCodeRateLimited         AuthErrorCode = "AUTH-030001"
)

// AuthError represents an authentication error with code and message.
type AuthError struct {
	Code    AuthErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *AuthError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *AuthError) Unwrap() error {
	return e.Err
}

// NewAuthError creates a new AuthError with the given code and message.
func NewAuthError(code AuthErrorCode, message string, err error) *AuthError {
	return &AuthError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
