// Package entity defines the core business entities for the domain layer.
package entity

// User is the canonical user record returned by the relay's identity endpoints.
type User struct {
	ID          string
	Email       string
	DisplayName string
}

// Session is the locally persisted authentication state. A nil session means
// the app is running in guest mode with a purely local store.
type Session struct {
	UserID      string
	Email       string
	DisplayName string
	IDToken     string
	ExpiresAt   int64 // unix millis; zero when the token carries no expiry
}

// Expired reports whether the session token expired before nowMillis.
func (s *Session) Expired(nowMillis int64) bool {
	return s.ExpiresAt != 0 && s.ExpiresAt <= nowMillis
}
