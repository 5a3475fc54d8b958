package dto

import (
	"github.com/expense-tracker/core/internal/domain/entity"
)

// SignUpRequest represents the request body for account registration.
type SignUpRequest struct {
	Email       string `json:"email" binding:"required,email"`
	Password    string `json:"password" binding:"required,min=8"`
	DisplayName string `json:"displayName,omitempty"`
}

// SignInRequest represents the request body for signing in with a provider token.
type SignInRequest struct {
	IDToken string `json:"idToken" binding:"required"`
}

// SessionResponse represents the persisted session in API responses.
// The ID token stays server-side; the UI shell never needs it.
type SessionResponse struct {
	UserID      string `json:"userId"`
	Email       string `json:"email"`
	DisplayName string `json:"displayName,omitempty"`
	ExpiresAt   int64  `json:"expiresAt,omitempty"`
}

// AuthResponse represents the response for signup and signin.
type AuthResponse struct {
	Session SessionResponse `json:"session"`
	Sync    *SyncReport     `json:"sync,omitempty"`
}

// SessionStateResponse describes the current authentication state.
type SessionStateResponse struct {
	State   string           `json:"state"` // "guest", "active", or "expired"
	Session *SessionResponse `json:"session,omitempty"`
}

// ToSessionResponse converts a session entity to its API representation.
func ToSessionResponse(session *entity.Session) SessionResponse {
	return SessionResponse{
		UserID:      session.UserID,
		Email:       session.Email,
		DisplayName: session.DisplayName,
		ExpiresAt:   session.ExpiresAt,
	}
}
