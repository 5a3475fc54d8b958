// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/expense-tracker/core/internal/domain/entity"
)

// IdentityClient talks to the relay's identity endpoints, which delegate to
// the managed identity provider. Credential verification happens remotely;
// the core only keeps the issued token.
type IdentityClient interface {
	// SignUp registers a new account and returns the canonical user record
	// together with the issued ID token.
	SignUp(ctx context.Context, email, password, displayName string) (*entity.User, string, error)

	// SignIn exchanges a provider-issued ID token for the canonical user record.
	SignIn(ctx context.Context, idToken string) (*entity.User, error)
}

// SessionService persists and restores the current authentication state.
type SessionService interface {
	// Current returns the active session, ErrNoActiveSession when running as
	// guest, or ErrSessionExpired when the stored token has lapsed.
	Current(ctx context.Context) (*entity.Session, error)

	// Save persists a fresh session, deriving expiry from the ID token claims.
	Save(ctx context.Context, user *entity.User, idToken string) (*entity.Session, error)

	// Clear drops the persisted session.
	Clear(ctx context.Context) error
}
