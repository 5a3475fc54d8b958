// Package adapters implements small application ports that need no
// dedicated integration package of their own.
package adapters

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/expense-tracker/core/internal/application/adapter"
	"github.com/expense-tracker/core/internal/domain/entity"
	domainerror "github.com/expense-tracker/core/internal/domain/error"
)

// sessionService implements adapter.SessionService on the preference store.
// The session is a single JSON value; token expiry is read from the unverified
// JWT claims (the relay verifies signatures, the core only needs the clock).
type sessionService struct {
	preferences adapter.PreferenceStore
}

// NewSessionService creates a new session service instance.
func NewSessionService(preferences adapter.PreferenceStore) adapter.SessionService {
	return &sessionService{
		preferences: preferences,
	}
}

type storedSession struct {
	UserID      string `json:"userId"`
	Email       string `json:"email"`
	DisplayName string `json:"displayName,omitempty"`
	IDToken     string `json:"idToken"`
	ExpiresAt   int64  `json:"expiresAt,omitempty"`
}

// Current returns the active session, ErrNoActiveSession in guest mode, or
// ErrSessionExpired when the stored token has lapsed.
func (s *sessionService) Current(ctx context.Context) (*entity.Session, error) {
	raw, err := s.preferences.Get(ctx, entity.PrefSession)
	if err != nil {
		if errors.Is(err, domainerror.ErrPreferenceNotFound) {
			return nil, domainerror.ErrNoActiveSession
		}
		return nil, fmt.Errorf("failed to load session: %w", err)
	}

	var stored storedSession
	if err := json.Unmarshal([]byte(raw), &stored); err != nil {
		// A corrupt session is unrecoverable; fall back to guest mode.
		_ = s.preferences.Delete(ctx, entity.PrefSession)
		return nil, domainerror.ErrNoActiveSession
	}

	session := &entity.Session{
		UserID:      stored.UserID,
		Email:       stored.Email,
		DisplayName: stored.DisplayName,
		IDToken:     stored.IDToken,
		ExpiresAt:   stored.ExpiresAt,
	}
	if session.Expired(time.Now().UnixMilli()) {
		return nil, domainerror.ErrSessionExpired
	}
	return session, nil
}

// Save persists a fresh session, deriving expiry from the ID token claims.
func (s *sessionService) Save(ctx context.Context, user *entity.User, idToken string) (*entity.Session, error) {
	session := &entity.Session{
		UserID:      user.ID,
		Email:       user.Email,
		DisplayName: user.DisplayName,
		IDToken:     idToken,
		ExpiresAt:   tokenExpiry(idToken),
	}

	raw, err := json.Marshal(storedSession{
		UserID:      session.UserID,
		Email:       session.Email,
		DisplayName: session.DisplayName,
		IDToken:     session.IDToken,
		ExpiresAt:   session.ExpiresAt,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode session: %w", err)
	}
	if err := s.preferences.Set(ctx, entity.PrefSession, string(raw)); err != nil {
		return nil, fmt.Errorf("failed to persist session: %w", err)
	}
	return session, nil
}

// Clear drops the persisted session.
func (s *sessionService) Clear(ctx context.Context) error {
	return s.preferences.Delete(ctx, entity.PrefSession)
}

// tokenExpiry parses the exp claim without verifying the signature. Opaque or
// claimless tokens yield zero, meaning no local expiry enforcement.
func tokenExpiry(idToken string) int64 {
	parser := jwt.NewParser()
	claims := jwt.MapClaims{}
	if _, _, err := parser.ParseUnverified(idToken, claims); err != nil {
		return 0
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return 0
	}
	return exp.UnixMilli()
}
