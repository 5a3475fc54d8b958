package auth

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/expense-tracker/core/internal/application/adapter"
	"github.com/expense-tracker/core/internal/domain/entity"
	domainerror "github.com/expense-tracker/core/internal/domain/error"
)

// SessionStateOutput describes the current authentication state.
type SessionStateOutput struct {
	Guest   bool
	Expired bool
	Session *entity.Session
}

// SessionStateUseCase reports whether the core is running as guest, with a
// live session, or with an expired one the UI should refresh.
type SessionStateUseCase struct {
	sessions    adapter.SessionService
	preferences adapter.PreferenceStore
}

// NewSessionStateUseCase creates a new SessionStateUseCase instance.
func NewSessionStateUseCase(sessions adapter.SessionService, preferences adapter.PreferenceStore) *SessionStateUseCase {
	return &SessionStateUseCase{sessions: sessions, preferences: preferences}
}

// Execute reports the session state.
func (uc *SessionStateUseCase) Execute(ctx context.Context) (*SessionStateOutput, error) {
	session, err := uc.sessions.Current(ctx)
	switch {
	case err == nil:
		return &SessionStateOutput{Session: session}, nil
	case errors.Is(err, domainerror.ErrSessionExpired):
		return &SessionStateOutput{Expired: true}, nil
	case errors.Is(err, domainerror.ErrNoActiveSession):
		return &SessionStateOutput{Guest: true}, nil
	default:
		return nil, fmt.Errorf("failed to load session: %w", err)
	}
}

// EnterGuestModeUseCase records the explicit "continue without an account"
// choice so the UI skips the sign-in prompt on later launches.
type EnterGuestModeUseCase struct {
	preferences adapter.PreferenceStore
}

// NewEnterGuestModeUseCase creates a new EnterGuestModeUseCase instance.
func NewEnterGuestModeUseCase(preferences adapter.PreferenceStore) *EnterGuestModeUseCase {
	return &EnterGuestModeUseCase{preferences: preferences}
}

// Execute marks guest mode as chosen.
func (uc *EnterGuestModeUseCase) Execute(ctx context.Context) error {
	if err := uc.preferences.Set(ctx, entity.PrefGuestMode, strconv.FormatBool(true)); err != nil {
		return fmt.Errorf("failed to record guest mode: %w", err)
	}
	return nil
}
