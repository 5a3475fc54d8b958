package auth

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/expense-tracker/core/internal/application/adapter"
	"github.com/expense-tracker/core/internal/domain/entity"
)

// SignOutUseCase drops the persisted session and returns the core to guest
// mode. Local data is kept; it merges back on the next sign-in.
type SignOutUseCase struct {
	sessions    adapter.SessionService
	preferences adapter.PreferenceStore
}

// NewSignOutUseCase creates a new SignOutUseCase instance.
func NewSignOutUseCase(sessions adapter.SessionService, preferences adapter.PreferenceStore) *SignOutUseCase {
	return &SignOutUseCase{sessions: sessions, preferences: preferences}
}

// Execute performs the sign-out.
func (uc *SignOutUseCase) Execute(ctx context.Context) error {
	if err := uc.sessions.Clear(ctx); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	if err := uc.preferences.Delete(ctx, entity.PrefLastSyncAt); err != nil {
		slog.Warn("Failed to clear last-sync marker", "error", err)
	}
	if err := uc.preferences.Set(ctx, entity.PrefGuestMode, strconv.FormatBool(true)); err != nil {
		slog.Warn("Failed to set guest flag", "error", err)
	}
	slog.Info("Signed out")
	return nil
}
