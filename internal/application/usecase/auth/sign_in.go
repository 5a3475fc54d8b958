package auth

import (
	"context"
	"log/slog"

	"github.com/expense-tracker/core/internal/application/adapter"
	"github.com/expense-tracker/core/internal/application/usecase/sync"
	"github.com/expense-tracker/core/internal/domain/entity"
	domainerror "github.com/expense-tracker/core/internal/domain/error"
)

// SignInInput represents the input for signing in. The ID token is issued by
// the identity provider on the device; the relay validates it.
type SignInInput struct {
	IDToken string
}

// SignInOutput represents the output of signing in.
type SignInOutput struct {
	Session *entity.Session
	// SyncReport describes the merge with the remote snapshot; nil when the
	// merge could not run at all.
	SyncReport *sync.Report
}

// SignInUseCase exchanges a provider token for a session and reconciles the
// local store with the account's remote data.
type SignInUseCase struct {
	identity  adapter.IdentityClient
	sessions  adapter.SessionService
	logInSync *sync.LogInSyncUseCase
}

// NewSignInUseCase creates a new SignInUseCase instance.
func NewSignInUseCase(
	identity adapter.IdentityClient,
	sessions adapter.SessionService,
	logInSync *sync.LogInSyncUseCase,
) *SignInUseCase {
	return &SignInUseCase{
		identity:  identity,
		sessions:  sessions,
		logInSync: logInSync,
	}
}

// Execute performs the sign-in.
func (uc *SignInUseCase) Execute(ctx context.Context, input SignInInput) (*SignInOutput, error) {
	if input.IDToken == "" {
		return nil, domainerror.NewAuthError(
			domainerror.ErrCodeInvalidCredentials,
			"id token is required",
			domainerror.ErrInvalidCredentials,
		)
	}

	user, err := uc.identity.SignIn(ctx, input.IDToken)
	if err != nil {
		return nil, classifyIdentityError(err)
	}

	session, err := uc.sessions.Save(ctx, user, input.IDToken)
	if err != nil {
		return nil, domainerror.NewAuthError(
			domainerror.ErrCodeIdentityUnavailable,
			"failed to persist session",
			err,
		)
	}

	output := &SignInOutput{Session: session}
	syncOut, err := uc.logInSync.Execute(ctx, sync.LogInSyncInput{UserID: user.ID})
	if err != nil {
		// Session stands; the merge reruns on the next explicit sync.
		slog.Warn("Login merge failed", "userID", user.ID, "error", err)
		return output, nil
	}
	output.SyncReport = syncOut.Report
	return output, nil
}
