// Package auth contains authentication and session use cases.
package auth

import (
	"context"
	"errors"
	"log/slog"
	"net/mail"
	"strings"

	"github.com/expense-tracker/core/internal/application/adapter"
	"github.com/expense-tracker/core/internal/application/usecase/sync"
	"github.com/expense-tracker/core/internal/domain/entity"
	domainerror "github.com/expense-tracker/core/internal/domain/error"
)

// MinPasswordLength is the minimum accepted password length.
const MinPasswordLength = 8

// SignUpInput represents the input for account registration.
type SignUpInput struct {
	Email       string
	Password    string
	DisplayName string
}

// SignUpOutput represents the output of account registration.
type SignUpOutput struct {
	Session *entity.Session
	// SyncReport describes the initial push of guest data; nil when the push
	// could not run at all.
	SyncReport *sync.Report
}

// SignUpUseCase registers an account with the identity provider, persists the
// session, and pushes any guest-mode data to the fresh remote account.
type SignUpUseCase struct {
	identity   adapter.IdentityClient
	sessions   adapter.SessionService
	signUpSync *sync.SignUpSyncUseCase
}

// NewSignUpUseCase creates a new SignUpUseCase instance.
func NewSignUpUseCase(
	identity adapter.IdentityClient,
	sessions adapter.SessionService,
	signUpSync *sync.SignUpSyncUseCase,
) *SignUpUseCase {
	return &SignUpUseCase{
		identity:   identity,
		sessions:   sessions,
		signUpSync: signUpSync,
	}
}

// Execute performs the registration.
func (uc *SignUpUseCase) Execute(ctx context.Context, input SignUpInput) (*SignUpOutput, error) {
	email := strings.TrimSpace(strings.ToLower(input.Email))
	if err := validateCredentials(email, input.Password); err != nil {
		return nil, err
	}

	user, idToken, err := uc.identity.SignUp(ctx, email, input.Password, input.DisplayName)
	if err != nil {
		return nil, classifyIdentityError(err)
	}

	session, err := uc.sessions.Save(ctx, user, idToken)
	if err != nil {
		return nil, domainerror.NewAuthError(
			domainerror.ErrCodeIdentityUnavailable,
			"failed to persist session",
			err,
		)
	}

	output := &SignUpOutput{Session: session}
	syncOut, err := uc.signUpSync.Execute(ctx, sync.SignUpSyncInput{UserID: user.ID})
	if err != nil {
		// The account exists and the session is live; the data push retries
		// on the next login.
		slog.Warn("Initial data push failed", "userID", user.ID, "error", err)
		return output, nil
	}
	output.SyncReport = syncOut.Report
	return output, nil
}

func validateCredentials(email, password string) error {
	if _, err := mail.ParseAddress(email); err != nil {
		return domainerror.NewAuthError(
			domainerror.ErrCodeInvalidCredentials,
			"invalid email address",
			domainerror.ErrInvalidCredentials,
		)
	}
	if len(password) < MinPasswordLength {
		return domainerror.NewAuthError(
			domainerror.ErrCodeInvalidCredentials,
			"password too short",
			domainerror.ErrInvalidCredentials,
		)
	}
	return nil
}

func classifyIdentityError(err error) error {
	switch {
	case errors.Is(err, domainerror.ErrEmailAlreadyInUse):
		return domainerror.NewAuthError(
			domainerror.ErrCodeEmailAlreadyInUse,
			"email already in use",
			err,
		)
	case errors.Is(err, domainerror.ErrInvalidCredentials):
		return domainerror.NewAuthError(
			domainerror.ErrCodeInvalidCredentials,
			"invalid email or password",
			err,
		)
	default:
		return domainerror.NewAuthError(
			domainerror.ErrCodeIdentityUnavailable,
			"identity service unavailable",
			err,
		)
	}
}
