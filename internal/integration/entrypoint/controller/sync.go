package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/expense-tracker/core/internal/application/adapter"
	"github.com/expense-tracker/core/internal/application/usecase/sync"
	"github.com/expense-tracker/core/internal/domain/entity"
	domainerror "github.com/expense-tracker/core/internal/domain/error"
	"github.com/expense-tracker/core/internal/integration/entrypoint/dto"
)

// SyncController exposes the reconciliation passes as explicit endpoints so
// the UI shell can re-run a merge after connectivity returns.
type SyncController struct {
	sessions          adapter.SessionService
	logInSyncUseCase  *sync.LogInSyncUseCase
	signUpSyncUseCase *sync.SignUpSyncUseCase
}

// NewSyncController creates a new sync controller instance.
func NewSyncController(
	sessions adapter.SessionService,
	logInSyncUseCase *sync.LogInSyncUseCase,
	signUpSyncUseCase *sync.SignUpSyncUseCase,
) *SyncController {
	return &SyncController{
		sessions:          sessions,
		logInSyncUseCase:  logInSyncUseCase,
		signUpSyncUseCase: signUpSyncUseCase,
	}
}

// LogInSync handles POST /sync/login requests: the bidirectional merge pass.
func (c *SyncController) LogInSync(ctx *gin.Context) {
	session, ok := c.requireSession(ctx)
	if !ok {
		return
	}

	output, err := c.logInSyncUseCase.Execute(ctx.Request.Context(), sync.LogInSyncInput{UserID: session.UserID})
	if err != nil {
		c.handleSyncError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToSyncReport(output.Report))
}

// SignUpSync handles POST /sync/signup requests: the one-shot push of guest data.
func (c *SyncController) SignUpSync(ctx *gin.Context) {
	session, ok := c.requireSession(ctx)
	if !ok {
		return
	}

	output, err := c.signUpSyncUseCase.Execute(ctx.Request.Context(), sync.SignUpSyncInput{UserID: session.UserID})
	if err != nil {
		c.handleSyncError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToSyncReport(output.Report))
}

// requireSession resolves the active session or writes a 401 response.
func (c *SyncController) requireSession(ctx *gin.Context) (*entity.Session, bool) {
	session, err := c.sessions.Current(ctx.Request.Context())
	if err != nil {
		code := domainerror.ErrCodeNoActiveSession
		if errors.Is(err, domainerror.ErrSessionExpired) {
			code = domainerror.ErrCodeSessionExpired
		}
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "An active session is required",
			Code:  string(code),
		})
		return nil, false
	}
	return session, true
}

// handleSyncError maps sync errors to HTTP responses.
func (c *SyncController) handleSyncError(ctx *gin.Context, err error) {
	var syncErr *domainerror.SyncError
	if errors.As(err, &syncErr) {
		status := http.StatusBadGateway
		if syncErr.Code == domainerror.ErrCodeSyncAlreadyRunning {
			status = http.StatusConflict
		}
		ctx.JSON(status, dto.ErrorResponse{
			Error: syncErr.Message,
			Code:  string(syncErr.Code),
		})
		return
	}

	ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
		Error: "An internal error occurred",
	})
}
