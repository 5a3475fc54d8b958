package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/expense-tracker/core/internal/application/usecase/auth"
	domainerror "github.com/expense-tracker/core/internal/domain/error"
	"github.com/expense-tracker/core/internal/integration/entrypoint/dto"
)

// AuthController handles authentication endpoints.
type AuthController struct {
	signUpUseCase       *auth.SignUpUseCase
	signInUseCase       *auth.SignInUseCase
	signOutUseCase      *auth.SignOutUseCase
	sessionStateUseCase *auth.SessionStateUseCase
	guestModeUseCase    *auth.EnterGuestModeUseCase
}

// NewAuthController creates a new auth controller instance.
func NewAuthController(
	signUpUseCase *auth.SignUpUseCase,
	signInUseCase *auth.SignInUseCase,
	signOutUseCase *auth.SignOutUseCase,
	sessionStateUseCase *auth.SessionStateUseCase,
	guestModeUseCase *auth.EnterGuestModeUseCase,
) *AuthController {
	return &AuthController{
		signUpUseCase:       signUpUseCase,
		signInUseCase:       signInUseCase,
		signOutUseCase:      signOutUseCase,
		sessionStateUseCase: sessionStateUseCase,
		guestModeUseCase:    guestModeUseCase,
	}
}

// SignUp handles POST /auth/signup requests.
func (c *AuthController) SignUp(ctx *gin.Context) {
	var req dto.SignUpRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body",
			Code:  string(domainerror.ErrCodeInvalidCredentials),
		})
		return
	}

	input := auth.SignUpInput{
		Email:       req.Email,
		Password:    req.Password,
		DisplayName: req.DisplayName,
	}

	output, err := c.signUpUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleAuthError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.AuthResponse{
		Session: dto.ToSessionResponse(output.Session),
		Sync:    dto.ToSyncReport(output.SyncReport),
	})
}

// SignIn handles POST /auth/signin requests.
func (c *AuthController) SignIn(ctx *gin.Context) {
	var req dto.SignInRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body",
			Code:  string(domainerror.ErrCodeInvalidCredentials),
		})
		return
	}

	output, err := c.signInUseCase.Execute(ctx.Request.Context(), auth.SignInInput{IDToken: req.IDToken})
	if err != nil {
		c.handleAuthError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.AuthResponse{
		Session: dto.ToSessionResponse(output.Session),
		Sync:    dto.ToSyncReport(output.SyncReport),
	})
}

// SignOut handles POST /auth/signout requests.
func (c *AuthController) SignOut(ctx *gin.Context) {
	if err := c.signOutUseCase.Execute(ctx.Request.Context()); err != nil {
		c.handleAuthError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.MessageResponse{
		Message: "Successfully signed out",
	})
}

// EnterGuestMode handles POST /auth/guest requests.
func (c *AuthController) EnterGuestMode(ctx *gin.Context) {
	if err := c.guestModeUseCase.Execute(ctx.Request.Context()); err != nil {
		c.handleAuthError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.MessageResponse{
		Message: "Continuing without an account",
	})
}

// SessionState handles GET /auth/session requests.
func (c *AuthController) SessionState(ctx *gin.Context) {
	output, err := c.sessionStateUseCase.Execute(ctx.Request.Context())
	if err != nil {
		c.handleAuthError(ctx, err)
		return
	}

	response := dto.SessionStateResponse{State: "active"}
	switch {
	case output.Guest:
		response.State = "guest"
	case output.Expired:
		response.State = "expired"
	default:
		session := dto.ToSessionResponse(output.Session)
		response.Session = &session
	}
	ctx.JSON(http.StatusOK, response)
}

// handleAuthError maps authentication errors to HTTP responses.
func (c *AuthController) handleAuthError(ctx *gin.Context, err error) {
	var authErr *domainerror.AuthError
	if errors.As(err, &authErr) {
		ctx.JSON(c.statusCodeForAuthError(authErr.Code), dto.ErrorResponse{
			Error: authErr.Message,
			Code:  string(authErr.Code),
		})
		return
	}

	ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
		Error: "An internal error occurred",
	})
}

// statusCodeForAuthError maps auth error codes to HTTP status codes.
func (c *AuthController) statusCodeForAuthError(code domainerror.AuthErrorCode) int {
	switch code {
	case domainerror.ErrCodeEmailAlreadyInUse:
		return http.StatusConflict
	case domainerror.ErrCodeInvalidCredentials:
		return http.StatusBadRequest
	case domainerror.ErrCodeSessionExpired,
		domainerror.ErrCodeNoActiveSession:
		return http.StatusUnauthorized
	case domainerror.ErrCodeRateLimited:
		return http.StatusTooManyRequests
	case domainerror.ErrCodeIdentityUnavailable:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
