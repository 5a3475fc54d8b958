package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/expense-tracker/core/internal/application/adapter"
	"github.com/expense-tracker/core/internal/domain/entity"
	domainerror "github.com/expense-tracker/core/internal/domain/error"
	"github.com/expense-tracker/core/internal/integration/entrypoint/dto"
)

// PreferenceController exposes the local key-value store to the UI shell.
// The session entry is managed by the auth endpoints and stays hidden here.
type PreferenceController struct {
	preferences adapter.PreferenceStore
}

// NewPreferenceController creates a new preference controller instance.
func NewPreferenceController(preferences adapter.PreferenceStore) *PreferenceController {
	return &PreferenceController{
		preferences: preferences,
	}
}

// Get handles GET /preferences/:key requests.
func (c *PreferenceController) Get(ctx *gin.Context) {
	key := ctx.Param("key")
	if key == entity.PrefSession {
		ctx.JSON(http.StatusNotFound, dto.ErrorResponse{
			Error: "Preference not found",
		})
		return
	}

	value, err := c.preferences.Get(ctx.Request.Context(), key)
	if err != nil {
		if errors.Is(err, domainerror.ErrPreferenceNotFound) {
			ctx.JSON(http.StatusNotFound, dto.ErrorResponse{
				Error: "Preference not found",
			})
			return
		}
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error: "An internal error occurred",
		})
		return
	}

	ctx.JSON(http.StatusOK, dto.PreferenceResponse{Key: key, Value: value})
}

// Set handles PUT /preferences/:key requests.
func (c *PreferenceController) Set(ctx *gin.Context) {
	key := ctx.Param("key")
	if key == entity.PrefSession {
		ctx.JSON(http.StatusForbidden, dto.ErrorResponse{
			Error: "The session entry is managed by the auth endpoints",
		})
		return
	}

	var req dto.PreferenceRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body",
		})
		return
	}

	if err := c.preferences.Set(ctx.Request.Context(), key, req.Value); err != nil {
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error: "An internal error occurred",
		})
		return
	}

	ctx.JSON(http.StatusOK, dto.PreferenceResponse{Key: key, Value: req.Value})
}
