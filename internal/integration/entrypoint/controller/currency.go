package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/expense-tracker/core/internal/application/usecase/currency"
	domainerror "github.com/expense-tracker/core/internal/domain/error"
	"github.com/expense-tracker/core/internal/integration/entrypoint/dto"
)

// CurrencyController handles the default-currency endpoints.
type CurrencyController struct {
	changeUseCase *currency.ChangeCurrencyUseCase
}

// NewCurrencyController creates a new currency controller instance.
func NewCurrencyController(changeUseCase *currency.ChangeCurrencyUseCase) *CurrencyController {
	return &CurrencyController{
		changeUseCase: changeUseCase,
	}
}

// Change handles POST /currency requests. Every stored amount is rebased at
// the quoted rate, so the call is applied at most once per actual switch.
func (c *CurrencyController) Change(ctx *gin.Context) {
	var req dto.ChangeCurrencyRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body",
			Code:  string(domainerror.ErrCodeUnknownCurrency),
		})
		return
	}

	output, err := c.changeUseCase.Execute(ctx.Request.Context(), currency.ChangeCurrencyInput{Target: req.Currency})
	if err != nil {
		c.handleCurrencyError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ChangeCurrencyResponse{
		Source:  output.Source,
		Target:  output.Target,
		Rate:    output.Rate.String(),
		Changed: output.Changed,
	})
}

// handleCurrencyError maps currency errors to HTTP responses.
func (c *CurrencyController) handleCurrencyError(ctx *gin.Context, err error) {
	var curErr *domainerror.CurrencyError
	if errors.As(err, &curErr) {
		status := http.StatusBadGateway
		if curErr.Code == domainerror.ErrCodeUnknownCurrency {
			status = http.StatusBadRequest
		}
		ctx.JSON(status, dto.ErrorResponse{
			Error: curErr.Message,
			Code:  string(curErr.Code),
		})
		return
	}

	ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
		Error: "An internal error occurred",
	})
}
