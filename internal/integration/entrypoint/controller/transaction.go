// Package controller implements HTTP handlers for the localhost API endpoints.
package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/expense-tracker/core/internal/application/usecase/transaction"
	"github.com/expense-tracker/core/internal/domain/entity"
	domainerror "github.com/expense-tracker/core/internal/domain/error"
	"github.com/expense-tracker/core/internal/integration/entrypoint/dto"
)

// TransactionController handles transaction endpoints.
type TransactionController struct {
	createUseCase      *transaction.CreateTransactionUseCase
	updateUseCase      *transaction.UpdateTransactionUseCase
	deleteUseCase      *transaction.DeleteTransactionUseCase
	listUseCase        *transaction.ListTransactionsUseCase
	attachImageUseCase *transaction.AttachImageUseCase
}

// NewTransactionController creates a new transaction controller instance.
func NewTransactionController(
	createUseCase *transaction.CreateTransactionUseCase,
	updateUseCase *transaction.UpdateTransactionUseCase,
	deleteUseCase *transaction.DeleteTransactionUseCase,
	listUseCase *transaction.ListTransactionsUseCase,
	attachImageUseCase *transaction.AttachImageUseCase,
) *TransactionController {
	return &TransactionController{
		createUseCase:      createUseCase,
		updateUseCase:      updateUseCase,
		deleteUseCase:      deleteUseCase,
		listUseCase:        listUseCase,
		attachImageUseCase: attachImageUseCase,
	}
}

// Create handles POST /transactions requests.
func (c *TransactionController) Create(ctx *gin.Context) {
	var req dto.CreateTransactionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body",
		})
		return
	}

	output, err := c.createUseCase.Execute(ctx.Request.Context(), req.ToCreateTransactionInput())
	if err != nil {
		c.handleTransactionError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.TransactionMutationResponse{
		Transaction: dto.ToTransactionResponse(output.Transaction),
		MutationFlags: dto.MutationFlags{
			RemoteSynced:   output.RemoteSynced,
			BudgetExceeded: output.BudgetExceeded,
		},
	})
}

// List handles GET /transactions requests.
// Filters arrive as query parameters: type, category_id, start_date, end_date, search.
func (c *TransactionController) List(ctx *gin.Context) {
	input := transaction.ListTransactionsInput{
		Search: ctx.Query("search"),
	}
	if raw := ctx.Query("type"); raw != "" {
		txnType := entity.TransactionType(raw)
		input.Type = &txnType
	}
	if categoryID, ok := queryInt64(ctx, "category_id"); ok {
		input.CategoryID = &categoryID
	}
	if startDate, ok := queryInt64(ctx, "start_date"); ok {
		input.StartDate = &startDate
	}
	if endDate, ok := queryInt64(ctx, "end_date"); ok {
		input.EndDate = &endDate
	}

	output, err := c.listUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleTransactionError(ctx, err)
		return
	}

	response := dto.TransactionListResponse{
		Transactions: make([]dto.TransactionResponse, 0, len(output.Transactions)),
	}
	for _, txn := range output.Transactions {
		response.Transactions = append(response.Transactions, dto.ToTransactionResponse(txn))
	}
	ctx.JSON(http.StatusOK, response)
}

// Update handles PATCH /transactions/:id requests.
func (c *TransactionController) Update(ctx *gin.Context) {
	id, ok := pathID(ctx)
	if !ok {
		return
	}

	var req dto.UpdateTransactionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body",
		})
		return
	}

	output, err := c.updateUseCase.Execute(ctx.Request.Context(), req.ToUpdateTransactionInput(id))
	if err != nil {
		c.handleTransactionError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.TransactionMutationResponse{
		Transaction: dto.ToTransactionResponse(output.Transaction),
		MutationFlags: dto.MutationFlags{
			RemoteSynced:   output.RemoteSynced,
			BudgetExceeded: output.BudgetExceeded,
		},
	})
}

// Delete handles DELETE /transactions/:id requests.
func (c *TransactionController) Delete(ctx *gin.Context) {
	id, ok := pathID(ctx)
	if !ok {
		return
	}

	output, err := c.deleteUseCase.Execute(ctx.Request.Context(), transaction.DeleteTransactionInput{ID: id})
	if err != nil {
		c.handleTransactionError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.DeleteTransactionResponse{
		Tombstoned: output.Tombstoned,
	})
}

// AttachImage handles POST /transactions/:id/image requests.
func (c *TransactionController) AttachImage(ctx *gin.Context) {
	id, ok := pathID(ctx)
	if !ok {
		return
	}

	var req dto.AttachImageRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body",
		})
		return
	}

	output, err := c.attachImageUseCase.Execute(ctx.Request.Context(), transaction.AttachImageInput{
		TransactionID: id,
		ImageData:     req.ImageData,
		ContentType:   req.ContentType,
	})
	if err != nil {
		c.handleTransactionError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.AttachImageResponse{
		Transaction: dto.ToTransactionResponse(output.Transaction),
		ImageURL:    output.ImageURL,
	})
}

// handleTransactionError maps transaction errors to HTTP responses.
func (c *TransactionController) handleTransactionError(ctx *gin.Context, err error) {
	if errors.Is(err, domainerror.ErrNoActiveSession) {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "An active session is required",
			Code:  string(domainerror.ErrCodeNoActiveSession),
		})
		return
	}

	var txnErr *domainerror.TransactionError
	if errors.As(err, &txnErr) {
		ctx.JSON(c.statusCodeForTransactionError(txnErr.Code), dto.ErrorResponse{
			Error: txnErr.Message,
			Code:  string(txnErr.Code),
		})
		return
	}

	ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
		Error: "An internal error occurred",
	})
}

// statusCodeForTransactionError maps transaction error codes to HTTP status codes.
func (c *TransactionController) statusCodeForTransactionError(code domainerror.TransactionErrorCode) int {
	switch code {
	case domainerror.ErrCodeTransactionNotFound:
		return http.StatusNotFound
	case domainerror.ErrCodeInvalidTransactionType,
		domainerror.ErrCodeInvalidTransactionAmount,
		domainerror.ErrCodeTransactionNameRequired,
		domainerror.ErrCodeTransactionNameTooLong,
		domainerror.ErrCodeNoteTooLong,
		domainerror.ErrCodeTxnCategoryNotFound,
		domainerror.ErrCodeImageDataRequired:
		return http.StatusBadRequest
	case domainerror.ErrCodeImageUploadFailure:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// pathID parses the :id path parameter, writing a 400 response on failure.
func pathID(ctx *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid id",
		})
		return 0, false
	}
	return id, true
}

// queryInt64 parses an optional int64 query parameter.
func queryInt64(ctx *gin.Context, key string) (int64, bool) {
	raw := ctx.Query(key)
	if raw == "" {
		return 0, false
	}
	value, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, false
	}
	return value, true
}
