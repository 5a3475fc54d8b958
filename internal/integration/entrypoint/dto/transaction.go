package dto

import (
	"github.com/shopspring/decimal"

	"github.com/expense-tracker/core/internal/application/usecase/transaction"
	"github.com/expense-tracker/core/internal/domain/entity"
)

// CreateTransactionRequest represents the request body for transaction creation.
type CreateTransactionRequest struct {
	ID         int64   `json:"id,omitempty"`
	Amount     float64 `json:"amount" binding:"required"`
	Name       string  `json:"name" binding:"required,min=1,max=255"`
	Type       string  `json:"type" binding:"required,oneof=expense income"`
	CategoryID int64   `json:"categoryId" binding:"required"`
	Note       string  `json:"note,omitempty" binding:"omitempty,max=1000"`
	Date       int64   `json:"date" binding:"required"`
	Location   string  `json:"location,omitempty"`
	ImageURL   string  `json:"imageUrl,omitempty"`
}

// UpdateTransactionRequest represents the request body for transaction update.
type UpdateTransactionRequest struct {
	Amount     *float64 `json:"amount,omitempty"`
	Name       *string  `json:"name,omitempty" binding:"omitempty,min=1,max=255"`
	Type       *string  `json:"type,omitempty" binding:"omitempty,oneof=expense income"`
	CategoryID *int64   `json:"categoryId,omitempty"`
	Note       *string  `json:"note,omitempty" binding:"omitempty,max=1000"`
	Date       *int64   `json:"date,omitempty"`
	Location   *string  `json:"location,omitempty"`
	ImageURL   *string  `json:"imageUrl,omitempty"`
}

// AttachImageRequest represents the request body for attaching a receipt image.
type AttachImageRequest struct {
	ImageData   []byte `json:"imageData" binding:"required"`
	ContentType string `json:"contentType,omitempty"`
}

// TransactionResponse represents a single transaction in API responses.
type TransactionResponse struct {
	ID         int64  `json:"id"`
	Amount     string `json:"amount"`
	Name       string `json:"name"`
	Type       string `json:"type"`
	CategoryID int64  `json:"categoryId"`
	Note       string `json:"note,omitempty"`
	Date       int64  `json:"date"`
	Location   string `json:"location,omitempty"`
	ImageURL   string `json:"imageUrl,omitempty"`
	UpdatedAt  int64  `json:"updatedAt"`
}

// MutationFlags carries the side-effect outcome of a transaction write.
type MutationFlags struct {
	RemoteSynced   bool `json:"remoteSynced"`
	BudgetExceeded bool `json:"budgetExceeded,omitempty"`
}

// TransactionMutationResponse represents the response for create/update.
type TransactionMutationResponse struct {
	Transaction TransactionResponse `json:"transaction"`
	MutationFlags
}

// TransactionListResponse represents the response for listing transactions.
type TransactionListResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
}

// DeleteTransactionResponse reports how the deletion was carried out.
type DeleteTransactionResponse struct {
	Tombstoned bool `json:"tombstoned"`
}

// AttachImageResponse represents the response for attaching a receipt image.
type AttachImageResponse struct {
	Transaction TransactionResponse `json:"transaction"`
	ImageURL    string              `json:"imageUrl"`
}

// ToTransactionResponse converts a TransactionOutput to a TransactionResponse DTO.
func ToTransactionResponse(txn *transaction.TransactionOutput) TransactionResponse {
	return TransactionResponse{
		ID:         txn.ID,
		Amount:     txn.Amount.String(),
		Name:       txn.Name,
		Type:       string(txn.Type),
		CategoryID: txn.CategoryID,
		Note:       txn.Note,
		Date:       txn.Date,
		Location:   txn.Location,
		ImageURL:   txn.ImageURL,
		UpdatedAt:  txn.UpdatedAt,
	}
}

// ToCreateTransactionInput converts the request into the use-case input.
func (r *CreateTransactionRequest) ToCreateTransactionInput() transaction.CreateTransactionInput {
	return transaction.CreateTransactionInput{
		ID:         r.ID,
		Amount:     decimal.NewFromFloat(r.Amount),
		Name:       r.Name,
		Type:       entity.TransactionType(r.Type),
		CategoryID: r.CategoryID,
		Note:       r.Note,
		Date:       r.Date,
		Location:   r.Location,
		ImageURL:   r.ImageURL,
	}
}

// ToUpdateTransactionInput converts the request into the use-case input.
func (r *UpdateTransactionRequest) ToUpdateTransactionInput(id int64) transaction.UpdateTransactionInput {
	input := transaction.UpdateTransactionInput{
		ID:         id,
		Name:       r.Name,
		CategoryID: r.CategoryID,
		Note:       r.Note,
		Date:       r.Date,
		Location:   r.Location,
		ImageURL:   r.ImageURL,
	}
	if r.Amount != nil {
		amount := decimal.NewFromFloat(*r.Amount)
		input.Amount = &amount
	}
	if r.Type != nil {
		txnType := entity.TransactionType(*r.Type)
		input.Type = &txnType
	}
	return input
}
