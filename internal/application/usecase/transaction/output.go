package transaction

import (
	"github.com/shopspring/decimal"

	"github.com/expense-tracker/core/internal/domain/entity"
)

const (
	// MaxNameLength is the maximum allowed length for transaction names.
	MaxNameLength = 255
	// MaxNoteLength is the maximum allowed length for transaction notes.
	MaxNoteLength = 1000
)

// TransactionOutput is the use-case view of a transaction.
type TransactionOutput struct {
	ID         int64
	Amount     decimal.Decimal
	Name       string
	Type       entity.TransactionType
	CategoryID int64
	Note       string
	Date       int64
	Location   string
	ImageURL   string
	UpdatedAt  int64
}

func toOutput(t *entity.Transaction) *TransactionOutput {
	return &TransactionOutput{
		ID:         t.ID,
		Amount:     t.Amount,
		Name:       t.Name,
		Type:       t.Type,
		CategoryID: t.CategoryID,
		Note:       t.Note,
		Date:       t.Date,
		Location:   t.Location,
		ImageURL:   t.ImageURL,
		UpdatedAt:  t.UpdatedAt,
	}
}

// isValidTransactionType validates the transaction type.
func isValidTransactionType(transactionType entity.TransactionType) bool {
	return transactionType == entity.TransactionTypeExpense || transactionType == entity.TransactionTypeIncome
}
