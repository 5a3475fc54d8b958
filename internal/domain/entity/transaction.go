// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType represents the type of transaction (expense or income).
type TransactionType string

const (
	TransactionTypeExpense TransactionType = "expense"
	TransactionTypeIncome  TransactionType = "income"
)

// Transaction represents a financial transaction held in the local store.
// IDs are caller-assigned wall-clock milliseconds; UpdatedAt is the logical
// clock used for conflict resolution against the remote mirror.
type Transaction struct {
	ID         int64
	Amount     decimal.Decimal
	Name       string
	Type       TransactionType
	CategoryID int64
	Note       string
	Date       int64 // event timestamp, unix millis
	Location   string
	ImageURL   string
	UpdatedAt  int64 // last-mutation timestamp, unix millis
	IsDeleted  bool  // soft-delete flag, pending remote propagation
}

// NewTransaction creates a new Transaction entity. A zero id or date is
// replaced with the current wall-clock millisecond value.
func NewTransaction(
	id int64,
	amount decimal.Decimal,
	name string,
	transactionType TransactionType,
	categoryID int64,
	note string,
	date int64,
	location string,
	imageURL string,
) *Transaction {
	now := time.Now().UnixMilli()
	if id == 0 {
		id = now
	}
	if date == 0 {
		date = now
	}

	return &Transaction{
		ID:         id,
		Amount:     amount,
		Name:       name,
		Type:       transactionType,
		CategoryID: categoryID,
		Note:       note,
		Date:       date,
		Location:   location,
		ImageURL:   imageURL,
		UpdatedAt:  now,
	}
}

// Touch strictly advances the mutation clock. Two mutations inside the same
// millisecond still produce distinct timestamps.
func (t *Transaction) Touch() {
	now := time.Now().UnixMilli()
	if now <= t.UpdatedAt {
		now = t.UpdatedAt + 1
	}
	t.UpdatedAt = now
}

// IsExpense reports whether the transaction is an expense.
func (t *Transaction) IsExpense() bool {
	return t.Type == TransactionTypeExpense
}
