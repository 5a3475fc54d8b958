// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/expense-tracker/core/internal/domain/entity"
)

// TransactionFilter defines filter options for listing live transactions.
// Soft-deleted rows are always excluded from filtered reads.
type TransactionFilter struct {
	Type       *entity.TransactionType
	CategoryID *int64
	StartDate  *int64 // unix millis, inclusive
	EndDate    *int64 // unix millis, inclusive
	Search     string // case-insensitive name match
}

// TransactionStore defines the interface for local transaction persistence.
// The store never touches UpdatedAt or IsDeleted on its own: the mutation
// clock and soft-delete lifecycle belong to the use cases and the sync engine.
type TransactionStore interface {
	// Create inserts a new transaction row.
	Create(ctx context.Context, transaction *entity.Transaction) error

	// Upsert writes the record verbatim, inserting or replacing by id.
	// Used by the reconciliation engine when the remote version wins.
	Upsert(ctx context.Context, transaction *entity.Transaction) error

	// BulkInsert inserts many rows in one statement (wholesale remote adoption).
	BulkInsert(ctx context.Context, transactions []*entity.Transaction) error

	// Update rewrites an existing row.
	Update(ctx context.Context, transaction *entity.Transaction) error

	// FindByID retrieves a transaction by id, soft-deleted rows included.
	FindByID(ctx context.Context, id int64) (*entity.Transaction, error)

	// FindAll retrieves every row ordered by id, soft-deleted rows included.
	// This is the reconciliation engine's local snapshot.
	FindAll(ctx context.Context) ([]*entity.Transaction, error)

	// FindLive retrieves non-deleted rows matching the filter, newest date first.
	FindLive(ctx context.Context, filter TransactionFilter) ([]*entity.Transaction, error)

	// Count returns the total number of rows including soft-deleted ones.
	Count(ctx context.Context) (int64, error)

	// SumExpensesByCategory sums the amounts of non-deleted expense rows in the category.
	SumExpensesByCategory(ctx context.Context, categoryID int64) (decimal.Decimal, error)

	// MarkDeleted sets the soft-delete flag and advances the row's clock.
	MarkDeleted(ctx context.Context, id int64, updatedAt int64) error

	// HardDelete physically removes the row.
	HardDelete(ctx context.Context, id int64) error

	// ReassignCategory moves non-deleted rows from one category to another,
	// stamping each with updatedAt. Returns the number of rows moved.
	ReassignCategory(ctx context.Context, oldCategoryID, newCategoryID int64, updatedAt int64) (int64, error)

	// ScaleAmounts multiplies every stored amount by rate in one bulk update.
	ScaleAmounts(ctx context.Context, rate decimal.Decimal) error
}
