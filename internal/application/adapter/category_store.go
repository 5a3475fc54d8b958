// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/expense-tracker/core/internal/domain/entity"
)

// CategoryStore defines the interface for local category persistence.
// Reserved fallback rows are seeded at migration time and the store rejects
// their removal regardless of what the caller asks for.
type CategoryStore interface {
	// Create inserts a new category row.
	Create(ctx context.Context, category *entity.Category) error

	// Upsert writes the record verbatim, inserting or replacing by id.
	Upsert(ctx context.Context, category *entity.Category) error

	// BulkInsert inserts many rows in one statement.
	BulkInsert(ctx context.Context, categories []*entity.Category) error

	// Update rewrites an existing row.
	Update(ctx context.Context, category *entity.Category) error

	// FindByID retrieves a category by id, soft-deleted rows included.
	FindByID(ctx context.Context, id int64) (*entity.Category, error)

	// FindAll retrieves every row ordered by id, soft-deleted rows included.
	FindAll(ctx context.Context) ([]*entity.Category, error)

	// FindLive retrieves non-deleted rows, optionally filtered by type.
	FindLive(ctx context.Context, categoryType *entity.CategoryType) ([]*entity.Category, error)

	// CountCustom returns the number of non-reserved rows, soft-deleted included.
	CountCustom(ctx context.Context) (int64, error)

	// MarkDeleted sets the soft-delete flag and advances the row's clock.
	// Reserved ids are rejected with ErrCategoryReserved.
	MarkDeleted(ctx context.Context, id int64, updatedAt int64) error

	// HardDelete physically removes the row. Reserved ids are rejected.
	HardDelete(ctx context.Context, id int64) error
}
