// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/expense-tracker/core/internal/domain/entity"
)

// RemoteTransactionClient is the typed client for the relay's per-user
// transaction mirror. Create and Update are idempotent upserts keyed by id;
// deletes are immediate (the mirror has no soft-delete flag).
type RemoteTransactionClient interface {
	// List fetches the full remote transaction snapshot for the user.
	List(ctx context.Context, userID string) ([]*entity.Transaction, error)

	// Create pushes a whole-record create.
	Create(ctx context.Context, userID string, transaction *entity.Transaction) error

	// Update pushes a whole-record update.
	Update(ctx context.Context, userID string, transaction *entity.Transaction) error

	// Delete removes the remote record.
	Delete(ctx context.Context, userID string, id int64) error

	// ReassignCategory moves all remote transactions from one category to another.
	ReassignCategory(ctx context.Context, userID string, oldCategoryID, newCategoryID int64) error
}

// RemoteCategoryClient is the typed client for the relay's category mirror.
type RemoteCategoryClient interface {
	// List fetches the full remote category snapshot for the user.
	List(ctx context.Context, userID string) ([]*entity.Category, error)

	// Create pushes a whole-record create.
	Create(ctx context.Context, userID string, category *entity.Category) error

	// Update pushes a whole-record update.
	Update(ctx context.Context, userID string, category *entity.Category) error

	// Delete removes the remote record.
	Delete(ctx context.Context, userID string, id int64) error

	// SeedInitial uploads the whole live category set in one call. Used once,
	// when a guest converts to an account.
	SeedInitial(ctx context.Context, userID string, categories []*entity.Category) error
}

// RequestedImage is an attachment payload bound for the relay's image endpoints.
type RequestedImage struct {
	ImageName   string
	ImageData   []byte // raw bytes; base64-encoded on the wire
	ContentType string
}

// RemoteImageClient uploads transaction attachments through the relay and
// returns the hosted image URL.
type RemoteImageClient interface {
	Upload(ctx context.Context, userID string, image RequestedImage) (string, error)
	Update(ctx context.Context, userID string, image RequestedImage) (string, error)
}
