package category

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/expense-tracker/core/internal/application/adapter"
	"github.com/expense-tracker/core/internal/domain/entity"
	domainerror "github.com/expense-tracker/core/internal/domain/error"
)

// DeleteCategoryInput represents the input for category deletion.
type DeleteCategoryInput struct {
	ID int64
}

// DeleteCategoryOutput reports how the deletion went.
type DeleteCategoryOutput struct {
	// Reassigned is the number of live transactions moved to the fallback row.
	Reassigned int64
	// Tombstoned means the row was soft-deleted pending remote propagation.
	Tombstoned bool
}

// DeleteCategoryUseCase handles category deletion. Reserved rows are
// undeletable. Live transactions in the doomed category are first moved to
// the type's reserved fallback, locally and remotely, so no transaction is
// ever orphaned.
type DeleteCategoryUseCase struct {
	categoryStore    adapter.CategoryStore
	transactionStore adapter.TransactionStore
	remoteCategories adapter.RemoteCategoryClient
	remoteTxns       adapter.RemoteTransactionClient
	sessions         adapter.SessionService
}

// NewDeleteCategoryUseCase creates a new DeleteCategoryUseCase instance.
func NewDeleteCategoryUseCase(
	categoryStore adapter.CategoryStore,
	transactionStore adapter.TransactionStore,
	remoteCategories adapter.RemoteCategoryClient,
	remoteTxns adapter.RemoteTransactionClient,
	sessions adapter.SessionService,
) *DeleteCategoryUseCase {
	return &DeleteCategoryUseCase{
		categoryStore:    categoryStore,
		transactionStore: transactionStore,
		remoteCategories: remoteCategories,
		remoteTxns:       remoteTxns,
		sessions:         sessions,
	}
}

// Execute performs the category deletion.
func (uc *DeleteCategoryUseCase) Execute(ctx context.Context, input DeleteCategoryInput) (*DeleteCategoryOutput, error) {
	if entity.IsReservedCategoryID(input.ID) {
		return nil, domainerror.NewCategoryError(
			domainerror.ErrCodeCategoryReserved,
			"reserved categories cannot be deleted",
			domainerror.ErrCategoryReserved,
		)
	}

	category, err := uc.categoryStore.FindByID(ctx, input.ID)
	if err != nil {
		if errors.Is(err, domainerror.ErrCategoryNotFound) {
			return nil, domainerror.NewCategoryError(
				domainerror.ErrCodeCategoryNotFound,
				"category not found",
				domainerror.ErrCategoryNotFound,
			)
		}
		return nil, fmt.Errorf("failed to find category: %w", err)
	}
	if category.IsDeleted {
		return &DeleteCategoryOutput{Tombstoned: true}, nil
	}

	fallback := entity.FallbackCategoryID(category.Type)
	category.Touch()
	moved, err := uc.transactionStore.ReassignCategory(ctx, category.ID, fallback, category.UpdatedAt)
	if err != nil {
		return nil, domainerror.NewCategoryError(
			domainerror.ErrCodeCategoryStoreFailure,
			"failed to reassign transactions",
			err,
		)
	}

	output := &DeleteCategoryOutput{Reassigned: moved}

	session, sessionErr := uc.sessions.Current(ctx)
	if sessionErr == nil && uc.removeRemote(ctx, session.UserID, category.ID, fallback) {
		if err := uc.categoryStore.HardDelete(ctx, category.ID); err != nil {
			return nil, domainerror.NewCategoryError(
				domainerror.ErrCodeCategoryStoreFailure,
				"failed to delete category",
				err,
			)
		}
		return output, nil
	}

	if err := uc.categoryStore.MarkDeleted(ctx, category.ID, category.UpdatedAt); err != nil {
		return nil, domainerror.NewCategoryError(
			domainerror.ErrCodeCategoryStoreFailure,
			"failed to delete category",
			err,
		)
	}
	output.Tombstoned = true
	return output, nil
}

// removeRemote mirrors the reassignment and then removes the remote category.
// Either call failing leaves the local tombstone in place for the next sync.
func (uc *DeleteCategoryUseCase) removeRemote(ctx context.Context, userID string, categoryID, fallback int64) bool {
	if err := uc.remoteTxns.ReassignCategory(ctx, userID, categoryID, fallback); err != nil {
		slog.Warn("Failed to reassign remote transactions", "categoryID", categoryID, "error", err)
		return false
	}
	if err := uc.remoteCategories.Delete(ctx, userID, categoryID); err != nil {
		slog.Warn("Failed to delete remote category", "categoryID", categoryID, "error", err)
		return false
	}
	return true
}
