package category

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/shopspring/decimal"

	"github.com/expense-tracker/core/internal/application/adapter"
	"github.com/expense-tracker/core/internal/domain/entity"
	domainerror "github.com/expense-tracker/core/internal/domain/error"
)

// UpdateCategoryInput represents the input for category update.
// Nil fields are left untouched. ClearLimit removes the budget ceiling.
type UpdateCategoryInput struct {
	ID         int64
	Title      *string
	Icon       *string
	Limit      *decimal.Decimal
	ClearLimit bool
}

// UpdateCategoryOutput represents the output of category update.
type UpdateCategoryOutput struct {
	Category     *CategoryOutput
	RemoteSynced bool
}

// UpdateCategoryUseCase handles category edits. Reserved rows accept a limit
// change only; their identity fields stay fixed.
type UpdateCategoryUseCase struct {
	categoryStore    adapter.CategoryStore
	remoteCategories adapter.RemoteCategoryClient
	sessions         adapter.SessionService
}

// NewUpdateCategoryUseCase creates a new UpdateCategoryUseCase instance.
func NewUpdateCategoryUseCase(
	categoryStore adapter.CategoryStore,
	remoteCategories adapter.RemoteCategoryClient,
	sessions adapter.SessionService,
) *UpdateCategoryUseCase {
	return &UpdateCategoryUseCase{
		categoryStore:    categoryStore,
		remoteCategories: remoteCategories,
		sessions:         sessions,
	}
}

// Execute performs the category update.
func (uc *UpdateCategoryUseCase) Execute(ctx context.Context, input UpdateCategoryInput) (*UpdateCategoryOutput, error) {
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
		return nil, domainerror.NewCategoryError(
			domainerror.ErrCodeCategoryNotFound,
			"category not found",
			domainerror.ErrCategoryNotFound,
		)
	}

	if category.IsReserved() && (input.Title != nil || input.Icon != nil) {
		return nil, domainerror.NewCategoryError(
			domainerror.ErrCodeCategoryReserved,
			"reserved categories cannot be renamed",
			domainerror.ErrCategoryReserved,
		)
	}

	if input.Title != nil {
		if err := validateCategory(*input.Title, category.Type, nil); err != nil {
			return nil, err
		}
		category.Title = *input.Title
	}
	if input.Icon != nil {
		category.Icon = *input.Icon
	}
	if input.ClearLimit {
		category.Limit = nil
	} else if input.Limit != nil {
		if input.Limit.IsNegative() {
			return nil, domainerror.NewCategoryError(
				domainerror.ErrCodeInvalidCategoryLimit,
				"budget limit must not be negative",
				domainerror.ErrInvalidCategoryLimit,
			)
		}
		category.Limit = input.Limit
	}

	category.Touch()
	if err := uc.categoryStore.Update(ctx, category); err != nil {
		return nil, domainerror.NewCategoryError(
			domainerror.ErrCodeCategoryStoreFailure,
			"failed to update category",
			err,
		)
	}

	output := &UpdateCategoryOutput{Category: toOutput(category)}
	output.RemoteSynced = uc.mirrorUpdate(ctx, category)
	return output, nil
}

func (uc *UpdateCategoryUseCase) mirrorUpdate(ctx context.Context, category *entity.Category) bool {
	session, err := uc.sessions.Current(ctx)
	if err != nil {
		return false
	}
	if err := uc.remoteCategories.Update(ctx, session.UserID, category); err != nil {
		slog.Warn("Failed to mirror category update", "categoryID", category.ID, "error", err)
		return false
	}
	return true
}
