package category

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/shopspring/decimal"

	"github.com/expense-tracker/core/internal/application/adapter"
	"github.com/expense-tracker/core/internal/domain/entity"
	domainerror "github.com/expense-tracker/core/internal/domain/error"
)

// CreateCategoryInput represents the input for category creation.
type CreateCategoryInput struct {
	ID    int64 // caller-assigned; zero means "now" in wall-clock millis
	Type  entity.CategoryType
	Title string
	Icon  string
	Limit *decimal.Decimal
}

// CreateCategoryOutput represents the output of category creation.
type CreateCategoryOutput struct {
	Category     *CategoryOutput
	RemoteSynced bool
}

// CreateCategoryUseCase handles category creation: local write first, then
// the opportunistic remote push.
type CreateCategoryUseCase struct {
	categoryStore    adapter.CategoryStore
	remoteCategories adapter.RemoteCategoryClient
	sessions         adapter.SessionService
}

// NewCreateCategoryUseCase creates a new CreateCategoryUseCase instance.
func NewCreateCategoryUseCase(
	categoryStore adapter.CategoryStore,
	remoteCategories adapter.RemoteCategoryClient,
	sessions adapter.SessionService,
) *CreateCategoryUseCase {
	return &CreateCategoryUseCase{
		categoryStore:    categoryStore,
		remoteCategories: remoteCategories,
		sessions:         sessions,
	}
}

// Execute performs the category creation.
func (uc *CreateCategoryUseCase) Execute(ctx context.Context, input CreateCategoryInput) (*CreateCategoryOutput, error) {
	if err := validateCategory(input.Title, input.Type, input.Limit); err != nil {
		return nil, err
	}

	category := entity.NewCategory(input.ID, input.Type, input.Title, input.Icon, input.Limit)
	if category.IsReserved() {
		return nil, domainerror.NewCategoryError(
			domainerror.ErrCodeCategoryReserved,
			"reserved category ids cannot be reused",
			domainerror.ErrCategoryReserved,
		)
	}

	if err := uc.categoryStore.Create(ctx, category); err != nil {
		return nil, domainerror.NewCategoryError(
			domainerror.ErrCodeCategoryStoreFailure,
			"failed to create category",
			err,
		)
	}

	output := &CreateCategoryOutput{Category: toOutput(category)}
	output.RemoteSynced = uc.mirrorCreate(ctx, category)
	return output, nil
}

func (uc *CreateCategoryUseCase) mirrorCreate(ctx context.Context, category *entity.Category) bool {
	session, err := uc.sessions.Current(ctx)
	if err != nil {
		return false
	}
	if err := uc.remoteCategories.Create(ctx, session.UserID, category); err != nil {
		slog.Warn("Failed to mirror category create", "categoryID", category.ID, "error", err)
		return false
	}
	return true
}

func validateCategory(title string, categoryType entity.CategoryType, limit *decimal.Decimal) error {
	if title == "" {
		return domainerror.NewCategoryError(
			domainerror.ErrCodeCategoryTitleRequired,
			"category title is required",
			domainerror.ErrCategoryTitleRequired,
		)
	}
	if len(title) > MaxTitleLength {
		return domainerror.NewCategoryError(
			domainerror.ErrCodeCategoryTitleTooLong,
			fmt.Sprintf("title must not exceed %d characters", MaxTitleLength),
			domainerror.ErrCategoryTitleTooLong,
		)
	}
	if !isValidCategoryType(categoryType) {
		return domainerror.NewCategoryError(
			domainerror.ErrCodeInvalidCategoryType,
			"category type must be 'expense' or 'income'",
			domainerror.ErrInvalidCategoryType,
		)
	}
	if limit != nil && limit.IsNegative() {
		return domainerror.NewCategoryError(
			domainerror.ErrCodeInvalidCategoryLimit,
			"budget limit must not be negative",
			domainerror.ErrInvalidCategoryLimit,
		)
	}
	return nil
}
