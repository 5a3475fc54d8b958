package category

import (
	"context"
	"fmt"

	"github.com/expense-tracker/core/internal/application/adapter"
	"github.com/expense-tracker/core/internal/domain/entity"
)

// ListCategoriesInput represents the input for category listing.
type ListCategoriesInput struct {
	Type *entity.CategoryType
}

// ListCategoriesOutput represents the output of category listing.
type ListCategoriesOutput struct {
	Categories []*CategoryOutput
}

// ListCategoriesUseCase lists live categories from the local store.
type ListCategoriesUseCase struct {
	categoryStore adapter.CategoryStore
}

// NewListCategoriesUseCase creates a new ListCategoriesUseCase instance.
func NewListCategoriesUseCase(categoryStore adapter.CategoryStore) *ListCategoriesUseCase {
	return &ListCategoriesUseCase{categoryStore: categoryStore}
}

// Execute performs the category listing.
func (uc *ListCategoriesUseCase) Execute(ctx context.Context, input ListCategoriesInput) (*ListCategoriesOutput, error) {
	categories, err := uc.categoryStore.FindLive(ctx, input.Type)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}

	output := &ListCategoriesOutput{Categories: make([]*CategoryOutput, 0, len(categories))}
	for _, category := range categories {
		output.Categories = append(output.Categories, toOutput(category))
	}
	return output, nil
}
