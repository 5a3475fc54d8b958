// Package category contains category-related use cases.
package category

import (
	"github.com/shopspring/decimal"

	"github.com/expense-tracker/core/internal/domain/entity"
)

// MaxTitleLength is the maximum allowed length for category titles.
const MaxTitleLength = 100

// CategoryOutput is the use-case view of a category.
type CategoryOutput struct {
	ID        int64
	Type      entity.CategoryType
	Title     string
	Icon      string
	Limit     *decimal.Decimal
	UpdatedAt int64
	Reserved  bool
}

func toOutput(c *entity.Category) *CategoryOutput {
	return &CategoryOutput{
		ID:        c.ID,
		Type:      c.Type,
		Title:     c.Title,
		Icon:      c.Icon,
		Limit:     c.Limit,
		UpdatedAt: c.UpdatedAt,
		Reserved:  c.IsReserved(),
	}
}

func isValidCategoryType(categoryType entity.CategoryType) bool {
	return categoryType == entity.CategoryTypeExpense || categoryType == entity.CategoryTypeIncome
}
