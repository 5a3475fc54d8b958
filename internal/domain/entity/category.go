// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// CategoryType represents the type of category (expense or income).
type CategoryType string

const (
	CategoryTypeExpense CategoryType = "expense"
	CategoryTypeIncome  CategoryType = "income"
)

// Reserved fallback category ids. These rows always exist, reject deletion,
// and absorb transactions whose category was removed.
const (
	ReservedExpenseCategoryID int64 = -1
	ReservedIncomeCategoryID  int64 = -2
)

// ReservedCategoryTitle is the title of both reserved fallback categories.
const ReservedCategoryTitle = "Others"

// Category represents a transaction category in the local store.
type Category struct {
	ID        int64
	Type      CategoryType
	Title     string
	Icon      string // single glyph
	Limit     *decimal.Decimal
	UpdatedAt int64 // last-mutation timestamp, unix millis
	IsDeleted bool
}

// NewCategory creates a new Category entity. A zero id is replaced with the
// current wall-clock millisecond value.
func NewCategory(id int64, categoryType CategoryType, title, icon string, limit *decimal.Decimal) *Category {
	now := time.Now().UnixMilli()
	if id == 0 {
		id = now
	}

	return &Category{
		ID:        id,
		Type:      categoryType,
		Title:     title,
		Icon:      icon,
		Limit:     limit,
		UpdatedAt: now,
	}
}

// Touch strictly advances the mutation clock.
func (c *Category) Touch() {
	now := time.Now().UnixMilli()
	if now <= c.UpdatedAt {
		now = c.UpdatedAt + 1
	}
	c.UpdatedAt = now
}

// IsReserved reports whether the category is one of the undeletable fallback rows.
func (c *Category) IsReserved() bool {
	return IsReservedCategoryID(c.ID)
}

// HasLimit reports whether a positive budget ceiling is configured.
func (c *Category) HasLimit() bool {
	return c.Limit != nil && c.Limit.IsPositive()
}

// IsReservedCategoryID reports whether id names a reserved fallback category.
func IsReservedCategoryID(id int64) bool {
	return id == ReservedExpenseCategoryID || id == ReservedIncomeCategoryID
}

// FallbackCategoryID returns the reserved fallback id for the given type.
func FallbackCategoryID(categoryType CategoryType) int64 {
	if categoryType == CategoryTypeIncome {
		return ReservedIncomeCategoryID
	}
	return ReservedExpenseCategoryID
}

// ReservedCategories returns fresh copies of the two undeletable fallback rows.
func ReservedCategories() []*Category {
	now := time.Now().UnixMilli()
	return []*Category{
		{ID: ReservedExpenseCategoryID, Type: CategoryTypeExpense, Title: ReservedCategoryTitle, Icon: "❓", UpdatedAt: now},
		{ID: ReservedIncomeCategoryID, Type: CategoryTypeIncome, Title: ReservedCategoryTitle, Icon: "❓", UpdatedAt: now},
	}
}
