package model

import (
	"github.com/shopspring/decimal"

	"github.com/expense-tracker/core/internal/domain/entity"
)

// CategoryModel represents the categories table in the local database.
// The two reserved fallback rows live here with negative ids.
type CategoryModel struct {
	ID        int64            `gorm:"primaryKey"`
	Type      string           `gorm:"type:varchar(10);not null;index"`
	Title     string           `gorm:"type:varchar(100);not null"`
	Icon      string           `gorm:"type:varchar(10)"`
	Limit     *decimal.Decimal `gorm:"column:budget_limit;type:decimal(15,2)"`
	UpdatedAt int64            `gorm:"not null;autoUpdateTime:false"`
	IsDeleted bool             `gorm:"not null;default:false;index"`
}

// TableName returns the table name for the CategoryModel.
func (CategoryModel) TableName() string {
	return "categories"
}

// ToEntity converts a CategoryModel to a domain Category entity.
func (m *CategoryModel) ToEntity() *entity.Category {
	return &entity.Category{
		ID:        m.ID,
		Type:      entity.CategoryType(m.Type),
		Title:     m.Title,
		Icon:      m.Icon,
		Limit:     m.Limit,
		UpdatedAt: m.UpdatedAt,
		IsDeleted: m.IsDeleted,
	}
}

// CategoryFromEntity converts a domain Category entity to a CategoryModel.
func CategoryFromEntity(c *entity.Category) *CategoryModel {
	return &CategoryModel{
		ID:        c.ID,
		Type:      string(c.Type),
		Title:     c.Title,
		Icon:      c.Icon,
		Limit:     c.Limit,
		UpdatedAt: c.UpdatedAt,
		IsDeleted: c.IsDeleted,
	}
}
