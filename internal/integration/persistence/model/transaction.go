// Package model defines database models for the persistence layer.
package model

import (
	"github.com/shopspring/decimal"

	"github.com/expense-tracker/core/internal/domain/entity"
)

// TransactionModel represents the transactions table in the local database.
// Soft deletion is an explicit column rather than gorm's DeletedAt: the
// reconciliation engine reads tombstones and removes them itself.
type TransactionModel struct {
	ID         int64           `gorm:"primaryKey"`
	Amount     decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	Name       string          `gorm:"type:varchar(255);not null"`
	Type       string          `gorm:"type:varchar(10);not null;index"`
	CategoryID int64           `gorm:"not null;index"`
	Note       string          `gorm:"type:text"`
	Date       int64           `gorm:"not null;index"`
	Location   string          `gorm:"type:varchar(255)"`
	ImageURL   string          `gorm:"type:text"`
	UpdatedAt  int64           `gorm:"not null;autoUpdateTime:false"`
	IsDeleted  bool            `gorm:"not null;default:false;index"`
}

// TableName returns the table name for the TransactionModel.
func (TransactionModel) TableName() string {
	return "transactions"
}

// ToEntity converts a TransactionModel to a domain Transaction entity.
func (m *TransactionModel) ToEntity() *entity.Transaction {
	return &entity.Transaction{
		ID:         m.ID,
		Amount:     m.Amount,
		Name:       m.Name,
		Type:       entity.TransactionType(m.Type),
		CategoryID: m.CategoryID,
		Note:       m.Note,
		Date:       m.Date,
		Location:   m.Location,
		ImageURL:   m.ImageURL,
		UpdatedAt:  m.UpdatedAt,
		IsDeleted:  m.IsDeleted,
	}
}

// TransactionFromEntity converts a domain Transaction entity to a TransactionModel.
func TransactionFromEntity(t *entity.Transaction) *TransactionModel {
	return &TransactionModel{
		ID:         t.ID,
		Amount:     t.Amount,
		Name:       t.Name,
		Type:       string(t.Type),
		CategoryID: t.CategoryID,
		Note:       t.Note,
		Date:       t.Date,
		Location:   t.Location,
		ImageURL:   t.ImageURL,
		UpdatedAt:  t.UpdatedAt,
		IsDeleted:  t.IsDeleted,
	}
}
