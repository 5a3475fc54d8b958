package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/expense-tracker/core/internal/domain/entity"
)

// BudgetAlertModel represents the budget_alerts delivery queue table.
type BudgetAlertModel struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey"`
	CategoryID    int64           `gorm:"not null;index"`
	CategoryTitle string          `gorm:"type:varchar(100);not null"`
	Total         decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	Limit         decimal.Decimal `gorm:"column:budget_limit;type:decimal(15,2);not null"`
	Status        string          `gorm:"type:varchar(10);not null;index"`
	Attempts      int             `gorm:"not null;default:0"`
	LastError     string          `gorm:"type:text"`
	CreatedAt     time.Time       `gorm:"not null"`
	SentAt        *time.Time
}

// TableName returns the table name for the BudgetAlertModel.
func (BudgetAlertModel) TableName() string {
	return "budget_alerts"
}

// ToEntity converts a BudgetAlertModel to a domain BudgetAlert entity.
func (m *BudgetAlertModel) ToEntity() *entity.BudgetAlert {
	return &entity.BudgetAlert{
		ID:            m.ID,
		CategoryID:    m.CategoryID,
		CategoryTitle: m.CategoryTitle,
		Total:         m.Total,
		Limit:         m.Limit,
		Status:        entity.AlertStatus(m.Status),
		Attempts:      m.Attempts,
		LastError:     m.LastError,
		CreatedAt:     m.CreatedAt,
		SentAt:        m.SentAt,
	}
}

// BudgetAlertFromEntity converts a domain BudgetAlert entity to a BudgetAlertModel.
func BudgetAlertFromEntity(a *entity.BudgetAlert) *BudgetAlertModel {
	return &BudgetAlertModel{
		ID:            a.ID,
		CategoryID:    a.CategoryID,
		CategoryTitle: a.CategoryTitle,
		Total:         a.Total,
		Limit:         a.Limit,
		Status:        string(a.Status),
		Attempts:      a.Attempts,
		LastError:     a.LastError,
		CreatedAt:     a.CreatedAt,
		SentAt:        a.SentAt,
	}
}
