// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AlertStatus represents the delivery state of a queued budget alert.
type AlertStatus string

const (
	AlertStatusPending AlertStatus = "pending"
	AlertStatusSent    AlertStatus = "sent"
	AlertStatusFailed  AlertStatus = "failed"
)

// MaxAlertAttempts is the number of delivery attempts before an alert is
// marked failed for good.
const MaxAlertAttempts = 3

// BudgetAlert is a queued notification raised when a category's running spend
// meets or exceeds its configured limit.
type BudgetAlert struct {
	ID            uuid.UUID
	CategoryID    int64
	CategoryTitle string
	Total         decimal.Decimal
	Limit         decimal.Decimal
	Status        AlertStatus
	Attempts      int
	LastError     string
	CreatedAt     time.Time
	SentAt        *time.Time
}

// NewBudgetAlert creates a pending budget alert.
func NewBudgetAlert(categoryID int64, categoryTitle string, total, limit decimal.Decimal) *BudgetAlert {
	return &BudgetAlert{
		ID:            uuid.New(),
		CategoryID:    categoryID,
		CategoryTitle: categoryTitle,
		Total:         total,
		Limit:         limit,
		Status:        AlertStatusPending,
		CreatedAt:     time.Now().UTC(),
	}
}

// CanRetry reports whether another delivery attempt is allowed.
func (a *BudgetAlert) CanRetry() bool {
	return a.Attempts < MaxAlertAttempts
}
