// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/expense-tracker/core/internal/domain/entity"
)

// AlertQueue is the durable queue of budget alerts awaiting delivery.
type AlertQueue interface {
	// Enqueue stores a pending alert.
	Enqueue(ctx context.Context, alert *entity.BudgetAlert) error

	// PendingAlerts returns up to limit pending alerts, oldest first.
	PendingAlerts(ctx context.Context, limit int) ([]*entity.BudgetAlert, error)

	// MarkSent records a successful delivery.
	MarkSent(ctx context.Context, id uuid.UUID) error

	// MarkFailed records a failed attempt; the alert stays pending while
	// attempts remain and flips to failed afterwards.
	MarkFailed(ctx context.Context, id uuid.UUID, reason string) error
}

// AlertSender delivers a single budget alert to the user.
type AlertSender interface {
	Send(ctx context.Context, alert *entity.BudgetAlert) error
}
