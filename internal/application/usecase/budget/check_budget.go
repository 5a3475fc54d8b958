// Package budget contains the budget evaluation use case.
package budget

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/expense-tracker/core/internal/application/adapter"
	"github.com/expense-tracker/core/internal/domain/entity"
)

// CheckBudgetInput represents the input for a budget evaluation.
type CheckBudgetInput struct {
	Transaction *entity.Transaction
}

// CheckBudgetOutput represents the output of a budget evaluation.
type CheckBudgetOutput struct {
	// Exceeded reports whether the running total met or exceeded the limit.
	Exceeded bool
	// Alert is the queued alert when Exceeded is true, nil otherwise.
	Alert *entity.BudgetAlert
}

// CheckBudgetUseCase recomputes a category's running total after a mutation
// and queues a notification when the configured limit is crossed. It runs
// after the triggering insert/update, so that transaction is part of the
// total. Best-effort by contract: the caller logs failures and moves on.
type CheckBudgetUseCase struct {
	transactionStore adapter.TransactionStore
	categoryStore    adapter.CategoryStore
	alertQueue       adapter.AlertQueue
	preferences      adapter.PreferenceStore
}

// NewCheckBudgetUseCase creates a new CheckBudgetUseCase instance.
func NewCheckBudgetUseCase(
	transactionStore adapter.TransactionStore,
	categoryStore adapter.CategoryStore,
	alertQueue adapter.AlertQueue,
	preferences adapter.PreferenceStore,
) *CheckBudgetUseCase {
	return &CheckBudgetUseCase{
		transactionStore: transactionStore,
		categoryStore:    categoryStore,
		alertQueue:       alertQueue,
		preferences:      preferences,
	}
}

// Execute performs the budget evaluation.
func (uc *CheckBudgetUseCase) Execute(ctx context.Context, input CheckBudgetInput) (*CheckBudgetOutput, error) {
	txn := input.Transaction
	if txn == nil || !txn.IsExpense() {
		return &CheckBudgetOutput{}, nil
	}

	enabled, err := uc.preferences.GetOrDefault(ctx, entity.PrefNotificationsEnabled, "true")
	if err == nil {
		if on, parseErr := strconv.ParseBool(enabled); parseErr == nil && !on {
			return &CheckBudgetOutput{}, nil
		}
	}

	category, err := uc.categoryStore.FindByID(ctx, txn.CategoryID)
	if err != nil {
		return nil, fmt.Errorf("failed to load category %d: %w", txn.CategoryID, err)
	}
	if !category.HasLimit() {
		return &CheckBudgetOutput{}, nil
	}

	total, err := uc.transactionStore.SumExpensesByCategory(ctx, category.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to total category %d: %w", category.ID, err)
	}

	if total.LessThan(*category.Limit) {
		return &CheckBudgetOutput{}, nil
	}

	alert := entity.NewBudgetAlert(category.ID, category.Title, total, *category.Limit)
	if err := uc.alertQueue.Enqueue(ctx, alert); err != nil {
		return nil, fmt.Errorf("failed to enqueue budget alert: %w", err)
	}

	slog.Info("Budget limit reached",
		"categoryID", category.ID,
		"category", category.Title,
		"total", total.String(),
		"limit", category.Limit.String(),
	)

	return &CheckBudgetOutput{Exceeded: true, Alert: alert}, nil
}
