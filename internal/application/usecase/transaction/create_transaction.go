// Package transaction contains transaction-related use cases.
package transaction

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/shopspring/decimal"

	"github.com/expense-tracker/core/internal/application/adapter"
	"github.com/expense-tracker/core/internal/application/usecase/budget"
	"github.com/expense-tracker/core/internal/domain/entity"
	domainerror "github.com/expense-tracker/core/internal/domain/error"
)

// CreateTransactionInput represents the input for transaction creation.
type CreateTransactionInput struct {
	ID         int64 // caller-assigned; zero means "now" in wall-clock millis
	Amount     decimal.Decimal
	Name       string
	Type       entity.TransactionType
	CategoryID int64
	Note       string
	Date       int64
	Location   string
	ImageURL   string
}

// CreateTransactionOutput represents the output of transaction creation.
type CreateTransactionOutput struct {
	Transaction *TransactionOutput
	// RemoteSynced reports whether the record reached the remote mirror.
	// False in guest mode or when the push failed (the local write stands).
	RemoteSynced bool
	// BudgetExceeded reports whether this expense crossed its category limit.
	BudgetExceeded bool
}

// CreateTransactionUseCase handles transaction creation: local write first,
// then the opportunistic remote push, then the budget check.
type CreateTransactionUseCase struct {
	transactionStore adapter.TransactionStore
	categoryStore    adapter.CategoryStore
	remoteTxns       adapter.RemoteTransactionClient
	sessions         adapter.SessionService
	budgetCheck      *budget.CheckBudgetUseCase
}

// NewCreateTransactionUseCase creates a new CreateTransactionUseCase instance.
func NewCreateTransactionUseCase(
	transactionStore adapter.TransactionStore,
	categoryStore adapter.CategoryStore,
	remoteTxns adapter.RemoteTransactionClient,
	sessions adapter.SessionService,
	budgetCheck *budget.CheckBudgetUseCase,
) *CreateTransactionUseCase {
	return &CreateTransactionUseCase{
		transactionStore: transactionStore,
		categoryStore:    categoryStore,
		remoteTxns:       remoteTxns,
		sessions:         sessions,
		budgetCheck:      budgetCheck,
	}
}

// Execute performs the transaction creation.
func (uc *CreateTransactionUseCase) Execute(ctx context.Context, input CreateTransactionInput) (*CreateTransactionOutput, error) {
	if err := uc.validate(ctx, input); err != nil {
		return nil, err
	}

	transaction := entity.NewTransaction(
		input.ID,
		input.Amount,
		input.Name,
		input.Type,
		input.CategoryID,
		input.Note,
		input.Date,
		input.Location,
		input.ImageURL,
	)

	if err := uc.transactionStore.Create(ctx, transaction); err != nil {
		return nil, domainerror.NewTransactionError(
			domainerror.ErrCodeTransactionStoreFailure,
			"failed to create transaction",
			err,
		)
	}

	output := &CreateTransactionOutput{Transaction: toOutput(transaction)}
	output.RemoteSynced = uc.mirrorCreate(ctx, transaction)
	output.BudgetExceeded = uc.runBudgetCheck(ctx, transaction)

	return output, nil
}

func (uc *CreateTransactionUseCase) validate(ctx context.Context, input CreateTransactionInput) error {
	if input.Name == "" {
		return domainerror.NewTransactionError(
			domainerror.ErrCodeTransactionNameRequired,
			"transaction name is required",
			domainerror.ErrTransactionNameRequired,
		)
	}
	if len(input.Name) > MaxNameLength {
		return domainerror.NewTransactionError(
			domainerror.ErrCodeTransactionNameTooLong,
			fmt.Sprintf("name must not exceed %d characters", MaxNameLength),
			domainerror.ErrTransactionNameTooLong,
		)
	}
	if len(input.Note) > MaxNoteLength {
		return domainerror.NewTransactionError(
			domainerror.ErrCodeNoteTooLong,
			fmt.Sprintf("note must not exceed %d characters", MaxNoteLength),
			domainerror.ErrNoteTooLong,
		)
	}
	if !isValidTransactionType(input.Type) {
		return domainerror.NewTransactionError(
			domainerror.ErrCodeInvalidTransactionType,
			"transaction type must be 'expense' or 'income'",
			domainerror.ErrInvalidTransactionType,
		)
	}
	if !input.Amount.IsPositive() {
		return domainerror.NewTransactionError(
			domainerror.ErrCodeInvalidTransactionAmount,
			"amount must be positive",
			domainerror.ErrInvalidTransactionAmount,
		)
	}
	return uc.resolveCategory(ctx, input.CategoryID)
}

// resolveCategory enforces the referential invariant: the category must exist
// live, or be one of the two reserved fallback ids.
func (uc *CreateTransactionUseCase) resolveCategory(ctx context.Context, categoryID int64) error {
	if entity.IsReservedCategoryID(categoryID) {
		return nil
	}
	category, err := uc.categoryStore.FindByID(ctx, categoryID)
	if err != nil || category.IsDeleted {
		if err != nil && !errors.Is(err, domainerror.ErrCategoryNotFound) {
			return fmt.Errorf("failed to resolve category: %w", err)
		}
		return domainerror.NewTransactionError(
			domainerror.ErrCodeTxnCategoryNotFound,
			"category not found",
			domainerror.ErrCategoryNotFoundForTransaction,
		)
	}
	return nil
}

// mirrorCreate pushes the new record when a session is active. Failures are
// logged and never roll back the local write.
func (uc *CreateTransactionUseCase) mirrorCreate(ctx context.Context, transaction *entity.Transaction) bool {
	session, err := uc.sessions.Current(ctx)
	if err != nil {
		return false
	}
	if err := uc.remoteTxns.Create(ctx, session.UserID, transaction); err != nil {
		slog.Warn("Failed to mirror transaction create", "transactionID", transaction.ID, "error", err)
		return false
	}
	return true
}

func (uc *CreateTransactionUseCase) runBudgetCheck(ctx context.Context, transaction *entity.Transaction) bool {
	out, err := uc.budgetCheck.Execute(ctx, budget.CheckBudgetInput{Transaction: transaction})
	if err != nil {
		slog.Warn("Budget check failed", "transactionID", transaction.ID, "error", err)
		return false
	}
	return out.Exceeded
}
