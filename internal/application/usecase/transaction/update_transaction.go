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

// UpdateTransactionInput represents the input for transaction update.
// Nil fields are left untouched.
type UpdateTransactionInput struct {
	ID         int64
	Amount     *decimal.Decimal
	Name       *string
	Type       *entity.TransactionType
	CategoryID *int64
	Note       *string
	Date       *int64
	Location   *string
	ImageURL   *string
}

// UpdateTransactionOutput represents the output of transaction update.
type UpdateTransactionOutput struct {
	Transaction    *TransactionOutput
	RemoteSynced   bool
	BudgetExceeded bool
}

// UpdateTransactionUseCase handles transaction edits. Every edit strictly
// advances the record's clock so the next sync pass sees it as newest.
type UpdateTransactionUseCase struct {
	transactionStore adapter.TransactionStore
	categoryStore    adapter.CategoryStore
	remoteTxns       adapter.RemoteTransactionClient
	sessions         adapter.SessionService
	budgetCheck      *budget.CheckBudgetUseCase
}

// NewUpdateTransactionUseCase creates a new UpdateTransactionUseCase instance.
func NewUpdateTransactionUseCase(
	transactionStore adapter.TransactionStore,
	categoryStore adapter.CategoryStore,
	remoteTxns adapter.RemoteTransactionClient,
	sessions adapter.SessionService,
	budgetCheck *budget.CheckBudgetUseCase,
) *UpdateTransactionUseCase {
	return &UpdateTransactionUseCase{
		transactionStore: transactionStore,
		categoryStore:    categoryStore,
		remoteTxns:       remoteTxns,
		sessions:         sessions,
		budgetCheck:      budgetCheck,
	}
}

// Execute performs the transaction update.
func (uc *UpdateTransactionUseCase) Execute(ctx context.Context, input UpdateTransactionInput) (*UpdateTransactionOutput, error) {
	transaction, err := uc.transactionStore.FindByID(ctx, input.ID)
	if err != nil {
		if errors.Is(err, domainerror.ErrTransactionNotFound) {
			return nil, domainerror.NewTransactionError(
				domainerror.ErrCodeTransactionNotFound,
				"transaction not found",
				domainerror.ErrTransactionNotFound,
			)
		}
		return nil, fmt.Errorf("failed to find transaction: %w", err)
	}
	if transaction.IsDeleted {
		return nil, domainerror.NewTransactionError(
			domainerror.ErrCodeTransactionNotFound,
			"transaction not found",
			domainerror.ErrTransactionNotFound,
		)
	}

	if err := uc.apply(ctx, transaction, input); err != nil {
		return nil, err
	}

	transaction.Touch()
	if err := uc.transactionStore.Update(ctx, transaction); err != nil {
		return nil, domainerror.NewTransactionError(
			domainerror.ErrCodeTransactionStoreFailure,
			"failed to update transaction",
			err,
		)
	}

	output := &UpdateTransactionOutput{Transaction: toOutput(transaction)}
	output.RemoteSynced = uc.mirrorUpdate(ctx, transaction)
	output.BudgetExceeded = uc.runBudgetCheck(ctx, transaction)

	return output, nil
}

func (uc *UpdateTransactionUseCase) apply(ctx context.Context, transaction *entity.Transaction, input UpdateTransactionInput) error {
	if input.Name != nil {
		if *input.Name == "" {
			return domainerror.NewTransactionError(
				domainerror.ErrCodeTransactionNameRequired,
				"transaction name is required",
				domainerror.ErrTransactionNameRequired,
			)
		}
		if len(*input.Name) > MaxNameLength {
			return domainerror.NewTransactionError(
				domainerror.ErrCodeTransactionNameTooLong,
				fmt.Sprintf("name must not exceed %d characters", MaxNameLength),
				domainerror.ErrTransactionNameTooLong,
			)
		}
		transaction.Name = *input.Name
	}
	if input.Note != nil {
		if len(*input.Note) > MaxNoteLength {
			return domainerror.NewTransactionError(
				domainerror.ErrCodeNoteTooLong,
				fmt.Sprintf("note must not exceed %d characters", MaxNoteLength),
				domainerror.ErrNoteTooLong,
			)
		}
		transaction.Note = *input.Note
	}
	if input.Type != nil {
		if !isValidTransactionType(*input.Type) {
			return domainerror.NewTransactionError(
				domainerror.ErrCodeInvalidTransactionType,
				"transaction type must be 'expense' or 'income'",
				domainerror.ErrInvalidTransactionType,
			)
		}
		transaction.Type = *input.Type
	}
	if input.Amount != nil {
		if !input.Amount.IsPositive() {
			return domainerror.NewTransactionError(
				domainerror.ErrCodeInvalidTransactionAmount,
				"amount must be positive",
				domainerror.ErrInvalidTransactionAmount,
			)
		}
		transaction.Amount = *input.Amount
	}
	if input.CategoryID != nil {
		if err := uc.resolveCategory(ctx, *input.CategoryID); err != nil {
			return err
		}
		transaction.CategoryID = *input.CategoryID
	}
	if input.Date != nil {
		transaction.Date = *input.Date
	}
	if input.Location != nil {
		transaction.Location = *input.Location
	}
	if input.ImageURL != nil {
		transaction.ImageURL = *input.ImageURL
	}
	return nil
}

func (uc *UpdateTransactionUseCase) resolveCategory(ctx context.Context, categoryID int64) error {
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

func (uc *UpdateTransactionUseCase) mirrorUpdate(ctx context.Context, transaction *entity.Transaction) bool {
	session, err := uc.sessions.Current(ctx)
	if err != nil {
		return false
	}
	if err := uc.remoteTxns.Update(ctx, session.UserID, transaction); err != nil {
		slog.Warn("Failed to mirror transaction update", "transactionID", transaction.ID, "error", err)
		return false
	}
	return true
}

func (uc *UpdateTransactionUseCase) runBudgetCheck(ctx context.Context, transaction *entity.Transaction) bool {
	out, err := uc.budgetCheck.Execute(ctx, budget.CheckBudgetInput{Transaction: transaction})
	if err != nil {
		slog.Warn("Budget check failed", "transactionID", transaction.ID, "error", err)
		return false
	}
	return out.Exceeded
}
