package transaction

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/expense-tracker/core/internal/application/adapter"
	domainerror "github.com/expense-tracker/core/internal/domain/error"
)

// DeleteTransactionInput represents the input for transaction deletion.
type DeleteTransactionInput struct {
	ID int64
}

// DeleteTransactionOutput reports how the deletion was carried out.
// Tombstoned means the record was soft-deleted locally and will be
// purged remotely on the next sync.
type DeleteTransactionOutput struct {
	Tombstoned bool
}

// DeleteTransactionUseCase handles transaction deletion. With an active
// session the remote copy is removed first and the local row hard-deleted;
// without one, or when the remote call fails, the row is kept as a
// tombstone for the sync engine to propagate.
type DeleteTransactionUseCase struct {
	transactionStore adapter.TransactionStore
	remoteTxns       adapter.RemoteTransactionClient
	sessions         adapter.SessionService
}

// NewDeleteTransactionUseCase creates a new DeleteTransactionUseCase instance.
func NewDeleteTransactionUseCase(
	transactionStore adapter.TransactionStore,
	remoteTxns adapter.RemoteTransactionClient,
	sessions adapter.SessionService,
) *DeleteTransactionUseCase {
	return &DeleteTransactionUseCase{
		transactionStore: transactionStore,
		remoteTxns:       remoteTxns,
		sessions:         sessions,
	}
}

// Execute performs the transaction deletion.
func (uc *DeleteTransactionUseCase) Execute(ctx context.Context, input DeleteTransactionInput) (*DeleteTransactionOutput, error) {
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
		return &DeleteTransactionOutput{Tombstoned: true}, nil
	}

	session, sessionErr := uc.sessions.Current(ctx)
	if sessionErr == nil {
		if err := uc.remoteTxns.Delete(ctx, session.UserID, transaction.ID); err == nil {
			if err := uc.transactionStore.HardDelete(ctx, transaction.ID); err != nil {
				return nil, domainerror.NewTransactionError(
					domainerror.ErrCodeTransactionStoreFailure,
					"failed to delete transaction",
					err,
				)
			}
			return &DeleteTransactionOutput{Tombstoned: false}, nil
		} else {
			slog.Warn("Failed to delete remote transaction, keeping tombstone",
				"transactionID", transaction.ID, "error", err)
		}
	}

	transaction.Touch()
	if err := uc.transactionStore.MarkDeleted(ctx, transaction.ID, transaction.UpdatedAt); err != nil {
		return nil, domainerror.NewTransactionError(
			domainerror.ErrCodeTransactionStoreFailure,
			"failed to delete transaction",
			err,
		)
	}
	return &DeleteTransactionOutput{Tombstoned: true}, nil
}
