package transaction

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/expense-tracker/core/internal/application/adapter"
	domainerror "github.com/expense-tracker/core/internal/domain/error"
)

// AttachImageInput represents the input for attaching a receipt image.
type AttachImageInput struct {
	TransactionID int64
	ImageData     []byte
	ContentType   string
}

// AttachImageOutput represents the output of attaching a receipt image.
type AttachImageOutput struct {
	Transaction *TransactionOutput
	ImageURL    string
}

// AttachImageUseCase uploads a receipt image through the relay and binds the
// hosted URL to the transaction. Requires an active session: images are never
// stored locally, only their URLs.
type AttachImageUseCase struct {
	transactionStore adapter.TransactionStore
	remoteTxns       adapter.RemoteTransactionClient
	remoteImages     adapter.RemoteImageClient
	sessions         adapter.SessionService
}

// NewAttachImageUseCase creates a new AttachImageUseCase instance.
func NewAttachImageUseCase(
	transactionStore adapter.TransactionStore,
	remoteTxns adapter.RemoteTransactionClient,
	remoteImages adapter.RemoteImageClient,
	sessions adapter.SessionService,
) *AttachImageUseCase {
	return &AttachImageUseCase{
		transactionStore: transactionStore,
		remoteTxns:       remoteTxns,
		remoteImages:     remoteImages,
		sessions:         sessions,
	}
}

// Execute performs the image attachment.
func (uc *AttachImageUseCase) Execute(ctx context.Context, input AttachImageInput) (*AttachImageOutput, error) {
	if len(input.ImageData) == 0 {
		return nil, domainerror.NewTransactionError(
			domainerror.ErrCodeImageDataRequired,
			"image data is required",
			domainerror.ErrImageDataRequired,
		)
	}

	session, err := uc.sessions.Current(ctx)
	if err != nil {
		return nil, err
	}

	transaction, err := uc.transactionStore.FindByID(ctx, input.TransactionID)
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

	image := adapter.RequestedImage{
		ImageName:   uuid.New().String(),
		ImageData:   input.ImageData,
		ContentType: input.ContentType,
	}

	var url string
	if transaction.ImageURL == "" {
		url, err = uc.remoteImages.Upload(ctx, session.UserID, image)
	} else {
		url, err = uc.remoteImages.Update(ctx, session.UserID, image)
	}
	if err != nil {
		return nil, domainerror.NewTransactionError(
			domainerror.ErrCodeImageUploadFailure,
			"failed to upload image",
			err,
		)
	}

	transaction.ImageURL = url
	transaction.Touch()
	if err := uc.transactionStore.Update(ctx, transaction); err != nil {
		return nil, domainerror.NewTransactionError(
			domainerror.ErrCodeTransactionStoreFailure,
			"failed to update transaction",
			err,
		)
	}

	if err := uc.remoteTxns.Update(ctx, session.UserID, transaction); err != nil {
		slog.Warn("Failed to mirror image attachment", "transactionID", transaction.ID, "error", err)
	}

	return &AttachImageOutput{Transaction: toOutput(transaction), ImageURL: url}, nil
}
