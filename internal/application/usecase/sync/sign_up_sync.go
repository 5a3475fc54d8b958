// Package sync contains the reconciliation engine merging the local store
// with the per-user remote mirror.
package sync

import (
	"context"
	"log/slog"
	"strconv"
	"time"

	"github.com/expense-tracker/core/internal/application/adapter"
	"github.com/expense-tracker/core/internal/domain/entity"
	domainerror "github.com/expense-tracker/core/internal/domain/error"
)

// SignUpSyncInput represents the input for the push-on-signup pass.
type SignUpSyncInput struct {
	UserID string
}

// SignUpSyncOutput represents the output of the push-on-signup pass.
type SignUpSyncOutput struct {
	Report *Report
}

// SignUpSyncUseCase runs once after a guest converts to an account: every
// live local transaction is pushed as a remote create, every soft-deleted one
// is finalized with a hard local delete (it was never pushed, so there is
// nothing to propagate). The remote ends up holding exactly the local live
// set. Categories are seeded one-way through the bulk initial endpoint.
type SignUpSyncUseCase struct {
	transactionStore adapter.TransactionStore
	categoryStore    adapter.CategoryStore
	remoteTxns       adapter.RemoteTransactionClient
	remoteCategories adapter.RemoteCategoryClient
	preferences      adapter.PreferenceStore
	events           chan<- Event
}

// NewSignUpSyncUseCase creates a new SignUpSyncUseCase instance.
func NewSignUpSyncUseCase(
	transactionStore adapter.TransactionStore,
	categoryStore adapter.CategoryStore,
	remoteTxns adapter.RemoteTransactionClient,
	remoteCategories adapter.RemoteCategoryClient,
	preferences adapter.PreferenceStore,
) *SignUpSyncUseCase {
	return &SignUpSyncUseCase{
		transactionStore: transactionStore,
		categoryStore:    categoryStore,
		remoteTxns:       remoteTxns,
		remoteCategories: remoteCategories,
		preferences:      preferences,
	}
}

// WithEvents attaches a channel receiving one event per record action.
func (uc *SignUpSyncUseCase) WithEvents(events chan<- Event) *SignUpSyncUseCase {
	uc.events = events
	return uc
}

// Execute performs the push pass. Each record is handled exactly once; remote
// creates run sequentially and a failing record never aborts the batch.
func (uc *SignUpSyncUseCase) Execute(ctx context.Context, input SignUpSyncInput) (*SignUpSyncOutput, error) {
	report := &Report{}

	local, err := uc.transactionStore.FindAll(ctx)
	if err != nil {
		return nil, domainerror.NewSyncError(
			domainerror.ErrCodeSyncLocalStoreFailure,
			"failed to read local transactions",
			err,
		)
	}

	for _, l := range local {
		if l.IsDeleted {
			uc.purgeLocal(ctx, l, report)
			continue
		}
		uc.pushCreate(ctx, input.UserID, l, report)
	}

	uc.seedCategories(ctx, input.UserID)

	if err := uc.preferences.Set(ctx, entity.PrefLastSyncAt, strconv.FormatInt(time.Now().UnixMilli(), 10)); err != nil {
		slog.Warn("Failed to record last sync time", "error", err)
	}

	slog.Info("Signup sync completed",
		"userID", input.UserID,
		"pushed", report.Pushed,
		"purged", report.Purged,
		"failed", report.Failed,
	)

	return &SignUpSyncOutput{Report: report}, nil
}

func (uc *SignUpSyncUseCase) pushCreate(ctx context.Context, userID string, l *entity.Transaction, report *Report) {
	if err := uc.remoteTxns.Create(ctx, userID, l); err != nil {
		slog.Warn("Failed to push transaction on signup", "transactionID", l.ID, "error", err)
		report.recordFailure(l.ID, ActionPushed, err)
		uc.publish(Event{Action: ActionFailed, TransactionID: l.ID, Err: err})
		return
	}
	report.Pushed++
	uc.publish(Event{Action: ActionPushed, TransactionID: l.ID})
}

func (uc *SignUpSyncUseCase) purgeLocal(ctx context.Context, l *entity.Transaction, report *Report) {
	if err := uc.transactionStore.HardDelete(ctx, l.ID); err != nil {
		slog.Error("Failed to purge local tombstone", "transactionID", l.ID, "error", err)
		report.recordFailure(l.ID, ActionPurged, err)
		uc.publish(Event{Action: ActionFailed, TransactionID: l.ID, Err: err})
		return
	}
	report.Purged++
	uc.publish(Event{Action: ActionPurged, TransactionID: l.ID})
}

// seedCategories uploads the live local category set in one initial call.
// Best-effort: a failure is logged and the pass continues.
func (uc *SignUpSyncUseCase) seedCategories(ctx context.Context, userID string) {
	live, err := uc.categoryStore.FindLive(ctx, nil)
	if err != nil {
		slog.Warn("Failed to read local categories for seeding", "error", err)
		return
	}
	if len(live) == 0 {
		return
	}
	if err := uc.remoteCategories.SeedInitial(ctx, userID, live); err != nil {
		slog.Warn("Failed to seed remote categories", "count", len(live), "error", err)
		return
	}
	slog.Info("Seeded remote categories", "count", len(live))
}

func (uc *SignUpSyncUseCase) publish(event Event) {
	if uc.events != nil {
		uc.events <- event
	}
}
