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

// LogInSyncInput represents the input for the bidirectional merge pass.
type LogInSyncInput struct {
	UserID string
}

// LogInSyncOutput represents the output of the bidirectional merge pass.
type LogInSyncOutput struct {
	Report *Report
}

// LogInSyncUseCase runs the merge-on-login pass: pull the remote snapshot,
// reconcile record-by-record with last-writer-wins on UpdatedAt, propagate
// local tombstones, and upload local-only records. Remote calls run
// sequentially, one in flight at a time, so ordering stays deterministic.
// The pass is idempotent: re-running it with no intervening change issues no
// record-level network calls.
type LogInSyncUseCase struct {
	transactionStore adapter.TransactionStore
	categoryStore    adapter.CategoryStore
	remoteTxns       adapter.RemoteTransactionClient
	remoteCategories adapter.RemoteCategoryClient
	preferences      adapter.PreferenceStore
	events           chan<- Event
}

// NewLogInSyncUseCase creates a new LogInSyncUseCase instance.
func NewLogInSyncUseCase(
	transactionStore adapter.TransactionStore,
	categoryStore adapter.CategoryStore,
	remoteTxns adapter.RemoteTransactionClient,
	remoteCategories adapter.RemoteCategoryClient,
	preferences adapter.PreferenceStore,
) *LogInSyncUseCase {
	return &LogInSyncUseCase{
		transactionStore: transactionStore,
		categoryStore:    categoryStore,
		remoteTxns:       remoteTxns,
		remoteCategories: remoteCategories,
		preferences:      preferences,
	}
}

// WithEvents attaches a channel receiving one event per record action. Sends
// block, so the caller owns draining it; intended for tests and UI progress.
func (uc *LogInSyncUseCase) WithEvents(events chan<- Event) *LogInSyncUseCase {
	uc.events = events
	return uc
}

// Execute performs the merge. Only an unreachable remote snapshot or an
// unreadable local snapshot is fatal; everything after that is per-record.
func (uc *LogInSyncUseCase) Execute(ctx context.Context, input LogInSyncInput) (*LogInSyncOutput, error) {
	report := &Report{}

	remote, err := uc.remoteTxns.List(ctx, input.UserID)
	if err != nil {
		return nil, domainerror.NewSyncError(
			domainerror.ErrCodeRemoteSnapshotUnavailable,
			"failed to fetch remote transactions",
			err,
		)
	}

	local, err := uc.transactionStore.FindAll(ctx)
	if err != nil {
		return nil, domainerror.NewSyncError(
			domainerror.ErrCodeSyncLocalStoreFailure,
			"failed to read local transactions",
			err,
		)
	}

	if len(local) == 0 {
		uc.adoptRemote(ctx, remote, report)
	} else {
		uc.merge(ctx, input.UserID, local, remote, report)
	}

	uc.adoptRemoteCategories(ctx, input.UserID)

	if err := uc.preferences.Set(ctx, entity.PrefLastSyncAt, strconv.FormatInt(time.Now().UnixMilli(), 10)); err != nil {
		slog.Warn("Failed to record last sync time", "error", err)
	}

	slog.Info("Login sync completed",
		"userID", input.UserID,
		"pulled", report.Pulled,
		"pushed", report.Pushed,
		"tombstoned", report.Tombstoned,
		"purged", report.Purged,
		"unchanged", report.Unchanged,
		"failed", report.Failed,
	)

	return &LogInSyncOutput{Report: report}, nil
}

// adoptRemote bulk-inserts the remote set into an empty local store.
func (uc *LogInSyncUseCase) adoptRemote(ctx context.Context, remote []*entity.Transaction, report *Report) {
	if len(remote) == 0 {
		return
	}
	if err := uc.transactionStore.BulkInsert(ctx, remote); err != nil {
		slog.Error("Failed to adopt remote transactions", "count", len(remote), "error", err)
		for _, r := range remote {
			report.recordFailure(r.ID, ActionPulled, err)
			uc.publish(Event{Action: ActionFailed, TransactionID: r.ID, Err: err})
		}
		return
	}
	report.Pulled += len(remote)
	for _, r := range remote {
		uc.publish(Event{Action: ActionPulled, TransactionID: r.ID})
	}
}

// merge reconciles the two indexed snapshots in both directions.
func (uc *LogInSyncUseCase) merge(
	ctx context.Context,
	userID string,
	local, remote []*entity.Transaction,
	report *Report,
) {
	localByID := make(map[int64]*entity.Transaction, len(local))
	for _, l := range local {
		localByID[l.ID] = l
	}
	remoteByID := make(map[int64]*entity.Transaction, len(remote))
	for _, r := range remote {
		remoteByID[r.ID] = r
	}

	// Remote→local pass.
	for _, r := range remote {
		l, ok := localByID[r.ID]
		switch {
		case !ok:
			uc.pullRecord(ctx, r, report)

		case l.IsDeleted:
			uc.propagateTombstone(ctx, userID, l, report)

		case r.UpdatedAt > l.UpdatedAt:
			uc.pullRecord(ctx, r, report)

		case r.UpdatedAt < l.UpdatedAt:
			uc.pushUpdate(ctx, userID, l, report)

		default:
			// Equal clocks: already consistent, no network call.
			report.Unchanged++
			uc.publish(Event{Action: ActionUnchanged, TransactionID: r.ID})
		}
	}

	// Local→remote pass: records the remote never saw.
	for _, l := range local {
		if _, ok := remoteByID[l.ID]; ok {
			continue
		}
		if l.IsDeleted {
			uc.purgeLocal(ctx, l, report)
			continue
		}
		uc.pushCreate(ctx, userID, l, report)
	}
}

// pullRecord writes the remote version into the local store (remote wins).
func (uc *LogInSyncUseCase) pullRecord(ctx context.Context, r *entity.Transaction, report *Report) {
	if err := uc.transactionStore.Upsert(ctx, r); err != nil {
		slog.Error("Failed to apply remote transaction locally", "transactionID", r.ID, "error", err)
		report.recordFailure(r.ID, ActionPulled, err)
		uc.publish(Event{Action: ActionFailed, TransactionID: r.ID, Err: err})
		return
	}
	report.Pulled++
	uc.publish(Event{Action: ActionPulled, TransactionID: r.ID})
}

// propagateTombstone finalizes a local soft-delete that the remote still holds:
// hard-delete locally, then issue the remote delete. A failed remote delete is
// only logged; the local deletion stands.
func (uc *LogInSyncUseCase) propagateTombstone(ctx context.Context, userID string, l *entity.Transaction, report *Report) {
	if err := uc.transactionStore.HardDelete(ctx, l.ID); err != nil {
		slog.Error("Failed to hard-delete local tombstone", "transactionID", l.ID, "error", err)
		report.recordFailure(l.ID, ActionTombstoned, err)
		uc.publish(Event{Action: ActionFailed, TransactionID: l.ID, Err: err})
		return
	}
	if err := uc.remoteTxns.Delete(ctx, userID, l.ID); err != nil {
		slog.Warn("Failed to propagate delete to remote", "transactionID", l.ID, "error", err)
		report.recordFailure(l.ID, ActionTombstoned, err)
		uc.publish(Event{Action: ActionFailed, TransactionID: l.ID, Err: err})
		return
	}
	report.Tombstoned++
	uc.publish(Event{Action: ActionTombstoned, TransactionID: l.ID})
}

// pushUpdate sends the newer local version to the remote (local wins).
func (uc *LogInSyncUseCase) pushUpdate(ctx context.Context, userID string, l *entity.Transaction, report *Report) {
	if err := uc.remoteTxns.Update(ctx, userID, l); err != nil {
		slog.Warn("Failed to push local transaction update", "transactionID", l.ID, "error", err)
		report.recordFailure(l.ID, ActionPushed, err)
		uc.publish(Event{Action: ActionFailed, TransactionID: l.ID, Err: err})
		return
	}
	report.Pushed++
	uc.publish(Event{Action: ActionPushed, TransactionID: l.ID})
}

// pushCreate uploads a local-only record. Remote creates are idempotent
// upserts keyed by id, so a retried pass re-pushing is safe.
func (uc *LogInSyncUseCase) pushCreate(ctx context.Context, userID string, l *entity.Transaction, report *Report) {
	if err := uc.remoteTxns.Create(ctx, userID, l); err != nil {
		slog.Warn("Failed to upload local-only transaction", "transactionID", l.ID, "error", err)
		report.recordFailure(l.ID, ActionPushed, err)
		uc.publish(Event{Action: ActionFailed, TransactionID: l.ID, Err: err})
		return
	}
	report.Pushed++
	uc.publish(Event{Action: ActionPushed, TransactionID: l.ID})
}

// purgeLocal hard-deletes a soft-deleted record the remote never had.
func (uc *LogInSyncUseCase) purgeLocal(ctx context.Context, l *entity.Transaction, report *Report) {
	if err := uc.transactionStore.HardDelete(ctx, l.ID); err != nil {
		slog.Error("Failed to purge local tombstone", "transactionID", l.ID, "error", err)
		report.recordFailure(l.ID, ActionPurged, err)
		uc.publish(Event{Action: ActionFailed, TransactionID: l.ID, Err: err})
		return
	}
	report.Purged++
	uc.publish(Event{Action: ActionPurged, TransactionID: l.ID})
}

// adoptRemoteCategories performs the one-way category seeding on login: the
// remote set is adopted only when the local table holds nothing beyond the two
// reserved rows. Failures are logged; category seeding never fails the pass.
func (uc *LogInSyncUseCase) adoptRemoteCategories(ctx context.Context, userID string) {
	custom, err := uc.categoryStore.CountCustom(ctx)
	if err != nil {
		slog.Warn("Failed to count local categories", "error", err)
		return
	}
	if custom > 0 {
		return
	}

	remote, err := uc.remoteCategories.List(ctx, userID)
	if err != nil {
		slog.Warn("Failed to fetch remote categories", "error", err)
		return
	}

	adopted := make([]*entity.Category, 0, len(remote))
	for _, c := range remote {
		if entity.IsReservedCategoryID(c.ID) {
			continue
		}
		adopted = append(adopted, c)
	}
	if len(adopted) == 0 {
		return
	}

	if err := uc.categoryStore.BulkInsert(ctx, adopted); err != nil {
		slog.Warn("Failed to adopt remote categories", "count", len(adopted), "error", err)
		return
	}
	slog.Info("Adopted remote categories", "count", len(adopted))
}

func (uc *LogInSyncUseCase) publish(event Event) {
	if uc.events != nil {
		uc.events <- event
	}
}
