package sync

import (
	"context"
	"testing"

	"github.com/expense-tracker/core/internal/domain/entity"
)

func newSignUpSync(store *fakeTransactionStore, remote *fakeRemoteTransactions, remoteCats *fakeRemoteCategories) *SignUpSyncUseCase {
	return NewSignUpSyncUseCase(store, newFakeCategoryStore(), remote, remoteCats, newFakePreferences())
}

func TestSignUpSync_PushesLiveSetAndPurgesTombstones(t *testing.T) {
	store := newFakeTransactionStore(
		txn(1, "coffee", 100),
		txn(2, "salary", 200),
		deletedTxn(3, 300),
	)
	remote := newFakeRemoteTransactions()

	out, err := newSignUpSync(store, remote, newFakeRemoteCategories()).Execute(context.Background(), SignUpSyncInput{UserID: testUserID})
	if err != nil {
		t.Fatalf("Execute returned error: %v", err)
	}

	if out.Report.Pushed != 2 {
		t.Errorf("pushed = %d, want 2", out.Report.Pushed)
	}
	if out.Report.Purged != 1 {
		t.Errorf("purged = %d, want 1", out.Report.Purged)
	}
	if len(remote.records) != 2 {
		t.Errorf("remote records = %d, want exactly the live set of 2", len(remote.records))
	}
	if _, ok := store.records[3]; ok {
		t.Error("soft-deleted record must be hard-deleted locally")
	}
	// No remote delete for a record the remote never held.
	if remote.calls.del != 0 {
		t.Errorf("remote delete calls = %d, want 0", remote.calls.del)
	}
}

func TestSignUpSync_NoRecordPushedTwice(t *testing.T) {
	store := newFakeTransactionStore(txn(1, "one", 100))
	remote := newFakeRemoteTransactions()

	if _, err := newSignUpSync(store, remote, newFakeRemoteCategories()).Execute(context.Background(), SignUpSyncInput{UserID: testUserID}); err != nil {
		t.Fatalf("Execute returned error: %v", err)
	}

	if remote.calls.create != 1 {
		t.Errorf("creates = %d, want 1", remote.calls.create)
	}
}

func TestSignUpSync_FailedPushDoesNotAbortBatch(t *testing.T) {
	store := newFakeTransactionStore(txn(1, "a", 100), txn(2, "b", 200), txn(3, "c", 300))
	remote := newFakeRemoteTransactions()
	remote.failCreate = errRemoteDown

	out, err := newSignUpSync(store, remote, newFakeRemoteCategories()).Execute(context.Background(), SignUpSyncInput{UserID: testUserID})
	if err != nil {
		t.Fatalf("per-record failures must not fail the pass: %v", err)
	}

	if remote.calls.create != 3 {
		t.Errorf("creates attempted = %d, want 3", remote.calls.create)
	}
	if out.Report.Failed != 3 {
		t.Errorf("failed = %d, want 3", out.Report.Failed)
	}
	// Local mutations are never rolled back by push failures.
	if len(store.records) != 3 {
		t.Errorf("local records = %d, want 3", len(store.records))
	}
}

func TestSignUpSync_SeedsLiveCategories(t *testing.T) {
	store := newFakeTransactionStore()
	remoteCats := newFakeRemoteCategories()
	cats := newFakeCategoryStore(
		entity.NewCategory(10, entity.CategoryTypeExpense, "Food", "🍔", nil),
	)

	uc := NewSignUpSyncUseCase(store, cats, newFakeRemoteTransactions(), remoteCats, newFakePreferences())
	if _, err := uc.Execute(context.Background(), SignUpSyncInput{UserID: testUserID}); err != nil {
		t.Fatalf("Execute returned error: %v", err)
	}

	if len(remoteCats.seeded) != 1 {
		t.Fatalf("seed calls = %d, want 1", len(remoteCats.seeded))
	}
	// Reserved rows ride along in the initial upload so every device shares them.
	if got := len(remoteCats.seeded[0]); got != 3 {
		t.Errorf("seeded categories = %d, want 3 (two reserved + one custom)", got)
	}
}
