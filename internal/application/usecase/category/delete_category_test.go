package category

import (
	"context"
	"errors"
	"testing"

	"github.com/expense-tracker/core/internal/domain/entity"
	domainerror "github.com/expense-tracker/core/internal/domain/error"
)

func newDeleteFixture(sessions *fakeSessions, categories ...*entity.Category) (*DeleteCategoryUseCase, *fakeCategoryStore, *fakeTransactionStore, *fakeRemoteCategories, *fakeRemoteTransactions) {
	cats := newFakeCategoryStore(categories...)
	txns := &fakeTransactionStore{byCategory: make(map[int64]int64)}
	remoteCats := &fakeRemoteCategories{}
	remoteTxns := &fakeRemoteTransactions{}
	uc := NewDeleteCategoryUseCase(cats, txns, remoteCats, remoteTxns, sessions)
	return uc, cats, txns, remoteCats, remoteTxns
}

func TestDeleteCategory_ReassignsOrphansToFallback(t *testing.T) {
	groceries := entity.NewCategory(10, entity.CategoryTypeExpense, "Groceries", "🛒", nil)
	uc, cats, txns, remoteCats, remoteTxns := newDeleteFixture(activeSession(), groceries)
	txns.byCategory[10] = 3

	out, err := uc.Execute(context.Background(), DeleteCategoryInput{ID: 10})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if out.Reassigned != 3 {
		t.Errorf("Reassigned = %d, want 3", out.Reassigned)
	}
	if out.Tombstoned {
		t.Error("session delete with healthy remote should hard delete")
	}
	if txns.byCategory[entity.ReservedExpenseCategoryID] != 3 {
		t.Errorf("fallback count = %d, want 3", txns.byCategory[entity.ReservedExpenseCategoryID])
	}
	if remoteTxns.reassigns != 1 || remoteCats.deletes != 1 {
		t.Errorf("remote reassigns = %d deletes = %d, want 1/1", remoteTxns.reassigns, remoteCats.deletes)
	}
	if _, err := cats.FindByID(context.Background(), 10); !errors.Is(err, domainerror.ErrCategoryNotFound) {
		t.Error("category row still present after hard delete")
	}
}

func TestDeleteCategory_IncomeFallsBackToIncomeReserve(t *testing.T) {
	salary := entity.NewCategory(20, entity.CategoryTypeIncome, "Salary", "💼", nil)
	uc, _, txns, _, _ := newDeleteFixture(guestSession(), salary)
	txns.byCategory[20] = 2

	if _, err := uc.Execute(context.Background(), DeleteCategoryInput{ID: 20}); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if txns.byCategory[entity.ReservedIncomeCategoryID] != 2 {
		t.Errorf("income fallback count = %d, want 2", txns.byCategory[entity.ReservedIncomeCategoryID])
	}
}

func TestDeleteCategory_GuestTombstones(t *testing.T) {
	groceries := entity.NewCategory(10, entity.CategoryTypeExpense, "Groceries", "🛒", nil)
	uc, cats, _, remoteCats, _ := newDeleteFixture(guestSession(), groceries)

	out, err := uc.Execute(context.Background(), DeleteCategoryInput{ID: 10})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if !out.Tombstoned {
		t.Error("guest delete must tombstone")
	}
	if remoteCats.deletes != 0 {
		t.Errorf("remote deletes = %d, want 0", remoteCats.deletes)
	}

	stored, err := cats.FindByID(context.Background(), 10)
	if err != nil || !stored.IsDeleted {
		t.Errorf("expected tombstone, got %+v err %v", stored, err)
	}
}

func TestDeleteCategory_RemoteFailureFallsBackToTombstone(t *testing.T) {
	groceries := entity.NewCategory(10, entity.CategoryTypeExpense, "Groceries", "🛒", nil)
	uc, cats, txns, _, remoteTxns := newDeleteFixture(activeSession(), groceries)
	txns.byCategory[10] = 1
	remoteTxns.failReassign = true

	out, err := uc.Execute(context.Background(), DeleteCategoryInput{ID: 10})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if !out.Tombstoned {
		t.Error("failed remote mirror must fall back to a tombstone")
	}
	// Local reassignment still happened; the tombstone carries the deletion.
	if txns.byCategory[entity.ReservedExpenseCategoryID] != 1 {
		t.Error("local reassignment skipped")
	}
	stored, _ := cats.FindByID(context.Background(), 10)
	if !stored.IsDeleted {
		t.Error("row not tombstoned")
	}
}

func TestDeleteCategory_ReservedRejected(t *testing.T) {
	uc, _, _, _, _ := newDeleteFixture(activeSession())

	for _, id := range []int64{entity.ReservedExpenseCategoryID, entity.ReservedIncomeCategoryID} {
		_, err := uc.Execute(context.Background(), DeleteCategoryInput{ID: id})
		var catErr *domainerror.CategoryError
		if !errors.As(err, &catErr) || catErr.Code != domainerror.ErrCodeCategoryReserved {
			t.Errorf("id %d: error = %v, want reserved rejection", id, err)
		}
	}
}

func TestDeleteCategory_NotFound(t *testing.T) {
	uc, _, _, _, _ := newDeleteFixture(activeSession())

	_, err := uc.Execute(context.Background(), DeleteCategoryInput{ID: 999})
	if !errors.Is(err, domainerror.ErrCategoryNotFound) {
		t.Errorf("Execute() error = %v, want ErrCategoryNotFound", err)
	}
}
