package transaction

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/expense-tracker/core/internal/application/usecase/budget"
	"github.com/expense-tracker/core/internal/domain/entity"
	domainerror "github.com/expense-tracker/core/internal/domain/error"
)

func newCreateFixture(categories ...*entity.Category) (*CreateTransactionUseCase, *fakeTransactionStore, *fakeRemoteTransactions, *fakeSessions, *fakeAlertQueue) {
	store := newFakeTransactionStore()
	cats := newFakeCategoryStore(categories...)
	remote := &fakeRemoteTransactions{}
	sessions := activeSession()
	queue := &fakeAlertQueue{}
	check := budget.NewCheckBudgetUseCase(store, cats, queue, newFakePreferences())
	uc := NewCreateTransactionUseCase(store, cats, remote, sessions, check)
	return uc, store, remote, sessions, queue
}

func TestCreateTransaction_PersistsAndMirrors(t *testing.T) {
	uc, store, remote, _, _ := newCreateFixture()

	out, err := uc.Execute(context.Background(), CreateTransactionInput{
		ID:         1700000000000,
		Amount:     decimal.NewFromFloat(12.50),
		Name:       "Lunch",
		Type:       entity.TransactionTypeExpense,
		CategoryID: entity.ReservedExpenseCategoryID,
	})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if !out.RemoteSynced {
		t.Error("expected RemoteSynced with an active session")
	}
	if remote.creates != 1 {
		t.Errorf("remote creates = %d, want 1", remote.creates)
	}

	stored, err := store.FindByID(context.Background(), 1700000000000)
	if err != nil {
		t.Fatalf("FindByID() error = %v", err)
	}
	if stored.Name != "Lunch" || !stored.Amount.Equal(decimal.NewFromFloat(12.50)) {
		t.Errorf("stored = %+v", stored)
	}
	if stored.UpdatedAt == 0 || stored.Date == 0 {
		t.Error("expected clock and date to be stamped")
	}
}

func TestCreateTransaction_GuestKeepsLocalWrite(t *testing.T) {
	store := newFakeTransactionStore()
	cats := newFakeCategoryStore()
	remote := &fakeRemoteTransactions{}
	check := budget.NewCheckBudgetUseCase(store, cats, &fakeAlertQueue{}, newFakePreferences())
	uc := NewCreateTransactionUseCase(store, cats, remote, guestSession(), check)

	out, err := uc.Execute(context.Background(), CreateTransactionInput{
		ID:         42,
		Amount:     decimal.NewFromInt(5),
		Name:       "Coffee",
		Type:       entity.TransactionTypeExpense,
		CategoryID: entity.ReservedExpenseCategoryID,
	})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if out.RemoteSynced {
		t.Error("guest mode must not report a remote sync")
	}
	if remote.creates != 0 {
		t.Errorf("remote creates = %d, want 0", remote.creates)
	}
	if _, err := store.FindByID(context.Background(), 42); err != nil {
		t.Errorf("local write missing: %v", err)
	}
}

func TestCreateTransaction_RemoteFailureDoesNotRollBack(t *testing.T) {
	uc, store, remote, _, _ := newCreateFixture()
	remote.failCreate = true

	out, err := uc.Execute(context.Background(), CreateTransactionInput{
		ID:         7,
		Amount:     decimal.NewFromInt(3),
		Name:       "Bus",
		Type:       entity.TransactionTypeExpense,
		CategoryID: entity.ReservedExpenseCategoryID,
	})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if out.RemoteSynced {
		t.Error("failed push must not report RemoteSynced")
	}
	if _, err := store.FindByID(context.Background(), 7); err != nil {
		t.Errorf("local write missing: %v", err)
	}
}

func TestCreateTransaction_Validation(t *testing.T) {
	limit := decimal.NewFromInt(100)
	groceries := entity.NewCategory(10, entity.CategoryTypeExpense, "Groceries", "🛒", &limit)
	uc, _, _, _, _ := newCreateFixture(groceries)

	valid := CreateTransactionInput{
		Amount:     decimal.NewFromInt(1),
		Name:       "ok",
		Type:       entity.TransactionTypeExpense,
		CategoryID: 10,
	}

	tests := []struct {
		name     string
		mutate   func(*CreateTransactionInput)
		wantCode domainerror.TransactionErrorCode
	}{
		{
			name:     "empty name",
			mutate:   func(in *CreateTransactionInput) { in.Name = "" },
			wantCode: domainerror.ErrCodeTransactionNameRequired,
		},
		{
			name:     "name too long",
			mutate:   func(in *CreateTransactionInput) { in.Name = strings.Repeat("a", MaxNameLength+1) },
			wantCode: domainerror.ErrCodeTransactionNameTooLong,
		},
		{
			name:     "note too long",
			mutate:   func(in *CreateTransactionInput) { in.Note = strings.Repeat("a", MaxNoteLength+1) },
			wantCode: domainerror.ErrCodeNoteTooLong,
		},
		{
			name:     "bad type",
			mutate:   func(in *CreateTransactionInput) { in.Type = "transfer" },
			wantCode: domainerror.ErrCodeInvalidTransactionType,
		},
		{
			name:     "zero amount",
			mutate:   func(in *CreateTransactionInput) { in.Amount = decimal.Zero },
			wantCode: domainerror.ErrCodeInvalidTransactionAmount,
		},
		{
			name:     "negative amount",
			mutate:   func(in *CreateTransactionInput) { in.Amount = decimal.NewFromInt(-4) },
			wantCode: domainerror.ErrCodeInvalidTransactionAmount,
		},
		{
			name:     "unknown category",
			mutate:   func(in *CreateTransactionInput) { in.CategoryID = 999 },
			wantCode: domainerror.ErrCodeTxnCategoryNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := valid
			tt.mutate(&input)

			_, err := uc.Execute(context.Background(), input)
			var txnErr *domainerror.TransactionError
			if !errors.As(err, &txnErr) {
				t.Fatalf("Execute() error = %v, want *TransactionError", err)
			}
			if txnErr.Code != tt.wantCode {
				t.Errorf("code = %s, want %s", txnErr.Code, tt.wantCode)
			}
		})
	}
}

func TestCreateTransaction_BudgetExceededFlag(t *testing.T) {
	limit := decimal.NewFromInt(100)
	groceries := entity.NewCategory(10, entity.CategoryTypeExpense, "Groceries", "🛒", &limit)
	uc, _, _, _, queue := newCreateFixture(groceries)

	for i, amount := range []int64{80, 25} {
		out, err := uc.Execute(context.Background(), CreateTransactionInput{
			ID:         int64(i + 1),
			Amount:     decimal.NewFromInt(amount),
			Name:       "Groceries run",
			Type:       entity.TransactionTypeExpense,
			CategoryID: 10,
		})
		if err != nil {
			t.Fatalf("Execute() error = %v", err)
		}
		wantExceeded := i == 1
		if out.BudgetExceeded != wantExceeded {
			t.Errorf("insert %d: BudgetExceeded = %v, want %v", i+1, out.BudgetExceeded, wantExceeded)
		}
	}

	if len(queue.enqueued) != 1 {
		t.Fatalf("enqueued alerts = %d, want 1", len(queue.enqueued))
	}
	if !queue.enqueued[0].Total.Equal(decimal.NewFromInt(105)) {
		t.Errorf("alert total = %s, want 105", queue.enqueued[0].Total)
	}
}
