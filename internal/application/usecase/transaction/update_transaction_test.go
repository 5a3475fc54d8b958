package transaction

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/expense-tracker/core/internal/application/usecase/budget"
	"github.com/expense-tracker/core/internal/domain/entity"
	domainerror "github.com/expense-tracker/core/internal/domain/error"
)

func newUpdateFixture(seed ...*entity.Transaction) (*UpdateTransactionUseCase, *fakeTransactionStore, *fakeRemoteTransactions) {
	store := newFakeTransactionStore()
	for _, t := range seed {
		store.records[t.ID] = t
	}
	cats := newFakeCategoryStore()
	remote := &fakeRemoteTransactions{}
	check := budget.NewCheckBudgetUseCase(store, cats, &fakeAlertQueue{}, newFakePreferences())
	uc := NewUpdateTransactionUseCase(store, cats, remote, activeSession(), check)
	return uc, store, remote
}

func seedTxn(id int64, name string, updatedAt int64) *entity.Transaction {
	return &entity.Transaction{
		ID:         id,
		Amount:     decimal.NewFromInt(10),
		Name:       name,
		Type:       entity.TransactionTypeExpense,
		CategoryID: entity.ReservedExpenseCategoryID,
		Date:       updatedAt,
		UpdatedAt:  updatedAt,
	}
}

func TestUpdateTransaction_AppliesFieldsAndAdvancesClock(t *testing.T) {
	uc, store, remote := newUpdateFixture(seedTxn(1, "Lunch", 1000))

	name := "Team lunch"
	note := "split four ways"
	amount := decimal.NewFromFloat(48.20)
	out, err := uc.Execute(context.Background(), UpdateTransactionInput{
		ID:     1,
		Name:   &name,
		Note:   &note,
		Amount: &amount,
	})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	stored, _ := store.FindByID(context.Background(), 1)
	if stored.Name != "Team lunch" || stored.Note != "split four ways" {
		t.Errorf("stored = %+v", stored)
	}
	if !stored.Amount.Equal(amount) {
		t.Errorf("amount = %s, want %s", stored.Amount, amount)
	}
	if stored.UpdatedAt <= 1000 {
		t.Errorf("UpdatedAt = %d, want > 1000", stored.UpdatedAt)
	}
	if !out.RemoteSynced || remote.updates != 1 {
		t.Errorf("RemoteSynced = %v, remote updates = %d", out.RemoteSynced, remote.updates)
	}
}

func TestUpdateTransaction_NilFieldsLeftUntouched(t *testing.T) {
	seed := seedTxn(1, "Lunch", 1000)
	seed.Note = "keep me"
	uc, store, _ := newUpdateFixture(seed)

	amount := decimal.NewFromInt(11)
	if _, err := uc.Execute(context.Background(), UpdateTransactionInput{ID: 1, Amount: &amount}); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	stored, _ := store.FindByID(context.Background(), 1)
	if stored.Name != "Lunch" || stored.Note != "keep me" {
		t.Errorf("untouched fields changed: %+v", stored)
	}
}

func TestUpdateTransaction_ClockAdvancesStrictly(t *testing.T) {
	// A record already stamped in the future still moves forward by at least one.
	future := int64(1) << 60
	uc, store, _ := newUpdateFixture(seedTxn(1, "Lunch", future))

	name := "Dinner"
	if _, err := uc.Execute(context.Background(), UpdateTransactionInput{ID: 1, Name: &name}); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	stored, _ := store.FindByID(context.Background(), 1)
	if stored.UpdatedAt != future+1 {
		t.Errorf("UpdatedAt = %d, want %d", stored.UpdatedAt, future+1)
	}
}

func TestUpdateTransaction_NotFound(t *testing.T) {
	uc, _, _ := newUpdateFixture()

	_, err := uc.Execute(context.Background(), UpdateTransactionInput{ID: 99})
	if !errors.Is(err, domainerror.ErrTransactionNotFound) {
		t.Errorf("Execute() error = %v, want ErrTransactionNotFound", err)
	}
}

func TestUpdateTransaction_TombstoneBehavesAsMissing(t *testing.T) {
	seed := seedTxn(1, "Lunch", 1000)
	seed.IsDeleted = true
	uc, _, _ := newUpdateFixture(seed)

	_, err := uc.Execute(context.Background(), UpdateTransactionInput{ID: 1})
	if !errors.Is(err, domainerror.ErrTransactionNotFound) {
		t.Errorf("Execute() error = %v, want ErrTransactionNotFound", err)
	}
}

func TestUpdateTransaction_RejectsInvalidEdit(t *testing.T) {
	uc, store, _ := newUpdateFixture(seedTxn(1, "Lunch", 1000))

	bad := decimal.NewFromInt(-1)
	_, err := uc.Execute(context.Background(), UpdateTransactionInput{ID: 1, Amount: &bad})
	var txnErr *domainerror.TransactionError
	if !errors.As(err, &txnErr) || txnErr.Code != domainerror.ErrCodeInvalidTransactionAmount {
		t.Fatalf("Execute() error = %v, want amount validation error", err)
	}

	stored, _ := store.FindByID(context.Background(), 1)
	if !stored.Amount.Equal(decimal.NewFromInt(10)) || stored.UpdatedAt != 1000 {
		t.Errorf("rejected edit mutated the row: %+v", stored)
	}
}
