package transaction

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/expense-tracker/core/internal/application/adapter"
	"github.com/expense-tracker/core/internal/domain/entity"
	domainerror "github.com/expense-tracker/core/internal/domain/error"
)

var errRemoteDown = errors.New("remote unavailable")

// fakeTransactionStore implements the subset of adapter.TransactionStore the
// transaction use cases touch. Unstubbed methods panic via the embedded nil.
type fakeTransactionStore struct {
	adapter.TransactionStore
	records map[int64]*entity.Transaction
}

func newFakeTransactionStore() *fakeTransactionStore {
	return &fakeTransactionStore{records: make(map[int64]*entity.Transaction)}
}

func (f *fakeTransactionStore) Create(_ context.Context, t *entity.Transaction) error {
	copied := *t
	f.records[t.ID] = &copied
	return nil
}

func (f *fakeTransactionStore) Update(_ context.Context, t *entity.Transaction) error {
	copied := *t
	f.records[t.ID] = &copied
	return nil
}

func (f *fakeTransactionStore) FindByID(_ context.Context, id int64) (*entity.Transaction, error) {
	t, ok := f.records[id]
	if !ok {
		return nil, domainerror.ErrTransactionNotFound
	}
	copied := *t
	return &copied, nil
}

func (f *fakeTransactionStore) FindLive(_ context.Context, _ adapter.TransactionFilter) ([]*entity.Transaction, error) {
	var out []*entity.Transaction
	for _, t := range f.records {
		if !t.IsDeleted {
			copied := *t
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (f *fakeTransactionStore) SumExpensesByCategory(_ context.Context, categoryID int64) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, t := range f.records {
		if t.IsExpense() && t.CategoryID == categoryID && !t.IsDeleted {
			total = total.Add(t.Amount)
		}
	}
	return total, nil
}

func (f *fakeTransactionStore) MarkDeleted(_ context.Context, id int64, updatedAt int64) error {
	t, ok := f.records[id]
	if !ok {
		return domainerror.ErrTransactionNotFound
	}
	t.IsDeleted = true
	t.UpdatedAt = updatedAt
	return nil
}

func (f *fakeTransactionStore) HardDelete(_ context.Context, id int64) error {
	delete(f.records, id)
	return nil
}

type fakeCategoryStore struct {
	adapter.CategoryStore
	records map[int64]*entity.Category
}

func newFakeCategoryStore(categories ...*entity.Category) *fakeCategoryStore {
	f := &fakeCategoryStore{records: make(map[int64]*entity.Category)}
	for _, c := range entity.ReservedCategories() {
		f.records[c.ID] = c
	}
	for _, c := range categories {
		f.records[c.ID] = c
	}
	return f
}

func (f *fakeCategoryStore) FindByID(_ context.Context, id int64) (*entity.Category, error) {
	c, ok := f.records[id]
	if !ok {
		return nil, domainerror.ErrCategoryNotFound
	}
	return c, nil
}

// fakeRemoteTransactions counts calls and can be told to fail.
type fakeRemoteTransactions struct {
	adapter.RemoteTransactionClient
	creates    int
	updates    int
	deletes    int
	failCreate bool
	failUpdate bool
	failDelete bool
}

func (f *fakeRemoteTransactions) Create(_ context.Context, _ string, _ *entity.Transaction) error {
	f.creates++
	if f.failCreate {
		return errRemoteDown
	}
	return nil
}

func (f *fakeRemoteTransactions) Update(_ context.Context, _ string, _ *entity.Transaction) error {
	f.updates++
	if f.failUpdate {
		return errRemoteDown
	}
	return nil
}

func (f *fakeRemoteTransactions) Delete(_ context.Context, _ string, _ int64) error {
	f.deletes++
	if f.failDelete {
		return errRemoteDown
	}
	return nil
}

type fakeSessions struct {
	adapter.SessionService
	session *entity.Session
}

func activeSession() *fakeSessions {
	return &fakeSessions{session: &entity.Session{UserID: "user-1", Email: "a@b.c"}}
}

func guestSession() *fakeSessions {
	return &fakeSessions{}
}

func (f *fakeSessions) Current(_ context.Context) (*entity.Session, error) {
	if f.session == nil {
		return nil, domainerror.ErrNoActiveSession
	}
	return f.session, nil
}

type fakeAlertQueue struct {
	adapter.AlertQueue
	enqueued []*entity.BudgetAlert
}

func (f *fakeAlertQueue) Enqueue(_ context.Context, alert *entity.BudgetAlert) error {
	f.enqueued = append(f.enqueued, alert)
	return nil
}

type fakePreferences struct {
	adapter.PreferenceStore
	values map[string]string
}

func newFakePreferences() *fakePreferences {
	return &fakePreferences{values: make(map[string]string)}
}

func (f *fakePreferences) GetOrDefault(_ context.Context, key, def string) (string, error) {
	if v, ok := f.values[key]; ok {
		return v, nil
	}
	return def, nil
}

type fakeRemoteImages struct {
	uploads int
	updates int
	fail    bool
	lastURL string
}

func (f *fakeRemoteImages) Upload(_ context.Context, _ string, image adapter.RequestedImage) (string, error) {
	f.uploads++
	if f.fail {
		return "", errRemoteDown
	}
	if _, err := uuid.Parse(image.ImageName); err != nil {
		return "", err
	}
	f.lastURL = "https://cdn.example.com/" + image.ImageName
	return f.lastURL, nil
}

func (f *fakeRemoteImages) Update(_ context.Context, _ string, image adapter.RequestedImage) (string, error) {
	f.updates++
	if f.fail {
		return "", errRemoteDown
	}
	f.lastURL = "https://cdn.example.com/" + image.ImageName
	return f.lastURL, nil
}
