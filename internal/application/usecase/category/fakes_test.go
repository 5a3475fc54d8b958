package category

import (
	"context"
	"errors"

	"github.com/expense-tracker/core/internal/application/adapter"
	"github.com/expense-tracker/core/internal/domain/entity"
	domainerror "github.com/expense-tracker/core/internal/domain/error"
)

var errRemoteDown = errors.New("remote unavailable")

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
		copied := *c
		f.records[c.ID] = &copied
	}
	return f
}

func (f *fakeCategoryStore) Create(_ context.Context, c *entity.Category) error {
	copied := *c
	f.records[c.ID] = &copied
	return nil
}

func (f *fakeCategoryStore) Update(_ context.Context, c *entity.Category) error {
	copied := *c
	f.records[c.ID] = &copied
	return nil
}

func (f *fakeCategoryStore) BulkInsert(_ context.Context, categories []*entity.Category) error {
	for _, c := range categories {
		copied := *c
		f.records[c.ID] = &copied
	}
	return nil
}

func (f *fakeCategoryStore) FindByID(_ context.Context, id int64) (*entity.Category, error) {
	c, ok := f.records[id]
	if !ok {
		return nil, domainerror.ErrCategoryNotFound
	}
	copied := *c
	return &copied, nil
}

func (f *fakeCategoryStore) FindLive(_ context.Context, categoryType *entity.CategoryType) ([]*entity.Category, error) {
	var out []*entity.Category
	for _, c := range f.records {
		if c.IsDeleted {
			continue
		}
		if categoryType != nil && c.Type != *categoryType {
			continue
		}
		copied := *c
		out = append(out, &copied)
	}
	return out, nil
}

func (f *fakeCategoryStore) MarkDeleted(_ context.Context, id int64, updatedAt int64) error {
	if entity.IsReservedCategoryID(id) {
		return domainerror.ErrCategoryReserved
	}
	c, ok := f.records[id]
	if !ok {
		return domainerror.ErrCategoryNotFound
	}
	c.IsDeleted = true
	c.UpdatedAt = updatedAt
	return nil
}

func (f *fakeCategoryStore) HardDelete(_ context.Context, id int64) error {
	if entity.IsReservedCategoryID(id) {
		return domainerror.ErrCategoryReserved
	}
	delete(f.records, id)
	return nil
}

// fakeTransactionStore only backs the reassignment path here.
type fakeTransactionStore struct {
	adapter.TransactionStore
	byCategory map[int64]int64 // categoryID -> live transaction count
	reassigns  int
}

func (f *fakeTransactionStore) ReassignCategory(_ context.Context, oldCategoryID, newCategoryID int64, _ int64) (int64, error) {
	f.reassigns++
	moved := f.byCategory[oldCategoryID]
	f.byCategory[newCategoryID] += moved
	delete(f.byCategory, oldCategoryID)
	return moved, nil
}

type fakeRemoteCategories struct {
	adapter.RemoteCategoryClient
	creates    int
	updates    int
	deletes    int
	failCreate bool
	failDelete bool
}

func (f *fakeRemoteCategories) Create(_ context.Context, _ string, _ *entity.Category) error {
	f.creates++
	if f.failCreate {
		return errRemoteDown
	}
	return nil
}

func (f *fakeRemoteCategories) Update(_ context.Context, _ string, _ *entity.Category) error {
	f.updates++
	return nil
}

func (f *fakeRemoteCategories) Delete(_ context.Context, _ string, _ int64) error {
	f.deletes++
	if f.failDelete {
		return errRemoteDown
	}
	return nil
}

type fakeRemoteTransactions struct {
	adapter.RemoteTransactionClient
	reassigns    int
	failReassign bool
}

func (f *fakeRemoteTransactions) ReassignCategory(_ context.Context, _ string, _, _ int64) error {
	f.reassigns++
	if f.failReassign {
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

func (f *fakePreferences) Set(_ context.Context, key, value string) error {
	f.values[key] = value
	return nil
}
