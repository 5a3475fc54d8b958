package sync

import (
	"context"
	"errors"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/expense-tracker/core/internal/application/adapter"
	"github.com/expense-tracker/core/internal/domain/entity"
	domainerror "github.com/expense-tracker/core/internal/domain/error"
)

// fakeTransactionStore is an in-memory adapter.TransactionStore keyed by id.
type fakeTransactionStore struct {
	records map[int64]*entity.Transaction
	failOps map[string]error // op name -> forced error
}

func newFakeTransactionStore(records ...*entity.Transaction) *fakeTransactionStore {
	s := &fakeTransactionStore{
		records: make(map[int64]*entity.Transaction),
		failOps: make(map[string]error),
	}
	for _, r := range records {
		cp := *r
		s.records[r.ID] = &cp
	}
	return s
}

func (s *fakeTransactionStore) Create(_ context.Context, t *entity.Transaction) error {
	cp := *t
	s.records[t.ID] = &cp
	return nil
}

func (s *fakeTransactionStore) Upsert(_ context.Context, t *entity.Transaction) error {
	if err := s.failOps["Upsert"]; err != nil {
		return err
	}
	cp := *t
	s.records[t.ID] = &cp
	return nil
}

func (s *fakeTransactionStore) BulkInsert(_ context.Context, ts []*entity.Transaction) error {
	if err := s.failOps["BulkInsert"]; err != nil {
		return err
	}
	for _, t := range ts {
		cp := *t
		s.records[t.ID] = &cp
	}
	return nil
}

func (s *fakeTransactionStore) Update(_ context.Context, t *entity.Transaction) error {
	if _, ok := s.records[t.ID]; !ok {
		return domainerror.ErrTransactionNotFound
	}
	cp := *t
	s.records[t.ID] = &cp
	return nil
}

func (s *fakeTransactionStore) FindByID(_ context.Context, id int64) (*entity.Transaction, error) {
	t, ok := s.records[id]
	if !ok {
		return nil, domainerror.ErrTransactionNotFound
	}
	cp := *t
	return &cp, nil
}

func (s *fakeTransactionStore) FindAll(_ context.Context) ([]*entity.Transaction, error) {
	if err := s.failOps["FindAll"]; err != nil {
		return nil, err
	}
	ids := make([]int64, 0, len(s.records))
	for id := range s.records {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	out := make([]*entity.Transaction, 0, len(ids))
	for _, id := range ids {
		cp := *s.records[id]
		out = append(out, &cp)
	}
	return out, nil
}

func (s *fakeTransactionStore) FindLive(_ context.Context, _ adapter.TransactionFilter) ([]*entity.Transaction, error) {
	var out []*entity.Transaction
	for _, t := range s.records {
		if !t.IsDeleted {
			cp := *t
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *fakeTransactionStore) Count(_ context.Context) (int64, error) {
	return int64(len(s.records)), nil
}

func (s *fakeTransactionStore) SumExpensesByCategory(_ context.Context, categoryID int64) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, t := range s.records {
		if !t.IsDeleted && t.IsExpense() && t.CategoryID == categoryID {
			total = total.Add(t.Amount)
		}
	}
	return total, nil
}

func (s *fakeTransactionStore) MarkDeleted(_ context.Context, id int64, updatedAt int64) error {
	t, ok := s.records[id]
	if !ok {
		return domainerror.ErrTransactionNotFound
	}
	t.IsDeleted = true
	t.UpdatedAt = updatedAt
	return nil
}

func (s *fakeTransactionStore) HardDelete(_ context.Context, id int64) error {
	if err := s.failOps["HardDelete"]; err != nil {
		return err
	}
	delete(s.records, id)
	return nil
}

func (s *fakeTransactionStore) ReassignCategory(_ context.Context, oldID, newID int64, updatedAt int64) (int64, error) {
	var n int64
	for _, t := range s.records {
		if !t.IsDeleted && t.CategoryID == oldID {
			t.CategoryID = newID
			t.UpdatedAt = updatedAt
			n++
		}
	}
	return n, nil
}

func (s *fakeTransactionStore) ScaleAmounts(_ context.Context, rate decimal.Decimal) error {
	for _, t := range s.records {
		t.Amount = t.Amount.Mul(rate)
	}
	return nil
}

// fakeCategoryStore is an in-memory adapter.CategoryStore pre-seeded with the
// reserved fallback rows.
type fakeCategoryStore struct {
	records map[int64]*entity.Category
}

func newFakeCategoryStore(categories ...*entity.Category) *fakeCategoryStore {
	s := &fakeCategoryStore{records: make(map[int64]*entity.Category)}
	for _, c := range entity.ReservedCategories() {
		s.records[c.ID] = c
	}
	for _, c := range categories {
		cp := *c
		s.records[c.ID] = &cp
	}
	return s
}

func (s *fakeCategoryStore) Create(_ context.Context, c *entity.Category) error {
	cp := *c
	s.records[c.ID] = &cp
	return nil
}

func (s *fakeCategoryStore) Upsert(_ context.Context, c *entity.Category) error {
	cp := *c
	s.records[c.ID] = &cp
	return nil
}

func (s *fakeCategoryStore) BulkInsert(_ context.Context, cs []*entity.Category) error {
	for _, c := range cs {
		cp := *c
		s.records[c.ID] = &cp
	}
	return nil
}

func (s *fakeCategoryStore) Update(_ context.Context, c *entity.Category) error {
	if _, ok := s.records[c.ID]; !ok {
		return domainerror.ErrCategoryNotFound
	}
	cp := *c
	s.records[c.ID] = &cp
	return nil
}

func (s *fakeCategoryStore) FindByID(_ context.Context, id int64) (*entity.Category, error) {
	c, ok := s.records[id]
	if !ok {
		return nil, domainerror.ErrCategoryNotFound
	}
	cp := *c
	return &cp, nil
}

func (s *fakeCategoryStore) FindAll(_ context.Context) ([]*entity.Category, error) {
	out := make([]*entity.Category, 0, len(s.records))
	for _, c := range s.records {
		cp := *c
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *fakeCategoryStore) FindLive(_ context.Context, categoryType *entity.CategoryType) ([]*entity.Category, error) {
	var out []*entity.Category
	for _, c := range s.records {
		if c.IsDeleted {
			continue
		}
		if categoryType != nil && c.Type != *categoryType {
			continue
		}
		cp := *c
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *fakeCategoryStore) CountCustom(_ context.Context) (int64, error) {
	var n int64
	for id := range s.records {
		if !entity.IsReservedCategoryID(id) {
			n++
		}
	}
	return n, nil
}

func (s *fakeCategoryStore) MarkDeleted(_ context.Context, id int64, updatedAt int64) error {
	if entity.IsReservedCategoryID(id) {
		return domainerror.ErrCategoryReserved
	}
	c, ok := s.records[id]
	if !ok {
		return domainerror.ErrCategoryNotFound
	}
	c.IsDeleted = true
	c.UpdatedAt = updatedAt
	return nil
}

func (s *fakeCategoryStore) HardDelete(_ context.Context, id int64) error {
	if entity.IsReservedCategoryID(id) {
		return domainerror.ErrCategoryReserved
	}
	delete(s.records, id)
	return nil
}

// fakeRemoteTransactions is an in-memory adapter.RemoteTransactionClient that
// counts every call it receives.
type fakeRemoteTransactions struct {
	records map[int64]*entity.Transaction
	calls   struct {
		list, create, update, del, reassign int
	}
	failCreate error
	failDelete error
}

func newFakeRemoteTransactions(records ...*entity.Transaction) *fakeRemoteTransactions {
	r := &fakeRemoteTransactions{records: make(map[int64]*entity.Transaction)}
	for _, t := range records {
		cp := *t
		r.records[t.ID] = &cp
	}
	return r
}

func (r *fakeRemoteTransactions) recordCalls() int {
	return r.calls.create + r.calls.update + r.calls.del + r.calls.reassign
}

func (r *fakeRemoteTransactions) List(_ context.Context, _ string) ([]*entity.Transaction, error) {
	r.calls.list++
	ids := make([]int64, 0, len(r.records))
	for id := range r.records {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	out := make([]*entity.Transaction, 0, len(ids))
	for _, id := range ids {
		cp := *r.records[id]
		out = append(out, &cp)
	}
	return out, nil
}

func (r *fakeRemoteTransactions) Create(_ context.Context, _ string, t *entity.Transaction) error {
	r.calls.create++
	if r.failCreate != nil {
		return r.failCreate
	}
	cp := *t
	r.records[t.ID] = &cp
	return nil
}

func (r *fakeRemoteTransactions) Update(_ context.Context, _ string, t *entity.Transaction) error {
	r.calls.update++
	cp := *t
	r.records[t.ID] = &cp
	return nil
}

func (r *fakeRemoteTransactions) Delete(_ context.Context, _ string, id int64) error {
	r.calls.del++
	if r.failDelete != nil {
		return r.failDelete
	}
	delete(r.records, id)
	return nil
}

func (r *fakeRemoteTransactions) ReassignCategory(_ context.Context, _ string, _, _ int64) error {
	r.calls.reassign++
	return nil
}

// fakeRemoteCategories is an in-memory adapter.RemoteCategoryClient.
type fakeRemoteCategories struct {
	records map[int64]*entity.Category
	seeded  [][]*entity.Category
}

func newFakeRemoteCategories(records ...*entity.Category) *fakeRemoteCategories {
	r := &fakeRemoteCategories{records: make(map[int64]*entity.Category)}
	for _, c := range records {
		cp := *c
		r.records[c.ID] = &cp
	}
	return r
}

func (r *fakeRemoteCategories) List(_ context.Context, _ string) ([]*entity.Category, error) {
	out := make([]*entity.Category, 0, len(r.records))
	for _, c := range r.records {
		cp := *c
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeRemoteCategories) Create(_ context.Context, _ string, c *entity.Category) error {
	cp := *c
	r.records[c.ID] = &cp
	return nil
}

func (r *fakeRemoteCategories) Update(_ context.Context, _ string, c *entity.Category) error {
	cp := *c
	r.records[c.ID] = &cp
	return nil
}

func (r *fakeRemoteCategories) Delete(_ context.Context, _ string, id int64) error {
	delete(r.records, id)
	return nil
}

func (r *fakeRemoteCategories) SeedInitial(_ context.Context, _ string, cs []*entity.Category) error {
	r.seeded = append(r.seeded, cs)
	for _, c := range cs {
		cp := *c
		r.records[c.ID] = &cp
	}
	return nil
}

// fakePreferences is an in-memory adapter.PreferenceStore.
type fakePreferences struct {
	values map[string]string
}

func newFakePreferences() *fakePreferences {
	return &fakePreferences{values: make(map[string]string)}
}

func (p *fakePreferences) Get(_ context.Context, key string) (string, error) {
	v, ok := p.values[key]
	if !ok {
		return "", domainerror.ErrPreferenceNotFound
	}
	return v, nil
}

func (p *fakePreferences) GetOrDefault(_ context.Context, key, def string) (string, error) {
	if v, ok := p.values[key]; ok {
		return v, nil
	}
	return def, nil
}

func (p *fakePreferences) Set(_ context.Context, key, value string) error {
	p.values[key] = value
	return nil
}

func (p *fakePreferences) Delete(_ context.Context, key string) error {
	delete(p.values, key)
	return nil
}

var errRemoteDown = errors.New("remote unavailable")
