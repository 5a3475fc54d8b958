package auth

import (
	"context"
	"errors"

	"github.com/expense-tracker/core/internal/application/adapter"
	"github.com/expense-tracker/core/internal/domain/entity"
	domainerror "github.com/expense-tracker/core/internal/domain/error"
)

var errIdentityDown = errors.New("identity unreachable")

type fakeIdentity struct {
	user       *entity.User
	token      string
	signUpErr  error
	signInErr  error
	signUps    int
	signIns    int
	lastEmail  string
	lastSignIn string
}

func newFakeIdentity() *fakeIdentity {
	return &fakeIdentity{
		user:  &entity.User{ID: "user-1", Email: "a@b.co", DisplayName: "A"},
		token: "tok-1",
	}
}

func (f *fakeIdentity) SignUp(_ context.Context, email, _, _ string) (*entity.User, string, error) {
	f.signUps++
	f.lastEmail = email
	if f.signUpErr != nil {
		return nil, "", f.signUpErr
	}
	return f.user, f.token, nil
}

func (f *fakeIdentity) SignIn(_ context.Context, idToken string) (*entity.User, error) {
	f.signIns++
	f.lastSignIn = idToken
	if f.signInErr != nil {
		return nil, f.signInErr
	}
	return f.user, nil
}

type fakeSessions struct {
	session *entity.Session
	saves   int
	clears  int
	saveErr error
}

func (f *fakeSessions) Current(_ context.Context) (*entity.Session, error) {
	if f.session == nil {
		return nil, domainerror.ErrNoActiveSession
	}
	return f.session, nil
}

func (f *fakeSessions) Save(_ context.Context, user *entity.User, idToken string) (*entity.Session, error) {
	f.saves++
	if f.saveErr != nil {
		return nil, f.saveErr
	}
	f.session = &entity.Session{
		UserID:      user.ID,
		Email:       user.Email,
		DisplayName: user.DisplayName,
		IDToken:     idToken,
	}
	return f.session, nil
}

func (f *fakeSessions) Clear(_ context.Context) error {
	f.clears++
	f.session = nil
	return nil
}

// Minimal store fakes backing the embedded sync passes.

type fakeTransactionStore struct {
	adapter.TransactionStore
	records []*entity.Transaction
}

func (f *fakeTransactionStore) FindAll(_ context.Context) ([]*entity.Transaction, error) {
	return f.records, nil
}

func (f *fakeTransactionStore) BulkInsert(_ context.Context, txns []*entity.Transaction) error {
	f.records = append(f.records, txns...)
	return nil
}

func (f *fakeTransactionStore) HardDelete(_ context.Context, id int64) error {
	kept := f.records[:0]
	for _, t := range f.records {
		if t.ID != id {
			kept = append(kept, t)
		}
	}
	f.records = kept
	return nil
}

type fakeCategoryStore struct {
	adapter.CategoryStore
}

func (f *fakeCategoryStore) FindLive(_ context.Context, _ *entity.CategoryType) ([]*entity.Category, error) {
	return entity.ReservedCategories(), nil
}

func (f *fakeCategoryStore) CountCustom(_ context.Context) (int64, error) {
	return 1, nil
}

type fakeRemoteTransactions struct {
	adapter.RemoteTransactionClient
	records []*entity.Transaction
	creates int
	listErr error
}

func (f *fakeRemoteTransactions) List(_ context.Context, _ string) ([]*entity.Transaction, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.records, nil
}

func (f *fakeRemoteTransactions) Create(_ context.Context, _ string, t *entity.Transaction) error {
	f.creates++
	f.records = append(f.records, t)
	return nil
}

type fakeRemoteCategories struct {
	adapter.RemoteCategoryClient
	seeds int
}

func (f *fakeRemoteCategories) SeedInitial(_ context.Context, _ string, _ []*entity.Category) error {
	f.seeds++
	return nil
}

func (f *fakeRemoteCategories) List(_ context.Context, _ string) ([]*entity.Category, error) {
	return nil, nil
}

type fakePreferences struct {
	adapter.PreferenceStore
	values map[string]string
}

func newFakePreferences() *fakePreferences {
	return &fakePreferences{values: make(map[string]string)}
}

func (f *fakePreferences) Set(_ context.Context, key, value string) error {
	f.values[key] = value
	return nil
}

func (f *fakePreferences) Delete(_ context.Context, key string) error {
	delete(f.values, key)
	return nil
}

func (f *fakePreferences) GetOrDefault(_ context.Context, key, def string) (string, error) {
	if v, ok := f.values[key]; ok {
		return v, nil
	}
	return def, nil
}
