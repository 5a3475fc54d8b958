package category

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/expense-tracker/core/internal/domain/entity"
	domainerror "github.com/expense-tracker/core/internal/domain/error"
)

func TestCreateCategory_PersistsAndMirrors(t *testing.T) {
	cats := newFakeCategoryStore()
	remote := &fakeRemoteCategories{}
	uc := NewCreateCategoryUseCase(cats, remote, activeSession())

	limit := decimal.NewFromInt(200)
	out, err := uc.Execute(context.Background(), CreateCategoryInput{
		ID:    10,
		Type:  entity.CategoryTypeExpense,
		Title: "Groceries",
		Icon:  "🛒",
		Limit: &limit,
	})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if !out.RemoteSynced || remote.creates != 1 {
		t.Errorf("RemoteSynced = %v, remote creates = %d", out.RemoteSynced, remote.creates)
	}

	stored, err := cats.FindByID(context.Background(), 10)
	if err != nil {
		t.Fatalf("FindByID() error = %v", err)
	}
	if stored.Title != "Groceries" || !stored.HasLimit() {
		t.Errorf("stored = %+v", stored)
	}
}

func TestCreateCategory_GuestSkipsMirror(t *testing.T) {
	cats := newFakeCategoryStore()
	remote := &fakeRemoteCategories{}
	uc := NewCreateCategoryUseCase(cats, remote, guestSession())

	out, err := uc.Execute(context.Background(), CreateCategoryInput{
		ID:    10,
		Type:  entity.CategoryTypeExpense,
		Title: "Groceries",
	})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if out.RemoteSynced || remote.creates != 0 {
		t.Errorf("guest create mirrored: synced=%v creates=%d", out.RemoteSynced, remote.creates)
	}
}

func TestCreateCategory_Validation(t *testing.T) {
	negative := decimal.NewFromInt(-50)

	tests := []struct {
		name     string
		input    CreateCategoryInput
		wantCode domainerror.CategoryErrorCode
	}{
		{
			name:     "empty title",
			input:    CreateCategoryInput{Type: entity.CategoryTypeExpense},
			wantCode: domainerror.ErrCodeCategoryTitleRequired,
		},
		{
			name:     "title too long",
			input:    CreateCategoryInput{Title: strings.Repeat("a", MaxTitleLength+1), Type: entity.CategoryTypeExpense},
			wantCode: domainerror.ErrCodeCategoryTitleTooLong,
		},
		{
			name:     "bad type",
			input:    CreateCategoryInput{Title: "ok", Type: "transfer"},
			wantCode: domainerror.ErrCodeInvalidCategoryType,
		},
		{
			name:     "negative limit",
			input:    CreateCategoryInput{Title: "ok", Type: entity.CategoryTypeExpense, Limit: &negative},
			wantCode: domainerror.ErrCodeInvalidCategoryLimit,
		},
		{
			name:     "reserved id",
			input:    CreateCategoryInput{ID: entity.ReservedExpenseCategoryID, Title: "ok", Type: entity.CategoryTypeExpense},
			wantCode: domainerror.ErrCodeCategoryReserved,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := NewCreateCategoryUseCase(newFakeCategoryStore(), &fakeRemoteCategories{}, activeSession())

			_, err := uc.Execute(context.Background(), tt.input)
			var catErr *domainerror.CategoryError
			if !errors.As(err, &catErr) {
				t.Fatalf("Execute() error = %v, want *CategoryError", err)
			}
			if catErr.Code != tt.wantCode {
				t.Errorf("code = %s, want %s", catErr.Code, tt.wantCode)
			}
		})
	}
}

func TestUpdateCategory_ReservedAcceptsLimitOnly(t *testing.T) {
	cats := newFakeCategoryStore()
	uc := NewUpdateCategoryUseCase(cats, &fakeRemoteCategories{}, guestSession())

	limit := decimal.NewFromInt(500)
	if _, err := uc.Execute(context.Background(), UpdateCategoryInput{
		ID:    entity.ReservedExpenseCategoryID,
		Limit: &limit,
	}); err != nil {
		t.Fatalf("limit change on reserved row failed: %v", err)
	}

	title := "Renamed"
	_, err := uc.Execute(context.Background(), UpdateCategoryInput{
		ID:    entity.ReservedExpenseCategoryID,
		Title: &title,
	})
	var catErr *domainerror.CategoryError
	if !errors.As(err, &catErr) || catErr.Code != domainerror.ErrCodeCategoryReserved {
		t.Errorf("rename of reserved row: error = %v, want reserved rejection", err)
	}
}

func TestUpdateCategory_ClearLimit(t *testing.T) {
	limit := decimal.NewFromInt(200)
	groceries := entity.NewCategory(10, entity.CategoryTypeExpense, "Groceries", "🛒", &limit)
	cats := newFakeCategoryStore(groceries)
	uc := NewUpdateCategoryUseCase(cats, &fakeRemoteCategories{}, guestSession())

	if _, err := uc.Execute(context.Background(), UpdateCategoryInput{ID: 10, ClearLimit: true}); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	stored, _ := cats.FindByID(context.Background(), 10)
	if stored.Limit != nil {
		t.Errorf("Limit = %v, want nil", stored.Limit)
	}
	if stored.UpdatedAt <= groceries.UpdatedAt {
		t.Error("clock did not advance")
	}
}

func TestSeedCategories_FirstLaunchOnly(t *testing.T) {
	cats := newFakeCategoryStore()
	prefs := newFakePreferences()
	uc := NewSeedCategoriesUseCase(cats, prefs)

	out, err := uc.Execute(context.Background())
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if out.Seeded == 0 {
		t.Fatal("first launch seeded nothing")
	}

	again, err := uc.Execute(context.Background())
	if err != nil {
		t.Fatalf("second Execute() error = %v", err)
	}
	if again.Seeded != 0 {
		t.Errorf("second launch seeded %d categories", again.Seeded)
	}
}
