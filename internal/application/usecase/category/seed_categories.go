package category

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/expense-tracker/core/internal/application/adapter"
	"github.com/expense-tracker/core/internal/domain/entity"
)

// SeedCategoriesOutput reports whether the starter set was written.
type SeedCategoriesOutput struct {
	Seeded int
}

// SeedCategoriesUseCase writes the starter category set on first launch.
// Subsequent launches are no-ops, keyed on the first-launch preference.
type SeedCategoriesUseCase struct {
	categoryStore adapter.CategoryStore
	preferences   adapter.PreferenceStore
}

// NewSeedCategoriesUseCase creates a new SeedCategoriesUseCase instance.
func NewSeedCategoriesUseCase(categoryStore adapter.CategoryStore, preferences adapter.PreferenceStore) *SeedCategoriesUseCase {
	return &SeedCategoriesUseCase{categoryStore: categoryStore, preferences: preferences}
}

// starterCategories returns the default set offered to a fresh install.
// Ids are spaced below any wall-clock millisecond id a user could mint.
func starterCategories() []*entity.Category {
	now := time.Now().UnixMilli()
	mk := func(id int64, t entity.CategoryType, title, icon string) *entity.Category {
		return &entity.Category{ID: id, Type: t, Title: title, Icon: icon, UpdatedAt: now}
	}
	return []*entity.Category{
		mk(1, entity.CategoryTypeExpense, "Food", "🍔"),
		mk(2, entity.CategoryTypeExpense, "Transport", "🚌"),
		mk(3, entity.CategoryTypeExpense, "Shopping", "🛍"),
		mk(4, entity.CategoryTypeExpense, "Bills", "🧾"),
		mk(5, entity.CategoryTypeExpense, "Entertainment", "🎬"),
		mk(6, entity.CategoryTypeIncome, "Salary", "💼"),
		mk(7, entity.CategoryTypeIncome, "Gifts", "🎁"),
	}
}

// Execute seeds the starter set when running for the first time.
func (uc *SeedCategoriesUseCase) Execute(ctx context.Context) (*SeedCategoriesOutput, error) {
	done, err := uc.preferences.GetOrDefault(ctx, entity.PrefFirstLaunch, "true")
	if err != nil {
		return nil, fmt.Errorf("failed to read first-launch flag: %w", err)
	}
	if first, parseErr := strconv.ParseBool(done); parseErr == nil && !first {
		return &SeedCategoriesOutput{}, nil
	}

	starters := starterCategories()
	if err := uc.categoryStore.BulkInsert(ctx, starters); err != nil {
		return nil, fmt.Errorf("failed to seed starter categories: %w", err)
	}
	if err := uc.preferences.Set(ctx, entity.PrefFirstLaunch, "false"); err != nil {
		return nil, fmt.Errorf("failed to clear first-launch flag: %w", err)
	}

	slog.Info("Seeded starter categories", "count", len(starters))
	return &SeedCategoriesOutput{Seeded: len(starters)}, nil
}
