// Package persistence implements the local store interfaces on sqlite.
package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/expense-tracker/core/internal/application/adapter"
	"github.com/expense-tracker/core/internal/domain/entity"
	domainerror "github.com/expense-tracker/core/internal/domain/error"
	"github.com/expense-tracker/core/internal/integration/persistence/model"
)

// transactionRepository implements the adapter.TransactionStore interface.
type transactionRepository struct {
	db *gorm.DB
}

// NewTransactionRepository creates a new transaction repository instance.
func NewTransactionRepository(db *gorm.DB) adapter.TransactionStore {
	return &transactionRepository{
		db: db,
	}
}

// Create creates a new transaction row.
func (r *transactionRepository) Create(ctx context.Context, transaction *entity.Transaction) error {
	transactionModel := model.TransactionFromEntity(transaction)
	result := r.db.WithContext(ctx).Create(transactionModel)
	if result.Error != nil {
		return result.Error
	}
	return nil
}

// Upsert writes the record verbatim, inserting or replacing by id.
func (r *transactionRepository) Upsert(ctx context.Context, transaction *entity.Transaction) error {
	transactionModel := model.TransactionFromEntity(transaction)
	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			UpdateAll: true,
		}).
		Create(transactionModel)
	if result.Error != nil {
		return result.Error
	}
	return nil
}

// BulkInsert inserts many rows in one statement.
func (r *transactionRepository) BulkInsert(ctx context.Context, transactions []*entity.Transaction) error {
	if len(transactions) == 0 {
		return nil
	}
	transactionModels := make([]*model.TransactionModel, len(transactions))
	for i, t := range transactions {
		transactionModels[i] = model.TransactionFromEntity(t)
	}
	result := r.db.WithContext(ctx).CreateInBatches(transactionModels, 100)
	if result.Error != nil {
		return result.Error
	}
	return nil
}

// Update rewrites an existing row.
func (r *transactionRepository) Update(ctx context.Context, transaction *entity.Transaction) error {
	transactionModel := model.TransactionFromEntity(transaction)
	result := r.db.WithContext(ctx).
		Model(&model.TransactionModel{}).
		Where("id = ?", transaction.ID).
		Select("*").
		Updates(transactionModel)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerror.ErrTransactionNotFound
	}
	return nil
}

// FindByID retrieves a transaction by id, soft-deleted rows included.
func (r *transactionRepository) FindByID(ctx context.Context, id int64) (*entity.Transaction, error) {
	var transactionModel model.TransactionModel
	result := r.db.WithContext(ctx).Where("id = ?", id).First(&transactionModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrTransactionNotFound
		}
		return nil, result.Error
	}
	return transactionModel.ToEntity(), nil
}

// FindAll retrieves every row ordered by id, soft-deleted rows included.
func (r *transactionRepository) FindAll(ctx context.Context) ([]*entity.Transaction, error) {
	var transactionModels []model.TransactionModel
	result := r.db.WithContext(ctx).Order("id ASC").Find(&transactionModels)
	if result.Error != nil {
		return nil, result.Error
	}

	transactions := make([]*entity.Transaction, len(transactionModels))
	for i, tm := range transactionModels {
		transactions[i] = tm.ToEntity()
	}
	return transactions, nil
}

// FindLive retrieves non-deleted rows matching the filter, newest date first.
func (r *transactionRepository) FindLive(ctx context.Context, filter adapter.TransactionFilter) ([]*entity.Transaction, error) {
	query := r.db.WithContext(ctx).
		Model(&model.TransactionModel{}).
		Where("is_deleted = ?", false)

	if filter.Type != nil {
		query = query.Where("type = ?", string(*filter.Type))
	}
	if filter.CategoryID != nil {
		query = query.Where("category_id = ?", *filter.CategoryID)
	}
	if filter.StartDate != nil {
		query = query.Where("date >= ?", *filter.StartDate)
	}
	if filter.EndDate != nil {
		query = query.Where("date <= ?", *filter.EndDate)
	}
	if filter.Search != "" {
		searchPattern := "%" + strings.ToLower(filter.Search) + "%"
		query = query.Where("LOWER(name) LIKE ?", searchPattern)
	}

	var transactionModels []model.TransactionModel
	result := query.Order("date DESC, id DESC").Find(&transactionModels)
	if result.Error != nil {
		return nil, result.Error
	}

	transactions := make([]*entity.Transaction, len(transactionModels))
	for i, tm := range transactionModels {
		transactions[i] = tm.ToEntity()
	}
	return transactions, nil
}

// Count returns the total number of rows including soft-deleted ones.
func (r *transactionRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	result := r.db.WithContext(ctx).Model(&model.TransactionModel{}).Count(&count)
	if result.Error != nil {
		return 0, result.Error
	}
	return count, nil
}

// SumExpensesByCategory sums non-deleted expense amounts in the category.
func (r *transactionRepository) SumExpensesByCategory(ctx context.Context, categoryID int64) (decimal.Decimal, error) {
	var total decimal.NullDecimal
	result := r.db.WithContext(ctx).
		Model(&model.TransactionModel{}).
		Select("SUM(amount)").
		Where("category_id = ? AND type = ? AND is_deleted = ?", categoryID, string(entity.TransactionTypeExpense), false).
		Scan(&total)
	if result.Error != nil {
		return decimal.Zero, result.Error
	}
	if !total.Valid {
		return decimal.Zero, nil
	}
	return total.Decimal, nil
}

// MarkDeleted sets the soft-delete flag and stamps the row's clock.
func (r *transactionRepository) MarkDeleted(ctx context.Context, id int64, updatedAt int64) error {
	result := r.db.WithContext(ctx).
		Model(&model.TransactionModel{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"is_deleted": true,
			"updated_at": updatedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerror.ErrTransactionNotFound
	}
	return nil
}

// HardDelete physically removes the row.
func (r *transactionRepository) HardDelete(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.TransactionModel{})
	if result.Error != nil {
		return result.Error
	}
	return nil
}

// ReassignCategory moves non-deleted rows between categories in one update.
func (r *transactionRepository) ReassignCategory(ctx context.Context, oldCategoryID, newCategoryID int64, updatedAt int64) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&model.TransactionModel{}).
		Where("category_id = ? AND is_deleted = ?", oldCategoryID, false).
		Updates(map[string]interface{}{
			"category_id": newCategoryID,
			"updated_at":  updatedAt,
		})
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

// ScaleAmounts multiplies every stored amount by rate in one bulk update.
// Tombstones are rebased too, so a later sync pushes consistent values.
func (r *transactionRepository) ScaleAmounts(ctx context.Context, rate decimal.Decimal) error {
	result := r.db.WithContext(ctx).
		Session(&gorm.Session{AllowGlobalUpdate: true}).
		Model(&model.TransactionModel{}).
		Update("amount", gorm.Expr("ROUND(amount * ?, 2)", rate.String()))
	if result.Error != nil {
		return result.Error
	}
	return nil
}
