package persistence

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/expense-tracker/core/internal/application/adapter"
	"github.com/expense-tracker/core/internal/domain/entity"
	domainerror "github.com/expense-tracker/core/internal/domain/error"
	"github.com/expense-tracker/core/internal/integration/persistence/model"
)

// categoryRepository implements the adapter.CategoryStore interface.
type categoryRepository struct {
	db *gorm.DB
}

// NewCategoryRepository creates a new category repository instance.
func NewCategoryRepository(db *gorm.DB) adapter.CategoryStore {
	return &categoryRepository{
		db: db,
	}
}

// Create creates a new category row.
func (r *categoryRepository) Create(ctx context.Context, category *entity.Category) error {
	categoryModel := model.CategoryFromEntity(category)
	result := r.db.WithContext(ctx).Create(categoryModel)
	if result.Error != nil {
		return result.Error
	}
	return nil
}

// Upsert writes the record verbatim, inserting or replacing by id.
// Reserved rows are never replaced wholesale.
func (r *categoryRepository) Upsert(ctx context.Context, category *entity.Category) error {
	if entity.IsReservedCategoryID(category.ID) {
		return domainerror.ErrCategoryReserved
	}
	categoryModel := model.CategoryFromEntity(category)
	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			UpdateAll: true,
		}).
		Create(categoryModel)
	if result.Error != nil {
		return result.Error
	}
	return nil
}

// BulkInsert inserts many rows in one statement.
func (r *categoryRepository) BulkInsert(ctx context.Context, categories []*entity.Category) error {
	if len(categories) == 0 {
		return nil
	}
	categoryModels := make([]*model.CategoryModel, len(categories))
	for i, c := range categories {
		categoryModels[i] = model.CategoryFromEntity(c)
	}
	result := r.db.WithContext(ctx).CreateInBatches(categoryModels, 100)
	if result.Error != nil {
		return result.Error
	}
	return nil
}

// Update rewrites an existing row.
func (r *categoryRepository) Update(ctx context.Context, category *entity.Category) error {
	categoryModel := model.CategoryFromEntity(category)
	result := r.db.WithContext(ctx).
		Model(&model.CategoryModel{}).
		Where("id = ?", category.ID).
		Select("*").
		Updates(categoryModel)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerror.ErrCategoryNotFound
	}
	return nil
}

// FindByID retrieves a category by id, soft-deleted rows included.
func (r *categoryRepository) FindByID(ctx context.Context, id int64) (*entity.Category, error) {
	var categoryModel model.CategoryModel
	result := r.db.WithContext(ctx).Where("id = ?", id).First(&categoryModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrCategoryNotFound
		}
		return nil, result.Error
	}
	return categoryModel.ToEntity(), nil
}

// FindAll retrieves every row ordered by id, soft-deleted rows included.
func (r *categoryRepository) FindAll(ctx context.Context) ([]*entity.Category, error) {
	var categoryModels []model.CategoryModel
	result := r.db.WithContext(ctx).Order("id ASC").Find(&categoryModels)
	if result.Error != nil {
		return nil, result.Error
	}

	categories := make([]*entity.Category, len(categoryModels))
	for i, cm := range categoryModels {
		categories[i] = cm.ToEntity()
	}
	return categories, nil
}

// FindLive retrieves non-deleted rows, optionally filtered by type.
func (r *categoryRepository) FindLive(ctx context.Context, categoryType *entity.CategoryType) ([]*entity.Category, error) {
	query := r.db.WithContext(ctx).
		Model(&model.CategoryModel{}).
		Where("is_deleted = ?", false)
	if categoryType != nil {
		query = query.Where("type = ?", string(*categoryType))
	}

	var categoryModels []model.CategoryModel
	result := query.Order("id ASC").Find(&categoryModels)
	if result.Error != nil {
		return nil, result.Error
	}

	categories := make([]*entity.Category, len(categoryModels))
	for i, cm := range categoryModels {
		categories[i] = cm.ToEntity()
	}
	return categories, nil
}

// CountCustom returns the number of non-reserved rows, soft-deleted included.
func (r *categoryRepository) CountCustom(ctx context.Context) (int64, error) {
	var count int64
	result := r.db.WithContext(ctx).
		Model(&model.CategoryModel{}).
		Where("id > 0").
		Count(&count)
	if result.Error != nil {
		return 0, result.Error
	}
	return count, nil
}

// MarkDeleted sets the soft-delete flag and stamps the row's clock.
func (r *categoryRepository) MarkDeleted(ctx context.Context, id int64, updatedAt int64) error {
	if entity.IsReservedCategoryID(id) {
		return domainerror.ErrCategoryReserved
	}
	result := r.db.WithContext(ctx).
		Model(&model.CategoryModel{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"is_deleted": true,
			"updated_at": updatedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerror.ErrCategoryNotFound
	}
	return nil
}

// HardDelete physically removes the row.
func (r *categoryRepository) HardDelete(ctx context.Context, id int64) error {
	if entity.IsReservedCategoryID(id) {
		return domainerror.ErrCategoryReserved
	}
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.CategoryModel{})
	if result.Error != nil {
		return result.Error
	}
	return nil
}
