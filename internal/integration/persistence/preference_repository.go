package persistence

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/expense-tracker/core/internal/application/adapter"
	domainerror "github.com/expense-tracker/core/internal/domain/error"
	"github.com/expense-tracker/core/internal/integration/persistence/model"
)

// preferenceRepository implements the adapter.PreferenceStore interface.
type preferenceRepository struct {
	db *gorm.DB
}

// NewPreferenceRepository creates a new preference repository instance.
func NewPreferenceRepository(db *gorm.DB) adapter.PreferenceStore {
	return &preferenceRepository{
		db: db,
	}
}

// Get retrieves the value stored under key.
func (r *preferenceRepository) Get(ctx context.Context, key string) (string, error) {
	var preferenceModel model.PreferenceModel
	result := r.db.WithContext(ctx).Where("key = ?", key).First(&preferenceModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return "", domainerror.ErrPreferenceNotFound
		}
		return "", result.Error
	}
	return preferenceModel.Value, nil
}

// GetOrDefault retrieves the value stored under key, falling back to def.
func (r *preferenceRepository) GetOrDefault(ctx context.Context, key, def string) (string, error) {
	value, err := r.Get(ctx, key)
	if errors.Is(err, domainerror.ErrPreferenceNotFound) {
		return def, nil
	}
	if err != nil {
		return "", err
	}
	return value, nil
}

// Set stores value under key, creating or replacing it.
func (r *preferenceRepository) Set(ctx context.Context, key, value string) error {
	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value"}),
		}).
		Create(&model.PreferenceModel{Key: key, Value: value})
	if result.Error != nil {
		return result.Error
	}
	return nil
}

// Delete removes key. Deleting an absent key is not an error.
func (r *preferenceRepository) Delete(ctx context.Context, key string) error {
	result := r.db.WithContext(ctx).Where("key = ?", key).Delete(&model.PreferenceModel{})
	if result.Error != nil {
		return result.Error
	}
	return nil
}
