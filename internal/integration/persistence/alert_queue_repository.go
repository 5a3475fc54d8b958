package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/expense-tracker/core/internal/application/adapter"
	"github.com/expense-tracker/core/internal/domain/entity"
	domainerror "github.com/expense-tracker/core/internal/domain/error"
	"github.com/expense-tracker/core/internal/integration/persistence/model"
)

// alertQueueRepository implements the adapter.AlertQueue interface on the
// budget_alerts table. The delivery worker polls it.
type alertQueueRepository struct {
	db *gorm.DB
}

// NewAlertQueueRepository creates a new alert queue repository instance.
func NewAlertQueueRepository(db *gorm.DB) adapter.AlertQueue {
	return &alertQueueRepository{
		db: db,
	}
}

// Enqueue stores a pending alert.
func (r *alertQueueRepository) Enqueue(ctx context.Context, alert *entity.BudgetAlert) error {
	alertModel := model.BudgetAlertFromEntity(alert)
	result := r.db.WithContext(ctx).Create(alertModel)
	if result.Error != nil {
		return result.Error
	}
	return nil
}

// PendingAlerts returns up to limit pending alerts, oldest first.
func (r *alertQueueRepository) PendingAlerts(ctx context.Context, limit int) ([]*entity.BudgetAlert, error) {
	var alertModels []model.BudgetAlertModel
	result := r.db.WithContext(ctx).
		Where("status = ?", string(entity.AlertStatusPending)).
		Order("created_at ASC").
		Limit(limit).
		Find(&alertModels)
	if result.Error != nil {
		return nil, result.Error
	}

	alerts := make([]*entity.BudgetAlert, len(alertModels))
	for i, am := range alertModels {
		alerts[i] = am.ToEntity()
	}
	return alerts, nil
}

// MarkSent records a successful delivery.
func (r *alertQueueRepository) MarkSent(ctx context.Context, id uuid.UUID) error {
	now := time.Now().UTC()
	result := r.db.WithContext(ctx).
		Model(&model.BudgetAlertModel{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":  string(entity.AlertStatusSent),
			"sent_at": now,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerror.ErrAlertNotFound
	}
	return nil
}

// MarkFailed records a failed attempt. The alert stays pending while attempts
// remain and flips to failed afterwards.
func (r *alertQueueRepository) MarkFailed(ctx context.Context, id uuid.UUID, reason string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var alertModel model.BudgetAlertModel
		if err := tx.Where("id = ?", id).First(&alertModel).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domainerror.ErrAlertNotFound
			}
			return err
		}

		alertModel.Attempts++
		status := string(entity.AlertStatusPending)
		if alertModel.Attempts >= entity.MaxAlertAttempts {
			status = string(entity.AlertStatusFailed)
		}

		return tx.Model(&model.BudgetAlertModel{}).
			Where("id = ?", id).
			Updates(map[string]interface{}{
				"attempts":   alertModel.Attempts,
				"status":     status,
				"last_error": reason,
			}).Error
	})
}
