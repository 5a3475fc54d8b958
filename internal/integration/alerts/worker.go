// Package alerts delivers queued budget alerts.
package alerts

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/expense-tracker/core/internal/application/adapter"
	"github.com/expense-tracker/core/internal/domain/entity"
	domainerror "github.com/expense-tracker/core/internal/domain/error"
)

// Worker drains the budget alert queue in the background.
type Worker struct {
	queue        adapter.AlertQueue
	sender       adapter.AlertSender
	pollInterval time.Duration
	batchSize    int
}

// WorkerConfig holds configuration for the alert worker.
type WorkerConfig struct {
	PollInterval time.Duration
	BatchSize    int
}

// DefaultWorkerConfig returns the default worker configuration.
func DefaultWorkerConfig() WorkerConfig {
	return WorkerConfig{
		PollInterval: 15 * time.Second,
		BatchSize:    10,
	}
}

// NewWorker creates a new alert worker.
func NewWorker(queue adapter.AlertQueue, sender adapter.AlertSender, config WorkerConfig) *Worker {
	return &Worker{
		queue:        queue,
		sender:       sender,
		pollInterval: config.PollInterval,
		batchSize:    config.BatchSize,
	}
}

// Start begins the worker loop. It blocks until the context is cancelled.
func (w *Worker) Start(ctx context.Context) {
	slog.Info("Alert worker started",
		"poll_interval", w.pollInterval,
		"batch_size", w.batchSize,
	)

	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	w.ProcessBatch(ctx)

	for {
		select {
		case <-ctx.Done():
			slog.Info("Alert worker shutting down")
			return
		case <-ticker.C:
			w.ProcessBatch(ctx)
		}
	}
}

// ProcessBatch fetches and delivers one batch of pending alerts.
func (w *Worker) ProcessBatch(ctx context.Context) {
	alerts, err := w.queue.PendingAlerts(ctx, w.batchSize)
	if err != nil {
		slog.Error("Failed to get pending alerts", "error", err)
		return
	}
	if len(alerts) == 0 {
		return
	}

	slog.Debug("Processing alert batch", "count", len(alerts))

	for _, alert := range alerts {
		select {
		case <-ctx.Done():
			return
		default:
			w.deliver(ctx, alert)
		}
	}
}

func (w *Worker) deliver(ctx context.Context, alert *entity.BudgetAlert) {
	logger := slog.With(
		"alert_id", alert.ID,
		"category", alert.CategoryTitle,
	)

	if err := w.sender.Send(ctx, alert); err != nil {
		logger.Error("Failed to deliver alert", "error", err)

		var alertErr *domainerror.AlertError
		if errors.As(err, &alertErr) && alertErr.Code == domainerror.ErrCodePermanentAlertFailure {
			// Burn the remaining attempts; retrying cannot help.
			for i := alert.Attempts; i < entity.MaxAlertAttempts; i++ {
				if qErr := w.queue.MarkFailed(ctx, alert.ID, err.Error()); qErr != nil {
					logger.Error("Failed to record alert failure", "error", qErr)
					return
				}
			}
			return
		}
		if qErr := w.queue.MarkFailed(ctx, alert.ID, err.Error()); qErr != nil {
			logger.Error("Failed to record alert failure", "error", qErr)
		}
		return
	}

	if err := w.queue.MarkSent(ctx, alert.ID); err != nil {
		logger.Error("Failed to mark alert sent", "error", err)
		return
	}
	logger.Info("Budget alert delivered")
}
