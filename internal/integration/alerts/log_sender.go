package alerts

import (
	"context"
	"log/slog"

	"github.com/expense-tracker/core/internal/domain/entity"
)

// LogSender writes alerts to the structured log instead of sending email.
// Used when no Resend API key is configured.
type LogSender struct{}

// NewLogSender creates a new log-only alert sender.
func NewLogSender() *LogSender {
	return &LogSender{}
}

// Send logs the alert.
func (s *LogSender) Send(_ context.Context, alert *entity.BudgetAlert) error {
	slog.Info("Budget alert",
		"category", alert.CategoryTitle,
		"total", alert.Total.StringFixed(2),
		"limit", alert.Limit.StringFixed(2),
	)
	return nil
}
