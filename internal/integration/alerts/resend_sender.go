package alerts

import (
	"context"
	"fmt"
	"strings"

	"github.com/resend/resend-go/v2"

	"github.com/expense-tracker/core/internal/domain/entity"
	domainerror "github.com/expense-tracker/core/internal/domain/error"
)

// ResendSender implements the adapter.AlertSender interface using Resend.
type ResendSender struct {
	client    *resend.Client
	fromName  string
	fromEmail string
	toEmail   string
}

// NewResendSender creates a new Resend alert sender.
func NewResendSender(apiKey, fromName, fromEmail, toEmail string) *ResendSender {
	return &ResendSender{
		client:    resend.NewClient(apiKey),
		fromName:  fromName,
		fromEmail: fromEmail,
		toEmail:   toEmail,
	}
}

// Send delivers a budget alert email via Resend.
func (s *ResendSender) Send(ctx context.Context, alert *entity.BudgetAlert) error {
	from := fmt.Sprintf("%s <%s>", s.fromName, s.fromEmail)
	subject := fmt.Sprintf("Budget limit reached: %s", alert.CategoryTitle)
	text := fmt.Sprintf(
		"Your %s spending has reached %s against a limit of %s.",
		alert.CategoryTitle, alert.Total.StringFixed(2), alert.Limit.StringFixed(2),
	)

	params := &resend.SendEmailRequest{
		From:    from,
		To:      []string{s.toEmail},
		Subject: subject,
		Text:    text,
	}

	if _, err := s.client.Emails.SendWithContext(ctx, params); err != nil {
		if isPermanentError(err) {
			return domainerror.NewAlertError(
				domainerror.ErrCodePermanentAlertFailure,
				"permanent alert delivery failure",
				err,
			)
		}
		return domainerror.NewAlertError(
			domainerror.ErrCodeTemporaryAlertFailure,
			"temporary alert delivery failure",
			err,
		)
	}
	return nil
}

// isPermanentError reports whether the error should not be retried.
// 401, 403 and 422 responses are permanent; rate limits and 5xx are not.
func isPermanentError(err error) bool {
	if err == nil {
		return false
	}
	errStr := err.Error()
	for _, pattern := range []string{"401", "403", "422", "unauthorized", "forbidden", "validation"} {
		if strings.Contains(errStr, pattern) {
			return true
		}
	}
	return false
}
