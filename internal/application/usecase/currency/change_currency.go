// Package currency contains the currency rebase use case.
package currency

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/expense-tracker/core/internal/application/adapter"
	"github.com/expense-tracker/core/internal/domain/entity"
	domainerror "github.com/expense-tracker/core/internal/domain/error"
)

// ChangeCurrencyInput represents the input for a currency switch.
type ChangeCurrencyInput struct {
	Target string // ISO 4217 code
}

// ChangeCurrencyOutput represents the output of a currency switch.
type ChangeCurrencyOutput struct {
	Source string
	Target string
	Rate   decimal.Decimal
	// Changed is false when the target equals the current default currency,
	// in which case no amounts were touched.
	Changed bool
}

// ChangeCurrencyUseCase rebases every stored amount when the user switches
// the default currency: one quote, one bulk multiplication, one preference
// write. Not idempotent: it runs once per actual switch, and running it
// twice double-applies the rate.
type ChangeCurrencyUseCase struct {
	transactionStore adapter.TransactionStore
	rates            adapter.RateProvider
	preferences      adapter.PreferenceStore
}

// NewChangeCurrencyUseCase creates a new ChangeCurrencyUseCase instance.
func NewChangeCurrencyUseCase(
	transactionStore adapter.TransactionStore,
	rates adapter.RateProvider,
	preferences adapter.PreferenceStore,
) *ChangeCurrencyUseCase {
	return &ChangeCurrencyUseCase{
		transactionStore: transactionStore,
		rates:            rates,
		preferences:      preferences,
	}
}

// Execute performs the currency switch.
func (uc *ChangeCurrencyUseCase) Execute(ctx context.Context, input ChangeCurrencyInput) (*ChangeCurrencyOutput, error) {
	target := strings.ToUpper(strings.TrimSpace(input.Target))
	if len(target) != 3 {
		return nil, domainerror.NewCurrencyError(
			domainerror.ErrCodeUnknownCurrency,
			"currency must be a three-letter code",
			domainerror.ErrUnknownCurrency,
		)
	}

	source, err := uc.preferences.GetOrDefault(ctx, entity.PrefDefaultCurrency, entity.DefaultCurrency)
	if err != nil {
		return nil, fmt.Errorf("failed to read default currency: %w", err)
	}

	if source == target {
		return &ChangeCurrencyOutput{Source: source, Target: target, Rate: decimal.NewFromInt(1)}, nil
	}

	rate, err := uc.rates.Quote(ctx, source, target)
	if err != nil {
		return nil, domainerror.NewCurrencyError(
			domainerror.ErrCodeQuoteUnavailable,
			fmt.Sprintf("no quote for %s to %s", source, target),
			err,
		)
	}

	if err := uc.transactionStore.ScaleAmounts(ctx, rate); err != nil {
		return nil, fmt.Errorf("failed to rebase amounts: %w", err)
	}

	if err := uc.preferences.Set(ctx, entity.PrefDefaultCurrency, target); err != nil {
		return nil, fmt.Errorf("failed to store default currency: %w", err)
	}

	slog.Info("Currency rebased", "from", source, "to", target, "rate", rate.String())

	return &ChangeCurrencyOutput{Source: source, Target: target, Rate: rate, Changed: true}, nil
}
