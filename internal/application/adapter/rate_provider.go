// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/shopspring/decimal"
)

// RateProvider returns the multiplicative exchange rate from source to target
// currency (both ISO 4217 codes).
type RateProvider interface {
	Quote(ctx context.Context, source, target string) (decimal.Decimal, error)
}
