package stats

import (
	"fmt"

	"expenshare/internal/models"
)

// Rates is the exchange rate pair used to convert EUR-canonical amounts.
// 1 EUR = EURToCFA CFA francs = EURToUSD US dollars.
type Rates struct {
	EURToCFA float64
	EURToUSD float64
}

// DefaultRates returns the fallback rates used when nothing is configured.
func DefaultRates() Rates {
	return Rates{EURToCFA: 655.957, EURToUSD: 1.0}
}

// Convert converts an EUR-canonical amount into the target currency. Pure and
// linear: sums are always computed from canonical amounts and converted at
// presentation time, never stored pre-converted.
func Convert(amount float64, currency models.Currency, rates Rates) float64 {
	switch currency {
	case models.CurrencyCFA:
		return amount * rates.EURToCFA
	case models.CurrencyUSD:
		return amount * rates.EURToUSD
	default:
		return amount
	}
}

// Format renders an amount with two decimals, e.g. "54.00".
func Format(amount float64) string {
	return fmt.Sprintf("%.2f", amount)
}

// FormatIn converts and renders an amount with its display currency code,
// e.g. "54.00 USD". CFA renders under its ISO code XOF.
func FormatIn(amount float64, currency models.Currency, rates Rates) string {
	return Format(Convert(amount, currency, rates)) + " " + currency.DisplayCode()
}
