package domain

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Currency codes handled by the conversion engine.
const (
	CurrencyCLP = "CLP"
	CurrencyUSD = "USD"
)

// QuotePrecision is the number of decimals on a converted amount.
const QuotePrecision int32 = 2

// RateTier names the source a conversion rate was resolved from.
type RateTier string

const (
	RateTierLive  RateTier = "live"
	RateTierFixed RateTier = "fixed"
)

// CurrencyPair is a normalized source/target combination.
type CurrencyPair struct {
	Source string
	Target string
}

// NewCurrencyPair trims and upper-cases both codes.
func NewCurrencyPair(source, target string) CurrencyPair {
	return CurrencyPair{
		Source: strings.ToUpper(strings.TrimSpace(source)),
		Target: strings.ToUpper(strings.TrimSpace(target)),
	}
}

// IsSupported reports whether the pair is CLP→USD or USD→CLP.
func (p CurrencyPair) IsSupported() bool {
	return (p.Source == CurrencyCLP && p.Target == CurrencyUSD) ||
		(p.Source == CurrencyUSD && p.Target == CurrencyCLP)
}

// Apply converts amount using rate, expressed as CLP per 1 USD, and rounds
// half away from zero to QuotePrecision decimals. The pair must be supported.
func (p CurrencyPair) Apply(amount, rate decimal.Decimal) decimal.Decimal {
	var out decimal.Decimal
	if p.Source == CurrencyCLP {
		out = amount.Div(rate)
	} else {
		out = amount.Mul(rate)
	}
	return out.Round(QuotePrecision)
}

// ConversionQuote is the result of a conversion. AsOfDate is the date the
// conversion was computed, formatted YYYY-MM-DD.
type ConversionQuote struct {
	SourceCurrency string          `json:"source_currency"`
	TargetCurrency string          `json:"target_currency"`
	InputAmount    decimal.Decimal `json:"input_amount"`
	OutputAmount   decimal.Decimal `json:"output_amount"`
	AsOfDate       string          `json:"as_of_date"`
	RateTier       RateTier        `json:"rate_tier"`
}
