package ui

import (
	"strings"

	"github.com/shopspring/decimal"
)

// PriceFormatter turns an amount into a display string. Display only.
type PriceFormatter struct {
	Symbol       string
	DecimalSep   string
	ThousandsSep string
}

// DefaultPriceFormatter renders Brazilian reais, e.g. "R$ 1.234,50".
func DefaultPriceFormatter() PriceFormatter {
	return PriceFormatter{Symbol: "R$", DecimalSep: ",", ThousandsSep: "."}
}

// Format renders amount rounded to two places.
func (f PriceFormatter) Format(amount decimal.Decimal) string {
	fixed := amount.Abs().StringFixed(2)
	whole, frac, _ := strings.Cut(fixed, ".")

	var b strings.Builder
	if amount.Round(2).IsNegative() {
		b.WriteByte('-')
	}
	if f.Symbol != "" {
		b.WriteString(f.Symbol)
		b.WriteByte(' ')
	}
	for i, r := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			b.WriteString(f.ThousandsSep)
		}
		b.WriteRune(r)
	}
	b.WriteString(f.DecimalSep)
	b.WriteString(frac)
	return b.String()
}
