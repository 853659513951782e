// Package pricing derives line and container totals. Totals are always
// recomputed from the full line set, never adjusted incrementally.
package pricing

import "github.com/shopspring/decimal"

// Places is the number of fractional digits kept for money values.
const Places = 2

type Line interface {
	LineTotal() decimal.Decimal
}

func LineTotal(quantity int, unitPrice decimal.Decimal) decimal.Decimal {
	return unitPrice.Mul(decimal.NewFromInt(int64(quantity))).Round(Places)
}

// Total sums the line totals. An empty set yields exactly zero.
func Total[L Line](lines []L) decimal.Decimal {
	total := decimal.Zero

	for _, line := range lines {
		total = total.Add(line.LineTotal())
	}

	return total.Round(Places)
}
