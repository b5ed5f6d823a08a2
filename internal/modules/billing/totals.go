package billing

import (
	"github.com/ahmetcoskunkizilkaya/bizops-backend/internal/apperr"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Totals is the result of pricing an invoice.
type Totals struct {
	Items    []LineItem
	Subtotal float64
	Tax      float64
	Total    float64
}

// ComputeTotals validates items and taxRate and prices the invoice in
// decimal, rounding every stored figure to cents (half away from zero).
// The returned items carry their computed Amount.
func ComputeTotals(items []LineItem, taxRate float64) (Totals, error) {
	if taxRate < 0 || taxRate > 100 {
		return Totals{}, apperr.Validation("taxRate must be between 0 and 100")
	}

	out := make([]LineItem, len(items))
	subtotal := decimal.Zero
	for i, it := range items {
		if it.Quantity < 1 {
			return Totals{}, apperr.Validation("items[%d].quantity must be >= 1", i)
		}
		if it.Rate < 0 {
			return Totals{}, apperr.Validation("items[%d].rate must be >= 0", i)
		}
		amount := decimal.NewFromInt(int64(it.Quantity)).Mul(decimal.NewFromFloat(it.Rate)).Round(2)
		it.Amount = amount.InexactFloat64()
		out[i] = it
		subtotal = subtotal.Add(amount)
	}

	subtotal = subtotal.Round(2)
	tax := subtotal.Mul(decimal.NewFromFloat(taxRate)).Div(hundred).Round(2)
	total := subtotal.Add(tax)

	return Totals{
		Items:    out,
		Subtotal: subtotal.InexactFloat64(),
		Tax:      tax.InexactFloat64(),
		Total:    total.InexactFloat64(),
	}, nil
}
