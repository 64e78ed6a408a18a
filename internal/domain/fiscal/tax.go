package fiscal

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/lavadero-api/internal/domain/money"
)

// TaxRate IVA general aplicado a los servicios de lavado.
var TaxRate = decimal.New(10, -2)

// Totals liquidación de una venta.
type Totals struct {
	Subtotal money.Amount
	Tax      money.Amount
	Total    money.Amount
}

// ComputeTotals aplica el IVA sobre el subtotal, salvo régimen turismo (exento).
func ComputeTotals(subtotal money.Amount, tourismRegime bool) Totals {
	tax := money.Zero
	if !tourismRegime {
		tax = subtotal.Percent(TaxRate)
	}
	return Totals{
		Subtotal: subtotal,
		Tax:      tax,
		Total:    subtotal.Add(tax),
	}
}
