// Package money modela importes en guaraníes (PYG) con aritmética decimal exacta.
// El guaraní no tiene subunidades: todo importe persistido es entero y los
// porcentajes se redondean a la unidad con half-up.
package money

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// MinorUnits cantidad de decimales de la moneda (PYG = 0).
const MinorUnits = 0

var (
	ErrFractional = errors.New("money: el guaraní no admite decimales")
	ErrNegative   = errors.New("money: importe negativo")
)

// Amount importe monetario inmutable.
type Amount struct {
	d decimal.Decimal
}

// Zero importe nulo.
var Zero = Amount{d: decimal.Zero}

// New crea un importe a partir de guaraníes enteros.
func New(units int64) Amount {
	return Amount{d: decimal.NewFromInt(units)}
}

// FromDecimal envuelve un decimal leído de la base (NUMERIC). Se redondea a MinorUnits.
func FromDecimal(d decimal.Decimal) Amount {
	return Amount{d: d.Round(MinorUnits)}
}

// Parse interpreta un importe textual ("35000", "35000.00"). Rechaza fracciones y negativos.
func Parse(s string) (Amount, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Zero, fmt.Errorf("money: importe inválido %q: %w", s, err)
	}
	return fromExact(d)
}

func fromExact(d decimal.Decimal) (Amount, error) {
	if d.IsNegative() {
		return Zero, ErrNegative
	}
	if !d.Equal(d.Round(MinorUnits)) {
		return Zero, ErrFractional
	}
	return Amount{d: d.Round(MinorUnits)}, nil
}

// Decimal valor subyacente (para el codec NUMERIC de pgx).
func (a Amount) Decimal() decimal.Decimal { return a.d }

// Add suma dos importes.
func (a Amount) Add(b Amount) Amount { return Amount{d: a.d.Add(b.d)} }

// Sub resta b de a.
func (a Amount) Sub(b Amount) Amount { return Amount{d: a.d.Sub(b.d)} }

// MulQty multiplica por una cantidad entera.
func (a Amount) MulQty(qty int) Amount {
	return Amount{d: a.d.Mul(decimal.NewFromInt(int64(qty)))}
}

// Percent aplica una tasa (0.10 = 10%) y redondea half-up a la unidad mínima.
func (a Amount) Percent(rate decimal.Decimal) Amount {
	return Amount{d: roundHalfUp(a.d.Mul(rate), MinorUnits)}
}

var half = decimal.New(5, -1)

// roundHalfUp: floor(d*10^p + 0.5) / 10^p. decimal.Round redondea alejándose de cero
// y difiere en negativos.
func roundHalfUp(d decimal.Decimal, places int32) decimal.Decimal {
	return d.Shift(places).Add(half).Floor().Shift(-places)
}

func (a Amount) IsZero() bool              { return a.d.IsZero() }
func (a Amount) IsPositive() bool          { return a.d.IsPositive() }
func (a Amount) Equal(b Amount) bool       { return a.d.Equal(b.d) }
func (a Amount) GreaterThan(b Amount) bool { return a.d.GreaterThan(b.d) }

// Int64 valor entero en guaraníes.
func (a Amount) Int64() int64 { return a.d.IntPart() }

// String representación sin separadores ("38500").
func (a Amount) String() string { return a.d.StringFixed(MinorUnits) }

// MarshalJSON serializa como string para no perder precisión en clientes JS.
func (a Amount) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.String())
}

// UnmarshalJSON acepta "35000" o 35000.
func (a *Amount) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*a = Zero
		return nil
	}
	s := string(b)
	if len(b) > 0 && b[0] == '"' {
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
	}
	v, err := Parse(s)
	if err != nil {
		return err
	}
	*a = v
	return nil
}

// Sum suma una lista de importes.
func Sum(amounts ...Amount) Amount {
	total := Zero
	for _, x := range amounts {
		total = total.Add(x)
	}
	return total
}
