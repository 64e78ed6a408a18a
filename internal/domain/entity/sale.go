package entity

import (
	"time"

	"github.com/jhoicas/lavadero-api/internal/domain/money"
)

// Medios de pago aceptados.
const (
	PaymentCash     = "efectivo"
	PaymentCard     = "tarjeta"
	PaymentTransfer = "transferencia"
	PaymentAccount  = "cuenta"
)

// IsValidPaymentMethod indica si el medio de pago es aceptado.
func IsValidPaymentMethod(m string) bool {
	switch m {
	case PaymentCash, PaymentCard, PaymentTransfer, PaymentAccount:
		return true
	}
	return false
}

// Sale factura emitida. Registro fiscal inmutable: se crea una sola vez al cerrar la venta.
// TimbradoNumber, Establishment y PointOfSale son copias del timbrado vigente al emitir.
type Sale struct {
	ID             string
	InvoiceNumber  string // EEE-PPP-NNNNNNN
	Establishment  string
	PointOfSale    string
	TimbradoNumber string
	CustomerID     *string
	WorkOrderID    *string
	IssuedAt       time.Time
	Subtotal       money.Amount
	Tax            money.Amount
	Total          money.Amount
	PaymentMethod  string
	TourismRegime  bool
	CreatedBy      string
	CreatedAt      time.Time
	Items          []*SaleItem
}

// SaleItem línea de la factura. Nombre y precio son instantáneas del catálogo.
type SaleItem struct {
	ID              string
	SaleID          string
	Kind            LineKind
	ServiceID       *string
	ComboID         *string
	InventoryItemID *string
	Name            string
	Quantity        int
	UnitPrice       money.Amount
	Subtotal        money.Amount
}
