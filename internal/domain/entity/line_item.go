package entity

import (
	"fmt"

	"github.com/jhoicas/lavadero-api/internal/domain/money"
)

// LineKind discriminante de LineItem.
type LineKind string

const (
	LineService LineKind = "service"
	LineCombo   LineKind = "combo"
	LineProduct LineKind = "product"
	LineAdHoc   LineKind = "adhoc"
)

// LineItem línea del carrito ya validada: ServiceLine, ComboLine, ProductLine o AdHocLine.
type LineItem interface {
	Kind() LineKind
	Detail() LineDetail
	isLineItem()
}

// LineDetail datos comunes a toda línea.
type LineDetail struct {
	Name      string
	UnitPrice money.Amount
	Quantity  int
}

// Subtotal precio unitario por cantidad.
func (d LineDetail) Subtotal() money.Amount { return d.UnitPrice.MulQty(d.Quantity) }

func (d LineDetail) validate() error {
	if d.Name == "" {
		return fmt.Errorf("nombre requerido")
	}
	if d.Quantity <= 0 {
		return fmt.Errorf("cantidad debe ser un entero positivo")
	}
	if !d.UnitPrice.IsPositive() {
		return fmt.Errorf("precio unitario debe ser mayor a cero")
	}
	return nil
}

// ServiceLine servicio del catálogo.
type ServiceLine struct {
	ServiceID string
	LineDetail
}

// ComboLine combo del catálogo, facturado como una sola línea a su precio de paquete.
type ComboLine struct {
	ComboID string
	LineDetail
}

// ProductLine ítem de inventario; descuenta stock al facturar.
type ProductLine struct {
	InventoryItemID string
	LineDetail
}

// AdHocLine línea de texto libre sin referencia al catálogo.
type AdHocLine struct {
	LineDetail
}

func (ServiceLine) Kind() LineKind { return LineService }
func (ComboLine) Kind() LineKind   { return LineCombo }
func (ProductLine) Kind() LineKind { return LineProduct }
func (AdHocLine) Kind() LineKind   { return LineAdHoc }

func (l ServiceLine) Detail() LineDetail { return l.LineDetail }
func (l ComboLine) Detail() LineDetail   { return l.LineDetail }
func (l ProductLine) Detail() LineDetail { return l.LineDetail }
func (l AdHocLine) Detail() LineDetail   { return l.LineDetail }

func (ServiceLine) isLineItem() {}
func (ComboLine) isLineItem()   {}
func (ProductLine) isLineItem() {}
func (AdHocLine) isLineItem()   {}

// ValidateLine verifica invariantes de la línea (referencia, nombre, precio, cantidad).
func ValidateLine(l LineItem) error {
	switch v := l.(type) {
	case ServiceLine:
		if v.ServiceID == "" {
			return fmt.Errorf("service_id requerido")
		}
	case ComboLine:
		if v.ComboID == "" {
			return fmt.Errorf("combo_id requerido")
		}
	case ProductLine:
		if v.InventoryItemID == "" {
			return fmt.Errorf("inventory_item_id requerido")
		}
	case AdHocLine:
	default:
		return fmt.Errorf("tipo de línea desconocido")
	}
	return l.Detail().validate()
}

// NewSaleItem materializa la línea como ítem persistible de la venta.
func NewSaleItem(id, saleID string, l LineItem) *SaleItem {
	d := l.Detail()
	item := &SaleItem{
		ID:        id,
		SaleID:    saleID,
		Kind:      l.Kind(),
		Name:      d.Name,
		Quantity:  d.Quantity,
		UnitPrice: d.UnitPrice,
		Subtotal:  d.Subtotal(),
	}
	switch v := l.(type) {
	case ServiceLine:
		ref := v.ServiceID
		item.ServiceID = &ref
	case ComboLine:
		ref := v.ComboID
		item.ComboID = &ref
	case ProductLine:
		ref := v.InventoryItemID
		item.InventoryItemID = &ref
	}
	return item
}
