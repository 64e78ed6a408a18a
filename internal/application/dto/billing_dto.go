package dto

import "github.com/jhoicas/lavadero-api/internal/domain/money"

// CreateSaleRequest body para POST /api/sales.
type CreateSaleRequest struct {
	CustomerID    string            `json:"customer_id,omitempty" validate:"omitempty,uuid"`
	WorkOrderID   string            `json:"work_order_id,omitempty" validate:"omitempty,uuid"`
	PaymentMethod string            `json:"payment_method" validate:"required,oneof=efectivo tarjeta transferencia cuenta"`
	Items         []LineItemRequest `json:"items" validate:"dive"`
}

// LineItemRequest línea del carrito. Type discrimina la variante:
// service (service_id), combo (combo_id), product (inventory_item_id) o adhoc (name + unit_price).
// Name y UnitPrice son opcionales para service/combo/product: se toman del catálogo.
type LineItemRequest struct {
	Type            string        `json:"type" validate:"required,oneof=service combo product adhoc"`
	ServiceID       string        `json:"service_id,omitempty" validate:"required_if=Type service,omitempty,uuid"`
	ComboID         string        `json:"combo_id,omitempty" validate:"required_if=Type combo,omitempty,uuid"`
	InventoryItemID string        `json:"inventory_item_id,omitempty" validate:"required_if=Type product,omitempty,uuid"`
	Name            string        `json:"name,omitempty" validate:"required_if=Type adhoc,max=200"`
	UnitPrice       *money.Amount `json:"unit_price,omitempty"`
	Quantity        int           `json:"quantity" validate:"required,min=1,max=10000"`
}

// SaleResponse factura emitida.
type SaleResponse struct {
	ID             string             `json:"id"`
	InvoiceNumber  string             `json:"invoice_number"`
	TimbradoNumber string             `json:"timbrado_number"`
	CustomerID     string             `json:"customer_id,omitempty"`
	WorkOrderID    string             `json:"work_order_id,omitempty"`
	IssuedAt       string             `json:"issued_at"`
	Subtotal       money.Amount       `json:"subtotal"`
	Tax            money.Amount       `json:"tax"`
	Total          money.Amount       `json:"total"`
	PaymentMethod  string             `json:"payment_method"`
	TourismRegime  bool               `json:"tourism_regime"`
	Items          []SaleItemResponse `json:"items,omitempty"`
}

// SaleItemResponse línea de la factura.
type SaleItemResponse struct {
	ID              string       `json:"id"`
	Type            string       `json:"type"`
	ServiceID       string       `json:"service_id,omitempty"`
	ComboID         string       `json:"combo_id,omitempty"`
	InventoryItemID string       `json:"inventory_item_id,omitempty"`
	Name            string       `json:"name"`
	Quantity        int          `json:"quantity"`
	UnitPrice       money.Amount `json:"unit_price"`
	Subtotal        money.Amount `json:"subtotal"`
}

// SalePrintResponse datos para imprimir la factura en el cliente (GET /api/sales/:id/print).
type SalePrintResponse struct {
	Sale     SaleResponse           `json:"sale"`
	Customer *CustomerResponse      `json:"customer,omitempty"`
	Company  *CompanyConfigResponse `json:"company"`
}

// CreateCustomerRequest body para POST /api/customers (y PUT).
type CreateCustomerRequest struct {
	Name          string `json:"name" validate:"required,max=200"`
	DocType       string `json:"doc_type" validate:"omitempty,oneof=CI RUC PASS"`
	DocNumber     string `json:"doc_number" validate:"required,max=30"`
	Email         string `json:"email,omitempty" validate:"omitempty,email"`
	Phone         string `json:"phone,omitempty" validate:"max=40"`
	Address       string `json:"address,omitempty" validate:"max=300"`
	TourismRegime bool   `json:"tourism_regime"`
	Country       string `json:"country,omitempty" validate:"omitempty,iso3166_1_alpha2"`
	Passport      string `json:"passport,omitempty" validate:"max=30"`
	EntryDate     string `json:"entry_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
}

// CustomerResponse cliente en respuestas.
type CustomerResponse struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	DocType       string `json:"doc_type"`
	DocNumber     string `json:"doc_number"`
	Email         string `json:"email,omitempty"`
	Phone         string `json:"phone,omitempty"`
	Address       string `json:"address,omitempty"`
	TourismRegime bool   `json:"tourism_regime"`
	Country       string `json:"country,omitempty"`
	Passport      string `json:"passport,omitempty"`
	EntryDate     string `json:"entry_date,omitempty"`
}
