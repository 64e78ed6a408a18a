package dto

import "github.com/jhoicas/lavadero-api/internal/domain/money"

// ServiceRequest body para POST/PUT /api/services.
type ServiceRequest struct {
	Name        string       `json:"name" validate:"required,max=120"`
	Description string       `json:"description,omitempty" validate:"max=500"`
	Price       money.Amount `json:"price"`
	DurationMin int          `json:"duration_min" validate:"omitempty,min=5,max=480"`
	Category    string       `json:"category" validate:"required,oneof=basico premium motor tapizado encerado ozono"`
	Active      *bool        `json:"active,omitempty"`
}

// ServiceResponse servicio del catálogo.
type ServiceResponse struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Description string       `json:"description,omitempty"`
	Price       money.Amount `json:"price"`
	DurationMin int          `json:"duration_min"`
	Category    string       `json:"category"`
	Active      bool         `json:"active"`
}

// ServiceComboRequest body para POST/PUT /api/service-combos.
type ServiceComboRequest struct {
	Name        string       `json:"name" validate:"required,max=120"`
	Description string       `json:"description,omitempty" validate:"max=500"`
	Price       money.Amount `json:"price"`
	ServiceIDs  []string     `json:"service_ids" validate:"min=2,unique,dive,uuid"`
	Active      *bool        `json:"active,omitempty"`
}

// ServiceComboResponse combo del catálogo. Services y RegularPrice solo en el detalle.
type ServiceComboResponse struct {
	ID           string             `json:"id"`
	Name         string             `json:"name"`
	Description  string             `json:"description,omitempty"`
	Price        money.Amount       `json:"price"`
	ServiceIDs   []string           `json:"service_ids"`
	Active       bool               `json:"active"`
	Services     []*ServiceResponse `json:"services,omitempty"`
	RegularPrice *money.Amount      `json:"regular_price,omitempty"`
}

// InventoryItemRequest body para POST/PUT /api/inventory.
type InventoryItemRequest struct {
	Name        string       `json:"name" validate:"required,max=120"`
	Description string       `json:"description,omitempty" validate:"max=500"`
	Stock       int          `json:"stock" validate:"min=0"`
	MinStock    int          `json:"min_stock" validate:"min=0"`
	Unit        string       `json:"unit,omitempty" validate:"omitempty,oneof=UN LT KG"`
	Supplier    string       `json:"supplier,omitempty" validate:"max=120"`
	SalePrice   money.Amount `json:"sale_price"`
	Active      *bool        `json:"active,omitempty"`
}

// StockAdjustmentRequest body para POST /api/inventory/:id/adjust. Delta puede ser negativo.
type StockAdjustmentRequest struct {
	Delta  int    `json:"delta" validate:"required"`
	Reason string `json:"reason,omitempty" validate:"max=200"`
}

// InventoryItemResponse ítem de inventario con su alerta.
type InventoryItemResponse struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Description string       `json:"description,omitempty"`
	Stock       int          `json:"stock"`
	MinStock    int          `json:"min_stock"`
	Unit        string       `json:"unit"`
	Supplier    string       `json:"supplier,omitempty"`
	SalePrice   money.Amount `json:"sale_price"`
	AlertStatus string       `json:"alert_status"`
	Active      bool         `json:"active"`
}
