package entity

import (
	"time"

	"github.com/jhoicas/lavadero-api/internal/domain/money"
)

// Estados de alerta de stock.
const (
	AlertNormal   = "normal"
	AlertLow      = "bajo"
	AlertCritical = "critico"
)

// InventoryItem insumo o producto de reventa (ceras, aromatizantes).
type InventoryItem struct {
	ID          string
	Name        string
	Description string
	Stock       int
	MinStock    int
	Unit        string // UN, LT, KG
	Supplier    string
	SalePrice   money.Amount
	AlertStatus string
	Active      bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// StockAlert clasifica el nivel de stock: <=0 crítico, <=mínimo bajo.
func StockAlert(stock, minStock int) string {
	switch {
	case stock <= 0:
		return AlertCritical
	case stock <= minStock:
		return AlertLow
	default:
		return AlertNormal
	}
}

// SetStock actualiza el stock y recalcula la alerta.
func (i *InventoryItem) SetStock(stock int, now time.Time) {
	i.Stock = stock
	i.AlertStatus = StockAlert(stock, i.MinStock)
	i.UpdatedAt = now
}
