package entity

import (
	"time"

	"github.com/jhoicas/lavadero-api/internal/domain/money"
)

// Estados de la orden de trabajo, en orden de avance.
const (
	WorkOrderReceived   = "recibido"
	WorkOrderInProgress = "en-proceso"
	WorkOrderReady      = "listo"
	WorkOrderDelivered  = "entregado"
)

var workOrderRank = map[string]int{
	WorkOrderReceived:   0,
	WorkOrderInProgress: 1,
	WorkOrderReady:      2,
	WorkOrderDelivered:  3,
}

// WorkOrder orden de lavado de un vehículo.
type WorkOrder struct {
	ID           string
	Number       int64
	CustomerID   string
	VehiclePlate string
	Vehicle      string // marca / modelo / color
	Status       string
	Notes        string
	Total        money.Amount
	ReceivedAt   time.Time
	StartedAt    *time.Time
	FinishedAt   *time.Time
	DeliveredAt  *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsValidWorkOrderStatus indica si s es un estado conocido.
func IsValidWorkOrderStatus(s string) bool {
	_, ok := workOrderRank[s]
	return ok
}

// CanTransition solo permite avanzar; entregado es terminal.
func (w *WorkOrder) CanTransition(to string) bool {
	next, ok := workOrderRank[to]
	if !ok {
		return false
	}
	return next > workOrderRank[w.Status]
}

// Transition aplica el cambio de estado y registra la marca de tiempo correspondiente.
func (w *WorkOrder) Transition(to string, at time.Time) bool {
	if !w.CanTransition(to) {
		return false
	}
	w.Status = to
	w.UpdatedAt = at
	switch to {
	case WorkOrderInProgress:
		w.StartedAt = &at
	case WorkOrderReady:
		w.FinishedAt = &at
	case WorkOrderDelivered:
		w.DeliveredAt = &at
	}
	return true
}
