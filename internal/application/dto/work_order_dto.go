package dto

import "github.com/jhoicas/lavadero-api/internal/domain/money"

// CreateWorkOrderRequest body para POST /api/work-orders.
type CreateWorkOrderRequest struct {
	CustomerID   string `json:"customer_id" validate:"required,uuid"`
	VehiclePlate string `json:"vehicle_plate" validate:"required,max=15"`
	Vehicle      string `json:"vehicle,omitempty" validate:"max=120"`
	Notes        string `json:"notes,omitempty" validate:"max=500"`
}

// UpdateWorkOrderStatusRequest body para PATCH /api/work-orders/:id/status.
type UpdateWorkOrderStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=en-proceso listo"`
}

// WorkOrderResponse orden de trabajo.
type WorkOrderResponse struct {
	ID           string       `json:"id"`
	Number       int64        `json:"number"`
	CustomerID   string       `json:"customer_id"`
	VehiclePlate string       `json:"vehicle_plate"`
	Vehicle      string       `json:"vehicle,omitempty"`
	Status       string       `json:"status"`
	Notes        string       `json:"notes,omitempty"`
	Total        money.Amount `json:"total"`
	ReceivedAt   string       `json:"received_at"`
	StartedAt    string       `json:"started_at,omitempty"`
	FinishedAt   string       `json:"finished_at,omitempty"`
	DeliveredAt  string       `json:"delivered_at,omitempty"`
}
