package entity

import (
	"time"

	"github.com/jhoicas/lavadero-api/internal/domain/money"
)

// MinComboServices cantidad mínima de servicios distintos en un combo.
const MinComboServices = 2

// ServiceCombo paquete de servicios con precio propio. La baja es lógica (Active=false).
type ServiceCombo struct {
	ID          string
	Name        string
	Description string
	Price       money.Amount
	ServiceIDs  []string
	Active      bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
