package entity

import (
	"time"

	"github.com/jhoicas/lavadero-api/internal/domain/money"
)

// Categorías del catálogo de servicios.
var ServiceCategories = []string{"basico", "premium", "motor", "tapizado", "encerado", "ozono"}

// Service servicio de lavado ofrecido. La baja es lógica (Active=false).
type Service struct {
	ID          string
	Name        string
	Description string
	Price       money.Amount
	DurationMin int
	Category    string
	Active      bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// IsValidServiceCategory indica si la categoría pertenece al catálogo.
func IsValidServiceCategory(c string) bool {
	for _, v := range ServiceCategories {
		if v == c {
			return true
		}
	}
	return false
}
