package entity

import "time"

// Tipos de documento del cliente.
const (
	DocTypeCI       = "CI"
	DocTypeRUC      = "RUC"
	DocTypePassport = "PASS"
)

// Customer cliente del lavadero. TourismRegime exime de IVA a extranjeros.
type Customer struct {
	ID            string
	Name          string
	DocType       string
	DocNumber     string
	Email         string
	Phone         string
	Address       string
	TourismRegime bool
	Country       string // ISO 3166 alpha-2, obligatorio con régimen turismo
	Passport      string
	EntryDate     *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
