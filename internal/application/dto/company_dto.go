package dto

// UpdateCompanyConfigRequest body para PUT /api/company-config.
type UpdateCompanyConfigRequest struct {
	RUC            string `json:"ruc" validate:"required"`
	LegalName      string `json:"legal_name" validate:"required,max=200"`
	TradeName      string `json:"trade_name,omitempty" validate:"max=200"`
	TimbradoNumber string `json:"timbrado_number" validate:"required,numeric,max=15"`
	TimbradoFrom   string `json:"timbrado_from" validate:"required,datetime=2006-01-02"`
	TimbradoUntil  string `json:"timbrado_until" validate:"required,datetime=2006-01-02"`
	Establishment  string `json:"establishment,omitempty" validate:"omitempty,len=3,numeric"`
	PointOfSale    string `json:"point_of_sale,omitempty" validate:"omitempty,len=3,numeric"`
	Address        string `json:"address" validate:"required,max=300"`
	City           string `json:"city,omitempty" validate:"max=100"`
	Phone          string `json:"phone,omitempty" validate:"max=40"`
	Email          string `json:"email,omitempty" validate:"omitempty,email"`
}

// CompanyConfigResponse configuración fiscal.
type CompanyConfigResponse struct {
	ID             string `json:"id"`
	RUC            string `json:"ruc"`
	LegalName      string `json:"legal_name"`
	TradeName      string `json:"trade_name,omitempty"`
	TimbradoNumber string `json:"timbrado_number"`
	TimbradoFrom   string `json:"timbrado_from"`
	TimbradoUntil  string `json:"timbrado_until"`
	Establishment  string `json:"establishment"`
	PointOfSale    string `json:"point_of_sale"`
	Address        string `json:"address"`
	City           string `json:"city"`
	Phone          string `json:"phone,omitempty"`
	Email          string `json:"email,omitempty"`
	Currency       string `json:"currency"`
}

// TimbradoStatusResponse estado del timbrado para la UI (GET /api/timbrado/status).
type TimbradoStatusResponse struct {
	IsValid         bool   `json:"is_valid"`
	BlocksInvoicing bool   `json:"blocks_invoicing"`
	DaysLeft        int    `json:"days_left"`
	Status          string `json:"status"`
	Error           string `json:"error,omitempty"`
	Warning         string `json:"warning,omitempty"`
	TimbradoNumber  string `json:"timbrado_number,omitempty"`
	ValidUntil      string `json:"valid_until,omitempty"`
}
