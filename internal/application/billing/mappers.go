package billing

import (
	"time"

	"github.com/jhoicas/lavadero-api/internal/application/dto"
	"github.com/jhoicas/lavadero-api/internal/domain/entity"
)

func toSaleResponse(s *entity.Sale) dto.SaleResponse {
	out := dto.SaleResponse{
		ID:             s.ID,
		InvoiceNumber:  s.InvoiceNumber,
		TimbradoNumber: s.TimbradoNumber,
		IssuedAt:       s.IssuedAt.Format(time.RFC3339),
		Subtotal:       s.Subtotal,
		Tax:            s.Tax,
		Total:          s.Total,
		PaymentMethod:  s.PaymentMethod,
		TourismRegime:  s.TourismRegime,
	}
	if s.CustomerID != nil {
		out.CustomerID = *s.CustomerID
	}
	if s.WorkOrderID != nil {
		out.WorkOrderID = *s.WorkOrderID
	}
	for _, it := range s.Items {
		item := dto.SaleItemResponse{
			ID:        it.ID,
			Type:      string(it.Kind),
			Name:      it.Name,
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPrice,
			Subtotal:  it.Subtotal,
		}
		if it.ServiceID != nil {
			item.ServiceID = *it.ServiceID
		}
		if it.ComboID != nil {
			item.ComboID = *it.ComboID
		}
		if it.InventoryItemID != nil {
			item.InventoryItemID = *it.InventoryItemID
		}
		out.Items = append(out.Items, item)
	}
	return out
}

func toCustomerResponse(c *entity.Customer) *dto.CustomerResponse {
	out := &dto.CustomerResponse{
		ID:            c.ID,
		Name:          c.Name,
		DocType:       c.DocType,
		DocNumber:     c.DocNumber,
		Email:         c.Email,
		Phone:         c.Phone,
		Address:       c.Address,
		TourismRegime: c.TourismRegime,
		Country:       c.Country,
		Passport:      c.Passport,
	}
	if c.EntryDate != nil {
		out.EntryDate = c.EntryDate.Format(dto.DateLayout)
	}
	return out
}

func toCompanyConfigResponse(c *entity.CompanyConfig) *dto.CompanyConfigResponse {
	return &dto.CompanyConfigResponse{
		ID:             c.ID,
		RUC:            c.RUC,
		LegalName:      c.LegalName,
		TradeName:      c.TradeName,
		TimbradoNumber: c.TimbradoNumber,
		TimbradoFrom:   c.TimbradoFrom.Format(dto.DateLayout),
		TimbradoUntil:  c.TimbradoUntil.Format(dto.DateLayout),
		Establishment:  c.Establishment,
		PointOfSale:    c.PointOfSale,
		Address:        c.Address,
		City:           c.City,
		Phone:          c.Phone,
		Email:          c.Email,
		Currency:       c.Currency,
	}
}
