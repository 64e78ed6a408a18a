package billing

import (
	"context"
	"fmt"

	"github.com/jhoicas/lavadero-api/internal/application/dto"
	"github.com/jhoicas/lavadero-api/internal/domain"
	"github.com/jhoicas/lavadero-api/internal/domain/entity"
	"github.com/jhoicas/lavadero-api/internal/domain/repository"
)

// SaleQueryUseCase consultas de facturas emitidas (solo lectura).
type SaleQueryUseCase struct {
	saleRepo     repository.SaleRepository
	customerRepo repository.CustomerRepository
	configRepo   repository.CompanyConfigRepository
}

// NewSaleQueryUseCase construye el caso de uso.
func NewSaleQueryUseCase(
	saleRepo repository.SaleRepository,
	customerRepo repository.CustomerRepository,
	configRepo repository.CompanyConfigRepository,
) *SaleQueryUseCase {
	return &SaleQueryUseCase{saleRepo: saleRepo, customerRepo: customerRepo, configRepo: configRepo}
}

// Get factura con sus líneas.
func (uc *SaleQueryUseCase) Get(ctx context.Context, id string) (*dto.SaleResponse, error) {
	s, err := uc.load(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := toSaleResponse(s)
	return &resp, nil
}

// List facturas más recientes primero, sin líneas.
func (uc *SaleQueryUseCase) List(ctx context.Context, page dto.PageRequest) ([]dto.SaleResponse, error) {
	page.DefaultPage()
	list, err := uc.saleRepo.List(ctx, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.SaleResponse, 0, len(list))
	for _, s := range list {
		out = append(out, toSaleResponse(s))
	}
	return out, nil
}

// Print datos completos para imprimir la factura en el cliente.
func (uc *SaleQueryUseCase) Print(ctx context.Context, id string) (*dto.SalePrintResponse, error) {
	s, customer, company, err := uc.printable(ctx, id)
	if err != nil {
		return nil, err
	}
	out := &dto.SalePrintResponse{
		Sale:    toSaleResponse(s),
		Company: toCompanyConfigResponse(company),
	}
	if customer != nil {
		out.Customer = toCustomerResponse(customer)
	}
	return out, nil
}

func (uc *SaleQueryUseCase) load(ctx context.Context, id string) (*entity.Sale, error) {
	s, err := uc.saleRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, domain.ErrNotFound
	}
	return s, nil
}

// printable carga venta, cliente (nil si consumidor final) y empresa.
func (uc *SaleQueryUseCase) printable(ctx context.Context, id string) (*entity.Sale, *entity.Customer, *entity.CompanyConfig, error) {
	s, err := uc.load(ctx, id)
	if err != nil {
		return nil, nil, nil, err
	}
	company, err := uc.configRepo.Get(ctx)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("obtener configuración: %w", err)
	}
	if company == nil {
		return nil, nil, nil, domain.ErrNotConfigured
	}
	var customer *entity.Customer
	if s.CustomerID != nil {
		customer, err = uc.customerRepo.GetByID(ctx, *s.CustomerID)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("obtener cliente: %w", err)
		}
	}
	return s, customer, company, nil
}
