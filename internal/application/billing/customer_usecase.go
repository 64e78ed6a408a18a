package billing

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/lavadero-api/internal/application/dto"
	"github.com/jhoicas/lavadero-api/internal/domain"
	"github.com/jhoicas/lavadero-api/internal/domain/entity"
	"github.com/jhoicas/lavadero-api/internal/domain/repository"
	"github.com/jhoicas/lavadero-api/pkg/ruc"
)

// CustomerUseCase casos de uso para clientes (facturación).
type CustomerUseCase struct {
	repo  repository.CustomerRepository
	clock Clock
}

// NewCustomerUseCase construye el caso de uso.
func NewCustomerUseCase(repo repository.CustomerRepository, clock Clock) *CustomerUseCase {
	if clock == nil {
		clock = time.Now
	}
	return &CustomerUseCase{repo: repo, clock: clock}
}

// Create crea un nuevo cliente. domain.ErrDuplicate si el documento ya existe.
func (uc *CustomerUseCase) Create(ctx context.Context, in dto.CreateCustomerRequest) (*dto.CustomerResponse, error) {
	now := uc.clock()
	c := &entity.Customer{ID: uuid.NewString(), CreatedAt: now}
	if err := applyCustomer(c, in); err != nil {
		return nil, err
	}
	c.UpdatedAt = now

	existing, err := uc.repo.GetByDocument(ctx, c.DocType, c.DocNumber)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	if err := uc.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	return toCustomerResponse(c), nil
}

// Get cliente por ID.
func (uc *CustomerUseCase) Get(ctx context.Context, id string) (*dto.CustomerResponse, error) {
	c, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}
	return toCustomerResponse(c), nil
}

// List lista clientes; search filtra por nombre o documento.
func (uc *CustomerUseCase) List(ctx context.Context, search string, page dto.PageRequest) ([]*dto.CustomerResponse, error) {
	page.DefaultPage()
	list, err := uc.repo.List(ctx, strings.TrimSpace(search), page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.CustomerResponse, 0, len(list))
	for _, c := range list {
		out = append(out, toCustomerResponse(c))
	}
	return out, nil
}

// Update reemplaza los datos del cliente.
func (uc *CustomerUseCase) Update(ctx context.Context, id string, in dto.CreateCustomerRequest) (*dto.CustomerResponse, error) {
	c, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}
	if err := applyCustomer(c, in); err != nil {
		return nil, err
	}
	existing, err := uc.repo.GetByDocument(ctx, c.DocType, c.DocNumber)
	if err != nil {
		return nil, err
	}
	if existing != nil && existing.ID != c.ID {
		return nil, domain.ErrDuplicate
	}
	c.UpdatedAt = uc.clock()
	if err := uc.repo.Update(ctx, c); err != nil {
		return nil, err
	}
	return toCustomerResponse(c), nil
}

// applyCustomer valida la entrada y la copia sobre c.
func applyCustomer(c *entity.Customer, in dto.CreateCustomerRequest) error {
	var errs []error
	name := strings.TrimSpace(in.Name)
	if name == "" {
		errs = append(errs, errors.New("nombre requerido"))
	}
	docType := in.DocType
	if docType == "" {
		docType = entity.DocTypeCI
	}
	docNumber := strings.TrimSpace(in.DocNumber)
	switch {
	case docNumber == "":
		errs = append(errs, errors.New("número de documento requerido"))
	case docType == entity.DocTypeRUC:
		if err := ruc.Validate(docNumber); err != nil {
			errs = append(errs, err)
		}
	case docType != entity.DocTypeCI && docType != entity.DocTypePassport:
		errs = append(errs, fmt.Errorf("tipo de documento %q", docType))
	}
	country := strings.ToUpper(strings.TrimSpace(in.Country))
	if in.TourismRegime && country == "" {
		errs = append(errs, errors.New("el régimen turismo requiere país de origen"))
	}
	var entry *time.Time
	if in.EntryDate != "" {
		d, err := time.Parse(dto.DateLayout, in.EntryDate)
		if err != nil {
			errs = append(errs, fmt.Errorf("entry_date: %w", err))
		} else {
			entry = &d
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", domain.ErrInvalidInput, errors.Join(errs...))
	}

	c.Name = name
	c.DocType = docType
	c.DocNumber = docNumber
	c.Email = in.Email
	c.Phone = in.Phone
	c.Address = in.Address
	c.TourismRegime = in.TourismRegime
	c.Country = country
	c.Passport = in.Passport
	c.EntryDate = entry
	return nil
}
