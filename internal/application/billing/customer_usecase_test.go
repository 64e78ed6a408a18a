package billing_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/lavadero-api/internal/application/billing"
	"github.com/jhoicas/lavadero-api/internal/application/dto"
	"github.com/jhoicas/lavadero-api/internal/domain"
)

func TestCustomer_CreateYDuplicado(t *testing.T) {
	store := newMemStore()
	uc := billing.NewCustomerUseCase(&customerRepo{store: store}, nil)

	out, err := uc.Create(context.Background(), dto.CreateCustomerRequest{Name: "Carlos Benítez", DocNumber: "4567890"})
	require.NoError(t, err)
	assert.Equal(t, "CI", out.DocType, "CI por defecto")

	_, err = uc.Create(context.Background(), dto.CreateCustomerRequest{Name: "Otro", DocType: "CI", DocNumber: "4567890"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestCustomer_RUCValidaDigitoVerificador(t *testing.T) {
	uc := billing.NewCustomerUseCase(&customerRepo{store: newMemStore()}, nil)

	_, err := uc.Create(context.Background(), dto.CreateCustomerRequest{Name: "Empresa", DocType: "RUC", DocNumber: "80000519-1"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Create(context.Background(), dto.CreateCustomerRequest{Name: "Empresa", DocType: "RUC", DocNumber: "80000519-8"})
	assert.NoError(t, err)
}

func TestCustomer_TurismoRequierePais(t *testing.T) {
	uc := billing.NewCustomerUseCase(&customerRepo{store: newMemStore()}, nil)

	_, err := uc.Create(context.Background(), dto.CreateCustomerRequest{Name: "Turista", DocType: "PASS", DocNumber: "X1", TourismRegime: true})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	out, err := uc.Create(context.Background(), dto.CreateCustomerRequest{
		Name: "Turista", DocType: "PASS", DocNumber: "X1", TourismRegime: true, Country: "ar", EntryDate: "2026-03-01",
	})
	require.NoError(t, err)
	assert.Equal(t, "AR", out.Country)
	assert.Equal(t, "2026-03-01", out.EntryDate)
}

func TestCustomer_UpdateYList(t *testing.T) {
	store := newMemStore()
	uc := billing.NewCustomerUseCase(&customerRepo{store: store}, nil)
	a, err := uc.Create(context.Background(), dto.CreateCustomerRequest{Name: "Ana", DocNumber: "111"})
	require.NoError(t, err)
	_, err = uc.Create(context.Background(), dto.CreateCustomerRequest{Name: "Beto", DocNumber: "222"})
	require.NoError(t, err)

	_, err = uc.Update(context.Background(), a.ID, dto.CreateCustomerRequest{Name: "Ana María", DocNumber: "222"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	upd, err := uc.Update(context.Background(), a.ID, dto.CreateCustomerRequest{Name: "Ana María", DocNumber: "111", Phone: "0981 000000"})
	require.NoError(t, err)
	assert.Equal(t, "Ana María", upd.Name)

	list, err := uc.List(context.Background(), "ana", dto.PageRequest{})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, a.ID, list[0].ID)

	_, err = uc.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
