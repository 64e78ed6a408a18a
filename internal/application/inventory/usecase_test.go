package inventory_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/lavadero-api/internal/application/dto"
	"github.com/jhoicas/lavadero-api/internal/application/inventory"
	"github.com/jhoicas/lavadero-api/internal/domain"
	"github.com/jhoicas/lavadero-api/internal/domain/entity"
	"github.com/jhoicas/lavadero-api/internal/domain/money"
	"github.com/jhoicas/lavadero-api/internal/domain/repository"
)

type itemRepoStub struct {
	repository.InventoryItemRepository
	byID map[string]entity.InventoryItem
}

func (r *itemRepoStub) Create(_ context.Context, it *entity.InventoryItem) error {
	r.byID[it.ID] = *it
	return nil
}

func (r *itemRepoStub) Update(ctx context.Context, it *entity.InventoryItem) error {
	return r.Create(ctx, it)
}

func (r *itemRepoStub) UpdateStock(ctx context.Context, it *entity.InventoryItem) error {
	return r.Create(ctx, it)
}

func (r *itemRepoStub) GetByID(_ context.Context, id string) (*entity.InventoryItem, error) {
	it, ok := r.byID[id]
	if !ok {
		return nil, nil
	}
	return &it, nil
}

func (r *itemRepoStub) GetForUpdate(ctx context.Context, id string) (*entity.InventoryItem, error) {
	return r.GetByID(ctx, id)
}

func (r *itemRepoStub) List(_ context.Context, alertOnly bool) ([]*entity.InventoryItem, error) {
	var out []*entity.InventoryItem
	for _, it := range r.byID {
		if alertOnly && it.AlertStatus == entity.AlertNormal {
			continue
		}
		cp := it
		out = append(out, &cp)
	}
	return out, nil
}

// txStub ejecuta fn directamente sobre el repo (sin rollback).
type txStub struct{ repo *itemRepoStub }

func (t txStub) RunInventory(_ context.Context, fn func(repo repository.InventoryItemRepository) error) error {
	return fn(t.repo)
}

func newUseCase() (*inventory.UseCase, *itemRepoStub) {
	repo := &itemRepoStub{byID: map[string]entity.InventoryItem{}}
	return inventory.NewUseCase(repo, txStub{repo: repo}, nil, nil), repo
}

func TestInventory_CreateCalculaAlerta(t *testing.T) {
	uc, _ := newUseCase()
	cases := []struct {
		stock, min int
		want       string
	}{
		{0, 5, entity.AlertCritical},
		{5, 5, entity.AlertLow},
		{6, 5, entity.AlertNormal},
	}
	for _, tc := range cases {
		out, err := uc.Create(context.Background(), dto.InventoryItemRequest{Name: "Cera", Stock: tc.stock, MinStock: tc.min, SalePrice: money.New(20000)})
		require.NoError(t, err)
		assert.Equal(t, tc.want, out.AlertStatus, "stock %d min %d", tc.stock, tc.min)
		assert.Equal(t, "UN", out.Unit)
	}
}

func TestInventory_AdjustRecalculaAlerta(t *testing.T) {
	uc, _ := newUseCase()
	out, err := uc.Create(context.Background(), dto.InventoryItemRequest{Name: "Shampoo", Unit: "lt", Stock: 10, MinStock: 3})
	require.NoError(t, err)
	assert.Equal(t, "LT", out.Unit)

	adj, err := uc.Adjust(context.Background(), out.ID, dto.StockAdjustmentRequest{Delta: -8, Reason: "consumo"})
	require.NoError(t, err)
	assert.Equal(t, 2, adj.Stock)
	assert.Equal(t, entity.AlertLow, adj.AlertStatus)

	_, err = uc.Adjust(context.Background(), out.ID, dto.StockAdjustmentRequest{Delta: -3})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	adj, err = uc.Adjust(context.Background(), out.ID, dto.StockAdjustmentRequest{Delta: -2})
	require.NoError(t, err)
	assert.Equal(t, entity.AlertCritical, adj.AlertStatus)

	alerts, err := uc.List(context.Background(), true)
	require.NoError(t, err)
	assert.Len(t, alerts, 1)
}

func TestInventory_AdjustErrores(t *testing.T) {
	uc, _ := newUseCase()
	_, err := uc.Adjust(context.Background(), "x", dto.StockAdjustmentRequest{Delta: 0})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = uc.Adjust(context.Background(), "missing", dto.StockAdjustmentRequest{Delta: 1})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestInventory_UpdateNoTocaStock(t *testing.T) {
	uc, repo := newUseCase()
	out, err := uc.Create(context.Background(), dto.InventoryItemRequest{Name: "Cera", Stock: 4, MinStock: 2})
	require.NoError(t, err)

	upd, err := uc.Update(context.Background(), out.ID, dto.InventoryItemRequest{Name: "Cera premium", Stock: 99, MinStock: 5})
	require.NoError(t, err)
	assert.Equal(t, 4, upd.Stock)
	assert.Equal(t, entity.AlertLow, upd.AlertStatus)
	assert.Equal(t, "Cera premium", repo.byID[out.ID].Name)

	_, err = uc.Update(context.Background(), out.ID, dto.InventoryItemRequest{Name: "Cera", Unit: "caja"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
