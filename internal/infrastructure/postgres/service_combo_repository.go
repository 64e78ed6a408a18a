package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/lavadero-api/internal/domain/entity"
	"github.com/jhoicas/lavadero-api/internal/domain/money"
	"github.com/jhoicas/lavadero-api/internal/domain/repository"
)

var _ repository.ServiceComboRepository = (*ServiceComboRepo)(nil)

// beginner Querier que además abre transacciones (*pgxpool.Pool o pgx.Tx, que usa savepoints).
type beginner interface {
	Querier
	Begin(ctx context.Context) (pgx.Tx, error)
}

// ServiceComboRepo combos de servicios sobre PostgreSQL.
type ServiceComboRepo struct {
	db beginner
}

// NewServiceComboRepository construye el adaptador.
func NewServiceComboRepository(db beginner) *ServiceComboRepo {
	return &ServiceComboRepo{db: db}
}

const comboSelect = `
	SELECT c.id, c.name, c.description, c.price, c.active, c.created_at, c.updated_at,
		COALESCE(array_agg(i.service_id::text ORDER BY i.position) FILTER (WHERE i.service_id IS NOT NULL), '{}')
	FROM service_combos c
	LEFT JOIN service_combo_items i ON i.combo_id = c.id`

func scanCombo(s pgxScanner) (*entity.ServiceCombo, error) {
	var (
		c     entity.ServiceCombo
		price decimal.Decimal
	)
	if err := s.Scan(&c.ID, &c.Name, &c.Description, &price, &c.Active,
		&c.CreatedAt, &c.UpdatedAt, &c.ServiceIDs); err != nil {
		return nil, err
	}
	c.Price = money.FromDecimal(price)
	return &c, nil
}

func (r *ServiceComboRepo) Create(ctx context.Context, c *entity.ServiceCombo) error {
	return pgx.BeginFunc(ctx, r.db, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `
			INSERT INTO service_combos (id, name, description, price, active, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			c.ID, c.Name, c.Description, c.Price.Decimal(), c.Active, c.CreatedAt, c.UpdatedAt); err != nil {
			return wrapWriteErr("insert service_combo", err)
		}
		return insertComboItems(ctx, tx, c)
	})
}

func (r *ServiceComboRepo) Update(ctx context.Context, c *entity.ServiceCombo) error {
	return pgx.BeginFunc(ctx, r.db, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `
			UPDATE service_combos SET name = $2, description = $3, price = $4, active = $5, updated_at = $6
			WHERE id = $1`,
			c.ID, c.Name, c.Description, c.Price.Decimal(), c.Active, c.UpdatedAt); err != nil {
			return wrapWriteErr("update service_combo", err)
		}
		if _, err := tx.Exec(ctx, `DELETE FROM service_combo_items WHERE combo_id = $1`, c.ID); err != nil {
			return fmt.Errorf("delete service_combo_items: %w", err)
		}
		return insertComboItems(ctx, tx, c)
	})
}

func insertComboItems(ctx context.Context, tx pgx.Tx, c *entity.ServiceCombo) error {
	for i, serviceID := range c.ServiceIDs {
		if _, err := tx.Exec(ctx, `INSERT INTO service_combo_items (combo_id, service_id, position) VALUES ($1, $2, $3)`,
			c.ID, serviceID, i); err != nil {
			return wrapWriteErr("insert service_combo_item", err)
		}
	}
	return nil
}

func (r *ServiceComboRepo) GetByID(ctx context.Context, id string) (*entity.ServiceCombo, error) {
	c, err := scanCombo(r.db.QueryRow(ctx, comboSelect+` WHERE c.id = $1 GROUP BY c.id`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get service_combo: %w", err)
	}
	return c, nil
}

// List devuelve los combos ordenados por nombre.
func (r *ServiceComboRepo) List(ctx context.Context, onlyActive bool) ([]*entity.ServiceCombo, error) {
	rows, err := r.db.Query(ctx, comboSelect+` WHERE NOT $1 OR c.active GROUP BY c.id ORDER BY c.name`, onlyActive)
	if err != nil {
		return nil, fmt.Errorf("list service_combos: %w", err)
	}
	defer rows.Close()

	var list []*entity.ServiceCombo
	for rows.Next() {
		c, err := scanCombo(rows)
		if err != nil {
			return nil, fmt.Errorf("scan service_combo: %w", err)
		}
		list = append(list, c)
	}
	return list, rows.Err()
}
