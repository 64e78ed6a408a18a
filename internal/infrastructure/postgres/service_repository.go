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

var _ repository.ServiceRepository = (*ServiceRepo)(nil)

// ServiceRepo catálogo de servicios sobre PostgreSQL.
type ServiceRepo struct {
	q Querier
}

// NewServiceRepository construye el adaptador. Pasar pool o tx (Querier).
func NewServiceRepository(q Querier) *ServiceRepo {
	return &ServiceRepo{q: q}
}

const serviceColumns = `id, name, description, price, duration_min, category, active, created_at, updated_at`

func scanService(s pgxScanner) (*entity.Service, error) {
	var (
		svc   entity.Service
		price decimal.Decimal
	)
	if err := s.Scan(&svc.ID, &svc.Name, &svc.Description, &price, &svc.DurationMin,
		&svc.Category, &svc.Active, &svc.CreatedAt, &svc.UpdatedAt); err != nil {
		return nil, err
	}
	svc.Price = money.FromDecimal(price)
	return &svc, nil
}

func (r *ServiceRepo) Create(ctx context.Context, s *entity.Service) error {
	_, err := r.q.Exec(ctx, `INSERT INTO services (`+serviceColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		s.ID, s.Name, s.Description, s.Price.Decimal(), s.DurationMin, s.Category, s.Active, s.CreatedAt, s.UpdatedAt)
	if err != nil {
		return wrapWriteErr("insert service", err)
	}
	return nil
}

func (r *ServiceRepo) GetByID(ctx context.Context, id string) (*entity.Service, error) {
	s, err := scanService(r.q.QueryRow(ctx, `SELECT `+serviceColumns+` FROM services WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get service: %w", err)
	}
	return s, nil
}

// List devuelve el catálogo ordenado por categoría y nombre.
func (r *ServiceRepo) List(ctx context.Context, onlyActive bool) ([]*entity.Service, error) {
	rows, err := r.q.Query(ctx, `SELECT `+serviceColumns+` FROM services
		WHERE NOT $1 OR active ORDER BY category, name`, onlyActive)
	if err != nil {
		return nil, fmt.Errorf("list services: %w", err)
	}
	defer rows.Close()

	var list []*entity.Service
	for rows.Next() {
		s, err := scanService(rows)
		if err != nil {
			return nil, fmt.Errorf("scan service: %w", err)
		}
		list = append(list, s)
	}
	return list, rows.Err()
}

func (r *ServiceRepo) Update(ctx context.Context, s *entity.Service) error {
	_, err := r.q.Exec(ctx, `
		UPDATE services SET name = $2, description = $3, price = $4, duration_min = $5,
			category = $6, active = $7, updated_at = $8
		WHERE id = $1`,
		s.ID, s.Name, s.Description, s.Price.Decimal(), s.DurationMin, s.Category, s.Active, s.UpdatedAt)
	if err != nil {
		return wrapWriteErr("update service", err)
	}
	return nil
}
