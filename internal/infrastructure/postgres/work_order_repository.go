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

var _ repository.WorkOrderRepository = (*WorkOrderRepo)(nil)

// WorkOrderRepo órdenes de trabajo sobre PostgreSQL (usable con pool o tx).
type WorkOrderRepo struct {
	q Querier
}

// NewWorkOrderRepository construye el adaptador. Pasar pool o tx (Querier).
func NewWorkOrderRepository(q Querier) *WorkOrderRepo {
	return &WorkOrderRepo{q: q}
}

const workOrderColumns = `id, number, customer_id, vehicle_plate, vehicle, status, notes, total,
	received_at, started_at, finished_at, delivered_at, created_at, updated_at`

func scanWorkOrder(s pgxScanner) (*entity.WorkOrder, error) {
	var (
		wo    entity.WorkOrder
		total decimal.Decimal
	)
	if err := s.Scan(&wo.ID, &wo.Number, &wo.CustomerID, &wo.VehiclePlate, &wo.Vehicle, &wo.Status, &wo.Notes,
		&total, &wo.ReceivedAt, &wo.StartedAt, &wo.FinishedAt, &wo.DeliveredAt, &wo.CreatedAt, &wo.UpdatedAt); err != nil {
		return nil, err
	}
	wo.Total = money.FromDecimal(total)
	return &wo, nil
}

// Create inserta la orden; el número correlativo lo asigna la columna identity.
func (r *WorkOrderRepo) Create(ctx context.Context, wo *entity.WorkOrder) error {
	err := r.q.QueryRow(ctx, `
		INSERT INTO work_orders (id, customer_id, vehicle_plate, vehicle, status, notes, total, received_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING number`,
		wo.ID, wo.CustomerID, wo.VehiclePlate, wo.Vehicle, wo.Status, wo.Notes, wo.Total.Decimal(),
		wo.ReceivedAt, wo.CreatedAt, wo.UpdatedAt,
	).Scan(&wo.Number)
	if err != nil {
		return wrapWriteErr("insert work_order", err)
	}
	return nil
}

func (r *WorkOrderRepo) GetByID(ctx context.Context, id string) (*entity.WorkOrder, error) {
	return r.get(ctx, `SELECT `+workOrderColumns+` FROM work_orders WHERE id = $1`, id)
}

// GetForUpdate bloquea la orden hasta el fin de la transacción.
func (r *WorkOrderRepo) GetForUpdate(ctx context.Context, id string) (*entity.WorkOrder, error) {
	return r.get(ctx, `SELECT `+workOrderColumns+` FROM work_orders WHERE id = $1 FOR UPDATE`, id)
}

func (r *WorkOrderRepo) get(ctx context.Context, query, id string) (*entity.WorkOrder, error) {
	wo, err := scanWorkOrder(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get work_order: %w", err)
	}
	return wo, nil
}

// List lista órdenes, más recientes primero, opcionalmente filtradas por estado.
func (r *WorkOrderRepo) List(ctx context.Context, status string, limit, offset int) ([]*entity.WorkOrder, error) {
	rows, err := r.q.Query(ctx, `SELECT `+workOrderColumns+` FROM work_orders
		WHERE $1 = '' OR status = $1
		ORDER BY number DESC LIMIT $2 OFFSET $3`, status, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list work_orders: %w", err)
	}
	defer rows.Close()

	var list []*entity.WorkOrder
	for rows.Next() {
		wo, err := scanWorkOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("scan work_order: %w", err)
		}
		list = append(list, wo)
	}
	return list, rows.Err()
}

// UpdateStatus persiste estado, marcas de tiempo de la transición y total facturado.
func (r *WorkOrderRepo) UpdateStatus(ctx context.Context, wo *entity.WorkOrder) error {
	tag, err := r.q.Exec(ctx, `
		UPDATE work_orders SET status = $2, started_at = $3, finished_at = $4, delivered_at = $5, total = $6, updated_at = $7
		WHERE id = $1`,
		wo.ID, wo.Status, wo.StartedAt, wo.FinishedAt, wo.DeliveredAt, wo.Total.Decimal(), wo.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update work_order status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("update work_order status: fila %s no encontrada", wo.ID)
	}
	return nil
}
