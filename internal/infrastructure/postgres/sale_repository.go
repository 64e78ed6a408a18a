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

var _ repository.SaleRepository = (*SaleRepo)(nil)

// SaleRepo facturas y líneas sobre PostgreSQL (usable con pool o tx).
type SaleRepo struct {
	q Querier
}

// NewSaleRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSaleRepository(q Querier) *SaleRepo {
	return &SaleRepo{q: q}
}

const saleColumns = `id, invoice_number, establishment, point_of_sale, timbrado_number, customer_id, work_order_id,
	issued_at, subtotal, tax, total, payment_method, tourism_regime, created_by, created_at`

const saleItemColumns = `id, sale_id, kind, service_id, combo_id, inventory_item_id, name, quantity, unit_price, subtotal`

// LockSequence toma un advisory lock transaccional por par establecimiento/punto de expedición.
// Se libera solo en commit o rollback; fuera de una transacción no serializa nada.
func (r *SaleRepo) LockSequence(ctx context.Context, establishment, pointOfSale string) error {
	if _, err := r.q.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtext($1::text))`,
		"invoice-seq:"+establishment+"-"+pointOfSale); err != nil {
		return fmt.Errorf("lock invoice sequence: %w", err)
	}
	return nil
}

// LastInvoiceNumber último número emitido del par. El formato de ancho fijo
// hace que el orden lexicográfico coincida con el numérico.
func (r *SaleRepo) LastInvoiceNumber(ctx context.Context, establishment, pointOfSale string) (string, error) {
	var number string
	err := r.q.QueryRow(ctx, `
		SELECT invoice_number FROM sales
		WHERE establishment = $1 AND point_of_sale = $2
		ORDER BY invoice_number DESC LIMIT 1`, establishment, pointOfSale).Scan(&number)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", nil
		}
		return "", fmt.Errorf("last invoice number: %w", err)
	}
	return number, nil
}

// Create inserta la cabecera de la factura.
func (r *SaleRepo) Create(ctx context.Context, s *entity.Sale) error {
	_, err := r.q.Exec(ctx, `INSERT INTO sales (`+saleColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`,
		s.ID, s.InvoiceNumber, s.Establishment, s.PointOfSale, s.TimbradoNumber,
		nullString(s.CustomerID), nullString(s.WorkOrderID), s.IssuedAt,
		s.Subtotal.Decimal(), s.Tax.Decimal(), s.Total.Decimal(),
		s.PaymentMethod, s.TourismRegime, s.CreatedBy, s.CreatedAt,
	)
	if err != nil {
		return wrapWriteErr("insert sale", err)
	}
	return nil
}

// CreateItem inserta una línea de la factura.
func (r *SaleRepo) CreateItem(ctx context.Context, it *entity.SaleItem) error {
	_, err := r.q.Exec(ctx, `INSERT INTO sale_items (`+saleItemColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		it.ID, it.SaleID, string(it.Kind), nullString(it.ServiceID), nullString(it.ComboID), nullString(it.InventoryItemID),
		it.Name, it.Quantity, it.UnitPrice.Decimal(), it.Subtotal.Decimal(),
	)
	if err != nil {
		return wrapWriteErr("insert sale_item", err)
	}
	return nil
}

func scanSale(s pgxScanner) (*entity.Sale, error) {
	var (
		sale                 entity.Sale
		subtotal, tax, total decimal.Decimal
	)
	if err := s.Scan(&sale.ID, &sale.InvoiceNumber, &sale.Establishment, &sale.PointOfSale, &sale.TimbradoNumber,
		&sale.CustomerID, &sale.WorkOrderID, &sale.IssuedAt, &subtotal, &tax, &total,
		&sale.PaymentMethod, &sale.TourismRegime, &sale.CreatedBy, &sale.CreatedAt); err != nil {
		return nil, err
	}
	sale.Subtotal = money.FromDecimal(subtotal)
	sale.Tax = money.FromDecimal(tax)
	sale.Total = money.FromDecimal(total)
	return &sale, nil
}

func scanSaleItem(s pgxScanner) (*entity.SaleItem, error) {
	var (
		it              entity.SaleItem
		kind            string
		price, subtotal decimal.Decimal
	)
	if err := s.Scan(&it.ID, &it.SaleID, &kind, &it.ServiceID, &it.ComboID, &it.InventoryItemID,
		&it.Name, &it.Quantity, &price, &subtotal); err != nil {
		return nil, err
	}
	it.Kind = entity.LineKind(kind)
	it.UnitPrice = money.FromDecimal(price)
	it.Subtotal = money.FromDecimal(subtotal)
	return &it, nil
}

// GetByID devuelve la factura con sus líneas o nil, nil.
func (r *SaleRepo) GetByID(ctx context.Context, id string) (*entity.Sale, error) {
	return r.getWithItems(ctx, `SELECT `+saleColumns+` FROM sales WHERE id = $1`, id)
}

// GetByInvoiceNumber busca por número EEE-PPP-NNNNNNN.
func (r *SaleRepo) GetByInvoiceNumber(ctx context.Context, number string) (*entity.Sale, error) {
	return r.getWithItems(ctx, `SELECT `+saleColumns+` FROM sales WHERE invoice_number = $1`, number)
}

func (r *SaleRepo) getWithItems(ctx context.Context, query, arg string) (*entity.Sale, error) {
	sale, err := scanSale(r.q.QueryRow(ctx, query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get sale: %w", err)
	}
	items, err := r.items(ctx, sale.ID)
	if err != nil {
		return nil, err
	}
	sale.Items = items
	return sale, nil
}

func (r *SaleRepo) items(ctx context.Context, saleID string) ([]*entity.SaleItem, error) {
	rows, err := r.q.Query(ctx, `SELECT `+saleItemColumns+` FROM sale_items WHERE sale_id = $1 ORDER BY name`, saleID)
	if err != nil {
		return nil, fmt.Errorf("list sale_items: %w", err)
	}
	defer rows.Close()

	var list []*entity.SaleItem
	for rows.Next() {
		it, err := scanSaleItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan sale_item: %w", err)
		}
		list = append(list, it)
	}
	return list, rows.Err()
}

// List cabeceras de facturas, más recientes primero (sin líneas).
func (r *SaleRepo) List(ctx context.Context, limit, offset int) ([]*entity.Sale, error) {
	rows, err := r.q.Query(ctx, `SELECT `+saleColumns+` FROM sales
		ORDER BY issued_at DESC, invoice_number DESC LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list sales: %w", err)
	}
	defer rows.Close()

	var list []*entity.Sale
	for rows.Next() {
		s, err := scanSale(rows)
		if err != nil {
			return nil, fmt.Errorf("scan sale: %w", err)
		}
		list = append(list, s)
	}
	return list, rows.Err()
}
