package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/lavadero-api/internal/domain/entity"
	"github.com/jhoicas/lavadero-api/internal/domain/repository"
)

var _ repository.CustomerRepository = (*CustomerRepo)(nil)

// CustomerRepo implementación de CustomerRepository (usable con pool o tx).
type CustomerRepo struct {
	q Querier
}

// NewCustomerRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCustomerRepository(q Querier) *CustomerRepo {
	return &CustomerRepo{q: q}
}

const customerColumns = `id, name, doc_type, doc_number, email, phone, address,
	tourism_regime, country, passport, entry_date, created_at, updated_at`

func scanCustomer(s pgxScanner) (*entity.Customer, error) {
	var c entity.Customer
	err := s.Scan(
		&c.ID, &c.Name, &c.DocType, &c.DocNumber, &c.Email, &c.Phone, &c.Address,
		&c.TourismRegime, &c.Country, &c.Passport, &c.EntryDate, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// Create persiste un nuevo cliente.
func (r *CustomerRepo) Create(ctx context.Context, c *entity.Customer) error {
	query := `INSERT INTO customers (` + customerColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.q.Exec(ctx, query,
		c.ID, c.Name, c.DocType, c.DocNumber, c.Email, c.Phone, c.Address,
		c.TourismRegime, c.Country, c.Passport, c.EntryDate, c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		return wrapWriteErr("insert customer", err)
	}
	return nil
}

// GetByID obtiene un cliente por ID.
func (r *CustomerRepo) GetByID(ctx context.Context, id string) (*entity.Customer, error) {
	c, err := scanCustomer(r.q.QueryRow(ctx, `SELECT `+customerColumns+` FROM customers WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get customer: %w", err)
	}
	return c, nil
}

// GetByDocument obtiene un cliente por tipo y número de documento.
func (r *CustomerRepo) GetByDocument(ctx context.Context, docType, docNumber string) (*entity.Customer, error) {
	c, err := scanCustomer(r.q.QueryRow(ctx,
		`SELECT `+customerColumns+` FROM customers WHERE doc_type = $1 AND doc_number = $2`, docType, docNumber))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get customer by document: %w", err)
	}
	return c, nil
}

// List lista clientes por nombre con búsqueda opcional (nombre o documento).
func (r *CustomerRepo) List(ctx context.Context, search string, limit, offset int) ([]*entity.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers
		WHERE $1 = '' OR name ILIKE '%' || $1 || '%' OR doc_number ILIKE '%' || $1 || '%'
		ORDER BY name LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(ctx, query, search, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list customers: %w", err)
	}
	defer rows.Close()

	var list []*entity.Customer
	for rows.Next() {
		c, err := scanCustomer(rows)
		if err != nil {
			return nil, fmt.Errorf("scan customer: %w", err)
		}
		list = append(list, c)
	}
	return list, rows.Err()
}

// Update actualiza los datos del cliente.
func (r *CustomerRepo) Update(ctx context.Context, c *entity.Customer) error {
	query := `
		UPDATE customers SET name = $2, doc_type = $3, doc_number = $4, email = $5, phone = $6, address = $7,
			tourism_regime = $8, country = $9, passport = $10, entry_date = $11, updated_at = $12
		WHERE id = $1`
	_, err := r.q.Exec(ctx, query,
		c.ID, c.Name, c.DocType, c.DocNumber, c.Email, c.Phone, c.Address,
		c.TourismRegime, c.Country, c.Passport, c.EntryDate, c.UpdatedAt,
	)
	if err != nil {
		return wrapWriteErr("update customer", err)
	}
	return nil
}
