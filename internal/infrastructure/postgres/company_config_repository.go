package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/lavadero-api/internal/domain/entity"
	"github.com/jhoicas/lavadero-api/internal/domain/repository"
)

var _ repository.CompanyConfigRepository = (*CompanyConfigRepo)(nil)

// CompanyConfigRepo configuración fiscal sobre la tabla company_config (una sola fila).
type CompanyConfigRepo struct {
	q Querier
}

// NewCompanyConfigRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCompanyConfigRepository(q Querier) *CompanyConfigRepo {
	return &CompanyConfigRepo{q: q}
}

// Get devuelve la configuración o nil, nil si no existe.
func (r *CompanyConfigRepo) Get(ctx context.Context) (*entity.CompanyConfig, error) {
	const q = `
		SELECT id, ruc, legal_name, trade_name, timbrado_number, timbrado_from, timbrado_until,
		       establishment, point_of_sale, address, city, phone, email, currency, created_at, updated_at
		FROM company_config LIMIT 1`
	var c entity.CompanyConfig
	err := r.q.QueryRow(ctx, q).Scan(
		&c.ID, &c.RUC, &c.LegalName, &c.TradeName, &c.TimbradoNumber, &c.TimbradoFrom, &c.TimbradoUntil,
		&c.Establishment, &c.PointOfSale, &c.Address, &c.City, &c.Phone, &c.Email, &c.Currency,
		&c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get company_config: %w", err)
	}
	return &c, nil
}

// Upsert inserta o reemplaza la única fila de configuración.
func (r *CompanyConfigRepo) Upsert(ctx context.Context, c *entity.CompanyConfig) error {
	const q = `
		INSERT INTO company_config (id, ruc, legal_name, trade_name, timbrado_number, timbrado_from, timbrado_until,
			establishment, point_of_sale, address, city, phone, email, currency, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
		ON CONFLICT (singleton) DO UPDATE SET
			ruc = EXCLUDED.ruc,
			legal_name = EXCLUDED.legal_name,
			trade_name = EXCLUDED.trade_name,
			timbrado_number = EXCLUDED.timbrado_number,
			timbrado_from = EXCLUDED.timbrado_from,
			timbrado_until = EXCLUDED.timbrado_until,
			establishment = EXCLUDED.establishment,
			point_of_sale = EXCLUDED.point_of_sale,
			address = EXCLUDED.address,
			city = EXCLUDED.city,
			phone = EXCLUDED.phone,
			email = EXCLUDED.email,
			currency = EXCLUDED.currency,
			updated_at = EXCLUDED.updated_at`
	_, err := r.q.Exec(ctx, q,
		c.ID, c.RUC, c.LegalName, c.TradeName, c.TimbradoNumber, c.TimbradoFrom, c.TimbradoUntil,
		c.Establishment, c.PointOfSale, c.Address, c.City, c.Phone, c.Email, c.Currency,
		c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		return wrapWriteErr("upsert company_config", err)
	}
	return nil
}
