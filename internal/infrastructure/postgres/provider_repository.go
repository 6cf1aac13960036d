package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Compras-api/internal/domain"
	"github.com/jhoicas/Compras-api/internal/domain/entity"
	"github.com/jhoicas/Compras-api/internal/domain/repository"
)

var _ repository.ProviderRepository = (*ProviderRepo)(nil)

// ProviderRepo implementación de ProviderRepository sobre PostgreSQL (usable con pool o tx).
type ProviderRepo struct {
	q Querier
}

// NewProviderRepository construye el adaptador. Pasar pool o tx (Querier).
func NewProviderRepository(q Querier) *ProviderRepo {
	return &ProviderRepo{q: q}
}

const providerColumns = `id, company_id, name, tax_id, email, phone, address, is_active, created_at, updated_at`

// Create persiste un nuevo proveedor.
func (r *ProviderRepo) Create(provider *entity.Provider) error {
	query := `
		INSERT INTO providers (` + providerColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(context.Background(), query,
		provider.ID, provider.CompanyID, provider.Name, provider.TaxID, provider.Email,
		provider.Phone, provider.Address, provider.IsActive, provider.CreatedAt, provider.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert provider: %w", err)
	}
	return nil
}

// GetByID obtiene un proveedor por ID.
func (r *ProviderRepo) GetByID(id string) (*entity.Provider, error) {
	var p entity.Provider
	err := r.q.QueryRow(context.Background(),
		`SELECT `+providerColumns+` FROM providers WHERE id = $1`, id).Scan(
		&p.ID, &p.CompanyID, &p.Name, &p.TaxID, &p.Email,
		&p.Phone, &p.Address, &p.IsActive, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get provider: %w", err)
	}
	return &p, nil
}

// Update actualiza los datos de contacto del proveedor.
func (r *ProviderRepo) Update(provider *entity.Provider) error {
	query := `
		UPDATE providers
		SET name = $2, tax_id = $3, email = $4, phone = $5, address = $6, is_active = $7, updated_at = $8
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		provider.ID, provider.Name, provider.TaxID, provider.Email,
		provider.Phone, provider.Address, provider.IsActive, provider.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update provider: %w", err)
	}
	return nil
}

// ListByCompany lista proveedores de la empresa con paginación.
func (r *ProviderRepo) ListByCompany(companyID string, limit, offset int) ([]*entity.Provider, error) {
	query := `
		SELECT ` + providerColumns + `
		FROM providers WHERE company_id = $1 ORDER BY name LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, companyID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list providers: %w", err)
	}
	defer rows.Close()
	var list []*entity.Provider
	for rows.Next() {
		var p entity.Provider
		if err := rows.Scan(
			&p.ID, &p.CompanyID, &p.Name, &p.TaxID, &p.Email,
			&p.Phone, &p.Address, &p.IsActive, &p.CreatedAt, &p.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan provider: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}
