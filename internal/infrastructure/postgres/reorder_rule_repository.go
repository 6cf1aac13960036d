package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Compras-api/internal/domain/entity"
	"github.com/jhoicas/Compras-api/internal/domain/repository"
)

var _ repository.ReorderRuleRepository = (*ReorderRuleRepo)(nil)

// ReorderRuleRepo implementación de ReorderRuleRepository sobre PostgreSQL
// (usable con pool o tx).
type ReorderRuleRepo struct {
	q Querier
}

// NewReorderRuleRepository construye el adaptador. Pasar pool o tx (Querier).
func NewReorderRuleRepository(q Querier) *ReorderRuleRepo {
	return &ReorderRuleRepo{q: q}
}

const ruleColumns = `id, company_id, product_id, provider_id, trigger_stock, reorder_quantity, requires_approval, enabled, created_at, updated_at`

// Upsert inserta la regla o, si ya existe para (company, product, provider),
// reemplaza umbral, cantidad y flags. Contrato idempotente de creación.
func (r *ReorderRuleRepo) Upsert(rule *entity.ReorderRule) error {
	query := `
		INSERT INTO reorder_rules (` + ruleColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (company_id, product_id, provider_id)
		DO UPDATE SET
			trigger_stock = EXCLUDED.trigger_stock,
			reorder_quantity = EXCLUDED.reorder_quantity,
			requires_approval = EXCLUDED.requires_approval,
			enabled = EXCLUDED.enabled,
			updated_at = EXCLUDED.updated_at`
	_, err := r.q.Exec(context.Background(), query,
		rule.ID, rule.CompanyID, rule.ProductID, rule.ProviderID,
		rule.TriggerStock, rule.ReorderQuantity, rule.RequiresApproval, rule.Enabled,
		rule.CreatedAt, rule.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("upsert reorder rule: %w", err)
	}
	return nil
}

// GetByID obtiene una regla por ID.
func (r *ReorderRuleRepo) GetByID(id string) (*entity.ReorderRule, error) {
	var rr entity.ReorderRule
	err := r.q.QueryRow(context.Background(),
		`SELECT `+ruleColumns+` FROM reorder_rules WHERE id = $1`, id).Scan(
		&rr.ID, &rr.CompanyID, &rr.ProductID, &rr.ProviderID,
		&rr.TriggerStock, &rr.ReorderQuantity, &rr.RequiresApproval, &rr.Enabled,
		&rr.CreatedAt, &rr.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get reorder rule: %w", err)
	}
	return &rr, nil
}

// GetEnabledByProduct devuelve la regla habilitada del producto o nil.
// Con más de una regla habilitada por producto (estado indefinido), se toma
// la modificada más recientemente.
func (r *ReorderRuleRepo) GetEnabledByProduct(companyID, productID string) (*entity.ReorderRule, error) {
	var rr entity.ReorderRule
	err := r.q.QueryRow(context.Background(), `
		SELECT `+ruleColumns+`
		FROM reorder_rules
		WHERE company_id = $1 AND product_id = $2 AND enabled
		ORDER BY updated_at DESC
		LIMIT 1`, companyID, productID).Scan(
		&rr.ID, &rr.CompanyID, &rr.ProductID, &rr.ProviderID,
		&rr.TriggerStock, &rr.ReorderQuantity, &rr.RequiresApproval, &rr.Enabled,
		&rr.CreatedAt, &rr.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get enabled rule by product: %w", err)
	}
	return &rr, nil
}

// SetEnabled habilita o deshabilita una regla.
func (r *ReorderRuleRepo) SetEnabled(id string, enabled bool) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE reorder_rules SET enabled = $2, updated_at = now() WHERE id = $1`,
		id, enabled,
	)
	if err != nil {
		return fmt.Errorf("toggle reorder rule: %w", err)
	}
	return nil
}

// Delete elimina una regla.
func (r *ReorderRuleRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(),
		`DELETE FROM reorder_rules WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete reorder rule: %w", err)
	}
	return nil
}

// ListByCompany lista reglas de la empresa con paginación.
func (r *ReorderRuleRepo) ListByCompany(companyID string, limit, offset int) ([]*entity.ReorderRule, error) {
	query := `
		SELECT ` + ruleColumns + `
		FROM reorder_rules WHERE company_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, companyID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list reorder rules: %w", err)
	}
	defer rows.Close()
	var list []*entity.ReorderRule
	for rows.Next() {
		var rr entity.ReorderRule
		if err := rows.Scan(
			&rr.ID, &rr.CompanyID, &rr.ProductID, &rr.ProviderID,
			&rr.TriggerStock, &rr.ReorderQuantity, &rr.RequiresApproval, &rr.Enabled,
			&rr.CreatedAt, &rr.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan reorder rule: %w", err)
		}
		list = append(list, &rr)
	}
	return list, rows.Err()
}

// ListEnabledWithStock devuelve las reglas habilitadas de la empresa con stock
// actual, precio y datos del proveedor. Consulta única del barrido.
func (r *ReorderRuleRepo) ListEnabledWithStock(ctx context.Context, companyID string) ([]repository.EnabledRuleRow, error) {
	query := `
		SELECT r.id, r.company_id, r.product_id, r.provider_id,
		       r.trigger_stock, r.reorder_quantity, r.requires_approval, r.enabled,
		       r.created_at, r.updated_at,
		       p.name, p.current_stock, p.price,
		       pr.name, pr.email
		FROM reorder_rules r
		JOIN products p ON p.id = r.product_id
		JOIN providers pr ON pr.id = r.provider_id
		WHERE r.company_id = $1 AND r.enabled
		ORDER BY pr.name, p.name`
	rows, err := r.q.Query(ctx, query, companyID)
	if err != nil {
		return nil, fmt.Errorf("list enabled rules with stock: %w", err)
	}
	defer rows.Close()
	var list []repository.EnabledRuleRow
	for rows.Next() {
		var row repository.EnabledRuleRow
		if err := rows.Scan(
			&row.Rule.ID, &row.Rule.CompanyID, &row.Rule.ProductID, &row.Rule.ProviderID,
			&row.Rule.TriggerStock, &row.Rule.ReorderQuantity, &row.Rule.RequiresApproval, &row.Rule.Enabled,
			&row.Rule.CreatedAt, &row.Rule.UpdatedAt,
			&row.ProductName, &row.CurrentStock, &row.UnitPrice,
			&row.ProviderName, &row.ProviderEmail,
		); err != nil {
			return nil, fmt.Errorf("scan enabled rule row: %w", err)
		}
		list = append(list, row)
	}
	return list, rows.Err()
}
