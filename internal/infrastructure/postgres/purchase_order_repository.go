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

var _ repository.PurchaseOrderRepository = (*PurchaseOrderRepo)(nil)

// PurchaseOrderRepo implementación de PurchaseOrderRepository sobre PostgreSQL.
// Create escribe cabecera y líneas; para atomicidad, pasar una tx (TxRunner).
type PurchaseOrderRepo struct {
	q Querier
}

// NewPurchaseOrderRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPurchaseOrderRepository(q Querier) *PurchaseOrderRepo {
	return &PurchaseOrderRepo{q: q}
}

const orderColumns = `id, company_id, provider_id, number, origin, status, total_estimate, notes, document_path, created_at, approved_at, approved_by, sent_at, updated_at`

// Create persiste la cabecera de la orden y todas sus líneas.
func (r *PurchaseOrderRepo) Create(order *entity.PurchaseOrder) error {
	query := `
		INSERT INTO purchase_orders (` + orderColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
	_, err := r.q.Exec(context.Background(), query,
		order.ID, order.CompanyID, order.ProviderID, order.Number, order.Origin,
		order.Status, order.TotalEstimate, order.Notes, order.DocumentPath,
		order.CreatedAt, order.ApprovedAt, order.ApprovedBy, order.SentAt, order.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert purchase order: %w", err)
	}
	for i := range order.Lines {
		line := &order.Lines[i]
		_, err := r.q.Exec(context.Background(), `
			INSERT INTO purchase_order_lines (id, order_id, product_id, product_name, quantity, unit_price)
			VALUES ($1, $2, $3, $4, $5, $6)`,
			line.ID, line.OrderID, line.ProductID, line.ProductName, line.Quantity, line.UnitPrice,
		)
		if err != nil {
			return fmt.Errorf("insert order line: %w", err)
		}
	}
	return nil
}

// GetByID obtiene una orden con sus líneas.
func (r *PurchaseOrderRepo) GetByID(id string) (*entity.PurchaseOrder, error) {
	var o entity.PurchaseOrder
	err := r.q.QueryRow(context.Background(),
		`SELECT `+orderColumns+` FROM purchase_orders WHERE id = $1`, id).Scan(
		&o.ID, &o.CompanyID, &o.ProviderID, &o.Number, &o.Origin,
		&o.Status, &o.TotalEstimate, &o.Notes, &o.DocumentPath,
		&o.CreatedAt, &o.ApprovedAt, &o.ApprovedBy, &o.SentAt, &o.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get purchase order: %w", err)
	}

	rows, err := r.q.Query(context.Background(), `
		SELECT id, order_id, product_id, product_name, quantity, unit_price
		FROM purchase_order_lines WHERE order_id = $1 ORDER BY product_name`, id)
	if err != nil {
		return nil, fmt.Errorf("get order lines: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var l entity.OrderLine
		if err := rows.Scan(&l.ID, &l.OrderID, &l.ProductID, &l.ProductName, &l.Quantity, &l.UnitPrice); err != nil {
			return nil, fmt.Errorf("scan order line: %w", err)
		}
		o.Lines = append(o.Lines, l)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return &o, nil
}

// Update actualiza estado, aprobación, envío, notas y ruta de documento.
// Las líneas y el total son snapshots: no se modifican después de crear.
func (r *PurchaseOrderRepo) Update(order *entity.PurchaseOrder) error {
	query := `
		UPDATE purchase_orders
		SET status = $2, notes = $3, document_path = $4,
		    approved_at = $5, approved_by = $6, sent_at = $7, updated_at = $8
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		order.ID, order.Status, order.Notes, order.DocumentPath,
		order.ApprovedAt, order.ApprovedBy, order.SentAt, order.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update purchase order: %w", err)
	}
	return nil
}

// ListByCompany lista cabeceras de órdenes (sin líneas) con filtros opcionales.
func (r *PurchaseOrderRepo) ListByCompany(companyID string, filter repository.OrderFilter, limit, offset int) ([]*entity.PurchaseOrder, error) {
	query := `SELECT ` + orderColumns + ` FROM purchase_orders WHERE company_id = $1`
	args := []any{companyID}
	if filter.Status != "" {
		args = append(args, filter.Status)
		query += fmt.Sprintf(" AND status = $%d", len(args))
	}
	if filter.Origin != "" {
		args = append(args, filter.Origin)
		query += fmt.Sprintf(" AND origin = $%d", len(args))
	}
	args = append(args, limit, offset)
	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", len(args)-1, len(args))

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list purchase orders: %w", err)
	}
	defer rows.Close()
	var list []*entity.PurchaseOrder
	for rows.Next() {
		var o entity.PurchaseOrder
		if err := rows.Scan(
			&o.ID, &o.CompanyID, &o.ProviderID, &o.Number, &o.Origin,
			&o.Status, &o.TotalEstimate, &o.Notes, &o.DocumentPath,
			&o.CreatedAt, &o.ApprovedAt, &o.ApprovedBy, &o.SentAt, &o.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan purchase order: %w", err)
		}
		list = append(list, &o)
	}
	return list, rows.Err()
}

// HasOpenSweepOrder indica si el proveedor tiene una orden del barrido en
// PENDING_REVIEW (política de supresión entre corridas consecutivas).
func (r *PurchaseOrderRepo) HasOpenSweepOrder(companyID, providerID string) (bool, error) {
	var exists bool
	err := r.q.QueryRow(context.Background(), `
		SELECT EXISTS (
			SELECT 1 FROM purchase_orders
			WHERE company_id = $1 AND provider_id = $2 AND origin = $3 AND status = $4
		)`, companyID, providerID, entity.OrderOriginBatchSweep, entity.OrderStatusPendingReview,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check open sweep order: %w", err)
	}
	return exists, nil
}
