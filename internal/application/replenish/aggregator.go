package replenish

import (
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Compras-api/internal/domain/entity"
	"github.com/jhoicas/Compras-api/internal/domain/order"
	"github.com/jhoicas/Compras-api/internal/domain/repository"
)

// partitionByProvider agrupa las reglas disparadas por proveedor.
// Cada partición se procesa de forma independiente en el barrido.
func partitionByProvider(rows []repository.EnabledRuleRow) map[string][]repository.EnabledRuleRow {
	parts := make(map[string][]repository.EnabledRuleRow)
	for _, row := range rows {
		pid := row.Rule.ProviderID
		parts[pid] = append(parts[pid], row)
	}
	return parts
}

// buildProviderOrder arma la orden candidata de un proveedor: una línea por
// regla disparada, con nombre y precio del producto como snapshot, total
// estimado y nota resumen. Estado inicial PENDING_REVIEW.
func buildProviderOrder(companyID, providerID string, rows []repository.EnabledRuleRow, now time.Time) *entity.PurchaseOrder {
	// Orden estable por nombre de producto para que el PDF y los tests sean deterministas
	sorted := make([]repository.EnabledRuleRow, len(rows))
	copy(sorted, rows)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].ProductName < sorted[j].ProductName })

	po := &entity.PurchaseOrder{
		ID:         uuid.New().String(),
		CompanyID:  companyID,
		ProviderID: providerID,
		Number:     order.NewNumber(now),
		Origin:     entity.OrderOriginBatchSweep,
		Status:     entity.OrderStatusPendingReview,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	for _, row := range sorted {
		po.Lines = append(po.Lines, entity.OrderLine{
			ID:          uuid.New().String(),
			OrderID:     po.ID,
			ProductID:   row.Rule.ProductID,
			ProductName: row.ProductName,
			Quantity:    row.Rule.ReorderQuantity,
			UnitPrice:   row.UnitPrice,
		})
	}
	po.TotalEstimate = entity.ComputeTotal(po.Lines)
	po.Notes = fmt.Sprintf("Generada por barrido de reposición: %d producto(s) bajo umbral para %s",
		len(po.Lines), providerName(sorted, providerID))
	return po
}

func providerName(rows []repository.EnabledRuleRow, fallback string) string {
	for _, row := range rows {
		if row.ProviderName != "" {
			return row.ProviderName
		}
	}
	return fallback
}
