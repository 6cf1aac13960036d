package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// ReorderRule configura la reposición automática de un producto con un proveedor:
// cuándo disparar (TriggerStock), cuánto pedir (ReorderQuantity) y si la orden
// resultante requiere aprobación humana. Única por (empresa, producto, proveedor);
// el alta sobre una pareja existente actúa como upsert.
type ReorderRule struct {
	ID               string
	CompanyID        string
	ProductID        string
	ProviderID       string
	TriggerStock     decimal.Decimal // >= 0
	ReorderQuantity  decimal.Decimal // > 0
	RequiresApproval bool
	Enabled          bool
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// ShouldReorder indica si el stock actual amerita reposición.
// Semántica única para ambas rutas (evaluador inmediato y barrido): dispara
// cuando el stock está EN o POR DEBAJO del umbral (stock <= trigger).
func ShouldReorder(currentStock, triggerStock decimal.Decimal) bool {
	return currentStock.LessThanOrEqual(triggerStock)
}
