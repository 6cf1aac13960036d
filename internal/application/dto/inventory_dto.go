package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Compras-api/internal/domain/entity"
)

// MovementResponse registro del libro de movimientos en respuestas.
type MovementResponse struct {
	ID        string          `json:"id"`
	ProductID string          `json:"product_id"`
	Type      string          `json:"type"`
	Quantity  decimal.Decimal `json:"quantity"`
	UnitCost  decimal.Decimal `json:"unit_cost"`
	Reference string          `json:"reference,omitempty"`
	Date      time.Time       `json:"date"`
	CreatedBy string          `json:"created_by,omitempty"`
}

// ToMovementResponse convierte la entidad a su DTO de respuesta.
func ToMovementResponse(m *entity.InventoryMovement) MovementResponse {
	return MovementResponse{
		ID:        m.ID,
		ProductID: m.ProductID,
		Type:      m.Type,
		Quantity:  m.Quantity,
		UnitCost:  m.UnitCost,
		Reference: m.Reference,
		Date:      m.Date,
		CreatedBy: m.CreatedBy,
	}
}

// RegisterMovementRequest body para POST /api/inventory/movements.
// Quantity siempre positivo; para un ajuste que resta, adjustment_negative=true.
type RegisterMovementRequest struct {
	ProductID          string          `json:"product_id"`
	Type               string          `json:"type"`
	Quantity           decimal.Decimal `json:"quantity"`
	UnitCost           decimal.Decimal `json:"unit_cost,omitempty"`
	Reference          string          `json:"reference,omitempty"`
	AdjustmentNegative bool            `json:"adjustment_negative,omitempty"`
}
