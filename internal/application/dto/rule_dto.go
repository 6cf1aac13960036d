package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Compras-api/internal/domain/entity"
)

// ReorderRuleRequest body para crear o editar una regla de reposición.
// Crear dos veces para el mismo (producto, proveedor) reemplaza la regla
// existente en lugar de fallar.
type ReorderRuleRequest struct {
	ProductID        string          `json:"product_id"`
	ProviderID       string          `json:"provider_id"`
	TriggerStock     decimal.Decimal `json:"trigger_stock"`
	ReorderQuantity  decimal.Decimal `json:"reorder_quantity"`
	RequiresApproval bool            `json:"requires_approval"`
	Enabled          bool            `json:"enabled"`
}

// ToggleRuleRequest body para habilitar o deshabilitar una regla.
type ToggleRuleRequest struct {
	Enabled bool `json:"enabled"`
}

// ReorderRuleResponse representación de una regla en respuestas.
type ReorderRuleResponse struct {
	ID               string          `json:"id"`
	ProductID        string          `json:"product_id"`
	ProviderID       string          `json:"provider_id"`
	TriggerStock     decimal.Decimal `json:"trigger_stock"`
	ReorderQuantity  decimal.Decimal `json:"reorder_quantity"`
	RequiresApproval bool            `json:"requires_approval"`
	Enabled          bool            `json:"enabled"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
}

// ToReorderRuleResponse convierte la entidad a su DTO de respuesta.
func ToReorderRuleResponse(r *entity.ReorderRule) ReorderRuleResponse {
	return ReorderRuleResponse{
		ID:               r.ID,
		ProductID:        r.ProductID,
		ProviderID:       r.ProviderID,
		TriggerStock:     r.TriggerStock,
		ReorderQuantity:  r.ReorderQuantity,
		RequiresApproval: r.RequiresApproval,
		Enabled:          r.Enabled,
		CreatedAt:        r.CreatedAt,
		UpdatedAt:        r.UpdatedAt,
	}
}
