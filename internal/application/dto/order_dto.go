package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Compras-api/internal/domain/entity"
)

// OrderLineRequest línea de una orden manual. Si unit_price se omite o es cero
// se toma el precio actual del producto como snapshot.
type OrderLineRequest struct {
	ProductID string          `json:"product_id"`
	Quantity  decimal.Decimal `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price,omitempty"`
}

// CreateOrderRequest body para crear una orden manual en borrador.
type CreateOrderRequest struct {
	ProviderID string             `json:"provider_id"`
	Notes      string             `json:"notes,omitempty"`
	Lines      []OrderLineRequest `json:"lines"`
}

// ApproveOrderRequest body para aprobar una orden. Exige identidad del aprobador.
type ApproveOrderRequest struct {
	ApprovedBy string `json:"approved_by"`
}

// OrderLineResponse línea de una orden en respuestas.
type OrderLineResponse struct {
	ID          string          `json:"id"`
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"product_name"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Subtotal    decimal.Decimal `json:"subtotal"`
}

// OrderResponse representación de una orden de compra en respuestas.
type OrderResponse struct {
	ID            string              `json:"id"`
	Number        string              `json:"number"`
	ProviderID    string              `json:"provider_id"`
	Origin        string              `json:"origin"`
	Status        string              `json:"status"`
	TotalEstimate decimal.Decimal     `json:"total_estimate"`
	Notes         string              `json:"notes,omitempty"`
	DocumentPath  string              `json:"document_path,omitempty"`
	Lines         []OrderLineResponse `json:"lines,omitempty"`
	CreatedAt     time.Time           `json:"created_at"`
	ApprovedAt    *time.Time          `json:"approved_at,omitempty"`
	ApprovedBy    string              `json:"approved_by,omitempty"`
	SentAt        *time.Time          `json:"sent_at,omitempty"`
	UpdatedAt     time.Time           `json:"updated_at"`
}

// ToOrderResponse convierte la entidad a su DTO de respuesta.
func ToOrderResponse(o *entity.PurchaseOrder) OrderResponse {
	resp := OrderResponse{
		ID:            o.ID,
		Number:        o.Number,
		ProviderID:    o.ProviderID,
		Origin:        o.Origin,
		Status:        o.Status,
		TotalEstimate: o.TotalEstimate,
		Notes:         o.Notes,
		DocumentPath:  o.DocumentPath,
		CreatedAt:     o.CreatedAt,
		ApprovedAt:    o.ApprovedAt,
		ApprovedBy:    o.ApprovedBy,
		SentAt:        o.SentAt,
		UpdatedAt:     o.UpdatedAt,
	}
	for _, l := range o.Lines {
		resp.Lines = append(resp.Lines, OrderLineResponse{
			ID:          l.ID,
			ProductID:   l.ProductID,
			ProductName: l.ProductName,
			Quantity:    l.Quantity,
			UnitPrice:   l.UnitPrice,
			Subtotal:    l.Quantity.Mul(l.UnitPrice),
		})
	}
	return resp
}
