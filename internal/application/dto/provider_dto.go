package dto

import (
	"time"

	"github.com/jhoicas/Compras-api/internal/domain/entity"
)

// ProviderRequest body para crear o editar un proveedor.
type ProviderRequest struct {
	Name    string `json:"name"`
	TaxID   string `json:"tax_id,omitempty"`
	Email   string `json:"email,omitempty"`
	Phone   string `json:"phone,omitempty"`
	Address string `json:"address,omitempty"`
}

// ProviderResponse representación de un proveedor en respuestas.
type ProviderResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	TaxID     string    `json:"tax_id,omitempty"`
	Email     string    `json:"email,omitempty"`
	Phone     string    `json:"phone,omitempty"`
	Address   string    `json:"address,omitempty"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ToProviderResponse convierte la entidad a su DTO de respuesta.
func ToProviderResponse(p *entity.Provider) ProviderResponse {
	return ProviderResponse{
		ID:        p.ID,
		Name:      p.Name,
		TaxID:     p.TaxID,
		Email:     p.Email,
		Phone:     p.Phone,
		Address:   p.Address,
		IsActive:  p.IsActive,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}
