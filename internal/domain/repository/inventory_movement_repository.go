package repository

import "github.com/jhoicas/Compras-api/internal/domain/entity"

// InventoryMovementRepository define el puerto de persistencia para el libro
// de movimientos (DIP).
type InventoryMovementRepository interface {
	Create(movement *entity.InventoryMovement) error
	ListByProduct(productID string, limit, offset int) ([]*entity.InventoryMovement, error)
}
