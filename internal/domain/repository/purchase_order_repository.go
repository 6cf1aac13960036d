package repository

import "github.com/jhoicas/Compras-api/internal/domain/entity"

// OrderFilter filtros opcionales para listar órdenes (vacío = sin filtro).
type OrderFilter struct {
	Status string
	Origin string
}

// PurchaseOrderRepository define el puerto de persistencia para PurchaseOrder y
// sus líneas (DIP). Create persiste cabecera y líneas; GetByID las carga juntas.
type PurchaseOrderRepository interface {
	Create(order *entity.PurchaseOrder) error
	GetByID(id string) (*entity.PurchaseOrder, error)
	// Update actualiza estado, aprobación, envío y ruta de documento.
	Update(order *entity.PurchaseOrder) error
	ListByCompany(companyID string, filter OrderFilter, limit, offset int) ([]*entity.PurchaseOrder, error)
	// HasOpenSweepOrder indica si el proveedor ya tiene una orden del barrido
	// en PENDING_REVIEW (política de supresión de duplicados entre corridas).
	HasOpenSweepOrder(companyID, providerID string) (bool, error)
}
