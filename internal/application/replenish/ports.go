package replenish

import (
	"context"

	"github.com/jhoicas/Compras-api/internal/domain/entity"
	"github.com/jhoicas/Compras-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza atomicidad cabecera + líneas.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		movRepo repository.InventoryMovementRepository,
		productRepo repository.ProductRepository,
		orderRepo repository.PurchaseOrderRepository,
	) error) error
}

// OrderPDFGenerator genera la representación imprimible de una orden de compra.
// Debe tolerar órdenes sin líneas; un error nunca aborta la creación de la orden.
type OrderPDFGenerator interface {
	GenerateOrderPDF(ctx context.Context, order *entity.PurchaseOrder, company *entity.Company, provider *entity.Provider) ([]byte, error)
}

// DocumentStore persiste el artefacto generado y devuelve su ruta/URL.
type DocumentStore interface {
	Save(orderNumber string, pdf []byte) (string, error)
}
