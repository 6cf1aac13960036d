package purchasing

import (
	"context"

	"github.com/jhoicas/Compras-api/internal/domain/entity"
	"github.com/jhoicas/Compras-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. La recepción de una orden exige que el cambio
// de estado y todos los incrementos de stock se confirmen juntos.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		movRepo repository.InventoryMovementRepository,
		productRepo repository.ProductRepository,
		orderRepo repository.PurchaseOrderRepository,
	) error) error
}

// OrderPDFGenerator genera la representación imprimible de una orden de compra.
type OrderPDFGenerator interface {
	GenerateOrderPDF(ctx context.Context, order *entity.PurchaseOrder, company *entity.Company, provider *entity.Provider) ([]byte, error)
}

// DocumentStore persiste el artefacto generado y devuelve su ruta/URL.
type DocumentStore interface {
	Save(orderNumber string, pdf []byte) (string, error)
}

// OrderMailer despacha la orden al proveedor por correo. Un fallo de envío se
// devuelve al caller: la orden permanece en su estado y no se reintenta solo.
type OrderMailer interface {
	SendOrder(ctx context.Context, to, subject, body string, attachment []byte, filename string) error
}
