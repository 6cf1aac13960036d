package replenish

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Compras-api/internal/domain"
	"github.com/jhoicas/Compras-api/internal/domain/entity"
	"github.com/jhoicas/Compras-api/internal/domain/order"
	"github.com/jhoicas/Compras-api/internal/domain/repository"
)

// ImmediateEvaluator evalúa la regla de reposición de UN producto justo después
// de un movimiento que baja su stock. Es un efecto secundario best-effort: el
// caller (registro de movimientos) loguea el error y nunca lo propaga al
// movimiento que lo disparó.
type ImmediateEvaluator struct {
	txRunner    TxRunner
	ruleRepo    repository.ReorderRuleRepository
	productRepo repository.ProductRepository
	systemActor string
}

// NewImmediateEvaluator construye el evaluador. systemActor es la identidad que
// queda como aprobador cuando la regla no exige aprobación humana.
func NewImmediateEvaluator(
	txRunner TxRunner,
	ruleRepo repository.ReorderRuleRepository,
	productRepo repository.ProductRepository,
	systemActor string,
) *ImmediateEvaluator {
	if systemActor == "" {
		systemActor = "system"
	}
	return &ImmediateEvaluator{
		txRunner:    txRunner,
		ruleRepo:    ruleRepo,
		productRepo: productRepo,
		systemActor: systemActor,
	}
}

// Evaluate revisa la regla habilitada del producto contra el stock recién
// escrito y, si amerita reposición, crea una orden de compra de una línea.
// Devuelve la orden creada o nil si no aplicó ninguna regla.
//
// Estado inicial: PENDING_APPROVAL si la regla exige aprobación; si no,
// APPROVED con aprobador = actor del sistema. El precio unitario de la línea
// es el precio actual del producto (snapshot, decisión documentada en DESIGN.md).
func (e *ImmediateEvaluator) Evaluate(ctx context.Context, companyID, productID string, newStock decimal.Decimal) (*entity.PurchaseOrder, error) {
	rule, err := e.ruleRepo.GetEnabledByProduct(companyID, productID)
	if err != nil {
		return nil, fmt.Errorf("consultar regla de reposición: %w", err)
	}
	if rule == nil {
		return nil, nil
	}
	if !entity.ShouldReorder(newStock, rule.TriggerStock) {
		return nil, nil
	}

	product, err := e.productRepo.GetByID(productID)
	if err != nil {
		return nil, fmt.Errorf("consultar producto: %w", err)
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}

	now := time.Now()
	po := &entity.PurchaseOrder{
		ID:         uuid.New().String(),
		CompanyID:  companyID,
		ProviderID: rule.ProviderID,
		Number:     order.NewNumber(now),
		Origin:     entity.OrderOriginImmediateTrigger,
		Status:     entity.OrderStatusPendingApproval,
		Notes: fmt.Sprintf("Reposición automática: %s llegó a stock %s (umbral %s)",
			product.Name, newStock.String(), rule.TriggerStock.String()),
		CreatedAt: now,
		UpdatedAt: now,
	}
	po.Lines = []entity.OrderLine{{
		ID:          uuid.New().String(),
		OrderID:     po.ID,
		ProductID:   product.ID,
		ProductName: product.Name,
		Quantity:    rule.ReorderQuantity,
		UnitPrice:   product.Price,
	}}
	po.TotalEstimate = entity.ComputeTotal(po.Lines)

	if !rule.RequiresApproval {
		po.Status = entity.OrderStatusApproved
		po.ApprovedAt = &now
		po.ApprovedBy = e.systemActor
	}

	err = e.txRunner.Run(ctx, func(
		_ repository.InventoryMovementRepository,
		_ repository.ProductRepository,
		orderRepo repository.PurchaseOrderRepository,
	) error {
		return orderRepo.Create(po)
	})
	if err != nil {
		return nil, fmt.Errorf("crear orden de reposición: %w", err)
	}
	return po, nil
}
