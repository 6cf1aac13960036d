package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Compras-api/internal/domain"
	"github.com/jhoicas/Compras-api/internal/domain/entity"
	"github.com/jhoicas/Compras-api/internal/domain/repository"
	"github.com/jhoicas/Compras-api/pkg/logger"
)

// ReplenishEvaluator es la ruta inmediata del motor de reposición: se invoca
// tras confirmar un movimiento que baja stock. Implementada por
// replenish.ImmediateEvaluator.
type ReplenishEvaluator interface {
	Evaluate(ctx context.Context, companyID, productID string, newStock decimal.Decimal) (*entity.PurchaseOrder, error)
}

// RegisterMovementUseCase registra movimientos de inventario de forma
// transaccional (IN, OUT, ADJUSTMENT) con bloqueo de fila y Commit/Rollback.
// Tras confirmar un movimiento que baja el stock dispara el evaluador de
// reposición como efecto best-effort: su fallo jamás revierte el movimiento.
type RegisterMovementUseCase struct {
	txRunner    TxRunner
	productRepo repository.ProductRepository
	evaluator   ReplenishEvaluator
	log         *logger.Logger
}

// NewRegisterMovementUseCase construye el caso de uso. evaluator puede ser nil
// (sin reposición inmediata, p. ej. en herramientas de carga).
func NewRegisterMovementUseCase(
	txRunner TxRunner,
	productRepo repository.ProductRepository,
	evaluator ReplenishEvaluator,
	log *logger.Logger,
) *RegisterMovementUseCase {
	return &RegisterMovementUseCase{
		txRunner:    txRunner,
		productRepo: productRepo,
		evaluator:   evaluator,
		log:         log,
	}
}

// MovementInput entrada para registrar un movimiento.
// Quantity siempre positivo; el signo lo decide Type (ADJUSTMENT admite
// AdjustmentNegative para restar).
type MovementInput struct {
	CompanyID          string
	UserID             string
	ProductID          string
	Type               string
	Quantity           decimal.Decimal
	UnitCost           decimal.Decimal
	Reference          string
	AdjustmentNegative bool
}

// RegisterMovement valida la entrada, aplica el movimiento dentro de una
// transacción (SELECT FOR UPDATE sobre el producto) y, si el stock bajó,
// evalúa la regla de reposición del producto fuera de la transacción.
func (uc *RegisterMovementUseCase) RegisterMovement(ctx context.Context, input MovementInput) error {
	switch input.Type {
	case entity.MovementTypeIN, entity.MovementTypeOUT, entity.MovementTypeADJUSTMENT:
	default:
		return domain.ErrInvalidInput
	}
	if input.ProductID == "" || !input.Quantity.GreaterThan(decimal.Zero) {
		return domain.ErrInvalidInput
	}
	if input.UnitCost.LessThan(decimal.Zero) {
		return domain.ErrInvalidInput
	}

	product, err := uc.productRepo.GetByID(input.ProductID)
	if err != nil {
		return err
	}
	if product == nil {
		return domain.ErrNotFound
	}
	if product.CompanyID != input.CompanyID {
		return domain.ErrForbidden
	}

	signed := input.Quantity
	if input.Type == entity.MovementTypeOUT || (input.Type == entity.MovementTypeADJUSTMENT && input.AdjustmentNegative) {
		signed = signed.Neg()
	}

	now := time.Now()
	var newStock decimal.Decimal
	err = uc.txRunner.Run(ctx, func(
		movRepo repository.InventoryMovementRepository,
		productRepo repository.ProductRepository,
		_ repository.PurchaseOrderRepository,
	) error {
		locked, err := productRepo.GetForUpdate(input.ProductID)
		if err != nil {
			return err
		}
		if locked == nil {
			return domain.ErrNotFound
		}
		newStock = locked.CurrentStock.Add(signed)
		if newStock.LessThan(decimal.Zero) {
			return domain.ErrInsufficientStock
		}
		if err := productRepo.UpdateStock(input.ProductID, newStock); err != nil {
			return err
		}
		mov := &entity.InventoryMovement{
			ID:        uuid.New().String(),
			CompanyID: input.CompanyID,
			ProductID: input.ProductID,
			Type:      input.Type,
			Quantity:  signed,
			UnitCost:  input.UnitCost,
			Reference: input.Reference,
			Date:      now,
			CreatedAt: now,
			CreatedBy: input.UserID,
		}
		return movRepo.Create(mov)
	})
	if err != nil {
		return err
	}

	// Disparo inmediato: mismo flujo, transacción aparte. Si el proceso muere
	// entre el commit del movimiento y la creación de la orden, el barrido
	// programado recoge el faltante en la siguiente corrida.
	if uc.evaluator != nil && signed.IsNegative() {
		if po, evalErr := uc.evaluator.Evaluate(ctx, input.CompanyID, input.ProductID, newStock); evalErr != nil {
			uc.log.Error().Err(evalErr).
				Str("product_id", input.ProductID).
				Msg("evaluación de reposición inmediata falló")
		} else if po != nil {
			uc.log.Info().
				Str("product_id", input.ProductID).
				Str("order", po.Number).
				Str("status", po.Status).
				Msg("orden de reposición creada por disparo inmediato")
		}
	}
	return nil
}
