package purchasing

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
	"github.com/jhoicas/Compras-api/pkg/logger"
)

// UseCase gestiona el ciclo de vida de las órdenes de compra: creación manual,
// aprobación, envío al proveedor y recepción con efecto sobre el inventario.
// Toda transición pasa por la máquina de estados de domain/order.
type UseCase struct {
	txRunner     TxRunner
	orderRepo    repository.PurchaseOrderRepository
	productRepo  repository.ProductRepository
	providerRepo repository.ProviderRepository
	companyRepo  repository.CompanyRepository
	pdf          OrderPDFGenerator
	docs         DocumentStore
	mailer       OrderMailer
	log          *logger.Logger
}

// NewUseCase construye el caso de uso de órdenes de compra.
func NewUseCase(
	txRunner TxRunner,
	orderRepo repository.PurchaseOrderRepository,
	productRepo repository.ProductRepository,
	providerRepo repository.ProviderRepository,
	companyRepo repository.CompanyRepository,
	pdf OrderPDFGenerator,
	docs DocumentStore,
	mailer OrderMailer,
	log *logger.Logger,
) *UseCase {
	return &UseCase{
		txRunner:     txRunner,
		orderRepo:    orderRepo,
		productRepo:  productRepo,
		providerRepo: providerRepo,
		companyRepo:  companyRepo,
		pdf:          pdf,
		docs:         docs,
		mailer:       mailer,
		log:          log,
	}
}

// LineInput línea de una orden manual. Si UnitPrice es cero se toma el precio
// actual del producto como snapshot.
type LineInput struct {
	ProductID string
	Quantity  decimal.Decimal
	UnitPrice decimal.Decimal
}

// CreateDraft crea una orden manual en estado DRAFT con sus líneas.
// Valida proveedor y productos contra el tenant.
func (uc *UseCase) CreateDraft(ctx context.Context, companyID, providerID, notes string, lines []LineInput) (*entity.PurchaseOrder, error) {
	if providerID == "" || len(lines) == 0 {
		return nil, domain.ErrInvalidInput
	}
	provider, err := uc.providerRepo.GetByID(providerID)
	if err != nil {
		return nil, err
	}
	if provider == nil {
		return nil, domain.ErrNotFound
	}
	if provider.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}

	now := time.Now()
	po := &entity.PurchaseOrder{
		ID:         uuid.New().String(),
		CompanyID:  companyID,
		ProviderID: providerID,
		Number:     order.NewNumber(now),
		Origin:     entity.OrderOriginManual,
		Status:     entity.OrderStatusDraft,
		Notes:      notes,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	for _, in := range lines {
		if !in.Quantity.GreaterThan(decimal.Zero) || in.UnitPrice.LessThan(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
		product, err := uc.productRepo.GetByID(in.ProductID)
		if err != nil {
			return nil, err
		}
		if product == nil {
			return nil, domain.ErrNotFound
		}
		if product.CompanyID != companyID {
			return nil, domain.ErrForbidden
		}
		unitPrice := in.UnitPrice
		if unitPrice.IsZero() {
			unitPrice = product.Price
		}
		po.Lines = append(po.Lines, entity.OrderLine{
			ID:          uuid.New().String(),
			OrderID:     po.ID,
			ProductID:   product.ID,
			ProductName: product.Name,
			Quantity:    in.Quantity,
			UnitPrice:   unitPrice,
		})
	}
	po.TotalEstimate = entity.ComputeTotal(po.Lines)

	err = uc.txRunner.Run(ctx, func(
		_ repository.InventoryMovementRepository,
		_ repository.ProductRepository,
		orderRepo repository.PurchaseOrderRepository,
	) error {
		return orderRepo.Create(po)
	})
	if err != nil {
		return nil, err
	}
	return po, nil
}

// Submit pasa una orden DRAFT a PENDING_APPROVAL.
func (uc *UseCase) Submit(ctx context.Context, companyID, orderID string) error {
	po, err := uc.loadOwned(companyID, orderID)
	if err != nil {
		return err
	}
	if err := transition(po, entity.OrderStatusPendingApproval); err != nil {
		return err
	}
	return uc.orderRepo.Update(po)
}

// Approve aprueba una orden en PENDING_APPROVAL. Exige identidad del aprobador.
func (uc *UseCase) Approve(ctx context.Context, companyID, orderID, actor string) error {
	if actor == "" {
		return domain.ErrInvalidInput
	}
	po, err := uc.loadOwned(companyID, orderID)
	if err != nil {
		return err
	}
	if err := transition(po, entity.OrderStatusApproved); err != nil {
		return err
	}
	now := time.Now()
	po.ApprovedAt = &now
	po.ApprovedBy = actor
	return uc.orderRepo.Update(po)
}

// Cancel cancela una orden (desde PENDING_REVIEW, PENDING_APPROVAL o APPROVED).
// CANCELLED es terminal: cualquier envío posterior falla.
func (uc *UseCase) Cancel(ctx context.Context, companyID, orderID string) error {
	po, err := uc.loadOwned(companyID, orderID)
	if err != nil {
		return err
	}
	if err := transition(po, entity.OrderStatusCancelled); err != nil {
		return err
	}
	return uc.orderRepo.Update(po)
}

// Send genera (o regenera) el PDF de la orden y la despacha por correo al
// proveedor. Solo si el envío tiene éxito la orden pasa a SENT; si el correo
// falla, el estado no cambia y el error se devuelve al caller sin reintentos.
func (uc *UseCase) Send(ctx context.Context, companyID, orderID string) error {
	po, err := uc.loadOwned(companyID, orderID)
	if err != nil {
		return err
	}
	if !order.CanTransition(po.Status, entity.OrderStatusSent) {
		return domain.ErrInvalidTransition
	}

	company, err := uc.companyRepo.GetByID(po.CompanyID)
	if err != nil {
		return err
	}
	provider, err := uc.providerRepo.GetByID(po.ProviderID)
	if err != nil {
		return err
	}
	if company == nil || provider == nil {
		return domain.ErrNotFound
	}
	if provider.Email == "" {
		return fmt.Errorf("proveedor %s sin email: %w", provider.Name, domain.ErrInvalidInput)
	}

	// Siempre se regenera el PDF al enviar: el documento refleja la orden tal
	// como sale, aunque la corrida del barrido no haya podido renderizarlo.
	pdfBytes, err := uc.pdf.GenerateOrderPDF(ctx, po, company, provider)
	if err != nil {
		return fmt.Errorf("generar PDF de la orden: %w", err)
	}
	if po.DocumentPath == "" {
		if path, saveErr := uc.docs.Save(po.Number, pdfBytes); saveErr != nil {
			uc.log.Warn().Err(saveErr).Str("order", po.Number).Msg("no se pudo guardar el PDF")
		} else {
			po.DocumentPath = path
		}
	}

	subject := fmt.Sprintf("Orden de compra %s — %s", po.Number, company.Name)
	body := fmt.Sprintf(
		"Estimado %s:\n\nAdjuntamos la orden de compra %s por un total estimado de %s.\n\nCordialmente,\n%s",
		provider.Name, po.Number, po.TotalEstimate.StringFixed(2), company.Name,
	)
	if err := uc.mailer.SendOrder(ctx, provider.Email, subject, body, pdfBytes, po.Number+".pdf"); err != nil {
		return fmt.Errorf("enviar orden %s: %w", po.Number, err)
	}

	now := time.Now()
	if err := transition(po, entity.OrderStatusSent); err != nil {
		return err
	}
	po.SentAt = &now
	return uc.orderRepo.Update(po)
}

// Receive marca la orden SENT como RECEIVED y aplica el efecto de inventario:
// un movimiento RECEIPT e incremento de stock por cada línea, todo dentro de
// una sola transacción (o se recibe completa, o no se recibe).
func (uc *UseCase) Receive(ctx context.Context, companyID, orderID, actor string) error {
	po, err := uc.loadOwned(companyID, orderID)
	if err != nil {
		return err
	}
	if !order.CanTransition(po.Status, entity.OrderStatusReceived) {
		return domain.ErrInvalidTransition
	}
	if actor == "" {
		actor = "system"
	}

	now := time.Now()
	return uc.txRunner.Run(ctx, func(
		movRepo repository.InventoryMovementRepository,
		productRepo repository.ProductRepository,
		orderRepo repository.PurchaseOrderRepository,
	) error {
		for _, line := range po.Lines {
			product, err := productRepo.GetForUpdate(line.ProductID)
			if err != nil {
				return err
			}
			if product == nil {
				return domain.ErrNotFound
			}
			if err := productRepo.UpdateStock(line.ProductID, product.CurrentStock.Add(line.Quantity)); err != nil {
				return err
			}
			mov := &entity.InventoryMovement{
				ID:        uuid.New().String(),
				CompanyID: companyID,
				ProductID: line.ProductID,
				Type:      entity.MovementTypeRECEIPT,
				Quantity:  line.Quantity,
				UnitCost:  line.UnitPrice,
				Reference: po.Number,
				Date:      now,
				CreatedAt: now,
				CreatedBy: actor,
			}
			if err := movRepo.Create(mov); err != nil {
				return err
			}
		}
		po.Status = entity.OrderStatusReceived
		po.UpdatedAt = now
		return orderRepo.Update(po)
	})
}

// GetByID devuelve una orden del tenant con sus líneas.
func (uc *UseCase) GetByID(ctx context.Context, companyID, orderID string) (*entity.PurchaseOrder, error) {
	return uc.loadOwned(companyID, orderID)
}

// List lista órdenes del tenant con filtros opcionales por estado y origen.
func (uc *UseCase) List(ctx context.Context, companyID string, filter repository.OrderFilter, limit, offset int) ([]*entity.PurchaseOrder, error) {
	if filter.Status != "" && !order.IsValidStatus(filter.Status) {
		return nil, domain.ErrInvalidInput
	}
	return uc.orderRepo.ListByCompany(companyID, filter, limit, offset)
}

func (uc *UseCase) loadOwned(companyID, orderID string) (*entity.PurchaseOrder, error) {
	po, err := uc.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if po == nil {
		return nil, domain.ErrNotFound
	}
	if po.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	return po, nil
}

func transition(po *entity.PurchaseOrder, to string) error {
	if !order.CanTransition(po.Status, to) {
		return domain.ErrInvalidTransition
	}
	po.Status = to
	po.UpdatedAt = time.Now()
	return nil
}
