package rule

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Compras-api/internal/domain"
	"github.com/jhoicas/Compras-api/internal/domain/entity"
	"github.com/jhoicas/Compras-api/internal/domain/repository"
)

// UseCase gestiona las reglas de reposición: alta idempotente (upsert por
// producto+proveedor), edición, habilitar/deshabilitar y borrado. Las
// validaciones de umbral y cantidad se rechazan aquí, en el borde.
type UseCase struct {
	ruleRepo     repository.ReorderRuleRepository
	productRepo  repository.ProductRepository
	providerRepo repository.ProviderRepository
}

// NewUseCase construye el caso de uso de reglas.
func NewUseCase(
	ruleRepo repository.ReorderRuleRepository,
	productRepo repository.ProductRepository,
	providerRepo repository.ProviderRepository,
) *UseCase {
	return &UseCase{
		ruleRepo:     ruleRepo,
		productRepo:  productRepo,
		providerRepo: providerRepo,
	}
}

// Input parámetros para crear o actualizar una regla.
type Input struct {
	ProductID        string
	ProviderID       string
	TriggerStock     decimal.Decimal
	ReorderQuantity  decimal.Decimal
	RequiresApproval bool
	Enabled          bool
}

func (in Input) validate() error {
	if in.ProductID == "" || in.ProviderID == "" {
		return domain.ErrInvalidInput
	}
	if in.TriggerStock.IsNegative() {
		return domain.ErrInvalidInput
	}
	if !in.ReorderQuantity.GreaterThan(decimal.Zero) {
		return domain.ErrInvalidInput
	}
	return nil
}

// Create da de alta una regla. Si ya existe una para (producto, proveedor) de
// la empresa, la reemplaza (contrato idempotente de creación, no un error).
func (uc *UseCase) Create(ctx context.Context, companyID string, in Input) (*entity.ReorderRule, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	if err := uc.checkReferences(companyID, in.ProductID, in.ProviderID); err != nil {
		return nil, err
	}

	now := time.Now()
	r := &entity.ReorderRule{
		ID:               uuid.New().String(),
		CompanyID:        companyID,
		ProductID:        in.ProductID,
		ProviderID:       in.ProviderID,
		TriggerStock:     in.TriggerStock,
		ReorderQuantity:  in.ReorderQuantity,
		RequiresApproval: in.RequiresApproval,
		Enabled:          in.Enabled,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if err := uc.ruleRepo.Upsert(r); err != nil {
		return nil, err
	}
	return r, nil
}

// Update modifica una regla existente por ID.
func (uc *UseCase) Update(ctx context.Context, companyID, ruleID string, in Input) (*entity.ReorderRule, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	existing, err := uc.loadOwned(companyID, ruleID)
	if err != nil {
		return nil, err
	}
	if err := uc.checkReferences(companyID, in.ProductID, in.ProviderID); err != nil {
		return nil, err
	}

	existing.ProductID = in.ProductID
	existing.ProviderID = in.ProviderID
	existing.TriggerStock = in.TriggerStock
	existing.ReorderQuantity = in.ReorderQuantity
	existing.RequiresApproval = in.RequiresApproval
	existing.Enabled = in.Enabled
	existing.UpdatedAt = time.Now()
	if err := uc.ruleRepo.Upsert(existing); err != nil {
		return nil, err
	}
	return existing, nil
}

// Toggle habilita o deshabilita una regla. Una regla deshabilitada queda
// excluida del siguiente barrido, nunca retroactivamente del que ya corrió.
func (uc *UseCase) Toggle(ctx context.Context, companyID, ruleID string, enabled bool) error {
	if _, err := uc.loadOwned(companyID, ruleID); err != nil {
		return err
	}
	return uc.ruleRepo.SetEnabled(ruleID, enabled)
}

// Delete elimina una regla.
func (uc *UseCase) Delete(ctx context.Context, companyID, ruleID string) error {
	if _, err := uc.loadOwned(companyID, ruleID); err != nil {
		return err
	}
	return uc.ruleRepo.Delete(ruleID)
}

// GetByID devuelve una regla del tenant.
func (uc *UseCase) GetByID(ctx context.Context, companyID, ruleID string) (*entity.ReorderRule, error) {
	return uc.loadOwned(companyID, ruleID)
}

// GetByProduct devuelve la regla habilitada de un producto del tenant.
// Sin regla habilitada devuelve ErrNotFound.
func (uc *UseCase) GetByProduct(ctx context.Context, companyID, productID string) (*entity.ReorderRule, error) {
	product, err := uc.productRepo.GetByID(productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	if product.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	r, err := uc.ruleRepo.GetEnabledByProduct(companyID, productID)
	if err != nil {
		return nil, err
	}
	if r == nil {
		return nil, domain.ErrNotFound
	}
	return r, nil
}

// ListByCompany lista las reglas del tenant con paginación.
func (uc *UseCase) ListByCompany(ctx context.Context, companyID string, limit, offset int) ([]*entity.ReorderRule, error) {
	return uc.ruleRepo.ListByCompany(companyID, limit, offset)
}

// checkReferences valida que producto y proveedor existan y sean del tenant.
func (uc *UseCase) checkReferences(companyID, productID, providerID string) error {
	product, err := uc.productRepo.GetByID(productID)
	if err != nil {
		return err
	}
	if product == nil {
		return domain.ErrNotFound
	}
	if product.CompanyID != companyID {
		return domain.ErrForbidden
	}
	provider, err := uc.providerRepo.GetByID(providerID)
	if err != nil {
		return err
	}
	if provider == nil {
		return domain.ErrNotFound
	}
	if provider.CompanyID != companyID {
		return domain.ErrForbidden
	}
	return nil
}

func (uc *UseCase) loadOwned(companyID, ruleID string) (*entity.ReorderRule, error) {
	r, err := uc.ruleRepo.GetByID(ruleID)
	if err != nil {
		return nil, err
	}
	if r == nil {
		return nil, domain.ErrNotFound
	}
	if r.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	return r, nil
}
