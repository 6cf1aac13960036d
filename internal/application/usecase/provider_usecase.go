package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Compras-api/internal/domain"
	"github.com/jhoicas/Compras-api/internal/domain/entity"
	"github.com/jhoicas/Compras-api/internal/domain/repository"
)

// ProviderUseCase CRUD de proveedores.
type ProviderUseCase struct {
	providerRepo repository.ProviderRepository
}

// NewProviderUseCase construye el caso de uso.
func NewProviderUseCase(providerRepo repository.ProviderRepository) *ProviderUseCase {
	return &ProviderUseCase{providerRepo: providerRepo}
}

// ProviderInput datos de alta/edición de proveedor.
type ProviderInput struct {
	Name    string
	TaxID   string
	Email   string
	Phone   string
	Address string
}

// Create da de alta un proveedor activo.
func (uc *ProviderUseCase) Create(ctx context.Context, companyID string, in ProviderInput) (*entity.Provider, error) {
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	p := &entity.Provider{
		ID:        uuid.New().String(),
		CompanyID: companyID,
		Name:      in.Name,
		TaxID:     in.TaxID,
		Email:     in.Email,
		Phone:     in.Phone,
		Address:   in.Address,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.providerRepo.Create(p); err != nil {
		return nil, err
	}
	return p, nil
}

// GetByID devuelve un proveedor del tenant.
func (uc *ProviderUseCase) GetByID(ctx context.Context, companyID, id string) (*entity.Provider, error) {
	p, err := uc.providerRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	if p.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	return p, nil
}

// Update edita los datos de contacto del proveedor.
func (uc *ProviderUseCase) Update(ctx context.Context, companyID, id string, in ProviderInput) (*entity.Provider, error) {
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	p, err := uc.GetByID(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	p.Name = in.Name
	p.TaxID = in.TaxID
	p.Email = in.Email
	p.Phone = in.Phone
	p.Address = in.Address
	p.UpdatedAt = time.Now()
	if err := uc.providerRepo.Update(p); err != nil {
		return nil, err
	}
	return p, nil
}

// ListByCompany lista proveedores del tenant con paginación.
func (uc *ProviderUseCase) ListByCompany(ctx context.Context, companyID string, limit, offset int) ([]*entity.Provider, error) {
	return uc.providerRepo.ListByCompany(companyID, limit, offset)
}
