package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Compras-api/internal/domain"
	"github.com/jhoicas/Compras-api/internal/domain/entity"
	"github.com/jhoicas/Compras-api/internal/domain/repository"
)

// ProductUseCase CRUD de productos. El stock NO se edita aquí: solo cambia por
// movimientos de inventario o recepción de órdenes.
type ProductUseCase struct {
	productRepo repository.ProductRepository
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(productRepo repository.ProductRepository) *ProductUseCase {
	return &ProductUseCase{productRepo: productRepo}
}

// ProductInput datos de alta/edición de producto.
type ProductInput struct {
	SKU         string
	Name        string
	Description string
	Price       decimal.Decimal
	UnitMeasure string
}

// Create da de alta un producto con stock inicial cero.
func (uc *ProductUseCase) Create(ctx context.Context, companyID string, in ProductInput) (*entity.Product, error) {
	if in.SKU == "" || in.Name == "" || in.Price.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	p := &entity.Product{
		ID:           uuid.New().String(),
		CompanyID:    companyID,
		SKU:          in.SKU,
		Name:         in.Name,
		Description:  in.Description,
		Price:        in.Price,
		CurrentStock: decimal.Zero,
		UnitMeasure:  in.UnitMeasure,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.productRepo.Create(p); err != nil {
		return nil, err
	}
	return p, nil
}

// GetByID devuelve un producto del tenant.
func (uc *ProductUseCase) GetByID(ctx context.Context, companyID, id string) (*entity.Product, error) {
	p, err := uc.productRepo.GetByID(id)
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

// Update edita nombre, descripción, precio y unidad de medida.
func (uc *ProductUseCase) Update(ctx context.Context, companyID, id string, in ProductInput) (*entity.Product, error) {
	if in.Name == "" || in.Price.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	p, err := uc.GetByID(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	p.Name = in.Name
	p.Description = in.Description
	p.Price = in.Price
	p.UnitMeasure = in.UnitMeasure
	p.UpdatedAt = time.Now()
	if err := uc.productRepo.Update(p); err != nil {
		return nil, err
	}
	return p, nil
}

// ListByCompany lista productos del tenant con paginación.
func (uc *ProductUseCase) ListByCompany(ctx context.Context, companyID string, limit, offset int) ([]*entity.Product, error) {
	return uc.productRepo.ListByCompany(companyID, limit, offset)
}
