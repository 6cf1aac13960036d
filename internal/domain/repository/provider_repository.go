package repository

import "github.com/jhoicas/Compras-api/internal/domain/entity"

// ProviderRepository define el puerto de persistencia para Provider (DIP).
type ProviderRepository interface {
	Create(provider *entity.Provider) error
	GetByID(id string) (*entity.Provider, error)
	Update(provider *entity.Provider) error
	ListByCompany(companyID string, limit, offset int) ([]*entity.Provider, error)
}
