package repository

import "github.com/jhoicas/Compras-api/internal/domain/entity"

// CompanyRepository define el puerto de persistencia para Company (DIP).
// ListActive alimenta el planificador del barrido (una corrida por tenant activo).
type CompanyRepository interface {
	Create(company *entity.Company) error
	GetByID(id string) (*entity.Company, error)
	ListActive() ([]*entity.Company, error)
}
