package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Compras-api/internal/domain/entity"
)

// EnabledRuleRow fila del join regla + producto + proveedor que consume el
// motor de reposición. Todo en una sola consulta para el barrido.
type EnabledRuleRow struct {
	Rule          entity.ReorderRule
	ProductName   string
	CurrentStock  decimal.Decimal
	UnitPrice     decimal.Decimal
	ProviderName  string
	ProviderEmail string
}

// ReorderRuleRepository define el puerto de persistencia para ReorderRule (DIP).
// Upsert implementa el contrato idempotente de creación: si ya existe una regla
// para (company, product, provider), reemplaza umbral/cantidad/flags.
type ReorderRuleRepository interface {
	Upsert(rule *entity.ReorderRule) error
	GetByID(id string) (*entity.ReorderRule, error)
	// GetEnabledByProduct devuelve la regla habilitada del producto, o nil si no hay.
	GetEnabledByProduct(companyID, productID string) (*entity.ReorderRule, error)
	SetEnabled(id string, enabled bool) error
	Delete(id string) error
	ListByCompany(companyID string, limit, offset int) ([]*entity.ReorderRule, error)

	// ListEnabledWithStock devuelve todas las reglas habilitadas de la empresa con
	// stock actual, precio y datos del proveedor (consulta única del barrido).
	ListEnabledWithStock(ctx context.Context, companyID string) ([]EnabledRuleRow, error)
}
