package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto o SKU del catálogo de compras.
// CurrentStock es el saldo autoritativo del libro de inventario; solo se modifica
// vía movimientos (application/inventory) o por la recepción de una orden de compra.
type Product struct {
	ID           string
	CompanyID    string
	SKU          string // código único por empresa
	Name         string
	Description  string
	Price        decimal.Decimal // precio unitario de compra estimado
	CurrentStock decimal.Decimal
	UnitMeasure  string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
