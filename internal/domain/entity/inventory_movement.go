package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimiento de inventario.
const (
	MovementTypeIN         = "IN"         // entrada
	MovementTypeOUT        = "OUT"        // salida
	MovementTypeADJUSTMENT = "ADJUSTMENT" // ajuste (signo según cantidad)
	MovementTypeRECEIPT    = "RECEIPT"    // recepción de orden de compra
)

// InventoryMovement representa un movimiento del libro de inventario.
// Quantity es positivo para entradas/recepciones y negativo para salidas.
type InventoryMovement struct {
	ID        string
	CompanyID string
	ProductID string
	Type      string
	Quantity  decimal.Decimal
	UnitCost  decimal.Decimal
	Reference string // orden de compra, factura, nota de ajuste, etc.
	Date      time.Time
	CreatedAt time.Time
	CreatedBy string // UserID o actor del sistema
}
