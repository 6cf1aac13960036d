package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Origen de una orden de compra.
const (
	OrderOriginManual           = "MANUAL"            // creada por un usuario
	OrderOriginImmediateTrigger = "IMMEDIATE_TRIGGER" // disparada por un movimiento de salida
	OrderOriginBatchSweep       = "BATCH_SWEEP"       // generada por el barrido programado
)

// Estados de una orden de compra (máquina de estados en domain/order).
const (
	OrderStatusDraft           = "DRAFT"
	OrderStatusPendingReview   = "PENDING_REVIEW" // estado inicial de órdenes del barrido
	OrderStatusPendingApproval = "PENDING_APPROVAL"
	OrderStatusApproved        = "APPROVED"
	OrderStatusSent            = "SENT"
	OrderStatusReceived        = "RECEIVED"
	OrderStatusCancelled       = "CANCELLED"
)

// PurchaseOrder representa una orden de compra a un proveedor, sea manual o
// generada por el motor de reposición. TotalEstimate es un snapshot al momento
// de crear la orden (suma de cantidad × precio unitario de cada línea); no se
// recalcula después.
type PurchaseOrder struct {
	ID            string
	CompanyID     string
	ProviderID    string
	Number        string // OC-<ULID>, único por empresa
	Origin        string
	Status        string
	Lines         []OrderLine
	TotalEstimate decimal.Decimal
	Notes         string
	DocumentPath  string // ruta del PDF generado (vacío si la generación falló)
	CreatedAt     time.Time
	ApprovedAt    *time.Time
	ApprovedBy    string
	SentAt        *time.Time
	UpdatedAt     time.Time
}

// OrderLine línea de una orden de compra. Nombre y precio unitario son
// snapshots tomados al generar la orden, no referencias vivas al producto.
type OrderLine struct {
	ID          string
	OrderID     string
	ProductID   string
	ProductName string
	Quantity    decimal.Decimal
	UnitPrice   decimal.Decimal
}

// ComputeTotal suma cantidad × precio unitario de cada línea.
func ComputeTotal(lines []OrderLine) decimal.Decimal {
	total := decimal.Zero
	for _, l := range lines {
		total = total.Add(l.Quantity.Mul(l.UnitPrice))
	}
	return total
}
