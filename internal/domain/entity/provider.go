package entity

import "time"

// Provider representa un proveedor de la empresa (destinatario de órdenes de compra).
type Provider struct {
	ID        string
	CompanyID string
	Name      string
	TaxID     string // NIT o Cédula (Colombia)
	Email     string // destinatario del envío de órdenes
	Phone     string
	Address   string
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
