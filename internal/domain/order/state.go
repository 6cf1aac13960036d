// Package order define la máquina de estados de las órdenes de compra.
// Una sola máquina cubre los tres orígenes (manual, disparo inmediato y barrido):
//
//	DRAFT ──────────────► PENDING_APPROVAL ──► APPROVED ──► SENT ──► RECEIVED
//	                            │                  │          ▲
//	                            ▼                  ▼          │
//	PENDING_REVIEW ──────► CANCELLED ◄─────────────┘          │
//	      └───────────────────────────────────────────────────┘
//
// PENDING_REVIEW es el estado inicial de las órdenes del barrido y puede pasar
// directamente a SENT o a CANCELLED. RECEIVED y CANCELLED son terminales.
package order

import "github.com/jhoicas/Compras-api/internal/domain/entity"

var transitions = map[string][]string{
	entity.OrderStatusDraft:           {entity.OrderStatusPendingApproval},
	entity.OrderStatusPendingReview:   {entity.OrderStatusSent, entity.OrderStatusCancelled},
	entity.OrderStatusPendingApproval: {entity.OrderStatusApproved, entity.OrderStatusCancelled},
	entity.OrderStatusApproved:        {entity.OrderStatusSent, entity.OrderStatusCancelled},
	entity.OrderStatusSent:            {entity.OrderStatusReceived},
	entity.OrderStatusReceived:        nil,
	entity.OrderStatusCancelled:       nil,
}

// CanTransition indica si el cambio de estado from → to está permitido.
func CanTransition(from, to string) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// IsTerminal indica si el estado no admite más transiciones.
func IsTerminal(status string) bool {
	allowed, ok := transitions[status]
	return ok && len(allowed) == 0
}

// IsValidStatus indica si el estado pertenece a la máquina.
func IsValidStatus(status string) bool {
	_, ok := transitions[status]
	return ok
}
