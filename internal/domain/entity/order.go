package entity

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Repuestos-api/internal/domain"
)

// OrderStatus estados válidos de un pedido. Borrar un pedido no es un estado.
type OrderStatus string

const (
	OrderStatusPending  OrderStatus = "Pending"
	OrderStatusAccepted OrderStatus = "Accepted"
	OrderStatusRejected OrderStatus = "Rejected"
)

// orderTransitions tabla de transiciones permitidas (además de repetir el estado actual,
// que siempre es un no-op). Rejected es terminal: el stock ya fue devuelto.
var orderTransitions = map[OrderStatus][]OrderStatus{
	OrderStatusPending:  {OrderStatusAccepted, OrderStatusRejected},
	OrderStatusAccepted: {OrderStatusRejected},
	OrderStatusRejected: {},
}

// ParseOrderStatus convierte un string en OrderStatus.
func ParseOrderStatus(s string) (OrderStatus, error) {
	st := OrderStatus(s)
	if _, ok := orderTransitions[st]; !ok {
		return "", fmt.Errorf("%w: estado %q", domain.ErrInvalidInput, s)
	}
	return st, nil
}

// CanTransitionTo indica si next es alcanzable desde s.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	if s == next {
		return true
	}
	for _, allowed := range orderTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Order cabecera de pedido. TotalPrice se fija una sola vez al crear el pedido.
// StockRestored queda en true cuando las cantidades asignadas ya se devolvieron al stock.
type Order struct {
	ID            string
	UserID        string
	StockPool     string
	TotalPrice    decimal.Decimal
	Status        OrderStatus
	StockRestored bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Transition efecto de aplicar un cambio de estado sobre un pedido.
type Transition struct {
	From         OrderStatus
	To           OrderStatus
	NoOp         bool
	RestoreStock bool
}

// PlanTransition valida el cambio de estado y decide si hay que devolver stock.
// Solo se devuelve stock al entrar en Rejected y una única vez por pedido.
func (o *Order) PlanTransition(to OrderStatus) (Transition, error) {
	if !o.Status.CanTransitionTo(to) {
		return Transition{}, fmt.Errorf("%w: %s -> %s", domain.ErrInvalidTransition, o.Status, to)
	}
	return Transition{
		From:         o.Status,
		To:           to,
		NoOp:         o.Status == to,
		RestoreStock: to == OrderStatusRejected && o.Status != OrderStatusRejected && !o.StockRestored,
	}, nil
}

// NeedsRestoreOnDelete indica si borrar el pedido debe devolver stock.
func (o *Order) NeedsRestoreOnDelete() bool {
	return !o.StockRestored
}
