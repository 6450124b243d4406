package entity

import "github.com/shopspring/decimal"

// OrderItem línea inmutable de un pedido. AllocatedQty es lo que realmente se descontó
// del stock; AvailableQty queda congelado con el valor leído al crear el pedido.
type OrderItem struct {
	ID           string
	OrderID      string
	PartNumber   string
	Description  string
	AllocatedQty int64
	RequestedQty int64
	AvailableQty int64
	UnitPrice    decimal.Decimal
}

// LineTotal devuelve AllocatedQty * UnitPrice.
func (i *OrderItem) LineTotal() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(i.AllocatedQty))
}
