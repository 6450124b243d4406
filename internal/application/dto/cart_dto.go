package dto

import "github.com/shopspring/decimal"

// AddCartItemRequest body para POST /api/cart.
type AddCartItemRequest struct {
	PartNumber string `json:"part_number" validate:"required"`
	Qty        int64  `json:"qty" validate:"gt=0"`
}

// UpdateCartItemRequest body para PUT /api/cart/:id.
type UpdateCartItemRequest struct {
	Qty int64 `json:"qty" validate:"gt=0"`
}

// CheckoutRequest body para POST /api/cart/checkout. Sin ids se piden todas las líneas.
type CheckoutRequest struct {
	CartItemIDs []string `json:"cart_item_ids"`
}

// CartLineResponse línea del carrito con la vista previa de asignación contra el stock actual.
type CartLineResponse struct {
	ID           string          `json:"id"`
	PartNumber   string          `json:"part_number"`
	Description  string          `json:"description"`
	Qty          int64           `json:"qty"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
	AvailableQty int64           `json:"available_qty"`
	AllocatedQty int64           `json:"allocated_qty"`
	Status       string          `json:"status"`
	LineTotal    decimal.Decimal `json:"line_total"`
}

// CartResponse carrito completo. TotalRequested valora lo pedido; TotalAllocated lo asignable hoy.
type CartResponse struct {
	Items          []CartLineResponse `json:"items"`
	TotalRequested decimal.Decimal    `json:"total_requested"`
	TotalAllocated decimal.Decimal    `json:"total_allocated"`
}
