package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderLineResponse línea de pedido: solicitado, disponible al crear (snapshot) y asignado.
type OrderLineResponse struct {
	PartNumber   string          `json:"part_number"`
	Description  string          `json:"description"`
	RequestedQty int64           `json:"requested_qty"`
	AvailableQty int64           `json:"available_qty"`
	AllocatedQty int64           `json:"allocated_qty"`
	Status       string          `json:"status,omitempty"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
	LineTotal    decimal.Decimal `json:"line_total"`
}

// OrderCreatedResponse resultado de confirmar un pedido.
type OrderCreatedResponse struct {
	OrderID    string              `json:"order_id"`
	StockPool  string              `json:"stock_pool"`
	Status     string              `json:"status"`
	TotalPrice decimal.Decimal     `json:"total_price"`
	Lines      []OrderLineResponse `json:"lines"`
}

// OrderResponse cabecera de pedido.
type OrderResponse struct {
	ID            string          `json:"id"`
	UserID        string          `json:"user_id"`
	StockPool     string          `json:"stock_pool"`
	TotalPrice    decimal.Decimal `json:"total_price"`
	Status        string          `json:"status"`
	StockRestored bool            `json:"stock_restored"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// OrderDetailResponse cabecera más líneas (GET /api/orders/:id).
type OrderDetailResponse struct {
	OrderResponse
	Items []OrderLineResponse `json:"items"`
}

// UpdateOrderStatusRequest body para PATCH /api/admin/orders/:id/status.
type UpdateOrderStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=Pending Accepted Rejected"`
}
