package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// CartItem línea del carrito de un usuario (una por repuesto). UnitPrice ya incluye
// el ajuste de precio del cliente al momento de agregarla.
type CartItem struct {
	ID          string
	UserID      string
	PartNumber  string
	Description string
	Qty         int64
	UnitPrice   decimal.Decimal
	CreatedAt   time.Time
}
