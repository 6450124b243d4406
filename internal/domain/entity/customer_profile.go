package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// CustomerProfile configuración comercial de un cliente: pool asignado y ajuste de precio
// en porcentaje (positivo = recargo, negativo = descuento).
type CustomerProfile struct {
	UserID             string
	AssignedPool       string
	PriceAdjustmentPct decimal.Decimal
	UpdatedAt          time.Time
}
