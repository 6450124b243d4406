package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CustomerProfileResponse pool asignado y ajuste de precio. IsDefault indica que el cliente
// no tiene perfil guardado y se le aplican los valores por defecto.
type CustomerProfileResponse struct {
	UserID             string          `json:"user_id"`
	AssignedPool       string          `json:"assigned_pool"`
	PriceAdjustmentPct decimal.Decimal `json:"price_adjustment_pct"`
	IsDefault          bool            `json:"is_default"`
	UpdatedAt          *time.Time      `json:"updated_at,omitempty"`
}

// SetPoolRequest body para PUT /api/admin/customers/:id/pool.
type SetPoolRequest struct {
	Pool string `json:"pool" validate:"required"`
}

// SetPriceAdjustmentRequest body para PUT /api/admin/customers/:id/price-adjustment.
type SetPriceAdjustmentRequest struct {
	Percent decimal.Decimal `json:"percent"`
}
