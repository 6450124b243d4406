package inventory

import "github.com/shopspring/decimal"

var hundred = decimal.NewFromInt(100)

// AdjustPrice aplica el ajuste porcentual del cliente: base * (1 + pct/100).
// El redondeo a 2 decimales se hace después del ajuste, nunca antes.
func AdjustPrice(base, pct decimal.Decimal) decimal.Decimal {
	if pct.IsZero() {
		return base.Round(2)
	}
	factor := decimal.NewFromInt(1).Add(pct.Div(hundred))
	return base.Mul(factor).Round(2)
}
