package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Repuestos-api/internal/domain/entity"
)

// CustomerProfileRepository pool asignado y ajuste de precio por cliente.
// Get devuelve (nil, nil) si el cliente no tiene perfil.
type CustomerProfileRepository interface {
	Get(ctx context.Context, userID string) (*entity.CustomerProfile, error)
	UpsertPool(ctx context.Context, userID, pool string) error
	UpsertPriceAdjustment(ctx context.Context, userID string, pct decimal.Decimal) error
	List(ctx context.Context) ([]*entity.CustomerProfile, error)
}
