package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Repuestos-api/internal/domain/entity"
	"github.com/jhoicas/Repuestos-api/internal/domain/repository"
)

var _ repository.CustomerProfileRepository = (*CustomerProfileRepo)(nil)

const profileColumns = `user_id, COALESCE(assigned_pool, ''), price_adjustment_pct, updated_at`

// CustomerProfileRepo implementación de CustomerProfileRepository sobre PostgreSQL.
type CustomerProfileRepo struct {
	q Querier
}

// NewCustomerProfileRepository construye el adaptador de perfiles.
func NewCustomerProfileRepository(q Querier) *CustomerProfileRepo {
	return &CustomerProfileRepo{q: q}
}

// Get devuelve el perfil o (nil, nil) si el cliente no tiene uno.
func (r *CustomerProfileRepo) Get(ctx context.Context, userID string) (*entity.CustomerProfile, error) {
	var p entity.CustomerProfile
	err := r.q.QueryRow(ctx, `SELECT `+profileColumns+` FROM customer_profiles WHERE user_id = $1`, userID).
		Scan(&p.UserID, &p.AssignedPool, &p.PriceAdjustmentPct, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get customer profile: %w", err)
	}
	return &p, nil
}

// UpsertPool asigna el pool de stock del cliente.
func (r *CustomerProfileRepo) UpsertPool(ctx context.Context, userID, pool string) error {
	query := `
		INSERT INTO customer_profiles (user_id, assigned_pool, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (user_id) DO UPDATE SET assigned_pool = EXCLUDED.assigned_pool, updated_at = now()`
	if _, err := r.q.Exec(ctx, query, userID, pool); err != nil {
		return fmt.Errorf("upsert customer pool: %w", err)
	}
	return nil
}

// UpsertPriceAdjustment fija el ajuste porcentual de precio del cliente.
func (r *CustomerProfileRepo) UpsertPriceAdjustment(ctx context.Context, userID string, pct decimal.Decimal) error {
	query := `
		INSERT INTO customer_profiles (user_id, price_adjustment_pct, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (user_id) DO UPDATE SET price_adjustment_pct = EXCLUDED.price_adjustment_pct, updated_at = now()`
	if _, err := r.q.Exec(ctx, query, userID, pct); err != nil {
		return fmt.Errorf("upsert price adjustment: %w", err)
	}
	return nil
}

// List todos los perfiles ordenados por usuario.
func (r *CustomerProfileRepo) List(ctx context.Context) ([]*entity.CustomerProfile, error) {
	rows, err := r.q.Query(ctx, `SELECT `+profileColumns+` FROM customer_profiles ORDER BY user_id`)
	if err != nil {
		return nil, fmt.Errorf("list customer profiles: %w", err)
	}
	list, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*entity.CustomerProfile, error) {
		var p entity.CustomerProfile
		err := row.Scan(&p.UserID, &p.AssignedPool, &p.PriceAdjustmentPct, &p.UpdatedAt)
		return &p, err
	})
	if err != nil {
		return nil, fmt.Errorf("scan customer profiles: %w", err)
	}
	return list, nil
}
