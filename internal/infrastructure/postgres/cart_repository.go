package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Repuestos-api/internal/domain/entity"
	"github.com/jhoicas/Repuestos-api/internal/domain/repository"
)

var _ repository.CartRepository = (*CartRepo)(nil)

const cartColumns = `id, user_id, part_number, description, qty, unit_price, created_at`

// CartRepo implementación de CartRepository sobre PostgreSQL.
type CartRepo struct {
	q Querier
}

// NewCartRepository construye el adaptador del carrito.
func NewCartRepository(q Querier) *CartRepo {
	return &CartRepo{q: q}
}

// Upsert inserta la línea o suma la cantidad a la existente (único por usuario y repuesto).
// El precio y la descripción se actualizan con los del último agregado.
func (r *CartRepo) Upsert(ctx context.Context, item *entity.CartItem) (*entity.CartItem, error) {
	if item.ID == "" {
		item.ID = uuid.New().String()
	}
	query := `
		INSERT INTO cart_items (` + cartColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, now())
		ON CONFLICT (user_id, part_number)
		DO UPDATE SET qty = cart_items.qty + EXCLUDED.qty,
		              unit_price = EXCLUDED.unit_price,
		              description = EXCLUDED.description
		RETURNING ` + cartColumns
	out, err := scanCartItem(r.q.QueryRow(ctx, query,
		item.ID, item.UserID, item.PartNumber, item.Description, item.Qty, item.UnitPrice,
	))
	if err != nil {
		return nil, fmt.Errorf("upsert cart item: %w", err)
	}
	return out, nil
}

// GetByID obtiene una línea del carrito.
func (r *CartRepo) GetByID(ctx context.Context, id string) (*entity.CartItem, error) {
	it, err := scanCartItem(r.q.QueryRow(ctx, `SELECT `+cartColumns+` FROM cart_items WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) || isInvalidText(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get cart item: %w", err)
	}
	return it, nil
}

// ListByUser líneas del carrito del usuario en orden de alta.
func (r *CartRepo) ListByUser(ctx context.Context, userID string) ([]*entity.CartItem, error) {
	rows, err := r.q.Query(ctx, `SELECT `+cartColumns+` FROM cart_items WHERE user_id = $1 ORDER BY created_at, id`, userID)
	if err != nil {
		return nil, fmt.Errorf("list cart: %w", err)
	}
	defer rows.Close()
	var list []*entity.CartItem
	for rows.Next() {
		it, err := scanCartItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan cart item: %w", err)
		}
		list = append(list, it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate cart: %w", err)
	}
	return list, nil
}

// UpdateQty reemplaza la cantidad de una línea.
func (r *CartRepo) UpdateQty(ctx context.Context, id string, qty int64) error {
	if _, err := r.q.Exec(ctx, `UPDATE cart_items SET qty = $2 WHERE id = $1`, id, qty); err != nil {
		return fmt.Errorf("update cart qty: %w", err)
	}
	return nil
}

// Delete borra una línea del carrito.
func (r *CartRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM cart_items WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete cart item: %w", err)
	}
	return nil
}

// DeleteByIDs borra las líneas indicadas del usuario; ids ajenos se ignoran.
func (r *CartRepo) DeleteByIDs(ctx context.Context, userID string, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	query := `DELETE FROM cart_items WHERE user_id = $1 AND id::text = ANY($2::text[])`
	if _, err := r.q.Exec(ctx, query, userID, ids); err != nil {
		return fmt.Errorf("delete cart items: %w", err)
	}
	return nil
}

// DeleteByUser vacía el carrito del usuario.
func (r *CartRepo) DeleteByUser(ctx context.Context, userID string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM cart_items WHERE user_id = $1`, userID); err != nil {
		return fmt.Errorf("clear cart: %w", err)
	}
	return nil
}

func scanCartItem(row pgx.Row) (*entity.CartItem, error) {
	var it entity.CartItem
	err := row.Scan(&it.ID, &it.UserID, &it.PartNumber, &it.Description, &it.Qty, &it.UnitPrice, &it.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &it, nil
}
