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

var _ repository.OrderRepository = (*OrderRepo)(nil)

const orderColumns = `id, user_id, stock_pool, total_price, status, stock_restored, created_at, updated_at`

// OrderRepo implementación de OrderRepository sobre PostgreSQL.
type OrderRepo struct {
	q Querier
}

// NewOrderRepository construye el adaptador de pedidos.
func NewOrderRepository(q Querier) *OrderRepo {
	return &OrderRepo{q: q}
}

// Create inserta la cabecera del pedido.
func (r *OrderRepo) Create(ctx context.Context, o *entity.Order) error {
	query := `
		INSERT INTO orders (` + orderColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query,
		o.ID, o.UserID, o.StockPool, o.TotalPrice, string(o.Status), o.StockRestored, o.CreatedAt, o.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert order: %w", err)
	}
	return nil
}

// GetByID obtiene un pedido por ID.
func (r *OrderRepo) GetByID(ctx context.Context, id string) (*entity.Order, error) {
	return r.get(ctx, `SELECT `+orderColumns+` FROM orders WHERE id = $1`, id)
}

// GetForUpdate obtiene el pedido y bloquea la fila (SELECT FOR UPDATE).
func (r *OrderRepo) GetForUpdate(ctx context.Context, id string) (*entity.Order, error) {
	return r.get(ctx, `SELECT `+orderColumns+` FROM orders WHERE id = $1 FOR UPDATE`, id)
}

func (r *OrderRepo) get(ctx context.Context, query, id string) (*entity.Order, error) {
	o, err := scanOrder(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) || isInvalidText(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get order: %w", err)
	}
	return o, nil
}

// UpdateTotal fija el total del pedido.
func (r *OrderRepo) UpdateTotal(ctx context.Context, id string, total decimal.Decimal) error {
	_, err := r.q.Exec(ctx, `UPDATE orders SET total_price = $2, updated_at = now() WHERE id = $1`, id, total)
	if err != nil {
		return fmt.Errorf("update order total: %w", err)
	}
	return nil
}

// UpdateStatus cambia el estado y la marca de stock restaurado.
func (r *OrderRepo) UpdateStatus(ctx context.Context, id string, status entity.OrderStatus, stockRestored bool) error {
	query := `UPDATE orders SET status = $2, stock_restored = $3, updated_at = now() WHERE id = $1`
	if _, err := r.q.Exec(ctx, query, id, string(status), stockRestored); err != nil {
		return fmt.Errorf("update order status: %w", err)
	}
	return nil
}

// Delete borra la cabecera del pedido.
func (r *OrderRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM orders WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete order: %w", err)
	}
	return nil
}

// DeleteByPool borra todas las cabeceras de un pool.
func (r *OrderRepo) DeleteByPool(ctx context.Context, pool string) (int64, error) {
	tag, err := r.q.Exec(ctx, `DELETE FROM orders WHERE stock_pool = $1`, pool)
	if err != nil {
		return 0, fmt.Errorf("delete orders by pool: %w", err)
	}
	return tag.RowsAffected(), nil
}

// DeleteAll borra todo el historial de pedidos.
func (r *OrderRepo) DeleteAll(ctx context.Context) (int64, error) {
	tag, err := r.q.Exec(ctx, `DELETE FROM orders`)
	if err != nil {
		return 0, fmt.Errorf("delete all orders: %w", err)
	}
	return tag.RowsAffected(), nil
}

// List lista pedidos del pool (todos si pool es vacío), más recientes primero.
func (r *OrderRepo) List(ctx context.Context, pool string) ([]*entity.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders
		WHERE ($1::text = '' OR stock_pool = $1)
		ORDER BY created_at DESC`
	rows, err := r.q.Query(ctx, query, pool)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	return collectOrders(rows)
}

// ListByUser pedidos de un usuario, más recientes primero.
func (r *OrderRepo) ListByUser(ctx context.Context, userID string) ([]*entity.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE user_id = $1 ORDER BY created_at DESC`
	rows, err := r.q.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list orders by user: %w", err)
	}
	return collectOrders(rows)
}

func scanOrder(row pgx.Row) (*entity.Order, error) {
	var o entity.Order
	var status string
	err := row.Scan(&o.ID, &o.UserID, &o.StockPool, &o.TotalPrice, &status, &o.StockRestored, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		return nil, err
	}
	o.Status = entity.OrderStatus(status)
	return &o, nil
}

func collectOrders(rows pgx.Rows) ([]*entity.Order, error) {
	defer rows.Close()
	var list []*entity.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		list = append(list, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate orders: %w", err)
	}
	return list, nil
}
