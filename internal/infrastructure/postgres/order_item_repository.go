package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Repuestos-api/internal/domain/entity"
	"github.com/jhoicas/Repuestos-api/internal/domain/repository"
)

var _ repository.OrderItemRepository = (*OrderItemRepo)(nil)

// OrderItemRepo implementación de OrderItemRepository sobre PostgreSQL.
type OrderItemRepo struct {
	q Querier
}

// NewOrderItemRepository construye el adaptador de líneas de pedido.
func NewOrderItemRepository(q Querier) *OrderItemRepo {
	return &OrderItemRepo{q: q}
}

// Create inserta una línea de pedido.
func (r *OrderItemRepo) Create(ctx context.Context, it *entity.OrderItem) error {
	query := `
		INSERT INTO order_items (id, order_id, part_number, description, allocated_qty, requested_qty, available_qty, unit_price)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query,
		it.ID, it.OrderID, it.PartNumber, it.Description, it.AllocatedQty, it.RequestedQty, it.AvailableQty, it.UnitPrice,
	)
	if err != nil {
		return fmt.Errorf("insert order item: %w", err)
	}
	return nil
}

// ListByOrder líneas del pedido en el orden en que se insertaron.
func (r *OrderItemRepo) ListByOrder(ctx context.Context, orderID string) ([]*entity.OrderItem, error) {
	query := `
		SELECT id, order_id, part_number, description, allocated_qty, requested_qty, available_qty, unit_price
		FROM order_items WHERE order_id = $1 ORDER BY seq`
	rows, err := r.q.Query(ctx, query, orderID)
	if err != nil {
		if isInvalidText(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("list order items: %w", err)
	}
	items, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*entity.OrderItem, error) {
		var it entity.OrderItem
		err := row.Scan(&it.ID, &it.OrderID, &it.PartNumber, &it.Description, &it.AllocatedQty, &it.RequestedQty, &it.AvailableQty, &it.UnitPrice)
		return &it, err
	})
	if err != nil {
		return nil, fmt.Errorf("scan order items: %w", err)
	}
	return items, nil
}

// DeleteByOrder borra las líneas de un pedido.
func (r *OrderItemRepo) DeleteByOrder(ctx context.Context, orderID string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM order_items WHERE order_id = $1`, orderID); err != nil {
		return fmt.Errorf("delete order items: %w", err)
	}
	return nil
}

// DeleteByPool borra las líneas de todos los pedidos de un pool.
func (r *OrderItemRepo) DeleteByPool(ctx context.Context, pool string) error {
	query := `DELETE FROM order_items WHERE order_id IN (SELECT id FROM orders WHERE stock_pool = $1)`
	if _, err := r.q.Exec(ctx, query, pool); err != nil {
		return fmt.Errorf("delete order items by pool: %w", err)
	}
	return nil
}

// DeleteAll borra todas las líneas de pedido.
func (r *OrderItemRepo) DeleteAll(ctx context.Context) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM order_items`); err != nil {
		return fmt.Errorf("delete all order items: %w", err)
	}
	return nil
}
