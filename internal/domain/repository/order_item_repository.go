package repository

import (
	"context"

	"github.com/jhoicas/Repuestos-api/internal/domain/entity"
)

// OrderItemRepository líneas de pedido; solo se insertan y se borran junto con su pedido.
type OrderItemRepository interface {
	Create(ctx context.Context, item *entity.OrderItem) error
	ListByOrder(ctx context.Context, orderID string) ([]*entity.OrderItem, error)
	DeleteByOrder(ctx context.Context, orderID string) error
	DeleteByPool(ctx context.Context, pool string) error
	DeleteAll(ctx context.Context) error
}
