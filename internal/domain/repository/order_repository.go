package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Repuestos-api/internal/domain/entity"
)

// OrderRepository define el puerto de persistencia para cabeceras de pedido.
// GetByID y GetForUpdate devuelven (nil, nil) si el pedido no existe.
type OrderRepository interface {
	Create(ctx context.Context, order *entity.Order) error
	GetByID(ctx context.Context, id string) (*entity.Order, error)
	// GetForUpdate bloquea la cabecera (SELECT FOR UPDATE) durante cambios de estado.
	GetForUpdate(ctx context.Context, id string) (*entity.Order, error)
	UpdateTotal(ctx context.Context, id string, total decimal.Decimal) error
	UpdateStatus(ctx context.Context, id string, status entity.OrderStatus, stockRestored bool) error
	Delete(ctx context.Context, id string) error
	DeleteByPool(ctx context.Context, pool string) (int64, error)
	DeleteAll(ctx context.Context) (int64, error)
	// List lista pedidos del pool (todos si pool es vacío), más recientes primero.
	List(ctx context.Context, pool string) ([]*entity.Order, error)
	ListByUser(ctx context.Context, userID string) ([]*entity.Order, error)
}
