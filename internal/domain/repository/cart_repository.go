package repository

import (
	"context"

	"github.com/jhoicas/Repuestos-api/internal/domain/entity"
)

// CartRepository carrito de staging: upsert por (usuario, repuesto) sin semántica de asignación.
// GetByID devuelve (nil, nil) si la línea no existe.
type CartRepository interface {
	// Upsert inserta la línea o suma Qty a la existente del mismo repuesto.
	Upsert(ctx context.Context, item *entity.CartItem) (*entity.CartItem, error)
	GetByID(ctx context.Context, id string) (*entity.CartItem, error)
	ListByUser(ctx context.Context, userID string) ([]*entity.CartItem, error)
	UpdateQty(ctx context.Context, id string, qty int64) error
	Delete(ctx context.Context, id string) error
	// DeleteByIDs borra las líneas indicadas que pertenezcan al usuario.
	DeleteByIDs(ctx context.Context, userID string, ids []string) error
	DeleteByUser(ctx context.Context, userID string) error
}
