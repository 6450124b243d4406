package orders

import (
	"context"

	"github.com/jhoicas/Repuestos-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una unidad de trabajo, pasando repositorios atados a ella.
// Si fn devuelve error no queda ningún efecto persistido. fn puede ejecutarse más de una vez
// cuando el almacenamiento aborta por conflicto de concurrencia, así que no debe acumular estado
// fuera de la llamada.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		stockRepo repository.StockRepository,
		orderRepo repository.OrderRepository,
		itemRepo repository.OrderItemRepository,
		cartRepo repository.CartRepository,
	) error) error
}
