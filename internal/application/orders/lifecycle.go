package orders

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/Repuestos-api/internal/application/dto"
	"github.com/jhoicas/Repuestos-api/internal/domain"
	"github.com/jhoicas/Repuestos-api/internal/domain/entity"
	"github.com/jhoicas/Repuestos-api/internal/domain/repository"
	"github.com/jhoicas/Repuestos-api/pkg/logger"
	"github.com/jhoicas/Repuestos-api/pkg/metrics"
)

// LifecycleUseCase cambios de estado y borrado de pedidos. El stock asignado se devuelve
// una sola vez por pedido: al rechazarlo o, si nunca se rechazó, al borrarlo.
type LifecycleUseCase struct {
	txRunner TxRunner
	metrics  *metrics.EngineMetrics
	log      *logger.Logger
	now      func() time.Time
}

// NewLifecycleUseCase construye el caso de uso.
func NewLifecycleUseCase(txRunner TxRunner, m *metrics.EngineMetrics, log *logger.Logger) *LifecycleUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &LifecycleUseCase{txRunner: txRunner, metrics: m, log: log.Component("order_lifecycle"), now: time.Now}
}

// SetStatus aplica la transición sobre la cabecera bloqueada. Pasar a Rejected devuelve al pool
// lo asignado en cada línea; repetir el estado actual no tiene efecto.
func (uc *LifecycleUseCase) SetStatus(ctx context.Context, orderID, status string) (*dto.OrderResponse, error) {
	to, err := entity.ParseOrderStatus(status)
	if err != nil {
		return nil, err
	}

	var (
		order    *entity.Order
		tr       entity.Transition
		restored int64
	)
	err = uc.txRunner.Run(ctx, func(
		stockRepo repository.StockRepository,
		orderRepo repository.OrderRepository,
		itemRepo repository.OrderItemRepository,
		_ repository.CartRepository,
	) error {
		restored = 0
		o, err := lockOrder(ctx, orderRepo, orderID)
		if err != nil {
			return err
		}
		tr, err = o.PlanTransition(to)
		if err != nil {
			return err
		}
		order = o
		if tr.NoOp {
			return nil
		}
		if tr.RestoreStock {
			if restored, err = restoreItems(ctx, stockRepo, itemRepo, o); err != nil {
				return err
			}
			o.StockRestored = true
		}
		if err := orderRepo.UpdateStatus(ctx, o.ID, to, o.StockRestored); err != nil {
			return err
		}
		o.Status = to
		o.UpdatedAt = uc.now()
		return nil
	})
	if err != nil {
		return nil, err
	}

	if !tr.NoOp {
		uc.metrics.StatusChanged(string(tr.From), string(tr.To))
		uc.metrics.StockRestored(order.StockPool, restored)
		uc.log.Info().
			Str("order_id", order.ID).
			Str("from", string(tr.From)).
			Str("to", string(tr.To)).
			Int64("restored_units", restored).
			Msg("estado de pedido actualizado")
	}
	out := toOrderResponse(order)
	return &out, nil
}

// DeleteOrder borra el pedido y sus líneas, devolviendo el stock si aún no se había devuelto.
func (uc *LifecycleUseCase) DeleteOrder(ctx context.Context, orderID string) error {
	var (
		pool     string
		restored int64
	)
	err := uc.txRunner.Run(ctx, func(
		stockRepo repository.StockRepository,
		orderRepo repository.OrderRepository,
		itemRepo repository.OrderItemRepository,
		_ repository.CartRepository,
	) error {
		restored = 0
		o, err := lockOrder(ctx, orderRepo, orderID)
		if err != nil {
			return err
		}
		pool = o.StockPool
		if o.NeedsRestoreOnDelete() {
			if restored, err = restoreItems(ctx, stockRepo, itemRepo, o); err != nil {
				return err
			}
		}
		if err := itemRepo.DeleteByOrder(ctx, o.ID); err != nil {
			return err
		}
		return orderRepo.Delete(ctx, o.ID)
	})
	if err != nil {
		return err
	}
	uc.metrics.StockRestored(pool, restored)
	uc.log.Info().Str("order_id", orderID).Int64("restored_units", restored).Msg("pedido eliminado")
	return nil
}

// DeleteAllOrders borra el historial de un pool. No toca el stock.
func (uc *LifecycleUseCase) DeleteAllOrders(ctx context.Context, pool string) (int64, error) {
	if strings.TrimSpace(pool) == "" {
		return 0, fmt.Errorf("%w: pool requerido", domain.ErrInvalidInput)
	}
	var deleted int64
	err := uc.txRunner.Run(ctx, func(
		_ repository.StockRepository,
		orderRepo repository.OrderRepository,
		itemRepo repository.OrderItemRepository,
		_ repository.CartRepository,
	) error {
		if err := itemRepo.DeleteByPool(ctx, pool); err != nil {
			return err
		}
		n, err := orderRepo.DeleteByPool(ctx, pool)
		deleted = n
		return err
	})
	if err != nil {
		return 0, err
	}
	uc.log.Warn().Str("pool", pool).Int64("orders", deleted).Msg("historial de pedidos del pool eliminado")
	return deleted, nil
}

// DeleteAllHistory borra todos los pedidos de todos los pools. No toca el stock.
func (uc *LifecycleUseCase) DeleteAllHistory(ctx context.Context) (int64, error) {
	var deleted int64
	err := uc.txRunner.Run(ctx, func(
		_ repository.StockRepository,
		orderRepo repository.OrderRepository,
		itemRepo repository.OrderItemRepository,
		_ repository.CartRepository,
	) error {
		if err := itemRepo.DeleteAll(ctx); err != nil {
			return err
		}
		n, err := orderRepo.DeleteAll(ctx)
		deleted = n
		return err
	})
	if err != nil {
		return 0, err
	}
	uc.log.Warn().Int64("orders", deleted).Msg("historial completo de pedidos eliminado")
	return deleted, nil
}

func lockOrder(ctx context.Context, orderRepo repository.OrderRepository, orderID string) (*entity.Order, error) {
	if strings.TrimSpace(orderID) == "" {
		return nil, fmt.Errorf("%w: id de pedido requerido", domain.ErrInvalidInput)
	}
	o, err := orderRepo.GetForUpdate(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, fmt.Errorf("%w: pedido %s", domain.ErrNotFound, orderID)
	}
	return o, nil
}

// restoreItems devuelve al pool del pedido lo asignado en cada línea.
func restoreItems(ctx context.Context, stockRepo repository.StockRepository, itemRepo repository.OrderItemRepository, o *entity.Order) (int64, error) {
	items, err := itemRepo.ListByOrder(ctx, o.ID)
	if err != nil {
		return 0, err
	}
	var total int64
	for _, it := range items {
		if err := stockRepo.Restore(ctx, it.PartNumber, o.StockPool, it.AllocatedQty); err != nil {
			return 0, err
		}
		total += it.AllocatedQty
	}
	return total, nil
}
