package orders

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Repuestos-api/internal/application/dto"
	"github.com/jhoicas/Repuestos-api/internal/application/ports"
	"github.com/jhoicas/Repuestos-api/internal/domain"
	"github.com/jhoicas/Repuestos-api/internal/domain/entity"
	"github.com/jhoicas/Repuestos-api/internal/domain/inventory"
	"github.com/jhoicas/Repuestos-api/internal/domain/repository"
	"github.com/jhoicas/Repuestos-api/pkg/logger"
	"github.com/jhoicas/Repuestos-api/pkg/metrics"
)

// LineInput línea a pedir. UnitPrice es el precio ya ajustado al cliente y es el que se factura.
type LineInput struct {
	PartNumber   string
	Description  string
	RequestedQty int64
	UnitPrice    decimal.Decimal
}

// CreateOrderInput entrada del coordinador de pedidos.
// CartItemIDs son las líneas del carrito consumidas; se borran solo si el pedido se confirma.
type CreateOrderInput struct {
	UserID         string
	StockPool      string
	Lines          []LineInput
	CartItemIDs    []string
	IdempotencyKey string
}

// ReplayError reenvío de una Idempotency-Key ya usada: el pedido existe y no se crea otro.
type ReplayError struct {
	OrderID string
}

func (e *ReplayError) Error() string {
	return fmt.Sprintf("%s: pedido %s ya creado con esta clave", domain.ErrDuplicate, e.OrderID)
}

func (e *ReplayError) Unwrap() error { return domain.ErrDuplicate }

// CreateOrderUseCase convierte líneas pedidas en un pedido dentro de una única unidad de trabajo:
// cabecera, asignación y descuento por línea, total y limpieza del carrito.
type CreateOrderUseCase struct {
	txRunner TxRunner
	pools    inventory.PoolSet
	idem     ports.IdempotencyGuard
	metrics  *metrics.EngineMetrics
	log      *logger.Logger
	now      func() time.Time
}

// NewCreateOrderUseCase construye el coordinador. idem puede ser nil (sin Redis).
func NewCreateOrderUseCase(
	txRunner TxRunner,
	pools inventory.PoolSet,
	idem ports.IdempotencyGuard,
	m *metrics.EngineMetrics,
	log *logger.Logger,
) *CreateOrderUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &CreateOrderUseCase{
		txRunner: txRunner,
		pools:    pools,
		idem:     idem,
		metrics:  m,
		log:      log.Component("orders"),
		now:      time.Now,
	}
}

// CreateOrder valida la entrada y crea el pedido. Una asignación de 0 unidades es un resultado
// válido de la línea; cualquier error de almacenamiento deshace todo el pedido.
func (uc *CreateOrderUseCase) CreateOrder(ctx context.Context, in CreateOrderInput) (*dto.OrderCreatedResponse, error) {
	if err := uc.validate(&in); err != nil {
		return nil, err
	}

	guarded := uc.idem != nil && in.IdempotencyKey != ""
	if guarded {
		existing, reserved, err := uc.idem.Reserve(ctx, in.UserID, in.IdempotencyKey)
		if err != nil {
			return nil, err
		}
		if !reserved {
			if existing == ports.IdempotencyPending {
				return nil, fmt.Errorf("%w: hay un pedido en curso con la misma clave", domain.ErrConflict)
			}
			return nil, &ReplayError{OrderID: existing}
		}
	}

	res, allocs, err := uc.create(ctx, in)
	if guarded {
		uc.settleKey(ctx, in, res, err)
	}
	if err != nil {
		return nil, err
	}

	uc.metrics.OrderCreated(in.StockPool)
	for _, a := range allocs {
		uc.metrics.LineAllocated(in.StockPool, string(a.Status), a.AllocatedQty)
	}
	uc.log.Info().
		Str("order_id", res.OrderID).
		Str("user_id", in.UserID).
		Str("pool", in.StockPool).
		Int("lines", len(res.Lines)).
		Str("total", res.TotalPrice.StringFixed(2)).
		Msg("pedido creado")
	return res, nil
}

func (uc *CreateOrderUseCase) validate(in *CreateOrderInput) error {
	in.UserID = strings.TrimSpace(in.UserID)
	if in.UserID == "" {
		return fmt.Errorf("%w: usuario requerido", domain.ErrInvalidInput)
	}
	if err := uc.pools.Validate(in.StockPool); err != nil {
		return err
	}
	if len(in.Lines) == 0 {
		return fmt.Errorf("%w: el pedido no tiene líneas", domain.ErrInvalidInput)
	}
	for i := range in.Lines {
		l := &in.Lines[i]
		l.PartNumber = inventory.NormalizePartNumber(l.PartNumber)
		switch {
		case l.PartNumber == "":
			return fmt.Errorf("%w: línea %d sin número de parte", domain.ErrInvalidInput, i+1)
		case l.RequestedQty <= 0:
			return fmt.Errorf("%w: línea %d (%s) con cantidad %d", domain.ErrInvalidInput, i+1, l.PartNumber, l.RequestedQty)
		case l.UnitPrice.IsNegative():
			return fmt.Errorf("%w: línea %d (%s) con precio negativo", domain.ErrInvalidInput, i+1, l.PartNumber)
		}
	}
	return nil
}

func (uc *CreateOrderUseCase) create(ctx context.Context, in CreateOrderInput) (*dto.OrderCreatedResponse, []*entity.Allocation, error) {
	var (
		res    *dto.OrderCreatedResponse
		allocs []*entity.Allocation
	)
	err := uc.txRunner.Run(ctx, func(
		stockRepo repository.StockRepository,
		orderRepo repository.OrderRepository,
		itemRepo repository.OrderItemRepository,
		cartRepo repository.CartRepository,
	) error {
		now := uc.now()
		order := &entity.Order{
			ID:         uuid.New().String(),
			UserID:     in.UserID,
			StockPool:  in.StockPool,
			TotalPrice: decimal.Zero,
			Status:     entity.OrderStatusPending,
			CreatedAt:  now,
			UpdatedAt:  now,
		}
		if err := orderRepo.Create(ctx, order); err != nil {
			return err
		}

		total := decimal.Zero
		lines := make([]dto.OrderLineResponse, 0, len(in.Lines))
		attempt := make([]*entity.Allocation, 0, len(in.Lines))
		// El orden de las líneas define quién se queda con el stock escaso.
		for _, l := range in.Lines {
			alloc, err := stockRepo.TryDeduct(ctx, l.PartNumber, in.StockPool, l.RequestedQty)
			if err != nil {
				return err
			}
			desc := l.Description
			if desc == "" {
				desc = alloc.Description
			}
			item := &entity.OrderItem{
				ID:           uuid.New().String(),
				OrderID:      order.ID,
				PartNumber:   l.PartNumber,
				Description:  desc,
				AllocatedQty: alloc.AllocatedQty,
				RequestedQty: l.RequestedQty,
				AvailableQty: alloc.AvailableQty,
				UnitPrice:    l.UnitPrice,
			}
			if err := itemRepo.Create(ctx, item); err != nil {
				return err
			}
			total = total.Add(item.LineTotal())
			lines = append(lines, toLineResponse(item, alloc.Status))
			attempt = append(attempt, alloc)
		}

		if err := orderRepo.UpdateTotal(ctx, order.ID, total); err != nil {
			return err
		}
		if err := cartRepo.DeleteByIDs(ctx, in.UserID, in.CartItemIDs); err != nil {
			return err
		}

		res = &dto.OrderCreatedResponse{
			OrderID:    order.ID,
			StockPool:  order.StockPool,
			Status:     string(order.Status),
			TotalPrice: total,
			Lines:      lines,
		}
		allocs = attempt
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return res, allocs, nil
}

// settleKey deja la clave con el id del pedido o la libera si el pedido falló.
// Un fallo de Redis aquí no cambia el resultado del pedido.
func (uc *CreateOrderUseCase) settleKey(ctx context.Context, in CreateOrderInput, res *dto.OrderCreatedResponse, createErr error) {
	if createErr != nil {
		if err := uc.idem.Release(ctx, in.UserID, in.IdempotencyKey); err != nil {
			uc.log.Warn().Err(err).Str("user_id", in.UserID).Msg("no se pudo liberar la clave de idempotencia")
		}
		return
	}
	if err := uc.idem.Complete(ctx, in.UserID, in.IdempotencyKey, res.OrderID); err != nil {
		uc.log.Warn().Err(err).Str("order_id", res.OrderID).Msg("no se pudo guardar la clave de idempotencia")
	}
}

// IsReplay indica si err es un reenvío y devuelve el pedido original.
func IsReplay(err error) (string, bool) {
	var replay *ReplayError
	if errors.As(err, &replay) {
		return replay.OrderID, true
	}
	return "", false
}
