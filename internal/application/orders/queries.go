package orders

import (
	"context"
	"fmt"

	"github.com/jhoicas/Repuestos-api/internal/application/dto"
	"github.com/jhoicas/Repuestos-api/internal/domain"
	"github.com/jhoicas/Repuestos-api/internal/domain/entity"
	"github.com/jhoicas/Repuestos-api/internal/domain/repository"
)

// QueryUseCase consultas de pedidos (solo lectura, fuera de transacción).
type QueryUseCase struct {
	orderRepo repository.OrderRepository
	itemRepo  repository.OrderItemRepository
}

// NewQueryUseCase construye el caso de uso.
func NewQueryUseCase(orderRepo repository.OrderRepository, itemRepo repository.OrderItemRepository) *QueryUseCase {
	return &QueryUseCase{orderRepo: orderRepo, itemRepo: itemRepo}
}

// ListAll pedidos de un pool (todos si pool es vacío), más recientes primero.
func (uc *QueryUseCase) ListAll(ctx context.Context, pool string) ([]dto.OrderResponse, error) {
	list, err := uc.orderRepo.List(ctx, pool)
	if err != nil {
		return nil, err
	}
	return toOrderResponses(list), nil
}

// ListByUser pedidos del usuario.
func (uc *QueryUseCase) ListByUser(ctx context.Context, userID string) ([]dto.OrderResponse, error) {
	list, err := uc.orderRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return toOrderResponses(list), nil
}

// GetDetails cabecera y líneas de un pedido.
func (uc *QueryUseCase) GetDetails(ctx context.Context, orderID string) (*dto.OrderDetailResponse, error) {
	o, err := uc.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, fmt.Errorf("%w: pedido %s", domain.ErrNotFound, orderID)
	}
	return uc.details(ctx, o)
}

// GetDetailsForUser como GetDetails pero solo si el pedido es del usuario.
func (uc *QueryUseCase) GetDetailsForUser(ctx context.Context, userID, orderID string) (*dto.OrderDetailResponse, error) {
	o, err := uc.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, fmt.Errorf("%w: pedido %s", domain.ErrNotFound, orderID)
	}
	if o.UserID != userID {
		return nil, domain.ErrForbidden
	}
	return uc.details(ctx, o)
}

func (uc *QueryUseCase) details(ctx context.Context, o *entity.Order) (*dto.OrderDetailResponse, error) {
	items, err := uc.itemRepo.ListByOrder(ctx, o.ID)
	if err != nil {
		return nil, err
	}
	out := &dto.OrderDetailResponse{
		OrderResponse: toOrderResponse(o),
		Items:         make([]dto.OrderLineResponse, 0, len(items)),
	}
	for _, it := range items {
		out.Items = append(out.Items, toLineResponse(it, ""))
	}
	return out, nil
}
