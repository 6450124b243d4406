package cart

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Repuestos-api/internal/application/dto"
	"github.com/jhoicas/Repuestos-api/internal/application/orders"
	"github.com/jhoicas/Repuestos-api/internal/application/ports"
	"github.com/jhoicas/Repuestos-api/internal/domain"
	"github.com/jhoicas/Repuestos-api/internal/domain/entity"
	"github.com/jhoicas/Repuestos-api/internal/domain/inventory"
	"github.com/jhoicas/Repuestos-api/internal/domain/repository"
	"github.com/jhoicas/Repuestos-api/pkg/logger"
)

// OrderCreator coordinador que convierte el carrito en pedido.
type OrderCreator interface {
	CreateOrder(ctx context.Context, in orders.CreateOrderInput) (*dto.OrderCreatedResponse, error)
}

// UseCase carrito de staging por usuario con vista previa de asignación.
type UseCase struct {
	cart     repository.CartRepository
	stock    repository.StockRepository
	profiles ports.ProfileResolver
	orders   OrderCreator
	log      *logger.Logger
}

// NewUseCase construye el caso de uso.
func NewUseCase(
	cart repository.CartRepository,
	stock repository.StockRepository,
	profiles ports.ProfileResolver,
	creator OrderCreator,
	log *logger.Logger,
) *UseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &UseCase{cart: cart, stock: stock, profiles: profiles, orders: creator, log: log.Component("cart")}
}

// Add agrega el repuesto del pool del cliente al carrito con su precio ajustado.
// Agregar un repuesto que ya está suma la cantidad.
func (uc *UseCase) Add(ctx context.Context, userID string, in dto.AddCartItemRequest) (*dto.CartLineResponse, error) {
	pn := inventory.NormalizePartNumber(in.PartNumber)
	if pn == "" || in.Qty <= 0 {
		return nil, fmt.Errorf("%w: número de parte y cantidad positiva requeridos", domain.ErrInvalidInput)
	}
	profile, err := uc.profiles.Resolve(ctx, userID)
	if err != nil {
		return nil, err
	}
	rec, err := uc.stock.Get(ctx, pn, profile.AssignedPool)
	if err != nil {
		return nil, err
	}
	item, err := uc.cart.Upsert(ctx, &entity.CartItem{
		UserID:      userID,
		PartNumber:  rec.PartNumber,
		Description: rec.Description,
		Qty:         in.Qty,
		UnitPrice:   inventory.AdjustPrice(rec.UnitPrice, profile.PriceAdjustmentPct),
	})
	if err != nil {
		return nil, err
	}
	line := previewLine(item, rec.FreeQuantity, true)
	return &line, nil
}

// List carrito con la asignación que tendría cada línea contra el stock actual.
func (uc *UseCase) List(ctx context.Context, userID string) (*dto.CartResponse, error) {
	profile, err := uc.profiles.Resolve(ctx, userID)
	if err != nil {
		return nil, err
	}
	items, err := uc.cart.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	out := &dto.CartResponse{
		Items:          make([]dto.CartLineResponse, 0, len(items)),
		TotalRequested: decimal.Zero,
		TotalAllocated: decimal.Zero,
	}
	for _, it := range items {
		var available int64
		exists := true
		rec, err := uc.stock.Get(ctx, it.PartNumber, profile.AssignedPool)
		switch {
		case errors.Is(err, domain.ErrNotFound):
			exists = false
		case err != nil:
			return nil, err
		default:
			available = rec.FreeQuantity
		}
		line := previewLine(it, available, exists)
		out.Items = append(out.Items, line)
		out.TotalRequested = out.TotalRequested.Add(it.UnitPrice.Mul(decimal.NewFromInt(it.Qty)))
		out.TotalAllocated = out.TotalAllocated.Add(line.LineTotal)
	}
	return out, nil
}

// UpdateQty reemplaza la cantidad de una línea propia.
func (uc *UseCase) UpdateQty(ctx context.Context, userID, itemID string, qty int64) error {
	if qty <= 0 {
		return fmt.Errorf("%w: la cantidad debe ser positiva", domain.ErrInvalidInput)
	}
	if _, err := uc.owned(ctx, userID, itemID); err != nil {
		return err
	}
	return uc.cart.UpdateQty(ctx, itemID, qty)
}

// Remove quita una línea propia del carrito.
func (uc *UseCase) Remove(ctx context.Context, userID, itemID string) error {
	if _, err := uc.owned(ctx, userID, itemID); err != nil {
		return err
	}
	return uc.cart.Delete(ctx, itemID)
}

// Clear vacía el carrito.
func (uc *UseCase) Clear(ctx context.Context, userID string) error {
	return uc.cart.DeleteByUser(ctx, userID)
}

// Checkout pide las líneas seleccionadas (todas si itemIDs está vacío) al precio guardado en el
// carrito. Solo las líneas pedidas salen del carrito, y solo si el pedido se confirma.
func (uc *UseCase) Checkout(ctx context.Context, userID string, itemIDs []string, idempotencyKey string) (*dto.OrderCreatedResponse, error) {
	items, err := uc.cart.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	selected, err := selectItems(items, itemIDs)
	if err != nil {
		return nil, err
	}
	profile, err := uc.profiles.Resolve(ctx, userID)
	if err != nil {
		return nil, err
	}

	in := orders.CreateOrderInput{
		UserID:         userID,
		StockPool:      profile.AssignedPool,
		Lines:          make([]orders.LineInput, 0, len(selected)),
		CartItemIDs:    make([]string, 0, len(selected)),
		IdempotencyKey: idempotencyKey,
	}
	for _, it := range selected {
		in.Lines = append(in.Lines, orders.LineInput{
			PartNumber:   it.PartNumber,
			Description:  it.Description,
			RequestedQty: it.Qty,
			UnitPrice:    it.UnitPrice,
		})
		in.CartItemIDs = append(in.CartItemIDs, it.ID)
	}
	return uc.orders.CreateOrder(ctx, in)
}

func (uc *UseCase) owned(ctx context.Context, userID, itemID string) (*entity.CartItem, error) {
	it, err := uc.cart.GetByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if it == nil {
		return nil, fmt.Errorf("%w: línea de carrito %s", domain.ErrNotFound, itemID)
	}
	if it.UserID != userID {
		return nil, domain.ErrForbidden
	}
	return it, nil
}

// selectItems conserva el orden del carrito; un id que no está en el carrito del usuario es error.
func selectItems(items []*entity.CartItem, ids []string) ([]*entity.CartItem, error) {
	if len(items) == 0 {
		return nil, fmt.Errorf("%w: el carrito está vacío", domain.ErrInvalidInput)
	}
	if len(ids) == 0 {
		return items, nil
	}
	want := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		want[id] = struct{}{}
	}
	selected := make([]*entity.CartItem, 0, len(ids))
	for _, it := range items {
		if _, ok := want[it.ID]; ok {
			selected = append(selected, it)
			delete(want, it.ID)
		}
	}
	if len(want) > 0 {
		missing := make([]string, 0, len(want))
		for id := range want {
			missing = append(missing, id)
		}
		sort.Strings(missing)
		return nil, fmt.Errorf("%w: líneas de carrito %s", domain.ErrNotFound, strings.Join(missing, ", "))
	}
	return selected, nil
}

func previewLine(it *entity.CartItem, available int64, exists bool) dto.CartLineResponse {
	allocated, status := inventory.Allocate(it.Qty, available, exists)
	return dto.CartLineResponse{
		ID:           it.ID,
		PartNumber:   it.PartNumber,
		Description:  it.Description,
		Qty:          it.Qty,
		UnitPrice:    it.UnitPrice,
		AvailableQty: available,
		AllocatedQty: allocated,
		Status:       string(status),
		LineTotal:    it.UnitPrice.Mul(decimal.NewFromInt(allocated)),
	}
}
