package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Repuestos-api/internal/domain"
	"github.com/jhoicas/Repuestos-api/internal/domain/entity"
	"github.com/jhoicas/Repuestos-api/internal/domain/repository"
)

var (
	_ repository.OrderRepository     = (*OrderRepo)(nil)
	_ repository.OrderItemRepository = (*OrderItemRepo)(nil)
)

// OrderRepo cabeceras de pedido en memoria.
type OrderRepo struct {
	v view
}

func (st *state) order(id string) *entity.Order {
	for _, o := range st.orders {
		if o.ID == id {
			return o
		}
	}
	return nil
}

func (r *OrderRepo) Create(_ context.Context, o *entity.Order) error {
	return r.v.with(func(st *state) error {
		if st.order(o.ID) != nil {
			return fmt.Errorf("%w: pedido %s", domain.ErrDuplicate, o.ID)
		}
		c := *o
		st.orders = append(st.orders, &c)
		return nil
	})
}

func (r *OrderRepo) GetByID(_ context.Context, id string) (*entity.Order, error) {
	var out *entity.Order
	err := r.v.with(func(st *state) error {
		if o := st.order(id); o != nil {
			c := *o
			out = &c
		}
		return nil
	})
	return out, err
}

// GetForUpdate igual que GetByID: la unidad de trabajo ya tiene el store en exclusiva.
func (r *OrderRepo) GetForUpdate(ctx context.Context, id string) (*entity.Order, error) {
	return r.GetByID(ctx, id)
}

func (r *OrderRepo) UpdateTotal(_ context.Context, id string, total decimal.Decimal) error {
	now := r.v.now()
	return r.v.with(func(st *state) error {
		if o := st.order(id); o != nil {
			o.TotalPrice = total
			o.UpdatedAt = now
		}
		return nil
	})
}

func (r *OrderRepo) UpdateStatus(_ context.Context, id string, status entity.OrderStatus, stockRestored bool) error {
	now := r.v.now()
	return r.v.with(func(st *state) error {
		if o := st.order(id); o != nil {
			o.Status = status
			o.StockRestored = stockRestored
			o.UpdatedAt = now
		}
		return nil
	})
}

func (r *OrderRepo) Delete(ctx context.Context, id string) error {
	_, err := r.deleteWhere(func(o *entity.Order) bool { return o.ID == id })
	return err
}

func (r *OrderRepo) DeleteByPool(_ context.Context, pool string) (int64, error) {
	return r.deleteWhere(func(o *entity.Order) bool { return o.StockPool == pool })
}

func (r *OrderRepo) DeleteAll(_ context.Context) (int64, error) {
	return r.deleteWhere(func(*entity.Order) bool { return true })
}

// deleteWhere borra las cabeceras que cumplen match junto con sus líneas, como ON DELETE CASCADE.
func (r *OrderRepo) deleteWhere(match func(o *entity.Order) bool) (int64, error) {
	var deleted int64
	err := r.v.with(func(st *state) error {
		gone := make(map[string]struct{})
		kept := st.orders[:0]
		for _, o := range st.orders {
			if match(o) {
				gone[o.ID] = struct{}{}
				deleted++
				continue
			}
			kept = append(kept, o)
		}
		st.orders = kept
		items := st.items[:0]
		for _, it := range st.items {
			if _, ok := gone[it.OrderID]; !ok {
				items = append(items, it)
			}
		}
		st.items = items
		return nil
	})
	return deleted, err
}

func (r *OrderRepo) List(_ context.Context, pool string) ([]*entity.Order, error) {
	return r.listWhere(func(o *entity.Order) bool { return pool == "" || o.StockPool == pool })
}

func (r *OrderRepo) ListByUser(_ context.Context, userID string) ([]*entity.Order, error) {
	return r.listWhere(func(o *entity.Order) bool { return o.UserID == userID })
}

// listWhere más recientes primero; a igual fecha, el último insertado primero.
func (r *OrderRepo) listWhere(match func(o *entity.Order) bool) ([]*entity.Order, error) {
	var out []*entity.Order
	err := r.v.with(func(st *state) error {
		for i := len(st.orders) - 1; i >= 0; i-- {
			if o := st.orders[i]; match(o) {
				c := *o
				out = append(out, &c)
			}
		}
		return nil
	})
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, err
}

// OrderItemRepo líneas de pedido en memoria.
type OrderItemRepo struct {
	v view
}

func (r *OrderItemRepo) Create(_ context.Context, it *entity.OrderItem) error {
	return r.v.with(func(st *state) error {
		if st.order(it.OrderID) == nil {
			return fmt.Errorf("insert order item: pedido %s inexistente", it.OrderID)
		}
		c := *it
		st.items = append(st.items, &c)
		return nil
	})
}

func (r *OrderItemRepo) ListByOrder(_ context.Context, orderID string) ([]*entity.OrderItem, error) {
	var out []*entity.OrderItem
	err := r.v.with(func(st *state) error {
		for _, it := range st.items {
			if it.OrderID == orderID {
				c := *it
				out = append(out, &c)
			}
		}
		return nil
	})
	return out, err
}

func (r *OrderItemRepo) DeleteByOrder(_ context.Context, orderID string) error {
	return r.deleteWhere(func(_ *state, it *entity.OrderItem) bool { return it.OrderID == orderID })
}

func (r *OrderItemRepo) DeleteByPool(_ context.Context, pool string) error {
	return r.deleteWhere(func(st *state, it *entity.OrderItem) bool {
		o := st.order(it.OrderID)
		return o != nil && o.StockPool == pool
	})
}

func (r *OrderItemRepo) DeleteAll(_ context.Context) error {
	return r.deleteWhere(func(*state, *entity.OrderItem) bool { return true })
}

func (r *OrderItemRepo) deleteWhere(match func(st *state, it *entity.OrderItem) bool) error {
	return r.v.with(func(st *state) error {
		kept := st.items[:0]
		for _, it := range st.items {
			if !match(st, it) {
				kept = append(kept, it)
			}
		}
		st.items = kept
		return nil
	})
}
