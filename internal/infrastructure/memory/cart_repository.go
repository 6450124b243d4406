package memory

import (
	"context"

	"github.com/google/uuid"

	"github.com/jhoicas/Repuestos-api/internal/domain/entity"
	"github.com/jhoicas/Repuestos-api/internal/domain/repository"
)

var _ repository.CartRepository = (*CartRepo)(nil)

// CartRepo carrito en memoria.
type CartRepo struct {
	v view
}

func (st *state) cartItem(id string) *entity.CartItem {
	for _, it := range st.cart {
		if it.ID == id {
			return it
		}
	}
	return nil
}

func (r *CartRepo) Upsert(_ context.Context, item *entity.CartItem) (*entity.CartItem, error) {
	now := r.v.now()
	var out *entity.CartItem
	err := r.v.with(func(st *state) error {
		for _, it := range st.cart {
			if it.UserID == item.UserID && it.PartNumber == item.PartNumber {
				it.Qty += item.Qty
				it.UnitPrice = item.UnitPrice
				it.Description = item.Description
				c := *it
				out = &c
				return nil
			}
		}
		c := *item
		if c.ID == "" {
			c.ID = uuid.New().String()
		}
		c.CreatedAt = now
		st.cart = append(st.cart, &c)
		cp := c
		out = &cp
		return nil
	})
	return out, err
}

func (r *CartRepo) GetByID(_ context.Context, id string) (*entity.CartItem, error) {
	var out *entity.CartItem
	err := r.v.with(func(st *state) error {
		if it := st.cartItem(id); it != nil {
			c := *it
			out = &c
		}
		return nil
	})
	return out, err
}

func (r *CartRepo) ListByUser(_ context.Context, userID string) ([]*entity.CartItem, error) {
	var out []*entity.CartItem
	err := r.v.with(func(st *state) error {
		for _, it := range st.cart {
			if it.UserID == userID {
				c := *it
				out = append(out, &c)
			}
		}
		return nil
	})
	return out, err
}

func (r *CartRepo) UpdateQty(_ context.Context, id string, qty int64) error {
	return r.v.with(func(st *state) error {
		if it := st.cartItem(id); it != nil {
			it.Qty = qty
		}
		return nil
	})
}

func (r *CartRepo) Delete(_ context.Context, id string) error {
	return r.deleteWhere(func(it *entity.CartItem) bool { return it.ID == id })
}

func (r *CartRepo) DeleteByIDs(_ context.Context, userID string, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	set := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return r.deleteWhere(func(it *entity.CartItem) bool {
		_, ok := set[it.ID]
		return ok && it.UserID == userID
	})
}

func (r *CartRepo) DeleteByUser(_ context.Context, userID string) error {
	return r.deleteWhere(func(it *entity.CartItem) bool { return it.UserID == userID })
}

func (r *CartRepo) deleteWhere(match func(it *entity.CartItem) bool) error {
	return r.v.with(func(st *state) error {
		kept := st.cart[:0]
		for _, it := range st.cart {
			if !match(it) {
				kept = append(kept, it)
			}
		}
		st.cart = kept
		return nil
	})
}
