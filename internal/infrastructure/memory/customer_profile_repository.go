package memory

import (
	"context"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Repuestos-api/internal/domain/entity"
	"github.com/jhoicas/Repuestos-api/internal/domain/repository"
)

var _ repository.CustomerProfileRepository = (*CustomerProfileRepo)(nil)

// CustomerProfileRepo perfiles de cliente en memoria.
type CustomerProfileRepo struct {
	v view
}

func (r *CustomerProfileRepo) Get(_ context.Context, userID string) (*entity.CustomerProfile, error) {
	var out *entity.CustomerProfile
	err := r.v.with(func(st *state) error {
		if p, ok := st.profiles[userID]; ok {
			c := *p
			out = &c
		}
		return nil
	})
	return out, err
}

func (r *CustomerProfileRepo) UpsertPool(_ context.Context, userID, pool string) error {
	return r.upsert(userID, func(p *entity.CustomerProfile) { p.AssignedPool = pool })
}

func (r *CustomerProfileRepo) UpsertPriceAdjustment(_ context.Context, userID string, pct decimal.Decimal) error {
	return r.upsert(userID, func(p *entity.CustomerProfile) { p.PriceAdjustmentPct = pct })
}

func (r *CustomerProfileRepo) upsert(userID string, apply func(p *entity.CustomerProfile)) error {
	now := r.v.now()
	return r.v.with(func(st *state) error {
		p, ok := st.profiles[userID]
		if !ok {
			p = &entity.CustomerProfile{UserID: userID, PriceAdjustmentPct: decimal.Zero}
			st.profiles[userID] = p
		}
		apply(p)
		p.UpdatedAt = now
		return nil
	})
}

func (r *CustomerProfileRepo) List(_ context.Context) ([]*entity.CustomerProfile, error) {
	var out []*entity.CustomerProfile
	err := r.v.with(func(st *state) error {
		for _, p := range st.profiles {
			c := *p
			out = append(out, &c)
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool { return out[i].UserID < out[j].UserID })
	return out, err
}
