package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Repuestos-api/internal/domain"
	"github.com/jhoicas/Repuestos-api/internal/domain/entity"
	"github.com/jhoicas/Repuestos-api/internal/domain/inventory"
	"github.com/jhoicas/Repuestos-api/internal/domain/repository"
)

var _ repository.StockRepository = (*StockRepo)(nil)

// StockRepo libro de existencias en memoria.
type StockRepo struct {
	v view
}

func (st *state) activeStock(partNumber, pool string) *entity.StockRecord {
	for _, r := range st.stock {
		if r.IsActive && r.PartNumber == partNumber && r.StockPool == pool {
			return r
		}
	}
	return nil
}

func (r *StockRepo) Get(_ context.Context, partNumber, pool string) (*entity.StockRecord, error) {
	var out *entity.StockRecord
	err := r.v.with(func(st *state) error {
		rec := st.activeStock(partNumber, pool)
		if rec == nil {
			return fmt.Errorf("%w: repuesto %s en %s", domain.ErrNotFound, partNumber, pool)
		}
		c := *rec
		out = &c
		return nil
	})
	return out, err
}

func (r *StockRepo) TryDeduct(_ context.Context, partNumber, pool string, requested int64) (*entity.Allocation, error) {
	var out *entity.Allocation
	err := r.v.with(func(st *state) error {
		rec := st.activeStock(partNumber, pool)
		if rec == nil {
			allocated, status := inventory.Allocate(requested, 0, false)
			out = &entity.Allocation{
				PartNumber:   partNumber,
				RequestedQty: requested,
				AllocatedQty: allocated,
				Status:       status,
				UnitPrice:    decimal.Zero,
			}
			return nil
		}
		allocated, status := inventory.Allocate(requested, rec.FreeQuantity, true)
		out = &entity.Allocation{
			PartNumber:   partNumber,
			Description:  rec.Description,
			Found:        true,
			RequestedQty: requested,
			AvailableQty: rec.FreeQuantity,
			AllocatedQty: allocated,
			Status:       status,
			UnitPrice:    rec.UnitPrice,
		}
		rec.FreeQuantity -= allocated
		return nil
	})
	return out, err
}

func (r *StockRepo) Restore(_ context.Context, partNumber, pool string, amount int64) error {
	if amount <= 0 {
		return nil
	}
	return r.v.with(func(st *state) error {
		if rec := st.activeStock(partNumber, pool); rec != nil {
			rec.FreeQuantity += amount
		}
		return nil
	})
}

func (r *StockRepo) ReplacePool(_ context.Context, pool string, records []*entity.StockRecord) error {
	seen := make(map[string]struct{}, len(records))
	for _, rec := range records {
		if _, dup := seen[rec.PartNumber]; dup {
			return fmt.Errorf("%w: repuesto repetido en la carga: %s", domain.ErrDuplicate, rec.PartNumber)
		}
		seen[rec.PartNumber] = struct{}{}
	}
	now := r.v.now()
	return r.v.with(func(st *state) error {
		for _, rec := range st.stock {
			if rec.StockPool == pool {
				rec.IsActive = false
			}
		}
		for _, rec := range records {
			if rec.ID == "" {
				rec.ID = uuid.New().String()
			}
			rec.StockPool = pool
			rec.IsActive = true
			rec.CreatedAt = now
			c := *rec
			st.stock = append(st.stock, &c)
		}
		return nil
	})
}

func (r *StockRepo) WipePool(_ context.Context, pool string) (int64, error) {
	var deleted int64
	err := r.v.with(func(st *state) error {
		kept := st.stock[:0]
		for _, rec := range st.stock {
			if rec.StockPool == pool {
				deleted++
				continue
			}
			kept = append(kept, rec)
		}
		st.stock = kept
		return nil
	})
	return deleted, err
}

func (r *StockRepo) Search(_ context.Context, pool, term string, limit int) ([]*entity.StockRecord, error) {
	if limit <= 0 {
		limit = 50
	}
	part := strings.ToLower(inventory.NormalizePartNumber(term))
	desc := strings.ToLower(term)
	var out []*entity.StockRecord
	err := r.v.with(func(st *state) error {
		for _, rec := range st.stock {
			if !rec.IsActive || rec.StockPool != pool {
				continue
			}
			pn := strings.ToLower(rec.PartNumber)
			if strings.Contains(pn, part) || strings.Contains(strings.ToLower(rec.Description), desc) {
				c := *rec
				out = append(out, &c)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.SliceStable(out, func(i, j int) bool {
		pi := strings.HasPrefix(strings.ToLower(out[i].PartNumber), part)
		pj := strings.HasPrefix(strings.ToLower(out[j].PartNumber), part)
		if pi != pj {
			return pi
		}
		return out[i].PartNumber < out[j].PartNumber
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *StockRepo) ListActive(_ context.Context, pool string) ([]*entity.StockRecord, error) {
	var out []*entity.StockRecord
	err := r.v.with(func(st *state) error {
		for _, rec := range st.stock {
			if rec.IsActive && rec.StockPool == pool {
				c := *rec
				out = append(out, &c)
			}
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool { return out[i].PartNumber < out[j].PartNumber })
	return out, err
}
