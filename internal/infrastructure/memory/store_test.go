package memory

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Repuestos-api/internal/domain"
	"github.com/jhoicas/Repuestos-api/internal/domain/entity"
	"github.com/jhoicas/Repuestos-api/internal/domain/repository"
)

const pool = "parts_stock"

func seed(t *testing.T, s *Store, records ...*entity.StockRecord) {
	t.Helper()
	err := s.RunStock(context.Background(), func(stockRepo repository.StockRepository) error {
		return stockRepo.ReplacePool(context.Background(), pool, records)
	})
	require.NoError(t, err)
}

func rec(part string, qty int64, price string) *entity.StockRecord {
	return &entity.StockRecord{PartNumber: part, Description: "desc " + part, FreeQuantity: qty, UnitPrice: decimal.RequireFromString(price)}
}

// ──────────────────────────────────────────────────────────────────────────────
// Unidad de trabajo
// ──────────────────────────────────────────────────────────────────────────────

func TestRun_ErrorDescartaCambios(t *testing.T) {
	s := NewStore()
	seed(t, s, rec("A1", 10, "5"))
	ctx := context.Background()
	boom := errors.New("boom")

	err := s.Run(ctx, func(stockRepo repository.StockRepository, orderRepo repository.OrderRepository, _ repository.OrderItemRepository, _ repository.CartRepository) error {
		alloc, err := stockRepo.TryDeduct(ctx, "A1", pool, 4)
		require.NoError(t, err)
		assert.Equal(t, int64(4), alloc.AllocatedQty)
		require.NoError(t, orderRepo.Create(ctx, &entity.Order{ID: "o1", StockPool: pool, Status: entity.OrderStatusPending}))
		return boom
	})
	require.ErrorIs(t, err, boom)

	got, err := s.Stock().Get(ctx, "A1", pool)
	require.NoError(t, err)
	assert.Equal(t, int64(10), got.FreeQuantity)
	o, err := s.Orders().GetByID(ctx, "o1")
	require.NoError(t, err)
	assert.Nil(t, o)
}

func TestRun_ContextoCancelado(t *testing.T) {
	s := NewStore()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	called := false
	err := s.RunStock(ctx, func(repository.StockRepository) error {
		called = true
		return nil
	})
	require.ErrorIs(t, err, context.Canceled)
	assert.False(t, called)
}

func TestTryDeduct_ConcurrenteNuncaSobreasigna(t *testing.T) {
	s := NewStore()
	seed(t, s, rec("A1", 25, "1"))
	ctx := context.Background()

	var (
		wg    sync.WaitGroup
		mu    sync.Mutex
		total int64
	)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			var got int64
			err := s.Run(ctx, func(stockRepo repository.StockRepository, _ repository.OrderRepository, _ repository.OrderItemRepository, _ repository.CartRepository) error {
				alloc, err := stockRepo.TryDeduct(ctx, "A1", pool, 3)
				if err != nil {
					return err
				}
				got = alloc.AllocatedQty
				return nil
			})
			assert.NoError(t, err)
			mu.Lock()
			total += got
			mu.Unlock()
		}()
	}
	wg.Wait()

	got, err := s.Stock().Get(ctx, "A1", pool)
	require.NoError(t, err)
	assert.Equal(t, int64(25), total)
	assert.Equal(t, int64(0), got.FreeQuantity)
}

// ──────────────────────────────────────────────────────────────────────────────
// Libro de existencias
// ──────────────────────────────────────────────────────────────────────────────

func TestTryDeduct_RepuestoInexistente(t *testing.T) {
	s := NewStore()
	alloc, err := s.Stock().TryDeduct(context.Background(), "NOPE", pool, 2)
	require.NoError(t, err)
	assert.False(t, alloc.Found)
	assert.Equal(t, entity.AllocationInvalidPart, alloc.Status)
	assert.Equal(t, int64(0), alloc.AllocatedQty)
}

func TestReplacePool_DesactivaAnterioresYRechazaDuplicados(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	seed(t, s, rec("A1", 10, "5"), rec("B2", 3, "1"))
	seed(t, s, rec("A1", 7, "6"))

	got, err := s.Stock().Get(ctx, "A1", pool)
	require.NoError(t, err)
	assert.Equal(t, int64(7), got.FreeQuantity)
	_, err = s.Stock().Get(ctx, "B2", pool)
	require.ErrorIs(t, err, domain.ErrNotFound)

	err = s.RunStock(ctx, func(stockRepo repository.StockRepository) error {
		return stockRepo.ReplacePool(ctx, pool, []*entity.StockRecord{rec("C3", 1, "1"), rec("C3", 2, "1")})
	})
	require.ErrorIs(t, err, domain.ErrDuplicate)
	got, err = s.Stock().Get(ctx, "A1", pool)
	require.NoError(t, err)
	assert.Equal(t, int64(7), got.FreeQuantity, "una carga fallida no toca el pool")

	n, err := s.Stock().WipePool(ctx, pool)
	require.NoError(t, err)
	assert.Equal(t, int64(3), n, "borra activos e inactivos")
}

func TestRestore_SoloRegistroActivo(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	seed(t, s, rec("A1", 1, "5"))
	require.NoError(t, s.Stock().Restore(ctx, "A1", pool, 4))
	require.NoError(t, s.Stock().Restore(ctx, "A1", pool, 0))
	require.NoError(t, s.Stock().Restore(ctx, "ZZ", pool, 4))

	got, err := s.Stock().Get(ctx, "A1", pool)
	require.NoError(t, err)
	assert.Equal(t, int64(5), got.FreeQuantity)
}

func TestSearch_PrefijosPrimero(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	seed(t, s,
		&entity.StockRecord{PartNumber: "XAB100", Description: "otro", FreeQuantity: 1, UnitPrice: decimal.NewFromInt(1)},
		&entity.StockRecord{PartNumber: "AB100", Description: "filtro", FreeQuantity: 1, UnitPrice: decimal.NewFromInt(1)},
		&entity.StockRecord{PartNumber: "ZZ9", Description: "Junta AB-100 compatible", FreeQuantity: 1, UnitPrice: decimal.NewFromInt(1)},
		&entity.StockRecord{PartNumber: "QQ1", Description: "sin relación", FreeQuantity: 1, UnitPrice: decimal.NewFromInt(1)},
	)

	list, err := s.Stock().Search(ctx, pool, "ab-100", 50)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "AB100", list[0].PartNumber)
	assert.Equal(t, "XAB100", list[1].PartNumber)
	assert.Equal(t, "ZZ9", list[2].PartNumber)

	list, err = s.Stock().Search(ctx, pool, "", 2)
	require.NoError(t, err)
	assert.Len(t, list, 2)
}

// ──────────────────────────────────────────────────────────────────────────────
// Pedidos, carrito y perfiles
// ──────────────────────────────────────────────────────────────────────────────

func TestOrders_BorrarPorPoolArrastraLineas(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	orders, items := s.Orders(), s.OrderItems()
	require.NoError(t, orders.Create(ctx, &entity.Order{ID: "o1", StockPool: pool, UserID: "u1"}))
	require.NoError(t, orders.Create(ctx, &entity.Order{ID: "o2", StockPool: "HBD_stock", UserID: "u1"}))
	require.NoError(t, items.Create(ctx, &entity.OrderItem{ID: "i1", OrderID: "o1"}))
	require.NoError(t, items.Create(ctx, &entity.OrderItem{ID: "i2", OrderID: "o2"}))
	require.Error(t, items.Create(ctx, &entity.OrderItem{ID: "i3", OrderID: "zz"}))

	n, err := orders.DeleteByPool(ctx, pool)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	left, err := items.ListByOrder(ctx, "o1")
	require.NoError(t, err)
	assert.Empty(t, left)
	all, err := orders.List(ctx, "")
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "o2", all[0].ID)
}

func TestCart_UpsertSumaYBorraSoloDelUsuario(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	cart := s.Cart()

	first, err := cart.Upsert(ctx, &entity.CartItem{UserID: "u1", PartNumber: "A1", Qty: 2, UnitPrice: decimal.NewFromInt(5)})
	require.NoError(t, err)
	second, err := cart.Upsert(ctx, &entity.CartItem{UserID: "u1", PartNumber: "A1", Qty: 3, UnitPrice: decimal.NewFromInt(6)})
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, int64(5), second.Qty)
	assert.True(t, decimal.NewFromInt(6).Equal(second.UnitPrice))

	other, err := cart.Upsert(ctx, &entity.CartItem{UserID: "u2", PartNumber: "A1", Qty: 1})
	require.NoError(t, err)

	require.NoError(t, cart.DeleteByIDs(ctx, "u1", []string{first.ID, other.ID}))
	mine, err := cart.ListByUser(ctx, "u1")
	require.NoError(t, err)
	assert.Empty(t, mine)
	theirs, err := cart.ListByUser(ctx, "u2")
	require.NoError(t, err)
	assert.Len(t, theirs, 1)
}

func TestProfiles_UpsertParcial(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	profiles := s.Profiles()

	p, err := profiles.Get(ctx, "u1")
	require.NoError(t, err)
	assert.Nil(t, p)

	require.NoError(t, profiles.UpsertPriceAdjustment(ctx, "u1", decimal.NewFromInt(-10)))
	require.NoError(t, profiles.UpsertPool(ctx, "u1", "HBD_stock"))
	p, err = profiles.Get(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "HBD_stock", p.AssignedPool)
	assert.True(t, decimal.NewFromInt(-10).Equal(p.PriceAdjustmentPct))

	list, err := profiles.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}
