package cart_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Repuestos-api/internal/application/cart"
	"github.com/jhoicas/Repuestos-api/internal/application/dto"
	"github.com/jhoicas/Repuestos-api/internal/application/orders"
	"github.com/jhoicas/Repuestos-api/internal/application/usecase"
	"github.com/jhoicas/Repuestos-api/internal/domain"
	"github.com/jhoicas/Repuestos-api/internal/domain/entity"
	"github.com/jhoicas/Repuestos-api/internal/domain/inventory"
	"github.com/jhoicas/Repuestos-api/internal/domain/repository"
	"github.com/jhoicas/Repuestos-api/internal/infrastructure/memory"
)

const pool = "parts_stock"

var pools = inventory.NewPoolSet(pool, "HBD_stock")

func setup(t *testing.T, records ...*entity.StockRecord) (*memory.Store, *cart.UseCase) {
	t.Helper()
	s := memory.NewStore()
	require.NoError(t, s.RunStock(context.Background(), func(stockRepo repository.StockRepository) error {
		return stockRepo.ReplacePool(context.Background(), pool, records)
	}))
	customers := usecase.NewCustomerUseCase(s.Profiles(), pools, pool, nil)
	creator := orders.NewCreateOrderUseCase(s, pools, nil, nil, nil)
	return s, cart.NewUseCase(s.Cart(), s.Stock(), customers, creator, nil)
}

func part(pn string, qty int64, price string) *entity.StockRecord {
	return &entity.StockRecord{PartNumber: pn, Description: "Repuesto " + pn, FreeQuantity: qty, UnitPrice: decimal.RequireFromString(price)}
}

func TestAdd_PrecioAjustadoYSumaCantidades(t *testing.T) {
	s, uc := setup(t, part("AB100", 10, "10"))
	ctx := context.Background()
	require.NoError(t, s.Profiles().UpsertPriceAdjustment(ctx, "u1", decimal.NewFromInt(5)))

	line, err := uc.Add(ctx, "u1", dto.AddCartItemRequest{PartNumber: "ab-100", Qty: 3})
	require.NoError(t, err)
	assert.Equal(t, "AB100", line.PartNumber)
	assert.Equal(t, "10.50", line.UnitPrice.StringFixed(2))

	line, err = uc.Add(ctx, "u1", dto.AddCartItemRequest{PartNumber: "AB100", Qty: 9})
	require.NoError(t, err)
	assert.Equal(t, int64(12), line.Qty)
	assert.Equal(t, int64(10), line.AllocatedQty)
	assert.Equal(t, string(entity.AllocationPartial), line.Status)

	_, err = uc.Add(ctx, "u1", dto.AddCartItemRequest{PartNumber: "ZZ", Qty: 1})
	require.ErrorIs(t, err, domain.ErrNotFound)
	_, err = uc.Add(ctx, "u1", dto.AddCartItemRequest{PartNumber: "AB100", Qty: 0})
	require.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestList_VistaPreviaContraStockActual(t *testing.T) {
	s, uc := setup(t, part("A", 2, "5"), part("B", 0, "1"), part("C", 9, "2"))
	ctx := context.Background()
	for _, pn := range []string{"A", "B", "C"} {
		_, err := uc.Add(ctx, "u1", dto.AddCartItemRequest{PartNumber: pn, Qty: 3})
		require.NoError(t, err)
	}
	// C desaparece del catálogo después de agregarlo
	require.NoError(t, s.RunStock(ctx, func(stockRepo repository.StockRepository) error {
		return stockRepo.ReplacePool(ctx, pool, []*entity.StockRecord{part("A", 2, "5"), part("B", 0, "1")})
	}))

	res, err := uc.List(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, res.Items, 3)
	assert.Equal(t, string(entity.AllocationPartial), res.Items[0].Status)
	assert.Equal(t, string(entity.AllocationOutOfStock), res.Items[1].Status)
	assert.Equal(t, string(entity.AllocationInvalidPart), res.Items[2].Status)
	assert.Equal(t, "24.00", res.TotalRequested.StringFixed(2))
	assert.Equal(t, "10.00", res.TotalAllocated.StringFixed(2))
}

func TestUpdateYRemove_SoloLineasPropias(t *testing.T) {
	_, uc := setup(t, part("A", 5, "1"))
	ctx := context.Background()
	line, err := uc.Add(ctx, "u1", dto.AddCartItemRequest{PartNumber: "A", Qty: 1})
	require.NoError(t, err)

	require.ErrorIs(t, uc.UpdateQty(ctx, "u2", line.ID, 4), domain.ErrForbidden)
	require.ErrorIs(t, uc.Remove(ctx, "u2", line.ID), domain.ErrForbidden)
	require.ErrorIs(t, uc.UpdateQty(ctx, "u1", line.ID, 0), domain.ErrInvalidInput)
	require.ErrorIs(t, uc.Remove(ctx, "u1", "zz"), domain.ErrNotFound)

	require.NoError(t, uc.UpdateQty(ctx, "u1", line.ID, 4))
	res, err := uc.List(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, int64(4), res.Items[0].Qty)

	require.NoError(t, uc.Remove(ctx, "u1", line.ID))
	res, err = uc.List(ctx, "u1")
	require.NoError(t, err)
	assert.Empty(t, res.Items)
}

func TestCheckout_SeleccionParcial(t *testing.T) {
	s, uc := setup(t, part("A", 10, "5"), part("B", 10, "2"))
	ctx := context.Background()
	a, err := uc.Add(ctx, "u1", dto.AddCartItemRequest{PartNumber: "A", Qty: 15})
	require.NoError(t, err)
	_, err = uc.Add(ctx, "u1", dto.AddCartItemRequest{PartNumber: "B", Qty: 1})
	require.NoError(t, err)

	res, err := uc.Checkout(ctx, "u1", []string{a.ID}, "")
	require.NoError(t, err)
	require.Len(t, res.Lines, 1)
	assert.Equal(t, int64(10), res.Lines[0].AllocatedQty)
	assert.Equal(t, "50.00", res.TotalPrice.StringFixed(2))

	left, err := s.Cart().ListByUser(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, left, 1)
	assert.Equal(t, "B", left[0].PartNumber)

	_, err = uc.Checkout(ctx, "u1", []string{"no-es-mia"}, "")
	require.ErrorIs(t, err, domain.ErrNotFound)

	res, err = uc.Checkout(ctx, "u1", nil, "")
	require.NoError(t, err)
	assert.Equal(t, "2.00", res.TotalPrice.StringFixed(2))

	_, err = uc.Checkout(ctx, "u1", nil, "")
	require.ErrorIs(t, err, domain.ErrInvalidInput)
}
