package bulk_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Repuestos-api/internal/application/bulk"
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

func setup(t *testing.T, records ...*entity.StockRecord) (*memory.Store, *bulk.UseCase) {
	t.Helper()
	s := memory.NewStore()
	require.NoError(t, s.RunStock(context.Background(), func(stockRepo repository.StockRepository) error {
		return stockRepo.ReplacePool(context.Background(), pool, records)
	}))
	customers := usecase.NewCustomerUseCase(s.Profiles(), pools, pool, nil)
	creator := orders.NewCreateOrderUseCase(s, pools, nil, nil, nil)
	return s, bulk.NewUseCase(s.Stock(), customers, creator, nil)
}

func part(pn string, qty int64, price string) *entity.StockRecord {
	return &entity.StockRecord{PartNumber: pn, Description: "Repuesto " + pn, FreeQuantity: qty, UnitPrice: decimal.RequireFromString(price)}
}

func TestEnquiry_FusionaFilasAntesDeAsignar(t *testing.T) {
	_, uc := setup(t, part("AB100", 6, "2"))

	res, err := uc.Enquiry(context.Background(), "u1", []dto.BulkRowRequest{
		{PartNumber: "AB-100", Qty: 3},
		{PartNumber: "XX-1", Qty: 2},
		{PartNumber: "ab100", Qty: 5},
	})
	require.NoError(t, err)
	require.Len(t, res.Lines, 2)

	first := res.Lines[0]
	assert.Equal(t, "AB100", first.PartNumber)
	assert.Equal(t, int64(8), first.RequestedQty)
	assert.Equal(t, int64(6), first.AvailableQty)
	assert.Equal(t, int64(6), first.AllocatedQty)
	assert.Equal(t, string(entity.AllocationPartial), first.Status)
	assert.False(t, first.NoRecord)

	second := res.Lines[1]
	assert.Equal(t, "XX1", second.PartNumber)
	assert.True(t, second.NoRecord)
	assert.Equal(t, string(entity.AllocationInvalidPart), second.Status)

	assert.Equal(t, 1, res.NoRecordCount)
	assert.Equal(t, "12.00", res.Total.StringFixed(2))
}

func TestEnquiry_NoTocaStock(t *testing.T) {
	s, uc := setup(t, part("A1", 4, "1"))
	_, err := uc.Enquiry(context.Background(), "u1", []dto.BulkRowRequest{{PartNumber: "A1", Qty: 4}})
	require.NoError(t, err)
	rec, err := s.Stock().Get(context.Background(), "A1", pool)
	require.NoError(t, err)
	assert.Equal(t, int64(4), rec.FreeQuantity)
}

func TestSubmit_DescartaSinRegistroYCreaPedido(t *testing.T) {
	s, uc := setup(t, part("AB100", 6, "2"))
	ctx := context.Background()
	require.NoError(t, s.Profiles().UpsertPriceAdjustment(ctx, "u1", decimal.NewFromInt(10)))

	res, err := uc.Submit(ctx, "u1", []dto.BulkRowRequest{
		{PartNumber: "AB-100", Qty: 3},
		{PartNumber: "XX-1", Qty: 2},
		{PartNumber: "AB100", Qty: 5},
	}, "")
	require.NoError(t, err)
	require.Len(t, res.Lines, 1)
	assert.Equal(t, int64(8), res.Lines[0].RequestedQty)
	assert.Equal(t, int64(6), res.Lines[0].AllocatedQty)
	assert.Equal(t, "2.20", res.Lines[0].UnitPrice.StringFixed(2))
	assert.Equal(t, "13.20", res.TotalPrice.StringFixed(2))

	rec, err := s.Stock().Get(ctx, "AB100", pool)
	require.NoError(t, err)
	assert.Equal(t, int64(0), rec.FreeQuantity)
}

func TestSubmit_Errores(t *testing.T) {
	_, uc := setup(t, part("AB100", 6, "2"))
	ctx := context.Background()

	_, err := uc.Submit(ctx, "u1", []dto.BulkRowRequest{{PartNumber: "XX", Qty: 1}}, "")
	require.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = uc.Submit(ctx, "u1", nil, "")
	require.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = uc.Enquiry(ctx, "u1", []dto.BulkRowRequest{{PartNumber: "AB100", Qty: 0}})
	require.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = uc.Enquiry(ctx, "u1", []dto.BulkRowRequest{{PartNumber: " - ", Qty: 1}})
	require.ErrorIs(t, err, domain.ErrInvalidInput)
}
