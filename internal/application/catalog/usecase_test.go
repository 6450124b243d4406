package catalog_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Repuestos-api/internal/application/catalog"
	"github.com/jhoicas/Repuestos-api/internal/application/dto"
	"github.com/jhoicas/Repuestos-api/internal/application/usecase"
	"github.com/jhoicas/Repuestos-api/internal/domain"
	"github.com/jhoicas/Repuestos-api/internal/domain/inventory"
	"github.com/jhoicas/Repuestos-api/internal/infrastructure/memory"
)

var pools = inventory.NewPoolSet("parts_stock", "HBD_stock")

func newCatalog(s *memory.Store) *catalog.UseCase {
	customers := usecase.NewCustomerUseCase(s.Profiles(), pools, "parts_stock", nil)
	return catalog.NewUseCase(s, s.Stock(), customers, pools, nil)
}

func row(pn string, qty int64, price string) dto.StockRecordInput {
	return dto.StockRecordInput{PartNumber: pn, Description: "Filtro " + pn, FreeQuantity: qty, UnitPrice: decimal.RequireFromString(price)}
}

func TestReplacePool_NormalizaYReemplaza(t *testing.T) {
	s := memory.NewStore()
	uc := newCatalog(s)
	ctx := context.Background()

	n, err := uc.ReplacePool(ctx, "parts_stock", []dto.StockRecordInput{row("ab-100", 5, "10"), row("CD 200", 1, "3.5")})
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	p, err := uc.GetPart(ctx, "u1", "AB100")
	require.NoError(t, err)
	assert.Equal(t, "AB100", p.PartNumber)
	assert.Equal(t, int64(5), p.FreeQuantity)

	_, err = uc.ReplacePool(ctx, "parts_stock", []dto.StockRecordInput{row("CD200", 9, "3.5")})
	require.NoError(t, err)
	_, err = uc.GetPart(ctx, "u1", "AB100")
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestReplacePool_RechazaFilasInvalidas(t *testing.T) {
	s := memory.NewStore()
	uc := newCatalog(s)
	ctx := context.Background()
	_, err := uc.ReplacePool(ctx, "parts_stock", []dto.StockRecordInput{row("A1", 1, "1")})
	require.NoError(t, err)

	_, err = uc.ReplacePool(ctx, "parts_stock", []dto.StockRecordInput{row("B-1", 1, "1"), row("b1", 1, "1")})
	require.ErrorIs(t, err, domain.ErrDuplicate)
	_, err = uc.ReplacePool(ctx, "parts_stock", []dto.StockRecordInput{row("B1", -1, "1")})
	require.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = uc.ReplacePool(ctx, "parts_stock", []dto.StockRecordInput{row("B1", 1, "-0.01")})
	require.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = uc.ReplacePool(ctx, "otro", []dto.StockRecordInput{row("B1", 1, "1")})
	require.ErrorIs(t, err, domain.ErrUnknownPool)

	// las cargas rechazadas no tocaron el pool
	p, err := uc.GetPart(ctx, "u1", "A1")
	require.NoError(t, err)
	assert.Equal(t, int64(1), p.FreeQuantity)
}

func TestSearch_PrecioAjustadoYPoolDelCliente(t *testing.T) {
	s := memory.NewStore()
	uc := newCatalog(s)
	ctx := context.Background()
	_, err := uc.ReplacePool(ctx, "parts_stock", []dto.StockRecordInput{row("AB100", 5, "10")})
	require.NoError(t, err)
	_, err = uc.ReplacePool(ctx, "HBD_stock", []dto.StockRecordInput{row("AB100", 2, "20")})
	require.NoError(t, err)

	require.NoError(t, s.Profiles().UpsertPriceAdjustment(ctx, "u2", decimal.NewFromInt(-10)))
	require.NoError(t, s.Profiles().UpsertPool(ctx, "u2", "HBD_stock"))

	res, err := uc.Search(ctx, "u1", "ab-1")
	require.NoError(t, err)
	require.Equal(t, 1, res.Total)
	assert.Equal(t, "10.00", res.Items[0].UnitPrice.StringFixed(2))

	res, err = uc.Search(ctx, "u2", "ab-1")
	require.NoError(t, err)
	require.Equal(t, 1, res.Total)
	assert.Equal(t, "HBD_stock", res.Items[0].StockPool)
	assert.Equal(t, "18.00", res.Items[0].UnitPrice.StringFixed(2))

	_, err = uc.Search(ctx, "u1", "  ")
	require.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestWipePool(t *testing.T) {
	s := memory.NewStore()
	uc := newCatalog(s)
	ctx := context.Background()
	_, err := uc.ReplacePool(ctx, "parts_stock", []dto.StockRecordInput{row("A1", 1, "1")})
	require.NoError(t, err)
	_, err = uc.ReplacePool(ctx, "parts_stock", []dto.StockRecordInput{row("A1", 2, "1")})
	require.NoError(t, err)

	n, err := uc.WipePool(ctx, "parts_stock")
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
	_, err = uc.GetPart(ctx, "u1", "A1")
	require.ErrorIs(t, err, domain.ErrNotFound)
}
