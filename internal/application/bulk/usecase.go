package bulk

import (
	"context"
	"fmt"

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

// OrderCreator coordinador que confirma el pedido masivo.
type OrderCreator interface {
	CreateOrder(ctx context.Context, in orders.CreateOrderInput) (*dto.OrderCreatedResponse, error)
}

// UseCase pedidos masivos: fusiona filas por número de parte, las cruza con el catálogo activo
// del cliente y muestra o confirma el resultado.
type UseCase struct {
	stock    repository.StockRepository
	profiles ports.ProfileResolver
	orders   OrderCreator
	log      *logger.Logger
}

// NewUseCase construye el caso de uso.
func NewUseCase(stock repository.StockRepository, profiles ports.ProfileResolver, creator OrderCreator, log *logger.Logger) *UseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &UseCase{stock: stock, profiles: profiles, orders: creator, log: log.Component("bulk")}
}

type preparedLine struct {
	inventory.RequestLine
	record    *entity.StockRecord
	unitPrice decimal.Decimal
}

// Enquiry vista previa sin tocar el stock. Las filas sin registro en el catálogo se marcan NoRecord.
func (uc *UseCase) Enquiry(ctx context.Context, userID string, rows []dto.BulkRowRequest) (*dto.BulkPreviewResponse, error) {
	lines, _, err := uc.prepare(ctx, userID, rows)
	if err != nil {
		return nil, err
	}
	out := &dto.BulkPreviewResponse{Lines: make([]dto.BulkPreviewLine, 0, len(lines)), Total: decimal.Zero}
	for _, l := range lines {
		pl := dto.BulkPreviewLine{
			PartNumber:   l.PartNumber,
			RequestedQty: l.RequestedQty,
			UnitPrice:    l.unitPrice,
			NoRecord:     l.record == nil,
		}
		var available int64
		if l.record != nil {
			available = l.record.FreeQuantity
			pl.Description = l.record.Description
		} else {
			out.NoRecordCount++
		}
		allocated, status := inventory.Allocate(l.RequestedQty, available, l.record != nil)
		pl.AvailableQty = available
		pl.AllocatedQty = allocated
		pl.Status = string(status)
		pl.LineTotal = l.unitPrice.Mul(decimal.NewFromInt(allocated))
		out.Total = out.Total.Add(pl.LineTotal)
		out.Lines = append(out.Lines, pl)
	}
	return out, nil
}

// Submit confirma el pedido con las líneas fusionadas que existen en el catálogo. La asignación real
// la hace el coordinador contra el stock vivo, no la vista previa.
func (uc *UseCase) Submit(ctx context.Context, userID string, rows []dto.BulkRowRequest, idempotencyKey string) (*dto.OrderCreatedResponse, error) {
	lines, profile, err := uc.prepare(ctx, userID, rows)
	if err != nil {
		return nil, err
	}
	in := orders.CreateOrderInput{
		UserID:         userID,
		StockPool:      profile.AssignedPool,
		IdempotencyKey: idempotencyKey,
	}
	dropped := 0
	for _, l := range lines {
		if l.record == nil {
			dropped++
			continue
		}
		in.Lines = append(in.Lines, orders.LineInput{
			PartNumber:   l.PartNumber,
			Description:  l.record.Description,
			RequestedQty: l.RequestedQty,
			UnitPrice:    l.unitPrice,
		})
	}
	if len(in.Lines) == 0 {
		return nil, fmt.Errorf("%w: ninguna línea coincide con el catálogo", domain.ErrInvalidInput)
	}
	if dropped > 0 {
		uc.log.Info().Str("user_id", userID).Int("dropped", dropped).Msg("líneas sin registro descartadas del pedido masivo")
	}
	return uc.orders.CreateOrder(ctx, in)
}

func (uc *UseCase) prepare(ctx context.Context, userID string, rows []dto.BulkRowRequest) ([]preparedLine, *entity.CustomerProfile, error) {
	if len(rows) == 0 {
		return nil, nil, fmt.Errorf("%w: el pedido masivo no tiene filas", domain.ErrInvalidInput)
	}
	req := make([]inventory.RequestLine, 0, len(rows))
	for i, r := range rows {
		if r.Qty <= 0 {
			return nil, nil, fmt.Errorf("%w: fila %d (%s) con cantidad %d", domain.ErrInvalidInput, i+1, r.PartNumber, r.Qty)
		}
		req = append(req, inventory.RequestLine{PartNumber: r.PartNumber, RequestedQty: r.Qty})
	}
	merged := inventory.MergeLines(req)
	if len(merged) == 0 {
		return nil, nil, fmt.Errorf("%w: ninguna fila tiene número de parte", domain.ErrInvalidInput)
	}

	profile, err := uc.profiles.Resolve(ctx, userID)
	if err != nil {
		return nil, nil, err
	}
	active, err := uc.stock.ListActive(ctx, profile.AssignedPool)
	if err != nil {
		return nil, nil, err
	}
	byPart := make(map[string]*entity.StockRecord, len(active))
	for _, rec := range active {
		byPart[rec.PartNumber] = rec
	}

	out := make([]preparedLine, 0, len(merged))
	for _, m := range merged {
		pl := preparedLine{RequestLine: m, unitPrice: decimal.Zero}
		if rec, ok := byPart[m.PartNumber]; ok {
			pl.record = rec
			pl.unitPrice = inventory.AdjustPrice(rec.UnitPrice, profile.PriceAdjustmentPct)
		}
		out = append(out, pl)
	}
	return out, profile, nil
}
