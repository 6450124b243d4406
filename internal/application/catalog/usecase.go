package catalog

import (
	"context"
	"fmt"
	"strings"

	"github.com/jhoicas/Repuestos-api/internal/application/dto"
	"github.com/jhoicas/Repuestos-api/internal/application/ports"
	"github.com/jhoicas/Repuestos-api/internal/domain"
	"github.com/jhoicas/Repuestos-api/internal/domain/entity"
	"github.com/jhoicas/Repuestos-api/internal/domain/inventory"
	"github.com/jhoicas/Repuestos-api/internal/domain/repository"
	"github.com/jhoicas/Repuestos-api/pkg/logger"
)

// SearchLimit máximo de resultados de una búsqueda de catálogo.
const SearchLimit = 50

// UseCase frontera de ingesta del catálogo (reemplazo y borrado de pools) y consultas de repuestos
// con el precio ajustado al cliente.
type UseCase struct {
	txRunner StockTxRunner
	stock    repository.StockRepository
	profiles ports.ProfileResolver
	pools    inventory.PoolSet
	log      *logger.Logger
}

// NewUseCase construye el caso de uso. stock se usa para lecturas fuera de transacción.
func NewUseCase(
	txRunner StockTxRunner,
	stock repository.StockRepository,
	profiles ports.ProfileResolver,
	pools inventory.PoolSet,
	log *logger.Logger,
) *UseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &UseCase{txRunner: txRunner, stock: stock, profiles: profiles, pools: pools, log: log.Component("catalog")}
}

// ReplacePool reemplaza el catálogo activo del pool por las filas dadas, todo o nada.
// Los números de parte se normalizan y no pueden repetirse dentro de la carga.
func (uc *UseCase) ReplacePool(ctx context.Context, pool string, rows []dto.StockRecordInput) (int, error) {
	if err := uc.pools.Validate(pool); err != nil {
		return 0, err
	}
	records := make([]*entity.StockRecord, 0, len(rows))
	seen := make(map[string]int, len(rows))
	for i, row := range rows {
		pn := inventory.NormalizePartNumber(row.PartNumber)
		switch {
		case pn == "":
			return 0, fmt.Errorf("%w: fila %d sin número de parte", domain.ErrInvalidInput, i+1)
		case row.FreeQuantity < 0:
			return 0, fmt.Errorf("%w: fila %d (%s) con cantidad negativa", domain.ErrInvalidInput, i+1, pn)
		case row.UnitPrice.IsNegative():
			return 0, fmt.Errorf("%w: fila %d (%s) con precio negativo", domain.ErrInvalidInput, i+1, pn)
		}
		if prev, dup := seen[pn]; dup {
			return 0, fmt.Errorf("%w: %s aparece en las filas %d y %d", domain.ErrDuplicate, pn, prev, i+1)
		}
		seen[pn] = i + 1
		records = append(records, &entity.StockRecord{
			PartNumber:   pn,
			Description:  strings.TrimSpace(row.Description),
			FreeQuantity: row.FreeQuantity,
			UnitPrice:    row.UnitPrice.Round(2),
		})
	}

	err := uc.txRunner.RunStock(ctx, func(stockRepo repository.StockRepository) error {
		return stockRepo.ReplacePool(ctx, pool, records)
	})
	if err != nil {
		return 0, err
	}
	uc.log.Info().Str("pool", pool).Int("records", len(records)).Msg("catálogo del pool reemplazado")
	return len(records), nil
}

// WipePool borra todos los registros del pool, activos e históricos.
func (uc *UseCase) WipePool(ctx context.Context, pool string) (int64, error) {
	if err := uc.pools.Validate(pool); err != nil {
		return 0, err
	}
	var deleted int64
	err := uc.txRunner.RunStock(ctx, func(stockRepo repository.StockRepository) error {
		n, err := stockRepo.WipePool(ctx, pool)
		deleted = n
		return err
	})
	if err != nil {
		return 0, err
	}
	uc.log.Warn().Str("pool", pool).Int64("records", deleted).Msg("pool de stock vaciado")
	return deleted, nil
}

// Search busca en el pool del cliente por número de parte o descripción.
func (uc *UseCase) Search(ctx context.Context, userID, term string) (*dto.SearchResponse, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return nil, fmt.Errorf("%w: término de búsqueda requerido", domain.ErrInvalidInput)
	}
	profile, err := uc.profiles.Resolve(ctx, userID)
	if err != nil {
		return nil, err
	}
	list, err := uc.stock.Search(ctx, profile.AssignedPool, term, SearchLimit)
	if err != nil {
		return nil, err
	}
	out := &dto.SearchResponse{Items: make([]dto.PartResponse, 0, len(list))}
	for _, rec := range list {
		out.Items = append(out.Items, toPartResponse(rec, profile))
	}
	out.Total = len(out.Items)
	return out, nil
}

// GetPart repuesto del pool del cliente; domain.ErrNotFound si no existe o está inactivo.
func (uc *UseCase) GetPart(ctx context.Context, userID, partNumber string) (*dto.PartResponse, error) {
	pn := inventory.NormalizePartNumber(partNumber)
	if pn == "" {
		return nil, fmt.Errorf("%w: número de parte requerido", domain.ErrInvalidInput)
	}
	profile, err := uc.profiles.Resolve(ctx, userID)
	if err != nil {
		return nil, err
	}
	rec, err := uc.stock.Get(ctx, pn, profile.AssignedPool)
	if err != nil {
		return nil, err
	}
	out := toPartResponse(rec, profile)
	return &out, nil
}

func toPartResponse(rec *entity.StockRecord, profile *entity.CustomerProfile) dto.PartResponse {
	return dto.PartResponse{
		PartNumber:   rec.PartNumber,
		Description:  rec.Description,
		StockPool:    rec.StockPool,
		FreeQuantity: rec.FreeQuantity,
		UnitPrice:    inventory.AdjustPrice(rec.UnitPrice, profile.PriceAdjustmentPct),
	}
}
