package catalog

import (
	"context"

	"github.com/jhoicas/Repuestos-api/internal/domain/repository"
)

// StockTxRunner unidad de trabajo con solo el libro de existencias (cargas y borrados de pool).
type StockTxRunner interface {
	RunStock(ctx context.Context, fn func(stockRepo repository.StockRepository) error) error
}
