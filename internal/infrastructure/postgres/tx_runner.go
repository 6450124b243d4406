package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/Repuestos-api/internal/application/catalog"
	"github.com/jhoicas/Repuestos-api/internal/application/orders"
	"github.com/jhoicas/Repuestos-api/internal/domain"
	"github.com/jhoicas/Repuestos-api/internal/domain/repository"
	"github.com/jhoicas/Repuestos-api/pkg/config"
	"github.com/jhoicas/Repuestos-api/pkg/logger"
	"github.com/jhoicas/Repuestos-api/pkg/metrics"
)

// Ensure TxRunner implements orders.TxRunner and catalog.StockTxRunner.
var _ orders.TxRunner = (*TxRunner)(nil)
var _ catalog.StockTxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
// Los abortos por deadlock (40P01) o serialización (40001) se reintentan hasta maxRetries
// veces y, si persisten, se devuelven como domain.ErrConflict.
type TxRunner struct {
	pool       *pgxpool.Pool
	timeout    time.Duration
	maxRetries int
	metrics    *metrics.EngineMetrics
	log        *logger.Logger
}

// NewTxRunner construye el runner con el pool y los límites de DB_TX_TIMEOUT_SECONDS / DB_TX_MAX_RETRIES.
func NewTxRunner(pool *pgxpool.Pool, cfg config.DBConfig, m *metrics.EngineMetrics, log *logger.Logger) *TxRunner {
	if log == nil {
		log = logger.Nop()
	}
	retries := cfg.TxMaxRetries
	if retries < 1 {
		retries = 1
	}
	return &TxRunner{
		pool:       pool,
		timeout:    cfg.TxTimeout,
		maxRetries: retries,
		metrics:    m,
		log:        log.Component("tx_runner"),
	}
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace Commit o Rollback.
func (r *TxRunner) Run(ctx context.Context, fn func(
	stockRepo repository.StockRepository,
	orderRepo repository.OrderRepository,
	itemRepo repository.OrderItemRepository,
	cartRepo repository.CartRepository,
) error) error {
	return r.withRetry(ctx, func(tx pgx.Tx) error {
		return fn(
			NewStockRepository(tx),
			NewOrderRepository(tx),
			NewOrderItemRepository(tx),
			NewCartRepository(tx),
		)
	})
}

// RunStock transacción solo con el libro de existencias (reemplazo y borrado de pools).
func (r *TxRunner) RunStock(ctx context.Context, fn func(stockRepo repository.StockRepository) error) error {
	return r.withRetry(ctx, func(tx pgx.Tx) error {
		return fn(NewStockRepository(tx))
	})
}

func (r *TxRunner) withRetry(ctx context.Context, body func(tx pgx.Tx) error) error {
	var err error
	for attempt := 1; attempt <= r.maxRetries; attempt++ {
		err = r.runOnce(ctx, body)
		if err == nil || !isRetryable(err) {
			return err
		}
		r.metrics.TxConflict()
		r.log.Warn().Err(err).Int("attempt", attempt).Msg("transacción abortada por conflicto")
		if ctx.Err() != nil {
			break
		}
	}
	return fmt.Errorf("%w: %w", domain.ErrConflict, err)
}

func (r *TxRunner) runOnce(ctx context.Context, body func(tx pgx.Tx) error) error {
	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := body(tx); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
