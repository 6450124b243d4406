package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Repuestos-api/internal/domain"
	"github.com/jhoicas/Repuestos-api/internal/domain/entity"
	"github.com/jhoicas/Repuestos-api/internal/domain/inventory"
	"github.com/jhoicas/Repuestos-api/internal/domain/repository"
)

var _ repository.StockRepository = (*StockRepo)(nil)

const stockColumns = `id, part_number, stock_pool, description, free_stock, unit_price, is_active, created_at`

// StockRepo implementación de StockRepository sobre PostgreSQL (usable con pool o tx).
type StockRepo struct {
	q Querier
}

// NewStockRepository construye el adaptador de stock. Pasar pool o tx (Querier).
func NewStockRepository(q Querier) *StockRepo {
	return &StockRepo{q: q}
}

// Get obtiene el registro activo de un repuesto en un pool.
func (r *StockRepo) Get(ctx context.Context, partNumber, pool string) (*entity.StockRecord, error) {
	query := `SELECT ` + stockColumns + `
		FROM parts_stock
		WHERE part_number = $1 AND stock_pool = $2 AND is_active`
	rec, err := scanStock(r.q.QueryRow(ctx, query, partNumber, pool))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: repuesto %s en %s", domain.ErrNotFound, partNumber, pool)
		}
		return nil, fmt.Errorf("get stock: %w", err)
	}
	return rec, nil
}

// TryDeduct bloquea la fila activa (SELECT FOR UPDATE), decide la asignación contra la cantidad
// bloqueada y descuenta lo asignado. La fila queda bloqueada hasta el fin de la transacción.
func (r *StockRepo) TryDeduct(ctx context.Context, partNumber, pool string, requested int64) (*entity.Allocation, error) {
	query := `
		SELECT id, description, free_stock, unit_price
		FROM parts_stock
		WHERE part_number = $1 AND stock_pool = $2 AND is_active
		FOR UPDATE`
	var (
		id          string
		description string
		free        int64
		price       decimal.Decimal
	)
	err := r.q.QueryRow(ctx, query, partNumber, pool).Scan(&id, &description, &free, &price)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			allocated, status := inventory.Allocate(requested, 0, false)
			return &entity.Allocation{
				PartNumber:   partNumber,
				RequestedQty: requested,
				AllocatedQty: allocated,
				Status:       status,
				UnitPrice:    decimal.Zero,
			}, nil
		}
		return nil, fmt.Errorf("lock stock: %w", err)
	}

	allocated, status := inventory.Allocate(requested, free, true)
	if allocated > 0 {
		_, err = r.q.Exec(ctx, `UPDATE parts_stock SET free_stock = free_stock - $2 WHERE id = $1`, id, allocated)
		if err != nil {
			return nil, fmt.Errorf("deduct stock: %w", err)
		}
	}
	return &entity.Allocation{
		PartNumber:   partNumber,
		Description:  description,
		Found:        true,
		RequestedQty: requested,
		AvailableQty: free,
		AllocatedQty: allocated,
		Status:       status,
		UnitPrice:    price,
	}, nil
}

// Restore devuelve unidades al registro activo. Sin registro activo no hay nada que restaurar.
func (r *StockRepo) Restore(ctx context.Context, partNumber, pool string, amount int64) error {
	if amount <= 0 {
		return nil
	}
	query := `
		UPDATE parts_stock SET free_stock = free_stock + $3
		WHERE part_number = $1 AND stock_pool = $2 AND is_active`
	if _, err := r.q.Exec(ctx, query, partNumber, pool, amount); err != nil {
		return fmt.Errorf("restore stock: %w", err)
	}
	return nil
}

// ReplacePool desactiva los registros activos del pool y copia los nuevos (COPY).
func (r *StockRepo) ReplacePool(ctx context.Context, pool string, records []*entity.StockRecord) error {
	if _, err := r.q.Exec(ctx, `UPDATE parts_stock SET is_active = false WHERE stock_pool = $1 AND is_active`, pool); err != nil {
		return fmt.Errorf("deactivate pool: %w", err)
	}
	if len(records) == 0 {
		return nil
	}
	now := time.Now()
	columns := []string{"id", "part_number", "stock_pool", "description", "free_stock", "unit_price", "is_active", "created_at"}
	_, err := r.q.CopyFrom(ctx, pgx.Identifier{"parts_stock"}, columns, pgx.CopyFromSlice(len(records), func(i int) ([]any, error) {
		rec := records[i]
		if rec.ID == "" {
			rec.ID = uuid.New().String()
		}
		rec.StockPool = pool
		rec.IsActive = true
		rec.CreatedAt = now
		return []any{rec.ID, rec.PartNumber, pool, rec.Description, rec.FreeQuantity, rec.UnitPrice, true, now}, nil
	}))
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: repuesto repetido en la carga", domain.ErrDuplicate)
		}
		return fmt.Errorf("copy pool: %w", err)
	}
	return nil
}

// WipePool borra todos los registros del pool, activos e inactivos.
func (r *StockRepo) WipePool(ctx context.Context, pool string) (int64, error) {
	tag, err := r.q.Exec(ctx, `DELETE FROM parts_stock WHERE stock_pool = $1`, pool)
	if err != nil {
		return 0, fmt.Errorf("wipe pool: %w", err)
	}
	return tag.RowsAffected(), nil
}

// Search busca por número de parte (sin guiones) o descripción, prefijos primero.
func (r *StockRepo) Search(ctx context.Context, pool, term string, limit int) ([]*entity.StockRecord, error) {
	if limit <= 0 {
		limit = 50
	}
	part := likeEscape(inventory.NormalizePartNumber(term))
	desc := likeEscape(term)
	query := `SELECT ` + stockColumns + `
		FROM parts_stock
		WHERE stock_pool = $1 AND is_active
		  AND (part_number ILIKE $2 OR description ILIKE $3)
		ORDER BY (part_number ILIKE $4) DESC, part_number
		LIMIT $5`
	rows, err := r.q.Query(ctx, query, pool, "%"+part+"%", "%"+desc+"%", part+"%", limit)
	if err != nil {
		return nil, fmt.Errorf("search stock: %w", err)
	}
	return collectStock(rows)
}

// ListActive registros activos del pool ordenados por número de parte.
func (r *StockRepo) ListActive(ctx context.Context, pool string) ([]*entity.StockRecord, error) {
	query := `SELECT ` + stockColumns + `
		FROM parts_stock
		WHERE stock_pool = $1 AND is_active
		ORDER BY part_number`
	rows, err := r.q.Query(ctx, query, pool)
	if err != nil {
		return nil, fmt.Errorf("list stock: %w", err)
	}
	return collectStock(rows)
}

func scanStock(row pgx.Row) (*entity.StockRecord, error) {
	var s entity.StockRecord
	err := row.Scan(&s.ID, &s.PartNumber, &s.StockPool, &s.Description, &s.FreeQuantity, &s.UnitPrice, &s.IsActive, &s.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func collectStock(rows pgx.Rows) ([]*entity.StockRecord, error) {
	defer rows.Close()
	var list []*entity.StockRecord
	for rows.Next() {
		s, err := scanStock(rows)
		if err != nil {
			return nil, fmt.Errorf("scan stock: %w", err)
		}
		list = append(list, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate stock: %w", err)
	}
	return list, nil
}
