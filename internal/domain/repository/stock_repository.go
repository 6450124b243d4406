package repository

import (
	"context"

	"github.com/jhoicas/Repuestos-api/internal/domain/entity"
)

// StockRepository puerto del libro de existencias por (número de parte, pool).
// Las operaciones de escritura se usan dentro de transacciones (TxRunner) para garantizar consistencia.
type StockRepository interface {
	// Get devuelve el registro activo o domain.ErrNotFound.
	Get(ctx context.Context, partNumber, pool string) (*entity.StockRecord, error)
	// TryDeduct bloquea la fila activa, asigna min(solicitado, disponible) y descuenta lo asignado
	// en un solo paso. Un repuesto inexistente no es error: devuelve Found=false.
	TryDeduct(ctx context.Context, partNumber, pool string, requested int64) (*entity.Allocation, error)
	// Restore suma amount al registro activo (inverso de TryDeduct).
	Restore(ctx context.Context, partNumber, pool string, amount int64) error
	// ReplacePool desactiva los registros activos del pool e inserta los nuevos como activos.
	ReplacePool(ctx context.Context, pool string, records []*entity.StockRecord) error
	// WipePool borra físicamente todos los registros del pool, activos o no.
	WipePool(ctx context.Context, pool string) (int64, error)
	Search(ctx context.Context, pool, term string, limit int) ([]*entity.StockRecord, error)
	ListActive(ctx context.Context, pool string) ([]*entity.StockRecord, error)
}
