package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// StockRecord representa la existencia de un repuesto dentro de un pool de stock.
// Solo puede haber un registro activo por (PartNumber, StockPool); las cargas de catálogo
// desactivan los anteriores en lugar de borrarlos.
type StockRecord struct {
	ID           string
	PartNumber   string
	StockPool    string
	Description  string
	FreeQuantity int64 // puede quedar negativo solo si se saltó el bloqueo de fila
	UnitPrice    decimal.Decimal
	IsActive     bool
	CreatedAt    time.Time
}
