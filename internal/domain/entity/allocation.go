package entity

import "github.com/shopspring/decimal"

// AllocationStatus etiqueta el resultado de asignar una cantidad solicitada contra el stock.
type AllocationStatus string

const (
	AllocationFull        AllocationStatus = "Fully Allocated"
	AllocationPartial     AllocationStatus = "Partial Fulfillment"
	AllocationOutOfStock  AllocationStatus = "Out of Stock"
	AllocationInvalidPart AllocationStatus = "Invalid Part"
)

// Allocation es el resultado de una asignación sobre una línea.
// AvailableQty es el stock observado antes de descontar (snapshot).
type Allocation struct {
	PartNumber   string
	Description  string
	Found        bool
	RequestedQty int64
	AvailableQty int64
	AllocatedQty int64
	Status       AllocationStatus
	UnitPrice    decimal.Decimal
}
