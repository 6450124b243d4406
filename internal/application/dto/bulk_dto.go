package dto

import "github.com/shopspring/decimal"

// BulkRowRequest fila de un pedido masivo (número de parte tal como lo escribió el cliente).
type BulkRowRequest struct {
	PartNumber string `json:"part_number" validate:"required"`
	Qty        int64  `json:"qty" validate:"gt=0"`
}

// BulkRequest body para POST /api/bulk/enquiry y POST /api/bulk/orders.
type BulkRequest struct {
	Rows []BulkRowRequest `json:"rows" validate:"required,min=1,dive"`
}

// BulkPreviewLine línea fusionada por número de parte con su asignación estimada.
type BulkPreviewLine struct {
	PartNumber   string          `json:"part_number"`
	Description  string          `json:"description"`
	RequestedQty int64           `json:"requested_qty"`
	AvailableQty int64           `json:"available_qty"`
	AllocatedQty int64           `json:"allocated_qty"`
	Status       string          `json:"status"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
	LineTotal    decimal.Decimal `json:"line_total"`
	NoRecord     bool            `json:"no_record"`
}

// BulkPreviewResponse vista previa de un pedido masivo.
type BulkPreviewResponse struct {
	Lines         []BulkPreviewLine `json:"lines"`
	Total         decimal.Decimal   `json:"total"`
	NoRecordCount int               `json:"no_record_count"`
}
