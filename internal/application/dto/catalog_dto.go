package dto

import "github.com/shopspring/decimal"

// StockRecordInput fila de una carga de catálogo ya limpia (el mapeo de columnas ocurre fuera).
type StockRecordInput struct {
	PartNumber   string          `json:"part_number" validate:"required"`
	Description  string          `json:"description"`
	FreeQuantity int64           `json:"free_quantity" validate:"gte=0"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
}

// ReplacePoolRequest body para PUT /api/admin/pools/:pool/stock.
type ReplacePoolRequest struct {
	Records []StockRecordInput `json:"records" validate:"dive"`
}

// PartResponse repuesto visto por un cliente: precio ya ajustado a su perfil.
type PartResponse struct {
	PartNumber   string          `json:"part_number"`
	Description  string          `json:"description"`
	StockPool    string          `json:"stock_pool"`
	FreeQuantity int64           `json:"free_quantity"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
}

// SearchResponse resultado de GET /api/catalog/parts?q=.
type SearchResponse struct {
	Items []PartResponse `json:"items"`
	Total int            `json:"total"`
}
