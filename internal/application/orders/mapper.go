package orders

import (
	"github.com/jhoicas/Repuestos-api/internal/application/dto"
	"github.com/jhoicas/Repuestos-api/internal/domain/entity"
)

func toOrderResponse(o *entity.Order) dto.OrderResponse {
	return dto.OrderResponse{
		ID:            o.ID,
		UserID:        o.UserID,
		StockPool:     o.StockPool,
		TotalPrice:    o.TotalPrice,
		Status:        string(o.Status),
		StockRestored: o.StockRestored,
		CreatedAt:     o.CreatedAt,
		UpdatedAt:     o.UpdatedAt,
	}
}

func toOrderResponses(list []*entity.Order) []dto.OrderResponse {
	out := make([]dto.OrderResponse, 0, len(list))
	for _, o := range list {
		out = append(out, toOrderResponse(o))
	}
	return out
}

func toLineResponse(it *entity.OrderItem, status entity.AllocationStatus) dto.OrderLineResponse {
	return dto.OrderLineResponse{
		PartNumber:   it.PartNumber,
		Description:  it.Description,
		RequestedQty: it.RequestedQty,
		AvailableQty: it.AvailableQty,
		AllocatedQty: it.AllocatedQty,
		Status:       string(status),
		UnitPrice:    it.UnitPrice,
		LineTotal:    it.LineTotal(),
	}
}
