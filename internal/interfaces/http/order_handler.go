package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Repuestos-api/internal/application/dto"
	"github.com/jhoicas/Repuestos-api/internal/application/orders"
)

// OrderHandler consultas de pedidos (cliente y admin) y ciclo de vida (admin).
type OrderHandler struct {
	queries   *orders.QueryUseCase
	lifecycle *orders.LifecycleUseCase
}

// NewOrderHandler construye el handler.
func NewOrderHandler(queries *orders.QueryUseCase, lifecycle *orders.LifecycleUseCase) *OrderHandler {
	return &OrderHandler{queries: queries, lifecycle: lifecycle}
}

// ListMine godoc
// @Summary      Mis pedidos
// @Tags         orders
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.OrderResponse
// @Router       /api/orders [get]
func (h *OrderHandler) ListMine(c *fiber.Ctx) error {
	userID, ok := requireUser(c)
	if !ok {
		return nil
	}
	list, err := h.queries.ListByUser(c.UserContext(), userID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(list)
}

// GetMine godoc
// @Summary      Detalle de un pedido propio
// @Tags         orders
// @Security     Bearer
// @Produce      json
// @Param        id   path      string  true  "ID del pedido"
// @Success      200  {object}  dto.OrderDetailResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/orders/{id} [get]
func (h *OrderHandler) GetMine(c *fiber.Ctx) error {
	userID, ok := requireUser(c)
	if !ok {
		return nil
	}
	res, err := h.queries.GetDetailsForUser(c.UserContext(), userID, c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(res)
}

// ListAll godoc
// @Summary      Todos los pedidos
// @Tags         admin
// @Security     Bearer
// @Produce      json
// @Param        pool  query    string  false  "Filtrar por pool"
// @Success      200   {array}  dto.OrderResponse
// @Router       /api/admin/orders [get]
func (h *OrderHandler) ListAll(c *fiber.Ctx) error {
	list, err := h.queries.ListAll(c.UserContext(), c.Query("pool"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(list)
}

// Get godoc
// @Summary      Detalle de cualquier pedido
// @Tags         admin
// @Security     Bearer
// @Produce      json
// @Param        id   path      string  true  "ID del pedido"
// @Success      200  {object}  dto.OrderDetailResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/admin/orders/{id} [get]
func (h *OrderHandler) Get(c *fiber.Ctx) error {
	res, err := h.queries.GetDetails(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(res)
}

// SetStatus godoc
// @Summary      Cambiar estado de un pedido
// @Description  Rejected devuelve al stock lo asignado, una sola vez por pedido.
// @Tags         admin
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path      string                        true  "ID del pedido"
// @Param        body  body      dto.UpdateOrderStatusRequest  true  "status"
// @Success      200   {object}  dto.OperationResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/admin/orders/{id}/status [patch]
func (h *OrderHandler) SetStatus(c *fiber.Ctx) error {
	var in dto.UpdateOrderStatusRequest
	if err := parseBody(c, &in); err != nil {
		return respondError(c, err)
	}
	res, err := h.lifecycle.SetStatus(c.UserContext(), c.Params("id"), in.Status)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.OK("estado actualizado a "+res.Status, res))
}

// Delete godoc
// @Summary      Borrar un pedido
// @Description  Devuelve el stock asignado salvo que ya se haya devuelto al rechazarlo.
// @Tags         admin
// @Security     Bearer
// @Produce      json
// @Param        id   path      string  true  "ID del pedido"
// @Success      200  {object}  dto.OperationResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/admin/orders/{id} [delete]
func (h *OrderHandler) Delete(c *fiber.Ctx) error {
	if err := h.lifecycle.DeleteOrder(c.UserContext(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.OK("pedido eliminado", nil))
}

// DeleteByPool godoc
// @Summary      Borrar el historial de un pool
// @Description  Borra pedidos y líneas del pool sin tocar el stock.
// @Tags         admin
// @Security     Bearer
// @Produce      json
// @Param        pool  path      string  true  "Pool de stock"
// @Success      200   {object}  dto.OperationResponse
// @Router       /api/admin/pools/{pool}/orders [delete]
func (h *OrderHandler) DeleteByPool(c *fiber.Ctx) error {
	n, err := h.lifecycle.DeleteAllOrders(c.UserContext(), c.Params("pool"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.OK(fmt.Sprintf("%d pedidos eliminados", n), dto.CountResponse{Count: n}))
}

// DeleteHistory godoc
// @Summary      Borrar todo el historial de pedidos
// @Tags         admin
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.OperationResponse
// @Router       /api/admin/orders [delete]
func (h *OrderHandler) DeleteHistory(c *fiber.Ctx) error {
	n, err := h.lifecycle.DeleteAllHistory(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.OK(fmt.Sprintf("%d pedidos eliminados", n), dto.CountResponse{Count: n}))
}
