package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Repuestos-api/internal/application/cart"
	"github.com/jhoicas/Repuestos-api/internal/application/dto"
)

// HeaderIdempotencyKey evita pedidos duplicados cuando el cliente reintenta la confirmación.
const HeaderIdempotencyKey = "Idempotency-Key"

// CartHandler carrito del cliente autenticado.
type CartHandler struct {
	uc *cart.UseCase
}

// NewCartHandler construye el handler.
func NewCartHandler(uc *cart.UseCase) *CartHandler {
	return &CartHandler{uc: uc}
}

// List godoc
// @Summary      Ver carrito
// @Description  Líneas del carrito con la asignación que tendrían contra el stock actual.
// @Tags         cart
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.CartResponse
// @Router       /api/cart [get]
func (h *CartHandler) List(c *fiber.Ctx) error {
	userID, ok := requireUser(c)
	if !ok {
		return nil
	}
	res, err := h.uc.List(c.UserContext(), userID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(res)
}

// Add godoc
// @Summary      Agregar al carrito
// @Tags         cart
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body      dto.AddCartItemRequest  true  "part_number, qty"
// @Success      201   {object}  dto.CartLineResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/cart [post]
func (h *CartHandler) Add(c *fiber.Ctx) error {
	userID, ok := requireUser(c)
	if !ok {
		return nil
	}
	var in dto.AddCartItemRequest
	if err := parseBody(c, &in); err != nil {
		return respondError(c, err)
	}
	res, err := h.uc.Add(c.UserContext(), userID, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(res)
}

// Update godoc
// @Summary      Cambiar cantidad de una línea
// @Tags         cart
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path      string                     true  "ID de la línea"
// @Param        body  body      dto.UpdateCartItemRequest  true  "qty"
// @Success      200   {object}  dto.OperationResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/cart/{id} [put]
func (h *CartHandler) Update(c *fiber.Ctx) error {
	userID, ok := requireUser(c)
	if !ok {
		return nil
	}
	var in dto.UpdateCartItemRequest
	if err := parseBody(c, &in); err != nil {
		return respondError(c, err)
	}
	if err := h.uc.UpdateQty(c.UserContext(), userID, c.Params("id"), in.Qty); err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.OK("cantidad actualizada", nil))
}

// Remove godoc
// @Summary      Quitar una línea del carrito
// @Tags         cart
// @Security     Bearer
// @Produce      json
// @Param        id   path      string  true  "ID de la línea"
// @Success      200  {object}  dto.OperationResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/cart/{id} [delete]
func (h *CartHandler) Remove(c *fiber.Ctx) error {
	userID, ok := requireUser(c)
	if !ok {
		return nil
	}
	if err := h.uc.Remove(c.UserContext(), userID, c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.OK("línea eliminada", nil))
}

// Clear godoc
// @Summary      Vaciar el carrito
// @Tags         cart
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.OperationResponse
// @Router       /api/cart [delete]
func (h *CartHandler) Clear(c *fiber.Ctx) error {
	userID, ok := requireUser(c)
	if !ok {
		return nil
	}
	if err := h.uc.Clear(c.UserContext(), userID); err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.OK("carrito vacío", nil))
}

// Checkout godoc
// @Summary      Confirmar pedido desde el carrito
// @Description  Pide las líneas indicadas (todas si no se indica ninguna) y las quita del carrito.
// @Tags         cart
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        Idempotency-Key  header    string               false  "Clave para reintentos seguros"
// @Param        body             body      dto.CheckoutRequest  false  "cart_item_ids"
// @Success      201              {object}  dto.OrderCreatedResponse
// @Failure      400              {object}  dto.ErrorResponse
// @Failure      409              {object}  dto.ErrorResponse
// @Router       /api/cart/checkout [post]
func (h *CartHandler) Checkout(c *fiber.Ctx) error {
	userID, ok := requireUser(c)
	if !ok {
		return nil
	}
	var in dto.CheckoutRequest
	if len(c.Body()) > 0 {
		if err := parseBody(c, &in); err != nil {
			return respondError(c, err)
		}
	}
	res, err := h.uc.Checkout(c.UserContext(), userID, in.CartItemIDs, c.Get(HeaderIdempotencyKey))
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(res)
}
