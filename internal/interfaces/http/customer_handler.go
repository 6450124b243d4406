package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Repuestos-api/internal/application/dto"
	"github.com/jhoicas/Repuestos-api/internal/application/usecase"
)

// CustomerHandler perfiles comerciales de clientes (admin).
type CustomerHandler struct {
	uc *usecase.CustomerUseCase
}

// NewCustomerHandler construye el handler.
func NewCustomerHandler(uc *usecase.CustomerUseCase) *CustomerHandler {
	return &CustomerHandler{uc: uc}
}

// List godoc
// @Summary      Listar perfiles de cliente
// @Tags         admin
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.CustomerProfileResponse
// @Router       /api/admin/customers [get]
func (h *CustomerHandler) List(c *fiber.Ctx) error {
	list, err := h.uc.List(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(list)
}

// Get godoc
// @Summary      Perfil de un cliente
// @Tags         admin
// @Security     Bearer
// @Produce      json
// @Param        id   path      string  true  "ID del usuario"
// @Success      200  {object}  dto.CustomerProfileResponse
// @Router       /api/admin/customers/{id} [get]
func (h *CustomerHandler) Get(c *fiber.Ctx) error {
	res, err := h.uc.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(res)
}

// SetPool godoc
// @Summary      Asignar pool a un cliente
// @Tags         admin
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path      string              true  "ID del usuario"
// @Param        body  body      dto.SetPoolRequest  true  "pool"
// @Success      200   {object}  dto.OperationResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/admin/customers/{id}/pool [put]
func (h *CustomerHandler) SetPool(c *fiber.Ctx) error {
	var in dto.SetPoolRequest
	if err := parseBody(c, &in); err != nil {
		return respondError(c, err)
	}
	if err := h.uc.SetPool(c.UserContext(), c.Params("id"), in.Pool); err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.OK("pool asignado", nil))
}

// SetPriceAdjustment godoc
// @Summary      Fijar ajuste de precio de un cliente
// @Description  Porcentaje en (-100, 1000]; positivo recarga, negativo descuenta.
// @Tags         admin
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path      string                         true  "ID del usuario"
// @Param        body  body      dto.SetPriceAdjustmentRequest  true  "percent"
// @Success      200   {object}  dto.OperationResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/admin/customers/{id}/price-adjustment [put]
func (h *CustomerHandler) SetPriceAdjustment(c *fiber.Ctx) error {
	var in dto.SetPriceAdjustmentRequest
	if err := parseBody(c, &in); err != nil {
		return respondError(c, err)
	}
	if err := h.uc.SetPriceAdjustment(c.UserContext(), c.Params("id"), in.Percent); err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.OK("ajuste de precio actualizado", nil))
}
