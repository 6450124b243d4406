package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Repuestos-api/internal/application/bulk"
	"github.com/jhoicas/Repuestos-api/internal/application/dto"
)

// BulkHandler pedidos masivos por lista de números de parte.
type BulkHandler struct {
	uc *bulk.UseCase
}

// NewBulkHandler construye el handler.
func NewBulkHandler(uc *bulk.UseCase) *BulkHandler {
	return &BulkHandler{uc: uc}
}

// Enquiry godoc
// @Summary      Vista previa de pedido masivo
// @Tags         bulk
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body      dto.BulkRequest  true  "rows"
// @Success      200   {object}  dto.BulkPreviewResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/bulk/enquiry [post]
func (h *BulkHandler) Enquiry(c *fiber.Ctx) error {
	userID, ok := requireUser(c)
	if !ok {
		return nil
	}
	var in dto.BulkRequest
	if err := parseBody(c, &in); err != nil {
		return respondError(c, err)
	}
	res, err := h.uc.Enquiry(c.UserContext(), userID, in.Rows)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(res)
}

// Submit godoc
// @Summary      Confirmar pedido masivo
// @Description  Las filas sin registro en el catálogo se descartan.
// @Tags         bulk
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        Idempotency-Key  header    string           false  "Clave para reintentos seguros"
// @Param        body             body      dto.BulkRequest  true   "rows"
// @Success      201              {object}  dto.OrderCreatedResponse
// @Failure      400              {object}  dto.ErrorResponse
// @Failure      409              {object}  dto.ErrorResponse
// @Router       /api/bulk/orders [post]
func (h *BulkHandler) Submit(c *fiber.Ctx) error {
	userID, ok := requireUser(c)
	if !ok {
		return nil
	}
	var in dto.BulkRequest
	if err := parseBody(c, &in); err != nil {
		return respondError(c, err)
	}
	res, err := h.uc.Submit(c.UserContext(), userID, in.Rows, c.Get(HeaderIdempotencyKey))
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(res)
}
