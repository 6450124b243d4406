package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Repuestos-api/internal/application/catalog"
	"github.com/jhoicas/Repuestos-api/internal/application/dto"
)

// CatalogHandler búsqueda de repuestos (clientes) y carga de pools (admin).
type CatalogHandler struct {
	uc *catalog.UseCase
}

// NewCatalogHandler construye el handler.
func NewCatalogHandler(uc *catalog.UseCase) *CatalogHandler {
	return &CatalogHandler{uc: uc}
}

// Search godoc
// @Summary      Buscar repuestos
// @Description  Busca por número de parte o descripción en el pool del cliente. Precios ya ajustados.
// @Tags         catalog
// @Security     Bearer
// @Produce      json
// @Param        q    query     string  true  "Número de parte o texto de la descripción"
// @Success      200  {object}  dto.SearchResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/catalog/parts [get]
func (h *CatalogHandler) Search(c *fiber.Ctx) error {
	userID, ok := requireUser(c)
	if !ok {
		return nil
	}
	res, err := h.uc.Search(c.UserContext(), userID, c.Query("q"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(res)
}

// GetPart godoc
// @Summary      Obtener un repuesto
// @Tags         catalog
// @Security     Bearer
// @Produce      json
// @Param        part  path      string  true  "Número de parte"
// @Success      200   {object}  dto.PartResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/catalog/parts/{part} [get]
func (h *CatalogHandler) GetPart(c *fiber.Ctx) error {
	userID, ok := requireUser(c)
	if !ok {
		return nil
	}
	res, err := h.uc.GetPart(c.UserContext(), userID, c.Params("part"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(res)
}

// ReplacePool godoc
// @Summary      Reemplazar el stock de un pool
// @Description  Desactiva los registros activos del pool e inserta los nuevos en una sola transacción.
// @Tags         admin
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        pool  path      string                  true  "Pool de stock"
// @Param        body  body      dto.ReplacePoolRequest  true  "Registros ya limpios"
// @Success      200   {object}  dto.OperationResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/admin/pools/{pool}/stock [put]
func (h *CatalogHandler) ReplacePool(c *fiber.Ctx) error {
	var in dto.ReplacePoolRequest
	if err := parseBody(c, &in); err != nil {
		return respondError(c, err)
	}
	pool := c.Params("pool")
	n, err := h.uc.ReplacePool(c.UserContext(), pool, in.Records)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.OK(fmt.Sprintf("%d registros cargados en %s", n, pool), dto.CountResponse{Count: int64(n)}))
}

// WipePool godoc
// @Summary      Vaciar el stock de un pool
// @Tags         admin
// @Security     Bearer
// @Produce      json
// @Param        pool  path      string  true  "Pool de stock"
// @Success      200   {object}  dto.OperationResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/admin/pools/{pool}/stock [delete]
func (h *CatalogHandler) WipePool(c *fiber.Ctx) error {
	pool := c.Params("pool")
	n, err := h.uc.WipePool(c.UserContext(), pool)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.OK(fmt.Sprintf("%d registros eliminados de %s", n, pool), dto.CountResponse{Count: n}))
}
