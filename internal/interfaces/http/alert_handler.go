package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/application/inventory"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

// AlertHandler maneja las alertas de stock bajo y agotado (protegido).
type AlertHandler struct {
	uc *inventory.AlertUseCase
}

// NewAlertHandler construye el handler.
func NewAlertHandler(uc *inventory.AlertUseCase) *AlertHandler {
	return &AlertHandler{uc: uc}
}

// CheckStockLevels godoc
// @Summary      Barrido de niveles de stock
// @Description  Recorre el libro de stock, crea alertas low_stock y out_of_stock que falten
//
//	y resuelve las que ya no apliquen. Idempotente.
//
// @Tags         alerts
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.SweepResult
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/alerts/check-stock-levels [post]
func (h *AlertHandler) CheckStockLevels(c *fiber.Ctx) error {
	result, err := h.uc.CheckStockLevels(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(result)
}

// List godoc
// @Summary      Listar alertas
// @Tags         alerts
// @Security     Bearer
// @Produce      json
// @Param        resolved      query  bool    false  "Filtrar por estado resuelto"
// @Param        product_id    query  string  false  "Filtrar por producto"
// @Param        warehouse_id  query  string  false  "Filtrar por bodega"
// @Param        limit         query  int     false  "Límite (default 50)"
// @Param        offset        query  int     false  "Offset"
// @Success      200  {array}  dto.AlertResponse
// @Router       /api/alerts [get]
func (h *AlertHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return badBody(c)
	}
	page.DefaultPage()

	filter := repository.AlertFilter{
		ProductID:   c.Query("product_id"),
		WarehouseID: c.Query("warehouse_id"),
	}
	if raw := c.Query("resolved"); raw != "" {
		resolved := raw == "true" || raw == "1"
		filter.Resolved = &resolved
	}

	list, err := h.uc.List(filter, page.Limit, page.Offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"total": len(list), "alerts": list})
}

// Resolve godoc
// @Summary      Resolver alerta manualmente
// @Tags         alerts
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la alerta"
// @Success      200  {object}  dto.MessageResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/alerts/{id}/resolve [put]
func (h *AlertHandler) Resolve(c *fiber.Ctx) error {
	if err := h.uc.Resolve(c.Context(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "alerta resuelta"})
}

// Stats godoc
// @Summary      Conteos agregados de alertas
// @Tags         alerts
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  repository.AlertStats
// @Router       /api/alerts/stats [get]
func (h *AlertHandler) Stats(c *fiber.Ctx) error {
	stats, err := h.uc.Stats()
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(stats)
}
