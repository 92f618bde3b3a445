package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/application/reports"
)

// ReportHandler maneja los reportes de inventario (protegido).
type ReportHandler struct {
	uc *reports.UseCase
}

// NewReportHandler construye el handler.
func NewReportHandler(uc *reports.UseCase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

// StockSummary godoc
// @Summary      Resumen de stock por producto y bodega
// @Description  Incluye el estado de cada fila: OK, LOW_STOCK u OUT_OF_STOCK.
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Success      200  {array}   repository.StockSummaryRow
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/reports/stock-summary [get]
func (h *ReportHandler) StockSummary(c *fiber.Ctx) error {
	rows, err := h.uc.StockSummary(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"total": len(rows), "rows": rows})
}

// Valuation godoc
// @Summary      Valorización del inventario
// @Description  Valor de cada fila de stock (cantidad por costo unitario) y total general.
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        warehouse_id    query  string  false  "Filtrar por bodega"
// @Param        low_stock_only  query  bool    false  "Solo filas bajo el punto de reorden"
// @Success      200  {object}  reports.ValuationReport
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/reports/valuation [get]
func (h *ReportHandler) Valuation(c *fiber.Ctx) error {
	lowStockOnly := c.QueryBool("low_stock_only")
	report, err := h.uc.Valuation(c.Context(), c.Query("warehouse_id"), lowStockOnly)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(report)
}

// Movement godoc
// @Summary      Historial de movimientos de un producto
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        product_id  query  string  true   "ID del producto"
// @Param        from        query  string  false  "Desde (RFC3339 o YYYY-MM-DD)"
// @Param        to          query  string  false  "Hasta (RFC3339 o YYYY-MM-DD)"
// @Success      200  {array}   repository.MovementRow
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/reports/movement [get]
func (h *ReportHandler) Movement(c *fiber.Ctx) error {
	productID := c.Query("product_id")
	if productID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "product_id es requerido"})
	}
	from, err := parseTimeParam(c.Query("from"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "from inválido: usar RFC3339 o YYYY-MM-DD"})
	}
	to, err := parseTimeParam(c.Query("to"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "to inválido: usar RFC3339 o YYYY-MM-DD"})
	}
	rows, err := h.uc.Movement(c.Context(), productID, from, to)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"total": len(rows), "movements": rows})
}
