package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/almacen-api/internal/application/xmlport"
)

const contentTypeXML = "application/xml; charset=utf-8"

// XMLHandler maneja la exportación e importación de datos en XML (protegido).
type XMLHandler struct {
	uc *xmlport.UseCase
}

// NewXMLHandler construye el handler.
func NewXMLHandler(uc *xmlport.UseCase) *XMLHandler {
	return &XMLHandler{uc: uc}
}

// ExportProducts godoc
// @Summary      Exportar catálogo de productos en XML
// @Tags         xml
// @Security     Bearer
// @Produce      xml
// @Success      200  {string}  string
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/xml/products [get]
func (h *XMLHandler) ExportProducts(c *fiber.Ctx) error {
	data, err := h.uc.ExportProducts()
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, contentTypeXML)
	return c.Send(data)
}

// ImportProducts godoc
// @Summary      Importar productos desde XML
// @Description  Los SKU ya existentes se omiten y se reportan en skipped.
// @Tags         xml
// @Security     Bearer
// @Accept       xml
// @Produce      json
// @Param        body  body  string  true  "documento <products> con elementos <product>"
// @Success      200   {object}  dto.ImportProductsResult
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/xml/products/import [post]
func (h *XMLHandler) ImportProducts(c *fiber.Ctx) error {
	result, err := h.uc.ImportProducts(c.Body())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(result)
}

// ExportCategories godoc
// @Summary      Exportar jerarquía de categorías en XML
// @Tags         xml
// @Security     Bearer
// @Produce      xml
// @Success      200  {string}  string
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/xml/categories [get]
func (h *XMLHandler) ExportCategories(c *fiber.Ctx) error {
	data, err := h.uc.ExportCategories()
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, contentTypeXML)
	return c.Send(data)
}

// ExportPurchaseOrders godoc
// @Summary      Exportar órdenes de compra en XML
// @Description  Incluye ítems enriquecidos con nombres de producto, proveedor y bodega.
// @Tags         xml
// @Security     Bearer
// @Produce      xml
// @Success      200  {string}  string
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/xml/purchase-orders [get]
func (h *XMLHandler) ExportPurchaseOrders(c *fiber.Ctx) error {
	data, err := h.uc.ExportPurchaseOrders()
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, contentTypeXML)
	return c.Send(data)
}

// ImportPurchaseOrders godoc
// @Summary      Importar órdenes de compra desde XML
// @Description  Cada orden se crea de forma independiente; las fallidas se reportan en errors.
// @Tags         xml
// @Security     Bearer
// @Accept       xml
// @Produce      json
// @Param        body  body  string  true  "documento <purchase_orders> con elementos <purchase_order>"
// @Success      200   {object}  dto.ImportPOsResult
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/xml/purchase-orders/import [post]
func (h *XMLHandler) ImportPurchaseOrders(c *fiber.Ctx) error {
	result, err := h.uc.ImportPurchaseOrders(c.Context(), GetUserID(c), c.Body())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(result)
}
