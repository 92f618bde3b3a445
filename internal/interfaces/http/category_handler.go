package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/almacen-api/internal/application/catalog"
	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
)

// CategoryHandler maneja la jerarquía de categorías y sus esquemas de atributos (protegido).
type CategoryHandler struct {
	uc *catalog.UseCase
}

// NewCategoryHandler construye el handler.
func NewCategoryHandler(uc *catalog.UseCase) *CategoryHandler {
	return &CategoryHandler{uc: uc}
}

// Create godoc
// @Summary      Crear categoría
// @Description  Calcula level y path a partir del padre. Sin parent_id la categoría es raíz.
// @Tags         categories
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateCategoryRequest  true  "name, code (único), parent_id, attributes"
// @Success      201   {object}  entity.Category
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/categories [post]
func (h *CategoryHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateCategoryRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	cat, err := h.uc.Create(GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(cat)
}

// Roots godoc
// @Summary      Listar categorías raíz
// @Tags         categories
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  entity.Category
// @Router       /api/categories [get]
func (h *CategoryHandler) Roots(c *fiber.Ctx) error {
	list, err := h.uc.Roots()
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"total": len(list), "categories": list})
}

// Tree godoc
// @Summary      Árbol completo de categorías
// @Description  Bosque ordenado por display_order y nombre en cada nivel.
// @Tags         categories
// @Security     Bearer
// @Produce      json
// @Success      200  {array}   entity.CategoryTreeNode
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/categories/tree [get]
func (h *CategoryHandler) Tree(c *fiber.Ctx) error {
	tree, err := h.uc.Tree()
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(tree)
}

// Search godoc
// @Summary      Buscar categorías por nombre o código
// @Tags         categories
// @Security     Bearer
// @Produce      json
// @Param        q      query  string  true   "Texto a buscar"
// @Param        limit  query  int     false  "Límite (default 25)"
// @Success      200  {array}  entity.Category
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/categories/search [get]
func (h *CategoryHandler) Search(c *fiber.Ctx) error {
	q := c.Query("q")
	if q == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "q es requerido"})
	}
	list, err := h.uc.Search(q, c.QueryInt("limit"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"total": len(list), "categories": list})
}

// GetByCode godoc
// @Summary      Obtener categoría por código
// @Tags         categories
// @Security     Bearer
// @Produce      json
// @Param        code  path  string  true  "Código de la categoría"
// @Success      200  {object}  entity.Category
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/categories/code/{code} [get]
func (h *CategoryHandler) GetByCode(c *fiber.Ctx) error {
	cat, err := h.uc.GetByCode(c.Params("code"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(cat)
}

// Get godoc
// @Summary      Obtener categoría
// @Tags         categories
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la categoría"
// @Success      200  {object}  entity.Category
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/categories/{id} [get]
func (h *CategoryHandler) Get(c *fiber.Ctx) error {
	cat, err := h.uc.Get(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(cat)
}

// Update godoc
// @Summary      Actualizar categoría
// @Description  Code, parent_id, level y path no son modificables por esta vía.
// @Tags         categories
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la categoría"
// @Param        body  body  dto.UpdateCategoryRequest  true  "campos a actualizar (punteros nil = sin cambio)"
// @Success      200   {object}  entity.Category
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/categories/{id} [put]
func (h *CategoryHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateCategoryRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	cat, err := h.uc.Update(c.Params("id"), GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(cat)
}

// Delete godoc
// @Summary      Eliminar categoría
// @Description  Falla si la categoría tiene subcategorías.
// @Tags         categories
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la categoría"
// @Success      200  {object}  dto.MessageResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/categories/{id} [delete]
func (h *CategoryHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "categoría eliminada"})
}

// Children godoc
// @Summary      Subcategorías directas
// @Tags         categories
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la categoría"
// @Success      200  {array}   entity.Category
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/categories/{id}/children [get]
func (h *CategoryHandler) Children(c *fiber.Ctx) error {
	list, err := h.uc.Children(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"total": len(list), "categories": list})
}

// Path godoc
// @Summary      Ruta (breadcrumb) de la categoría
// @Description  Resumen de cada ancestro desde la raíz hasta la categoría.
// @Tags         categories
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la categoría"
// @Success      200  {array}   entity.CategorySummary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/categories/{id}/path [get]
func (h *CategoryHandler) Path(c *fiber.Ctx) error {
	path, err := h.uc.Path(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(path)
}

// AddAttribute godoc
// @Summary      Agregar atributo al esquema de la categoría
// @Tags         categories
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la categoría"
// @Param        body  body  entity.CategoryAttribute  true  "name (único en la categoría), data_type, required, options"
// @Success      200   {object}  entity.Category
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/categories/{id}/attributes [post]
func (h *CategoryHandler) AddAttribute(c *fiber.Ctx) error {
	var attr entity.CategoryAttribute
	if err := c.BodyParser(&attr); err != nil {
		return badBody(c)
	}
	cat, err := h.uc.AddAttribute(c.Params("id"), GetUserID(c), attr)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(cat)
}

// UpdateAttribute godoc
// @Summary      Actualizar atributo del esquema
// @Tags         categories
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la categoría"
// @Param        name  path  string  true  "Nombre actual del atributo"
// @Param        body  body  entity.CategoryAttribute  true  "definición nueva del atributo"
// @Success      200   {object}  entity.Category
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/categories/{id}/attributes/{name} [put]
func (h *CategoryHandler) UpdateAttribute(c *fiber.Ctx) error {
	var attr entity.CategoryAttribute
	if err := c.BodyParser(&attr); err != nil {
		return badBody(c)
	}
	cat, err := h.uc.UpdateAttribute(c.Params("id"), GetUserID(c), c.Params("name"), attr)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(cat)
}

// RemoveAttribute godoc
// @Summary      Eliminar atributo del esquema
// @Tags         categories
// @Security     Bearer
// @Produce      json
// @Param        id    path  string  true  "ID de la categoría"
// @Param        name  path  string  true  "Nombre del atributo"
// @Success      200   {object}  entity.Category
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/categories/{id}/attributes/{name} [delete]
func (h *CategoryHandler) RemoveAttribute(c *fiber.Ctx) error {
	cat, err := h.uc.RemoveAttribute(c.Params("id"), GetUserID(c), c.Params("name"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(cat)
}
