package dto

import "github.com/jhoicas/almacen-api/internal/domain/entity"

// CreateCategoryRequest entrada para crear una categoría.
type CreateCategoryRequest struct {
	Name                string                     `json:"name"`
	Code                string                     `json:"code"`
	Description         string                     `json:"description"`
	ParentID            string                     `json:"parent_id"`
	Icon                string                     `json:"icon"`
	DisplayOrder        int                        `json:"display_order"`
	Visible             *bool                      `json:"visible"`
	Attributes          []entity.CategoryAttribute `json:"attributes"`
	MinStockThreshold   *int                       `json:"min_stock_threshold"`
	DefaultReorderLevel *int                       `json:"default_reorder_level"`
	StorageRequirements map[string]any             `json:"storage_requirements"`
}

// UpdateCategoryRequest entrada para actualizar una categoría.
// Los punteros en nil dejan el campo sin cambios. Code, ParentID, Level y Path
// no son modificables por esta vía.
type UpdateCategoryRequest struct {
	Name                *string                     `json:"name"`
	Description         *string                     `json:"description"`
	Icon                *string                     `json:"icon"`
	DisplayOrder        *int                        `json:"display_order"`
	Visible             *bool                       `json:"visible"`
	Attributes          *[]entity.CategoryAttribute `json:"attributes"`
	MinStockThreshold   *int                        `json:"min_stock_threshold"`
	DefaultReorderLevel *int                        `json:"default_reorder_level"`
	StorageRequirements *map[string]any             `json:"storage_requirements"`
}
