package entity

import "time"

// CategoryAttribute esquema de un atributo que los productos de la categoría
// deberían tener. Name es único dentro de la categoría.
type CategoryAttribute struct {
	Name                 string   `json:"name"`
	DisplayName          string   `json:"display_name"`
	Description          string   `json:"description,omitempty"`
	DataType             string   `json:"data_type"` // string, number, boolean, date, enum
	Unit                 string   `json:"unit,omitempty"`
	Required             bool     `json:"required"`
	Options              []string `json:"options,omitempty"` // para enum
	MinValue             *float64 `json:"min_value,omitempty"`
	MaxValue             *float64 `json:"max_value,omitempty"`
	DefaultValue         any      `json:"default_value,omitempty"`
	SearchWeight         int      `json:"search_weight"` // importancia en búsqueda (1-10)
	DisplayInFilter      bool     `json:"display_in_filter"`
	DisplayInProductCard bool     `json:"display_in_product_card"`
	SortOrder            int      `json:"sort_order"`
}

// Category categoría de productos con jerarquía materializada.
// Invariantes: Path = Path(padre) + [Code]; Level = len(Path) - 1; Code único global.
// Se persiste como documento completo en la colección de categorías.
type Category struct {
	ID          string              `json:"id"`
	Name        string              `json:"name"`
	Code        string              `json:"code"`
	Description string              `json:"description,omitempty"`
	ParentID    string              `json:"parent_id,omitempty"` // vacío si es raíz
	Level       int                 `json:"level"`               // 0 = raíz
	Path        []string            `json:"path"`                // códigos desde la raíz hasta la categoría

	// Presentación
	Icon         string `json:"icon,omitempty"`
	DisplayOrder int    `json:"display_order"`
	Visible      bool   `json:"visible"`

	// Esquema de atributos para productos de la categoría
	Attributes []CategoryAttribute `json:"attributes"`

	// Ajustes propios de la categoría
	MinStockThreshold   *int           `json:"min_stock_threshold,omitempty"`
	DefaultReorderLevel *int           `json:"default_reorder_level,omitempty"`
	StorageRequirements map[string]any `json:"storage_requirements,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	CreatedBy string    `json:"created_by,omitempty"`
	UpdatedBy string    `json:"updated_by,omitempty"`
}

// CategoryTreeNode nodo del árbol de categorías para la vista jerárquica.
type CategoryTreeNode struct {
	ID          string              `json:"id"`
	Name        string              `json:"name"`
	Code        string              `json:"code"`
	Description string              `json:"description,omitempty"`
	Level       int                 `json:"level"`
	Icon        string              `json:"icon,omitempty"`
	Visible     bool                `json:"visible"`
	Children    []*CategoryTreeNode `json:"children"`
}

// CategorySummary resumen usado en la ruta (breadcrumb) de una categoría.
type CategorySummary struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Code  string `json:"code"`
	Level int    `json:"level"`
}
