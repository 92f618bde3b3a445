package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest entrada para crear un producto.
type CreateProductRequest struct {
	SKU          string          `json:"sku"`
	Name         string          `json:"name"`
	Description  string          `json:"description"`
	CategoryCode string          `json:"category_code"`
	SupplierID   string          `json:"supplier_id"`
	ReorderLevel decimal.Decimal `json:"reorder_level"`
	UnitCost     decimal.Decimal `json:"unit_cost"`
	Price        decimal.Decimal `json:"price"`
}

// UpdateProductRequest entrada para actualizar un producto. SKU no es modificable.
type UpdateProductRequest struct {
	Name         string           `json:"name"`
	Description  string           `json:"description"`
	CategoryCode *string          `json:"category_code"`
	SupplierID   *string          `json:"supplier_id"`
	ReorderLevel *decimal.Decimal `json:"reorder_level"`
	UnitCost     *decimal.Decimal `json:"unit_cost"`
	Price        *decimal.Decimal `json:"price"`
}

// ProductResponse representación de un producto en respuestas.
type ProductResponse struct {
	ID           string          `json:"id"`
	SKU          string          `json:"sku"`
	Name         string          `json:"name"`
	Description  string          `json:"description,omitempty"`
	CategoryCode string          `json:"category_code,omitempty"`
	SupplierID   string          `json:"supplier_id,omitempty"`
	ReorderLevel decimal.Decimal `json:"reorder_level"`
	UnitCost     decimal.Decimal `json:"unit_cost"`
	Price        decimal.Decimal `json:"price"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}
