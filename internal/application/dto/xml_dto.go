package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// XMLProductRecord producto parseado de (o serializado a) un documento XML.
type XMLProductRecord struct {
	ID           string
	SKU          string
	Name         string
	Description  string
	CategoryCode string
	ReorderLevel decimal.Decimal
	UnitCost     decimal.Decimal
}

// XMLPOItemRecord línea de orden de compra en un documento XML.
type XMLPOItemRecord struct {
	ID          string
	ProductID   string
	ProductName string
	ProductSKU  string
	Quantity    decimal.Decimal
	UnitCost    decimal.Decimal
	WarehouseID string
	Warehouse   string
}

// XMLPORecord orden de compra parseada de (o serializada a) un documento XML.
type XMLPORecord struct {
	ID               string
	SupplierID       string
	Supplier         string
	OrderedBy        string
	Status           string
	OrderDate        *time.Time
	ExpectedDelivery *time.Time
	Notes            string
	Items            []XMLPOItemRecord
}

// XMLCategoryRecord categoría serializada a XML.
type XMLCategoryRecord struct {
	Code        string
	Name        string
	Description string
	ParentID    string
	Level       int
	Path        []string
}

// ImportProductsResult resumen de una importación de productos.
type ImportProductsResult struct {
	Imported int      `json:"imported"`
	Skipped  []string `json:"skipped"` // SKUs omitidos por colisión
}

// ImportPOsResult resumen de una importación de órdenes de compra.
type ImportPOsResult struct {
	Imported int      `json:"imported"`
	Errors   []string `json:"errors,omitempty"`
}
