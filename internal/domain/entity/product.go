package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto o SKU del catálogo (multi-bodega).
// El stock se maneja por bodega en Stock; ReorderLevel alimenta las alertas.
type Product struct {
	ID           string
	SKU          string // código único
	Name         string
	Description  string
	CategoryCode string // código de categoría en la colección de documentos (vacío = sin categoría)
	SupplierID   string
	ReorderLevel decimal.Decimal // umbral de reorden; 0 = usar el umbral por defecto
	UnitCost     decimal.Decimal
	Price        decimal.Decimal
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
