package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateStockRequest entrada para crear una fila de stock explícitamente.
type CreateStockRequest struct {
	ProductID   string          `json:"product_id"`
	WarehouseID string          `json:"warehouse_id"`
	Quantity    decimal.Decimal `json:"quantity"`
}

// UpdateStockRequest entrada para fijar la cantidad absoluta de un par (producto, bodega).
type UpdateStockRequest struct {
	ProductID   string          `json:"product_id"`
	WarehouseID string          `json:"warehouse_id"`
	Quantity    decimal.Decimal `json:"quantity"`
}

// StockResponse representación de una fila de stock.
type StockResponse struct {
	ProductID   string          `json:"product_id"`
	WarehouseID string          `json:"warehouse_id"`
	Quantity    decimal.Decimal `json:"quantity"`
	UpdatedAt   time.Time       `json:"updated_at"`
}
