package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// StockSummaryRow fila del reporte de resumen de stock.
type StockSummaryRow struct {
	ProductID     string          `json:"product_id"`
	SKU           string          `json:"sku"`
	ProductName   string          `json:"product_name"`
	WarehouseID   string          `json:"warehouse_id"`
	WarehouseName string          `json:"warehouse_name"`
	Quantity      decimal.Decimal `json:"quantity"`
	ReorderLevel  decimal.Decimal `json:"reorder_level"`
	Status        string          `json:"status"` // OK | LOW_STOCK | OUT_OF_STOCK
}

// ValuationRow fila del reporte de valorización de inventario.
type ValuationRow struct {
	ProductID   string          `json:"product_id"`
	SKU         string          `json:"sku"`
	ProductName string          `json:"product_name"`
	WarehouseID string          `json:"warehouse_id"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitCost    decimal.Decimal `json:"unit_cost"`
	TotalValue  decimal.Decimal `json:"total_value"`
}

// MovementRow fila del reporte de movimientos de producto.
type MovementRow struct {
	TransactionID string          `json:"transaction_id"`
	ProductID     string          `json:"product_id"`
	SKU           string          `json:"sku"`
	WarehouseID   string          `json:"warehouse_id"`
	Type          string          `json:"type"`
	Quantity      decimal.Decimal `json:"quantity"`
	CreatedAt     time.Time       `json:"created_at"`
}

// ReportRepository consultas de solo lectura para reportes de inventario.
type ReportRepository interface {
	StockSummary(ctx context.Context) ([]StockSummaryRow, error)
	Valuation(ctx context.Context, warehouseID string, lowStockOnly bool) ([]ValuationRow, error)
	Movement(ctx context.Context, productID string, from, to *time.Time) ([]MovementRow, error)
}
