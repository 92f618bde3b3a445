package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// AlertType tipo de alerta de stock.
type AlertType string

const (
	AlertOutOfStock AlertType = "out_of_stock"
	AlertLowStock   AlertType = "low_stock"
)

// StockAlert alerta generada por el barrido de niveles de stock.
// Invariante: a lo sumo una alerta sin resolver de cada tipo por (producto, bodega).
type StockAlert struct {
	ID              string
	ProductID       string
	WarehouseID     string
	CurrentQuantity decimal.Decimal
	Threshold       decimal.Decimal
	Type            AlertType
	CreatedAt       time.Time
	IsResolved      bool
	ResolvedAt      *time.Time
}
