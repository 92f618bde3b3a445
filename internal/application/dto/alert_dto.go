package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// AlertResponse representación de una alerta de stock.
type AlertResponse struct {
	ID              string          `json:"id"`
	ProductID       string          `json:"product_id"`
	WarehouseID     string          `json:"warehouse_id"`
	CurrentQuantity decimal.Decimal `json:"current_quantity"`
	Threshold       decimal.Decimal `json:"threshold"`
	AlertType       string          `json:"alert_type"`
	CreatedAt       time.Time       `json:"created_at"`
	IsResolved      bool            `json:"is_resolved"`
	ResolvedAt      *time.Time      `json:"resolved_at,omitempty"`
}

// SweepResult resumen de una ejecución del barrido de niveles de stock.
type SweepResult struct {
	Checked  int `json:"checked"`
	Created  int `json:"created"`
	Resolved int `json:"resolved"`
}
