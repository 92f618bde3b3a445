package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateReturnRequest entrada para registrar una devolución.
type CreateReturnRequest struct {
	ProductID   string          `json:"product_id"`
	WarehouseID string          `json:"warehouse_id"`
	ReturnType  string          `json:"return_type"` // from_customer | to_supplier
	Quantity    decimal.Decimal `json:"quantity"`
	Reason      string          `json:"reason"`
}

// ReturnResponse representación de una devolución en respuestas.
type ReturnResponse struct {
	ID          string          `json:"id"`
	ProductID   string          `json:"product_id"`
	WarehouseID string          `json:"warehouse_id"`
	ReturnType  string          `json:"return_type"`
	Quantity    decimal.Decimal `json:"quantity"`
	Reason      string          `json:"reason,omitempty"`
	CreatedBy   string          `json:"created_by,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
}
