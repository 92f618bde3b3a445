package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// POItemRequest línea de una orden de compra al crearla.
type POItemRequest struct {
	ProductID   string          `json:"product_id"`
	WarehouseID string          `json:"warehouse_id"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitCost    decimal.Decimal `json:"unit_cost"`
}

// CreatePORequest entrada para crear una orden de compra.
type CreatePORequest struct {
	SupplierID       string          `json:"supplier_id"`
	ExpectedDelivery *time.Time      `json:"expected_delivery"`
	Notes            string          `json:"notes"`
	Items            []POItemRequest `json:"items"`
}

// UpdatePOStatusRequest entrada para cambiar el estado de una orden.
type UpdatePOStatusRequest struct {
	NewStatus string `json:"new_status"`
	Notes     string `json:"notes"`
}

// POItemResponse línea de orden de compra en respuestas.
type POItemResponse struct {
	ID          string          `json:"id"`
	ProductID   string          `json:"product_id"`
	WarehouseID string          `json:"warehouse_id"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitCost    decimal.Decimal `json:"unit_cost"`
	TotalCost   decimal.Decimal `json:"total_cost"`
}

// POResponse orden de compra en respuestas.
type POResponse struct {
	ID               string           `json:"id"`
	SupplierID       string           `json:"supplier_id"`
	OrderedBy        string           `json:"ordered_by"`
	Status           string           `json:"status"`
	OrderDate        time.Time        `json:"order_date"`
	ExpectedDelivery *time.Time       `json:"expected_delivery,omitempty"`
	Notes            string           `json:"notes,omitempty"`
	Items            []POItemResponse `json:"items,omitempty"`
}

// POHistoryResponse registro del historial de estados.
type POHistoryResponse struct {
	ID        string    `json:"id"`
	POID      string    `json:"po_id"`
	OldStatus string    `json:"old_status,omitempty"`
	NewStatus string    `json:"new_status"`
	ChangedBy string    `json:"changed_by,omitempty"`
	ChangedAt time.Time `json:"changed_at"`
	Notes     string    `json:"notes,omitempty"`
}

// ReceivePOResponse resumen del recibo de una orden.
type ReceivePOResponse struct {
	POID          string `json:"po_id"`
	ItemsReceived int    `json:"items_received"`
	Status        string `json:"status"`
}
