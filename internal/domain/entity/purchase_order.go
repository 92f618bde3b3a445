package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// POStatus estado de una orden de compra.
type POStatus string

const (
	POPending   POStatus = "pending"
	POApproved  POStatus = "approved"
	POShipped   POStatus = "shipped"
	POReceived  POStatus = "received"
	POCancelled POStatus = "cancelled"
)

// poTransitions tabla de transiciones permitidas. received y cancelled son terminales.
var poTransitions = map[POStatus][]POStatus{
	POPending:   {POApproved, POCancelled},
	POApproved:  {POShipped, POCancelled},
	POShipped:   {POReceived},
	POReceived:  {},
	POCancelled: {},
}

// ValidPOStatus indica si s es un estado conocido.
func ValidPOStatus(s string) bool {
	_, ok := poTransitions[POStatus(s)]
	return ok
}

// CanTransition indica si el cambio from→to está permitido por el ciclo de vida.
func CanTransition(from, to POStatus) bool {
	for _, next := range poTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// PurchaseOrder orden de compra a un proveedor.
type PurchaseOrder struct {
	ID               string
	SupplierID       string
	OrderedBy        string
	Status           POStatus
	OrderDate        time.Time
	ExpectedDelivery *time.Time
	Notes            string
}

// PurchaseOrderItem línea de una orden de compra; se borra en cascada con la orden.
type PurchaseOrderItem struct {
	ID          string
	POID        string
	ProductID   string
	Quantity    decimal.Decimal
	UnitCost    decimal.Decimal
	WarehouseID string
}

// POStatusHistory registro de auditoría de un cambio de estado.
// OldStatus vacío representa el estado inicial al crear la orden.
type POStatusHistory struct {
	ID        string
	POID      string
	OldStatus POStatus
	NewStatus POStatus
	ChangedBy string
	ChangedAt time.Time
	Notes     string
}
