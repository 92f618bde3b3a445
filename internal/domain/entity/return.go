package entity

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/almacen-api/internal/domain"
)

// ReturnType tipo de devolución.
type ReturnType string

const (
	ReturnFromCustomer ReturnType = "from_customer" // reingresa stock
	ReturnToSupplier   ReturnType = "to_supplier"   // descuenta stock
)

// ParseReturnType valida y normaliza un tipo de devolución.
func ParseReturnType(s string) (ReturnType, error) {
	switch ReturnType(s) {
	case ReturnFromCustomer, ReturnToSupplier:
		return ReturnType(s), nil
	default:
		return "", domain.ErrInvalidInput
	}
}

// Return registro inmutable de una devolución de cliente o a proveedor.
type Return struct {
	ID          string
	ProductID   string
	WarehouseID string
	Type        ReturnType
	Quantity    decimal.Decimal
	Reason      string
	CreatedBy   string
	CreatedAt   time.Time
}
