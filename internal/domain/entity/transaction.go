package entity

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/almacen-api/internal/domain"
)

// TransactionType tipo de transacción de stock. Usar las constantes y
// ParseTransactionType; los switch sobre el tipo deben ser exhaustivos.
type TransactionType string

const (
	TransactionIN       TransactionType = "in"       // entrada
	TransactionOUT      TransactionType = "out"      // salida
	TransactionADJUST   TransactionType = "adjust"   // ajuste absoluto
	TransactionTRANSFER TransactionType = "transfer" // traslado entre bodegas (par débito/crédito)
)

// ParseTransactionType valida y normaliza un tipo recibido por la API.
func ParseTransactionType(s string) (TransactionType, error) {
	switch TransactionType(s) {
	case TransactionIN, TransactionOUT, TransactionADJUST, TransactionTRANSFER:
		return TransactionType(s), nil
	default:
		return "", domain.ErrInvalidInput
	}
}

// Transaction registro inmutable de auditoría por cada mutación de stock.
// En un traslado la cantidad es negativa en la bodega origen y positiva en destino.
type Transaction struct {
	ID          string
	ProductID   string
	WarehouseID string
	Type        TransactionType
	Quantity    decimal.Decimal
	Note        string
	CreatedBy   string
	CreatedAt   time.Time
}
