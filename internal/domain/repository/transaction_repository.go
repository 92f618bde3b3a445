package repository

import (
	"time"

	"github.com/jhoicas/almacen-api/internal/domain/entity"
)

// TransactionFilter filtros opcionales para listar transacciones.
type TransactionFilter struct {
	ProductID   string
	WarehouseID string
	Type        entity.TransactionType
	From        *time.Time
	To          *time.Time
}

// TransactionRepository define el puerto del registro de transacciones
// (inmutable: solo inserciones y lecturas).
type TransactionRepository interface {
	Create(txn *entity.Transaction) error
	List(filter TransactionFilter, limit, offset int) ([]*entity.Transaction, error)
}
