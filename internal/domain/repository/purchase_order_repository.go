package repository

import "github.com/jhoicas/almacen-api/internal/domain/entity"

// PurchaseOrderRepository define el puerto de persistencia para órdenes de compra,
// sus ítems y el historial de estados.
type PurchaseOrderRepository interface {
	Create(po *entity.PurchaseOrder) error
	CreateItem(item *entity.PurchaseOrderItem) error
	GetByID(id string) (*entity.PurchaseOrder, error)
	List(supplierID string, status entity.POStatus, limit, offset int) ([]*entity.PurchaseOrder, error)
	// UpdateStatus cambia el estado solo si la orden sigue en from. Toma el lock
	// de la fila, de modo que dos transiciones concurrentes se serializan y la
	// segunda falla con ErrInvalidTransition.
	UpdateStatus(id string, from, to entity.POStatus) error
	ListItems(poID string) ([]*entity.PurchaseOrderItem, error)
	// DeletePending elimina la orden y sus ítems (cascada) solo si sigue en
	// pending; ErrInvalidTransition si el estado cambió entre el chequeo y el borrado.
	DeletePending(id string) error
	AddHistory(h *entity.POStatusHistory) error
	ListHistory(poID string) ([]*entity.POStatusHistory, error)
}
