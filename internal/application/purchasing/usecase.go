package purchasing

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

// UseCase ciclo de vida de órdenes de compra: creación, transiciones de estado
// con historial, recibo (que alimenta el libro de stock) y borrado en pending.
type UseCase struct {
	txRunner     TxRunner
	poRepo       repository.PurchaseOrderRepository
	supplierRepo repository.SupplierRepository
	productRepo  repository.ProductRepository
}

// NewUseCase construye el caso de uso.
func NewUseCase(
	txRunner TxRunner,
	poRepo repository.PurchaseOrderRepository,
	supplierRepo repository.SupplierRepository,
	productRepo repository.ProductRepository,
) *UseCase {
	return &UseCase{
		txRunner:     txRunner,
		poRepo:       poRepo,
		supplierRepo: supplierRepo,
		productRepo:  productRepo,
	}
}

// Create persiste la orden en pending con todos sus ítems y el registro
// inicial de historial, en una sola transacción.
func (uc *UseCase) Create(ctx context.Context, userID string, in dto.CreatePORequest) (*dto.POResponse, error) {
	if in.SupplierID == "" || len(in.Items) == 0 {
		return nil, domain.ErrInvalidInput
	}
	supplier, err := uc.supplierRepo.GetByID(in.SupplierID)
	if err != nil || supplier == nil {
		return nil, domain.ErrNotFound
	}
	for _, item := range in.Items {
		if item.ProductID == "" || item.WarehouseID == "" || !item.Quantity.GreaterThan(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
		product, err := uc.productRepo.GetByID(item.ProductID)
		if err != nil || product == nil {
			return nil, domain.ErrNotFound
		}
	}

	now := time.Now()
	po := &entity.PurchaseOrder{
		ID:               uuid.New().String(),
		SupplierID:       in.SupplierID,
		OrderedBy:        userID,
		Status:           entity.POPending,
		OrderDate:        now,
		ExpectedDelivery: in.ExpectedDelivery,
		Notes:            in.Notes,
	}
	items := make([]*entity.PurchaseOrderItem, 0, len(in.Items))
	for _, item := range in.Items {
		items = append(items, &entity.PurchaseOrderItem{
			ID:          uuid.New().String(),
			POID:        po.ID,
			ProductID:   item.ProductID,
			Quantity:    item.Quantity,
			UnitCost:    item.UnitCost,
			WarehouseID: item.WarehouseID,
		})
	}

	err = uc.txRunner.RunPurchase(ctx, func(
		poRepo repository.PurchaseOrderRepository,
		_ repository.StockRepository,
	) error {
		if err := poRepo.Create(po); err != nil {
			return err
		}
		for _, item := range items {
			if err := poRepo.CreateItem(item); err != nil {
				return err
			}
		}
		return poRepo.AddHistory(&entity.POStatusHistory{
			ID:        uuid.New().String(),
			POID:      po.ID,
			NewStatus: entity.POPending,
			ChangedBy: userID,
			ChangedAt: now,
			Notes:     "orden creada",
		})
	})
	if err != nil {
		return nil, err
	}
	return toPOResponse(po, items), nil
}

// UpdateStatus aplica una transición del ciclo de vida y la registra en el
// historial. No toca el stock: los deltas de inventario solo ocurren en Receive.
func (uc *UseCase) UpdateStatus(ctx context.Context, poID, userID string, in dto.UpdatePOStatusRequest) (*dto.POResponse, error) {
	if !entity.ValidPOStatus(in.NewStatus) {
		return nil, domain.ErrInvalidInput
	}
	newStatus := entity.POStatus(in.NewStatus)

	po, err := uc.poRepo.GetByID(poID)
	if err != nil {
		return nil, err
	}
	if po == nil {
		return nil, domain.ErrNotFound
	}
	if !entity.CanTransition(po.Status, newStatus) {
		return nil, domain.ErrInvalidTransition
	}

	oldStatus := po.Status
	err = uc.txRunner.RunPurchase(ctx, func(
		poRepo repository.PurchaseOrderRepository,
		_ repository.StockRepository,
	) error {
		// El UPDATE condicionado revalida el estado bajo lock: si otra
		// transacción ganó la carrera, esto devuelve ErrInvalidTransition.
		if err := poRepo.UpdateStatus(poID, oldStatus, newStatus); err != nil {
			return err
		}
		return poRepo.AddHistory(&entity.POStatusHistory{
			ID:        uuid.New().String(),
			POID:      poID,
			OldStatus: oldStatus,
			NewStatus: newStatus,
			ChangedBy: userID,
			ChangedAt: time.Now(),
			Notes:     in.Notes,
		})
	})
	if err != nil {
		return nil, err
	}
	po.Status = newStatus
	return toPOResponse(po, nil), nil
}

// Receive recibe una orden pending: suma la cantidad de cada ítem al stock de
// su bodega (creando la fila si no existe), pasa la orden a received y escribe
// el historial. Los N deltas y el cambio de estado son una sola transacción.
//
// Solo pending es recibible: el sistema de referencia nunca exigió pasar por
// approved/shipped para recibir, y se conserva esa regla literal.
func (uc *UseCase) Receive(ctx context.Context, poID, userID string) (*dto.ReceivePOResponse, error) {
	po, err := uc.poRepo.GetByID(poID)
	if err != nil {
		return nil, err
	}
	if po == nil {
		return nil, domain.ErrNotFound
	}
	if po.Status != entity.POPending {
		return nil, domain.ErrInvalidTransition
	}

	now := time.Now()
	var received int
	err = uc.txRunner.RunPurchase(ctx, func(
		poRepo repository.PurchaseOrderRepository,
		stockRepo repository.StockRepository,
	) error {
		// El chequeo de pending de arriba corre sobre el pool; el cambio de
		// estado condicionado va primero dentro de la transacción porque toma
		// el lock de la fila y revalida: de dos recibos concurrentes solo uno
		// matchea pending, el otro recibe ErrInvalidTransition sin tocar stock.
		if err := poRepo.UpdateStatus(poID, entity.POPending, entity.POReceived); err != nil {
			return err
		}
		items, err := poRepo.ListItems(poID)
		if err != nil {
			return err
		}
		if len(items) == 0 {
			return domain.ErrEmptyOrder
		}
		for _, item := range items {
			stock, err := stockRepo.GetForUpdate(item.ProductID, item.WarehouseID)
			if err != nil {
				return err
			}
			stock.Quantity = stock.Quantity.Add(item.Quantity)
			stock.UpdatedAt = now
			if err := stockRepo.Upsert(stock); err != nil {
				return err
			}
		}
		received = len(items)
		return poRepo.AddHistory(&entity.POStatusHistory{
			ID:        uuid.New().String(),
			POID:      poID,
			OldStatus: entity.POPending,
			NewStatus: entity.POReceived,
			ChangedBy: userID,
			ChangedAt: now,
			Notes:     "orden recibida, inventario actualizado",
		})
	})
	if err != nil {
		return nil, err
	}
	return &dto.ReceivePOResponse{POID: poID, ItemsReceived: received, Status: string(entity.POReceived)}, nil
}

// Delete borra una orden pending junto con sus ítems (cascada).
func (uc *UseCase) Delete(ctx context.Context, poID string) error {
	po, err := uc.poRepo.GetByID(poID)
	if err != nil {
		return err
	}
	if po == nil {
		return domain.ErrNotFound
	}
	if po.Status != entity.POPending {
		return domain.ErrInvalidTransition
	}
	return uc.poRepo.DeletePending(poID)
}

// Get devuelve una orden con sus ítems.
func (uc *UseCase) Get(poID string) (*dto.POResponse, error) {
	po, err := uc.poRepo.GetByID(poID)
	if err != nil {
		return nil, err
	}
	if po == nil {
		return nil, domain.ErrNotFound
	}
	items, err := uc.poRepo.ListItems(poID)
	if err != nil {
		return nil, err
	}
	return toPOResponse(po, items), nil
}

// List devuelve órdenes con filtros opcionales por proveedor y estado.
func (uc *UseCase) List(supplierID, status string, limit, offset int) ([]*dto.POResponse, error) {
	if status != "" && !entity.ValidPOStatus(status) {
		return nil, domain.ErrInvalidInput
	}
	pos, err := uc.poRepo.List(supplierID, entity.POStatus(status), limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.POResponse, 0, len(pos))
	for _, po := range pos {
		out = append(out, toPOResponse(po, nil))
	}
	return out, nil
}

// Items devuelve los ítems de una orden.
func (uc *UseCase) Items(poID string) ([]dto.POItemResponse, error) {
	po, err := uc.poRepo.GetByID(poID)
	if err != nil {
		return nil, err
	}
	if po == nil {
		return nil, domain.ErrNotFound
	}
	items, err := uc.poRepo.ListItems(poID)
	if err != nil {
		return nil, err
	}
	return toPOItemResponses(items), nil
}

// History devuelve el historial de estados de una orden, en orden cronológico.
func (uc *UseCase) History(poID string) ([]dto.POHistoryResponse, error) {
	po, err := uc.poRepo.GetByID(poID)
	if err != nil {
		return nil, err
	}
	if po == nil {
		return nil, domain.ErrNotFound
	}
	history, err := uc.poRepo.ListHistory(poID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.POHistoryResponse, 0, len(history))
	for _, h := range history {
		out = append(out, dto.POHistoryResponse{
			ID:        h.ID,
			POID:      h.POID,
			OldStatus: string(h.OldStatus),
			NewStatus: string(h.NewStatus),
			ChangedBy: h.ChangedBy,
			ChangedAt: h.ChangedAt,
			Notes:     h.Notes,
		})
	}
	return out, nil
}

func toPOItemResponses(items []*entity.PurchaseOrderItem) []dto.POItemResponse {
	out := make([]dto.POItemResponse, 0, len(items))
	for _, item := range items {
		out = append(out, dto.POItemResponse{
			ID:          item.ID,
			ProductID:   item.ProductID,
			WarehouseID: item.WarehouseID,
			Quantity:    item.Quantity,
			UnitCost:    item.UnitCost,
			TotalCost:   item.Quantity.Mul(item.UnitCost),
		})
	}
	return out
}

func toPOResponse(po *entity.PurchaseOrder, items []*entity.PurchaseOrderItem) *dto.POResponse {
	resp := &dto.POResponse{
		ID:               po.ID,
		SupplierID:       po.SupplierID,
		OrderedBy:        po.OrderedBy,
		Status:           string(po.Status),
		OrderDate:        po.OrderDate,
		ExpectedDelivery: po.ExpectedDelivery,
		Notes:            po.Notes,
	}
	if items != nil {
		resp.Items = toPOItemResponses(items)
	}
	return resp
}
