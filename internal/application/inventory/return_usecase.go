package inventory

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

// ReturnUseCase procesa devoluciones de clientes (reingreso de stock) y
// devoluciones a proveedores (salida de stock con verificación de saldo).
// La mutación del libro de stock y el registro de la devolución van juntos
// en una sola transacción.
type ReturnUseCase struct {
	txRunner      TxRunner
	productRepo   repository.ProductRepository
	warehouseRepo repository.WarehouseRepository
	returnRepo    repository.ReturnRepository
}

// NewReturnUseCase construye el caso de uso.
func NewReturnUseCase(
	txRunner TxRunner,
	productRepo repository.ProductRepository,
	warehouseRepo repository.WarehouseRepository,
	returnRepo repository.ReturnRepository,
) *ReturnUseCase {
	return &ReturnUseCase{
		txRunner:      txRunner,
		productRepo:   productRepo,
		warehouseRepo: warehouseRepo,
		returnRepo:    returnRepo,
	}
}

// ReturnInput entrada para procesar una devolución.
type ReturnInput struct {
	ProductID   string
	WarehouseID string
	Type        entity.ReturnType
	Quantity    decimal.Decimal
	Reason      string
	UserID      string
}

// Process aplica la devolución sobre el libro de stock y persiste el registro.
func (uc *ReturnUseCase) Process(ctx context.Context, input ReturnInput) (*dto.ReturnResponse, error) {
	switch input.Type {
	case entity.ReturnFromCustomer, entity.ReturnToSupplier:
	default:
		return nil, domain.ErrInvalidInput
	}
	if input.ProductID == "" || input.WarehouseID == "" || !input.Quantity.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}

	product, err := uc.productRepo.GetByID(input.ProductID)
	if err != nil || product == nil {
		return nil, domain.ErrNotFound
	}
	wh, err := uc.warehouseRepo.GetByID(input.WarehouseID)
	if err != nil || wh == nil {
		return nil, domain.ErrNotFound
	}

	now := time.Now()
	ret := &entity.Return{
		ID:          uuid.New().String(),
		ProductID:   input.ProductID,
		WarehouseID: input.WarehouseID,
		Type:        input.Type,
		Quantity:    input.Quantity,
		Reason:      input.Reason,
		CreatedBy:   input.UserID,
		CreatedAt:   now,
	}

	err = uc.txRunner.RunReturn(ctx, func(
		returnRepo repository.ReturnRepository,
		stockRepo repository.StockRepository,
	) error {
		stock, err := stockRepo.GetForUpdate(input.ProductID, input.WarehouseID)
		if err != nil {
			return err
		}
		switch input.Type {
		case entity.ReturnFromCustomer:
			stock.Quantity = stock.Quantity.Add(input.Quantity)
		case entity.ReturnToSupplier:
			if stock.Quantity.LessThan(input.Quantity) {
				return domain.ErrInsufficientStock
			}
			stock.Quantity = stock.Quantity.Sub(input.Quantity)
		}
		stock.UpdatedAt = now
		if err := stockRepo.Upsert(stock); err != nil {
			return err
		}
		return returnRepo.Create(ret)
	})
	if err != nil {
		return nil, err
	}
	return toReturnResponse(ret), nil
}

// List devuelve las devoluciones registradas, más recientes primero.
func (uc *ReturnUseCase) List(limit, offset int) ([]*dto.ReturnResponse, error) {
	returns, err := uc.returnRepo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.ReturnResponse, 0, len(returns))
	for _, r := range returns {
		out = append(out, toReturnResponse(r))
	}
	return out, nil
}

func toReturnResponse(r *entity.Return) *dto.ReturnResponse {
	return &dto.ReturnResponse{
		ID:          r.ID,
		ProductID:   r.ProductID,
		WarehouseID: r.WarehouseID,
		ReturnType:  string(r.Type),
		Quantity:    r.Quantity,
		Reason:      r.Reason,
		CreatedBy:   r.CreatedBy,
		CreatedAt:   r.CreatedAt,
	}
}
