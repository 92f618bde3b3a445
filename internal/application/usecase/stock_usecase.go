package usecase

import (
	"context"
	"time"

	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/application/inventory"
	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

// StockUseCase consultas de stock y ajustes absolutos. Toda mutación de
// cantidad pasa por el registro de transacciones: fijar una cantidad se
// traduce en una transacción adjust, nunca en un UPDATE directo.
type StockUseCase struct {
	stockRepo     repository.StockRepository
	txnRepo       repository.TransactionRepository
	productRepo   repository.ProductRepository
	warehouseRepo repository.WarehouseRepository
	registerUC    *inventory.RegisterTransactionUseCase
}

// NewStockUseCase construye el caso de uso.
func NewStockUseCase(
	stockRepo repository.StockRepository,
	txnRepo repository.TransactionRepository,
	productRepo repository.ProductRepository,
	warehouseRepo repository.WarehouseRepository,
	registerUC *inventory.RegisterTransactionUseCase,
) *StockUseCase {
	return &StockUseCase{
		stockRepo:     stockRepo,
		txnRepo:       txnRepo,
		productRepo:   productRepo,
		warehouseRepo: warehouseRepo,
		registerUC:    registerUC,
	}
}

// Create crea explícitamente una fila de stock para un par (producto, bodega).
// Falla con ErrDuplicate si la fila ya existe.
func (uc *StockUseCase) Create(in dto.CreateStockRequest) (*dto.StockResponse, error) {
	if in.ProductID == "" || in.WarehouseID == "" || in.Quantity.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	if err := uc.checkRefs(in.ProductID, in.WarehouseID); err != nil {
		return nil, err
	}
	stock := &entity.Stock{
		ProductID:   in.ProductID,
		WarehouseID: in.WarehouseID,
		Quantity:    in.Quantity,
		UpdatedAt:   time.Now(),
	}
	if err := uc.stockRepo.Create(stock); err != nil {
		return nil, err
	}
	return toStockResponse(stock), nil
}

// Get devuelve el stock de un par (producto, bodega). Un par sin fila aún
// se reporta con cantidad cero.
func (uc *StockUseCase) Get(productID, warehouseID string) (*dto.StockResponse, error) {
	if err := uc.checkRefs(productID, warehouseID); err != nil {
		return nil, err
	}
	stock, err := uc.stockRepo.Get(productID, warehouseID)
	if err != nil {
		return nil, err
	}
	return toStockResponse(stock), nil
}

// SetQuantity fija la cantidad absoluta registrando una transacción adjust.
func (uc *StockUseCase) SetQuantity(ctx context.Context, userID string, in dto.UpdateStockRequest) (*dto.TransactionResponse, error) {
	return uc.registerUC.Register(ctx, inventory.TransactionInput{
		ProductID:   in.ProductID,
		WarehouseID: in.WarehouseID,
		Type:        entity.TransactionADJUST,
		Quantity:    in.Quantity,
		Note:        "ajuste manual de inventario",
		UserID:      userID,
	})
}

// List devuelve todas las filas de stock, opcionalmente filtradas por producto o bodega.
func (uc *StockUseCase) List(productID, warehouseID string) ([]dto.StockResponse, error) {
	var (
		rows []*entity.Stock
		err  error
	)
	switch {
	case productID != "":
		rows, err = uc.stockRepo.ListByProduct(productID)
	case warehouseID != "":
		rows, err = uc.stockRepo.ListByWarehouse(warehouseID)
	default:
		rows, err = uc.stockRepo.ListAll()
	}
	if err != nil {
		return nil, err
	}
	out := make([]dto.StockResponse, 0, len(rows))
	for _, s := range rows {
		out = append(out, *toStockResponse(s))
	}
	return out, nil
}

// ListTransactions devuelve el historial de transacciones con filtros opcionales.
func (uc *StockUseCase) ListTransactions(filter repository.TransactionFilter, limit, offset int) ([]dto.TransactionResponse, error) {
	if filter.Type != "" {
		if _, err := entity.ParseTransactionType(string(filter.Type)); err != nil {
			return nil, err
		}
	}
	list, err := uc.txnRepo.List(filter, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.TransactionResponse, 0, len(list))
	for _, txn := range list {
		out = append(out, dto.TransactionResponse{
			ID:          txn.ID,
			ProductID:   txn.ProductID,
			WarehouseID: txn.WarehouseID,
			Type:        string(txn.Type),
			Quantity:    txn.Quantity,
			Note:        txn.Note,
			CreatedBy:   txn.CreatedBy,
			CreatedAt:   txn.CreatedAt,
		})
	}
	return out, nil
}

func (uc *StockUseCase) checkRefs(productID, warehouseID string) error {
	product, err := uc.productRepo.GetByID(productID)
	if err != nil || product == nil {
		return domain.ErrNotFound
	}
	wh, err := uc.warehouseRepo.GetByID(warehouseID)
	if err != nil || wh == nil {
		return domain.ErrNotFound
	}
	return nil
}

func toStockResponse(s *entity.Stock) *dto.StockResponse {
	if s == nil {
		return nil
	}
	return &dto.StockResponse{
		ProductID:   s.ProductID,
		WarehouseID: s.WarehouseID,
		Quantity:    s.Quantity,
		UpdatedAt:   s.UpdatedAt,
	}
}
