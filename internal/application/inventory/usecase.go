package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

// RegisterTransactionUseCase registra transacciones de stock de forma transaccional
// (in, out, adjust y el traslado de dos patas) con bloqueo de fila y Commit/Rollback.
// El libro de stock (tabla stock) solo se muta a través de este caso de uso, del
// recibo de órdenes de compra y de las devoluciones.
type RegisterTransactionUseCase struct {
	txRunner      TxRunner
	productRepo   repository.ProductRepository
	warehouseRepo repository.WarehouseRepository
}

// NewRegisterTransactionUseCase construye el caso de uso.
func NewRegisterTransactionUseCase(
	txRunner TxRunner,
	productRepo repository.ProductRepository,
	warehouseRepo repository.WarehouseRepository,
) *RegisterTransactionUseCase {
	return &RegisterTransactionUseCase{
		txRunner:      txRunner,
		productRepo:   productRepo,
		warehouseRepo: warehouseRepo,
	}
}

// TransactionInput entrada para registrar una transacción de una sola pata.
type TransactionInput struct {
	ProductID   string
	WarehouseID string
	Type        entity.TransactionType
	Quantity    decimal.Decimal
	Note        string
	UserID      string
}

// TransferInput entrada para un traslado entre bodegas.
type TransferInput struct {
	ProductID       string
	FromWarehouseID string
	ToWarehouseID   string
	Quantity        decimal.Decimal
	Note            string
	UserID          string
}

// Register valida y aplica una transacción in/out/adjust sobre el libro de stock.
// El tipo transfer se rechaza aquí: un traslado son dos patas y tiene su propia operación.
func (uc *RegisterTransactionUseCase) Register(ctx context.Context, input TransactionInput) (*dto.TransactionResponse, error) {
	switch input.Type {
	case entity.TransactionIN, entity.TransactionOUT:
		if !input.Quantity.GreaterThan(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
	case entity.TransactionADJUST:
		if input.Quantity.LessThan(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
	case entity.TransactionTRANSFER:
		// Punto de entrada de una sola pata: no aplica.
		return nil, domain.ErrInvalidInput
	default:
		return nil, domain.ErrInvalidInput
	}
	if input.ProductID == "" || input.WarehouseID == "" {
		return nil, domain.ErrInvalidInput
	}

	if err := uc.checkRefs(input.ProductID, input.WarehouseID); err != nil {
		return nil, err
	}

	now := time.Now()
	txn := &entity.Transaction{
		ID:          uuid.New().String(),
		ProductID:   input.ProductID,
		WarehouseID: input.WarehouseID,
		Type:        input.Type,
		Quantity:    input.Quantity,
		Note:        input.Note,
		CreatedBy:   input.UserID,
		CreatedAt:   now,
	}
	var newQty decimal.Decimal

	// Inicia transacción; Commit si todo ok, Rollback si algo falla (TxRunner.Run lo hace).
	err := uc.txRunner.Run(ctx, func(
		txnRepo repository.TransactionRepository,
		stockRepo repository.StockRepository,
	) error {
		// Bloquea la fila de stock (SELECT FOR UPDATE); fila en cero si no existe aún.
		stock, err := stockRepo.GetForUpdate(input.ProductID, input.WarehouseID)
		if err != nil {
			return err
		}
		switch input.Type {
		case entity.TransactionIN:
			stock.Quantity = stock.Quantity.Add(input.Quantity)
		case entity.TransactionOUT:
			if stock.Quantity.LessThan(input.Quantity) {
				return domain.ErrInsufficientStock
			}
			stock.Quantity = stock.Quantity.Sub(input.Quantity)
		case entity.TransactionADJUST:
			// Ajuste absoluto: fija la cantidad, no aplica delta.
			stock.Quantity = input.Quantity
		}
		stock.UpdatedAt = now
		if err := stockRepo.Upsert(stock); err != nil {
			return err
		}
		newQty = stock.Quantity
		return txnRepo.Create(txn)
	})
	if err != nil {
		return nil, err
	}
	return toTransactionResponse(txn, newQty), nil
}

// Transfer mueve cantidad entre dos bodegas: resta en origen, suma en destino
// (creando la fila destino si no existe) y escribe las dos patas del traslado
// con cantidades de signo opuesto y notas cruzadas. Todo o nada.
func (uc *RegisterTransactionUseCase) Transfer(ctx context.Context, input TransferInput) (*dto.TransactionResponse, *dto.TransactionResponse, error) {
	if input.ProductID == "" || input.FromWarehouseID == "" || input.ToWarehouseID == "" {
		return nil, nil, domain.ErrInvalidInput
	}
	if input.FromWarehouseID == input.ToWarehouseID || !input.Quantity.GreaterThan(decimal.Zero) {
		return nil, nil, domain.ErrInvalidInput
	}
	if err := uc.checkRefs(input.ProductID, input.FromWarehouseID); err != nil {
		return nil, nil, err
	}
	if wh, err := uc.warehouseRepo.GetByID(input.ToWarehouseID); err != nil || wh == nil {
		return nil, nil, domain.ErrNotFound
	}

	now := time.Now()
	debit := &entity.Transaction{
		ID:          uuid.New().String(),
		ProductID:   input.ProductID,
		WarehouseID: input.FromWarehouseID,
		Type:        entity.TransactionTRANSFER,
		Quantity:    input.Quantity.Neg(),
		Note:        fmt.Sprintf("Traslado a bodega %s: %s", input.ToWarehouseID, input.Note),
		CreatedBy:   input.UserID,
		CreatedAt:   now,
	}
	credit := &entity.Transaction{
		ID:          uuid.New().String(),
		ProductID:   input.ProductID,
		WarehouseID: input.ToWarehouseID,
		Type:        entity.TransactionTRANSFER,
		Quantity:    input.Quantity,
		Note:        fmt.Sprintf("Traslado desde bodega %s: %s", input.FromWarehouseID, input.Note),
		CreatedBy:   input.UserID,
		CreatedAt:   now,
	}
	var fromQty, toQty decimal.Decimal

	err := uc.txRunner.Run(ctx, func(
		txnRepo repository.TransactionRepository,
		stockRepo repository.StockRepository,
	) error {
		origin, err := stockRepo.GetForUpdate(input.ProductID, input.FromWarehouseID)
		if err != nil {
			return err
		}
		if origin.Quantity.LessThan(input.Quantity) {
			return domain.ErrInsufficientStock
		}
		dest, err := stockRepo.GetForUpdate(input.ProductID, input.ToWarehouseID)
		if err != nil {
			return err
		}

		origin.Quantity = origin.Quantity.Sub(input.Quantity)
		dest.Quantity = dest.Quantity.Add(input.Quantity)
		origin.UpdatedAt = now
		dest.UpdatedAt = now
		if err := stockRepo.Upsert(origin); err != nil {
			return err
		}
		if err := stockRepo.Upsert(dest); err != nil {
			return err
		}
		fromQty = origin.Quantity
		toQty = dest.Quantity

		if err := txnRepo.Create(debit); err != nil {
			return err
		}
		return txnRepo.Create(credit)
	})
	if err != nil {
		return nil, nil, err
	}
	return toTransactionResponse(debit, fromQty), toTransactionResponse(credit, toQty), nil
}

// checkRefs valida que el producto y la bodega existan.
func (uc *RegisterTransactionUseCase) checkRefs(productID, warehouseID string) error {
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

func toTransactionResponse(txn *entity.Transaction, newQty decimal.Decimal) *dto.TransactionResponse {
	return &dto.TransactionResponse{
		ID:          txn.ID,
		ProductID:   txn.ProductID,
		WarehouseID: txn.WarehouseID,
		Type:        string(txn.Type),
		Quantity:    txn.Quantity,
		Note:        txn.Note,
		CreatedBy:   txn.CreatedBy,
		CreatedAt:   txn.CreatedAt,
		NewQuantity: newQty,
	}
}
