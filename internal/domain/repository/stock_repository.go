package repository

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/almacen-api/internal/domain/entity"
)

// StockLevelRow fila de stock enriquecida con el umbral de reorden del producto.
// Alimenta el barrido de alertas y los reportes de valorización.
type StockLevelRow struct {
	ProductID    string
	ProductName  string
	SKU          string
	WarehouseID  string
	Quantity     decimal.Decimal
	ReorderLevel decimal.Decimal
	UnitCost     decimal.Decimal
}

// StockRepository define el puerto para consultar/actualizar stock por bodega+producto.
// Usado dentro de transacciones para garantizar consistencia.
type StockRepository interface {
	// Get devuelve una fila en cero si el par (producto, bodega) no existe aún.
	Get(productID, warehouseID string) (*entity.Stock, error)
	// GetForUpdate bloquea la fila para update (SELECT FOR UPDATE).
	GetForUpdate(productID, warehouseID string) (*entity.Stock, error)
	Upsert(stock *entity.Stock) error
	// Create falla con ErrDuplicate si el par ya existe.
	Create(stock *entity.Stock) error
	Exists(productID, warehouseID string) (bool, error)
	ListAll() ([]*entity.Stock, error)
	ListByProduct(productID string) ([]*entity.Stock, error)
	ListByWarehouse(warehouseID string) ([]*entity.Stock, error)
	// ListWithReorderLevel une stock con products para el barrido de alertas.
	ListWithReorderLevel() ([]StockLevelRow, error)
}
