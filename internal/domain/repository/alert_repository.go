package repository

import "github.com/jhoicas/almacen-api/internal/domain/entity"

// AlertFilter filtros opcionales para listar alertas.
type AlertFilter struct {
	Resolved    *bool
	ProductID   string
	WarehouseID string
}

// AlertStats conteos agregados de alertas.
type AlertStats struct {
	Unresolved int `json:"unresolved"`
	Resolved   int `json:"resolved"`
	OutOfStock int `json:"out_of_stock"`
	LowStock   int `json:"low_stock"`
}

// AlertRepository define el puerto de persistencia de alertas de stock.
type AlertRepository interface {
	Create(alert *entity.StockAlert) error
	// GetUnresolved devuelve nil si no hay alerta sin resolver de ese tipo para el par.
	GetUnresolved(productID, warehouseID string, alertType entity.AlertType) (*entity.StockAlert, error)
	ListUnresolved() ([]*entity.StockAlert, error)
	// Resolve marca la alerta como resuelta; devuelve false si no existía sin resolver.
	Resolve(id string) (bool, error)
	List(filter AlertFilter, limit, offset int) ([]*entity.StockAlert, error)
	Stats() (*AlertStats, error)
}
