package inventory

import (
	"context"

	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

// TxRunner ejecuta callbacks dentro de una transacción de almacenamiento.
// Los repositorios entregados al callback están atados a esa transacción:
// o todo se confirma o nada queda visible.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		txnRepo repository.TransactionRepository,
		stockRepo repository.StockRepository,
	) error) error

	RunReturn(ctx context.Context, fn func(
		returnRepo repository.ReturnRepository,
		stockRepo repository.StockRepository,
	) error) error
}
