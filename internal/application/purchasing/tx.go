package purchasing

import (
	"context"

	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

// TxRunner ejecuta callbacks con repositorios de compras y stock atados a una
// misma transacción de almacenamiento. El recibo de una orden (N deltas de
// stock + cambio de estado + historial) es todo o nada.
type TxRunner interface {
	RunPurchase(ctx context.Context, fn func(
		poRepo repository.PurchaseOrderRepository,
		stockRepo repository.StockRepository,
	) error) error
}
