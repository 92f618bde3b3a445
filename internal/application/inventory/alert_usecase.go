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

// AlertUseCase barrido idempotente de niveles de stock: crea alertas de
// stock agotado / stock bajo y resuelve las que ya no aplican. Pensado para
// ejecutarse bajo demanda o desde un scheduler externo; correr el barrido dos
// veces seguidas sin cambios de stock no produce alertas ni resoluciones nuevas.
//
// El chequeo existencia-antes-de-insertar no es linealizable con las mutaciones
// de stock; una alerta duplicada en esa ventana es redundante, no corrupta.
type AlertUseCase struct {
	stockRepo        repository.StockRepository
	alertRepo        repository.AlertRepository
	defaultThreshold decimal.Decimal
}

// NewAlertUseCase construye el caso de uso. defaultThreshold aplica a productos
// sin reorder_level configurado.
func NewAlertUseCase(stockRepo repository.StockRepository, alertRepo repository.AlertRepository, defaultThreshold int) *AlertUseCase {
	return &AlertUseCase{
		stockRepo:        stockRepo,
		alertRepo:        alertRepo,
		defaultThreshold: decimal.NewFromInt(int64(defaultThreshold)),
	}
}

// CheckStockLevels recorre todas las filas de stock y concilia las alertas.
func (uc *AlertUseCase) CheckStockLevels(ctx context.Context) (*dto.SweepResult, error) {
	rows, err := uc.stockRepo.ListWithReorderLevel()
	if err != nil {
		return nil, err
	}

	result := &dto.SweepResult{Checked: len(rows)}

	type pairState struct {
		quantity  decimal.Decimal
		threshold decimal.Decimal
	}
	states := make(map[[2]string]pairState, len(rows))

	for _, row := range rows {
		threshold := row.ReorderLevel
		if !threshold.GreaterThan(decimal.Zero) {
			threshold = uc.defaultThreshold
		}
		states[[2]string{row.ProductID, row.WarehouseID}] = pairState{quantity: row.Quantity, threshold: threshold}

		switch {
		case row.Quantity.IsZero():
			created, err := uc.createIfMissing(row, threshold, entity.AlertOutOfStock)
			if err != nil {
				return nil, err
			}
			if created {
				result.Created++
			}
		case row.Quantity.LessThan(threshold):
			created, err := uc.createIfMissing(row, threshold, entity.AlertLowStock)
			if err != nil {
				return nil, err
			}
			if created {
				result.Created++
			}
		}
	}

	// Resolver alertas cuyo par ya se recuperó.
	unresolved, err := uc.alertRepo.ListUnresolved()
	if err != nil {
		return nil, err
	}
	for _, alert := range unresolved {
		state, ok := states[[2]string{alert.ProductID, alert.WarehouseID}]
		if !ok {
			// Sin fila de stock: la cantidad es cero, nada que resolver.
			continue
		}
		recovered := false
		switch alert.Type {
		case entity.AlertOutOfStock:
			recovered = state.quantity.GreaterThan(decimal.Zero)
		case entity.AlertLowStock:
			recovered = state.quantity.GreaterThanOrEqual(state.threshold)
		}
		if recovered {
			if _, err := uc.alertRepo.Resolve(alert.ID); err != nil {
				return nil, err
			}
			result.Resolved++
		}
	}

	return result, nil
}

// createIfMissing inserta la alerta solo si no existe una sin resolver del mismo
// tipo para el par (producto, bodega).
func (uc *AlertUseCase) createIfMissing(row repository.StockLevelRow, threshold decimal.Decimal, alertType entity.AlertType) (bool, error) {
	existing, err := uc.alertRepo.GetUnresolved(row.ProductID, row.WarehouseID, alertType)
	if err != nil {
		return false, err
	}
	if existing != nil {
		return false, nil
	}
	alert := &entity.StockAlert{
		ID:              uuid.New().String(),
		ProductID:       row.ProductID,
		WarehouseID:     row.WarehouseID,
		CurrentQuantity: row.Quantity,
		Threshold:       threshold,
		Type:            alertType,
		CreatedAt:       time.Now(),
	}
	if err := uc.alertRepo.Create(alert); err != nil {
		return false, err
	}
	return true, nil
}

// Resolve marca manualmente una alerta como resuelta, independiente del barrido.
func (uc *AlertUseCase) Resolve(ctx context.Context, alertID string) error {
	ok, err := uc.alertRepo.Resolve(alertID)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrNotFound
	}
	return nil
}

// List devuelve alertas con filtros opcionales.
func (uc *AlertUseCase) List(filter repository.AlertFilter, limit, offset int) ([]*dto.AlertResponse, error) {
	alerts, err := uc.alertRepo.List(filter, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.AlertResponse, 0, len(alerts))
	for _, a := range alerts {
		out = append(out, toAlertResponse(a))
	}
	return out, nil
}

// Stats devuelve conteos agregados de alertas.
func (uc *AlertUseCase) Stats() (*repository.AlertStats, error) {
	return uc.alertRepo.Stats()
}

func toAlertResponse(a *entity.StockAlert) *dto.AlertResponse {
	return &dto.AlertResponse{
		ID:              a.ID,
		ProductID:       a.ProductID,
		WarehouseID:     a.WarehouseID,
		CurrentQuantity: a.CurrentQuantity,
		Threshold:       a.Threshold,
		AlertType:       string(a.Type),
		CreatedAt:       a.CreatedAt,
		IsResolved:      a.IsResolved,
		ResolvedAt:      a.ResolvedAt,
	}
}
