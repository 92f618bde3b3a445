package reports

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

// ValuationReport reporte de valorización con total agregado.
type ValuationReport struct {
	Rows       []repository.ValuationRow `json:"rows"`
	TotalValue decimal.Decimal           `json:"total_value"`
}

// UseCase reportes de solo lectura sobre el inventario.
type UseCase struct {
	repo repository.ReportRepository
}

// NewUseCase construye el caso de uso.
func NewUseCase(repo repository.ReportRepository) *UseCase {
	return &UseCase{repo: repo}
}

// StockSummary resumen de stock por producto y bodega con su estado (OK,
// LOW_STOCK, OUT_OF_STOCK) según el umbral de reorden.
func (uc *UseCase) StockSummary(ctx context.Context) ([]repository.StockSummaryRow, error) {
	return uc.repo.StockSummary(ctx)
}

// Valuation valorización del inventario (cantidad por costo unitario),
// opcionalmente filtrada por bodega o solo filas bajo el umbral.
func (uc *UseCase) Valuation(ctx context.Context, warehouseID string, lowStockOnly bool) (*ValuationReport, error) {
	rows, err := uc.repo.Valuation(ctx, warehouseID, lowStockOnly)
	if err != nil {
		return nil, err
	}
	total := decimal.Zero
	for _, r := range rows {
		total = total.Add(r.TotalValue)
	}
	return &ValuationReport{Rows: rows, TotalValue: total}, nil
}

// Movement historial de movimientos de un producto en un rango de fechas.
func (uc *UseCase) Movement(ctx context.Context, productID string, from, to *time.Time) ([]repository.MovementRow, error) {
	if productID == "" {
		return nil, domain.ErrInvalidInput
	}
	if from != nil && to != nil && to.Before(*from) {
		return nil, domain.ErrInvalidInput
	}
	return uc.repo.Movement(ctx, productID, from, to)
}
