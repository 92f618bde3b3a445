package postgres

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

var _ repository.ReportRepository = (*ReportRepo)(nil)

// ReportRepo consultas de solo lectura para reportes de inventario.
type ReportRepo struct {
	pool *pgxpool.Pool
}

// NewReportRepository construye el adaptador de reportes.
func NewReportRepository(pool *pgxpool.Pool) *ReportRepo {
	return &ReportRepo{pool: pool}
}

// StockSummary resumen de stock por producto y bodega con estado calculado
// contra el umbral de reorden del producto.
func (r *ReportRepo) StockSummary(ctx context.Context) ([]repository.StockSummaryRow, error) {
	const query = `
	SELECT
	    s.product_id,
	    p.sku,
	    p.name,
	    s.warehouse_id,
	    w.name,
	    s.quantity,
	    p.reorder_level,
	    CASE
	        WHEN s.quantity = 0                  THEN 'OUT_OF_STOCK'
	        WHEN s.quantity < p.reorder_level    THEN 'LOW_STOCK'
	        ELSE 'OK'
	    END AS status
	FROM stock s
	JOIN products   p ON p.id = s.product_id
	JOIN warehouses w ON w.id = s.warehouse_id
	ORDER BY p.sku, w.name`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("reports.StockSummary: %w", err)
	}
	defer rows.Close()

	var results []repository.StockSummaryRow
	for rows.Next() {
		var row repository.StockSummaryRow
		if err := rows.Scan(
			&row.ProductID,
			&row.SKU,
			&row.ProductName,
			&row.WarehouseID,
			&row.WarehouseName,
			&row.Quantity,
			&row.ReorderLevel,
			&row.Status,
		); err != nil {
			return nil, fmt.Errorf("reports.StockSummary scan: %w", err)
		}
		results = append(results, row)
	}
	return results, rows.Err()
}

// Valuation valoriza el inventario (cantidad × costo unitario) por producto y
// bodega, con filtros opcionales por bodega y por filas bajo el umbral.
func (r *ReportRepo) Valuation(ctx context.Context, warehouseID string, lowStockOnly bool) ([]repository.ValuationRow, error) {
	query := `
	SELECT
	    s.product_id,
	    p.sku,
	    p.name,
	    s.warehouse_id,
	    s.quantity,
	    p.unit_cost,
	    s.quantity * p.unit_cost AS total_value
	FROM stock s
	JOIN products p ON p.id = s.product_id
	WHERE 1=1`
	args := []any{}
	if warehouseID != "" {
		args = append(args, warehouseID)
		query += " AND s.warehouse_id = $" + strconv.Itoa(len(args))
	}
	if lowStockOnly {
		query += " AND s.quantity < p.reorder_level"
	}
	query += " ORDER BY total_value DESC"

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("reports.Valuation: %w", err)
	}
	defer rows.Close()

	var results []repository.ValuationRow
	for rows.Next() {
		var row repository.ValuationRow
		if err := rows.Scan(
			&row.ProductID,
			&row.SKU,
			&row.ProductName,
			&row.WarehouseID,
			&row.Quantity,
			&row.UnitCost,
			&row.TotalValue,
		); err != nil {
			return nil, fmt.Errorf("reports.Valuation scan: %w", err)
		}
		results = append(results, row)
	}
	return results, rows.Err()
}

// Movement historial de movimientos de un producto en un rango de fechas.
func (r *ReportRepo) Movement(ctx context.Context, productID string, from, to *time.Time) ([]repository.MovementRow, error) {
	query := `
	SELECT t.id, t.product_id, p.sku, t.warehouse_id, t.type, t.quantity, t.created_at
	FROM transactions t
	JOIN products p ON p.id = t.product_id
	WHERE t.product_id = $1`
	args := []any{productID}
	if from != nil {
		args = append(args, *from)
		query += " AND t.created_at >= $" + strconv.Itoa(len(args))
	}
	if to != nil {
		args = append(args, *to)
		query += " AND t.created_at <= $" + strconv.Itoa(len(args))
	}
	query += " ORDER BY t.created_at DESC"

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("reports.Movement: %w", err)
	}
	defer rows.Close()

	var results []repository.MovementRow
	for rows.Next() {
		var row repository.MovementRow
		if err := rows.Scan(
			&row.TransactionID,
			&row.ProductID,
			&row.SKU,
			&row.WarehouseID,
			&row.Type,
			&row.Quantity,
			&row.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("reports.Movement scan: %w", err)
		}
		results = append(results, row)
	}
	return results, rows.Err()
}
