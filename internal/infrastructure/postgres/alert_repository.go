package postgres

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

var _ repository.AlertRepository = (*AlertRepo)(nil)

const alertColumns = `id, product_id, warehouse_id, current_quantity, threshold,
	type, created_at, is_resolved, resolved_at`

// AlertRepo implementación de AlertRepository sobre PostgreSQL.
type AlertRepo struct {
	q Querier
}

// NewAlertRepository construye el adaptador. Pasar pool o tx (Querier).
func NewAlertRepository(q Querier) *AlertRepo {
	return &AlertRepo{q: q}
}

// Create inserta una alerta nueva (sin resolver).
func (r *AlertRepo) Create(alert *entity.StockAlert) error {
	query := `
		INSERT INTO stock_alerts (id, product_id, warehouse_id, current_quantity, threshold, type, created_at, is_resolved)
		VALUES ($1, $2, $3, $4, $5, $6, $7, false)`
	_, err := r.q.Exec(context.Background(), query,
		alert.ID, alert.ProductID, alert.WarehouseID,
		alert.CurrentQuantity, alert.Threshold, string(alert.Type), alert.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("create alert: %w", err)
	}
	return nil
}

// GetUnresolved devuelve la alerta sin resolver de ese tipo para el par, o nil.
func (r *AlertRepo) GetUnresolved(productID, warehouseID string, alertType entity.AlertType) (*entity.StockAlert, error) {
	query := `
		SELECT ` + alertColumns + `
		FROM stock_alerts
		WHERE product_id = $1 AND warehouse_id = $2 AND type = $3 AND is_resolved = false
		LIMIT 1`
	var a entity.StockAlert
	var typ string
	err := r.q.QueryRow(context.Background(), query, productID, warehouseID, string(alertType)).Scan(
		&a.ID, &a.ProductID, &a.WarehouseID, &a.CurrentQuantity, &a.Threshold,
		&typ, &a.CreatedAt, &a.IsResolved, &a.ResolvedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get unresolved alert: %w", err)
	}
	a.Type = entity.AlertType(typ)
	return &a, nil
}

// ListUnresolved devuelve todas las alertas sin resolver.
func (r *AlertRepo) ListUnresolved() ([]*entity.StockAlert, error) {
	query := `SELECT ` + alertColumns + ` FROM stock_alerts WHERE is_resolved = false ORDER BY created_at`
	return r.listQuery(query)
}

// Resolve marca la alerta como resuelta; devuelve false si no existía sin resolver.
func (r *AlertRepo) Resolve(id string) (bool, error) {
	query := `
		UPDATE stock_alerts SET is_resolved = true, resolved_at = now()
		WHERE id = $1 AND is_resolved = false`
	tag, err := r.q.Exec(context.Background(), query, id)
	if err != nil {
		return false, fmt.Errorf("resolve alert: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// List devuelve alertas con filtros opcionales, de más reciente a más antigua.
func (r *AlertRepo) List(filter repository.AlertFilter, limit, offset int) ([]*entity.StockAlert, error) {
	query := `SELECT ` + alertColumns + ` FROM stock_alerts WHERE 1=1`
	args := []any{}
	n := 0
	next := func(v any) string {
		n++
		args = append(args, v)
		return "$" + strconv.Itoa(n)
	}
	if filter.Resolved != nil {
		query += " AND is_resolved = " + next(*filter.Resolved)
	}
	if filter.ProductID != "" {
		query += " AND product_id = " + next(filter.ProductID)
	}
	if filter.WarehouseID != "" {
		query += " AND warehouse_id = " + next(filter.WarehouseID)
	}
	query += " ORDER BY created_at DESC LIMIT " + next(limit) + " OFFSET " + next(offset)
	return r.listQuery(query, args...)
}

// Stats devuelve conteos agregados de alertas en una sola consulta.
func (r *AlertRepo) Stats() (*repository.AlertStats, error) {
	query := `
		SELECT
			COUNT(*) FILTER (WHERE NOT is_resolved),
			COUNT(*) FILTER (WHERE is_resolved),
			COUNT(*) FILTER (WHERE type = 'out_of_stock' AND NOT is_resolved),
			COUNT(*) FILTER (WHERE type = 'low_stock' AND NOT is_resolved)
		FROM stock_alerts`
	var s repository.AlertStats
	err := r.q.QueryRow(context.Background(), query).Scan(
		&s.Unresolved, &s.Resolved, &s.OutOfStock, &s.LowStock,
	)
	if err != nil {
		return nil, fmt.Errorf("alert stats: %w", err)
	}
	return &s, nil
}

func (r *AlertRepo) listQuery(query string, args ...any) ([]*entity.StockAlert, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list alerts: %w", err)
	}
	defer rows.Close()

	var out []*entity.StockAlert
	for rows.Next() {
		var a entity.StockAlert
		var typ string
		if err := rows.Scan(
			&a.ID, &a.ProductID, &a.WarehouseID, &a.CurrentQuantity, &a.Threshold,
			&typ, &a.CreatedAt, &a.IsResolved, &a.ResolvedAt,
		); err != nil {
			return nil, fmt.Errorf("scan alert: %w", err)
		}
		a.Type = entity.AlertType(typ)
		out = append(out, &a)
	}
	return out, rows.Err()
}
