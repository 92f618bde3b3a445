package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

var _ repository.ReturnRepository = (*ReturnRepo)(nil)

// ReturnRepo implementación de ReturnRepository sobre PostgreSQL (append-only).
type ReturnRepo struct {
	q Querier
}

// NewReturnRepository construye el adaptador. Pasar pool o tx (Querier).
func NewReturnRepository(q Querier) *ReturnRepo {
	return &ReturnRepo{q: q}
}

// Create inserta un registro de devolución.
func (r *ReturnRepo) Create(ret *entity.Return) error {
	query := `
		INSERT INTO returns (id, product_id, warehouse_id, type, quantity, reason, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, NULLIF($7, ''), $8)`
	_, err := r.q.Exec(context.Background(), query,
		ret.ID, ret.ProductID, ret.WarehouseID, string(ret.Type),
		ret.Quantity, ret.Reason, ret.CreatedBy, ret.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("create return: %w", err)
	}
	return nil
}

// List devuelve devoluciones de más reciente a más antigua.
func (r *ReturnRepo) List(limit, offset int) ([]*entity.Return, error) {
	query := `
		SELECT id, product_id, warehouse_id, type, quantity, reason, COALESCE(created_by, ''), created_at
		FROM returns ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list returns: %w", err)
	}
	defer rows.Close()

	var out []*entity.Return
	for rows.Next() {
		var ret entity.Return
		var typ string
		if err := rows.Scan(
			&ret.ID, &ret.ProductID, &ret.WarehouseID, &typ,
			&ret.Quantity, &ret.Reason, &ret.CreatedBy, &ret.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan return: %w", err)
		}
		ret.Type = entity.ReturnType(typ)
		out = append(out, &ret)
	}
	return out, rows.Err()
}
