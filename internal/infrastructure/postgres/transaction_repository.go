package postgres

import (
	"context"
	"fmt"
	"strconv"

	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

var _ repository.TransactionRepository = (*TransactionRepo)(nil)

// TransactionRepo implementación de TransactionRepository sobre PostgreSQL.
// El registro es inmutable: solo INSERT y SELECT.
type TransactionRepo struct {
	q Querier
}

// NewTransactionRepository construye el adaptador. Pasar pool o tx (Querier).
func NewTransactionRepository(q Querier) *TransactionRepo {
	return &TransactionRepo{q: q}
}

// Create inserta un registro de transacción.
func (r *TransactionRepo) Create(txn *entity.Transaction) error {
	query := `
		INSERT INTO transactions (id, product_id, warehouse_id, type, quantity, note, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, NULLIF($7, ''), $8)`
	_, err := r.q.Exec(context.Background(), query,
		txn.ID, txn.ProductID, txn.WarehouseID, string(txn.Type),
		txn.Quantity, txn.Note, txn.CreatedBy, txn.CreatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("create transaction: %w", err)
	}
	return nil
}

// List devuelve transacciones con filtros opcionales, de más reciente a más antigua.
func (r *TransactionRepo) List(filter repository.TransactionFilter, limit, offset int) ([]*entity.Transaction, error) {
	query := `
		SELECT id, product_id, warehouse_id, type, quantity, note, COALESCE(created_by, ''), created_at
		FROM transactions WHERE 1=1`
	args := []any{}
	n := 0
	next := func(v any) string {
		n++
		args = append(args, v)
		return "$" + strconv.Itoa(n)
	}

	if filter.ProductID != "" {
		query += " AND product_id = " + next(filter.ProductID)
	}
	if filter.WarehouseID != "" {
		query += " AND warehouse_id = " + next(filter.WarehouseID)
	}
	if filter.Type != "" {
		query += " AND type = " + next(string(filter.Type))
	}
	if filter.From != nil {
		query += " AND created_at >= " + next(*filter.From)
	}
	if filter.To != nil {
		query += " AND created_at <= " + next(*filter.To)
	}
	query += " ORDER BY created_at DESC LIMIT " + next(limit) + " OFFSET " + next(offset)

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	defer rows.Close()

	var out []*entity.Transaction
	for rows.Next() {
		var t entity.Transaction
		var typ string
		if err := rows.Scan(
			&t.ID, &t.ProductID, &t.WarehouseID, &typ,
			&t.Quantity, &t.Note, &t.CreatedBy, &t.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		t.Type = entity.TransactionType(typ)
		out = append(out, &t)
	}
	return out, rows.Err()
}
