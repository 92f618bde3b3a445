package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

var _ repository.StockRepository = (*StockRepo)(nil)

// StockRepo implementación de StockRepository sobre PostgreSQL (usable con pool o tx).
type StockRepo struct {
	q Querier
}

// NewStockRepository construye el adaptador de stock. Pasar pool o tx (Querier).
func NewStockRepository(q Querier) *StockRepo {
	return &StockRepo{q: q}
}

// Get obtiene el stock actual de un producto en una bodega. Un par sin fila
// se devuelve con cantidad cero; la fila real se crea en la primera mutación.
func (r *StockRepo) Get(productID, warehouseID string) (*entity.Stock, error) {
	query := `
		SELECT product_id, warehouse_id, quantity, updated_at
		FROM stock WHERE product_id = $1 AND warehouse_id = $2`
	var s entity.Stock
	err := r.q.QueryRow(context.Background(), query, productID, warehouseID).Scan(
		&s.ProductID, &s.WarehouseID, &s.Quantity, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &entity.Stock{ProductID: productID, WarehouseID: warehouseID, Quantity: decimal.Zero}, nil
		}
		return nil, fmt.Errorf("get stock: %w", err)
	}
	return &s, nil
}

// GetForUpdate obtiene el stock y bloquea la fila para update (SELECT FOR UPDATE).
func (r *StockRepo) GetForUpdate(productID, warehouseID string) (*entity.Stock, error) {
	query := `
		SELECT product_id, warehouse_id, quantity, updated_at
		FROM stock WHERE product_id = $1 AND warehouse_id = $2
		FOR UPDATE`
	var s entity.Stock
	err := r.q.QueryRow(context.Background(), query, productID, warehouseID).Scan(
		&s.ProductID, &s.WarehouseID, &s.Quantity, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &entity.Stock{ProductID: productID, WarehouseID: warehouseID, Quantity: decimal.Zero}, nil
		}
		return nil, fmt.Errorf("get stock for update: %w", err)
	}
	return &s, nil
}

// Upsert inserta o actualiza la cantidad en stock (por producto y bodega).
func (r *StockRepo) Upsert(stock *entity.Stock) error {
	query := `
		INSERT INTO stock (product_id, warehouse_id, quantity, updated_at)
		VALUES ($1, $2, $3, now())
		ON CONFLICT (product_id, warehouse_id)
		DO UPDATE SET quantity = EXCLUDED.quantity, updated_at = now()`
	_, err := r.q.Exec(context.Background(), query, stock.ProductID, stock.WarehouseID, stock.Quantity)
	if err != nil {
		return fmt.Errorf("upsert stock: %w", err)
	}
	return nil
}

// Create inserta una fila de stock nueva. Falla con ErrDuplicate si el par ya existe.
func (r *StockRepo) Create(stock *entity.Stock) error {
	query := `
		INSERT INTO stock (product_id, warehouse_id, quantity, updated_at)
		VALUES ($1, $2, $3, now())`
	_, err := r.q.Exec(context.Background(), query, stock.ProductID, stock.WarehouseID, stock.Quantity)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		if isForeignKeyViolation(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("create stock: %w", err)
	}
	return nil
}

// Exists indica si hay fila de stock para el par (producto, bodega).
func (r *StockRepo) Exists(productID, warehouseID string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM stock WHERE product_id = $1 AND warehouse_id = $2)`
	var exists bool
	if err := r.q.QueryRow(context.Background(), query, productID, warehouseID).Scan(&exists); err != nil {
		return false, fmt.Errorf("exists stock: %w", err)
	}
	return exists, nil
}

// ListAll devuelve todas las filas de stock.
func (r *StockRepo) ListAll() ([]*entity.Stock, error) {
	query := `
		SELECT product_id, warehouse_id, quantity, updated_at
		FROM stock ORDER BY product_id, warehouse_id`
	return r.list(query)
}

// ListByProduct devuelve el stock de un producto en todas las bodegas.
func (r *StockRepo) ListByProduct(productID string) ([]*entity.Stock, error) {
	query := `
		SELECT product_id, warehouse_id, quantity, updated_at
		FROM stock WHERE product_id = $1 ORDER BY warehouse_id`
	return r.list(query, productID)
}

// ListByWarehouse devuelve el stock de todos los productos en una bodega.
func (r *StockRepo) ListByWarehouse(warehouseID string) ([]*entity.Stock, error) {
	query := `
		SELECT product_id, warehouse_id, quantity, updated_at
		FROM stock WHERE warehouse_id = $1 ORDER BY product_id`
	return r.list(query, warehouseID)
}

// ListWithReorderLevel une stock con products para el barrido de alertas.
func (r *StockRepo) ListWithReorderLevel() ([]repository.StockLevelRow, error) {
	query := `
		SELECT s.product_id, p.name, p.sku, s.warehouse_id, s.quantity, p.reorder_level, p.unit_cost
		FROM stock s
		JOIN products p ON p.id = s.product_id
		ORDER BY s.product_id, s.warehouse_id`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list stock con reorder level: %w", err)
	}
	defer rows.Close()

	var out []repository.StockLevelRow
	for rows.Next() {
		var row repository.StockLevelRow
		if err := rows.Scan(
			&row.ProductID, &row.ProductName, &row.SKU, &row.WarehouseID,
			&row.Quantity, &row.ReorderLevel, &row.UnitCost,
		); err != nil {
			return nil, fmt.Errorf("scan stock level: %w", err)
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

func (r *StockRepo) list(query string, args ...any) ([]*entity.Stock, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list stock: %w", err)
	}
	defer rows.Close()

	var out []*entity.Stock
	for rows.Next() {
		var s entity.Stock
		if err := rows.Scan(&s.ProductID, &s.WarehouseID, &s.Quantity, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan stock: %w", err)
		}
		out = append(out, &s)
	}
	return out, rows.Err()
}
