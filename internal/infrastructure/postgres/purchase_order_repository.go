package postgres

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

var _ repository.PurchaseOrderRepository = (*PurchaseOrderRepo)(nil)

// PurchaseOrderRepo implementación de PurchaseOrderRepository sobre PostgreSQL.
type PurchaseOrderRepo struct {
	q Querier
}

// NewPurchaseOrderRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPurchaseOrderRepository(q Querier) *PurchaseOrderRepo {
	return &PurchaseOrderRepo{q: q}
}

// Create inserta la cabecera de una orden de compra.
func (r *PurchaseOrderRepo) Create(po *entity.PurchaseOrder) error {
	query := `
		INSERT INTO purchase_orders (id, supplier_id, ordered_by, status, order_date, expected_delivery, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		po.ID, po.SupplierID, po.OrderedBy, string(po.Status),
		po.OrderDate, po.ExpectedDelivery, po.Notes,
	)
	if err != nil {
		return fmt.Errorf("create purchase order: %w", err)
	}
	return nil
}

// CreateItem inserta una línea de la orden.
func (r *PurchaseOrderRepo) CreateItem(item *entity.PurchaseOrderItem) error {
	query := `
		INSERT INTO purchase_order_items (id, po_id, product_id, quantity, unit_cost, warehouse_id)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(context.Background(), query,
		item.ID, item.POID, item.ProductID, item.Quantity, item.UnitCost, item.WarehouseID,
	)
	if err != nil {
		return fmt.Errorf("create purchase order item: %w", err)
	}
	return nil
}

// GetByID obtiene una orden por ID. Devuelve nil sin error si no existe.
func (r *PurchaseOrderRepo) GetByID(id string) (*entity.PurchaseOrder, error) {
	query := `
		SELECT id, supplier_id, ordered_by, status, order_date, expected_delivery, notes
		FROM purchase_orders WHERE id = $1`
	var po entity.PurchaseOrder
	var status string
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&po.ID, &po.SupplierID, &po.OrderedBy, &status,
		&po.OrderDate, &po.ExpectedDelivery, &po.Notes,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get purchase order: %w", err)
	}
	po.Status = entity.POStatus(status)
	return &po, nil
}

// List devuelve órdenes con filtros opcionales, de más reciente a más antigua.
func (r *PurchaseOrderRepo) List(supplierID string, status entity.POStatus, limit, offset int) ([]*entity.PurchaseOrder, error) {
	query := `
		SELECT id, supplier_id, ordered_by, status, order_date, expected_delivery, notes
		FROM purchase_orders WHERE 1=1`
	args := []any{}
	n := 0
	next := func(v any) string {
		n++
		args = append(args, v)
		return "$" + strconv.Itoa(n)
	}
	if supplierID != "" {
		query += " AND supplier_id = " + next(supplierID)
	}
	if status != "" {
		query += " AND status = " + next(string(status))
	}
	query += " ORDER BY order_date DESC LIMIT " + next(limit) + " OFFSET " + next(offset)

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list purchase orders: %w", err)
	}
	defer rows.Close()

	var out []*entity.PurchaseOrder
	for rows.Next() {
		var po entity.PurchaseOrder
		var st string
		if err := rows.Scan(
			&po.ID, &po.SupplierID, &po.OrderedBy, &st,
			&po.OrderDate, &po.ExpectedDelivery, &po.Notes,
		); err != nil {
			return nil, fmt.Errorf("scan purchase order: %w", err)
		}
		po.Status = entity.POStatus(st)
		out = append(out, &po)
	}
	return out, rows.Err()
}

// UpdateStatus cambia el estado de una orden solo si sigue en from. El UPDATE
// condicionado toma el lock de la fila: de dos recibos concurrentes el segundo
// espera el commit del primero, no matchea ninguna fila y recibe
// ErrInvalidTransition en vez de aplicar deltas dos veces.
func (r *PurchaseOrderRepo) UpdateStatus(id string, from, to entity.POStatus) error {
	tag, err := r.q.Exec(context.Background(),
		`UPDATE purchase_orders SET status = $3 WHERE id = $1 AND status = $2`,
		id, string(from), string(to))
	if err != nil {
		return fmt.Errorf("update purchase order status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		// La orden cambió de estado (o desapareció) entre el chequeo y el UPDATE.
		return domain.ErrInvalidTransition
	}
	return nil
}

// ListItems devuelve las líneas de una orden.
func (r *PurchaseOrderRepo) ListItems(poID string) ([]*entity.PurchaseOrderItem, error) {
	query := `
		SELECT id, po_id, product_id, quantity, unit_cost, warehouse_id
		FROM purchase_order_items WHERE po_id = $1 ORDER BY id`
	rows, err := r.q.Query(context.Background(), query, poID)
	if err != nil {
		return nil, fmt.Errorf("list purchase order items: %w", err)
	}
	defer rows.Close()

	var out []*entity.PurchaseOrderItem
	for rows.Next() {
		var item entity.PurchaseOrderItem
		if err := rows.Scan(
			&item.ID, &item.POID, &item.ProductID, &item.Quantity, &item.UnitCost, &item.WarehouseID,
		); err != nil {
			return nil, fmt.Errorf("scan purchase order item: %w", err)
		}
		out = append(out, &item)
	}
	return out, rows.Err()
}

// DeletePending elimina la orden si sigue en pending; los ítems y el historial
// caen por FK ON DELETE CASCADE. El predicado de estado cierra la ventana entre
// el chequeo del caso de uso y el DELETE.
func (r *PurchaseOrderRepo) DeletePending(id string) error {
	tag, err := r.q.Exec(context.Background(),
		`DELETE FROM purchase_orders WHERE id = $1 AND status = $2`,
		id, string(entity.POPending))
	if err != nil {
		return fmt.Errorf("delete purchase order: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrInvalidTransition
	}
	return nil
}

// AddHistory inserta un registro de historial de estado.
func (r *PurchaseOrderRepo) AddHistory(h *entity.POStatusHistory) error {
	query := `
		INSERT INTO po_status_history (id, po_id, old_status, new_status, changed_by, changed_at, notes)
		VALUES ($1, $2, NULLIF($3, ''), $4, NULLIF($5, ''), $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		h.ID, h.POID, string(h.OldStatus), string(h.NewStatus), h.ChangedBy, h.ChangedAt, h.Notes,
	)
	if err != nil {
		return fmt.Errorf("add po status history: %w", err)
	}
	return nil
}

// ListHistory devuelve el historial de una orden en orden cronológico.
func (r *PurchaseOrderRepo) ListHistory(poID string) ([]*entity.POStatusHistory, error) {
	query := `
		SELECT id, po_id, COALESCE(old_status, ''), new_status, COALESCE(changed_by, ''), changed_at, notes
		FROM po_status_history WHERE po_id = $1 ORDER BY changed_at`
	rows, err := r.q.Query(context.Background(), query, poID)
	if err != nil {
		return nil, fmt.Errorf("list po status history: %w", err)
	}
	defer rows.Close()

	var out []*entity.POStatusHistory
	for rows.Next() {
		var h entity.POStatusHistory
		var oldStatus, newStatus string
		if err := rows.Scan(
			&h.ID, &h.POID, &oldStatus, &newStatus, &h.ChangedBy, &h.ChangedAt, &h.Notes,
		); err != nil {
			return nil, fmt.Errorf("scan po status history: %w", err)
		}
		h.OldStatus = entity.POStatus(oldStatus)
		h.NewStatus = entity.POStatus(newStatus)
		out = append(out, &h)
	}
	return out, rows.Err()
}
