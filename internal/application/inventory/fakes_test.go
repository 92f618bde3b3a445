package inventory_test

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/almacen-api/internal/application/inventory"
	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Dobles en memoria de los repositorios y el TxRunner
// ──────────────────────────────────────────────────────────────────────────────

type pairKey [2]string

// memStockRepo libro de stock en memoria. GetForUpdate devuelve una copia,
// igual que una lectura de la base: los cambios solo se ven tras Upsert.
type memStockRepo struct {
	rows   map[pairKey]entity.Stock
	levels []repository.StockLevelRow
}

func newMemStockRepo() *memStockRepo {
	return &memStockRepo{rows: make(map[pairKey]entity.Stock)}
}

func (r *memStockRepo) set(productID, warehouseID string, qty decimal.Decimal) {
	r.rows[pairKey{productID, warehouseID}] = entity.Stock{
		ProductID:   productID,
		WarehouseID: warehouseID,
		Quantity:    qty,
		UpdatedAt:   time.Now(),
	}
}

func (r *memStockRepo) qty(productID, warehouseID string) decimal.Decimal {
	return r.rows[pairKey{productID, warehouseID}].Quantity
}

func (r *memStockRepo) Get(productID, warehouseID string) (*entity.Stock, error) {
	if row, ok := r.rows[pairKey{productID, warehouseID}]; ok {
		copia := row
		return &copia, nil
	}
	return &entity.Stock{ProductID: productID, WarehouseID: warehouseID, Quantity: decimal.Zero}, nil
}

func (r *memStockRepo) GetForUpdate(productID, warehouseID string) (*entity.Stock, error) {
	return r.Get(productID, warehouseID)
}

func (r *memStockRepo) Upsert(stock *entity.Stock) error {
	r.rows[pairKey{stock.ProductID, stock.WarehouseID}] = *stock
	return nil
}

func (r *memStockRepo) Create(stock *entity.Stock) error {
	key := pairKey{stock.ProductID, stock.WarehouseID}
	if _, ok := r.rows[key]; ok {
		return domain.ErrDuplicate
	}
	r.rows[key] = *stock
	return nil
}

func (r *memStockRepo) Exists(productID, warehouseID string) (bool, error) {
	_, ok := r.rows[pairKey{productID, warehouseID}]
	return ok, nil
}

func (r *memStockRepo) ListAll() ([]*entity.Stock, error) {
	out := make([]*entity.Stock, 0, len(r.rows))
	for key := range r.rows {
		row := r.rows[key]
		out = append(out, &row)
	}
	return out, nil
}

func (r *memStockRepo) ListByProduct(productID string) ([]*entity.Stock, error) {
	var out []*entity.Stock
	for key := range r.rows {
		if key[0] == productID {
			row := r.rows[key]
			out = append(out, &row)
		}
	}
	return out, nil
}

func (r *memStockRepo) ListByWarehouse(warehouseID string) ([]*entity.Stock, error) {
	var out []*entity.Stock
	for key := range r.rows {
		if key[1] == warehouseID {
			row := r.rows[key]
			out = append(out, &row)
		}
	}
	return out, nil
}

func (r *memStockRepo) ListWithReorderLevel() ([]repository.StockLevelRow, error) {
	return r.levels, nil
}

// memTxnRepo registro de transacciones en memoria (append-only).
type memTxnRepo struct {
	txns []*entity.Transaction
}

func (r *memTxnRepo) Create(txn *entity.Transaction) error {
	r.txns = append(r.txns, txn)
	return nil
}

func (r *memTxnRepo) List(filter repository.TransactionFilter, limit, offset int) ([]*entity.Transaction, error) {
	return r.txns, nil
}

// memReturnRepo registro de devoluciones en memoria.
type memReturnRepo struct {
	returns []*entity.Return
}

func (r *memReturnRepo) Create(ret *entity.Return) error {
	r.returns = append(r.returns, ret)
	return nil
}

func (r *memReturnRepo) List(limit, offset int) ([]*entity.Return, error) {
	return r.returns, nil
}

// memTxRunner ejecuta los callbacks contra los repos en memoria. Si el callback
// falla, restaura el libro de stock y los registros al estado previo (rollback).
type memTxRunner struct {
	stockRepo  *memStockRepo
	txnRepo    *memTxnRepo
	returnRepo *memReturnRepo
}

func (tr *memTxRunner) Run(ctx context.Context, fn func(
	txnRepo repository.TransactionRepository,
	stockRepo repository.StockRepository,
) error) error {
	snapshot := tr.snapshotStock()
	txnCount := len(tr.txnRepo.txns)
	if err := fn(tr.txnRepo, tr.stockRepo); err != nil {
		tr.stockRepo.rows = snapshot
		tr.txnRepo.txns = tr.txnRepo.txns[:txnCount]
		return err
	}
	return nil
}

func (tr *memTxRunner) RunReturn(ctx context.Context, fn func(
	returnRepo repository.ReturnRepository,
	stockRepo repository.StockRepository,
) error) error {
	snapshot := tr.snapshotStock()
	retCount := len(tr.returnRepo.returns)
	if err := fn(tr.returnRepo, tr.stockRepo); err != nil {
		tr.stockRepo.rows = snapshot
		tr.returnRepo.returns = tr.returnRepo.returns[:retCount]
		return err
	}
	return nil
}

func (tr *memTxRunner) snapshotStock() map[pairKey]entity.Stock {
	snapshot := make(map[pairKey]entity.Stock, len(tr.stockRepo.rows))
	for k, v := range tr.stockRepo.rows {
		snapshot[k] = v
	}
	return snapshot
}

// memProductRepo catálogo de productos en memoria.
type memProductRepo struct {
	products map[string]*entity.Product
}

func newMemProductRepo(ids ...string) *memProductRepo {
	r := &memProductRepo{products: make(map[string]*entity.Product)}
	for _, id := range ids {
		r.products[id] = &entity.Product{ID: id, SKU: "SKU-" + id, Name: "Producto " + id}
	}
	return r
}

func (r *memProductRepo) Create(p *entity.Product) error { r.products[p.ID] = p; return nil }
func (r *memProductRepo) GetByID(id string) (*entity.Product, error) {
	return r.products[id], nil
}
func (r *memProductRepo) GetBySKU(sku string) (*entity.Product, error) {
	for _, p := range r.products {
		if p.SKU == sku {
			return p, nil
		}
	}
	return nil, nil
}
func (r *memProductRepo) Update(p *entity.Product) error { r.products[p.ID] = p; return nil }
func (r *memProductRepo) List(limit, offset int) ([]*entity.Product, error) {
	return r.all(), nil
}
func (r *memProductRepo) ListByCategoryCode(code string, limit, offset int) ([]*entity.Product, error) {
	return nil, nil
}
func (r *memProductRepo) ListAll() ([]*entity.Product, error) { return r.all(), nil }
func (r *memProductRepo) Delete(id string) error              { delete(r.products, id); return nil }

func (r *memProductRepo) all() []*entity.Product {
	out := make([]*entity.Product, 0, len(r.products))
	for _, p := range r.products {
		out = append(out, p)
	}
	return out
}

// memWarehouseRepo bodegas en memoria.
type memWarehouseRepo struct {
	warehouses map[string]*entity.Warehouse
}

func newMemWarehouseRepo(ids ...string) *memWarehouseRepo {
	r := &memWarehouseRepo{warehouses: make(map[string]*entity.Warehouse)}
	for _, id := range ids {
		r.warehouses[id] = &entity.Warehouse{ID: id, Name: "Bodega " + id}
	}
	return r
}

func (r *memWarehouseRepo) Create(w *entity.Warehouse) error { r.warehouses[w.ID] = w; return nil }
func (r *memWarehouseRepo) GetByID(id string) (*entity.Warehouse, error) {
	return r.warehouses[id], nil
}
func (r *memWarehouseRepo) Update(w *entity.Warehouse) error { r.warehouses[w.ID] = w; return nil }
func (r *memWarehouseRepo) List(limit, offset int) ([]*entity.Warehouse, error) {
	out := make([]*entity.Warehouse, 0, len(r.warehouses))
	for _, w := range r.warehouses {
		out = append(out, w)
	}
	return out, nil
}
func (r *memWarehouseRepo) Delete(id string) error { delete(r.warehouses, id); return nil }

// memAlertRepo alertas en memoria.
type memAlertRepo struct {
	alerts []*entity.StockAlert
}

func (r *memAlertRepo) Create(alert *entity.StockAlert) error {
	r.alerts = append(r.alerts, alert)
	return nil
}

func (r *memAlertRepo) GetUnresolved(productID, warehouseID string, alertType entity.AlertType) (*entity.StockAlert, error) {
	for _, a := range r.alerts {
		if !a.IsResolved && a.ProductID == productID && a.WarehouseID == warehouseID && a.Type == alertType {
			return a, nil
		}
	}
	return nil, nil
}

func (r *memAlertRepo) ListUnresolved() ([]*entity.StockAlert, error) {
	var out []*entity.StockAlert
	for _, a := range r.alerts {
		if !a.IsResolved {
			out = append(out, a)
		}
	}
	return out, nil
}

func (r *memAlertRepo) Resolve(id string) (bool, error) {
	for _, a := range r.alerts {
		if a.ID == id && !a.IsResolved {
			a.IsResolved = true
			now := time.Now()
			a.ResolvedAt = &now
			return true, nil
		}
	}
	return false, nil
}

func (r *memAlertRepo) List(filter repository.AlertFilter, limit, offset int) ([]*entity.StockAlert, error) {
	return r.alerts, nil
}

func (r *memAlertRepo) Stats() (*repository.AlertStats, error) {
	stats := &repository.AlertStats{}
	for _, a := range r.alerts {
		if a.IsResolved {
			stats.Resolved++
		} else {
			stats.Unresolved++
		}
		switch a.Type {
		case entity.AlertOutOfStock:
			stats.OutOfStock++
		case entity.AlertLowStock:
			stats.LowStock++
		}
	}
	return stats, nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Armado del entorno de test
// ──────────────────────────────────────────────────────────────────────────────

type invEnv struct {
	stockRepo  *memStockRepo
	txnRepo    *memTxnRepo
	returnRepo *memReturnRepo
	runner     *memTxRunner
	uc         *inventory.RegisterTransactionUseCase
	returnUC   *inventory.ReturnUseCase
}

func newInvEnv(productIDs, warehouseIDs []string) *invEnv {
	stockRepo := newMemStockRepo()
	txnRepo := &memTxnRepo{}
	returnRepo := &memReturnRepo{}
	runner := &memTxRunner{stockRepo: stockRepo, txnRepo: txnRepo, returnRepo: returnRepo}
	productRepo := newMemProductRepo(productIDs...)
	warehouseRepo := newMemWarehouseRepo(warehouseIDs...)
	return &invEnv{
		stockRepo:  stockRepo,
		txnRepo:    txnRepo,
		returnRepo: returnRepo,
		runner:     runner,
		uc:         inventory.NewRegisterTransactionUseCase(runner, productRepo, warehouseRepo),
		returnUC:   inventory.NewReturnUseCase(runner, productRepo, warehouseRepo, returnRepo),
	}
}
