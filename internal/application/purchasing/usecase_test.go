package purchasing_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/application/purchasing"
	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Dobles en memoria
// ──────────────────────────────────────────────────────────────────────────────

type memPORepo struct {
	orders  map[string]*entity.PurchaseOrder
	items   map[string][]*entity.PurchaseOrderItem
	history map[string][]*entity.POStatusHistory
}

func newMemPORepo() *memPORepo {
	return &memPORepo{
		orders:  make(map[string]*entity.PurchaseOrder),
		items:   make(map[string][]*entity.PurchaseOrderItem),
		history: make(map[string][]*entity.POStatusHistory),
	}
}

func (r *memPORepo) Create(po *entity.PurchaseOrder) error {
	copia := *po
	r.orders[po.ID] = &copia
	return nil
}

func (r *memPORepo) CreateItem(item *entity.PurchaseOrderItem) error {
	r.items[item.POID] = append(r.items[item.POID], item)
	return nil
}

func (r *memPORepo) GetByID(id string) (*entity.PurchaseOrder, error) {
	po, ok := r.orders[id]
	if !ok {
		return nil, nil
	}
	copia := *po
	return &copia, nil
}

func (r *memPORepo) List(supplierID string, status entity.POStatus, limit, offset int) ([]*entity.PurchaseOrder, error) {
	var out []*entity.PurchaseOrder
	for _, po := range r.orders {
		if supplierID != "" && po.SupplierID != supplierID {
			continue
		}
		if status != "" && po.Status != status {
			continue
		}
		out = append(out, po)
	}
	return out, nil
}

func (r *memPORepo) UpdateStatus(id string, from, to entity.POStatus) error {
	po, ok := r.orders[id]
	if !ok || po.Status != from {
		return domain.ErrInvalidTransition
	}
	po.Status = to
	return nil
}

func (r *memPORepo) ListItems(poID string) ([]*entity.PurchaseOrderItem, error) {
	return r.items[poID], nil
}

func (r *memPORepo) DeletePending(id string) error {
	po, ok := r.orders[id]
	if !ok || po.Status != entity.POPending {
		return domain.ErrInvalidTransition
	}
	delete(r.orders, id)
	delete(r.items, id)
	delete(r.history, id)
	return nil
}

func (r *memPORepo) AddHistory(h *entity.POStatusHistory) error {
	r.history[h.POID] = append(r.history[h.POID], h)
	return nil
}

func (r *memPORepo) ListHistory(poID string) ([]*entity.POStatusHistory, error) {
	return r.history[poID], nil
}

type memStockRepo struct {
	rows map[[2]string]entity.Stock
}

func newMemStockRepo() *memStockRepo {
	return &memStockRepo{rows: make(map[[2]string]entity.Stock)}
}

func (r *memStockRepo) qty(productID, warehouseID string) decimal.Decimal {
	return r.rows[[2]string{productID, warehouseID}].Quantity
}

func (r *memStockRepo) Get(productID, warehouseID string) (*entity.Stock, error) {
	if row, ok := r.rows[[2]string{productID, warehouseID}]; ok {
		copia := row
		return &copia, nil
	}
	return &entity.Stock{ProductID: productID, WarehouseID: warehouseID, Quantity: decimal.Zero}, nil
}

func (r *memStockRepo) GetForUpdate(productID, warehouseID string) (*entity.Stock, error) {
	return r.Get(productID, warehouseID)
}

func (r *memStockRepo) Upsert(stock *entity.Stock) error {
	r.rows[[2]string{stock.ProductID, stock.WarehouseID}] = *stock
	return nil
}

func (r *memStockRepo) Create(stock *entity.Stock) error {
	key := [2]string{stock.ProductID, stock.WarehouseID}
	if _, ok := r.rows[key]; ok {
		return domain.ErrDuplicate
	}
	r.rows[key] = *stock
	return nil
}

func (r *memStockRepo) Exists(productID, warehouseID string) (bool, error) {
	_, ok := r.rows[[2]string{productID, warehouseID}]
	return ok, nil
}

func (r *memStockRepo) ListAll() ([]*entity.Stock, error)               { return nil, nil }
func (r *memStockRepo) ListByProduct(string) ([]*entity.Stock, error)   { return nil, nil }
func (r *memStockRepo) ListByWarehouse(string) ([]*entity.Stock, error) { return nil, nil }
func (r *memStockRepo) ListWithReorderLevel() ([]repository.StockLevelRow, error) {
	return nil, nil
}

type memSupplierRepo struct {
	suppliers map[string]*entity.Supplier
}

func (r *memSupplierRepo) Create(s *entity.Supplier) error { r.suppliers[s.ID] = s; return nil }
func (r *memSupplierRepo) GetByID(id string) (*entity.Supplier, error) {
	return r.suppliers[id], nil
}
func (r *memSupplierRepo) Update(s *entity.Supplier) error { r.suppliers[s.ID] = s; return nil }
func (r *memSupplierRepo) List(limit, offset int) ([]*entity.Supplier, error) {
	return nil, nil
}
func (r *memSupplierRepo) Delete(id string) error { delete(r.suppliers, id); return nil }

type memProductRepo struct {
	products map[string]*entity.Product
}

func (r *memProductRepo) Create(p *entity.Product) error { r.products[p.ID] = p; return nil }
func (r *memProductRepo) GetByID(id string) (*entity.Product, error) {
	return r.products[id], nil
}
func (r *memProductRepo) GetBySKU(string) (*entity.Product, error) { return nil, nil }
func (r *memProductRepo) Update(p *entity.Product) error           { return nil }
func (r *memProductRepo) List(int, int) ([]*entity.Product, error) { return nil, nil }
func (r *memProductRepo) ListByCategoryCode(string, int, int) ([]*entity.Product, error) {
	return nil, nil
}
func (r *memProductRepo) ListAll() ([]*entity.Product, error) { return nil, nil }
func (r *memProductRepo) Delete(string) error                 { return nil }

// memTxRunner invoca el callback directamente contra los repos en memoria.
type memTxRunner struct {
	poRepo    *memPORepo
	stockRepo *memStockRepo
}

func (tr *memTxRunner) RunPurchase(ctx context.Context, fn func(
	poRepo repository.PurchaseOrderRepository,
	stockRepo repository.StockRepository,
) error) error {
	return fn(tr.poRepo, tr.stockRepo)
}

// ──────────────────────────────────────────────────────────────────────────────
// Entorno de test
// ──────────────────────────────────────────────────────────────────────────────

const (
	supplierID  = "s-001"
	productID   = "p-001"
	productID2  = "p-002"
	warehouseID = "w-001"
	userID      = "u-001"
)

type poEnv struct {
	poRepo       *memPORepo
	stockRepo    *memStockRepo
	runner       *memTxRunner
	supplierRepo *memSupplierRepo
	productRepo  *memProductRepo
	uc           *purchasing.UseCase
}

func newPOEnv() *poEnv {
	poRepo := newMemPORepo()
	stockRepo := newMemStockRepo()
	runner := &memTxRunner{poRepo: poRepo, stockRepo: stockRepo}
	supplierRepo := &memSupplierRepo{suppliers: map[string]*entity.Supplier{
		supplierID: {ID: supplierID, Name: "Distribuidora Norte"},
	}}
	productRepo := &memProductRepo{products: map[string]*entity.Product{
		productID:  {ID: productID, SKU: "SKU-1", Name: "Tornillo 3mm"},
		productID2: {ID: productID2, SKU: "SKU-2", Name: "Tuerca 3mm"},
	}}
	return &poEnv{
		poRepo:       poRepo,
		stockRepo:    stockRepo,
		runner:       runner,
		supplierRepo: supplierRepo,
		productRepo:  productRepo,
		uc:           purchasing.NewUseCase(runner, poRepo, supplierRepo, productRepo),
	}
}

// stalePendingPORepo simula la lectura obsoleta de una carrera: el chequeo
// previo (fuera de la transacción) siempre ve la orden en pending, aunque el
// almacén real ya esté en otro estado. La escritura condicionada dentro de la
// transacción es la que debe atajar el doble recibo.
type stalePendingPORepo struct {
	*memPORepo
}

func (r *stalePendingPORepo) GetByID(id string) (*entity.PurchaseOrder, error) {
	po, err := r.memPORepo.GetByID(id)
	if po != nil {
		po.Status = entity.POPending
	}
	return po, err
}

// staleUC comparte almacén y runner con env, pero lee estados obsoletos.
func staleUC(env *poEnv) *purchasing.UseCase {
	stale := &stalePendingPORepo{memPORepo: env.poRepo}
	return purchasing.NewUseCase(env.runner, stale, env.supplierRepo, env.productRepo)
}

func createRequest(items ...dto.POItemRequest) dto.CreatePORequest {
	return dto.CreatePORequest{SupplierID: supplierID, Items: items}
}

func item(pID string, quantity int64) dto.POItemRequest {
	return dto.POItemRequest{
		ProductID:   pID,
		WarehouseID: warehouseID,
		Quantity:    decimal.NewFromInt(quantity),
		UnitCost:    decimal.NewFromInt(100),
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────────────────────────────────

func TestCreate_OrdenNaceEnPendingConHistorial(t *testing.T) {
	env := newPOEnv()

	po, err := env.uc.Create(context.Background(), userID, createRequest(item(productID, 10)))
	require.NoError(t, err)

	assert.Equal(t, string(entity.POPending), po.Status)
	assert.Equal(t, supplierID, po.SupplierID)
	require.Len(t, po.Items, 1)
	assert.True(t, po.Items[0].TotalCost.Equal(decimal.NewFromInt(1000)))

	history, _ := env.poRepo.ListHistory(po.ID)
	require.Len(t, history, 1)
	assert.Equal(t, entity.POPending, history[0].NewStatus)
	assert.Empty(t, string(history[0].OldStatus))
}

func TestCreate_SinItems_EsInvalido(t *testing.T) {
	env := newPOEnv()

	_, err := env.uc.Create(context.Background(), userID, createRequest())
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCreate_CantidadNoPositiva_EsInvalido(t *testing.T) {
	env := newPOEnv()

	_, err := env.uc.Create(context.Background(), userID, createRequest(item(productID, 0)))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCreate_ProductoInexistente_NotFound(t *testing.T) {
	env := newPOEnv()

	_, err := env.uc.Create(context.Background(), userID, createRequest(item("p-fantasma", 5)))
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUpdateStatus_TransicionValida(t *testing.T) {
	env := newPOEnv()
	po, err := env.uc.Create(context.Background(), userID, createRequest(item(productID, 5)))
	require.NoError(t, err)

	updated, err := env.uc.UpdateStatus(context.Background(), po.ID, userID, dto.UpdatePOStatusRequest{
		NewStatus: string(entity.POApproved),
		Notes:     "aprobada por compras",
	})
	require.NoError(t, err)
	assert.Equal(t, string(entity.POApproved), updated.Status)

	history, _ := env.poRepo.ListHistory(po.ID)
	require.Len(t, history, 2)
	assert.Equal(t, entity.POPending, history[1].OldStatus)
	assert.Equal(t, entity.POApproved, history[1].NewStatus)
}

func TestUpdateStatus_TransicionInvalida_Rechazada(t *testing.T) {
	env := newPOEnv()
	po, err := env.uc.Create(context.Background(), userID, createRequest(item(productID, 5)))
	require.NoError(t, err)

	// pending → shipped se salta approved.
	_, err = env.uc.UpdateStatus(context.Background(), po.ID, userID, dto.UpdatePOStatusRequest{
		NewStatus: string(entity.POShipped),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

func TestUpdateStatus_EstadoDesconocido_EsInvalido(t *testing.T) {
	env := newPOEnv()
	po, err := env.uc.Create(context.Background(), userID, createRequest(item(productID, 5)))
	require.NoError(t, err)

	_, err = env.uc.UpdateStatus(context.Background(), po.ID, userID, dto.UpdatePOStatusRequest{
		NewStatus: "archivada",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestUpdateStatus_EstadosTerminales_SinSalida(t *testing.T) {
	env := newPOEnv()
	po, err := env.uc.Create(context.Background(), userID, createRequest(item(productID, 5)))
	require.NoError(t, err)

	_, err = env.uc.UpdateStatus(context.Background(), po.ID, userID, dto.UpdatePOStatusRequest{NewStatus: string(entity.POCancelled)})
	require.NoError(t, err)

	_, err = env.uc.UpdateStatus(context.Background(), po.ID, userID, dto.UpdatePOStatusRequest{NewStatus: string(entity.POApproved)})
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

func TestReceive_SumaStockYCambiaEstado(t *testing.T) {
	env := newPOEnv()
	po, err := env.uc.Create(context.Background(), userID, createRequest(item(productID, 10), item(productID2, 4)))
	require.NoError(t, err)

	resp, err := env.uc.Receive(context.Background(), po.ID, userID)
	require.NoError(t, err)

	assert.Equal(t, 2, resp.ItemsReceived)
	assert.Equal(t, string(entity.POReceived), resp.Status)
	assert.True(t, env.stockRepo.qty(productID, warehouseID).Equal(decimal.NewFromInt(10)))
	assert.True(t, env.stockRepo.qty(productID2, warehouseID).Equal(decimal.NewFromInt(4)))

	stored, _ := env.poRepo.GetByID(po.ID)
	assert.Equal(t, entity.POReceived, stored.Status)

	history, _ := env.poRepo.ListHistory(po.ID)
	require.Len(t, history, 2)
	assert.Equal(t, entity.POReceived, history[1].NewStatus)
}

func TestReceive_AcumulaSobreStockExistente(t *testing.T) {
	env := newPOEnv()
	env.stockRepo.Upsert(&entity.Stock{
		ProductID: productID, WarehouseID: warehouseID,
		Quantity: decimal.NewFromInt(7), UpdatedAt: time.Now(),
	})
	po, err := env.uc.Create(context.Background(), userID, createRequest(item(productID, 3)))
	require.NoError(t, err)

	_, err = env.uc.Receive(context.Background(), po.ID, userID)
	require.NoError(t, err)
	assert.True(t, env.stockRepo.qty(productID, warehouseID).Equal(decimal.NewFromInt(10)))
}

func TestReceive_SoloOrdenesPending(t *testing.T) {
	env := newPOEnv()
	po, err := env.uc.Create(context.Background(), userID, createRequest(item(productID, 5)))
	require.NoError(t, err)

	_, err = env.uc.UpdateStatus(context.Background(), po.ID, userID, dto.UpdatePOStatusRequest{NewStatus: string(entity.POApproved)})
	require.NoError(t, err)

	_, err = env.uc.Receive(context.Background(), po.ID, userID)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

func TestReceive_DobleRecibo_Rechazado(t *testing.T) {
	env := newPOEnv()
	po, err := env.uc.Create(context.Background(), userID, createRequest(item(productID, 5)))
	require.NoError(t, err)

	_, err = env.uc.Receive(context.Background(), po.ID, userID)
	require.NoError(t, err)

	_, err = env.uc.Receive(context.Background(), po.ID, userID)
	require.ErrorIs(t, err, domain.ErrInvalidTransition)

	// El stock no debe duplicarse.
	assert.True(t, env.stockRepo.qty(productID, warehouseID).Equal(decimal.NewFromInt(5)))
}

func TestReceive_OrdenInexistente_NotFound(t *testing.T) {
	env := newPOEnv()

	_, err := env.uc.Receive(context.Background(), "po-fantasma", userID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestReceive_OrdenSinItems_Rechazada(t *testing.T) {
	env := newPOEnv()
	// Orden huérfana insertada directamente, sin ítems.
	env.poRepo.Create(&entity.PurchaseOrder{ID: "po-vacia", SupplierID: supplierID, Status: entity.POPending})

	_, err := env.uc.Receive(context.Background(), "po-vacia", userID)
	assert.ErrorIs(t, err, domain.ErrEmptyOrder)
}

func TestDelete_SoloPending(t *testing.T) {
	env := newPOEnv()
	po, err := env.uc.Create(context.Background(), userID, createRequest(item(productID, 5)))
	require.NoError(t, err)

	_, err = env.uc.Receive(context.Background(), po.ID, userID)
	require.NoError(t, err)

	err = env.uc.Delete(context.Background(), po.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

// ──────────────────────────────────────────────────────────────────────────────
// Carreras: el chequeo previo corre fuera de la transacción, así que dos
// operaciones pueden ver pending a la vez. La revalidación bajo lock dentro de
// la transacción debe dejar pasar exactamente una.
// ──────────────────────────────────────────────────────────────────────────────

func TestReceive_ChequeoObsoleto_NoDuplicaStock(t *testing.T) {
	env := newPOEnv()
	po, err := env.uc.Create(context.Background(), userID, createRequest(item(productID, 5)))
	require.NoError(t, err)

	_, err = env.uc.Receive(context.Background(), po.ID, userID)
	require.NoError(t, err)

	// Segundo recibo con lectura obsoleta: el chequeo previo ve pending, pero la
	// escritura condicionada dentro de la transacción debe rechazarlo.
	_, err = staleUC(env).Receive(context.Background(), po.ID, userID)
	require.ErrorIs(t, err, domain.ErrInvalidTransition)

	assert.True(t, env.stockRepo.qty(productID, warehouseID).Equal(decimal.NewFromInt(5)),
		"el stock no debe recibirse dos veces")

	history, _ := env.poRepo.ListHistory(po.ID)
	assert.Len(t, history, 2, "el recibo rechazado no debe dejar historial")
}

func TestUpdateStatus_ChequeoObsoleto_Rechazado(t *testing.T) {
	env := newPOEnv()
	po, err := env.uc.Create(context.Background(), userID, createRequest(item(productID, 5)))
	require.NoError(t, err)

	_, err = env.uc.UpdateStatus(context.Background(), po.ID, userID, dto.UpdatePOStatusRequest{NewStatus: string(entity.POApproved)})
	require.NoError(t, err)

	// La lectura obsoleta todavía ve pending; pending→cancelled es válido en la
	// tabla, pero la orden real ya está en approved.
	_, err = staleUC(env).UpdateStatus(context.Background(), po.ID, userID, dto.UpdatePOStatusRequest{NewStatus: string(entity.POCancelled)})
	require.ErrorIs(t, err, domain.ErrInvalidTransition)

	stored, _ := env.poRepo.GetByID(po.ID)
	assert.Equal(t, entity.POApproved, stored.Status)
}

func TestDelete_ChequeoObsoleto_Rechazado(t *testing.T) {
	env := newPOEnv()
	po, err := env.uc.Create(context.Background(), userID, createRequest(item(productID, 5)))
	require.NoError(t, err)

	_, err = env.uc.Receive(context.Background(), po.ID, userID)
	require.NoError(t, err)

	err = staleUC(env).Delete(context.Background(), po.ID)
	require.ErrorIs(t, err, domain.ErrInvalidTransition)

	stored, _ := env.poRepo.GetByID(po.ID)
	require.NotNil(t, stored, "la orden recibida no debe borrarse")
}

func TestList_FiltraPorEstado(t *testing.T) {
	env := newPOEnv()
	po1, err := env.uc.Create(context.Background(), userID, createRequest(item(productID, 5)))
	require.NoError(t, err)
	_, err = env.uc.Create(context.Background(), userID, createRequest(item(productID2, 2)))
	require.NoError(t, err)

	_, err = env.uc.Receive(context.Background(), po1.ID, userID)
	require.NoError(t, err)

	received, err := env.uc.List("", string(entity.POReceived), 50, 0)
	require.NoError(t, err)
	require.Len(t, received, 1)
	assert.Equal(t, po1.ID, received[0].ID)

	_, err = env.uc.List("", "archivada", 50, 0)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
