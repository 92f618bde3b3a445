// seed puebla la base con datos de demostración: un usuario admin, bodegas,
// proveedores, un árbol de categorías y productos de ejemplo.
//
// Uso: go run ./cmd/seed
// Idempotente: los registros que ya existen (por username, código o SKU) se omiten.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/almacen-api/internal/application/catalog"
	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/infrastructure/docstore"
	"github.com/jhoicas/almacen-api/internal/infrastructure/postgres"
	"github.com/jhoicas/almacen-api/pkg/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fail("cargar configuración: %v", err)
	}
	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		fail("conectar a PostgreSQL: %v", err)
	}
	defer pool.Close()

	userRepo := postgres.NewUserRepository(pool)
	warehouseRepo := postgres.NewWarehouseRepository(pool)
	supplierRepo := postgres.NewSupplierRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	catalogUC := catalog.NewUseCase(docstore.NewCategoryRepository(pool))

	// 1. Usuario admin
	adminID, err := seedAdmin(userRepo)
	if err != nil {
		fail("sembrar admin: %v", err)
	}

	// 2. Bodegas
	warehouses := []entity.Warehouse{
		{Name: "Bodega Central", Location: "Calle 10 #45-23, Bogotá"},
		{Name: "Bodega Norte", Location: "Autopista Norte Km 21, Chía"},
	}
	for i := range warehouses {
		w := warehouses[i]
		w.ID = uuid.New().String()
		w.CreatedAt = time.Now()
		w.UpdatedAt = w.CreatedAt
		if err := warehouseRepo.Create(&w); err != nil {
			fail("sembrar bodega %s: %v", w.Name, err)
		}
	}

	// 3. Proveedor
	supplier := entity.Supplier{
		ID:          uuid.New().String(),
		Name:        "Distribuidora Norte SAS",
		ContactName: "María Pérez",
		Email:       "compras@distrinorte.example",
		Phone:       "+57 601 555 0101",
		Address:     "Zona Franca, Bogotá",
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}
	if err := supplierRepo.Create(&supplier); err != nil {
		fail("sembrar proveedor: %v", err)
	}

	// 4. Categorías (raíz + hijos)
	rootCodes := map[string]string{}
	for _, c := range []struct{ name, code, parent string }{
		{"Ferretería", "FERR", ""},
		{"Electrónica", "ELEC", ""},
		{"Tornillería", "TORN", "FERR"},
	} {
		parentID := rootCodes[c.parent]
		cat, err := catalogUC.Create(adminID, dto.CreateCategoryRequest{
			Name: c.name, Code: c.code, ParentID: parentID,
		})
		if err != nil {
			fmt.Printf("categoría %s omitida: %v\n", c.code, err)
			continue
		}
		rootCodes[c.code] = cat.ID
	}

	// 5. Productos
	products := []entity.Product{
		{
			SKU: "TOR-3MM-100", Name: "Tornillo 3mm x100",
			CategoryCode: "TORN", SupplierID: supplier.ID,
			ReorderLevel: decimal.NewFromInt(20),
			UnitCost:     decimal.RequireFromString("4.50"),
			Price:        decimal.RequireFromString("7.90"),
		},
		{
			SKU: "CAB-HDMI-2M", Name: "Cable HDMI 2m",
			CategoryCode: "ELEC", SupplierID: supplier.ID,
			ReorderLevel: decimal.NewFromInt(10),
			UnitCost:     decimal.RequireFromString("12.00"),
			Price:        decimal.RequireFromString("19.90"),
		},
	}
	for i := range products {
		p := products[i]
		p.ID = uuid.New().String()
		p.CreatedAt = time.Now()
		p.UpdatedAt = p.CreatedAt
		if err := productRepo.Create(&p); err != nil {
			fmt.Printf("producto %s omitido: %v\n", p.SKU, err)
		}
	}

	fmt.Println("Datos de demostración sembrados. Usuario: admin / admin123")
}

// seedAdmin crea el usuario admin si no existe y devuelve su id.
func seedAdmin(repo *postgres.UserRepo) (string, error) {
	if existing, err := repo.GetByUsername("admin"); err == nil && existing != nil {
		fmt.Println("usuario admin ya existe, se reutiliza")
		return existing.ID, nil
	}
	hash, err := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	u := &entity.User{
		ID:           uuid.New().String(),
		Username:     "admin",
		PasswordHash: string(hash),
		Role:         entity.RoleAdmin,
		CreatedAt:    time.Now(),
	}
	if err := repo.Create(u); err != nil {
		return "", err
	}
	return u.ID, nil
}

func fail(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
