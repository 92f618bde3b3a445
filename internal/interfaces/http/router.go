package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/almacen-api/internal/application/auth"
	"github.com/jhoicas/almacen-api/internal/application/catalog"
	"github.com/jhoicas/almacen-api/internal/application/inventory"
	"github.com/jhoicas/almacen-api/internal/application/purchasing"
	"github.com/jhoicas/almacen-api/internal/application/reports"
	"github.com/jhoicas/almacen-api/internal/application/usecase"
	"github.com/jhoicas/almacen-api/internal/application/xmlport"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
)

// RouterDeps dependencias inyectadas al router.
type RouterDeps struct {
	AuthUC        *auth.AuthUseCase
	ProductUC     *usecase.ProductUseCase
	SupplierUC    *usecase.SupplierUseCase
	WarehouseUC   *usecase.WarehouseUseCase
	StockUC       *usecase.StockUseCase
	TransactionUC *inventory.RegisterTransactionUseCase
	ReturnUC      *inventory.ReturnUseCase
	AlertUC       *inventory.AlertUseCase
	PurchasingUC  *purchasing.UseCase
	POPDFUC       *purchasing.PDFUseCase
	CatalogUC     *catalog.UseCase
	ReportsUC     *reports.UseCase
	XMLUC         *xmlport.UseCase
	JWTSecret     string
}

// Router registra todas las rutas de la API bajo /api.
// /auth/register y /auth/login son públicas; el resto exige Bearer Token.
// Las mutaciones de inventario, órdenes y catálogo exigen rol admin o bodeguero.
func Router(app *fiber.App, deps RouterDeps) {
	authHandler := NewAuthHandler(deps.AuthUC)
	productHandler := NewProductHandler(deps.ProductUC)
	supplierHandler := NewSupplierHandler(deps.SupplierUC)
	warehouseHandler := NewWarehouseHandler(deps.WarehouseUC)
	stockHandler := NewStockHandler(deps.StockUC)
	transactionHandler := NewTransactionHandler(deps.TransactionUC, deps.StockUC)
	returnHandler := NewReturnHandler(deps.ReturnUC)
	alertHandler := NewAlertHandler(deps.AlertUC)
	poHandler := NewPurchaseOrderHandler(deps.PurchasingUC, deps.POPDFUC)
	categoryHandler := NewCategoryHandler(deps.CatalogUC)
	reportHandler := NewReportHandler(deps.ReportsUC)
	xmlHandler := NewXMLHandler(deps.XMLUC)

	api := app.Group("/api")

	// Rutas públicas
	authGroup := api.Group("/auth")
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))
	canWrite := RequireRole(entity.RoleAdmin, entity.RoleBodeguero)

	protected.Get("/auth/me", authHandler.Me)

	products := protected.Group("/products")
	products.Post("/", canWrite, productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/sku/:sku", productHandler.GetBySKU)
	products.Get("/:id", productHandler.Get)
	products.Put("/:id", canWrite, productHandler.Update)
	products.Delete("/:id", canWrite, productHandler.Delete)

	suppliers := protected.Group("/suppliers")
	suppliers.Post("/", canWrite, supplierHandler.Create)
	suppliers.Get("/", supplierHandler.List)
	suppliers.Get("/:id", supplierHandler.Get)
	suppliers.Put("/:id", canWrite, supplierHandler.Update)
	suppliers.Delete("/:id", canWrite, supplierHandler.Delete)

	warehouses := protected.Group("/warehouses")
	warehouses.Post("/", canWrite, warehouseHandler.Create)
	warehouses.Get("/", warehouseHandler.List)
	warehouses.Get("/:id", warehouseHandler.Get)
	warehouses.Put("/:id", canWrite, warehouseHandler.Update)
	warehouses.Delete("/:id", canWrite, warehouseHandler.Delete)

	stock := protected.Group("/stock")
	stock.Post("/", canWrite, stockHandler.Create)
	stock.Get("/", stockHandler.List)
	stock.Get("/item", stockHandler.Get)
	stock.Get("/product/:id", stockHandler.ListByProduct)
	stock.Get("/warehouse/:id", stockHandler.ListByWarehouse)
	stock.Put("/", canWrite, stockHandler.SetQuantity)

	transactions := protected.Group("/transactions")
	transactions.Post("/", canWrite, transactionHandler.Register)
	transactions.Post("/transfer", canWrite, transactionHandler.Transfer)
	transactions.Get("/", transactionHandler.List)

	returns := protected.Group("/returns")
	returns.Post("/", canWrite, returnHandler.Create)
	returns.Get("/", returnHandler.List)

	alerts := protected.Group("/alerts")
	alerts.Get("/", alertHandler.List)
	alerts.Get("/stats", alertHandler.Stats)
	alerts.Post("/check-stock-levels", canWrite, alertHandler.CheckStockLevels)
	alerts.Put("/:id/resolve", canWrite, alertHandler.Resolve)

	pos := protected.Group("/purchase-orders")
	pos.Post("/", canWrite, poHandler.Create)
	pos.Get("/", poHandler.List)
	pos.Get("/:id", poHandler.Get)
	pos.Patch("/:id/status", canWrite, poHandler.UpdateStatus)
	pos.Post("/:id/receive", canWrite, poHandler.Receive)
	pos.Delete("/:id", canWrite, poHandler.Delete)
	pos.Get("/:id/items", poHandler.Items)
	pos.Get("/:id/history", poHandler.History)
	pos.Get("/:id/pdf", poHandler.DownloadPDF)

	categories := protected.Group("/categories")
	categories.Post("/", canWrite, categoryHandler.Create)
	categories.Get("/", categoryHandler.Roots)
	categories.Get("/tree", categoryHandler.Tree)
	categories.Get("/search", categoryHandler.Search)
	categories.Get("/code/:code", categoryHandler.GetByCode)
	categories.Get("/:id", categoryHandler.Get)
	categories.Put("/:id", canWrite, categoryHandler.Update)
	categories.Delete("/:id", canWrite, categoryHandler.Delete)
	categories.Get("/:id/children", categoryHandler.Children)
	categories.Get("/:id/path", categoryHandler.Path)
	categories.Post("/:id/attributes", canWrite, categoryHandler.AddAttribute)
	categories.Put("/:id/attributes/:name", canWrite, categoryHandler.UpdateAttribute)
	categories.Delete("/:id/attributes/:name", canWrite, categoryHandler.RemoveAttribute)

	reportsGroup := protected.Group("/reports")
	reportsGroup.Get("/stock-summary", reportHandler.StockSummary)
	reportsGroup.Get("/valuation", reportHandler.Valuation)
	reportsGroup.Get("/movement", reportHandler.Movement)

	xmlGroup := protected.Group("/xml")
	xmlGroup.Get("/products", xmlHandler.ExportProducts)
	xmlGroup.Post("/products/import", canWrite, xmlHandler.ImportProducts)
	xmlGroup.Get("/categories", xmlHandler.ExportCategories)
	xmlGroup.Get("/purchase-orders", xmlHandler.ExportPurchaseOrders)
	xmlGroup.Post("/purchase-orders/import", canWrite, xmlHandler.ImportPurchaseOrders)
}
