package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Compras-api/internal/application/auth"
	"github.com/jhoicas/Compras-api/internal/application/catalog"
	"github.com/jhoicas/Compras-api/internal/application/purchasing"
	"github.com/jhoicas/Compras-api/internal/application/stock"
	"github.com/jhoicas/Compras-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	CatalogUC *catalog.UseCase
	ItemUC    *stock.ItemUseCase
	AdjustUC  *stock.AdjustStockUseCase
	ReportUC  *stock.ReportUseCase
	POUC      *purchasing.POUseCase
	ReceiveUC *purchasing.ReceiveUseCase
	DocUC     *purchasing.DocumentUseCase
	AuthUC    *auth.AuthUseCase
	JWTSecret string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Catálogo: lecturas para cualquier rol; escrituras solo admin y comprador.
	catalogHandler := NewCatalogHandler(deps.CatalogUC)
	writeCatalog := RequireRole(entity.RoleComprador)

	suppliers := protected.Group("/suppliers")
	suppliers.Get("/", catalogHandler.ListSuppliers)
	suppliers.Get("/:id", catalogHandler.GetSupplier)
	suppliers.Post("/", writeCatalog, catalogHandler.CreateSupplier)
	suppliers.Put("/:id", writeCatalog, catalogHandler.UpdateSupplier)
	suppliers.Delete("/:id", writeCatalog, catalogHandler.DeleteSupplier)

	categories := protected.Group("/categories")
	categories.Get("/", catalogHandler.ListCategories)
	categories.Post("/", writeCatalog, catalogHandler.CreateCategory)
	categories.Delete("/:id", writeCatalog, catalogHandler.DeleteCategory)

	departments := protected.Group("/departments")
	departments.Get("/", catalogHandler.ListDepartments)
	departments.Post("/", writeCatalog, catalogHandler.CreateDepartment)
	departments.Delete("/:id", writeCatalog, catalogHandler.DeleteDepartment)

	// Ítems de inventario
	itemHandler := NewItemHandler(deps.ItemUC)
	stockHandler := NewStockHandler(deps.AdjustUC, deps.ReportUC)
	items := protected.Group("/items")
	items.Get("/", itemHandler.List)
	items.Get("/:id", itemHandler.GetByID)
	items.Get("/:id/movements", stockHandler.Movements)
	items.Post("/", RequireRole(entity.RoleAlmacenero, entity.RoleComprador), itemHandler.Create)
	items.Put("/:id", RequireRole(entity.RoleAlmacenero, entity.RoleComprador), itemHandler.Update)
	items.Delete("/:id", RequireRole(entity.RoleAlmacenero), itemHandler.Deactivate)

	// Libro de stock
	stockGroup := protected.Group("/stock")
	stockGroup.Post("/adjustments", RequireRole(entity.RoleAlmacenero), stockHandler.Adjust)
	stockGroup.Get("/low", stockHandler.LowStock)

	// Órdenes de compra
	poHandler := NewPurchaseOrderHandler(deps.POUC, deps.ReceiveUC, deps.DocUC)
	orders := protected.Group("/purchase-orders")
	orders.Get("/", poHandler.List)
	orders.Get("/:id", poHandler.GetByID)
	orders.Get("/:id/pdf", poHandler.DownloadPDF)
	orders.Get("/:id/cxml", poHandler.DownloadCXML)
	orders.Post("/", RequireRole(entity.RoleComprador), poHandler.Create)
	orders.Put("/:id", RequireRole(entity.RoleComprador), poHandler.Update)
	orders.Post("/:id/place", RequireRole(entity.RoleComprador), poHandler.Place)
	orders.Post("/:id/cancel", RequireRole(entity.RoleComprador), poHandler.Cancel)
	// La recepción física la hace almacén, no compras.
	orders.Post("/:id/receive", RequireRole(entity.RoleAlmacenero), poHandler.Receive)
	orders.Post("/:id/receive/resume", RequireRole(entity.RoleAlmacenero), poHandler.Resume)
}
