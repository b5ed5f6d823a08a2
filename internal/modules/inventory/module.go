package inventory

import (
	"github.com/ahmetcoskunkizilkaya/bizops-backend/internal/config"
	"github.com/ahmetcoskunkizilkaya/bizops-backend/internal/middleware"
	"github.com/ahmetcoskunkizilkaya/bizops-backend/internal/policy"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type InventoryModule struct {
	products *ProductService
}

func New(products *ProductService) *InventoryModule {
	return &InventoryModule{products: products}
}

func (m *InventoryModule) ID() string { return "inventory" }

func (m *InventoryModule) Models() []interface{} {
	return []interface{}{
		&Product{},
	}
}

func (m *InventoryModule) RegisterRoutes(router fiber.Router, db *gorm.DB, cfg *config.Config) {
	handler := NewProductHandler(m.products)
	read := middleware.RequireRoles(db, policy.Readers...)
	write := middleware.RequireRoles(db, policy.Writers...)

	products := router.Group("/products", middleware.JWTProtected(cfg))
	products.Get("/", read, handler.List)
	products.Post("/", write, handler.Create)
	products.Get("/:id", read, handler.Get)
	products.Put("/:id", write, handler.Update)
	products.Delete("/:id", write, handler.Delete)
}
