package crm

import (
	"github.com/ahmetcoskunkizilkaya/bizops-backend/internal/config"
	"github.com/ahmetcoskunkizilkaya/bizops-backend/internal/middleware"
	"github.com/ahmetcoskunkizilkaya/bizops-backend/internal/policy"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type CRMModule struct {
	customers *CustomerService
}

// New wires the module around a shared customer service so other modules
// can register delete guards on it.
func New(customers *CustomerService) *CRMModule {
	return &CRMModule{customers: customers}
}

func (m *CRMModule) ID() string { return "crm" }

func (m *CRMModule) Models() []interface{} {
	return []interface{}{
		&Customer{},
		&Interaction{},
	}
}

func (m *CRMModule) RegisterRoutes(router fiber.Router, db *gorm.DB, cfg *config.Config) {
	customerHandler := NewCustomerHandler(m.customers)
	interactionHandler := NewInteractionHandler(NewInteractionService(db))
	read := middleware.RequireRoles(db, policy.Readers...)
	write := middleware.RequireRoles(db, policy.Writers...)

	customers := router.Group("/customers", middleware.JWTProtected(cfg))
	customers.Get("/", read, customerHandler.List)
	customers.Post("/", write, customerHandler.Create)
	customers.Get("/:id", read, customerHandler.Get)
	customers.Put("/:id", write, customerHandler.Update)
	customers.Delete("/:id", write, customerHandler.Delete)

	interactions := router.Group("/interactions", middleware.JWTProtected(cfg))
	interactions.Post("/", write, interactionHandler.Create)
	interactions.Get("/customer/:customerId", read, interactionHandler.ListForCustomer)
	interactions.Put("/:id", write, interactionHandler.Update)
	interactions.Delete("/:id", write, interactionHandler.Delete)
}
