package billing

import (
	"github.com/ahmetcoskunkizilkaya/bizops-backend/internal/config"
	"github.com/ahmetcoskunkizilkaya/bizops-backend/internal/middleware"
	"github.com/ahmetcoskunkizilkaya/bizops-backend/internal/policy"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type BillingModule struct {
	invoices *InvoiceService
}

func New(invoices *InvoiceService) *BillingModule {
	return &BillingModule{invoices: invoices}
}

func (m *BillingModule) ID() string { return "billing" }

func (m *BillingModule) Models() []interface{} {
	return []interface{}{
		&Invoice{},
	}
}

func (m *BillingModule) RegisterRoutes(router fiber.Router, db *gorm.DB, cfg *config.Config) {
	handler := NewInvoiceHandler(m.invoices)
	read := middleware.RequireRoles(db, policy.Readers...)
	write := middleware.RequireRoles(db, policy.Writers...)

	invoices := router.Group("/invoices", middleware.JWTProtected(cfg))
	invoices.Get("/", read, handler.List)
	invoices.Post("/", write, handler.Create)
	invoices.Post("/send", write, handler.Send)
	invoices.Get("/:id", read, handler.Get)
	invoices.Patch("/:id", write, handler.Update)
	invoices.Delete("/:id", write, handler.Delete)
}
