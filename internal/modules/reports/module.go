package reports

import (
	"github.com/ahmetcoskunkizilkaya/bizops-backend/internal/config"
	"github.com/ahmetcoskunkizilkaya/bizops-backend/internal/middleware"
	"github.com/ahmetcoskunkizilkaya/bizops-backend/internal/policy"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// ReportsModule owns no tables; it reads billing and kanban data.
type ReportsModule struct{}

func New() *ReportsModule {
	return &ReportsModule{}
}

func (m *ReportsModule) ID() string { return "reports" }

func (m *ReportsModule) Models() []interface{} { return nil }

func (m *ReportsModule) RegisterRoutes(router fiber.Router, db *gorm.DB, cfg *config.Config) {
	handler := NewReportHandler(NewReportService(db))

	reports := router.Group("/reports", middleware.JWTProtected(cfg))
	reports.Get("/summary", middleware.RequireRoles(db, policy.Reporters...), handler.Summary)
}
