package kanban

import (
	"github.com/ahmetcoskunkizilkaya/bizops-backend/internal/config"
	"github.com/ahmetcoskunkizilkaya/bizops-backend/internal/middleware"
	"github.com/ahmetcoskunkizilkaya/bizops-backend/internal/policy"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type KanbanModule struct {
	tasks *TaskService
}

func New(tasks *TaskService) *KanbanModule {
	return &KanbanModule{tasks: tasks}
}

func (m *KanbanModule) ID() string { return "kanban" }

func (m *KanbanModule) Models() []interface{} {
	return []interface{}{
		&Task{},
	}
}

func (m *KanbanModule) RegisterRoutes(router fiber.Router, db *gorm.DB, cfg *config.Config) {
	handler := NewTaskHandler(m.tasks)
	read := middleware.RequireRoles(db, policy.Readers...)
	write := middleware.RequireRoles(db, policy.Writers...)

	tasks := router.Group("/tasks", middleware.JWTProtected(cfg))
	tasks.Get("/", read, handler.List)
	tasks.Post("/", write, handler.Create)
	tasks.Post("/complete", write, handler.CompleteDay)
	tasks.Put("/:id", write, handler.Update)
	tasks.Delete("/:id", write, handler.Delete)
}
