package main

import (
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	sentryfiber "github.com/getsentry/sentry-go/fiber"

	"github.com/ahmetcoskunkizilkaya/bizops-backend/internal/config"
	"github.com/ahmetcoskunkizilkaya/bizops-backend/internal/database"
	"github.com/ahmetcoskunkizilkaya/bizops-backend/internal/handlers"
	"github.com/ahmetcoskunkizilkaya/bizops-backend/internal/logging"
	"github.com/ahmetcoskunkizilkaya/bizops-backend/internal/middleware"
	"github.com/ahmetcoskunkizilkaya/bizops-backend/internal/modules"
	"github.com/ahmetcoskunkizilkaya/bizops-backend/internal/modules/billing"
	"github.com/ahmetcoskunkizilkaya/bizops-backend/internal/modules/crm"
	"github.com/ahmetcoskunkizilkaya/bizops-backend/internal/modules/inventory"
	"github.com/ahmetcoskunkizilkaya/bizops-backend/internal/modules/kanban"
	"github.com/ahmetcoskunkizilkaya/bizops-backend/internal/modules/reports"
	"github.com/ahmetcoskunkizilkaya/bizops-backend/internal/notify"
	"github.com/ahmetcoskunkizilkaya/bizops-backend/internal/routes"
	"github.com/ahmetcoskunkizilkaya/bizops-backend/internal/services"
	"github.com/gofiber/fiber/v2"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
)

func main() {
	cfg := config.Load()

	// Structured logging (JSON to stdout)
	logging.Setup(cfg.AppEnv)

	if cfg.JWTSecret == "" {
		slog.Error("JWT_SECRET environment variable is required")
		os.Exit(1)
	}
	if cfg.DBPassword == "" {
		slog.Error("DB_PASSWORD environment variable is required")
		os.Exit(1)
	}

	// Database
	if err := database.Connect(cfg); err != nil {
		slog.Error("database connection failed", "error", err)
		os.Exit(1)
	}
	db := database.DB

	if err := database.MigrateShared(db); err != nil {
		slog.Error("shared migration failed", "error", err)
		os.Exit(1)
	}

	// Database log handler (ERROR+ async batch)
	dbLogHandler := logging.NewDBHandler(db, 5*time.Second)
	slog.SetDefault(slog.New(logging.NewMultiHandler(
		logging.StdoutHandler(cfg.AppEnv),
		dbLogHandler,
	)))

	cleanupDone := make(chan struct{})
	logging.StartCleanup(db, cfg.LogRetentionDays, cleanupDone)

	// Services
	notifier := notify.NewLogNotifier(slog.Default())
	numbers, err := billing.NewNumberer(cfg.SnowflakeNode)
	if err != nil {
		slog.Error("invoice numberer init failed", "node", cfg.SnowflakeNode, "error", err)
		os.Exit(1)
	}

	authService := services.NewAuthService(db, cfg)
	userService := services.NewUserService(db)
	businessService := services.NewBusinessService(db)
	productService := inventory.NewProductService(db)
	customerService := crm.NewCustomerService(db)
	invoiceService := billing.NewInvoiceService(db, numbers, notifier, customerService, productService)
	customerService.AddDeleteGuard(invoiceService.GuardCustomerDelete)
	taskService := kanban.NewTaskService(db, notifier)

	// Modules, in migration order: invoices reference customers.
	mods := []modules.Module{
		inventory.New(productService),
		crm.New(customerService),
		billing.New(invoiceService),
		kanban.New(taskService),
		reports.New(),
	}

	for _, m := range mods {
		if models := m.Models(); len(models) > 0 {
			if err := database.MigrateModels(db, models); err != nil {
				slog.Error("module migration failed", "module", m.ID(), "error", err)
				os.Exit(1)
			}
			slog.Info("module migrated", "module", m.ID(), "models", len(models))
		}
	}

	// Sentry error tracking
	if cfg.SentryDSN != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:              cfg.SentryDSN,
			EnableTracing:    true,
			TracesSampleRate: 0.2,
			Environment:      cfg.AppEnv,
		}); err != nil {
			slog.Error("sentry init failed", "error", err)
		} else {
			defer sentry.Flush(2 * time.Second)
		}
	}

	app := NewApp(cfg)
	routes.Setup(app, cfg, db, routes.Handlers{
		Auth:     handlers.NewAuthHandler(authService),
		Users:    handlers.NewUserHandler(userService),
		Business: handlers.NewBusinessHandler(businessService),
		Health:   handlers.NewHealthHandler(db),
	}, mods)

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("server starting", "port", cfg.Port)
		if err := app.Listen(":" + cfg.Port); err != nil {
			slog.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	<-quit
	slog.Info("shutting down server...")

	if err := app.Shutdown(); err != nil {
		slog.Error("server shutdown error", "error", err)
	}

	close(cleanupDone)
	dbLogHandler.Stop()
	sentry.Flush(2 * time.Second)

	// Close database connections
	if sqlDB, err := db.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			slog.Error("database close error", "error", err)
		}
	}

	slog.Info("server stopped")
}

// NewApp builds the fiber app with the global middleware chain.
func NewApp(cfg *config.Config) *fiber.App {
	app := fiber.New(fiber.Config{
		BodyLimit:    4 * 1024 * 1024,
		ErrorHandler: customErrorHandler,
	})

	app.Use(sentryfiber.New(sentryfiber.Options{
		Repanic:         true,
		WaitForDelivery: false,
	}))

	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(fiberlogger.New(fiberlogger.Config{
		Format: "${time} | ${status} | ${latency} | ${ip} | ${method} | ${path} | ${locals:requestid}\n",
	}))
	app.Use(middleware.Metrics())
	app.Use(middleware.CORS(cfg))
	app.Use(middleware.SecurityHeaders())
	return app
}

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal server error"
	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		message = e.Message
	}

	// Only expose error details for client errors (4xx), not server errors (5xx)
	if code >= 500 {
		slog.Error("unhandled server error", "method", c.Method(), "path", c.Path(), "error", err.Error())
		message = "Internal server error"
	}

	return c.Status(code).JSON(fiber.Map{
		"error":   true,
		"message": message,
	})
}
