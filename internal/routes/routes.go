package routes

import (
	"time"

	"github.com/ahmetcoskunkizilkaya/bizops-backend/internal/config"
	"github.com/ahmetcoskunkizilkaya/bizops-backend/internal/handlers"
	"github.com/ahmetcoskunkizilkaya/bizops-backend/internal/metrics"
	"github.com/ahmetcoskunkizilkaya/bizops-backend/internal/middleware"
	"github.com/ahmetcoskunkizilkaya/bizops-backend/internal/modules"
	"github.com/ahmetcoskunkizilkaya/bizops-backend/internal/policy"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"gorm.io/gorm"
)

type Handlers struct {
	Auth     *handlers.AuthHandler
	Users    *handlers.UserHandler
	Business *handlers.BusinessHandler
	Health   *handlers.HealthHandler
}

func Setup(
	app *fiber.App,
	cfg *config.Config,
	db *gorm.DB,
	h Handlers,
	mods []modules.Module,
) {
	app.Get("/metrics", adaptor.HTTPHandler(metrics.Handler()))

	api := app.Group("/api")

	// General API rate limiter, per IP
	api.Use(limiter.New(limiter.Config{
		Max:               cfg.RateLimitPerMinute,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))

	api.Get("/health", h.Health.Check)

	// Auth: stricter limit on the credential endpoints
	auth := api.Group("/auth")
	credentials := limiter.New(limiter.Config{
		Max:               10,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	})
	auth.Post("/register", credentials, h.Auth.Register)
	auth.Post("/login", credentials, h.Auth.Login)
	auth.Post("/refresh", credentials, h.Auth.Refresh)
	auth.Post("/logout", middleware.JWTProtected(cfg), h.Auth.Logout)
	auth.Get("/me", middleware.JWTProtected(cfg), middleware.RequireRoles(db), h.Auth.Me)

	users := api.Group("/users", middleware.JWTProtected(cfg), middleware.RequireRoles(db, policy.Admins...))
	users.Get("/", h.Users.List)
	users.Put("/:id/roles", h.Users.UpdateRoles)
	users.Put("/:id/active", h.Users.SetActive)

	business := api.Group("/business", middleware.JWTProtected(cfg))
	business.Get("/", middleware.RequireRoles(db), h.Business.Get)
	business.Post("/", middleware.RequireRoles(db, policy.Writers...), h.Business.Create)
	business.Put("/", middleware.RequireRoles(db, policy.Writers...), h.Business.Update)

	for _, m := range mods {
		m.RegisterRoutes(api, db, cfg)
	}
}
