// Package modules defines the contract each business area implements to
// plug its models and routes into the server.
package modules

import (
	"github.com/ahmetcoskunkizilkaya/bizops-backend/internal/apperr"
	"github.com/ahmetcoskunkizilkaya/bizops-backend/internal/config"
	"github.com/ahmetcoskunkizilkaya/bizops-backend/internal/identity"
	"github.com/ahmetcoskunkizilkaya/bizops-backend/internal/models"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Module defines the interface every business area must implement.
type Module interface {
	// ID returns the unique module identifier, used in logs.
	ID() string

	// Models returns the list of GORM model pointers for AutoMigrate.
	Models() []interface{}

	// RegisterRoutes mounts the module's routes on the /api group. Modules
	// attach JWT protection and role gates to their own sub-groups.
	RegisterRoutes(router fiber.Router, db *gorm.DB, cfg *config.Config)
}

// ParamID parses the named route parameter as a UUID.
func ParamID(c *fiber.Ctx, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Params(name))
	if err != nil {
		return uuid.Nil, apperr.Validation("invalid %s", name)
	}
	return id, nil
}

// Caller returns the user the role gate loaded for this request.
func Caller(c *fiber.Ctx) (*models.User, error) {
	user, ok := identity.CurrentUser(c)
	if !ok {
		return nil, apperr.Unauthenticated("Unauthorized")
	}
	return user, nil
}

// BadBody is the response for a request body that does not parse.
func BadBody(c *fiber.Ctx) error {
	return apperr.Respond(c, apperr.Validation("Invalid request body"))
}
