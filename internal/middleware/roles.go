package middleware

import (
	"errors"
	"log/slog"

	"github.com/ahmetcoskunkizilkaya/bizops-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/bizops-backend/internal/identity"
	"github.com/ahmetcoskunkizilkaya/bizops-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/bizops-backend/internal/policy"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// RequireRoles loads the caller's user row on every request and admits it
// when it is active and holds one of roles. With no roles any active user
// passes. Must run after JWTProtected.
func RequireRoles(db *gorm.DB, roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := identity.GetUserID(c)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error: true, Message: "Unauthorized",
			})
		}

		var user models.User
		if err := db.WithContext(c.UserContext()).First(&user, "id = ?", userID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
					Error: true, Message: "User not found",
				})
			}
			slog.Error("role gate user lookup failed", "user_id", userID.String(), "path", c.Path(), "error", err.Error())
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
				Error: true, Message: "Internal server error",
			})
		}

		if !user.IsActive {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error: true, Message: "Account is deactivated",
			})
		}

		if !policy.Intersects(user.Roles, roles) {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Error: true, Message: "Insufficient role for this resource",
			})
		}

		identity.SetCurrentUser(c, &user)
		return c.Next()
	}
}
