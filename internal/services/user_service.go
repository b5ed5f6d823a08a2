package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/ahmetcoskunkizilkaya/bizops-backend/internal/apperr"
	"github.com/ahmetcoskunkizilkaya/bizops-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/bizops-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/bizops-backend/internal/policy"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// UserService backs the admin user-management endpoints.
type UserService struct {
	db *gorm.DB
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{db: db}
}

func (s *UserService) List(ctx context.Context) ([]dto.UserResponse, error) {
	var users []models.User
	if err := s.db.WithContext(ctx).Order("created_at ASC").Find(&users).Error; err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	out := make([]dto.UserResponse, 0, len(users))
	for i := range users {
		out = append(out, dto.NewUserResponse(&users[i]))
	}
	return out, nil
}

// UpdateRoles replaces a user's role set. Admins cannot drop their own Admin role.
func (s *UserService) UpdateRoles(ctx context.Context, actorID, userID uuid.UUID, roles []string) (*dto.UserResponse, error) {
	normalized, bad := policy.NormalizeRoles(roles)
	if bad != "" {
		return nil, apperr.Validation("unknown role %q", bad)
	}
	if len(normalized) == 0 {
		return nil, apperr.Validation("at least one role is required")
	}

	user, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}

	if actorID == userID && user.HasAnyRole(models.RoleAdmin) && !policy.Intersects(normalized, policy.Admins) {
		return nil, apperr.Validation("you cannot remove your own Admin role")
	}

	from := user.Roles
	user.Roles = datatypes.JSONSlice[string](normalized)
	if err := s.db.WithContext(ctx).Model(user).Update("roles", user.Roles).Error; err != nil {
		return nil, fmt.Errorf("failed to update roles: %w", err)
	}

	slog.Info("user roles changed", "user_id", userID.String(), "actor_id", actorID.String(), "from", []string(from), "to", normalized)
	resp := dto.NewUserResponse(user)
	return &resp, nil
}

// SetActive activates or deactivates a user. Deactivation revokes the user's
// refresh tokens so existing sessions end at the next access-token expiry.
func (s *UserService) SetActive(ctx context.Context, actorID, userID uuid.UUID, active bool) (*dto.UserResponse, error) {
	if actorID == userID && !active {
		return nil, apperr.Validation("you cannot deactivate your own account")
	}

	user, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(user).Update("is_active", active).Error; err != nil {
			return err
		}
		if !active {
			return tx.Model(&models.RefreshToken{}).
				Where("user_id = ?", userID).
				Update("revoked", true).Error
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to update user status: %w", err)
	}
	user.IsActive = active

	slog.Info("user active flag changed", "user_id", userID.String(), "actor_id", actorID.String(), "active", active)
	resp := dto.NewUserResponse(user)
	return &resp, nil
}

func (s *UserService) load(ctx context.Context, userID uuid.UUID) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	return &user, nil
}
