package dto

import (
	"time"

	"github.com/ahmetcoskunkizilkaya/bizops-backend/internal/models"
	"github.com/google/uuid"
)

type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest accepts either an email or a username in Login.
type LoginRequest struct {
	Login    string `json:"login"`
	Email    string `json:"email"`
	Username string `json:"username"`
	Password string `json:"password"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

type LogoutRequest struct {
	RefreshToken string `json:"refreshToken"`
}

type AuthResponse struct {
	AccessToken  string       `json:"accessToken"`
	RefreshToken string       `json:"refreshToken"`
	User         UserResponse `json:"user"`
}

type UserResponse struct {
	ID        uuid.UUID   `json:"id"`
	Username  string      `json:"username"`
	Email     string      `json:"email"`
	Roles     []string    `json:"roles"`
	IsActive  bool        `json:"isActive"`
	Business  *uuid.UUID  `json:"business,omitempty"`
	Profile   UserProfile `json:"profile"`
	CreatedAt time.Time   `json:"createdAt"`
}

type UserProfile struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Phone     string `json:"phone"`
}

type UpdateRolesRequest struct {
	Roles []string `json:"roles"`
}

type UpdateActiveRequest struct {
	IsActive *bool `json:"isActive"`
}

type ErrorResponse struct {
	Error   bool   `json:"error"`
	Message string `json:"message"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	DB        string `json:"db"`
}

// NewUserResponse maps a stored user to its public shape.
func NewUserResponse(u *models.User) UserResponse {
	roles := make([]string, len(u.Roles))
	copy(roles, u.Roles)
	return UserResponse{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		Roles:     roles,
		IsActive:  u.IsActive,
		Business:  u.BusinessID,
		Profile:   UserProfile(u.Profile),
		CreatedAt: u.CreatedAt,
	}
}
