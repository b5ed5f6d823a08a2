package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	RoleAdmin   = "Admin"
	RoleManager = "Manager"
	RoleStaff   = "Staff"
	RoleViewer  = "Viewer"
)

// AllRoles lists every assignable role.
var AllRoles = []string{RoleAdmin, RoleManager, RoleStaff, RoleViewer}

type Profile struct {
	FirstName string `gorm:"size:100" json:"firstName"`
	LastName  string `gorm:"size:100" json:"lastName"`
	Phone     string `gorm:"size:50" json:"phone"`
}

// User is never hard-deleted; deactivate with IsActive instead.
type User struct {
	ID         uuid.UUID                   `gorm:"type:uuid;primaryKey" json:"id"`
	Username   string                      `gorm:"size:100;not null;uniqueIndex" json:"username"`
	Email      string                      `gorm:"size:255;not null;uniqueIndex" json:"email"`
	Password   string                      `gorm:"not null" json:"-"`
	Roles      datatypes.JSONSlice[string] `json:"roles"`
	IsActive   bool                        `gorm:"not null;default:true" json:"isActive"`
	BusinessID *uuid.UUID                  `gorm:"type:uuid;index" json:"business,omitempty"`
	Profile    Profile                     `gorm:"embedded;embeddedPrefix:profile_" json:"profile"`
	CreatedAt  time.Time                   `json:"createdAt"`
	UpdatedAt  time.Time                   `json:"updatedAt"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	if len(u.Roles) == 0 {
		u.Roles = datatypes.JSONSlice[string]{RoleViewer}
	}
	return nil
}

// HasAnyRole reports whether the user holds at least one of roles.
func (u *User) HasAnyRole(roles ...string) bool {
	for _, have := range u.Roles {
		for _, want := range roles {
			if have == want {
				return true
			}
		}
	}
	return false
}
