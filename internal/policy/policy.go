// Package policy holds the role lists routes are gated on and the
// ownership rule for editing shared records.
package policy

import (
	"strings"

	"github.com/ahmetcoskunkizilkaya/bizops-backend/internal/models"
	"github.com/google/uuid"
)

var (
	// Readers may view products, customers, invoices and the task board.
	Readers = []string{models.RoleViewer, models.RoleStaff, models.RoleManager, models.RoleAdmin}
	// Writers may create and change them.
	Writers = []string{models.RoleStaff, models.RoleManager, models.RoleAdmin}
	// Reporters may read the financial summary.
	Reporters = []string{models.RoleManager, models.RoleAdmin}
	Admins    = []string{models.RoleAdmin}
	// Supervisors may modify records created by someone else.
	Supervisors = []string{models.RoleAdmin, models.RoleManager}
)

func ValidRole(role string) bool {
	for _, r := range models.AllRoles {
		if r == role {
			return true
		}
	}
	return false
}

// NormalizeRoles trims and de-duplicates roles, keeping first-seen order.
// It returns the first unknown role when one is present.
func NormalizeRoles(roles []string) ([]string, string) {
	seen := make(map[string]bool, len(roles))
	out := make([]string, 0, len(roles))
	for _, r := range roles {
		r = strings.TrimSpace(r)
		if r == "" || seen[r] {
			continue
		}
		if !ValidRole(r) {
			return nil, r
		}
		seen[r] = true
		out = append(out, r)
	}
	return out, ""
}

// Intersects reports whether have and want share at least one role.
// An empty want list admits everyone.
func Intersects(have, want []string) bool {
	if len(want) == 0 {
		return true
	}
	for _, h := range have {
		for _, w := range want {
			if h == w {
				return true
			}
		}
	}
	return false
}

// CanModify reports whether user may update or delete a record created by createdBy.
func CanModify(user *models.User, createdBy uuid.UUID) bool {
	if user == nil {
		return false
	}
	if createdBy != uuid.Nil && user.ID == createdBy {
		return true
	}
	return user.HasAnyRole(Supervisors...)
}
