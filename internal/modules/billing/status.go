package billing

import (
	"strings"
	"time"

	"github.com/ahmetcoskunkizilkaya/bizops-backend/internal/apperr"
)

const (
	StatusDraft   = "Draft"
	StatusUnpaid  = "Unpaid"
	StatusPending = "Pending"
	StatusPaid    = "Paid"
	StatusOverdue = "Overdue"
)

var Statuses = []string{StatusDraft, StatusUnpaid, StatusPending, StatusPaid, StatusOverdue}

// transitions lists the legal moves out of each status. Paid is terminal.
var transitions = map[string][]string{
	StatusDraft:   {StatusUnpaid, StatusPending},
	StatusUnpaid:  {StatusPending, StatusPaid, StatusOverdue},
	StatusPending: {StatusUnpaid, StatusPaid, StatusOverdue},
	StatusOverdue: {StatusUnpaid, StatusPending, StatusPaid},
	StatusPaid:    {},
}

// initialStatuses are the statuses an invoice may be created with.
var initialStatuses = []string{StatusDraft, StatusUnpaid, StatusPending, StatusPaid}

func ValidStatus(s string) bool {
	_, ok := transitions[s]
	return ok
}

// ValidateInitial checks a create-time status; empty means Unpaid.
func ValidateInitial(s string) (string, error) {
	if s == "" {
		return StatusUnpaid, nil
	}
	for _, st := range initialStatuses {
		if st == s {
			return s, nil
		}
	}
	if s == StatusOverdue {
		return "", apperr.Validation("an invoice cannot be created as Overdue")
	}
	return "", apperr.Validation("status must be one of %s", strings.Join(Statuses, ", "))
}

// ValidateTransition reports whether from -> to is allowed. Setting the
// current status again is a no-op and always allowed.
func ValidateTransition(from, to string) error {
	if !ValidStatus(to) {
		return apperr.Validation("status must be one of %s", strings.Join(Statuses, ", "))
	}
	if from == to {
		return nil
	}
	for _, next := range transitions[from] {
		if next == to {
			return nil
		}
	}
	return apperr.Validation("cannot change invoice status from %s to %s", from, to)
}

// EffectiveStatus is what readers see: an open invoice past its due date
// reads as Overdue. The stored status is not rewritten.
func EffectiveStatus(stored string, dueDate, now time.Time) string {
	if (stored == StatusUnpaid || stored == StatusPending) && dueDate.Before(now) {
		return StatusOverdue
	}
	return stored
}
