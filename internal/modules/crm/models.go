package crm

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	StatusActive   = "active"
	StatusInactive = "inactive"
	StatusLead     = "lead"
)

var CustomerStatuses = []string{StatusActive, StatusInactive, StatusLead}

const (
	InteractionCall    = "call"
	InteractionEmail   = "email"
	InteractionMeeting = "meeting"
	InteractionNote    = "note"
	InteractionSale    = "sale"
)

var InteractionTypes = []string{InteractionCall, InteractionEmail, InteractionMeeting, InteractionNote, InteractionSale}

type Contact struct {
	Email string `gorm:"size:255;index" json:"email"`
	Phone string `gorm:"size:50" json:"phone"`
}

type Customer struct {
	ID              uuid.UUID                   `gorm:"type:uuid;primaryKey" json:"id"`
	Name            string                      `gorm:"size:255;not null;index" json:"name"`
	Contact         Contact                     `gorm:"embedded;embeddedPrefix:contact_" json:"contact"`
	Status          string                      `gorm:"size:20;not null;index" json:"status"`
	Tags            datatypes.JSONSlice[string] `json:"tags"`
	Notes           string                      `gorm:"type:text" json:"notes"`
	LastInteraction *time.Time                  `json:"lastInteraction,omitempty"`
	BusinessID      *uuid.UUID                  `gorm:"type:uuid;index" json:"business,omitempty"`
	CreatedBy       uuid.UUID                   `gorm:"type:uuid;index" json:"createdBy"`
	CreatedAt       time.Time                   `json:"createdAt"`
	UpdatedAt       time.Time                   `json:"updatedAt"`
}

func (c *Customer) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

type Interaction struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	CustomerID uuid.UUID `gorm:"type:uuid;not null;index" json:"customer"`
	UserID     uuid.UUID `gorm:"type:uuid;not null;index" json:"user"`
	Type       string    `gorm:"size:20;not null" json:"type"`
	Title      string    `gorm:"size:255;not null" json:"title"`
	Details    string    `gorm:"type:text" json:"details"`
	Outcome    string    `gorm:"type:text" json:"outcome"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

func (i *Interaction) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

// --- DTOs ---

type ContactInput struct {
	Email *string `json:"email"`
	Phone *string `json:"phone"`
}

type CreateCustomerRequest struct {
	Name    string        `json:"name"`
	Contact *ContactInput `json:"contact"`
	Status  string        `json:"status"`
	Tags    []string      `json:"tags"`
	Notes   string        `json:"notes"`
}

type UpdateCustomerRequest struct {
	Name    *string       `json:"name"`
	Contact *ContactInput `json:"contact"`
	Status  *string       `json:"status"`
	Tags    *[]string     `json:"tags"`
	Notes   *string       `json:"notes"`
}

type CustomerFilter struct {
	Status string
	Query  string
}

type CreateInteractionRequest struct {
	Customer string `json:"customer"`
	Type     string `json:"type"`
	Title    string `json:"title"`
	Details  string `json:"details"`
	Outcome  string `json:"outcome"`
}

type UpdateInteractionRequest struct {
	Type    *string `json:"type"`
	Title   *string `json:"title"`
	Details *string `json:"details"`
	Outcome *string `json:"outcome"`
}
