package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	SubscriptionActive  = "active"
	SubscriptionTrial   = "trial"
	SubscriptionExpired = "expired"
)

type BusinessContact struct {
	Email   string `gorm:"size:255;index" json:"email"`
	Phone   string `gorm:"size:50" json:"phone"`
	Address string `gorm:"size:500" json:"address"`
}

type BusinessSettings struct {
	Currency string `gorm:"size:3;default:'USD'" json:"currency"`
	Timezone string `gorm:"size:64;default:'America/New_York'" json:"timezone"`
}

// Business is the company profile a user operates. One per owner.
type Business struct {
	ID                 uuid.UUID        `gorm:"type:uuid;primaryKey" json:"id"`
	Name               string           `gorm:"size:255;not null" json:"name"`
	OwnerID            uuid.UUID        `gorm:"type:uuid;not null;uniqueIndex" json:"owner"`
	Contact            BusinessContact  `gorm:"embedded;embeddedPrefix:contact_" json:"contact"`
	Settings           BusinessSettings `gorm:"embedded;embeddedPrefix:settings_" json:"settings"`
	SubscriptionStatus string           `gorm:"size:20;not null;default:'trial'" json:"subscriptionStatus"`
	CreatedAt          time.Time        `json:"createdAt"`
	UpdatedAt          time.Time        `json:"updatedAt"`
}

func (b *Business) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}
