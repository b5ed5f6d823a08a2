package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ahmetcoskunkizilkaya/bizops-backend/internal/apperr"
	"github.com/ahmetcoskunkizilkaya/bizops-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/bizops-backend/internal/models"
	"gorm.io/gorm"
)

var (
	ErrBusinessNotFound = apperr.NotFound("business not found")
	ErrBusinessExists   = apperr.Conflict("user already owns a business")
)

type BusinessService struct {
	db *gorm.DB
}

func NewBusinessService(db *gorm.DB) *BusinessService {
	return &BusinessService{db: db}
}

// Get returns the business the user owns, or the one they are linked to.
func (s *BusinessService) Get(ctx context.Context, user *models.User) (*models.Business, error) {
	db := s.db.WithContext(ctx)
	var b models.Business
	q := db.Where("owner_id = ?", user.ID)
	if user.BusinessID != nil {
		q = db.Where("owner_id = ? OR id = ?", user.ID, *user.BusinessID)
	}
	if err := q.First(&b).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBusinessNotFound
		}
		return nil, fmt.Errorf("failed to load business: %w", err)
	}
	return &b, nil
}

// Create registers the caller's business and links it to their user row.
func (s *BusinessService) Create(ctx context.Context, user *models.User, req *dto.BusinessRequest) (*models.Business, error) {
	b := models.Business{
		OwnerID: user.ID,
		Settings: models.BusinessSettings{
			Currency: "USD",
			Timezone: "America/New_York",
		},
		SubscriptionStatus: models.SubscriptionTrial,
	}
	if err := applyBusiness(&b, req); err != nil {
		return nil, err
	}
	if b.Name == "" {
		return nil, apperr.Validation("name is required")
	}
	if b.Contact.Email == "" {
		return nil, apperr.Validation("contact.email is required")
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Business{}).Where("owner_id = ?", user.ID).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrBusinessExists
		}
		if err := tx.Create(&b).Error; err != nil {
			return err
		}
		return tx.Model(&models.User{}).Where("id = ?", user.ID).Update("business_id", b.ID).Error
	})
	if err != nil {
		if errors.Is(err, ErrBusinessExists) || errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrBusinessExists
		}
		return nil, fmt.Errorf("failed to create business: %w", err)
	}
	user.BusinessID = &b.ID
	return &b, nil
}

func (s *BusinessService) Update(ctx context.Context, user *models.User, req *dto.BusinessRequest) (*models.Business, error) {
	b, err := s.Get(ctx, user)
	if err != nil {
		return nil, err
	}
	if err := applyBusiness(b, req); err != nil {
		return nil, err
	}
	if b.Name == "" {
		return nil, apperr.Validation("name is required")
	}
	if b.Contact.Email == "" {
		return nil, apperr.Validation("contact.email is required")
	}
	if err := s.db.WithContext(ctx).Save(b).Error; err != nil {
		return nil, fmt.Errorf("failed to update business: %w", err)
	}
	return b, nil
}

func applyBusiness(b *models.Business, req *dto.BusinessRequest) error {
	if req.Name != nil {
		b.Name = strings.TrimSpace(*req.Name)
	}
	if c := req.Contact; c != nil {
		if c.Email != nil {
			b.Contact.Email = strings.ToLower(strings.TrimSpace(*c.Email))
		}
		if c.Phone != nil {
			b.Contact.Phone = strings.TrimSpace(*c.Phone)
		}
		if c.Address != nil {
			b.Contact.Address = strings.TrimSpace(*c.Address)
		}
	}
	if st := req.Settings; st != nil {
		if st.Currency != nil && strings.TrimSpace(*st.Currency) != "" {
			cur := strings.ToUpper(strings.TrimSpace(*st.Currency))
			if len(cur) != 3 {
				return apperr.Validation("settings.currency must be a 3-letter code")
			}
			b.Settings.Currency = cur
		}
		if st.Timezone != nil && strings.TrimSpace(*st.Timezone) != "" {
			b.Settings.Timezone = strings.TrimSpace(*st.Timezone)
		}
	}
	if req.SubscriptionStatus != nil {
		switch *req.SubscriptionStatus {
		case models.SubscriptionActive, models.SubscriptionTrial, models.SubscriptionExpired:
			b.SubscriptionStatus = *req.SubscriptionStatus
		default:
			return apperr.Validation("subscriptionStatus must be one of active, trial, expired")
		}
	}
	return nil
}
