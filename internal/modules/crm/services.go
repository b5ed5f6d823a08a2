package crm

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/ahmetcoskunkizilkaya/bizops-backend/internal/apperr"
	"github.com/ahmetcoskunkizilkaya/bizops-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/bizops-backend/internal/policy"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var (
	ErrCustomerNotFound    = apperr.NotFound("customer not found")
	ErrInteractionNotFound = apperr.NotFound("interaction not found")
	ErrCustomerNotAllowed  = apperr.Forbidden("only the creator, a Manager or an Admin can modify this customer")
	ErrInteractionNotOwner = apperr.Forbidden("only the author, a Manager or an Admin can modify this interaction")
)

// DeleteGuard runs inside the delete transaction and may veto removing a customer.
type DeleteGuard func(tx *gorm.DB, customerID uuid.UUID) error

type CustomerService struct {
	db     *gorm.DB
	guards []DeleteGuard
}

func NewCustomerService(db *gorm.DB) *CustomerService {
	return &CustomerService{db: db}
}

// AddDeleteGuard registers a check other modules use to protect records
// that reference a customer.
func (s *CustomerService) AddDeleteGuard(g DeleteGuard) {
	s.guards = append(s.guards, g)
}

func (s *CustomerService) List(ctx context.Context, f CustomerFilter) ([]Customer, error) {
	q := s.db.WithContext(ctx).Model(&Customer{})
	if f.Status != "" {
		if !validStatus(f.Status) {
			return nil, apperr.Validation("status must be one of %s", strings.Join(CustomerStatuses, ", "))
		}
		q = q.Where("status = ?", f.Status)
	}
	if term := strings.ToLower(strings.TrimSpace(f.Query)); term != "" {
		like := "%" + term + "%"
		q = q.Where("LOWER(name) LIKE ? OR LOWER(contact_email) LIKE ?", like, like)
	}

	customers := []Customer{}
	if err := q.Order("name ASC").Find(&customers).Error; err != nil {
		return nil, fmt.Errorf("failed to list customers: %w", err)
	}
	return customers, nil
}

func (s *CustomerService) Get(ctx context.Context, id uuid.UUID) (*Customer, error) {
	return findCustomer(s.db.WithContext(ctx), id)
}

// Exists reports whether a customer with id exists.
func (s *CustomerService) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	var count int64
	if err := s.db.WithContext(ctx).Model(&Customer{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check customer: %w", err)
	}
	return count > 0, nil
}

func (s *CustomerService) Create(ctx context.Context, user *models.User, req CreateCustomerRequest) (*Customer, error) {
	c := Customer{
		Name:       strings.TrimSpace(req.Name),
		Status:     strings.TrimSpace(req.Status),
		Tags:       normalizeTags(req.Tags),
		Notes:      req.Notes,
		BusinessID: user.BusinessID,
		CreatedBy:  user.ID,
	}
	if c.Status == "" {
		c.Status = StatusActive
	}
	applyContact(&c.Contact, req.Contact)
	if err := validateCustomer(&c); err != nil {
		return nil, err
	}

	if err := s.db.WithContext(ctx).Create(&c).Error; err != nil {
		return nil, fmt.Errorf("failed to create customer: %w", err)
	}
	slog.Info("customer created", "customer_id", c.ID.String(), "user_id", user.ID.String())
	return &c, nil
}

func (s *CustomerService) Update(ctx context.Context, user *models.User, id uuid.UUID, req UpdateCustomerRequest) (*Customer, error) {
	db := s.db.WithContext(ctx)
	c, err := findCustomer(db, id)
	if err != nil {
		return nil, err
	}
	if !policy.CanModify(user, c.CreatedBy) {
		return nil, ErrCustomerNotAllowed
	}

	if req.Name != nil {
		c.Name = strings.TrimSpace(*req.Name)
	}
	if req.Status != nil {
		c.Status = strings.TrimSpace(*req.Status)
	}
	if req.Tags != nil {
		c.Tags = normalizeTags(*req.Tags)
	}
	if req.Notes != nil {
		c.Notes = *req.Notes
	}
	applyContact(&c.Contact, req.Contact)
	if err := validateCustomer(c); err != nil {
		return nil, err
	}

	if err := db.Save(c).Error; err != nil {
		return nil, fmt.Errorf("failed to update customer: %w", err)
	}
	return c, nil
}

// Delete removes the customer and its interactions. Registered guards can
// refuse the delete.
func (s *CustomerService) Delete(ctx context.Context, user *models.User, id uuid.UUID) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		c, err := findCustomer(tx, id)
		if err != nil {
			return err
		}
		if !policy.CanModify(user, c.CreatedBy) {
			return ErrCustomerNotAllowed
		}
		for _, guard := range s.guards {
			if err := guard(tx, id); err != nil {
				return err
			}
		}
		if err := tx.Where("customer_id = ?", id).Delete(&Interaction{}).Error; err != nil {
			return fmt.Errorf("failed to delete interactions: %w", err)
		}
		if err := tx.Delete(&Customer{}, "id = ?", id).Error; err != nil {
			return fmt.Errorf("failed to delete customer: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}
	slog.Info("customer deleted", "customer_id", id.String(), "user_id", user.ID.String())
	return nil
}

type InteractionService struct {
	db *gorm.DB
}

func NewInteractionService(db *gorm.DB) *InteractionService {
	return &InteractionService{db: db}
}

// Create records an interaction and stamps the customer's lastInteraction.
func (s *InteractionService) Create(ctx context.Context, user *models.User, req CreateInteractionRequest) (*Interaction, error) {
	customerID, err := uuid.Parse(strings.TrimSpace(req.Customer))
	if err != nil {
		return nil, apperr.Validation("customer is required")
	}
	in := Interaction{
		CustomerID: customerID,
		UserID:     user.ID,
		Type:       strings.TrimSpace(req.Type),
		Title:      strings.TrimSpace(req.Title),
		Details:    req.Details,
		Outcome:    req.Outcome,
	}
	if err := validateInteraction(&in); err != nil {
		return nil, err
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := findCustomer(tx, customerID); err != nil {
			return err
		}
		if err := tx.Create(&in).Error; err != nil {
			return fmt.Errorf("failed to create interaction: %w", err)
		}
		return tx.Model(&Customer{}).Where("id = ?", customerID).
			Update("last_interaction", in.CreatedAt).Error
	})
	if err != nil {
		return nil, err
	}
	return &in, nil
}

func (s *InteractionService) ListForCustomer(ctx context.Context, customerID uuid.UUID) ([]Interaction, error) {
	db := s.db.WithContext(ctx)
	if _, err := findCustomer(db, customerID); err != nil {
		return nil, err
	}
	out := []Interaction{}
	if err := db.Where("customer_id = ?", customerID).Order("created_at DESC").Find(&out).Error; err != nil {
		return nil, fmt.Errorf("failed to list interactions: %w", err)
	}
	return out, nil
}

func (s *InteractionService) Update(ctx context.Context, user *models.User, id uuid.UUID, req UpdateInteractionRequest) (*Interaction, error) {
	db := s.db.WithContext(ctx)
	in, err := s.load(db, user, id)
	if err != nil {
		return nil, err
	}
	if req.Type != nil {
		in.Type = strings.TrimSpace(*req.Type)
	}
	if req.Title != nil {
		in.Title = strings.TrimSpace(*req.Title)
	}
	if req.Details != nil {
		in.Details = *req.Details
	}
	if req.Outcome != nil {
		in.Outcome = *req.Outcome
	}
	if err := validateInteraction(in); err != nil {
		return nil, err
	}
	if err := db.Save(in).Error; err != nil {
		return nil, fmt.Errorf("failed to update interaction: %w", err)
	}
	return in, nil
}

func (s *InteractionService) Delete(ctx context.Context, user *models.User, id uuid.UUID) error {
	db := s.db.WithContext(ctx)
	if _, err := s.load(db, user, id); err != nil {
		return err
	}
	if err := db.Delete(&Interaction{}, "id = ?", id).Error; err != nil {
		return fmt.Errorf("failed to delete interaction: %w", err)
	}
	return nil
}

func (s *InteractionService) load(db *gorm.DB, user *models.User, id uuid.UUID) (*Interaction, error) {
	var in Interaction
	if err := db.First(&in, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInteractionNotFound
		}
		return nil, fmt.Errorf("failed to load interaction: %w", err)
	}
	if !policy.CanModify(user, in.UserID) {
		return nil, ErrInteractionNotOwner
	}
	return &in, nil
}

func findCustomer(db *gorm.DB, id uuid.UUID) (*Customer, error) {
	var c Customer
	if err := db.First(&c, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCustomerNotFound
		}
		return nil, fmt.Errorf("failed to load customer: %w", err)
	}
	return &c, nil
}

func applyContact(dst *Contact, in *ContactInput) {
	if in == nil {
		return
	}
	if in.Email != nil {
		dst.Email = strings.ToLower(strings.TrimSpace(*in.Email))
	}
	if in.Phone != nil {
		dst.Phone = strings.TrimSpace(*in.Phone)
	}
}

// normalizeTags trims, drops empties and de-duplicates, keeping first-seen order.
func normalizeTags(tags []string) datatypes.JSONSlice[string] {
	seen := make(map[string]bool, len(tags))
	out := make(datatypes.JSONSlice[string], 0, len(tags))
	for _, t := range tags {
		t = strings.TrimSpace(t)
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	return out
}

func validateCustomer(c *Customer) error {
	if c.Name == "" {
		return apperr.Validation("name is required")
	}
	if !validStatus(c.Status) {
		return apperr.Validation("status must be one of %s", strings.Join(CustomerStatuses, ", "))
	}
	return nil
}

func validateInteraction(in *Interaction) error {
	if !contains(InteractionTypes, in.Type) {
		return apperr.Validation("type must be one of %s", strings.Join(InteractionTypes, ", "))
	}
	if in.Title == "" {
		return apperr.Validation("title is required")
	}
	return nil
}

func validStatus(s string) bool {
	return contains(CustomerStatuses, s)
}

func contains(list []string, val string) bool {
	for _, item := range list {
		if item == val {
			return true
		}
	}
	return false
}
