package billing

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/ahmetcoskunkizilkaya/bizops-backend/internal/apperr"
	"github.com/ahmetcoskunkizilkaya/bizops-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/bizops-backend/internal/metrics"
	"github.com/ahmetcoskunkizilkaya/bizops-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/bizops-backend/internal/modules/crm"
	"github.com/ahmetcoskunkizilkaya/bizops-backend/internal/modules/inventory"
	"github.com/ahmetcoskunkizilkaya/bizops-backend/internal/notify"
	"github.com/ahmetcoskunkizilkaya/bizops-backend/internal/policy"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrInvoiceNotFound   = apperr.NotFound("invoice not found")
	ErrInvoiceNotAllowed = apperr.Forbidden("only the creator, a Manager or an Admin can modify this invoice")
	ErrCustomerHasBills  = apperr.Conflict("customer has invoices; delete them first")
)

type InvoiceService struct {
	db        *gorm.DB
	numbers   *Numberer
	notifier  notify.Notifier
	customers *crm.CustomerService
	products  *inventory.ProductService
	now       func() time.Time
}

func NewInvoiceService(
	db *gorm.DB,
	numbers *Numberer,
	notifier notify.Notifier,
	customers *crm.CustomerService,
	products *inventory.ProductService,
) *InvoiceService {
	return &InvoiceService{
		db:        db,
		numbers:   numbers,
		notifier:  notifier,
		customers: customers,
		products:  products,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// List returns invoices newest first. A status filter matches the
// effective status, so Overdue includes open invoices past due.
func (s *InvoiceService) List(ctx context.Context, f InvoiceFilter) ([]Invoice, error) {
	q := s.db.WithContext(ctx).Preload("Customer")
	now := s.now()

	switch f.Status {
	case "":
	case StatusOverdue:
		q = q.Where("status = ? OR (status IN ? AND due_date < ?)",
			StatusOverdue, []string{StatusUnpaid, StatusPending}, now)
	case StatusUnpaid, StatusPending:
		q = q.Where("status = ? AND due_date >= ?", f.Status, now)
	case StatusDraft, StatusPaid:
		q = q.Where("status = ?", f.Status)
	default:
		return nil, apperr.Validation("status must be one of %s", strings.Join(Statuses, ", "))
	}

	if f.Customer != "" {
		customerID, err := uuid.Parse(f.Customer)
		if err != nil {
			return nil, apperr.Validation("invalid customer")
		}
		q = q.Where("customer_id = ?", customerID)
	}

	invoices := []Invoice{}
	if err := q.Order("created_at DESC").Find(&invoices).Error; err != nil {
		return nil, fmt.Errorf("failed to list invoices: %w", err)
	}
	return invoices, nil
}

func (s *InvoiceService) Get(ctx context.Context, id uuid.UUID) (*Invoice, error) {
	var inv Invoice
	if err := s.db.WithContext(ctx).Preload("Customer").First(&inv, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvoiceNotFound
		}
		return nil, fmt.Errorf("failed to load invoice: %w", err)
	}
	return &inv, nil
}

func (s *InvoiceService) Create(ctx context.Context, user *models.User, req CreateInvoiceRequest) (*Invoice, error) {
	customerID, err := s.resolveCustomer(ctx, req.Customer)
	if err != nil {
		return nil, err
	}
	if req.Date == nil {
		return nil, apperr.Validation("date is required")
	}
	if req.DueDate == nil {
		return nil, apperr.Validation("dueDate is required")
	}
	status, err := ValidateInitial(strings.TrimSpace(req.Status))
	if err != nil {
		return nil, err
	}

	taxRate := 0.0
	if req.TaxRate != nil {
		taxRate = *req.TaxRate
	}
	items, err := s.resolveItems(ctx, req.Items)
	if err != nil {
		return nil, err
	}
	totals, err := ComputeTotals(items, taxRate)
	if err != nil {
		return nil, err
	}

	inv := Invoice{
		InvoiceNumber: s.numbers.Next(),
		CustomerID:    customerID,
		Date:          req.Date.Time,
		DueDate:       req.DueDate.Time,
		TaxRate:       taxRate,
		Status:        status,
		Notes:         req.Notes,
		Terms:         req.Terms,
		CreatedBy:     user.ID,
	}
	applyTotals(&inv, totals)
	if err := validateDates(&inv); err != nil {
		return nil, err
	}

	if status == StatusPaid {
		inv.PaidDate = s.paidDate(req.PaidDate)
	} else if req.PaidDate != nil {
		return nil, apperr.Validation("paidDate can only be set on a Paid invoice")
	}

	if err := s.db.WithContext(ctx).Omit(clause.Associations).Create(&inv).Error; err != nil {
		return nil, fmt.Errorf("failed to create invoice: %w", err)
	}

	metrics.RecordInvoiceCreated(inv.Status)
	slog.Info("invoice created",
		"invoice_id", inv.ID.String(),
		"invoice_number", inv.InvoiceNumber,
		"amount", inv.Amount,
		"status", inv.Status,
		"user_id", user.ID.String(),
	)
	return s.Get(ctx, inv.ID)
}

// Send creates the invoice and notifies the customer. Notification is best
// effort: a delivery failure is logged and the invoice is still returned.
func (s *InvoiceService) Send(ctx context.Context, user *models.User, req CreateInvoiceRequest) (*Invoice, error) {
	inv, err := s.Create(ctx, user, req)
	if err != nil {
		return nil, err
	}

	to := ""
	if inv.Customer != nil {
		to = inv.Customer.Contact.Email
	}
	msg := notify.Message{
		Kind:    "invoice_sent",
		To:      to,
		Subject: fmt.Sprintf("Invoice %s", inv.InvoiceNumber),
		Body: fmt.Sprintf("Invoice %s for %.2f is due on %s.",
			inv.InvoiceNumber, inv.Amount, inv.DueDate.Format("2006-01-02")),
	}
	if err := s.notifier.Notify(ctx, msg); err != nil {
		slog.Warn("invoice notification failed", "invoice_id", inv.ID.String(), "error", err.Error())
	}
	return inv, nil
}

func (s *InvoiceService) Update(ctx context.Context, user *models.User, id uuid.UUID, req UpdateInvoiceRequest) (*Invoice, error) {
	inv, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !policy.CanModify(user, inv.CreatedBy) {
		return nil, ErrInvoiceNotAllowed
	}

	if req.Customer != nil {
		customerID, err := s.resolveCustomer(ctx, *req.Customer)
		if err != nil {
			return nil, err
		}
		inv.CustomerID = customerID
	}
	if req.Date != nil {
		inv.Date = req.Date.Time
	}
	if req.DueDate != nil {
		inv.DueDate = req.DueDate.Time
	}
	if err := validateDates(inv); err != nil {
		return nil, err
	}
	if req.Notes != nil {
		inv.Notes = *req.Notes
	}
	if req.Terms != nil {
		inv.Terms = *req.Terms
	}

	if req.Items != nil || req.TaxRate != nil {
		items := []LineItem(inv.Items)
		if req.Items != nil {
			if items, err = s.resolveItems(ctx, *req.Items); err != nil {
				return nil, err
			}
		}
		taxRate := inv.TaxRate
		if req.TaxRate != nil {
			taxRate = *req.TaxRate
		}
		totals, err := ComputeTotals(items, taxRate)
		if err != nil {
			return nil, err
		}
		inv.TaxRate = taxRate
		applyTotals(inv, totals)
	}

	from := inv.Status
	if req.Status != nil {
		to := strings.TrimSpace(*req.Status)
		if err := ValidateTransition(from, to); err != nil {
			return nil, err
		}
		inv.Status = to
	}
	switch {
	case inv.Status == StatusPaid && from != StatusPaid:
		inv.PaidDate = s.paidDate(req.PaidDate)
	case req.PaidDate != nil && inv.Status == StatusPaid:
		t := req.PaidDate.Time
		inv.PaidDate = &t
	case req.PaidDate != nil:
		return nil, apperr.Validation("paidDate can only be set on a Paid invoice")
	}

	if err := s.db.WithContext(ctx).Omit(clause.Associations).Save(inv).Error; err != nil {
		return nil, fmt.Errorf("failed to update invoice: %w", err)
	}

	if from != inv.Status {
		metrics.RecordInvoiceTransition(from, inv.Status)
		slog.Info("invoice status changed",
			"invoice_id", inv.ID.String(), "from", from, "to", inv.Status, "user_id", user.ID.String())
	}
	return s.Get(ctx, inv.ID)
}

func (s *InvoiceService) Delete(ctx context.Context, user *models.User, id uuid.UUID) error {
	inv, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if !policy.CanModify(user, inv.CreatedBy) {
		return ErrInvoiceNotAllowed
	}
	if err := s.db.WithContext(ctx).Delete(&Invoice{}, "id = ?", id).Error; err != nil {
		return fmt.Errorf("failed to delete invoice: %w", err)
	}
	slog.Info("invoice deleted", "invoice_id", id.String(), "user_id", user.ID.String())
	return nil
}

// GuardCustomerDelete refuses to delete a customer that still has invoices.
// Registered on the CRM customer service.
func (s *InvoiceService) GuardCustomerDelete(tx *gorm.DB, customerID uuid.UUID) error {
	var count int64
	if err := tx.Model(&Invoice{}).Where("customer_id = ?", customerID).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to count invoices: %w", err)
	}
	if count > 0 {
		return ErrCustomerHasBills
	}
	return nil
}

func (s *InvoiceService) resolveCustomer(ctx context.Context, raw string) (uuid.UUID, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return uuid.Nil, apperr.Validation("customer is required")
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, apperr.Validation("invalid customer")
	}
	ok, err := s.customers.Exists(ctx, id)
	if err != nil {
		return uuid.Nil, err
	}
	if !ok {
		return uuid.Nil, apperr.Validation("customer does not exist")
	}
	return id, nil
}

// resolveItems applies defaults and fills description and rate from the
// referenced product when the caller left them out.
func (s *InvoiceService) resolveItems(ctx context.Context, in []LineItemInput) ([]LineItem, error) {
	ids := make([]uuid.UUID, 0, len(in))
	refs := make([]*uuid.UUID, len(in))
	for i, it := range in {
		if it.Product == nil || strings.TrimSpace(*it.Product) == "" {
			continue
		}
		id, err := uuid.Parse(strings.TrimSpace(*it.Product))
		if err != nil {
			return nil, apperr.Validation("items[%d].product is invalid", i)
		}
		refs[i] = &id
		ids = append(ids, id)
	}

	products, err := s.products.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	out := make([]LineItem, len(in))
	for i, it := range in {
		item := LineItem{Product: refs[i], Quantity: 1}
		if it.Description != nil {
			item.Description = strings.TrimSpace(*it.Description)
		}
		if it.Quantity != nil {
			item.Quantity = *it.Quantity
		}
		if it.Rate != nil {
			item.Rate = *it.Rate
		}
		if refs[i] != nil {
			p, ok := products[*refs[i]]
			if !ok {
				return nil, apperr.Validation("items[%d].product does not exist", i)
			}
			if item.Description == "" {
				item.Description = p.Name
			}
			if it.Rate == nil {
				item.Rate = p.Price
			}
		}
		out[i] = item
	}
	return out, nil
}

// paidDate is the caller's value when given, otherwise now.
func (s *InvoiceService) paidDate(given *dto.Date) *time.Time {
	t := s.now()
	if given != nil && !given.IsZero() {
		t = given.Time
	}
	return &t
}

func applyTotals(inv *Invoice, t Totals) {
	inv.Items = datatypes.JSONSlice[LineItem](t.Items)
	inv.Subtotal = t.Subtotal
	inv.Tax = t.Tax
	inv.Amount = t.Total
}

func validateDates(inv *Invoice) error {
	if inv.DueDate.Before(inv.Date) {
		return apperr.Validation("dueDate must be on or after date")
	}
	return nil
}
