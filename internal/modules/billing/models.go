package billing

import (
	"time"

	"github.com/ahmetcoskunkizilkaya/bizops-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/bizops-backend/internal/modules/crm"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// LineItem is stored inline on the invoice. Description and Rate are
// snapshots; later product edits do not change issued invoices.
type LineItem struct {
	Product     *uuid.UUID `json:"product,omitempty"`
	Description string     `json:"description"`
	Quantity    int        `json:"quantity"`
	Rate        float64    `json:"rate"`
	Amount      float64    `json:"amount"`
}

type Invoice struct {
	ID              uuid.UUID                     `gorm:"type:uuid;primaryKey" json:"id"`
	InvoiceNumber   string                        `gorm:"size:32;not null;uniqueIndex" json:"invoiceNumber"`
	CustomerID      uuid.UUID                     `gorm:"type:uuid;not null;index" json:"customerId"`
	Customer        *crm.Customer                 `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	Date            time.Time                     `gorm:"not null" json:"date"`
	DueDate         time.Time                     `gorm:"not null;index" json:"dueDate"`
	Items           datatypes.JSONSlice[LineItem] `json:"items"`
	Subtotal        float64                       `gorm:"not null" json:"subtotal"`
	TaxRate         float64                       `gorm:"not null" json:"taxRate"`
	Tax             float64                       `gorm:"not null" json:"tax"`
	Amount          float64                       `gorm:"not null" json:"amount"`
	Status          string                        `gorm:"size:16;not null;index" json:"status"`
	EffectiveStatus string                        `gorm:"-" json:"effectiveStatus"`
	PaidDate        *time.Time                    `json:"paidDate,omitempty"`
	Notes           string                        `gorm:"type:text" json:"notes"`
	Terms           string                        `gorm:"type:text" json:"terms"`
	CreatedBy       uuid.UUID                     `gorm:"type:uuid;index" json:"createdBy"`
	CreatedAt       time.Time                     `gorm:"index" json:"createdAt"`
	UpdatedAt       time.Time                     `json:"updatedAt"`
}

func (i *Invoice) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

func (i *Invoice) AfterFind(tx *gorm.DB) error {
	i.EffectiveStatus = EffectiveStatus(i.Status, i.DueDate, time.Now().UTC())
	return nil
}

// --- DTOs ---

type LineItemInput struct {
	Product     *string  `json:"product"`
	Description *string  `json:"description"`
	Quantity    *int     `json:"quantity"`
	Rate        *float64 `json:"rate"`
}

// CreateInvoiceRequest has no invoiceNumber or totals: both are computed
// server-side and any client values are dropped by the decoder.
type CreateInvoiceRequest struct {
	Customer string          `json:"customer"`
	Date     *dto.Date       `json:"date"`
	DueDate  *dto.Date       `json:"dueDate"`
	Items    []LineItemInput `json:"items"`
	TaxRate  *float64        `json:"taxRate"`
	Status   string          `json:"status"`
	PaidDate *dto.Date       `json:"paidDate"`
	Notes    string          `json:"notes"`
	Terms    string          `json:"terms"`
}

type UpdateInvoiceRequest struct {
	Customer *string          `json:"customer"`
	Date     *dto.Date        `json:"date"`
	DueDate  *dto.Date        `json:"dueDate"`
	Items    *[]LineItemInput `json:"items"`
	TaxRate  *float64         `json:"taxRate"`
	Status   *string          `json:"status"`
	PaidDate *dto.Date        `json:"paidDate"`
	Notes    *string          `json:"notes"`
	Terms    *string          `json:"terms"`
}

type InvoiceFilter struct {
	Status   string
	Customer string
}

type SendInvoiceResponse struct {
	Message string   `json:"message"`
	Invoice *Invoice `json:"invoice"`
}
