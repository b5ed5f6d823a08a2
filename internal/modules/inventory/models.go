package inventory

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	DefaultThreshold = 5
	DefaultCategory  = "General"
)

type Product struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name      string    `gorm:"size:255;not null" json:"name"`
	SKU       string    `gorm:"size:100;not null;uniqueIndex" json:"sku"`
	Barcode   *string   `gorm:"size:100;uniqueIndex" json:"barcode,omitempty"`
	Quantity  int       `gorm:"not null;default:0" json:"quantity"`
	Threshold int       `gorm:"not null" json:"threshold"`
	Price     float64   `gorm:"not null;default:0" json:"price"`
	Category  string    `gorm:"size:100;not null;default:'General';index" json:"category"`
	PhotoURL  string    `gorm:"type:text" json:"photoUrl,omitempty"`
	CreatedBy uuid.UUID `gorm:"type:uuid;index" json:"createdBy"`
	LowStock  bool      `gorm:"-" json:"lowStock"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

func (p *Product) AfterFind(tx *gorm.DB) error {
	p.refreshLowStock()
	return nil
}

func (p *Product) refreshLowStock() {
	p.LowStock = p.Quantity <= p.Threshold
}

// --- DTOs ---

type CreateProductRequest struct {
	Name      string   `json:"name"`
	SKU       string   `json:"sku"`
	Barcode   *string  `json:"barcode"`
	Quantity  *int     `json:"quantity"`
	Threshold *int     `json:"threshold"`
	Price     *float64 `json:"price"`
	Category  string   `json:"category"`
	PhotoURL  string   `json:"photoUrl"`
}

type UpdateProductRequest struct {
	Name      *string  `json:"name"`
	SKU       *string  `json:"sku"`
	Barcode   *string  `json:"barcode"`
	Quantity  *int     `json:"quantity"`
	Threshold *int     `json:"threshold"`
	Price     *float64 `json:"price"`
	Category  *string  `json:"category"`
	PhotoURL  *string  `json:"photoUrl"`
}

type ListFilter struct {
	Category string
	LowStock bool
}
