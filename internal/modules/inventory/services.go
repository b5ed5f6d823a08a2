package inventory

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
	"gorm.io/gorm"
)

var (
	ErrProductNotFound  = apperr.NotFound("product not found")
	ErrDuplicateSKU     = apperr.Conflict("a product with this SKU already exists")
	ErrDuplicateBarcode = apperr.Conflict("a product with this barcode already exists")
	ErrNotAllowed       = apperr.Forbidden("only the creator, a Manager or an Admin can modify this product")
)

type ProductService struct {
	db *gorm.DB
}

func NewProductService(db *gorm.DB) *ProductService {
	return &ProductService{db: db}
}

// NormalizeSKU is applied before every write and every SKU lookup.
func NormalizeSKU(sku string) string {
	return strings.ToLower(strings.TrimSpace(sku))
}

func (s *ProductService) List(ctx context.Context, f ListFilter) ([]Product, error) {
	q := s.db.WithContext(ctx).Model(&Product{})
	if f.Category != "" {
		q = q.Where("category = ?", f.Category)
	}
	if f.LowStock {
		q = q.Where("quantity <= threshold")
	}

	products := []Product{}
	if err := q.Order("name ASC").Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	return products, nil
}

func (s *ProductService) Get(ctx context.Context, id uuid.UUID) (*Product, error) {
	var p Product
	if err := s.db.WithContext(ctx).First(&p, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to load product: %w", err)
	}
	return &p, nil
}

// FindByIDs returns the products with the given ids keyed by id. Missing ids
// are simply absent from the map.
func (s *ProductService) FindByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]Product, error) {
	out := make(map[uuid.UUID]Product, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	var products []Product
	if err := s.db.WithContext(ctx).Where("id IN ?", ids).Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to load products: %w", err)
	}
	for _, p := range products {
		out[p.ID] = p
	}
	return out, nil
}

func (s *ProductService) Create(ctx context.Context, user *models.User, req CreateProductRequest) (*Product, error) {
	if req.Quantity == nil {
		return nil, apperr.Validation("quantity is required")
	}
	if req.Price == nil {
		return nil, apperr.Validation("price is required")
	}

	p := Product{
		Name:      strings.TrimSpace(req.Name),
		SKU:       NormalizeSKU(req.SKU),
		Barcode:   normalizeBarcode(req.Barcode),
		Quantity:  *req.Quantity,
		Threshold: DefaultThreshold,
		Price:     *req.Price,
		Category:  strings.TrimSpace(req.Category),
		PhotoURL:  strings.TrimSpace(req.PhotoURL),
		CreatedBy: user.ID,
	}
	if req.Threshold != nil {
		p.Threshold = *req.Threshold
	}
	if p.Category == "" {
		p.Category = DefaultCategory
	}
	if err := validate(&p); err != nil {
		return nil, err
	}

	db := s.db.WithContext(ctx)
	if err := s.checkUnique(db, &p); err != nil {
		return nil, err
	}
	if err := db.Create(&p).Error; err != nil {
		return nil, translateWriteError(err)
	}

	p.refreshLowStock()
	slog.Info("product created", "product_id", p.ID.String(), "sku", p.SKU, "user_id", user.ID.String())
	return &p, nil
}

func (s *ProductService) Update(ctx context.Context, user *models.User, id uuid.UUID, req UpdateProductRequest) (*Product, error) {
	p, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !policy.CanModify(user, p.CreatedBy) {
		return nil, ErrNotAllowed
	}

	if req.Name != nil {
		p.Name = strings.TrimSpace(*req.Name)
	}
	if req.SKU != nil {
		p.SKU = NormalizeSKU(*req.SKU)
	}
	if req.Barcode != nil {
		p.Barcode = normalizeBarcode(req.Barcode)
	}
	if req.Quantity != nil {
		p.Quantity = *req.Quantity
	}
	if req.Threshold != nil {
		p.Threshold = *req.Threshold
	}
	if req.Price != nil {
		p.Price = *req.Price
	}
	if req.Category != nil {
		p.Category = strings.TrimSpace(*req.Category)
		if p.Category == "" {
			p.Category = DefaultCategory
		}
	}
	if req.PhotoURL != nil {
		p.PhotoURL = strings.TrimSpace(*req.PhotoURL)
	}
	if err := validate(p); err != nil {
		return nil, err
	}

	db := s.db.WithContext(ctx)
	if err := s.checkUnique(db, p); err != nil {
		return nil, err
	}
	if err := db.Save(p).Error; err != nil {
		return nil, translateWriteError(err)
	}

	p.refreshLowStock()
	return p, nil
}

func (s *ProductService) Delete(ctx context.Context, user *models.User, id uuid.UUID) error {
	p, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if !policy.CanModify(user, p.CreatedBy) {
		return ErrNotAllowed
	}
	if err := s.db.WithContext(ctx).Delete(&Product{}, "id = ?", id).Error; err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}
	slog.Info("product deleted", "product_id", id.String(), "user_id", user.ID.String())
	return nil
}

func (s *ProductService) checkUnique(db *gorm.DB, p *Product) error {
	var count int64
	if err := db.Model(&Product{}).Where("sku = ? AND id <> ?", p.SKU, p.ID).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to check sku: %w", err)
	}
	if count > 0 {
		return ErrDuplicateSKU
	}
	if p.Barcode != nil {
		if err := db.Model(&Product{}).Where("barcode = ? AND id <> ?", *p.Barcode, p.ID).Count(&count).Error; err != nil {
			return fmt.Errorf("failed to check barcode: %w", err)
		}
		if count > 0 {
			return ErrDuplicateBarcode
		}
	}
	return nil
}

func validate(p *Product) error {
	if p.Name == "" {
		return apperr.Validation("name is required")
	}
	if p.SKU == "" {
		return apperr.Validation("sku is required")
	}
	if p.Quantity < 0 {
		return apperr.Validation("quantity must be >= 0")
	}
	if p.Threshold < 0 {
		return apperr.Validation("threshold must be >= 0")
	}
	if p.Price < 0 {
		return apperr.Validation("price must be >= 0")
	}
	return nil
}

func normalizeBarcode(b *string) *string {
	if b == nil {
		return nil
	}
	v := strings.TrimSpace(*b)
	if v == "" {
		return nil
	}
	return &v
}

// A concurrent insert can still win the race after checkUnique.
func translateWriteError(err error) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return apperr.Conflict("a product with this SKU or barcode already exists")
	}
	return fmt.Errorf("failed to save product: %w", err)
}
