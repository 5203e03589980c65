// internal/services/product_service.go
package services

import (
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/brightcart/storefront/internal/apperrors"
	"github.com/brightcart/storefront/internal/models"
	"github.com/brightcart/storefront/internal/utils"
)

type ProductService struct {
	db *gorm.DB
}

func NewProductService(db *gorm.DB) *ProductService {
	return &ProductService{db: db}
}

type CreateProductRequest struct {
	Slug        string     `json:"slug" validate:"required,slug"`
	Title       string     `json:"title" validate:"required,min=1,max=200"`
	Description string     `json:"description,omitempty" validate:"omitempty,max=5000"`
	PriceCents  *int64     `json:"priceCents" validate:"required,gte=0"`
	Currency    string     `json:"currency,omitempty" validate:"omitempty,len=3"`
	CategoryID  *uuid.UUID `json:"categoryId,omitempty"`
	ImageURL    string     `json:"imageUrl,omitempty" validate:"omitempty,url"`
	InStock     *bool      `json:"inStock,omitempty"`
}

type UpdateProductRequest struct {
	Slug        *string    `json:"slug,omitempty" validate:"omitempty,slug"`
	Title       *string    `json:"title,omitempty" validate:"omitempty,min=1,max=200"`
	Description *string    `json:"description,omitempty" validate:"omitempty,max=5000"`
	PriceCents  *int64     `json:"priceCents,omitempty" validate:"omitempty,gte=0"`
	Currency    *string    `json:"currency,omitempty" validate:"omitempty,len=3"`
	CategoryID  *uuid.UUID `json:"categoryId,omitempty"`
	ImageURL    *string    `json:"imageUrl,omitempty" validate:"omitempty,url"`
	InStock     *bool      `json:"inStock,omitempty"`
}

type ListProductsParams struct {
	utils.PaginationParams
	CategoryID *uuid.UUID
	InStock    *bool
}

var productSortFields = []string{"created_at", "updated_at", "title", "price_cents"}

func (s *ProductService) Create(req *CreateProductRequest) (*models.Product, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, utils.ValidationErrorFrom(err)
	}

	if req.CategoryID != nil {
		if err := s.db.First(&models.Category{}, "id = ?", *req.CategoryID).Error; err != nil {
			if isNotFound(err) {
				return nil, apperrors.NewValidation("category %s does not exist", *req.CategoryID)
			}
			return nil, fmt.Errorf("database error: %w", err)
		}
	}

	product := &models.Product{
		Slug:        req.Slug,
		Title:       req.Title,
		Description: req.Description,
		PriceCents:  *req.PriceCents,
		Currency:    req.Currency,
		CategoryID:  req.CategoryID,
		ImageURL:    req.ImageURL,
		InStock:     true,
	}
	if product.Currency == "" {
		product.Currency = "USD"
	}
	if req.InStock != nil {
		product.InStock = *req.InStock
	}

	if err := s.db.Create(product).Error; err != nil {
		if isDuplicateKey(err) {
			return nil, &apperrors.ConflictError{Resource: "product", Key: req.Slug}
		}
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	return s.FindByID(product.ID)
}

// FindBySlug returns (nil, nil) when no product carries the slug; the catalog
// treats an unknown slug as a routine miss rather than a failure.
func (s *ProductService) FindBySlug(slug string) (*models.Product, error) {
	var product models.Product
	err := s.db.Preload("Category").Where("slug = ?", slug).First(&product).Error
	if err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &product, nil
}

func (s *ProductService) FindByID(id uuid.UUID) (*models.Product, error) {
	var product models.Product
	if err := s.db.Preload("Category").First(&product, "id = ?", id).Error; err != nil {
		if isNotFound(err) {
			return nil, &apperrors.NotFoundError{Resource: "product"}
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &product, nil
}

func (s *ProductService) List(params *ListProductsParams) ([]models.Product, int64, error) {
	query := s.db.Model(&models.Product{})
	if params.CategoryID != nil {
		query = query.Where("category_id = ?", *params.CategoryID)
	}
	if params.InStock != nil {
		query = query.Where("in_stock = ?", *params.InStock)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count products: %w", err)
	}

	var products []models.Product
	query = utils.ApplySort(query, params.PaginationParams, productSortFields)
	query = utils.ApplyPagination(query, params.PaginationParams)
	if err := query.Preload("Category").Find(&products).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list products: %w", err)
	}

	return products, total, nil
}

func (s *ProductService) Update(id uuid.UUID, req *UpdateProductRequest) (*models.Product, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, utils.ValidationErrorFrom(err)
	}

	product, err := s.FindByID(id)
	if err != nil {
		return nil, err
	}

	if req.CategoryID != nil {
		if err := s.db.First(&models.Category{}, "id = ?", *req.CategoryID).Error; err != nil {
			if isNotFound(err) {
				return nil, apperrors.NewValidation("category %s does not exist", *req.CategoryID)
			}
			return nil, fmt.Errorf("database error: %w", err)
		}
	}

	updates := make(map[string]interface{})
	if req.Slug != nil {
		updates["slug"] = *req.Slug
	}
	if req.Title != nil {
		updates["title"] = *req.Title
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.PriceCents != nil {
		updates["price_cents"] = *req.PriceCents
	}
	if req.Currency != nil {
		updates["currency"] = *req.Currency
	}
	if req.CategoryID != nil {
		updates["category_id"] = *req.CategoryID
	}
	if req.ImageURL != nil {
		updates["image_url"] = *req.ImageURL
	}
	if req.InStock != nil {
		updates["in_stock"] = *req.InStock
	}
	if len(updates) == 0 {
		return product, nil
	}

	if err := s.db.Model(product).Updates(updates).Error; err != nil {
		if isDuplicateKey(err) {
			key := product.Slug
			if req.Slug != nil {
				key = *req.Slug
			}
			return nil, &apperrors.ConflictError{Resource: "product", Key: key}
		}
		return nil, fmt.Errorf("failed to update product: %w", err)
	}

	return s.FindByID(id)
}

// SetImageURL records the public URL of an uploaded product image.
func (s *ProductService) SetImageURL(id uuid.UUID, url string) (*models.Product, error) {
	product, err := s.FindByID(id)
	if err != nil {
		return nil, err
	}
	if err := s.db.Model(product).Update("image_url", url).Error; err != nil {
		return nil, fmt.Errorf("failed to update product image: %w", err)
	}
	product.ImageURL = url
	return product, nil
}

func (s *ProductService) ListCategories() ([]models.Category, error) {
	var categories []models.Category
	if err := s.db.Order("name ASC").Find(&categories).Error; err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	return categories, nil
}
