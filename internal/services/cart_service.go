// internal/services/cart_service.go
package services

import (
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/brightcart/storefront/internal/apperrors"
	"github.com/brightcart/storefront/internal/models"
)

type CartService struct {
	db *gorm.DB
}

func NewCartService(db *gorm.DB) *CartService {
	return &CartService{db: db}
}

// GetOrCreate returns the customer's single active cart, creating it on first
// use. Two concurrent first calls both land on the same cart: the loser of the
// insert race hits the customer_id unique index and falls back to fetching the
// winner's row.
func (s *CartService) GetOrCreate(customerID uuid.UUID) (*models.Cart, error) {
	cart := &models.Cart{CustomerID: customerID}
	if err := s.db.Create(cart).Error; err != nil && !isDuplicateKey(err) {
		return nil, fmt.Errorf("failed to create cart: %w", err)
	}
	return s.findByCustomer(customerID)
}

func (s *CartService) findByCustomer(customerID uuid.UUID) (*models.Cart, error) {
	var cart models.Cart
	err := s.db.
		Preload("Items").
		Preload("Items.Product").
		Where("customer_id = ?", customerID).
		First(&cart).Error
	if err != nil {
		if isNotFound(err) {
			return nil, &apperrors.NotFoundError{Resource: "cart"}
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &cart, nil
}

// AddItem sets the quantity for a product line in the cart. Adding a product
// that is already present replaces its quantity instead of accumulating, so
// retried requests settle on the same state.
func (s *CartService) AddItem(cartID, productID uuid.UUID, quantity int64) (*models.CartItem, error) {
	if quantity < 1 {
		return nil, apperrors.NewValidation("quantity must be at least 1")
	}

	if err := s.db.First(&models.Product{}, "id = ?", productID).Error; err != nil {
		if isNotFound(err) {
			return nil, apperrors.NewValidation("product %s does not exist", productID)
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	item := &models.CartItem{
		CartID:    cartID,
		ProductID: productID,
		Quantity:  quantity,
	}
	if err := s.upsertItem(item).Error; err != nil {
		return nil, fmt.Errorf("failed to add cart item: %w", err)
	}

	var stored models.CartItem
	err := s.db.Preload("Product").
		Where("cart_id = ? AND product_id = ?", cartID, productID).
		First(&stored).Error
	if err != nil {
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &stored, nil
}

// upsertItem writes the line through an ON CONFLICT upsert keyed on
// (cart_id, product_id), so an existing line has its quantity replaced rather
// than accumulated.
func (s *CartService) upsertItem(item *models.CartItem) *gorm.DB {
	return s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "cart_id"}, {Name: "product_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{"quantity": item.Quantity}),
	}).Create(item)
}

// RemoveItem deletes a product line from the cart. Removing a product that is
// not in the cart is a no-op.
func (s *CartService) RemoveItem(cartID, productID uuid.UUID) error {
	err := s.db.Where("cart_id = ? AND product_id = ?", cartID, productID).
		Delete(&models.CartItem{}).Error
	if err != nil {
		return fmt.Errorf("failed to remove cart item: %w", err)
	}
	return nil
}

func (s *CartService) Clear(cartID uuid.UUID) error {
	if err := s.db.Where("cart_id = ?", cartID).Delete(&models.CartItem{}).Error; err != nil {
		return fmt.Errorf("failed to clear cart: %w", err)
	}
	return nil
}
