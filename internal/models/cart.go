// internal/models/cart.go
package models

import (
	"github.com/google/uuid"
)

// Cart is the per-customer singleton collection of pending line items. The
// unique index on CustomerID is the enforcement point for "one cart per
// customer": concurrent first-access races are resolved by the store, not by
// in-process locking.
type Cart struct {
	BaseModel
	CustomerID uuid.UUID  `json:"customerId" gorm:"type:uuid;uniqueIndex;not null"`
	Items      []CartItem `json:"items" gorm:"foreignKey:CartID;constraint:OnDelete:CASCADE"`
}

// CartItem is one (product, quantity) line. The composite unique index keeps
// at most one line per (cart, product); adding an existing product replaces
// the quantity.
type CartItem struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	CartID    uuid.UUID `json:"cartId" gorm:"type:uuid;not null;uniqueIndex:idx_cart_items_cart_product"`
	ProductID uuid.UUID `json:"productId" gorm:"type:uuid;not null;uniqueIndex:idx_cart_items_cart_product"`
	Quantity  int64     `json:"quantity" gorm:"not null;check:quantity >= 1"`

	Product *Product `json:"product,omitempty" gorm:"foreignKey:ProductID"`
}
