// internal/models/product.go
package models

import (
	"github.com/google/uuid"
)

// Product is a catalog entry. Slug is the immutable human-readable key and is
// globally unique; prices are stored in the currency's smallest unit.
type Product struct {
	BaseModel
	Slug        string     `json:"slug" gorm:"uniqueIndex;size:255;not null"`
	Title       string     `json:"title" gorm:"size:255;not null"`
	Description string     `json:"description,omitempty" gorm:"type:text"`
	PriceCents  int64      `json:"priceCents" gorm:"not null;check:price_cents >= 0"`
	Currency    string     `json:"currency" gorm:"size:3;not null;default:'USD'"`
	CategoryID  *uuid.UUID `json:"categoryId,omitempty" gorm:"type:uuid;index"`
	ImageURL    string     `json:"imageUrl,omitempty" gorm:"size:512"`
	InStock     bool       `json:"inStock" gorm:"not null;default:true"`

	Category *Category `json:"category,omitempty" gorm:"foreignKey:CategoryID"`
}
