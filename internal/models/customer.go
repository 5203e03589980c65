// internal/models/customer.go
package models

import (
	"github.com/lib/pq"

	"github.com/brightcart/storefront/pkg/authz"
)

// Customer is the domain record behind an identity-provider account.
// ExternalIdentityID links to the provider; email is the unique business key.
type Customer struct {
	BaseModel
	ExternalIdentityID string         `json:"externalIdentityId" gorm:"uniqueIndex;size:255;not null"`
	Email              string         `json:"email" gorm:"uniqueIndex;size:255;not null"`
	FirstName          string         `json:"firstName,omitempty" gorm:"size:100"`
	LastName           string         `json:"lastName,omitempty" gorm:"size:100"`
	Roles              pq.StringArray `json:"roles" gorm:"type:text[];not null"`

	Cart   *Cart   `json:"cart,omitempty" gorm:"foreignKey:CustomerID"`
	Orders []Order `json:"orders,omitempty" gorm:"foreignKey:CustomerID"`
}

// RoleSet returns the customer's roles as the typed set pkg/authz operates on.
func (c *Customer) RoleSet() []authz.Role {
	return authz.FromStrings(c.Roles)
}
