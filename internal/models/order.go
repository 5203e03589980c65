// internal/models/order.go
package models

import (
	"time"

	"github.com/google/uuid"
)

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusConfirmed OrderStatus = "confirmed"
	OrderStatusShipped   OrderStatus = "shipped"
	OrderStatusDelivered OrderStatus = "delivered"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// orderTransitions is the full status state machine. delivered and cancelled
// are terminal; cancellation is only reachable before shipping.
var orderTransitions = map[OrderStatus][]OrderStatus{
	OrderStatusPending:   {OrderStatusConfirmed, OrderStatusCancelled},
	OrderStatusConfirmed: {OrderStatusShipped, OrderStatusCancelled},
	OrderStatusShipped:   {OrderStatusDelivered},
	OrderStatusDelivered: {},
	OrderStatusCancelled: {},
}

// AllOrderStatuses lists the declared statuses in lifecycle order.
var AllOrderStatuses = []OrderStatus{
	OrderStatusPending,
	OrderStatusConfirmed,
	OrderStatusShipped,
	OrderStatusDelivered,
	OrderStatusCancelled,
}

// ParseOrderStatus maps a wire literal to a status, reporting whether it is
// one of the declared values.
func ParseOrderStatus(s string) (OrderStatus, bool) {
	switch OrderStatus(s) {
	case OrderStatusPending, OrderStatusConfirmed, OrderStatusShipped,
		OrderStatusDelivered, OrderStatusCancelled:
		return OrderStatus(s), true
	}
	return "", false
}

// Order is a placed order. Lines are a snapshot taken at creation time and
// are never mutated afterwards, even when the source products change.
type Order struct {
	BaseModel
	CustomerID uuid.UUID   `json:"customerId" gorm:"type:uuid;not null;index"`
	Status     OrderStatus `json:"status" gorm:"type:varchar(20);not null;default:'pending';index"`
	TotalCents int64       `json:"totalCents" gorm:"not null;check:total_cents >= 0"`
	Currency   string      `json:"currency" gorm:"size:3;not null;default:'USD'"`
	Items      []OrderLine `json:"items" gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`

	Customer *Customer `json:"-" gorm:"foreignKey:CustomerID"`
}

// OrderLine is one line of an order. PriceCents is the product's price at
// order time.
type OrderLine struct {
	ID         uuid.UUID `json:"-" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	OrderID    uuid.UUID `json:"-" gorm:"type:uuid;not null;index"`
	ProductID  uuid.UUID `json:"productId" gorm:"type:uuid;not null"`
	Quantity   int64     `json:"quantity" gorm:"not null;check:quantity >= 1"`
	PriceCents int64     `json:"priceCents" gorm:"not null;check:price_cents >= 0"`

	Product *Product `json:"product,omitempty" gorm:"foreignKey:ProductID"`
}

// CalculateTotal recomputes the order total from its lines. It is used to
// populate TotalCents at creation and to verify a client-supplied total.
func (o *Order) CalculateTotal() int64 {
	var total int64
	for _, line := range o.Items {
		total += line.Quantity * line.PriceCents
	}
	return total
}

// CanTransitionTo reports whether the state machine permits moving to next.
func (o *Order) CanTransitionTo(next OrderStatus) bool {
	for _, allowed := range orderTransitions[o.Status] {
		if allowed == next {
			return true
		}
	}
	return false
}

// ApplyStatus moves the order to next, bumping UpdatedAt. On a disallowed
// edge the order is left untouched.
func (o *Order) ApplyStatus(next OrderStatus) bool {
	if !o.CanTransitionTo(next) {
		return false
	}
	o.Status = next
	o.UpdatedAt = time.Now()
	return true
}
