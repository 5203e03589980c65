package schema

import (
	"time"
)

// Order status literals as they travel on the wire.
var OrderStatuses = []string{"pending", "confirmed", "shipped", "delivered", "cancelled"}

// Role literals accepted in customer role sets.
var Roles = []string{"customer", "support", "merchandiser", "admin"}

// ProductShape declares the Product wire entity. slug, title and priceCents
// are the creation contract; currency and inStock default when omitted.
var ProductShape = &Shape{
	Entity: "product",
	Fields: []Field{
		{Name: "id", Kind: String},
		{Name: "slug", Kind: String, Required: true},
		{Name: "title", Kind: String, Required: true},
		{Name: "description", Kind: String},
		{Name: "priceCents", Kind: Int, Required: true, Min: intPtr(0)},
		{Name: "currency", Kind: String, Default: "USD"},
		{Name: "categoryId", Kind: String},
		{Name: "imageUrl", Kind: String},
		{Name: "inStock", Kind: Bool, Default: true},
		{Name: "createdAt", Kind: String},
		{Name: "updatedAt", Kind: String},
	},
}

var CustomerShape = &Shape{
	Entity: "customer",
	Fields: []Field{
		{Name: "id", Kind: String},
		{Name: "externalIdentityId", Kind: String},
		{Name: "email", Kind: String, Required: true, Format: "email"},
		{Name: "firstName", Kind: String},
		{Name: "lastName", Kind: String},
		{Name: "roles", Kind: StringList, Enum: Roles, Default: []string{"customer"}, MinItems: 1},
		{Name: "createdAt", Kind: String},
		{Name: "updatedAt", Kind: String},
	},
}

// OrderLineShape is the shape of a single order line. priceCents is the
// snapshot taken at order time, not a reference to the product's live price.
var OrderLineShape = &Shape{
	Entity: "orderLine",
	Fields: []Field{
		{Name: "productId", Kind: String, Required: true},
		{Name: "quantity", Kind: Int, Required: true, Min: intPtr(1)},
		{Name: "priceCents", Kind: Int, Min: intPtr(0)},
	},
}

var OrderShape = &Shape{
	Entity: "order",
	Fields: []Field{
		{Name: "id", Kind: String},
		{Name: "customerId", Kind: String, Required: true},
		{Name: "status", Kind: String, Enum: OrderStatuses, Default: "pending"},
		{Name: "totalCents", Kind: Int, Min: intPtr(0)},
		{Name: "currency", Kind: String, Default: "USD"},
		{Name: "items", Kind: ObjectList, Elem: OrderLineShape},
		{Name: "fromCart", Kind: Bool},
		{Name: "createdAt", Kind: String},
		{Name: "updatedAt", Kind: String},
	},
}

var CartItemShape = &Shape{
	Entity: "cartItem",
	Fields: []Field{
		{Name: "productId", Kind: String, Required: true},
		{Name: "quantity", Kind: Int, Required: true, Min: intPtr(1)},
	},
}

var CategoryShape = &Shape{
	Entity: "category",
	Fields: []Field{
		{Name: "id", Kind: String},
		{Name: "slug", Kind: String, Required: true},
		{Name: "name", Kind: String, Required: true},
		{Name: "description", Kind: String},
	},
}

// Wire types. Field names and JSON tags are the client/server contract and
// round-trip losslessly through the shapes above.

type Product struct {
	ID          string    `json:"id"`
	Slug        string    `json:"slug"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	PriceCents  int64     `json:"priceCents"`
	Currency    string    `json:"currency"`
	CategoryID  string    `json:"categoryId,omitempty"`
	ImageURL    string    `json:"imageUrl,omitempty"`
	InStock     bool      `json:"inStock"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type Customer struct {
	ID                 string    `json:"id"`
	ExternalIdentityID string    `json:"externalIdentityId"`
	Email              string    `json:"email"`
	FirstName          string    `json:"firstName,omitempty"`
	LastName           string    `json:"lastName,omitempty"`
	Roles              []string  `json:"roles"`
	CreatedAt          time.Time `json:"createdAt"`
	UpdatedAt          time.Time `json:"updatedAt"`
}

type OrderLine struct {
	ProductID  string `json:"productId"`
	Quantity   int64  `json:"quantity"`
	PriceCents int64  `json:"priceCents"`
}

type Order struct {
	ID         string      `json:"id"`
	CustomerID string      `json:"customerId"`
	Status     string      `json:"status"`
	TotalCents int64       `json:"totalCents"`
	Currency   string      `json:"currency"`
	Items      []OrderLine `json:"items"`
	CreatedAt  time.Time   `json:"createdAt"`
	UpdatedAt  time.Time   `json:"updatedAt"`
}

type CartItem struct {
	ProductID string   `json:"productId"`
	Quantity  int64    `json:"quantity"`
	Product   *Product `json:"product,omitempty"`
}

type Cart struct {
	ID         string     `json:"id"`
	CustomerID string     `json:"customerId"`
	Items      []CartItem `json:"items"`
}

type Category struct {
	ID          string `json:"id"`
	Slug        string `json:"slug"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// DecodeProduct validates an untyped payload and returns the typed product.
func DecodeProduct(payload map[string]interface{}) (*Product, error) {
	var p Product
	if err := ProductShape.Decode(payload, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func DecodeCustomer(payload map[string]interface{}) (*Customer, error) {
	var c Customer
	if err := CustomerShape.Decode(payload, &c); err != nil {
		return nil, err
	}
	return &c, nil
}

func DecodeOrder(payload map[string]interface{}) (*Order, error) {
	var o Order
	if err := OrderShape.Decode(payload, &o); err != nil {
		return nil, err
	}
	return &o, nil
}
