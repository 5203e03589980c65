// pkg/apiclient/resources.go
package apiclient

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/brightcart/storefront/pkg/schema"
)

type ListProductsOptions struct {
	Page       int
	Limit      int
	CategoryID string
	InStock    *bool
}

func (o ListProductsOptions) query() url.Values {
	q := url.Values{}
	if o.Page > 0 {
		q.Set("page", strconv.Itoa(o.Page))
	}
	if o.Limit > 0 {
		q.Set("limit", strconv.Itoa(o.Limit))
	}
	if o.CategoryID != "" {
		q.Set("categoryId", o.CategoryID)
	}
	if o.InStock != nil {
		q.Set("inStock", strconv.FormatBool(*o.InStock))
	}
	return q
}

func (c *Client) ListProducts(ctx context.Context, opts ListProductsOptions) ([]schema.Product, *Pagination, error) {
	env, err := c.do(ctx, http.MethodGet, "/products", opts.query(), nil)
	if err != nil {
		return nil, nil, err
	}

	products, err := decodeProductList(env.Data)
	if err != nil {
		return nil, nil, err
	}
	return products, env.Pagination, nil
}

// GetProduct fetches a product by slug. An unknown slug returns (nil, nil).
func (c *Client) GetProduct(ctx context.Context, slug string) (*schema.Product, error) {
	env, err := c.do(ctx, http.MethodGet, "/products/"+url.PathEscape(slug), nil, nil)
	if err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return decodeProduct(env.Data)
}

// CreateProduct validates the payload against the product shape before it
// leaves the process, so malformed writes fail without a round trip.
func (c *Client) CreateProduct(ctx context.Context, payload map[string]interface{}) (*schema.Product, error) {
	cleaned, err := schema.ProductShape.Apply(payload)
	if err != nil {
		return nil, err
	}

	env, err := c.do(ctx, http.MethodPost, "/products", nil, cleaned)
	if err != nil {
		return nil, err
	}
	return decodeProduct(env.Data)
}

func (c *Client) ListCategories(ctx context.Context) ([]schema.Category, error) {
	env, err := c.do(ctx, http.MethodGet, "/categories", nil, nil)
	if err != nil {
		return nil, err
	}

	var categories []schema.Category
	if err := json.Unmarshal(env.Data, &categories); err != nil {
		return nil, fmt.Errorf("apiclient: decode categories: %w", err)
	}
	return categories, nil
}

func (c *Client) GetCurrentCustomer(ctx context.Context) (*schema.Customer, error) {
	env, err := c.do(ctx, http.MethodGet, "/customers/me", nil, nil)
	if err != nil {
		return nil, err
	}
	return decodeCustomer(env.Data)
}

func (c *Client) GetCustomer(ctx context.Context, id string) (*schema.Customer, error) {
	env, err := c.do(ctx, http.MethodGet, "/customers/"+url.PathEscape(id), nil, nil)
	if err != nil {
		return nil, err
	}
	return decodeCustomer(env.Data)
}

func (c *Client) GetCart(ctx context.Context) (*schema.Cart, error) {
	env, err := c.do(ctx, http.MethodGet, "/cart", nil, nil)
	if err != nil {
		return nil, err
	}

	var cart schema.Cart
	if err := json.Unmarshal(env.Data, &cart); err != nil {
		return nil, fmt.Errorf("apiclient: decode cart: %w", err)
	}
	return &cart, nil
}

// AddCartItem sets the quantity of a product in the cart. The payload is
// checked against the cart item shape before sending.
func (c *Client) AddCartItem(ctx context.Context, productID string, quantity int64) (*schema.CartItem, error) {
	payload, err := schema.CartItemShape.Apply(map[string]interface{}{
		"productId": productID,
		"quantity":  quantity,
	})
	if err != nil {
		return nil, err
	}

	env, err := c.do(ctx, http.MethodPost, "/cart/items", nil, payload)
	if err != nil {
		return nil, err
	}

	var item schema.CartItem
	if err := json.Unmarshal(env.Data, &item); err != nil {
		return nil, fmt.Errorf("apiclient: decode cart item: %w", err)
	}
	return &item, nil
}

func (c *Client) RemoveCartItem(ctx context.Context, productID string) (*schema.Cart, error) {
	env, err := c.do(ctx, http.MethodDelete, "/cart/items/"+url.PathEscape(productID), nil, nil)
	if err != nil {
		return nil, err
	}

	var cart schema.Cart
	if err := json.Unmarshal(env.Data, &cart); err != nil {
		return nil, fmt.Errorf("apiclient: decode cart: %w", err)
	}
	return &cart, nil
}

// CreateOrder places an order. The request is a POST and is never retried;
// callers that need to recover from a transport error must re-issue it
// deliberately.
func (c *Client) CreateOrder(ctx context.Context, payload map[string]interface{}) (*schema.Order, error) {
	cleaned, err := schema.OrderShape.Apply(payload)
	if err != nil {
		return nil, err
	}

	env, err := c.do(ctx, http.MethodPost, "/orders", nil, cleaned)
	if err != nil {
		return nil, err
	}
	return decodeOrder(env.Data)
}

func (c *Client) GetOrder(ctx context.Context, id string) (*schema.Order, error) {
	env, err := c.do(ctx, http.MethodGet, "/orders/"+url.PathEscape(id), nil, nil)
	if err != nil {
		return nil, err
	}
	return decodeOrder(env.Data)
}

func (c *Client) ListOrders(ctx context.Context) ([]schema.Order, error) {
	env, err := c.do(ctx, http.MethodGet, "/orders", nil, nil)
	if err != nil {
		return nil, err
	}
	return decodeOrderList(env.Data)
}

// UpdateOrderStatus is a PUT and therefore safe to retry: applying the same
// transition twice is rejected by the server, not repeated.
func (c *Client) UpdateOrderStatus(ctx context.Context, id, status string) (*schema.Order, error) {
	body := map[string]interface{}{"status": status}
	env, err := c.do(ctx, http.MethodPut, "/orders/"+url.PathEscape(id)+"/status", nil, body)
	if err != nil {
		return nil, err
	}
	return decodeOrder(env.Data)
}

func (c *Client) CancelOrder(ctx context.Context, id string) (*schema.Order, error) {
	env, err := c.do(ctx, http.MethodPost, "/orders/"+url.PathEscape(id)+"/cancel", nil, nil)
	if err != nil {
		return nil, err
	}
	return decodeOrder(env.Data)
}

// Decode helpers. Single entities run through their schema shape so a
// misbehaving server is caught at the boundary.

func decodeProduct(raw json.RawMessage) (*schema.Product, error) {
	payload, err := rawToMap(raw)
	if err != nil {
		return nil, err
	}
	return schema.DecodeProduct(payload)
}

func decodeCustomer(raw json.RawMessage) (*schema.Customer, error) {
	payload, err := rawToMap(raw)
	if err != nil {
		return nil, err
	}
	return schema.DecodeCustomer(payload)
}

func decodeOrder(raw json.RawMessage) (*schema.Order, error) {
	payload, err := rawToMap(raw)
	if err != nil {
		return nil, err
	}
	return schema.DecodeOrder(payload)
}

func decodeProductList(raw json.RawMessage) ([]schema.Product, error) {
	maps, err := rawToMaps(raw)
	if err != nil {
		return nil, err
	}
	products := make([]schema.Product, 0, len(maps))
	for _, m := range maps {
		p, err := schema.DecodeProduct(m)
		if err != nil {
			return nil, err
		}
		products = append(products, *p)
	}
	return products, nil
}

func decodeOrderList(raw json.RawMessage) ([]schema.Order, error) {
	maps, err := rawToMaps(raw)
	if err != nil {
		return nil, err
	}
	orders := make([]schema.Order, 0, len(maps))
	for _, m := range maps {
		o, err := schema.DecodeOrder(m)
		if err != nil {
			return nil, err
		}
		orders = append(orders, *o)
	}
	return orders, nil
}

func rawToMap(raw json.RawMessage) (map[string]interface{}, error) {
	var m map[string]interface{}
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, fmt.Errorf("apiclient: decode entity: %w", err)
	}
	return m, nil
}

func rawToMaps(raw json.RawMessage) ([]map[string]interface{}, error) {
	var ms []map[string]interface{}
	if err := json.Unmarshal(raw, &ms); err != nil {
		return nil, fmt.Errorf("apiclient: decode entity list: %w", err)
	}
	return ms, nil
}
