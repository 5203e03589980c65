// internal/services/order_service.go
package services

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/brightcart/storefront/internal/apperrors"
	"github.com/brightcart/storefront/internal/models"
	"github.com/brightcart/storefront/internal/utils"
)

type OrderService struct {
	db            *gorm.DB
	notifications *NotificationService
}

func NewOrderService(db *gorm.DB, notifications *NotificationService) *OrderService {
	return &OrderService{db: db, notifications: notifications}
}

type OrderLineInput struct {
	ProductID uuid.UUID `json:"productId" validate:"required"`
	Quantity  int64     `json:"quantity" validate:"required,min=1"`
	// PriceCents overrides the product's current price when set; otherwise
	// the price is snapshotted from the catalog at order time.
	PriceCents *int64 `json:"priceCents,omitempty" validate:"omitempty,gte=0"`
}

type CreateOrderRequest struct {
	CustomerID uuid.UUID        `json:"customerId" validate:"required"`
	Status     string           `json:"status,omitempty"`
	Currency   string           `json:"currency,omitempty" validate:"omitempty,len=3"`
	TotalCents *int64           `json:"totalCents,omitempty" validate:"omitempty,gte=0"`
	Items      []OrderLineInput `json:"items,omitempty" validate:"omitempty,dive"`
	FromCart   bool             `json:"fromCart,omitempty"`
}

type ListOrdersParams struct {
	utils.PaginationParams
	CustomerID *uuid.UUID
	Status     *models.OrderStatus
}

var orderSortFields = []string{"created_at", "updated_at", "status", "total_cents"}

// Create places an order either from explicit line items or from the
// customer's cart. Line resolution, total computation, the order insert and
// the cart drain all commit atomically.
func (s *OrderService) Create(req *CreateOrderRequest) (*models.Order, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, utils.ValidationErrorFrom(err)
	}

	status := models.OrderStatusPending
	if req.Status != "" {
		parsed, ok := models.ParseOrderStatus(req.Status)
		if !ok {
			return nil, apperrors.NewValidation("status must be one of %v", models.AllOrderStatuses)
		}
		status = parsed
	}

	if !req.FromCart && len(req.Items) == 0 {
		return nil, apperrors.NewValidation("items are required when not ordering from cart")
	}

	currency := req.Currency
	if currency == "" {
		currency = "USD"
	}

	var order *models.Order
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var customer models.Customer
		if err := tx.First(&customer, "id = ?", req.CustomerID).Error; err != nil {
			if isNotFound(err) {
				return apperrors.NewValidation("customer %s does not exist", req.CustomerID)
			}
			return fmt.Errorf("database error: %w", err)
		}

		lines, cart, err := s.resolveLines(tx, req)
		if err != nil {
			return err
		}

		computed := (&models.Order{Items: lines}).CalculateTotal()
		if err := verifySuppliedTotal(computed, req.TotalCents); err != nil {
			return err
		}

		order = &models.Order{
			CustomerID: req.CustomerID,
			Status:     status,
			Currency:   currency,
			TotalCents: computed,
			Items:      lines,
		}
		if err := tx.Create(order).Error; err != nil {
			return fmt.Errorf("failed to create order: %w", err)
		}

		if cart != nil {
			if err := tx.Where("cart_id = ?", cart.ID).Delete(&models.CartItem{}).Error; err != nil {
				return fmt.Errorf("failed to clear cart: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.notifyAsync(order)
	return order, nil
}

// resolveLines builds the order's line items with prices snapshotted at order
// time. When sourcing from the cart it also returns the cart so the caller can
// drain it inside the same transaction.
func (s *OrderService) resolveLines(tx *gorm.DB, req *CreateOrderRequest) ([]models.OrderLine, *models.Cart, error) {
	if req.FromCart {
		var cart models.Cart
		err := tx.Preload("Items").Where("customer_id = ?", req.CustomerID).First(&cart).Error
		if err != nil && !isNotFound(err) {
			return nil, nil, fmt.Errorf("database error: %w", err)
		}
		if isNotFound(err) || len(cart.Items) == 0 {
			return nil, nil, apperrors.NewValidation("cart is empty")
		}

		lines := make([]models.OrderLine, 0, len(cart.Items))
		for _, item := range cart.Items {
			product, err := s.sellableProduct(tx, item.ProductID)
			if err != nil {
				return nil, nil, err
			}
			lines = append(lines, models.OrderLine{
				ProductID:  product.ID,
				Quantity:   item.Quantity,
				PriceCents: product.PriceCents,
			})
		}
		return lines, &cart, nil
	}

	lines := make([]models.OrderLine, 0, len(req.Items))
	for _, input := range req.Items {
		product, err := s.sellableProduct(tx, input.ProductID)
		if err != nil {
			return nil, nil, err
		}
		price := product.PriceCents
		if input.PriceCents != nil {
			price = *input.PriceCents
		}
		lines = append(lines, models.OrderLine{
			ProductID:  product.ID,
			Quantity:   input.Quantity,
			PriceCents: price,
		})
	}
	return lines, nil, nil
}

// verifySuppliedTotal rejects a client-supplied total that disagrees with the
// computed one instead of silently correcting it.
func verifySuppliedTotal(computed int64, supplied *int64) error {
	if supplied != nil && *supplied != computed {
		return apperrors.NewValidation(
			"totalCents %d does not match computed total %d", *supplied, computed)
	}
	return nil
}

func (s *OrderService) sellableProduct(tx *gorm.DB, productID uuid.UUID) (*models.Product, error) {
	var product models.Product
	if err := tx.First(&product, "id = ?", productID).Error; err != nil {
		if isNotFound(err) {
			return nil, apperrors.NewValidation("product %s does not exist", productID)
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	if !product.InStock {
		return nil, apperrors.NewValidation("product %s is out of stock", product.Slug)
	}
	return &product, nil
}

func (s *OrderService) FindByID(id uuid.UUID) (*models.Order, error) {
	var order models.Order
	err := s.db.Preload("Items").Preload("Items.Product").First(&order, "id = ?", id).Error
	if err != nil {
		if isNotFound(err) {
			return nil, &apperrors.NotFoundError{Resource: "order"}
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &order, nil
}

// FindByCustomer returns the customer's orders, most recent first.
func (s *OrderService) FindByCustomer(customerID uuid.UUID) ([]models.Order, error) {
	var orders []models.Order
	err := s.customerOrdersQuery(customerID).Preload("Items").Find(&orders).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	return orders, nil
}

// customerOrdersQuery scopes orders to one customer, newest first. The
// ordering is part of the listing contract.
func (s *OrderService) customerOrdersQuery(customerID uuid.UUID) *gorm.DB {
	return s.db.Where("customer_id = ?", customerID).Order("created_at DESC")
}

func (s *OrderService) List(params *ListOrdersParams) ([]models.Order, int64, error) {
	query := s.db.Model(&models.Order{})
	if params.CustomerID != nil {
		query = query.Where("customer_id = ?", *params.CustomerID)
	}
	if params.Status != nil {
		query = query.Where("status = ?", *params.Status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count orders: %w", err)
	}

	var orders []models.Order
	query = utils.ApplySort(query, params.PaginationParams, orderSortFields)
	query = utils.ApplyPagination(query, params.PaginationParams)
	if err := query.Preload("Items").Find(&orders).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list orders: %w", err)
	}

	return orders, total, nil
}

// UpdateStatus advances an order through its lifecycle. Steps outside the
// allowed transition table are rejected without touching the record.
func (s *OrderService) UpdateStatus(id uuid.UUID, status string) (*models.Order, error) {
	next, ok := models.ParseOrderStatus(status)
	if !ok {
		return nil, apperrors.NewValidation("status must be one of %v", models.AllOrderStatuses)
	}

	order, err := s.FindByID(id)
	if err != nil {
		return nil, err
	}

	from := order.Status
	if !order.ApplyStatus(next) {
		return nil, &apperrors.InvalidTransitionError{
			From: string(from),
			To:   string(next),
		}
	}

	res := s.transitionUpdate(order, from)
	if res.Error != nil {
		return nil, fmt.Errorf("failed to update order status: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		// Lost to a concurrent transition; report against the status that
		// actually won.
		current, cerr := s.FindByID(id)
		if cerr != nil {
			return nil, cerr
		}
		return nil, &apperrors.InvalidTransitionError{
			From: string(current.Status),
			To:   string(next),
		}
	}

	s.notifyAsync(order)
	return order, nil
}

// transitionUpdate persists a status change only if the stored row still holds
// the status the transition was computed from. A row changed underneath us
// leaves RowsAffected at zero instead of being overwritten.
func (s *OrderService) transitionUpdate(order *models.Order, from models.OrderStatus) *gorm.DB {
	return s.db.Model(&models.Order{}).
		Where("id = ? AND status = ?", order.ID, from).
		Updates(map[string]interface{}{
			"status":     order.Status,
			"updated_at": order.UpdatedAt,
		})
}

func (s *OrderService) notifyAsync(order *models.Order) {
	if s.notifications == nil {
		return
	}
	go func(o models.Order) {
		if err := s.notifications.SendOrderStatus(&o); err != nil {
			logrus.WithError(err).WithField("order_id", o.ID).
				Warn("Failed to send order notification")
		}
	}(*order)
}
