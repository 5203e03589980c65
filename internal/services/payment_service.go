// internal/services/payment_service.go
package services

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/stripe/stripe-go/v74"
	"github.com/stripe/stripe-go/v74/paymentintent"
	"gorm.io/gorm"

	"github.com/brightcart/storefront/internal/apperrors"
	"github.com/brightcart/storefront/internal/config"
	"github.com/brightcart/storefront/internal/models"
	"github.com/brightcart/storefront/internal/utils"
)

type PaymentService struct {
	db     *gorm.DB
	config *config.Config
	orders *OrderService
}

type CreatePaymentIntentRequest struct {
	OrderID uuid.UUID `json:"orderId" validate:"required"`
}

type PaymentIntentResponse struct {
	ClientSecret string `json:"clientSecret"`
	PaymentID    string `json:"paymentId"`
	Status       string `json:"status"`
}

type ConfirmPaymentRequest struct {
	PaymentIntentID string    `json:"paymentIntentId" validate:"required"`
	OrderID         uuid.UUID `json:"orderId" validate:"required"`
}

func NewPaymentService(db *gorm.DB, config *config.Config, orders *OrderService) *PaymentService {
	stripe.Key = config.Payment.StripeSecretKey

	return &PaymentService{
		db:     db,
		config: config,
		orders: orders,
	}
}

// CreatePaymentIntent opens a Stripe payment for a pending order. The intent
// amount is always the stored order total; the client never supplies it.
func (s *PaymentService) CreatePaymentIntent(req *CreatePaymentIntentRequest) (*PaymentIntentResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, utils.ValidationErrorFrom(err)
	}

	order, err := s.orders.FindByID(req.OrderID)
	if err != nil {
		return nil, err
	}
	if order.Status != models.OrderStatusPending {
		return nil, apperrors.NewValidation("order %s is not awaiting payment", order.ID)
	}

	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(order.TotalCents),
		Currency: stripe.String(strings.ToLower(order.Currency)),
	}
	params.AddMetadata("order_id", order.ID.String())
	params.AddMetadata("customer_id", order.CustomerID.String())

	pi, err := paymentintent.New(params)
	if err != nil {
		return nil, fmt.Errorf("failed to create payment intent: %w", err)
	}

	return &PaymentIntentResponse{
		ClientSecret: pi.ClientSecret,
		PaymentID:    pi.ID,
		Status:       string(pi.Status),
	}, nil
}

// ConfirmPayment checks the intent with Stripe and, on success, moves the
// order from pending to confirmed through the regular status machinery.
func (s *PaymentService) ConfirmPayment(req *ConfirmPaymentRequest) (*models.Order, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, utils.ValidationErrorFrom(err)
	}

	pi, err := paymentintent.Get(req.PaymentIntentID, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to get payment intent: %w", err)
	}

	if pi.Metadata["order_id"] != req.OrderID.String() {
		return nil, apperrors.NewValidation("payment intent does not belong to order %s", req.OrderID)
	}

	switch pi.Status {
	case stripe.PaymentIntentStatusSucceeded:
		return s.orders.UpdateStatus(req.OrderID, string(models.OrderStatusConfirmed))
	case stripe.PaymentIntentStatusRequiresAction, stripe.PaymentIntentStatusRequiresConfirmation,
		stripe.PaymentIntentStatusRequiresPaymentMethod:
		return nil, apperrors.NewValidation("payment has not completed (status %s)", pi.Status)
	default:
		return nil, apperrors.NewValidation("payment cannot be applied (status %s)", pi.Status)
	}
}
