// internal/handlers/payment.go
package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/brightcart/storefront/internal/services"
	"github.com/brightcart/storefront/internal/utils"
	"github.com/brightcart/storefront/pkg/authz"
)

type PaymentHandler struct {
	paymentService  *services.PaymentService
	orderService    *services.OrderService
	customerService *services.CustomerService
}

func NewPaymentHandler(paymentService *services.PaymentService, orderService *services.OrderService, customerService *services.CustomerService) *PaymentHandler {
	return &PaymentHandler{
		paymentService:  paymentService,
		orderService:    orderService,
		customerService: customerService,
	}
}

func (h *PaymentHandler) authorizeOrderAccess(c *gin.Context, orderID uuid.UUID) bool {
	order, err := h.orderService.FindByID(orderID)
	if err != nil {
		utils.FromError(c, err)
		return false
	}

	if authz.HasRole(utils.GetRolesFromContext(c), authz.RoleSupport, authz.RoleAdmin) {
		return true
	}

	customer, err := currentCustomer(c, h.customerService)
	if err != nil {
		utils.FromError(c, err)
		return false
	}
	if customer == nil || order.CustomerID != customer.ID {
		utils.ForbiddenResponse(c, "")
		return false
	}
	return true
}

// POST /payments/intent
func (h *PaymentHandler) CreatePaymentIntent(c *gin.Context) {
	var req services.CreatePaymentIntentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body", err.Error())
		return
	}

	if !h.authorizeOrderAccess(c, req.OrderID) {
		return
	}

	intent, err := h.paymentService.CreatePaymentIntent(&req)
	if err != nil {
		utils.FromError(c, err)
		return
	}

	utils.CreatedResponse(c, intent)
}

// POST /payments/confirm
func (h *PaymentHandler) ConfirmPayment(c *gin.Context) {
	var req services.ConfirmPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body", err.Error())
		return
	}

	if !h.authorizeOrderAccess(c, req.OrderID) {
		return
	}

	order, err := h.paymentService.ConfirmPayment(&req)
	if err != nil {
		utils.FromError(c, err)
		return
	}

	utils.SuccessResponse(c, order)
}
