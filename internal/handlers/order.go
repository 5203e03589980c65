// internal/handlers/order.go
package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/brightcart/storefront/internal/models"
	"github.com/brightcart/storefront/internal/services"
	"github.com/brightcart/storefront/internal/utils"
	"github.com/brightcart/storefront/pkg/authz"
	"github.com/brightcart/storefront/pkg/schema"
)

type OrderHandler struct {
	orderService    *services.OrderService
	customerService *services.CustomerService
}

func NewOrderHandler(orderService *services.OrderService, customerService *services.CustomerService) *OrderHandler {
	return &OrderHandler{
		orderService:    orderService,
		customerService: customerService,
	}
}

type updateOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// POST /orders
func (h *OrderHandler) CreateOrder(c *gin.Context) {
	customer, err := currentCustomer(c, h.customerService)
	if err != nil {
		utils.FromError(c, err)
		return
	}
	if customer == nil {
		utils.NotFoundResponse(c, "Customer")
		return
	}

	payload, ok := bindPayload(c)
	if !ok {
		return
	}
	// An omitted customerId means the caller is ordering for itself.
	if _, present := payload["customerId"]; !present {
		payload["customerId"] = customer.ID.String()
	}
	cleaned, err := schema.OrderShape.Apply(payload)
	if err != nil {
		utils.FromError(c, err)
		return
	}

	var req services.CreateOrderRequest
	if !bindCleaned(c, cleaned, &req) {
		return
	}

	// Customers place orders for themselves; staff may order on behalf of
	// any customer.
	staff := authz.HasRole(utils.GetRolesFromContext(c), authz.RoleSupport, authz.RoleAdmin)
	if req.CustomerID != customer.ID && !staff {
		utils.ForbiddenResponse(c, "Cannot place orders for another customer")
		return
	}

	order, err := h.orderService.Create(&req)
	if err != nil {
		utils.FromError(c, err)
		return
	}

	utils.CreatedResponse(c, order)
}

// GET /orders
func (h *OrderHandler) GetOrders(c *gin.Context) {
	customer, err := currentCustomer(c, h.customerService)
	if err != nil {
		utils.FromError(c, err)
		return
	}

	staff := authz.HasRole(utils.GetRolesFromContext(c), authz.RoleSupport, authz.RoleAdmin)
	if staff {
		params := utils.GetPaginationParams(c)
		listParams := services.ListOrdersParams{PaginationParams: params}
		if customerIDStr := c.Query("customerId"); customerIDStr != "" {
			if customerID, err := uuid.Parse(customerIDStr); err == nil {
				listParams.CustomerID = &customerID
			}
		}
		if statusStr := c.Query("status"); statusStr != "" {
			if status, ok := models.ParseOrderStatus(statusStr); ok {
				listParams.Status = &status
			}
		}

		orders, total, err := h.orderService.List(&listParams)
		if err != nil {
			utils.FromError(c, err)
			return
		}
		utils.PaginatedResponse(c, orders, params, total)
		return
	}

	if customer == nil {
		utils.NotFoundResponse(c, "Customer")
		return
	}

	orders, err := h.orderService.FindByCustomer(customer.ID)
	if err != nil {
		utils.FromError(c, err)
		return
	}

	utils.SuccessResponse(c, orders)
}

// GET /orders/:id
func (h *OrderHandler) GetOrder(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid order ID", nil)
		return
	}

	order, err := h.orderService.FindByID(id)
	if err != nil {
		utils.FromError(c, err)
		return
	}

	customer, err := currentCustomer(c, h.customerService)
	if err != nil {
		utils.FromError(c, err)
		return
	}

	staff := authz.HasRole(utils.GetRolesFromContext(c), authz.RoleSupport, authz.RoleAdmin)
	if !staff && (customer == nil || order.CustomerID != customer.ID) {
		utils.ForbiddenResponse(c, "")
		return
	}

	utils.SuccessResponse(c, order)
}

// PUT /orders/:id/status
func (h *OrderHandler) UpdateOrderStatus(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid order ID", nil)
		return
	}

	var req updateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body", err.Error())
		return
	}

	order, err := h.orderService.UpdateStatus(id, req.Status)
	if err != nil {
		utils.FromError(c, err)
		return
	}

	utils.SuccessResponse(c, order)
}

// POST /orders/:id/cancel
func (h *OrderHandler) CancelOrder(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid order ID", nil)
		return
	}

	order, err := h.orderService.FindByID(id)
	if err != nil {
		utils.FromError(c, err)
		return
	}

	customer, err := currentCustomer(c, h.customerService)
	if err != nil {
		utils.FromError(c, err)
		return
	}

	staff := authz.HasRole(utils.GetRolesFromContext(c), authz.RoleSupport, authz.RoleAdmin)
	if !staff && (customer == nil || order.CustomerID != customer.ID) {
		utils.ForbiddenResponse(c, "")
		return
	}

	order, err = h.orderService.UpdateStatus(id, string(models.OrderStatusCancelled))
	if err != nil {
		utils.FromError(c, err)
		return
	}

	utils.SuccessResponse(c, order)
}
