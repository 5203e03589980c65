// internal/handlers/customer.go
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

type CustomerHandler struct {
	customerService *services.CustomerService
}

func NewCustomerHandler(customerService *services.CustomerService) *CustomerHandler {
	return &CustomerHandler{customerService: customerService}
}

// currentCustomer resolves the authenticated identity into its customer
// record. A valid token whose identity was never provisioned yields nil.
func currentCustomer(c *gin.Context, customers *services.CustomerService) (*models.Customer, error) {
	externalID, ok := utils.GetExternalIDFromContext(c)
	if !ok {
		return nil, nil
	}
	return customers.FindByExternalID(externalID)
}

// canReadCustomer allows a customer to read its own record, and the staff
// roles to read any record.
func canReadCustomer(roles []authz.Role, self *models.Customer, targetID uuid.UUID) bool {
	if authz.HasRole(roles, authz.RoleSupport, authz.RoleAdmin) {
		return true
	}
	return self != nil && self.ID == targetID
}

// canModifyCustomer is stricter than canReadCustomer: support may look at any
// record, but only the customer itself or an administrator may change one.
func canModifyCustomer(roles []authz.Role, self *models.Customer, targetID uuid.UUID) bool {
	if authz.HasRole(roles, authz.RoleAdmin) {
		return true
	}
	return self != nil && self.ID == targetID
}

// GET /customers/me
func (h *CustomerHandler) GetCurrentCustomer(c *gin.Context) {
	customer, err := currentCustomer(c, h.customerService)
	if err != nil {
		utils.FromError(c, err)
		return
	}
	if customer == nil {
		utils.NotFoundResponse(c, "Customer")
		return
	}

	utils.SuccessResponse(c, customer)
}

// GET /customers/:id
func (h *CustomerHandler) GetCustomer(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid customer ID", nil)
		return
	}

	self, err := currentCustomer(c, h.customerService)
	if err != nil {
		utils.FromError(c, err)
		return
	}
	if !canReadCustomer(utils.GetRolesFromContext(c), self, id) {
		utils.ForbiddenResponse(c, "")
		return
	}

	customer, err := h.customerService.FindByID(id)
	if err != nil {
		utils.FromError(c, err)
		return
	}

	utils.SuccessResponse(c, customer)
}

// POST /customers
func (h *CustomerHandler) CreateCustomer(c *gin.Context) {
	var req services.CreateCustomerRequest
	if !bindShape(c, schema.CustomerShape, &req) {
		return
	}

	customer, err := h.customerService.Create(&req)
	if err != nil {
		utils.FromError(c, err)
		return
	}

	utils.CreatedResponse(c, customer)
}

// PUT /customers/:id
func (h *CustomerHandler) UpdateCustomer(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid customer ID", nil)
		return
	}

	self, err := currentCustomer(c, h.customerService)
	if err != nil {
		utils.FromError(c, err)
		return
	}
	if !canModifyCustomer(utils.GetRolesFromContext(c), self, id) {
		utils.ForbiddenResponse(c, "")
		return
	}

	var req services.UpdateCustomerRequest
	if !bindShapePartial(c, schema.CustomerShape, &req) {
		return
	}

	// Role grants are reserved for administrators.
	if len(req.Roles) > 0 && !authz.HasRole(utils.GetRolesFromContext(c), authz.RoleAdmin) {
		utils.ForbiddenResponse(c, "Only administrators may change roles")
		return
	}

	customer, err := h.customerService.Update(id, &req)
	if err != nil {
		utils.FromError(c, err)
		return
	}

	utils.SuccessResponse(c, customer)
}
