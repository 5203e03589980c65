// internal/handlers/cart.go
package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/brightcart/storefront/internal/services"
	"github.com/brightcart/storefront/internal/utils"
	"github.com/brightcart/storefront/pkg/schema"
)

type CartHandler struct {
	cartService     *services.CartService
	customerService *services.CustomerService
}

func NewCartHandler(cartService *services.CartService, customerService *services.CustomerService) *CartHandler {
	return &CartHandler{
		cartService:     cartService,
		customerService: customerService,
	}
}

type addCartItemRequest struct {
	ProductID uuid.UUID `json:"productId"`
	Quantity  int64     `json:"quantity"`
}

// GET /cart
func (h *CartHandler) GetCart(c *gin.Context) {
	customer, err := currentCustomer(c, h.customerService)
	if err != nil {
		utils.FromError(c, err)
		return
	}
	if customer == nil {
		utils.NotFoundResponse(c, "Customer")
		return
	}

	cart, err := h.cartService.GetOrCreate(customer.ID)
	if err != nil {
		utils.FromError(c, err)
		return
	}

	utils.SuccessResponse(c, cart)
}

// POST /cart/items
func (h *CartHandler) AddItem(c *gin.Context) {
	customer, err := currentCustomer(c, h.customerService)
	if err != nil {
		utils.FromError(c, err)
		return
	}
	if customer == nil {
		utils.NotFoundResponse(c, "Customer")
		return
	}

	var req addCartItemRequest
	if !bindShape(c, schema.CartItemShape, &req) {
		return
	}

	cart, err := h.cartService.GetOrCreate(customer.ID)
	if err != nil {
		utils.FromError(c, err)
		return
	}

	item, err := h.cartService.AddItem(cart.ID, req.ProductID, req.Quantity)
	if err != nil {
		utils.FromError(c, err)
		return
	}

	utils.CreatedResponse(c, item)
}

// DELETE /cart
func (h *CartHandler) ClearCart(c *gin.Context) {
	customer, err := currentCustomer(c, h.customerService)
	if err != nil {
		utils.FromError(c, err)
		return
	}
	if customer == nil {
		utils.NotFoundResponse(c, "Customer")
		return
	}

	cart, err := h.cartService.GetOrCreate(customer.ID)
	if err != nil {
		utils.FromError(c, err)
		return
	}

	if err := h.cartService.Clear(cart.ID); err != nil {
		utils.FromError(c, err)
		return
	}

	cart, err = h.cartService.GetOrCreate(customer.ID)
	if err != nil {
		utils.FromError(c, err)
		return
	}

	utils.SuccessResponse(c, cart)
}

// DELETE /cart/items/:productId
func (h *CartHandler) RemoveItem(c *gin.Context) {
	customer, err := currentCustomer(c, h.customerService)
	if err != nil {
		utils.FromError(c, err)
		return
	}
	if customer == nil {
		utils.NotFoundResponse(c, "Customer")
		return
	}

	productID, err := uuid.Parse(c.Param("productId"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid product ID", nil)
		return
	}

	cart, err := h.cartService.GetOrCreate(customer.ID)
	if err != nil {
		utils.FromError(c, err)
		return
	}

	if err := h.cartService.RemoveItem(cart.ID, productID); err != nil {
		utils.FromError(c, err)
		return
	}

	cart, err = h.cartService.GetOrCreate(customer.ID)
	if err != nil {
		utils.FromError(c, err)
		return
	}

	utils.SuccessResponse(c, cart)
}
