// internal/handlers/product.go
package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/brightcart/storefront/internal/services"
	"github.com/brightcart/storefront/internal/utils"
	"github.com/brightcart/storefront/pkg/schema"
)

type ProductHandler struct {
	productService *services.ProductService
	storageService *services.StorageService
}

func NewProductHandler(productService *services.ProductService, storageService *services.StorageService) *ProductHandler {
	return &ProductHandler{
		productService: productService,
		storageService: storageService,
	}
}

// GET /products
func (h *ProductHandler) GetProducts(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	listParams := services.ListProductsParams{
		PaginationParams: params,
	}

	if categoryIDStr := c.Query("categoryId"); categoryIDStr != "" {
		if categoryID, err := uuid.Parse(categoryIDStr); err == nil {
			listParams.CategoryID = &categoryID
		}
	}
	if inStockStr := c.Query("inStock"); inStockStr != "" {
		if inStock, err := strconv.ParseBool(inStockStr); err == nil {
			listParams.InStock = &inStock
		}
	}

	products, total, err := h.productService.List(&listParams)
	if err != nil {
		utils.FromError(c, err)
		return
	}

	utils.PaginatedResponse(c, products, params, total)
}

// GET /products/:slug
func (h *ProductHandler) GetProduct(c *gin.Context) {
	slug := c.Param("slug")

	product, err := h.productService.FindBySlug(slug)
	if err != nil {
		utils.FromError(c, err)
		return
	}
	if product == nil {
		utils.NotFoundResponse(c, "Product")
		return
	}

	utils.SuccessResponse(c, product)
}

// POST /products
func (h *ProductHandler) CreateProduct(c *gin.Context) {
	var req services.CreateProductRequest
	if !bindShape(c, schema.ProductShape, &req) {
		return
	}

	product, err := h.productService.Create(&req)
	if err != nil {
		utils.FromError(c, err)
		return
	}

	utils.CreatedResponse(c, product)
}

// PUT /products/:id
func (h *ProductHandler) UpdateProduct(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid product ID", nil)
		return
	}

	var req services.UpdateProductRequest
	if !bindShapePartial(c, schema.ProductShape, &req) {
		return
	}

	product, err := h.productService.Update(id, &req)
	if err != nil {
		utils.FromError(c, err)
		return
	}

	utils.SuccessResponse(c, product)
}

// POST /products/:id/image
func (h *ProductHandler) UploadProductImage(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid product ID", nil)
		return
	}

	file, header, err := c.Request.FormFile("image")
	if err != nil {
		utils.BadRequestResponse(c, "Image file is required", nil)
		return
	}
	defer file.Close()

	result, err := h.storageService.UploadProductImage(file, header)
	if err != nil {
		utils.FromError(c, err)
		return
	}

	product, err := h.productService.SetImageURL(id, result.URL)
	if err != nil {
		utils.FromError(c, err)
		return
	}

	utils.SuccessResponse(c, product)
}

// GET /categories
func (h *ProductHandler) GetCategories(c *gin.Context) {
	categories, err := h.productService.ListCategories()
	if err != nil {
		utils.FromError(c, err)
		return
	}

	utils.SuccessResponse(c, categories)
}
