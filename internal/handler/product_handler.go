package handler

import (
	"net/http"

	"umkm-invoice/internal/service"
	"umkm-invoice/pkg/pagination"
	"umkm-invoice/pkg/response"

	"github.com/gin-gonic/gin"
)

type ProductHandler struct {
	productService service.ProductService
}

func NewProductHandler(productService service.ProductService) *ProductHandler {
	return &ProductHandler{productService: productService}
}

func (h *ProductHandler) RegisterRoutes(router *gin.RouterGroup) {
	products := router.Group("/products")
	{
		products.GET("", h.ListProducts)
		products.POST("", h.CreateProduct)
		products.GET("/stats", h.GetProductStats)
		products.GET("/:id", h.GetProduct)
		products.PUT("/:id", h.UpdateProduct)
		products.DELETE("/:id", h.DeleteProduct)
	}
}

// ListProducts returns the catalog
// @Summary      List products
// @Tags         products
// @Produce      json
// @Param        page     query     int     false  "Page number (default: 1)"
// @Param        limit    query     int     false  "Items per page (default: 20, max: 100)"
// @Param        search   query     string  false  "Case-insensitive name filter"
// @Param        sort_by  query     string  false  "name, price or created_at (default)"
// @Param        order    query     string  false  "asc or desc (default: desc)"
// @Success      200      {object}  response.Response
// @Router       /api/products [get]
func (h *ProductHandler) ListProducts(c *gin.Context) {
	var query service.ProductListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		badRequest(c, "Invalid query: "+err.Error())
		return
	}
	p := pagination.Parse(c)
	query.Page, query.Limit = p.Page, p.Limit

	products, total, err := h.productService.ListProducts(c.Request.Context(), query)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.SuccessWithPagination(http.StatusOK, products, p.Page, p.Limit, total))
}

// CreateProduct adds a product to the catalog
// @Summary      Create product
// @Description  A name matching an existing product (case-insensitive) returns 409 with that product in data.
// @Tags         products
// @Accept       json
// @Produce      json
// @Param        payload  body  service.CreateProductRequest  true  "Product payload"
// @Success      201  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Failure      409  {object}  response.Response
// @Router       /api/products [post]
func (h *ProductHandler) CreateProduct(c *gin.Context) {
	var req service.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request payload: "+err.Error())
		return
	}

	res, err := h.productService.CreateProduct(c.Request.Context(), req)
	writeResult(c, http.StatusCreated, res, err)
}

// GetProductStats returns price statistics for the catalog
// @Summary      Product statistics
// @Tags         products
// @Produce      json
// @Success      200  {object}  response.Response
// @Router       /api/products/stats [get]
func (h *ProductHandler) GetProductStats(c *gin.Context) {
	stats, err := h.productService.GetProductStats(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, stats))
}

// GetProduct returns one product
// @Summary      Get product
// @Tags         products
// @Produce      json
// @Param        id  path  int  true  "Product ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /api/products/{id} [get]
func (h *ProductHandler) GetProduct(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	res, err := h.productService.GetProduct(c.Request.Context(), id)
	writeResult(c, http.StatusOK, res, err)
}

// UpdateProduct changes the fields present in the payload
// @Summary      Update product
// @Tags         products
// @Accept       json
// @Produce      json
// @Param        id       path  int                           true  "Product ID"
// @Param        payload  body  service.UpdateProductRequest  true  "Fields to change"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Failure      409  {object}  response.Response
// @Router       /api/products/{id} [put]
func (h *ProductHandler) UpdateProduct(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req service.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request payload: "+err.Error())
		return
	}

	res, err := h.productService.UpdateProduct(c.Request.Context(), id, req)
	writeResult(c, http.StatusOK, res, err)
}

// DeleteProduct removes a product no invoice line refers to
// @Summary      Delete product
// @Tags         products
// @Produce      json
// @Param        id  path  int  true  "Product ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Failure      409  {object}  response.Response  "Product name appears on invoice lines"
// @Router       /api/products/{id} [delete]
func (h *ProductHandler) DeleteProduct(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	res, err := h.productService.DeleteProduct(c.Request.Context(), id)
	writeResult(c, http.StatusOK, res, err)
}
