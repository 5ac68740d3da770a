package controllers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"sinar-terang/models"
	"sinar-terang/services"
	"sinar-terang/utils"
)

type ProductController struct {
	Products *services.ProductService
}

func NewProductController(products *services.ProductService) *ProductController {
	return &ProductController{Products: products}
}

// @Summary Get all products
// @Description Get paginated list of products with their member prices and harga grosir
// @Tags Products
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(10)
// @Param search query string false "Search by name or barcode"
// @Success 200 {object} models.HATEOASResponse
// @Router /api/products [get]
func (ctrl *ProductController) GetAllProducts(c *gin.Context) {
	page, limit := utils.GetPaginationParams(c, 10)

	result, err := ctrl.Products.List(c.Request.Context(), page, limit, c.Query("search"))
	if err != nil {
		respondError(c, "Failed to retrieve products", err)
		return
	}

	c.JSON(http.StatusOK, utils.PageResponse(c, "Products retrieved", result))
}

// @Summary Search products
// @Description Catalog lookup for the cashier by barcode, id or name
// @Tags Products
// @Produce json
// @Security BearerAuth
// @Param q query string true "Barcode, id or part of the name"
// @Success 200 {object} models.Response
// @Router /api/products/search [get]
func (ctrl *ProductController) SearchProducts(c *gin.Context) {
	products, err := ctrl.Products.Search(c.Request.Context(), c.Query("q"))
	if err != nil {
		respondError(c, "Failed to search products", err)
		return
	}

	c.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: "Products retrieved",
		Data:    products,
	})
}

// @Summary Get product by ID
// @Tags Products
// @Produce json
// @Security BearerAuth
// @Param id path int true "Product ID"
// @Success 200 {object} models.Response
// @Failure 404 {object} models.ErrorResponse
// @Router /api/products/{id} [get]
func (ctrl *ProductController) GetProductByID(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	product, err := ctrl.Products.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, "Failed to retrieve product", err)
		return
	}

	c.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: "Product retrieved",
		Data:    product,
	})
}

// @Summary Create product
// @Description Create a product with its member prices and harga grosir tiers
// @Tags Products
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param product body models.ProductRequest true "Product"
// @Success 201 {object} models.Response
// @Failure 400 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse
// @Failure 422 {object} models.ErrorResponse
// @Router /api/products [post]
func (ctrl *ProductController) CreateProduct(c *gin.Context) {
	var req models.ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	product, err := ctrl.Products.Create(c.Request.Context(), req)
	if err != nil {
		respondError(c, "Failed to create product", err)
		return
	}

	c.JSON(http.StatusCreated, models.Response{
		Success: true,
		Message: "Product created",
		Data:    product,
	})
}

// @Summary Update product
// @Description Replace a product definition, tiers included
// @Tags Products
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Product ID"
// @Param product body models.ProductRequest true "Product"
// @Success 200 {object} models.Response
// @Failure 404 {object} models.ErrorResponse
// @Failure 422 {object} models.ErrorResponse
// @Router /api/products/{id} [patch]
func (ctrl *ProductController) UpdateProduct(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var req models.ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	product, err := ctrl.Products.Update(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, "Failed to update product", err)
		return
	}

	c.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: "Product updated",
		Data:    product,
	})
}

// @Summary Delete product
// @Tags Products
// @Produce json
// @Security BearerAuth
// @Param id path int true "Product ID"
// @Success 200 {object} models.Response
// @Failure 404 {object} models.ErrorResponse
// @Router /api/products/{id} [delete]
func (ctrl *ProductController) DeleteProduct(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	if err := ctrl.Products.Delete(c.Request.Context(), id); err != nil {
		respondError(c, "Failed to delete product", err)
		return
	}

	c.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: "Product deleted",
	})
}

// @Summary Import products
// @Description Upsert products by barcode. Nothing is written when any row is rejected.
// @Tags Products
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param products body []models.ProductRequest true "Rows"
// @Success 200 {object} models.Response
// @Failure 400 {object} models.ErrorResponse
// @Failure 422 {object} models.ErrorResponse
// @Router /api/products/import [post]
func (ctrl *ProductController) ImportProducts(c *gin.Context) {
	var rows []models.ProductRequest
	if err := c.ShouldBindJSON(&rows); err != nil {
		respondBindError(c, err)
		return
	}

	n, err := ctrl.Products.Import(c.Request.Context(), rows)
	if err != nil {
		respondError(c, "Failed to import products", err)
		return
	}

	c.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: fmt.Sprintf("%d products imported", n),
		Data:    gin.H{"imported": n},
	})
}

// @Summary Export products
// @Description Download the catalog as CSV
// @Tags Products
// @Produce text/csv
// @Security BearerAuth
// @Success 200 {file} file
// @Router /api/products/export [get]
func (ctrl *ProductController) ExportProducts(c *gin.Context) {
	filename := fmt.Sprintf("products-%s.csv", time.Now().Format("20060102"))
	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Status(http.StatusOK)

	if err := ctrl.Products.Export(c.Request.Context(), c.Writer); err != nil {
		_ = c.Error(err)
	}
}
