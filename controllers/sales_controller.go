package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"sinar-terang/middleware"
	"sinar-terang/models"
	"sinar-terang/services"
	"sinar-terang/utils"
)

type SalesController struct {
	Sales *services.SalesService
}

func NewSalesController(sales *services.SalesService) *SalesController {
	return &SalesController{Sales: sales}
}

// @Summary Record a sale
// @Description Record a checkout. The kasir is taken from the token and the total must equal the sum of the lines.
// @Tags Sales
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param sale body models.CreateSaleRequest true "Sale"
// @Success 201 {object} models.Response
// @Failure 400 {object} models.ErrorResponse
// @Router /api/sales [post]
func (ctrl *SalesController) CreateSale(c *gin.Context) {
	var req models.CreateSaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	req.KasirID = middleware.UserID(c)

	sale, err := ctrl.Sales.Record(c.Request.Context(), req)
	if err != nil {
		respondError(c, "Failed to record sale", err)
		return
	}

	c.JSON(http.StatusCreated, models.Response{
		Success: true,
		Message: "Sale recorded",
		Data:    sale,
	})
}

// @Summary Get sales history
// @Tags Sales
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(10)
// @Param search query string false "Search by id, member or kasir"
// @Success 200 {object} models.HATEOASResponse
// @Router /api/sales [get]
func (ctrl *SalesController) GetAllSales(c *gin.Context) {
	page, limit := utils.GetPaginationParams(c, 10)

	result, err := ctrl.Sales.List(c.Request.Context(), page, limit, c.Query("search"))
	if err != nil {
		respondError(c, "Failed to retrieve sales", err)
		return
	}

	c.JSON(http.StatusOK, utils.PageResponse(c, "Sales retrieved", result))
}

// @Summary Get sale receipt
// @Tags Sales
// @Produce json
// @Security BearerAuth
// @Param id path int true "Sale ID"
// @Success 200 {object} models.Response
// @Failure 404 {object} models.ErrorResponse
// @Router /api/sales/{id} [get]
func (ctrl *SalesController) GetSaleByID(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	sale, err := ctrl.Sales.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, "Failed to retrieve sale", err)
		return
	}

	c.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: "Sale retrieved",
		Data:    sale,
	})
}
