package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"sinar-terang/middleware"
	"sinar-terang/models"
	"sinar-terang/services"
)

type CashierController struct {
	Cashier *services.CashierService
}

func NewCashierController(cashier *services.CashierService) *CashierController {
	return &CashierController{Cashier: cashier}
}

func sessionResponse(c *gin.Context, status int, message string, view *services.SessionView) {
	c.JSON(status, models.Response{Success: true, Message: message, Data: view})
}

// @Summary Open cashier session
// @Description Start an empty cart for the authenticated kasir
// @Tags Cashier
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param session body models.OpenSessionRequest false "Initial member, 0 for Umum"
// @Success 201 {object} models.Response
// @Failure 404 {object} models.ErrorResponse
// @Router /api/cashier/sessions [post]
func (ctrl *CashierController) OpenSession(c *gin.Context) {
	var req models.OpenSessionRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			respondBindError(c, err)
			return
		}
	}

	view, err := ctrl.Cashier.Open(c.Request.Context(), middleware.UserID(c), req.MemberID)
	if err != nil {
		respondError(c, "Failed to open session", err)
		return
	}
	sessionResponse(c, http.StatusCreated, "Session opened", view)
}

// @Summary Get cashier session
// @Tags Cashier
// @Produce json
// @Security BearerAuth
// @Param id path string true "Session ID"
// @Success 200 {object} models.Response
// @Failure 404 {object} models.ErrorResponse
// @Router /api/cashier/sessions/{id} [get]
func (ctrl *CashierController) GetSession(c *gin.Context) {
	view, err := ctrl.Cashier.Get(c.Request.Context(), c.Param("id"), middleware.UserID(c))
	if err != nil {
		respondError(c, "Failed to retrieve session", err)
		return
	}
	sessionResponse(c, http.StatusOK, "Session retrieved", view)
}

// @Summary Add product to cart
// @Description Adds one unit, or bumps the quantity when the product is already in the cart
// @Tags Cashier
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Session ID"
// @Param item body models.AddCartItemRequest true "Product"
// @Success 200 {object} models.Response
// @Failure 404 {object} models.ErrorResponse
// @Router /api/cashier/sessions/{id}/items [post]
func (ctrl *CashierController) AddItem(c *gin.Context) {
	var req models.AddCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	view, err := ctrl.Cashier.AddProduct(c.Request.Context(), c.Param("id"), middleware.UserID(c), req.ProductID)
	if err != nil {
		respondError(c, "Failed to add product", err)
		return
	}
	sessionResponse(c, http.StatusOK, "Product added", view)
}

// @Summary Change line quantity
// @Tags Cashier
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Session ID"
// @Param productId path int true "Product ID"
// @Param quantity body models.ChangeQuantityRequest true "Quantity, at least 1"
// @Success 200 {object} models.Response
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /api/cashier/sessions/{id}/items/{productId} [patch]
func (ctrl *CashierController) ChangeQuantity(c *gin.Context) {
	productID, ok := paramID(c, "productId")
	if !ok {
		return
	}
	var req models.ChangeQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	view, err := ctrl.Cashier.ChangeQuantity(c.Request.Context(), c.Param("id"), middleware.UserID(c), productID, req.Quantity)
	if err != nil {
		respondError(c, "Failed to change quantity", err)
		return
	}
	sessionResponse(c, http.StatusOK, "Quantity changed", view)
}

// @Summary Set or clear manual price
// @Description A null harga returns the line to automatic pricing
// @Tags Cashier
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Session ID"
// @Param productId path int true "Product ID"
// @Param price body models.SetPriceRequest true "Manual harga"
// @Success 200 {object} models.Response
// @Failure 400 {object} models.ErrorResponse
// @Router /api/cashier/sessions/{id}/items/{productId}/price [put]
func (ctrl *CashierController) SetPrice(c *gin.Context) {
	productID, ok := paramID(c, "productId")
	if !ok {
		return
	}
	var req models.SetPriceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	view, err := ctrl.Cashier.SetPrice(c.Request.Context(), c.Param("id"), middleware.UserID(c), productID, req.Price)
	if err != nil {
		respondError(c, "Failed to set price", err)
		return
	}
	sessionResponse(c, http.StatusOK, "Price updated", view)
}

// @Summary Clear manual price
// @Tags Cashier
// @Produce json
// @Security BearerAuth
// @Param id path string true "Session ID"
// @Param productId path int true "Product ID"
// @Success 200 {object} models.Response
// @Router /api/cashier/sessions/{id}/items/{productId}/price [delete]
func (ctrl *CashierController) ClearPrice(c *gin.Context) {
	productID, ok := paramID(c, "productId")
	if !ok {
		return
	}

	view, err := ctrl.Cashier.SetPrice(c.Request.Context(), c.Param("id"), middleware.UserID(c), productID, nil)
	if err != nil {
		respondError(c, "Failed to clear price", err)
		return
	}
	sessionResponse(c, http.StatusOK, "Price cleared", view)
}

// @Summary Remove product from cart
// @Tags Cashier
// @Produce json
// @Security BearerAuth
// @Param id path string true "Session ID"
// @Param productId path int true "Product ID"
// @Success 200 {object} models.Response
// @Router /api/cashier/sessions/{id}/items/{productId} [delete]
func (ctrl *CashierController) RemoveItem(c *gin.Context) {
	productID, ok := paramID(c, "productId")
	if !ok {
		return
	}

	view, err := ctrl.Cashier.RemoveProduct(c.Request.Context(), c.Param("id"), middleware.UserID(c), productID)
	if err != nil {
		respondError(c, "Failed to remove product", err)
		return
	}
	sessionResponse(c, http.StatusOK, "Product removed", view)
}

// @Summary Change member
// @Description Reprices every line without a manual price
// @Tags Cashier
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Session ID"
// @Param member body models.ChangeMemberRequest true "Member, 0 for Umum"
// @Success 200 {object} models.Response
// @Failure 404 {object} models.ErrorResponse
// @Router /api/cashier/sessions/{id}/member [put]
func (ctrl *CashierController) ChangeMember(c *gin.Context) {
	var req models.ChangeMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	view, err := ctrl.Cashier.ChangeMember(c.Request.Context(), c.Param("id"), middleware.UserID(c), req.MemberID)
	if err != nil {
		respondError(c, "Failed to change member", err)
		return
	}
	sessionResponse(c, http.StatusOK, "Member changed", view)
}

// @Summary Submit cart
// @Description Record the cart as a sale and empty it for the next customer
// @Tags Cashier
// @Produce json
// @Security BearerAuth
// @Param id path string true "Session ID"
// @Success 201 {object} models.Response
// @Failure 400 {object} models.ErrorResponse
// @Router /api/cashier/sessions/{id}/submit [post]
func (ctrl *CashierController) Submit(c *gin.Context) {
	sale, err := ctrl.Cashier.Submit(c.Request.Context(), c.Param("id"), middleware.UserID(c))
	if err != nil {
		respondError(c, "Failed to submit cart", err)
		return
	}

	c.JSON(http.StatusCreated, models.Response{
		Success: true,
		Message: "Sale recorded",
		Data:    sale,
	})
}

// @Summary Abandon cashier session
// @Tags Cashier
// @Produce json
// @Security BearerAuth
// @Param id path string true "Session ID"
// @Success 200 {object} models.Response
// @Router /api/cashier/sessions/{id} [delete]
func (ctrl *CashierController) Abandon(c *gin.Context) {
	if err := ctrl.Cashier.Abandon(c.Request.Context(), c.Param("id"), middleware.UserID(c)); err != nil {
		respondError(c, "Failed to close session", err)
		return
	}
	c.JSON(http.StatusOK, models.Response{Success: true, Message: "Session closed"})
}
