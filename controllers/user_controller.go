package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"sinar-terang/models"
	"sinar-terang/services"
)

// UserController manages cashier accounts. Admin only.
type UserController struct {
	Auth *services.AuthService
}

func NewUserController(auth *services.AuthService) *UserController {
	return &UserController{Auth: auth}
}

// @Summary Get all users
// @Tags Users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.Response
// @Router /api/users [get]
func (ctrl *UserController) GetAllUsers(c *gin.Context) {
	users, err := ctrl.Auth.ListUsers(c.Request.Context())
	if err != nil {
		respondError(c, "Failed to retrieve users", err)
		return
	}

	c.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: "Users retrieved",
		Data:    users,
	})
}

// @Summary Create user
// @Description Create an admin or kasir account
// @Tags Users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param user body models.CreateUserRequest true "User"
// @Success 201 {object} models.Response
// @Failure 409 {object} models.ErrorResponse
// @Router /api/users [post]
func (ctrl *UserController) CreateUser(c *gin.Context) {
	var req models.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	user, err := ctrl.Auth.CreateUser(c.Request.Context(), req)
	if err != nil {
		respondError(c, "Failed to create user", err)
		return
	}

	c.JSON(http.StatusCreated, models.Response{
		Success: true,
		Message: "User created",
		Data:    user,
	})
}

// @Summary Get user by ID
// @Tags Users
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Success 200 {object} models.Response
// @Failure 404 {object} models.ErrorResponse
// @Router /api/users/{id} [get]
func (ctrl *UserController) GetUserByID(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	user, err := ctrl.Auth.Profile(c.Request.Context(), id)
	if err != nil {
		respondError(c, "Failed to retrieve user", err)
		return
	}

	c.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: "User retrieved",
		Data:    user,
	})
}
