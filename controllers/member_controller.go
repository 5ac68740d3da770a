package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"sinar-terang/models"
	"sinar-terang/services"
	"sinar-terang/utils"
)

type MemberController struct {
	Members *services.MemberService
}

func NewMemberController(members *services.MemberService) *MemberController {
	return &MemberController{Members: members}
}

// @Summary Get all members
// @Tags Members
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(10)
// @Param search query string false "Search by name or phone"
// @Param with_general query bool false "Prepend the Umum entry on the first page"
// @Success 200 {object} models.HATEOASResponse
// @Router /api/members [get]
func (ctrl *MemberController) GetAllMembers(c *gin.Context) {
	page, limit := utils.GetPaginationParams(c, 10)
	withGeneral := c.Query("with_general") == "true"

	result, err := ctrl.Members.List(c.Request.Context(), page, limit, c.Query("search"), withGeneral)
	if err != nil {
		respondError(c, "Failed to retrieve members", err)
		return
	}

	c.JSON(http.StatusOK, utils.PageResponse(c, "Members retrieved", result))
}

// @Summary Get member by ID
// @Tags Members
// @Produce json
// @Security BearerAuth
// @Param id path int true "Member ID, 0 for Umum"
// @Success 200 {object} models.Response
// @Failure 404 {object} models.ErrorResponse
// @Router /api/members/{id} [get]
func (ctrl *MemberController) GetMemberByID(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	member, err := ctrl.Members.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, "Failed to retrieve member", err)
		return
	}

	c.JSON(http.StatusOK, models.Response{Success: true, Message: "Member retrieved", Data: member})
}

// @Summary Create member
// @Tags Members
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param member body models.MemberRequest true "Member"
// @Success 201 {object} models.Response
// @Failure 400 {object} models.ErrorResponse
// @Router /api/members [post]
func (ctrl *MemberController) CreateMember(c *gin.Context) {
	var req models.MemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	member, err := ctrl.Members.Create(c.Request.Context(), req)
	if err != nil {
		respondError(c, "Failed to create member", err)
		return
	}

	c.JSON(http.StatusCreated, models.Response{Success: true, Message: "Member created", Data: member})
}

// @Summary Update member
// @Tags Members
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Member ID"
// @Param member body models.MemberRequest true "Member"
// @Success 200 {object} models.Response
// @Failure 404 {object} models.ErrorResponse
// @Router /api/members/{id} [patch]
func (ctrl *MemberController) UpdateMember(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var req models.MemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	member, err := ctrl.Members.Update(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, "Failed to update member", err)
		return
	}

	c.JSON(http.StatusOK, models.Response{Success: true, Message: "Member updated", Data: member})
}

// @Summary Delete member
// @Description Refused while any product still carries a member price for this member
// @Tags Members
// @Produce json
// @Security BearerAuth
// @Param id path int true "Member ID"
// @Success 200 {object} models.Response
// @Failure 409 {object} models.ErrorResponse
// @Router /api/members/{id} [delete]
func (ctrl *MemberController) DeleteMember(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	if err := ctrl.Members.Delete(c.Request.Context(), id); err != nil {
		respondError(c, "Failed to delete member", err)
		return
	}

	c.JSON(http.StatusOK, models.Response{Success: true, Message: "Member deleted"})
}
