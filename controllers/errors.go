package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"sinar-terang/models"
	"sinar-terang/pricing"
	"sinar-terang/services"
	"sinar-terang/utils"
)

var errorStatus = []struct {
	err    error
	status int
}{
	{services.ErrProductNotFound, http.StatusNotFound},
	{services.ErrMemberNotFound, http.StatusNotFound},
	{services.ErrSaleNotFound, http.StatusNotFound},
	{services.ErrSessionNotFound, http.StatusNotFound},
	{services.ErrUserNotFound, http.StatusNotFound},
	{pricing.ErrItemNotInCart, http.StatusNotFound},

	{pricing.ErrValidation, http.StatusUnprocessableEntity},

	{services.ErrInvalidProduct, http.StatusBadRequest},
	{services.ErrInvalidMember, http.StatusBadRequest},
	{services.ErrInvalidSale, http.StatusBadRequest},
	{services.ErrTotalMismatch, http.StatusBadRequest},
	{services.ErrEmptyCart, http.StatusBadRequest},
	{services.ErrUnknownMember, http.StatusBadRequest},
	{pricing.ErrInvalidQuantity, http.StatusBadRequest},
	{pricing.ErrInvalidPrice, http.StatusBadRequest},
	{utils.ErrPasswordTooShort, http.StatusBadRequest},

	{services.ErrDuplicateBarcode, http.StatusConflict},
	{services.ErrUsernameTaken, http.StatusConflict},
	{services.ErrMemberInUse, http.StatusConflict},
	{services.ErrMemberHasSales, http.StatusConflict},
	{services.ErrGeneralMemberReadOnly, http.StatusConflict},

	{services.ErrSessionForbidden, http.StatusForbidden},
	{services.ErrInvalidCredentials, http.StatusUnauthorized},
}

func statusFor(err error) int {
	for _, e := range errorStatus {
		if errors.Is(err, e.err) {
			return e.status
		}
	}
	return http.StatusInternalServerError
}

// respondError writes the error envelope for a service error. Unknown errors
// are attached to the context for the request logger and hidden from the client.
func respondError(c *gin.Context, message string, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		_ = c.Error(err)
		c.JSON(status, models.ErrorResponse{
			Success: false,
			Message: message,
			Error:   "internal server error",
		})
		return
	}

	resp := models.ErrorResponse{
		Success: false,
		Message: message,
		Error:   err.Error(),
	}

	var verr *pricing.ValidationError
	var ierr *services.ImportError
	switch {
	case errors.As(err, &ierr):
		details := gin.H{"row": ierr.Row}
		if errors.As(err, &verr) {
			details["tiers"] = verr.Result
		}
		resp.Details = details
	case errors.As(err, &verr):
		resp.Details = verr.Result
	}

	c.JSON(status, resp)
}

// respondBindError reports a malformed request body, one entry per invalid field.
func respondBindError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, models.ErrorResponse{
		Success: false,
		Message: "Invalid request",
		Error:   err.Error(),
		Details: bindErrors(err),
	})
}

func bindErrors(err error) map[string]string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil
	}
	out := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		field := strings.TrimPrefix(fe.Namespace(), strings.SplitN(fe.Namespace(), ".", 2)[0]+".")
		if fe.Param() != "" {
			out[field] = fmt.Sprintf("failed on %s=%s", fe.Tag(), fe.Param())
		} else {
			out[field] = "failed on " + fe.Tag()
		}
	}
	return out
}

func paramID(c *gin.Context, name string) (int, bool) {
	id, err := strconv.Atoi(c.Param(name))
	if err != nil || id < 0 {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Success: false,
			Message: "Invalid " + name,
		})
		return 0, false
	}
	return id, true
}
