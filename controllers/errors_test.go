package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"

	"sinar-terang/models"
	"sinar-terang/pricing"
	"sinar-terang/services"
)

func TestStatusFor(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{services.ErrProductNotFound, http.StatusNotFound},
		{fmt.Errorf("wrapped: %w", services.ErrSessionNotFound), http.StatusNotFound},
		{pricing.ValidateTiers(nil, []models.BulkTier{{MinQty: 1}}).Err(), http.StatusUnprocessableEntity},
		{&services.ImportError{Row: 2, Err: services.ErrInvalidProduct}, http.StatusBadRequest},
		{pricing.ErrInvalidQuantity, http.StatusBadRequest},
		{services.ErrTotalMismatch, http.StatusBadRequest},
		{services.ErrMemberInUse, http.StatusConflict},
		{services.ErrSessionForbidden, http.StatusForbidden},
		{services.ErrInvalidCredentials, http.StatusUnauthorized},
		{errors.New("connection refused"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, statusFor(tt.err), tt.err.Error())
	}
}

func TestBindErrors(t *testing.T) {
	v := validator.New()
	v.SetTagName("binding")

	err := v.Struct(models.CreateSaleRequest{
		Total:    -1,
		Products: []models.SaleLineRequest{{ProductID: 1, Quantity: 0}},
	})

	details := bindErrors(err)
	assert.Equal(t, "failed on min=0", details["Total"])
	assert.Equal(t, "failed on required", details["Products[0].Quantity"])

	assert.Nil(t, bindErrors(errors.New("EOF")))
}
