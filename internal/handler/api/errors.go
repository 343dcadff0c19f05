package api

import (
	"net/http"

	"rental-booking/internal/domain/booking"
	"rental-booking/internal/handler/httperr"
	"rental-booking/internal/pkg/errs"

	"github.com/gin-gonic/gin"
)

type errorMapping struct {
	target  error
	status  int
	message string
}

// Checked in order; the first match wins.
var bookingErrorMappings = []errorMapping{
	{booking.ErrInvalidRange, http.StatusBadRequest, "Invalid date range"},
	{booking.ErrEmptyPaymentMethod, http.StatusBadRequest, "Payment method is required"},
	{errs.ErrBookingNotFound, http.StatusNotFound, "Booking not found"},
	{errs.ErrApartmentNotFound, http.StatusNotFound, "Apartment not found"},
	{errs.ErrBookingConflict, http.StatusConflict, "Apartment is already booked for these dates"},
	{booking.ErrAlreadyApproved, http.StatusConflict, "Booking already approved"},
	{booking.ErrAdminApprovalRequired, http.StatusConflict, "Admin approval required"},
	{booking.ErrInvalidState, http.StatusConflict, "Transition not allowed in current state"},
	{errs.ErrBillingIdentityMissing, http.StatusUnprocessableEntity, "Tenant has no billing identity"},
	{errs.ErrExternalServiceFailure, http.StatusBadGateway, "Payment processor unavailable"},
}

func abortWithBookingError(c *gin.Context, err error) {
	for _, m := range bookingErrorMappings {
		if errs.Is(err, m.target) {
			httperr.AbortWithError(c, m.status, err, m.message, nil)
			return
		}
	}
	httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
}
