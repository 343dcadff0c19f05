package request

import (
	"time"

	"rental-booking/internal/domain/booking"
	"rental-booking/internal/usecase/commands"

	"github.com/google/uuid"
)

const dateLayout = "2006-01-02"

type CreateBookingRequest struct {
	ApartmentID     uuid.UUID `json:"apartment_id" binding:"required"`
	StartDate       string    `json:"start_date" binding:"required,datetime=2006-01-02"`
	EndDate         string    `json:"end_date" binding:"required,datetime=2006-01-02"`
	PaymentMethodID string    `json:"payment_method_id" binding:"required,max=255"`
}

// ToInput parses the calendar dates; ordering is left to the domain.
func (r CreateBookingRequest) ToInput(tenantID uuid.UUID) (commands.CreateBookingInput, error) {
	start, err := time.Parse(dateLayout, r.StartDate)
	if err != nil {
		return commands.CreateBookingInput{}, booking.ErrInvalidRange
	}
	end, err := time.Parse(dateLayout, r.EndDate)
	if err != nil {
		return commands.CreateBookingInput{}, booking.ErrInvalidRange
	}
	return commands.CreateBookingInput{
		TenantID:        tenantID,
		ApartmentID:     r.ApartmentID,
		StartDate:       start,
		EndDate:         end,
		PaymentMethodID: r.PaymentMethodID,
	}, nil
}

type ListBookingsQuery struct {
	Limit int `form:"limit" binding:"omitempty,min=1,max=200"`
}
