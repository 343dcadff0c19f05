package response

import (
	"time"

	"rental-booking/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

const dateLayout = "2006-01-02"

type BookingResponse struct {
	ID                 string    `json:"id"`
	TenantID           string    `json:"tenant_id"`
	ApartmentID        string    `json:"apartment_id"`
	ApartmentTitle     string    `json:"apartment_title"`
	StartDate          string    `json:"start_date"`
	EndDate            string    `json:"end_date"`
	AmountCents        int64     `json:"amount_cents"`
	Status             string    `json:"status"`
	AdminApproved      bool      `json:"admin_approved"`
	OwnerApproved      bool      `json:"owner_approved"`
	PaymentMethodID    string    `json:"payment_method_id"`
	InvoiceID          *string   `json:"invoice_id,omitempty"`
	InvoiceStatus      *string   `json:"invoice_status,omitempty"`
	PaymentIntentID    *string   `json:"payment_intent_id,omitempty"`
	SubscriptionStatus *string   `json:"subscription_status,omitempty"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// Booking dates are calendar dates; timestamps keep their instant.
var viewCopyOption = copier.Option{
	Converters: []copier.TypeConverter{
		{
			SrcType: time.Time{},
			DstType: copier.String,
			Fn: func(src any) (any, error) {
				return src.(time.Time).Format(dateLayout), nil
			},
		},
		{
			SrcType: uuid.UUID{},
			DstType: copier.String,
			Fn: func(src any) (any, error) {
				return src.(uuid.UUID).String(), nil
			},
		},
	},
}

func FromBookingView(v *queries.BookingView) (*BookingResponse, error) {
	resp := &BookingResponse{}
	if err := copier.CopyWithOption(resp, v, viewCopyOption); err != nil {
		return nil, err
	}
	return resp, nil
}

func FromBookingViews(views []*queries.BookingView) ([]*BookingResponse, error) {
	out := make([]*BookingResponse, 0, len(views))
	for _, v := range views {
		resp, err := FromBookingView(v)
		if err != nil {
			return nil, err
		}
		out = append(out, resp)
	}
	return out, nil
}

type WebhookAckResponse struct {
	Received bool `json:"received"`
}
