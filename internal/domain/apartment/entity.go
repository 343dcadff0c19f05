package apartment

import (
	"rental-booking/internal/domain/booking"

	"github.com/google/uuid"
)

type Apartment struct {
	id          uuid.UUID
	ownerID     uuid.UUID
	title       string
	monthlyRate booking.MonthlyRate
}

func ReconstructApartment(id, ownerID uuid.UUID, title string, monthlyRate booking.MonthlyRate) *Apartment {
	return &Apartment{
		id:          id,
		ownerID:     ownerID,
		title:       title,
		monthlyRate: monthlyRate,
	}
}

func (a *Apartment) ChargeSpec() booking.ApartmentSpec {
	return booking.ApartmentSpec{ID: a.id, MonthlyRate: a.monthlyRate}
}

func (a *Apartment) ID() uuid.UUID                    { return a.id }
func (a *Apartment) OwnerID() uuid.UUID               { return a.ownerID }
func (a *Apartment) Title() string                    { return a.title }
func (a *Apartment) MonthlyRate() booking.MonthlyRate { return a.monthlyRate }
