//go:build unit || e2e

package builder

import (
	"rental-booking/internal/domain/apartment"
	"rental-booking/internal/domain/booking"
	"rental-booking/internal/domain/user"

	"github.com/google/uuid"
)

type UserBuilder struct {
	ID               uuid.UUID
	Role             user.Role
	StripeCustomerID *string
}

func NewUserBuilder() *UserBuilder {
	customerID := "cus_test_123"
	return &UserBuilder{
		ID:               uuid.New(),
		Role:             user.RoleTenant,
		StripeCustomerID: &customerID,
	}
}

func (u *UserBuilder) BuildDomain() *user.User {
	return user.ReconstructUser(u.ID, u.Role, u.StripeCustomerID)
}

func (u *UserBuilder) WithID(id uuid.UUID) *UserBuilder {
	u.ID = id
	return u
}

func (u *UserBuilder) WithRole(role user.Role) *UserBuilder {
	u.Role = role
	return u
}

func (u *UserBuilder) WithoutBillingIdentity() *UserBuilder {
	u.StripeCustomerID = nil
	return u
}

type ApartmentBuilder struct {
	ID          uuid.UUID
	OwnerID     uuid.UUID
	Title       string
	MonthlyRate string
}

func NewApartmentBuilder() *ApartmentBuilder {
	return &ApartmentBuilder{
		ID:          uuid.New(),
		OwnerID:     uuid.New(),
		Title:       "Sunny loft",
		MonthlyRate: "1200.00",
	}
}

func (a *ApartmentBuilder) BuildDomain() *apartment.Apartment {
	rate, err := booking.ParseMonthlyRate(a.MonthlyRate)
	if err != nil {
		panic(err)
	}
	return apartment.ReconstructApartment(a.ID, a.OwnerID, a.Title, rate)
}

func (a *ApartmentBuilder) WithID(id uuid.UUID) *ApartmentBuilder {
	a.ID = id
	return a
}

func (a *ApartmentBuilder) WithMonthlyRate(rate string) *ApartmentBuilder {
	a.MonthlyRate = rate
	return a
}
