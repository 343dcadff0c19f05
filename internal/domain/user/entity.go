package user

import (
	"strings"

	"github.com/google/uuid"
)

// User is the slice of an account the booking flow needs: who they are and
// how the payment processor knows them.
type User struct {
	id                uuid.UUID
	role              Role
	billingCustomerID string
}

func ReconstructUser(id uuid.UUID, role Role, billingCustomerID *string) *User {
	u := &User{id: id, role: role}
	if billingCustomerID != nil {
		u.billingCustomerID = strings.TrimSpace(*billingCustomerID)
	}
	return u
}

func (u *User) BillingCustomerID() (string, bool) {
	return u.billingCustomerID, u.billingCustomerID != ""
}

func (u *User) ID() uuid.UUID { return u.id }
func (u *User) Role() Role    { return u.role }
