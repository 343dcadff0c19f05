//go:build unit || e2e

package authtest

import (
	"testing"

	"rental-booking/internal/domain/user"
	"rental-booking/tests/common/dbtest"

	"github.com/google/uuid"
)

// CreateUserWithToken inserts a user and returns a bearer token for it. Tenants
// get a billing identity so owner approval can invoice them.
func CreateUserWithToken(t *testing.T, db dbtest.DBLike, jwt *JWTHelper, email string, role user.Role) (uuid.UUID, string) {
	t.Helper()

	var customerID *string
	if role == user.RoleTenant {
		id := "cus_" + uuid.NewString()[:12]
		customerID = &id
	}
	userID := dbtest.CreateTestUser(t, db, email, role.String(), customerID)
	return userID, jwt.GenerateToken(t, userID, role)
}
