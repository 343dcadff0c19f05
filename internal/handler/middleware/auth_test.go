//go:build unit

package middleware_test

import (
	"net/http"
	"testing"
	"time"

	"rental-booking/internal/domain/user"
	"rental-booking/internal/handler/middleware"
	"rental-booking/internal/pkg/jwt"
	"rental-booking/internal/usecase"
	"rental-booking/tests/common/httptest"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthRouter(t *testing.T, svc *jwt.Service) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	auth := middleware.NewAuthMiddleware(usecase.NewTokenValidator(svc))
	r := gin.New()
	r.GET("/me", auth.RequireAuth(), func(c *gin.Context) {
		id, _ := middleware.GetUserID(c)
		role, _ := middleware.GetUserRole(c)
		c.JSON(http.StatusOK, gin.H{"id": id.String(), "role": role.String()})
	})
	r.GET("/admin", auth.RequireAuth(), auth.RequireRole(user.RoleAdmin, user.RoleOwner), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})
	return r
}

func TestAuthMiddleware(t *testing.T) {
	svc := jwt.NewService("test-secret")
	router := newAuthRouter(t, svc)
	userID := uuid.New()

	issue := func(t *testing.T, role user.Role, ttl time.Duration) string {
		t.Helper()
		token, err := svc.Issue(userID, role, ttl)
		require.NoError(t, err)
		return token
	}

	t.Run("valid token populates the context", func(t *testing.T) {
		rec := httptest.PerformRequest(t, router, http.MethodGet, "/me", nil, issue(t, user.RoleTenant, time.Minute))

		var body map[string]string
		httptest.AssertSuccessResponse(t, rec, http.StatusOK, &body)
		assert.Equal(t, userID.String(), body["id"])
		assert.Equal(t, "tenant", body["role"])
	})

	t.Run("missing token", func(t *testing.T) {
		rec := httptest.PerformRequest(t, router, http.MethodGet, "/me", nil, "")
		httptest.AssertErrorResponse(t, rec, http.StatusUnauthorized, "Access token required")
	})

	t.Run("expired token", func(t *testing.T) {
		rec := httptest.PerformRequest(t, router, http.MethodGet, "/me", nil, issue(t, user.RoleTenant, -time.Minute))
		httptest.AssertErrorResponse(t, rec, http.StatusUnauthorized, "Invalid or expired token")
	})

	t.Run("token signed with another key", func(t *testing.T) {
		other, err := jwt.NewService("other-secret").Issue(userID, user.RoleAdmin, time.Minute)
		require.NoError(t, err)

		rec := httptest.PerformRequest(t, router, http.MethodGet, "/me", nil, other)
		httptest.AssertErrorResponse(t, rec, http.StatusUnauthorized, "Invalid or expired token")
	})

	t.Run("role gate", func(t *testing.T) {
		cases := []struct {
			role       user.Role
			expectCode int
		}{
			{role: user.RoleAdmin, expectCode: http.StatusNoContent},
			{role: user.RoleOwner, expectCode: http.StatusNoContent},
			{role: user.RoleTenant, expectCode: http.StatusForbidden},
		}
		for _, tc := range cases {
			t.Run(tc.role.String(), func(t *testing.T) {
				rec := httptest.PerformRequest(t, router, http.MethodGet, "/admin", nil, issue(t, tc.role, time.Minute))
				assert.Equal(t, tc.expectCode, rec.Code)
			})
		}
	})
}
