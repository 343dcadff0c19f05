//go:build unit

package api_test

import (
	"errors"
	"net/http"
	"strings"
	"testing"

	"rental-booking/internal/domain/booking"
	"rental-booking/internal/domain/user"
	"rental-booking/internal/handler/api"
	resdto "rental-booking/internal/handler/dto/response"
	"rental-booking/internal/pkg/errs"
	"rental-booking/internal/usecase/commands"
	"rental-booking/internal/usecase/queries"
	"rental-booking/tests/common/builder"
	"rental-booking/tests/common/httptest"
	"rental-booking/tests/common/testutil"
	commandsmock "rental-booking/tests/mock/commands"
	queriesmock "rental-booking/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type BookingHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCommands *commandsmock.MockBookingCommands
	mockQueries  *queriesmock.MockBookingQueries
	handler      *api.BookingHandler
	userID       uuid.UUID
	role         user.Role
}

func (s *BookingHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockBookingCommands(s.mockCtrl)
	s.mockQueries = queriesmock.NewMockBookingQueries(s.mockCtrl)
	s.handler = api.NewBookingHandler(s.mockCommands, s.mockQueries)
	s.userID = uuid.New()
	s.role = user.RoleTenant

	// Mock authentication middleware for testing
	authMiddleware := func(c *gin.Context) {
		if c.GetHeader("Authorization") == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": gin.H{"message": "Unauthorized"}})
			return
		}
		c.Set("user_id", s.userID)
		c.Set("user_role", s.role)
		c.Next()
	}

	s.router.POST("/bookings", authMiddleware, s.handler.Create)
	s.router.GET("/bookings", authMiddleware, s.handler.ListMine)
	s.router.GET("/bookings/pending", authMiddleware, s.handler.ListPending)
	s.router.GET("/bookings/:id", authMiddleware, s.handler.Get)
	s.router.PUT("/bookings/:id/approve/admin", authMiddleware, s.handler.ApproveAdmin)
	s.router.PUT("/bookings/:id/approve/owner", authMiddleware, s.handler.ApproveOwner)
	s.router.PUT("/bookings/:id/reject", authMiddleware, s.handler.Reject)
}

func (s *BookingHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestBookingHandlerSuite(t *testing.T) {
	suite.Run(t, new(BookingHandlerTestSuite))
}

type testCaseBooking struct {
	name       string
	mutate     func(m map[string]any)
	expectCode int
}

// ================================================================================
// TestCreate
// ================================================================================

func (s *BookingHandlerTestSuite) TestCreate() {
	url := "/bookings"

	bb := builder.NewBookingBuilder()
	reqBody := bb.BuildCreateRequestDTO()
	created, err := bb.BuildDomain()
	s.Require().NoError(err)
	view := bb.With(func(b *builder.BookingBuilder) { b.ID = created.ID() }).BuildView()

	validation := []testCaseBooking{
		{name: "missing field: apartment_id", mutate: testutil.Field("apartment_id", nil), expectCode: http.StatusBadRequest},
		{name: "missing field: start_date", mutate: testutil.Field("start_date", nil), expectCode: http.StatusBadRequest},
		{name: "missing field: end_date", mutate: testutil.Field("end_date", nil), expectCode: http.StatusBadRequest},
		{name: "missing field: payment_method_id", mutate: testutil.Field("payment_method_id", nil), expectCode: http.StatusBadRequest},
		{name: "malformed start_date", mutate: testutil.Field("start_date", "15/01/2025"), expectCode: http.StatusBadRequest},
		{name: "malformed apartment_id", mutate: testutil.Field("apartment_id", "apt-1"), expectCode: http.StatusBadRequest},
		{name: "payment method too long", mutate: testutil.Field("payment_method_id", strings.Repeat("p", 256)), expectCode: http.StatusBadRequest},
	}

	s.Run("success: returns 201 Created with the stored booking", func() {
		s.mockCommands.EXPECT().Create(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ any, in commands.CreateBookingInput) (*booking.Booking, error) {
				s.Equal(s.userID, in.TenantID)
				s.Equal(reqBody.ApartmentID, in.ApartmentID)
				s.Equal(reqBody.StartDate, in.StartDate.Format("2006-01-02"))
				return created, nil
			})
		s.mockQueries.EXPECT().GetByID(gomock.Any(), created.ID()).Return(view, nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "bearer-token")

		var body resdto.BookingResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &body)
		s.Equal(created.ID().String(), body.ID)
		s.Equal("2025-01-15", body.StartDate)
		s.Equal("2025-03-15", body.EndDate)
		s.Equal(int64(240000), body.AmountCents)
		s.Equal("pending", body.Status)
		httptest.AssertHeaders(s.T(), rec, map[string]string{"Location": "/api/bookings/" + created.ID().String()})
	})

	s.Run("error: 400 Bad Request on validation errors", func() {
		for _, tc := range validation {
			s.Run(tc.name, func() {
				requestMap := testutil.DtoMap(s.T(), reqBody, tc.mutate)
				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, requestMap, "bearer-token")
				httptest.AssertErrorResponse(s.T(), rec, tc.expectCode, "Invalid request")
			})
		}
	})

	s.Run("error: 401 without token", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnauthorized, "Unauthorized")
	})

	domainErrors := []struct {
		name       string
		err        error
		expectCode int
		expectMsg  string
	}{
		{name: "end not after start", err: booking.ErrInvalidRange, expectCode: http.StatusBadRequest, expectMsg: "Invalid date range"},
		{name: "unknown apartment", err: errs.ErrApartmentNotFound, expectCode: http.StatusNotFound, expectMsg: "Apartment not found"},
		{name: "overlap", err: errs.Wrap(errs.ErrBookingConflict, "2025-01-15..2025-03-15"), expectCode: http.StatusConflict, expectMsg: "already booked"},
		{name: "storage failure", err: errors.New("db down"), expectCode: http.StatusInternalServerError, expectMsg: "Internal server error"},
	}
	for _, tc := range domainErrors {
		s.Run("error: "+tc.name, func() {
			s.mockCommands.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil, tc.err)

			rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "bearer-token")
			httptest.AssertErrorResponse(s.T(), rec, tc.expectCode, tc.expectMsg)
		})
	}
}

// ================================================================================
// TestGet / TestList
// ================================================================================

func (s *BookingHandlerTestSuite) TestGet() {
	s.Run("success: tenant reads own booking", func() {
		s.role = user.RoleTenant
		view := builder.NewBookingBuilder().WithTenantID(s.userID).BuildView()
		s.mockQueries.EXPECT().GetByID(gomock.Any(), view.ID).Return(view, nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/bookings/"+view.ID.String(), nil, "bearer-token")

		var body resdto.BookingResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal(view.ID.String(), body.ID)
		s.Equal("Sunny loft", body.ApartmentTitle)
	})

	s.Run("error: another tenant's booking reads as missing", func() {
		s.role = user.RoleTenant
		view := builder.NewBookingBuilder().BuildView()
		s.mockQueries.EXPECT().GetByID(gomock.Any(), view.ID).Return(view, nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/bookings/"+view.ID.String(), nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "Booking not found")
	})

	s.Run("success: admin reads any booking", func() {
		s.role = user.RoleAdmin
		view := builder.NewBookingBuilder().BuildView()
		s.mockQueries.EXPECT().GetByID(gomock.Any(), view.ID).Return(view, nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/bookings/"+view.ID.String(), nil, "bearer-token")
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, nil)
	})

	s.Run("error: invalid id", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/bookings/not-a-uuid", nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid id")
	})

	s.Run("error: not found", func() {
		id := uuid.New()
		s.mockQueries.EXPECT().GetByID(gomock.Any(), id).Return(nil, errs.Mark(errors.New("no rows"), errs.ErrBookingNotFound))

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/bookings/"+id.String(), nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "Booking not found")
	})
}

func (s *BookingHandlerTestSuite) TestList() {
	s.Run("success: own bookings with limit", func() {
		view := builder.NewBookingBuilder().WithTenantID(s.userID).BuildView()
		s.mockQueries.EXPECT().ListByTenant(gomock.Any(), s.userID, 10).Return([]*queries.BookingView{view}, nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/bookings?limit=10", nil, "bearer-token")

		var body []resdto.BookingResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Len(body, 1)
	})

	s.Run("success: pending queue defaults limit", func() {
		s.mockQueries.EXPECT().ListPending(gomock.Any(), 0).Return([]*queries.BookingView{}, nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/bookings/pending", nil, "bearer-token")

		var body []resdto.BookingResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Empty(body)
	})

	s.Run("error: limit out of range", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/bookings/pending?limit=500", nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid query")
	})
}

// ================================================================================
// TestTransitions
// ================================================================================

func (s *BookingHandlerTestSuite) TestTransitions() {
	type transitionCase struct {
		name       string
		path       string
		expect     func(id uuid.UUID) *gomock.Call
		err        error
		expectCode int
		expectMsg  string
	}

	cases := []transitionCase{
		{
			name:       "admin approve",
			path:       "/approve/admin",
			expect:     func(id uuid.UUID) *gomock.Call { return s.mockCommands.EXPECT().AdminApprove(gomock.Any(), id) },
			expectCode: http.StatusOK,
		},
		{
			name:       "admin approve twice",
			path:       "/approve/admin",
			expect:     func(id uuid.UUID) *gomock.Call { return s.mockCommands.EXPECT().AdminApprove(gomock.Any(), id) },
			err:        booking.ErrAlreadyApproved,
			expectCode: http.StatusConflict,
			expectMsg:  "Booking already approved",
		},
		{
			name:       "owner approve",
			path:       "/approve/owner",
			expect:     func(id uuid.UUID) *gomock.Call { return s.mockCommands.EXPECT().OwnerApprove(gomock.Any(), id) },
			expectCode: http.StatusOK,
		},
		{
			name:       "owner approve before admin",
			path:       "/approve/owner",
			expect:     func(id uuid.UUID) *gomock.Call { return s.mockCommands.EXPECT().OwnerApprove(gomock.Any(), id) },
			err:        booking.ErrAdminApprovalRequired,
			expectCode: http.StatusConflict,
			expectMsg:  "Admin approval required",
		},
		{
			name:       "owner approve without billing identity",
			path:       "/approve/owner",
			expect:     func(id uuid.UUID) *gomock.Call { return s.mockCommands.EXPECT().OwnerApprove(gomock.Any(), id) },
			err:        errs.ErrBillingIdentityMissing,
			expectCode: http.StatusUnprocessableEntity,
			expectMsg:  "billing identity",
		},
		{
			name:   "owner approve with processor down",
			path:   "/approve/owner",
			expect: func(id uuid.UUID) *gomock.Call { return s.mockCommands.EXPECT().OwnerApprove(gomock.Any(), id) },
			err: errs.Mark(errs.Wrap(errors.New("timeout"), "create invoice item"),
				errs.ErrExternalServiceFailure),
			expectCode: http.StatusBadGateway,
			expectMsg:  "Payment processor unavailable",
		},
		{
			name:       "reject",
			path:       "/reject",
			expect:     func(id uuid.UUID) *gomock.Call { return s.mockCommands.EXPECT().Reject(gomock.Any(), id) },
			expectCode: http.StatusOK,
		},
		{
			name:       "reject after owner approval",
			path:       "/reject",
			expect:     func(id uuid.UUID) *gomock.Call { return s.mockCommands.EXPECT().Reject(gomock.Any(), id) },
			err:        booking.ErrInvalidState,
			expectCode: http.StatusConflict,
			expectMsg:  "Transition not allowed",
		},
		{
			name:       "missing booking",
			path:       "/reject",
			expect:     func(id uuid.UUID) *gomock.Call { return s.mockCommands.EXPECT().Reject(gomock.Any(), id) },
			err:        errs.ErrBookingNotFound,
			expectCode: http.StatusNotFound,
			expectMsg:  "Booking not found",
		},
	}

	for _, tc := range cases {
		s.Run(tc.name, func() {
			view := builder.NewBookingBuilder().BuildView()
			if tc.err != nil {
				tc.expect(view.ID).Return(nil, tc.err)
			} else {
				tc.expect(view.ID).Return(nil, nil)
				s.mockQueries.EXPECT().GetByID(gomock.Any(), view.ID).Return(view, nil)
			}

			rec := httptest.PerformRequest(s.T(), s.router, http.MethodPut, "/bookings/"+view.ID.String()+tc.path, nil, "bearer-token")
			if tc.err != nil {
				httptest.AssertErrorResponse(s.T(), rec, tc.expectCode, tc.expectMsg)
				return
			}

			var body resdto.BookingResponse
			httptest.AssertSuccessResponse(s.T(), rec, tc.expectCode, &body)
			s.Equal(view.ID.String(), body.ID)
		})
	}

	s.Run("error: reload failure after a committed transition", func() {
		id := uuid.New()
		s.mockCommands.EXPECT().AdminApprove(gomock.Any(), id).Return(nil, nil)
		s.mockQueries.EXPECT().GetByID(gomock.Any(), id).Return(nil, errors.New("replica lag"))

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPut, "/bookings/"+id.String()+"/approve/admin", nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusInternalServerError, "Failed to load booking")
	})
}
