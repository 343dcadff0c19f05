//go:build unit

package commands_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"rental-booking/internal/domain/booking"
	"rental-booking/internal/pkg/errs"
	"rental-booking/internal/usecase/commands"
	"rental-booking/tests/common/builder"
	commandsmock "rental-booking/tests/mock/commands"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type DirectChargeTestSuite struct {
	suite.Suite
	ctrl    *gomock.Controller
	mocks   *txMocks
	charges *commandsmock.MockChargeGateway
	now     time.Time
	cmds    commands.BookingCommands
}

func (s *DirectChargeTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.mocks = newTxMocks(s.ctrl)
	s.charges = commandsmock.NewMockChargeGateway(s.ctrl)
	s.now = time.Date(2025, 1, 10, 8, 0, 0, 0, time.UTC)

	services := builder.NewBookingBuilder().With(func(b *builder.BookingBuilder) { b.Now = s.now }).Services()
	s.cmds = commands.NewBookingCommands(
		s.mocks.uow,
		services,
		commands.NewAvailabilityChecker(),
		commands.NewDirectCharger(s.charges, discardLogger),
		discardLogger,
	)
}

func (s *DirectChargeTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func TestDirectChargeSuite(t *testing.T) {
	suite.Run(t, new(DirectChargeTestSuite))
}

func (s *DirectChargeTestSuite) TestOwnerApprove() {
	ctx := context.Background()
	rate, err := booking.ParseMonthlyRate("1200.00")
	s.Require().NoError(err)

	s.Run("success: charges the saved method and records the intent", func() {
		b, err := builder.NewBookingBuilder().
			WithStatus(booking.StatusAdminApproved).
			WithPaymentMethodID("pm_saved").
			BuildStored()
		s.Require().NoError(err)
		tenant := builder.NewUserBuilder().WithID(b.TenantID()).BuildDomain()

		s.mocks.bookings.EXPECT().FindByIDForUpdate(gomock.Any(), b.ID()).Return(b, nil)
		s.mocks.apartments.EXPECT().MonthlyRate(gomock.Any(), b.ApartmentID()).Return(rate, nil)
		s.mocks.users.EXPECT().FindByID(gomock.Any(), b.TenantID()).Return(tenant, nil)
		s.charges.EXPECT().ChargeDirect(gomock.Any(), gomock.Cond(func(req commands.ChargeRequest) bool {
			return req.BookingID == b.ID() &&
				req.CustomerID == "cus_test_123" &&
				req.PaymentMethodID == "pm_saved" &&
				req.AmountCents == 240000
		})).Return("pi_42", nil)
		s.mocks.bookings.EXPECT().Update(gomock.Any(), b).Return(nil)

		updated, err := s.cmds.OwnerApprove(ctx, b.ID())
		s.Require().NoError(err)
		s.Equal(booking.StatusOwnerApproved, updated.Status())
		s.Require().NotNil(updated.PaymentIntentID())
		s.Equal("pi_42", *updated.PaymentIntentID())
		s.Equal(booking.InvoiceStatusPending, *updated.InvoiceStatus())
		s.Nil(updated.InvoiceID())
	})

	s.Run("error: declined charge rolls the approval back", func() {
		b, err := builder.NewBookingBuilder().WithStatus(booking.StatusAdminApproved).BuildStored()
		s.Require().NoError(err)
		tenant := builder.NewUserBuilder().WithID(b.TenantID()).BuildDomain()

		s.mocks.bookings.EXPECT().FindByIDForUpdate(gomock.Any(), b.ID()).Return(b, nil)
		s.mocks.apartments.EXPECT().MonthlyRate(gomock.Any(), b.ApartmentID()).Return(rate, nil)
		s.mocks.users.EXPECT().FindByID(gomock.Any(), b.TenantID()).Return(tenant, nil)
		s.charges.EXPECT().ChargeDirect(gomock.Any(), gomock.Any()).Return("", errors.New("card_declined"))
		s.mocks.bookings.EXPECT().Update(gomock.Any(), gomock.Any()).Times(0)

		_, err = s.cmds.OwnerApprove(ctx, b.ID())
		s.True(errs.Is(err, errs.ErrExternalServiceFailure))
		s.Contains(err.Error(), "charge payment method")
	})

	s.Run("error: tenant without billing identity is never charged", func() {
		b, err := builder.NewBookingBuilder().WithStatus(booking.StatusAdminApproved).BuildStored()
		s.Require().NoError(err)

		s.mocks.bookings.EXPECT().FindByIDForUpdate(gomock.Any(), b.ID()).Return(b, nil)
		s.mocks.apartments.EXPECT().MonthlyRate(gomock.Any(), b.ApartmentID()).Return(rate, nil)
		s.mocks.users.EXPECT().FindByID(gomock.Any(), b.TenantID()).Return(nil, notFound())
		s.charges.EXPECT().ChargeDirect(gomock.Any(), gomock.Any()).Times(0)
		s.mocks.bookings.EXPECT().Update(gomock.Any(), gomock.Any()).Times(0)

		_, err = s.cmds.OwnerApprove(ctx, b.ID())
		s.True(errs.Is(err, errs.ErrBillingIdentityMissing))
	})
}
