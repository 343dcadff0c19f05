//go:build unit

package booking_test

import (
	"testing"
	"time"

	"rental-booking/internal/domain/booking"
	"rental-booking/tests/common/builder"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var later = time.Date(2025, 2, 1, 12, 0, 0, 0, time.UTC)

func TestNewBooking(t *testing.T) {
	t.Run("basic success case", func(t *testing.T) {
		actual, err := builder.NewBookingBuilder().BuildDomain()
		require.NoError(t, err)
		require.NotNil(t, actual)

		assert.NotEqual(t, uuid.Nil, actual.ID())
		assert.Equal(t, booking.StatusPending, actual.Status())
		assert.False(t, actual.AdminApproved())
		assert.False(t, actual.OwnerApproved())
		assert.Equal(t, int64(240000), actual.Amount().Cents())
		assert.Equal(t, int64(1), actual.Version())
		assert.Nil(t, actual.InvoiceID())
		assert.Equal(t, actual.CreatedAt(), actual.UpdatedAt())
	})

	t.Run("blank payment method", func(t *testing.T) {
		_, err := builder.NewBookingBuilder().WithPaymentMethodID("   ").BuildDomain()
		assert.ErrorIs(t, err, booking.ErrEmptyPaymentMethod)
	})

	t.Run("payment method is trimmed", func(t *testing.T) {
		actual, err := builder.NewBookingBuilder().WithPaymentMethodID("  pm_123 ").BuildDomain()
		require.NoError(t, err)
		assert.Equal(t, "pm_123", actual.PaymentMethodID())
	})
}

func TestDateRange(t *testing.T) {
	cases := []struct {
		name       string
		start, end string
		errIs      error
	}{
		{name: "one day", start: "2025-01-01", end: "2025-01-02"},
		{name: "end equals start", start: "2025-01-01", end: "2025-01-01", errIs: booking.ErrInvalidRange},
		{name: "end before start", start: "2025-01-02", end: "2025-01-01", errIs: booking.ErrInvalidRange},
		{name: "malformed start", start: "01/02/2025", end: "2025-01-03", errIs: booking.ErrInvalidRange},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := booking.ParseDateRange(tc.start, tc.end)
			if tc.errIs != nil {
				assert.ErrorIs(t, err, tc.errIs)
				return
			}
			assert.NoError(t, err)
		})
	}

	t.Run("half-open ranges touching at the edge do not overlap", func(t *testing.T) {
		a, err := booking.ParseDateRange("2025-01-01", "2025-02-01")
		require.NoError(t, err)
		b, err := booking.ParseDateRange("2025-02-01", "2025-03-01")
		require.NoError(t, err)
		c, err := booking.ParseDateRange("2025-01-31", "2025-02-02")
		require.NoError(t, err)

		assert.False(t, a.Overlaps(b))
		assert.False(t, b.Overlaps(a))
		assert.True(t, a.Overlaps(c))
		assert.True(t, c.Overlaps(b))
	})
}

func TestAdminApprove(t *testing.T) {
	cases := []struct {
		name   string
		status booking.Status
		errIs  error
	}{
		{name: "pending", status: booking.StatusPending},
		{name: "already admin approved", status: booking.StatusAdminApproved, errIs: booking.ErrAlreadyApproved},
		{name: "rejected", status: booking.StatusRejected, errIs: booking.ErrInvalidState},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			b, err := builder.NewBookingBuilder().WithStatus(tc.status).BuildStored()
			require.NoError(t, err)

			err = b.AdminApprove(later)
			if tc.errIs != nil {
				assert.ErrorIs(t, err, tc.errIs)
				assert.Equal(t, tc.status, b.Status())
				return
			}
			require.NoError(t, err)
			assert.Equal(t, booking.StatusAdminApproved, b.Status())
			assert.Equal(t, later, b.UpdatedAt())
		})
	}
}

func TestOwnerApprove(t *testing.T) {
	calc := booking.NewMonthlyChargeCalculator()
	newRate, err := booking.ParseMonthlyRate("1500.00")
	require.NoError(t, err)

	t.Run("recomputes amount at the current rate", func(t *testing.T) {
		b, err := builder.NewBookingBuilder().WithStatus(booking.StatusAdminApproved).BuildStored()
		require.NoError(t, err)
		require.Equal(t, int64(240000), b.Amount().Cents())

		require.NoError(t, b.OwnerApprove(calc, newRate, later))
		assert.Equal(t, booking.StatusOwnerApproved, b.Status())
		assert.Equal(t, int64(300000), b.Amount().Cents())
	})

	t.Run("requires admin approval first", func(t *testing.T) {
		b, err := builder.NewBookingBuilder().BuildStored()
		require.NoError(t, err)

		err = b.OwnerApprove(calc, newRate, later)
		assert.ErrorIs(t, err, booking.ErrAdminApprovalRequired)
		assert.Equal(t, booking.StatusPending, b.Status())
		assert.Equal(t, int64(240000), b.Amount().Cents())
	})

	t.Run("already owner approved", func(t *testing.T) {
		b, err := builder.NewBookingBuilder().WithInvoice("in_1", booking.InvoiceStatusPending).BuildStored()
		require.NoError(t, err)

		assert.ErrorIs(t, b.OwnerApprove(calc, newRate, later), booking.ErrAlreadyApproved)
	})

	t.Run("rejected needs admin approval again", func(t *testing.T) {
		b, err := builder.NewBookingBuilder().WithStatus(booking.StatusRejected).BuildStored()
		require.NoError(t, err)
		before := b.UpdatedAt()

		err = b.OwnerApprove(calc, newRate, later)
		require.ErrorIs(t, err, booking.ErrAdminApprovalRequired)
		assert.Equal(t, booking.StatusRejected, b.Status())
		assert.Equal(t, int64(240000), b.Amount().Cents())
		assert.Equal(t, before, b.UpdatedAt())
	})
}

func TestReject(t *testing.T) {
	cases := []struct {
		name   string
		status booking.Status
		errIs  error
	}{
		{name: "pending", status: booking.StatusPending},
		{name: "admin approved", status: booking.StatusAdminApproved},
		{name: "owner approved", status: booking.StatusOwnerApproved, errIs: booking.ErrInvalidState},
		{name: "already rejected", status: booking.StatusRejected, errIs: booking.ErrInvalidState},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			bb := builder.NewBookingBuilder().WithStatus(tc.status)
			if tc.status == booking.StatusOwnerApproved {
				bb.WithInvoice("in_1", booking.InvoiceStatusPending)
			}
			b, err := bb.BuildStored()
			require.NoError(t, err)

			err = b.Reject(later)
			if tc.errIs != nil {
				assert.ErrorIs(t, err, tc.errIs)
				assert.Equal(t, tc.status, b.Status())
				return
			}
			require.NoError(t, err)
			assert.Equal(t, booking.StatusRejected, b.Status())
			assert.False(t, b.AdminApproved())
			assert.False(t, b.OwnerApproved())
		})
	}
}

func TestAttachInvoice(t *testing.T) {
	t.Run("owner approved booking gets a pending invoice", func(t *testing.T) {
		b, err := builder.NewBookingBuilder().WithStatus(booking.StatusAdminApproved).BuildStored()
		require.NoError(t, err)
		rate, err := booking.ParseMonthlyRate("1200")
		require.NoError(t, err)
		require.NoError(t, b.OwnerApprove(booking.NewMonthlyChargeCalculator(), rate, later))

		require.NoError(t, b.AttachInvoice("in_123", later))
		require.NotNil(t, b.InvoiceID())
		assert.Equal(t, "in_123", *b.InvoiceID())
		assert.Equal(t, booking.InvoiceStatusPending, *b.InvoiceStatus())
		assert.True(t, b.IsInvoiced())
	})

	t.Run("not owner approved", func(t *testing.T) {
		b, err := builder.NewBookingBuilder().WithStatus(booking.StatusAdminApproved).BuildStored()
		require.NoError(t, err)
		assert.ErrorIs(t, b.AttachInvoice("in_123", later), booking.ErrInvalidState)
	})
}

func TestApplyInvoiceStatus(t *testing.T) {
	t.Run("last write wins, including paid back to failed", func(t *testing.T) {
		b, err := builder.NewBookingBuilder().WithInvoice("in_1", booking.InvoiceStatusPending).BuildStored()
		require.NoError(t, err)

		changed, err := b.ApplyInvoiceStatus(booking.InvoiceStatusPaid, later)
		require.NoError(t, err)
		assert.True(t, changed)
		assert.Equal(t, booking.InvoiceStatusPaid, *b.InvoiceStatus())

		changed, err = b.ApplyInvoiceStatus(booking.InvoiceStatusFailed, later)
		require.NoError(t, err)
		assert.True(t, changed)
		assert.Equal(t, booking.InvoiceStatusFailed, *b.InvoiceStatus())
	})

	t.Run("replay is a no-op", func(t *testing.T) {
		b, err := builder.NewBookingBuilder().WithInvoice("in_1", booking.InvoiceStatusPaid).BuildStored()
		require.NoError(t, err)
		before := b.UpdatedAt()

		changed, err := b.ApplyInvoiceStatus(booking.InvoiceStatusPaid, later)
		require.NoError(t, err)
		assert.False(t, changed)
		assert.Equal(t, before, b.UpdatedAt())
	})

	t.Run("unknown status", func(t *testing.T) {
		b, err := builder.NewBookingBuilder().WithInvoice("in_1", booking.InvoiceStatusPending).BuildStored()
		require.NoError(t, err)

		_, err = b.ApplyInvoiceStatus(booking.InvoiceStatus("void"), later)
		assert.ErrorIs(t, err, booking.ErrInvalidInvoiceStatus)
	})
}

func TestAttachPaymentIntent(t *testing.T) {
	ownerApproved := func(t *testing.T) *booking.Booking {
		b, err := builder.NewBookingBuilder().WithStatus(booking.StatusAdminApproved).BuildStored()
		require.NoError(t, err)
		rate, err := booking.ParseMonthlyRate("1200")
		require.NoError(t, err)
		require.NoError(t, b.OwnerApprove(booking.NewMonthlyChargeCalculator(), rate, later))
		return b
	}

	t.Run("direct charge leaves the invoice unset", func(t *testing.T) {
		b := ownerApproved(t)

		require.NoError(t, b.AttachPaymentIntent("pi_1", later))
		require.NotNil(t, b.PaymentIntentID())
		assert.Equal(t, "pi_1", *b.PaymentIntentID())
		assert.Equal(t, booking.InvoiceStatusPending, *b.InvoiceStatus())
		assert.Nil(t, b.InvoiceID())
		assert.False(t, b.IsInvoiced())
	})

	t.Run("empty id", func(t *testing.T) {
		b := ownerApproved(t)

		assert.ErrorIs(t, b.AttachPaymentIntent("  ", later), booking.ErrEmptyPaymentIntentID)
		assert.Nil(t, b.PaymentIntentID())
	})

	t.Run("invoiced booking is not charged again", func(t *testing.T) {
		b, err := builder.NewBookingBuilder().WithInvoice("in_1", booking.InvoiceStatusPending).BuildStored()
		require.NoError(t, err)

		assert.ErrorIs(t, b.AttachPaymentIntent("pi_1", later), booking.ErrInvalidState)
		assert.Nil(t, b.PaymentIntentID())
	})

	t.Run("charged booking is not invoiced", func(t *testing.T) {
		b, err := builder.NewBookingBuilder().WithPaymentIntent("pi_1", booking.InvoiceStatusPending).BuildStored()
		require.NoError(t, err)

		assert.ErrorIs(t, b.AttachInvoice("in_1", later), booking.ErrInvalidState)
		assert.Nil(t, b.InvoiceID())
	})

	t.Run("not owner approved", func(t *testing.T) {
		b, err := builder.NewBookingBuilder().WithStatus(booking.StatusAdminApproved).BuildStored()
		require.NoError(t, err)
		assert.ErrorIs(t, b.AttachPaymentIntent("pi_1", later), booking.ErrInvalidState)
	})
}

func TestReconstructBooking(t *testing.T) {
	t.Run("status must agree with flags", func(t *testing.T) {
		dates, err := booking.ParseDateRange("2025-01-01", "2025-02-01")
		require.NoError(t, err)

		_, err = booking.ReconstructBooking(booking.Record{
			ID:            uuid.New(),
			Dates:         dates,
			Status:        booking.StatusPending,
			AdminApproved: true,
		})
		assert.ErrorIs(t, err, booking.ErrInconsistentState)
	})

	t.Run("owner approval without admin approval", func(t *testing.T) {
		_, err := booking.ReconstructBooking(booking.Record{
			ID:            uuid.New(),
			Status:        booking.StatusOwnerApproved,
			OwnerApproved: true,
		})
		assert.ErrorIs(t, err, booking.ErrInconsistentState)
	})
}
