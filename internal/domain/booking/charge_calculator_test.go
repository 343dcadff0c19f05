//go:build unit

package booking_test

import (
	"testing"

	"rental-booking/internal/domain/booking"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMonthlyChargeCalculator(t *testing.T) {
	calc := booking.NewMonthlyChargeCalculator()

	cases := []struct {
		name        string
		start, end  string
		rate        string
		wantPeriods int64
		wantCents   int64
	}{
		{name: "same day next month is one period", start: "2025-01-15", end: "2025-02-15", rate: "1000", wantPeriods: 1, wantCents: 100000},
		{name: "exactly two months", start: "2025-01-15", end: "2025-03-15", rate: "1000", wantPeriods: 2, wantCents: 200000},
		{name: "one day over starts a third period", start: "2025-01-15", end: "2025-03-16", rate: "1000", wantPeriods: 3, wantCents: 300000},
		{name: "a single day is billed as a month", start: "2025-01-15", end: "2025-01-16", rate: "1000", wantPeriods: 1, wantCents: 100000},
		{name: "end day before start day", start: "2025-01-31", end: "2025-03-01", rate: "1000", wantPeriods: 2, wantCents: 200000},
		{name: "across a year boundary", start: "2024-11-10", end: "2025-02-10", rate: "850.50", wantPeriods: 3, wantCents: 255150},
		{name: "fractional cents round half away from zero", start: "2025-01-01", end: "2025-04-01", rate: "0.005", wantPeriods: 3, wantCents: 2},
		{name: "free apartment", start: "2025-01-01", end: "2025-02-01", rate: "0", wantPeriods: 1, wantCents: 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			dates, err := booking.ParseDateRange(tc.start, tc.end)
			require.NoError(t, err)
			rate, err := booking.ParseMonthlyRate(tc.rate)
			require.NoError(t, err)

			periods, err := booking.BillingPeriods(dates.Start(), dates.End())
			require.NoError(t, err)
			assert.Equal(t, tc.wantPeriods, periods)

			amount, err := calc.Charge(dates, rate)
			require.NoError(t, err)
			assert.Equal(t, tc.wantCents, amount.Cents())
		})
	}

	t.Run("empty range", func(t *testing.T) {
		dates, err := booking.ParseDateRange("2025-01-01", "2025-01-02")
		require.NoError(t, err)

		_, err = booking.BillingPeriods(dates.End(), dates.Start())
		assert.ErrorIs(t, err, booking.ErrInvalidRange)
	})

	t.Run("negative rate is rejected", func(t *testing.T) {
		_, err := booking.ParseMonthlyRate("-1")
		assert.ErrorIs(t, err, booking.ErrNegativeAmount)
	})
}
