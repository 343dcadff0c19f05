package booking

import (
	"time"

	"github.com/shopspring/decimal"
)

type ChargeCalculator interface {
	Charge(dates DateRange, rate MonthlyRate) (Money, error)
}

// MonthlyChargeCalculator bills whole calendar months. A started month is
// billed in full: 01-15 to 03-15 is two periods, 01-15 to 03-16 is three.
type MonthlyChargeCalculator struct{}

func NewMonthlyChargeCalculator() *MonthlyChargeCalculator {
	return &MonthlyChargeCalculator{}
}

func (c *MonthlyChargeCalculator) Charge(dates DateRange, rate MonthlyRate) (Money, error) {
	periods, err := BillingPeriods(dates.Start(), dates.End())
	if err != nil {
		return Money{}, err
	}

	total := rate.Amount().Mul(decimal.NewFromInt(periods))
	// half away from zero, to the cent
	cents := total.Shift(2).Round(0).IntPart()
	return NewMoney(cents)
}

func BillingPeriods(start, end time.Time) (int64, error) {
	sy, sm, sd := start.Date()
	ey, em, ed := end.Date()

	periods := int64(ey-sy)*12 + int64(em-sm)
	if ed > sd {
		periods++
	}
	if periods <= 0 {
		return 0, ErrInvalidRange
	}
	return periods, nil
}
