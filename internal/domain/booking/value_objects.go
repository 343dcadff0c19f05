package booking

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

const dateLayout = "2006-01-02"

// DateRange is a half-open [start, end) range of calendar dates.
type DateRange struct {
	start time.Time
	end   time.Time
}

func NewDateRange(start, end time.Time) (DateRange, error) {
	s, e := truncateToDate(start), truncateToDate(end)
	if !s.Before(e) {
		return DateRange{}, ErrInvalidRange
	}
	return DateRange{start: s, end: e}, nil
}

func ParseDateRange(start, end string) (DateRange, error) {
	s, err := time.Parse(dateLayout, start)
	if err != nil {
		return DateRange{}, ErrInvalidRange
	}
	e, err := time.Parse(dateLayout, end)
	if err != nil {
		return DateRange{}, ErrInvalidRange
	}
	return NewDateRange(s, e)
}

func (r DateRange) Start() time.Time { return r.start }
func (r DateRange) End() time.Time   { return r.end }

// Overlaps uses half-open semantics: a range ending on the day another starts does not overlap it.
func (r DateRange) Overlaps(other DateRange) bool {
	return r.start.Before(other.end) && other.start.Before(r.end)
}

func (r DateRange) String() string {
	return fmt.Sprintf("[%s,%s)", r.start.Format(dateLayout), r.end.Format(dateLayout))
}

func truncateToDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

type Money struct {
	cents int64
}

func NewMoney(cents int64) (Money, error) {
	if cents < 0 {
		return Money{}, ErrNegativeAmount
	}
	return Money{cents: cents}, nil
}

func (m Money) Cents() int64 {
	return m.cents
}

func (m Money) Decimal() decimal.Decimal {
	return decimal.New(m.cents, -2)
}

func (m Money) String() string {
	return m.Decimal().StringFixed(2)
}

// MonthlyRate is the price of one billing period in major currency units.
type MonthlyRate struct {
	amount decimal.Decimal
}

func NewMonthlyRate(amount decimal.Decimal) (MonthlyRate, error) {
	if amount.IsNegative() {
		return MonthlyRate{}, ErrNegativeAmount
	}
	return MonthlyRate{amount: amount}, nil
}

func ParseMonthlyRate(s string) (MonthlyRate, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return MonthlyRate{}, fmt.Errorf("parse monthly rate %q: %w", s, err)
	}
	return NewMonthlyRate(d)
}

func (r MonthlyRate) Amount() decimal.Decimal {
	return r.amount
}
