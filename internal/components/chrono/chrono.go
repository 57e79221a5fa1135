package chrono

import (
	"fmt"
	"time"
)

var msk *time.Location

func init() {
	var err error
	msk, err = time.LoadLocation("Europe/Moscow")
	if err != nil {
		// hosts without tzdata, moscow has had no DST since 2014
		msk = time.FixedZone("MSK", 3*60*60)
	}
}

// Moscow returns a [*time.Location] for Europe/Moscow, the portal's timezone.
func Moscow() *time.Location {
	return msk
}

// TimeAPI is the interface that anything depending on the system clock should use.
type TimeAPI interface {
	// Now returns the current time in Europe/Moscow.
	Now() time.Time
}

// StandardTime is the standard implementation of TimeAPI using the standard library.
type StandardTime struct{}

// NewStandardTime is the constructor of StandardTime.
func NewStandardTime() StandardTime {
	return StandardTime{}
}

func (s StandardTime) Now() time.Time {
	return time.Now().In(msk)
}

// FixedTime is a TimeAPI that always returns the same instant.
type FixedTime time.Time

func (f FixedTime) Now() time.Time {
	return time.Time(f).In(msk)
}

// PeriodLayout is the dd.mm.yyyy date format the portal uses in urls and forms.
const PeriodLayout = "02.01.2006"

func FormatPeriod(t time.Time) string {
	return t.Format(PeriodLayout)
}

func ParsePeriod(period string) (time.Time, error) {
	t, err := time.ParseInLocation(PeriodLayout, period, msk)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse period %q (expected dd.mm.yyyy): %w", period, err)
	}
	return t, nil
}

// Range returns today and today+days formatted as periods.
func Range(now time.Time, days int) (from, to string) {
	return FormatPeriod(now), FormatPeriod(now.AddDate(0, 0, days))
}
