package domain

import (
	"errors"
	"fmt"
	"math"
	"time"
)

// DefaultAvailableBeds is the hospital bed capacity in Belgium used as the
// saturation threshold.
const DefaultAvailableBeds = 61600

var (
	// ErrNoBaseline is returned when occupancy changed but the previous
	// day's total is zero, so no growth rate exists.
	ErrNoBaseline = errors.New("no hospitalisations on the previous day")

	// ErrUndefinedProjection is returned when the logarithmic extrapolation
	// has no real solution (rate <= -100% or non-positive occupancy).
	ErrUndefinedProjection = errors.New("saturation projection undefined")
)

// Occupancy holds the two consecutive TOTAL_IN sums a projection starts from.
type Occupancy struct {
	Date      time.Time
	Today     float64
	Yesterday float64
}

// Change is the day-over-day difference.
func (o Occupancy) Change() float64 { return o.Today - o.Yesterday }

// OccupancyAt sums TOTAL_IN at ref and at the day before.
func OccupancyAt(records []Record, ref time.Time) (Occupancy, error) {
	today, err := SumAtDate(records, FormatDate(ref), FieldTotalIn)
	if err != nil {
		return Occupancy{}, err
	}
	yesterday, err := SumAtDate(records, FormatDate(ref.AddDate(0, 0, -1)), FieldTotalIn)
	if err != nil {
		return Occupancy{}, err
	}
	return Occupancy{Date: ref, Today: today, Yesterday: yesterday}, nil
}

// Project returns the number of days, at a constant daily growth rate, until
// occupancy reaches beds. It returns 0 when occupancy did not change or the
// hospital is empty. The result is negative when occupancy shrinks while
// already above capacity.
func (o Occupancy) Project(beds float64) (float64, error) {
	change := o.Change()
	if change == 0 || o.Today == 0 {
		return 0, nil
	}
	if o.Yesterday == 0 {
		return 0, fmt.Errorf("%s: %w", FormatDate(o.Date), ErrNoBaseline)
	}

	rate := change / o.Yesterday
	ratio := beds / o.Today
	if rate <= -1 || ratio <= 0 {
		return 0, fmt.Errorf("%s: rate %.4f, capacity ratio %.4f: %w",
			FormatDate(o.Date), rate, ratio, ErrUndefinedProjection)
	}
	return math.Log(ratio) / math.Log1p(rate), nil
}

// DaysToSaturation projects the days until beds are full from the
// hospitalisation records around ref.
func DaysToSaturation(records []Record, ref time.Time, beds float64) (float64, error) {
	occ, err := OccupancyAt(records, ref)
	if err != nil {
		return 0, err
	}
	return occ.Project(beds)
}

// DateOfSaturation adds a possibly fractional number of days to ref.
func DateOfSaturation(ref time.Time, days float64) time.Time {
	return ref.Add(time.Duration(days * float64(24*time.Hour)))
}
