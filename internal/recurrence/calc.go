package recurrence

import (
	"fmt"
	"time"

	"github.com/crucial707/fleet-pm/internal/models"
)

// DefaultPreviewCount is how many occurrences Preview projects when the
// caller does not ask for a specific count.
const DefaultPreviewCount = 10

// DateOnly truncates t to a midnight-UTC calendar day. All recurrence
// arithmetic works on days; clock time and zone offsets never participate.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// NextDueDate computes the due date that follows from for the schedule's
// recurrence rule. Pure and deterministic. Day-of-month, day-of-week and
// month-of-year anchors are clamped to a valid day inside the intended
// target month; they never roll over into an adjacent month.
func NextDueDate(s *models.MaintenanceSchedule, from time.Time) (time.Time, error) {
	from = DateOnly(from)

	switch s.IntervalType {
	case models.IntervalDaily, models.IntervalCustom:
		return from.AddDate(0, 0, s.IntervalValue), nil

	case models.IntervalWeekly:
		base := from.AddDate(0, 0, 7*s.IntervalValue)
		if s.DayOfWeek != nil {
			// Shift within the Sunday-starting week containing base. The
			// shift can move earlier or later but stays inside that week.
			base = base.AddDate(0, 0, *s.DayOfWeek-int(base.Weekday()))
		}
		return base, nil

	case models.IntervalMonthly:
		return addMonths(from, s.IntervalValue, s.DayOfMonth), nil

	case models.IntervalQuarterly:
		return addMonths(from, 3*s.IntervalValue, s.DayOfMonth), nil

	case models.IntervalAnnually:
		year := from.Year() + s.IntervalValue
		month := from.Month()
		if s.MonthOfYear != nil {
			month = time.Month(*s.MonthOfYear)
		}
		day := from.Day()
		if s.DayOfMonth != nil {
			day = *s.DayOfMonth
		}
		return clampedDate(year, month, day), nil
	}

	return time.Time{}, fmt.Errorf("unknown interval type %q", s.IntervalType)
}

// Preview projects up to count future occurrences starting from the
// schedule's start date, each iteration feeding the previous due date back
// in as the new origin. Projection stops as soon as a due date passes the
// schedule's end date (exclusive bound), so the slice may be shorter than
// count, or empty. Stateless: every call recomputes from scratch.
func Preview(s *models.MaintenanceSchedule, count int) ([]models.Occurrence, error) {
	if count <= 0 {
		count = DefaultPreviewCount
	}

	occs := make([]models.Occurrence, 0, count)
	from := DateOnly(s.StartDate)
	for len(occs) < count {
		due, err := NextDueDate(s, from)
		if err != nil {
			return nil, err
		}
		if s.EndDate != nil && due.After(DateOnly(*s.EndDate)) {
			break
		}
		occs = append(occs, models.Occurrence{
			DueDate:  due,
			LeadDate: due.AddDate(0, 0, -s.LeadTimeDays),
		})
		from = due
	}
	return occs, nil
}

// addMonths advances from by the given number of calendar months, carrying
// the year on overflow. dayOfMonth overrides the day when set; either way
// the day is clamped to the target month's actual length.
func addMonths(from time.Time, months int, dayOfMonth *int) time.Time {
	idx := int(from.Month()) - 1 + months
	year := from.Year() + idx/12
	month := time.Month(idx%12 + 1)

	day := from.Day()
	if dayOfMonth != nil {
		day = *dayOfMonth
	}
	return clampedDate(year, month, day)
}

// clampedDate builds a date with day clamped to the length of (year, month).
func clampedDate(year int, month time.Month, day int) time.Time {
	if last := daysIn(year, month); day > last {
		day = last
	}
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// daysIn returns the number of days in the given month. Day zero of the
// following month is the last day of this one.
func daysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
