package trigger

import (
	"fmt"
	"strconv"
	"time"

	"github.com/crucial707/fleet-pm/internal/models"
	"github.com/crucial707/fleet-pm/internal/recurrence"
)

// Condition names a trigger condition configured on a schedule.
type Condition string

const (
	ConditionTime    Condition = "time"
	ConditionMileage Condition = "mileage"
	ConditionHours   Condition = "hours"
)

// Firing is one cycle that is ready to generate a work order. CycleKey is
// the idempotency key for the ledger: the due date for a time firing, the
// crossed usage threshold for mileage/hours firings.
type Firing struct {
	Condition Condition
	CycleKey  string
	DueDate   time.Time
	// Threshold is the usage boundary that was crossed. Zero for time firings.
	Threshold float64
}

// Evaluation is the outcome of evaluating one schedule against current
// telemetry and the evaluation date.
type Evaluation struct {
	Fires bool
	// Firings is ordered: the time condition first, then mileage thresholds
	// ascending, then hours thresholds ascending. A single reading jump that
	// crosses several thresholds yields one firing per threshold.
	Firings []Firing
	// Degraded is set when the schedule has usage triggers but no reading
	// was available, so only the time condition was evaluated.
	Degraded bool
}

// Evaluate decides whether any of the schedule's trigger conditions are
// satisfied. Conditions combine by OR: the calendar condition fires once
// today reaches the lead date, and each configured usage condition fires
// independently whenever the reading crosses its next threshold. reading
// may be nil.
func Evaluate(s *models.MaintenanceSchedule, reading *models.AssetReading, today time.Time) Evaluation {
	today = recurrence.DateOnly(today)
	var ev Evaluation

	due := recurrence.DateOnly(s.NextDueDate)
	leadDate := due.AddDate(0, 0, -s.LeadTimeDays)
	if !today.Before(leadDate) {
		ev.Firings = append(ev.Firings, Firing{
			Condition: ConditionTime,
			CycleKey:  "due:" + due.Format("2006-01-02"),
			DueDate:   due,
		})
	}

	hasUsage := s.IntervalMileage != nil || s.IntervalHours != nil
	if hasUsage && reading == nil {
		ev.Degraded = true
	}

	if reading != nil {
		if s.IntervalMileage != nil {
			ev.Firings = append(ev.Firings,
				usageFirings(ConditionMileage, s.LastTriggeredMileage, *s.IntervalMileage, reading.CurrentMileage, today)...)
		}
		if s.IntervalHours != nil {
			ev.Firings = append(ev.Firings,
				usageFirings(ConditionHours, s.LastTriggeredHours, *s.IntervalHours, reading.CurrentHours, today)...)
		}
	}

	ev.Fires = len(ev.Firings) > 0
	return ev
}

// usageFirings returns one firing per interval threshold between the last
// triggered value and the current reading, in ascending order.
func usageFirings(cond Condition, last, interval, current float64, today time.Time) []Firing {
	if interval <= 0 {
		return nil
	}
	var out []Firing
	// Each threshold is computed by multiplication, not accumulated
	// addition, so fractional intervals cannot drift off an exact boundary.
	for n := 1; ; n++ {
		threshold := last + interval*float64(n)
		if threshold > current {
			break
		}
		out = append(out, Firing{
			Condition: cond,
			CycleKey:  fmt.Sprintf("%s:%s", cond, strconv.FormatFloat(threshold, 'f', -1, 64)),
			DueDate:   today,
			Threshold: threshold,
		})
	}
	return out
}
