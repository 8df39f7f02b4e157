package runner

import (
	"context"
	"log/slog"
	"time"

	"github.com/crucial707/fleet-pm/internal/metrics"
	"github.com/crucial707/fleet-pm/internal/models"
	"github.com/crucial707/fleet-pm/internal/recurrence"
	"github.com/crucial707/fleet-pm/internal/trigger"
)

// ScheduleStore reads active schedules and writes back trigger state.
type ScheduleStore interface {
	ListActive(ctx context.Context) ([]models.MaintenanceSchedule, error)
	UpdateTriggerState(ctx context.Context, s *models.MaintenanceSchedule) error
}

// ReadingSource returns the latest telemetry for an asset, or (nil, nil)
// when no reading exists.
type ReadingSource interface {
	Latest(ctx context.Context, assetID int) (*models.AssetReading, error)
}

// WorkOrderCreator is the generation collaborator. The engine treats it as
// opaque: it only needs the created work order's ID for the cycle ledger.
type WorkOrderCreator interface {
	CreateFromSchedule(ctx context.Context, s *models.MaintenanceSchedule, f trigger.Firing) (int, error)
}

// CycleLedger is the idempotency guard. RecordFire must be an atomic
// insert-if-absent: it returns false, nil when the cycle was already
// recorded.
type CycleLedger interface {
	HasFired(ctx context.Context, scheduleID int, cycleKey string) (bool, error)
	RecordFire(ctx context.Context, scheduleID int, cycleKey string, workOrderID int) (bool, error)
}

// Notifier is told about fired cycles after the schedule advanced.
// Best-effort: its errors never affect the pass outcome.
type Notifier interface {
	CycleFired(ctx context.Context, s *models.MaintenanceSchedule, f trigger.Firing, workOrderID int) error
}

// PassSummary is the per-pass report returned to the host batch runner.
type PassSummary struct {
	AsOf             time.Time `json:"as_of"`
	Checked          int       `json:"checked"`
	Fired            int       `json:"fired"`
	SkippedNotDue    int       `json:"skipped_not_due"`
	SkippedDuplicate int       `json:"skipped_duplicate"`
	Degraded         int       `json:"degraded"`
	Errors           int       `json:"errors"`
	// ErroredScheduleIDs lists schedules whose evaluation failed this pass.
	// They are left un-advanced and retried on the next pass.
	ErroredScheduleIDs []int `json:"errored_schedule_ids,omitempty"`
}

// Runner evaluates every active schedule once per pass: trigger evaluation,
// ledger check, work-order generation, recurrence advancement. All
// collaborators are injected; the runner holds no state of its own, so
// overlapping passes are safe: per-cycle correctness comes entirely from
// the ledger's insert-if-absent guarantee.
type Runner struct {
	Schedules  ScheduleStore
	Readings   ReadingSource
	WorkOrders WorkOrderCreator
	Ledger     CycleLedger
	Notifier   Notifier // optional
}

// RunPass evaluates all active schedules as of the given date. One
// schedule's failure never aborts the rest; failures are counted and the
// affected schedules retried next pass. The returned error is non-nil only
// when the schedule list itself could not be loaded.
func (r *Runner) RunPass(ctx context.Context, asOf time.Time) (PassSummary, error) {
	sum := PassSummary{AsOf: recurrence.DateOnly(asOf)}

	schedules, err := r.Schedules.ListActive(ctx)
	if err != nil {
		return sum, err
	}

	for i := range schedules {
		s := &schedules[i]
		sum.Checked++
		r.evaluateSchedule(ctx, s, asOf, &sum)
	}

	metrics.RecordPass(sum.Checked, sum.SkippedDuplicate, sum.Errors)
	slog.Info("evaluation pass complete",
		"as_of", sum.AsOf.Format("2006-01-02"),
		"checked", sum.Checked,
		"fired", sum.Fired,
		"skipped_not_due", sum.SkippedNotDue,
		"skipped_duplicate", sum.SkippedDuplicate,
		"degraded", sum.Degraded,
		"errors", sum.Errors)
	return sum, nil
}

func (r *Runner) evaluateSchedule(ctx context.Context, s *models.MaintenanceSchedule, asOf time.Time, sum *PassSummary) {
	// Configuration is validated at write time; a malformed row that
	// slipped through is skipped, not fatal to the pass.
	if err := s.Validate(); err != nil {
		slog.Warn("skipping malformed schedule", "schedule_id", s.ID, "err", err)
		sum.Errors++
		sum.ErroredScheduleIDs = append(sum.ErroredScheduleIDs, s.ID)
		return
	}

	reading, err := r.Readings.Latest(ctx, s.AssetID)
	if err != nil {
		// Telemetry unavailable: degrade to time-only evaluation.
		slog.Warn("reading lookup failed, evaluating time trigger only",
			"schedule_id", s.ID, "asset_id", s.AssetID, "err", err)
		reading = nil
	}

	ev := trigger.Evaluate(s, reading, asOf)
	if ev.Degraded {
		sum.Degraded++
	}
	if !ev.Fires {
		sum.SkippedNotDue++
		return
	}

	for _, f := range ev.Firings {
		fired, err := r.Ledger.HasFired(ctx, s.ID, f.CycleKey)
		if err != nil {
			r.fail(s, f, sum, "ledger check failed", err)
			return
		}
		if fired {
			// The cycle is in the ledger but this schedule still produced
			// the firing, so a previous pass failed between RecordFire and
			// the state write. The work order exists; only the advancement
			// is missing. Retry it instead of leaving the schedule wedged.
			sum.SkippedDuplicate++
			if err := r.advance(ctx, s, f, asOf); err != nil {
				r.fail(s, f, sum, "schedule update retry failed", err)
				return
			}
			slog.Info("re-advanced schedule past already-recorded cycle",
				"schedule_id", s.ID, "cycle_key", f.CycleKey)
			continue
		}

		workOrderID, err := r.WorkOrders.CreateFromSchedule(ctx, s, f)
		if err != nil {
			// Schedule stays un-advanced and no cycle record is written,
			// so the next pass retries this exact cycle.
			r.fail(s, f, sum, "work order generation failed", err)
			return
		}

		inserted, err := r.Ledger.RecordFire(ctx, s.ID, f.CycleKey, workOrderID)
		if err != nil {
			r.fail(s, f, sum, "cycle record failed", err)
			return
		}
		if !inserted {
			// A concurrent pass won the race for this cycle; it owns the
			// schedule advancement too.
			sum.SkippedDuplicate++
			continue
		}

		if err := r.advance(ctx, s, f, asOf); err != nil {
			r.fail(s, f, sum, "schedule update failed", err)
			return
		}

		sum.Fired++
		metrics.RecordFiredCycle(string(f.Condition))
		if r.Notifier != nil {
			if err := r.Notifier.CycleFired(ctx, s, f, workOrderID); err != nil {
				slog.Warn("notification failed", "schedule_id", s.ID, "work_order_id", workOrderID, "err", err)
			}
		}
	}
}

// advance moves the schedule's mutable trigger state past the fired cycle
// and persists it. Only the fields relevant to the fired condition change.
func (r *Runner) advance(ctx context.Context, s *models.MaintenanceSchedule, f trigger.Firing, asOf time.Time) error {
	now := asOf
	s.LastTriggeredAt = &now

	switch f.Condition {
	case trigger.ConditionTime:
		next, err := recurrence.NextDueDate(s, s.NextDueDate)
		if err != nil {
			return err
		}
		s.NextDueDate = next
		if s.EndDate != nil && next.After(recurrence.DateOnly(*s.EndDate)) {
			// Recurrence window exhausted.
			s.IsActive = false
			slog.Info("schedule completed its recurrence window", "schedule_id", s.ID,
				"end_date", s.EndDate.Format("2006-01-02"))
		}
	case trigger.ConditionMileage:
		s.LastTriggeredMileage = f.Threshold
	case trigger.ConditionHours:
		s.LastTriggeredHours = f.Threshold
	}

	return r.Schedules.UpdateTriggerState(ctx, s)
}

func (r *Runner) fail(s *models.MaintenanceSchedule, f trigger.Firing, sum *PassSummary, msg string, err error) {
	slog.Error(msg, "schedule_id", s.ID, "cycle_key", f.CycleKey, "err", err)
	sum.Errors++
	sum.ErroredScheduleIDs = append(sum.ErroredScheduleIDs, s.ID)
}
