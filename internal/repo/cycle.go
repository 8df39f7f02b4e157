package repo

import (
	"context"
	"database/sql"

	"github.com/crucial707/fleet-pm/internal/models"
)

// CycleRepo is the Postgres-backed idempotency ledger. The
// UNIQUE (schedule_id, cycle_key) constraint on cycle_records makes
// RecordFire an atomic insert-if-absent, which is what closes the race
// between two evaluation passes observing the same unfired cycle.
type CycleRepo struct {
	DB *sql.DB
}

// NewCycleRepo returns a new CycleRepo.
func NewCycleRepo(db *sql.DB) *CycleRepo {
	return &CycleRepo{DB: db}
}

// HasFired reports whether a cycle record exists for (scheduleID, cycleKey).
func (r *CycleRepo) HasFired(ctx context.Context, scheduleID int, cycleKey string) (bool, error) {
	var exists bool
	err := r.DB.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM cycle_records WHERE schedule_id = $1 AND cycle_key = $2)`,
		scheduleID, cycleKey,
	).Scan(&exists)
	return exists, err
}

// RecordFire inserts the cycle record. Returns false when the cycle was
// already recorded (ON CONFLICT DO NOTHING inserted zero rows); the
// duplicate outcome is not an error.
func (r *CycleRepo) RecordFire(ctx context.Context, scheduleID int, cycleKey string, workOrderID int) (bool, error) {
	res, err := r.DB.ExecContext(ctx, `
		INSERT INTO cycle_records (schedule_id, cycle_key, work_order_id)
		VALUES ($1, $2, $3)
		ON CONFLICT (schedule_id, cycle_key) DO NOTHING`,
		scheduleID, cycleKey, workOrderID,
	)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n == 1, nil
}

// ListBySchedule returns a schedule's fired cycles, newest first.
func (r *CycleRepo) ListBySchedule(ctx context.Context, scheduleID, limit, offset int) ([]models.CycleRecord, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT id, schedule_id, cycle_key, work_order_id, created_at
		FROM cycle_records
		WHERE schedule_id = $1
		ORDER BY id DESC
		LIMIT $2 OFFSET $3`,
		scheduleID, limit, offset,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var list []models.CycleRecord
	for rows.Next() {
		var c models.CycleRecord
		if err := rows.Scan(&c.ID, &c.ScheduleID, &c.CycleKey, &c.WorkOrderID, &c.CreatedAt); err != nil {
			return nil, err
		}
		list = append(list, c)
	}
	return list, rows.Err()
}
