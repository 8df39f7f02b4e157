package repo

import (
	"context"
	"database/sql"

	"github.com/crucial707/fleet-pm/internal/models"
)

const scheduleColumns = `id, organisation_id, asset_id, name, interval_type, interval_value,
		day_of_week, day_of_month, month_of_year, start_date, end_date, lead_time_days,
		interval_mileage, interval_hours, next_due_date, last_triggered_at,
		last_triggered_mileage, last_triggered_hours, is_active, created_at`

// ScheduleRepo persists maintenance schedules.
type ScheduleRepo struct {
	DB *sql.DB
}

// NewScheduleRepo returns a new ScheduleRepo.
func NewScheduleRepo(db *sql.DB) *ScheduleRepo {
	return &ScheduleRepo{DB: db}
}

// Count returns the total number of schedules.
func (r *ScheduleRepo) Count(ctx context.Context) (int, error) {
	var n int
	err := r.DB.QueryRowContext(ctx, "SELECT COUNT(*) FROM maintenance_schedules").Scan(&n)
	return n, err
}

// List returns schedules, most recent first. limit/offset for pagination.
func (r *ScheduleRepo) List(ctx context.Context, limit, offset int) ([]models.MaintenanceSchedule, error) {
	query := `
		SELECT ` + scheduleColumns + `
		FROM maintenance_schedules
		ORDER BY id DESC
		LIMIT $1 OFFSET $2
	`
	rows, err := r.DB.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectSchedules(rows)
}

// ListActive returns all active schedules, oldest first (for the runner).
func (r *ScheduleRepo) ListActive(ctx context.Context) ([]models.MaintenanceSchedule, error) {
	query := `
		SELECT ` + scheduleColumns + `
		FROM maintenance_schedules
		WHERE is_active = true
		ORDER BY id
	`
	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectSchedules(rows)
}

// GetByID returns one schedule by id, or nil when absent.
func (r *ScheduleRepo) GetByID(ctx context.Context, id int) (*models.MaintenanceSchedule, error) {
	query := `
		SELECT ` + scheduleColumns + `
		FROM maintenance_schedules
		WHERE id = $1
	`
	s, err := scanSchedule(r.DB.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return s, nil
}

// Create inserts a new schedule and returns it with id, created_at set.
// The caller provides next_due_date (first occurrence from start_date).
func (r *ScheduleRepo) Create(ctx context.Context, s *models.MaintenanceSchedule) (*models.MaintenanceSchedule, error) {
	query := `
		INSERT INTO maintenance_schedules
			(organisation_id, asset_id, name, interval_type, interval_value,
			 day_of_week, day_of_month, month_of_year, start_date, end_date, lead_time_days,
			 interval_mileage, interval_hours, next_due_date, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		RETURNING ` + scheduleColumns + `
	`
	return scanSchedule(r.DB.QueryRowContext(ctx, query,
		s.OrganisationID, s.AssetID, s.Name, s.IntervalType, s.IntervalValue,
		s.DayOfWeek, s.DayOfMonth, s.MonthOfYear, s.StartDate, s.EndDate, s.LeadTimeDays,
		s.IntervalMileage, s.IntervalHours, s.NextDueDate, s.IsActive,
	))
}

// Update rewrites the schedule's configuration (not its trigger state).
func (r *ScheduleRepo) Update(ctx context.Context, s *models.MaintenanceSchedule) error {
	_, err := r.DB.ExecContext(ctx, `
		UPDATE maintenance_schedules
		SET name = $1, interval_type = $2, interval_value = $3,
			day_of_week = $4, day_of_month = $5, month_of_year = $6,
			start_date = $7, end_date = $8, lead_time_days = $9,
			interval_mileage = $10, interval_hours = $11, next_due_date = $12
		WHERE id = $13`,
		s.Name, s.IntervalType, s.IntervalValue,
		s.DayOfWeek, s.DayOfMonth, s.MonthOfYear,
		s.StartDate, s.EndDate, s.LeadTimeDays,
		s.IntervalMileage, s.IntervalHours, s.NextDueDate, s.ID,
	)
	return err
}

// UpdateTriggerState writes back the mutable trigger fields after a fire.
func (r *ScheduleRepo) UpdateTriggerState(ctx context.Context, s *models.MaintenanceSchedule) error {
	_, err := r.DB.ExecContext(ctx, `
		UPDATE maintenance_schedules
		SET next_due_date = $1, last_triggered_at = $2,
			last_triggered_mileage = $3, last_triggered_hours = $4, is_active = $5
		WHERE id = $6`,
		s.NextDueDate, s.LastTriggeredAt, s.LastTriggeredMileage, s.LastTriggeredHours, s.IsActive, s.ID,
	)
	return err
}

// SetActive toggles evaluation without deleting history.
func (r *ScheduleRepo) SetActive(ctx context.Context, id int, active bool) error {
	_, err := r.DB.ExecContext(ctx,
		`UPDATE maintenance_schedules SET is_active = $1 WHERE id = $2`, active, id)
	return err
}

// Delete removes a schedule by id.
func (r *ScheduleRepo) Delete(ctx context.Context, id int) error {
	_, err := r.DB.ExecContext(ctx, `DELETE FROM maintenance_schedules WHERE id = $1`, id)
	return err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSchedule(row rowScanner) (*models.MaintenanceSchedule, error) {
	s := &models.MaintenanceSchedule{}
	var (
		dayOfWeek, dayOfMonth, monthOfYear sql.NullInt64
		endDate, lastTriggeredAt           sql.NullTime
		intervalMileage, intervalHours     sql.NullFloat64
	)
	err := row.Scan(
		&s.ID, &s.OrganisationID, &s.AssetID, &s.Name, &s.IntervalType, &s.IntervalValue,
		&dayOfWeek, &dayOfMonth, &monthOfYear, &s.StartDate, &endDate, &s.LeadTimeDays,
		&intervalMileage, &intervalHours, &s.NextDueDate, &lastTriggeredAt,
		&s.LastTriggeredMileage, &s.LastTriggeredHours, &s.IsActive, &s.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	if dayOfWeek.Valid {
		v := int(dayOfWeek.Int64)
		s.DayOfWeek = &v
	}
	if dayOfMonth.Valid {
		v := int(dayOfMonth.Int64)
		s.DayOfMonth = &v
	}
	if monthOfYear.Valid {
		v := int(monthOfYear.Int64)
		s.MonthOfYear = &v
	}
	if endDate.Valid {
		v := endDate.Time
		s.EndDate = &v
	}
	if lastTriggeredAt.Valid {
		v := lastTriggeredAt.Time
		s.LastTriggeredAt = &v
	}
	if intervalMileage.Valid {
		v := intervalMileage.Float64
		s.IntervalMileage = &v
	}
	if intervalHours.Valid {
		v := intervalHours.Float64
		s.IntervalHours = &v
	}
	return s, nil
}

func collectSchedules(rows *sql.Rows) ([]models.MaintenanceSchedule, error) {
	var list []models.MaintenanceSchedule
	for rows.Next() {
		s, err := scanSchedule(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, *s)
	}
	return list, rows.Err()
}
