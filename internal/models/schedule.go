package models

import (
	"fmt"
	"time"
)

// IntervalType is the calendar recurrence unit of a maintenance schedule.
type IntervalType string

const (
	IntervalDaily     IntervalType = "daily"
	IntervalWeekly    IntervalType = "weekly"
	IntervalMonthly   IntervalType = "monthly"
	IntervalQuarterly IntervalType = "quarterly"
	IntervalAnnually  IntervalType = "annually"
	// IntervalCustom repeats every IntervalValue days.
	IntervalCustom IntervalType = "custom"
)

// MaintenanceSchedule is a recurring maintenance obligation for one asset.
// A schedule always carries a calendar rule; mileage and hours triggers are
// optional and fire independently of the calendar.
type MaintenanceSchedule struct {
	ID              int          `json:"id"`
	OrganisationID  int          `json:"organisation_id"`
	AssetID         int          `json:"asset_id"`
	Name            string       `json:"name"`
	IntervalType    IntervalType `json:"interval_type"`
	IntervalValue   int          `json:"interval_value"`
	DayOfWeek       *int         `json:"day_of_week,omitempty"`   // 0=Sunday..6=Saturday, weekly only
	DayOfMonth      *int         `json:"day_of_month,omitempty"`  // 1-31, monthly/quarterly/annually
	MonthOfYear     *int         `json:"month_of_year,omitempty"` // 1-12, annually only
	StartDate       time.Time    `json:"start_date"`
	EndDate         *time.Time   `json:"end_date,omitempty"`
	LeadTimeDays    int          `json:"lead_time_days"`
	IntervalMileage *float64     `json:"interval_mileage,omitempty"`
	IntervalHours   *float64     `json:"interval_hours,omitempty"`

	NextDueDate          time.Time  `json:"next_due_date"`
	LastTriggeredAt      *time.Time `json:"last_triggered_at,omitempty"`
	LastTriggeredMileage float64    `json:"last_triggered_mileage"`
	LastTriggeredHours   float64    `json:"last_triggered_hours"`
	IsActive             bool       `json:"is_active"`
	CreatedAt            time.Time  `json:"created_at"`
}

// Occurrence is one projected cycle of a schedule. Not persisted.
type Occurrence struct {
	DueDate  time.Time `json:"due_date"`
	LeadDate time.Time `json:"lead_date"`
}

// Validate checks the recurrence configuration. Invalid configuration is
// rejected at write time; the runner also calls this and skips (never
// panics on) schedules that slipped through.
func (s *MaintenanceSchedule) Validate() error {
	switch s.IntervalType {
	case IntervalDaily, IntervalWeekly, IntervalMonthly, IntervalQuarterly, IntervalAnnually, IntervalCustom:
	default:
		return fmt.Errorf("unknown interval type %q", s.IntervalType)
	}
	if s.IntervalValue < 1 {
		return fmt.Errorf("interval_value must be >= 1, got %d", s.IntervalValue)
	}
	if s.DayOfWeek != nil && (*s.DayOfWeek < 0 || *s.DayOfWeek > 6) {
		return fmt.Errorf("day_of_week must be 0-6, got %d", *s.DayOfWeek)
	}
	if s.DayOfMonth != nil && (*s.DayOfMonth < 1 || *s.DayOfMonth > 31) {
		return fmt.Errorf("day_of_month must be 1-31, got %d", *s.DayOfMonth)
	}
	if s.MonthOfYear != nil && (*s.MonthOfYear < 1 || *s.MonthOfYear > 12) {
		return fmt.Errorf("month_of_year must be 1-12, got %d", *s.MonthOfYear)
	}
	if s.LeadTimeDays < 0 {
		return fmt.Errorf("lead_time_days must be >= 0, got %d", s.LeadTimeDays)
	}
	if s.IntervalMileage != nil && *s.IntervalMileage <= 0 {
		return fmt.Errorf("interval_mileage must be > 0, got %v", *s.IntervalMileage)
	}
	if s.IntervalHours != nil && *s.IntervalHours <= 0 {
		return fmt.Errorf("interval_hours must be > 0, got %v", *s.IntervalHours)
	}
	if s.EndDate != nil && s.EndDate.Before(s.StartDate) {
		return fmt.Errorf("end_date %s is before start_date %s",
			s.EndDate.Format("2006-01-02"), s.StartDate.Format("2006-01-02"))
	}
	return nil
}
