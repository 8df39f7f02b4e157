package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/crucial707/fleet-pm/internal/models"
	"github.com/crucial707/fleet-pm/internal/recurrence"
	"github.com/crucial707/fleet-pm/internal/repo"
	"github.com/go-chi/chi/v5"
)

// ScheduleHandler handles maintenance schedule CRUD and occurrence preview.
type ScheduleHandler struct {
	Repo   *repo.ScheduleRepo
	Cycles *repo.CycleRepo
	Audit  *repo.AuditRepo
}

// scheduleInput is the write payload. Dates are "2006-01-02" strings.
type scheduleInput struct {
	OrganisationID  int      `json:"organisation_id"`
	AssetID         int      `json:"asset_id"`
	Name            string   `json:"name"`
	IntervalType    string   `json:"interval_type"`
	IntervalValue   int      `json:"interval_value"`
	DayOfWeek       *int     `json:"day_of_week"`
	DayOfMonth      *int     `json:"day_of_month"`
	MonthOfYear     *int     `json:"month_of_year"`
	StartDate       string   `json:"start_date"`
	EndDate         string   `json:"end_date"`
	LeadTimeDays    int      `json:"lead_time_days"`
	IntervalMileage *float64 `json:"interval_mileage"`
	IntervalHours   *float64 `json:"interval_hours"`
}

func (in *scheduleInput) toSchedule() (*models.MaintenanceSchedule, map[string]string) {
	fields := make(map[string]string)
	if in.Name == "" {
		fields["name"] = "required"
	}
	if in.AssetID <= 0 {
		fields["asset_id"] = "required"
	}

	s := &models.MaintenanceSchedule{
		OrganisationID:  in.OrganisationID,
		AssetID:         in.AssetID,
		Name:            in.Name,
		IntervalType:    models.IntervalType(in.IntervalType),
		IntervalValue:   in.IntervalValue,
		DayOfWeek:       in.DayOfWeek,
		DayOfMonth:      in.DayOfMonth,
		MonthOfYear:     in.MonthOfYear,
		LeadTimeDays:    in.LeadTimeDays,
		IntervalMileage: in.IntervalMileage,
		IntervalHours:   in.IntervalHours,
		IsActive:        true,
	}

	if in.StartDate == "" {
		fields["start_date"] = "required"
	} else if d, err := time.Parse("2006-01-02", in.StartDate); err != nil {
		fields["start_date"] = "must be YYYY-MM-DD"
	} else {
		s.StartDate = d
	}
	if in.EndDate != "" {
		if d, err := time.Parse("2006-01-02", in.EndDate); err != nil {
			fields["end_date"] = "must be YYYY-MM-DD"
		} else {
			s.EndDate = &d
		}
	}
	if len(fields) > 0 {
		return nil, fields
	}
	if err := s.Validate(); err != nil {
		fields["config"] = err.Error()
		return nil, fields
	}
	return s, nil
}

// ListSchedules returns paginated schedules (query: limit, offset).
func (h *ScheduleHandler) ListSchedules(w http.ResponseWriter, r *http.Request) {
	limit, offset := pagination(r, 50, 100)

	list, err := h.Repo.List(r.Context(), limit, offset)
	if err != nil {
		JSONError(w, ErrMessageInternal, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(list)
}

// GetSchedule returns one schedule by id.
func (h *ScheduleHandler) GetSchedule(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		JSONError(w, "invalid schedule id", http.StatusBadRequest)
		return
	}

	s, err := h.Repo.GetByID(r.Context(), id)
	if err != nil {
		JSONError(w, ErrMessageInternal, http.StatusInternalServerError)
		return
	}
	if s == nil {
		JSONError(w, "schedule not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(s)
}

// CreateSchedule creates a schedule. The first due date is computed from
// start_date; invalid recurrence configuration is rejected here so it never
// reaches the evaluation pass.
func (h *ScheduleHandler) CreateSchedule(w http.ResponseWriter, r *http.Request) {
	var input scheduleInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		JSONError(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	s, fields := input.toSchedule()
	if fields != nil {
		JSONValidationError(w, "validation failed", fields, http.StatusBadRequest)
		return
	}

	next, err := recurrence.NextDueDate(s, s.StartDate)
	if err != nil {
		JSONValidationError(w, "validation failed", map[string]string{"interval_type": err.Error()}, http.StatusBadRequest)
		return
	}
	s.NextDueDate = next

	created, err := h.Repo.Create(r.Context(), s)
	if err != nil {
		JSONError(w, ErrMessageInternal, http.StatusInternalServerError)
		return
	}
	h.audit(r.Context(), r, "create", created.ID, created.Name)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(created)
}

// UpdateSchedule rewrites a schedule's configuration and recomputes the
// next due date from the later of start date and last trigger.
func (h *ScheduleHandler) UpdateSchedule(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		JSONError(w, "invalid schedule id", http.StatusBadRequest)
		return
	}

	existing, err := h.Repo.GetByID(r.Context(), id)
	if err != nil {
		JSONError(w, ErrMessageInternal, http.StatusInternalServerError)
		return
	}
	if existing == nil {
		JSONError(w, "schedule not found", http.StatusNotFound)
		return
	}

	var input scheduleInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		JSONError(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	s, fields := input.toSchedule()
	if fields != nil {
		JSONValidationError(w, "validation failed", fields, http.StatusBadRequest)
		return
	}
	s.ID = id

	from := s.StartDate
	if existing.LastTriggeredAt != nil && existing.LastTriggeredAt.After(from) {
		from = *existing.LastTriggeredAt
	}
	next, err := recurrence.NextDueDate(s, from)
	if err != nil {
		JSONValidationError(w, "validation failed", map[string]string{"interval_type": err.Error()}, http.StatusBadRequest)
		return
	}
	s.NextDueDate = next

	if err := h.Repo.Update(r.Context(), s); err != nil {
		JSONError(w, ErrMessageInternal, http.StatusInternalServerError)
		return
	}
	h.audit(r.Context(), r, "update", id, s.Name)

	updated, _ := h.Repo.GetByID(r.Context(), id)
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(updated)
}

// SetScheduleActive toggles evaluation. Body: {"is_active": false}.
// Deactivation stops the runner without touching history.
func (h *ScheduleHandler) SetScheduleActive(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		JSONError(w, "invalid schedule id", http.StatusBadRequest)
		return
	}
	var input struct {
		IsActive *bool `json:"is_active"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil || input.IsActive == nil {
		JSONValidationError(w, "validation failed", map[string]string{"is_active": "required"}, http.StatusBadRequest)
		return
	}
	if err := h.Repo.SetActive(r.Context(), id, *input.IsActive); err != nil {
		JSONError(w, ErrMessageInternal, http.StatusInternalServerError)
		return
	}
	h.audit(r.Context(), r, "update", id, fmt.Sprintf("is_active=%v", *input.IsActive))
	w.WriteHeader(http.StatusNoContent)
}

// DeleteSchedule deletes a schedule.
func (h *ScheduleHandler) DeleteSchedule(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		JSONError(w, "invalid schedule id", http.StatusBadRequest)
		return
	}

	if err := h.Repo.Delete(r.Context(), id); err != nil {
		JSONError(w, ErrMessageInternal, http.StatusInternalServerError)
		return
	}
	h.audit(r.Context(), r, "delete", id, "")

	w.WriteHeader(http.StatusNoContent)
}

// PreviewOccurrences projects a schedule's upcoming due dates (query:
// count, default 10, max 50). The projection is computed from scratch on
// every call and may be shorter than count when an end date cuts it off.
func (h *ScheduleHandler) PreviewOccurrences(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		JSONError(w, "invalid schedule id", http.StatusBadRequest)
		return
	}

	count := 0
	if c := r.URL.Query().Get("count"); c != "" {
		if n, err := strconv.Atoi(c); err == nil && n > 0 && n <= 50 {
			count = n
		}
	}

	s, err := h.Repo.GetByID(r.Context(), id)
	if err != nil {
		JSONError(w, ErrMessageInternal, http.StatusInternalServerError)
		return
	}
	if s == nil {
		JSONError(w, "schedule not found", http.StatusNotFound)
		return
	}

	occs, err := recurrence.Preview(s, count)
	if err != nil {
		JSONError(w, ErrMessageInternal, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(occs)
}

// ListCycles returns a schedule's fired cycle records, newest first.
func (h *ScheduleHandler) ListCycles(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		JSONError(w, "invalid schedule id", http.StatusBadRequest)
		return
	}
	limit, offset := pagination(r, 50, 200)

	list, err := h.Cycles.ListBySchedule(r.Context(), id, limit, offset)
	if err != nil {
		JSONError(w, ErrMessageInternal, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(list)
}

func (h *ScheduleHandler) audit(ctx context.Context, r *http.Request, action string, id int, details string) {
	if h.Audit == nil {
		return
	}
	// Audit is informational; a write failure must not fail the request.
	_ = h.Audit.Log(ctx, userIDFrom(r), action, "schedule", id, details)
}
