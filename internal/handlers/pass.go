package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/crucial707/fleet-pm/internal/runner"
)

// PassHandler triggers evaluation passes on demand (e.g. an operator
// re-running the daily batch). Safe to race with the scheduled run: the
// cycle ledger suppresses any double firing.
type PassHandler struct {
	Runner *runner.Runner
}

// RunPass evaluates all active schedules now and returns the pass summary.
// Body (optional): {"as_of": "2025-06-15"} to evaluate as of another date.
func (h *PassHandler) RunPass(w http.ResponseWriter, r *http.Request) {
	asOf := time.Now()
	var input struct {
		AsOf string `json:"as_of"`
	}
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
			JSONError(w, "invalid JSON", http.StatusBadRequest)
			return
		}
		if input.AsOf != "" {
			d, err := time.Parse("2006-01-02", input.AsOf)
			if err != nil {
				JSONValidationError(w, "validation failed",
					map[string]string{"as_of": "must be YYYY-MM-DD"}, http.StatusBadRequest)
				return
			}
			asOf = d
		}
	}

	sum, err := h.Runner.RunPass(r.Context(), asOf)
	if err != nil {
		JSONError(w, ErrMessageInternal, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(sum)
}
