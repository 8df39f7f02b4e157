package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/crucial707/fleet-pm/internal/models"
	"github.com/crucial707/fleet-pm/internal/repo"
	"github.com/go-chi/chi/v5"
)

// ReadingHandler ingests and serves asset telemetry readings.
type ReadingHandler struct {
	Repo   *repo.ReadingRepo
	Assets *repo.AssetRepo
}

// RecordReading appends a reading for an asset.
// Body: {"current_mileage": 15000, "current_hours": 1250.5, "as_of": "2025-06-15T08:00:00Z"}.
// as_of defaults to now.
func (h *ReadingHandler) RecordReading(w http.ResponseWriter, r *http.Request) {
	assetID, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		JSONError(w, "invalid asset id", http.StatusBadRequest)
		return
	}

	var input struct {
		CurrentMileage float64    `json:"current_mileage"`
		CurrentHours   float64    `json:"current_hours"`
		AsOf           *time.Time `json:"as_of"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		JSONError(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	if input.CurrentMileage < 0 || input.CurrentHours < 0 {
		JSONValidationError(w, "validation failed",
			map[string]string{"reading": "mileage and hours must be >= 0"}, http.StatusBadRequest)
		return
	}

	a, err := h.Assets.GetByID(r.Context(), assetID)
	if err != nil {
		JSONError(w, ErrMessageInternal, http.StatusInternalServerError)
		return
	}
	if a == nil {
		JSONError(w, "asset not found", http.StatusNotFound)
		return
	}

	rd := &models.AssetReading{
		AssetID:        assetID,
		CurrentMileage: input.CurrentMileage,
		CurrentHours:   input.CurrentHours,
		AsOf:           time.Now(),
	}
	if input.AsOf != nil {
		rd.AsOf = *input.AsOf
	}

	if err := h.Repo.Record(r.Context(), rd); err != nil {
		JSONError(w, ErrMessageInternal, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(rd)
}

// LatestReading returns the most recent reading for an asset.
func (h *ReadingHandler) LatestReading(w http.ResponseWriter, r *http.Request) {
	assetID, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		JSONError(w, "invalid asset id", http.StatusBadRequest)
		return
	}

	rd, err := h.Repo.Latest(r.Context(), assetID)
	if err != nil {
		JSONError(w, ErrMessageInternal, http.StatusInternalServerError)
		return
	}
	if rd == nil {
		JSONError(w, "no readings for asset", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(rd)
}
