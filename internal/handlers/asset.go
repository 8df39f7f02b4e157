package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/crucial707/fleet-pm/internal/repo"
	"github.com/go-chi/chi/v5"
)

// AssetHandler handles asset registry CRUD.
type AssetHandler struct {
	Repo  *repo.AssetRepo
	Audit *repo.AuditRepo
}

// ListAssets returns paginated assets.
func (h *AssetHandler) ListAssets(w http.ResponseWriter, r *http.Request) {
	limit, offset := pagination(r, 50, 100)

	list, err := h.Repo.List(r.Context(), limit, offset)
	if err != nil {
		JSONError(w, ErrMessageInternal, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(list)
}

// GetAsset returns one asset by id.
func (h *AssetHandler) GetAsset(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		JSONError(w, "invalid asset id", http.StatusBadRequest)
		return
	}

	a, err := h.Repo.GetByID(r.Context(), id)
	if err != nil {
		JSONError(w, ErrMessageInternal, http.StatusInternalServerError)
		return
	}
	if a == nil {
		JSONError(w, "asset not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(a)
}

// CreateAsset registers an asset. Body: {"organisation_id": 1, "name": "...", "description": "..."}.
func (h *AssetHandler) CreateAsset(w http.ResponseWriter, r *http.Request) {
	var input struct {
		OrganisationID int    `json:"organisation_id"`
		Name           string `json:"name"`
		Description    string `json:"description"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		JSONError(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	if input.Name == "" {
		JSONValidationError(w, "validation failed", map[string]string{"name": "required"}, http.StatusBadRequest)
		return
	}

	a, err := h.Repo.Create(r.Context(), input.OrganisationID, input.Name, input.Description)
	if err != nil {
		JSONError(w, ErrMessageInternal, http.StatusInternalServerError)
		return
	}
	if h.Audit != nil {
		_ = h.Audit.Log(r.Context(), userIDFrom(r), "create", "asset", a.ID, a.Name)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(a)
}

// DeleteAsset removes an asset and (via cascade) its schedules and readings.
func (h *AssetHandler) DeleteAsset(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		JSONError(w, "invalid asset id", http.StatusBadRequest)
		return
	}

	if err := h.Repo.Delete(r.Context(), id); err != nil {
		JSONError(w, ErrMessageInternal, http.StatusInternalServerError)
		return
	}
	if h.Audit != nil {
		_ = h.Audit.Log(r.Context(), userIDFrom(r), "delete", "asset", id, "")
	}

	w.WriteHeader(http.StatusNoContent)
}
