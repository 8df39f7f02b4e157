package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/crucial707/fleet-pm/internal/repo"
	"github.com/go-chi/chi/v5"
)

// WorkOrderHandler serves generated work orders (read-only: the engine
// creates them, the maintenance workflow owns everything after that).
type WorkOrderHandler struct {
	Repo *repo.WorkOrderRepo
}

// ListWorkOrders returns paginated work orders, newest first.
func (h *WorkOrderHandler) ListWorkOrders(w http.ResponseWriter, r *http.Request) {
	limit, offset := pagination(r, 50, 200)

	list, err := h.Repo.List(r.Context(), limit, offset)
	if err != nil {
		JSONError(w, ErrMessageInternal, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(list)
}

// GetWorkOrder returns one work order by id.
func (h *WorkOrderHandler) GetWorkOrder(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		JSONError(w, "invalid work order id", http.StatusBadRequest)
		return
	}

	wo, err := h.Repo.GetByID(r.Context(), id)
	if err != nil {
		JSONError(w, ErrMessageInternal, http.StatusInternalServerError)
		return
	}
	if wo == nil {
		JSONError(w, "work order not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(wo)
}
