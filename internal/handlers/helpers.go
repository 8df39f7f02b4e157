package handlers

import (
	"net/http"
	"strconv"

	"github.com/crucial707/fleet-pm/internal/middleware"
)

// pagination reads limit/offset query params with a default and a cap.
func pagination(r *http.Request, def, max int) (limit, offset int) {
	limit = def
	if l := r.URL.Query().Get("limit"); l != "" {
		if n, err := strconv.Atoi(l); err == nil && n > 0 && n <= max {
			limit = n
		}
	}
	if o := r.URL.Query().Get("offset"); o != "" {
		if n, err := strconv.Atoi(o); err == nil && n >= 0 {
			offset = n
		}
	}
	return limit, offset
}

// userIDFrom returns the authenticated user's id from the request context,
// or 0 on unauthenticated routes.
func userIDFrom(r *http.Request) int {
	if id, ok := r.Context().Value(middleware.UserIDKey).(int); ok {
		return id
	}
	return 0
}
