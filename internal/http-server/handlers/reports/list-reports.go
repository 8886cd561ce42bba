package reports

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

// ListReports returns all reports of one workflow phase. The role query
// parameter selects the report category.
func ListReports(log *slog.Logger, handler Core) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		role := r.URL.Query().Get("role")
		if role == "" {
			http.Error(w, "role is required", http.StatusBadRequest)
			return
		}

		items, err := handler.ListReports(r.Context(), role)
		if err != nil {
			log.Error("Failed to list reports", slog.String("role", role), slog.Any("error", err))
			http.Error(w, "Failed to list reports", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(items)
	}
}
