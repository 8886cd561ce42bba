package teams

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

// AvailableUsers lists the active workers whose role matches a team type,
// for populating assignment dropdowns.
func AvailableUsers(log *slog.Logger, handler Core) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		teamType := r.URL.Query().Get("type")
		if teamType == "" {
			http.Error(w, "type is required", http.StatusBadRequest)
			return
		}

		items, err := handler.AvailableUsers(r.Context(), teamType)
		if err != nil {
			log.Error("Failed to list available users", slog.String("type", teamType), slog.Any("error", err))
			http.Error(w, "Failed to list available users", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(items)
	}
}
