package sites

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

func ListSites(log *slog.Logger, handler Core) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status := r.URL.Query().Get("status")

		items, err := handler.ListSites(r.Context(), status)
		if err != nil {
			log.Error("Failed to list sites", slog.Any("error", err))
			http.Error(w, "Failed to list sites", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(items)
	}
}
