package users

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

func ListUsers(log *slog.Logger, handler Core) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := handler.ListUsers(r.Context())
		if err != nil {
			log.Error("Failed to list users", slog.Any("error", err))
			http.Error(w, "Failed to list users", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(items)
	}
}
