package teams

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
)

func ListTeam(log *slog.Logger, handler Core) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		jobSrID := chi.URLParam(r, "sr_id")
		if jobSrID == "" {
			http.Error(w, "sr_id is required", http.StatusBadRequest)
			return
		}

		items, err := handler.ListTeam(r.Context(), jobSrID)
		if err != nil {
			log.Error("Failed to list team", slog.String("sr_id", jobSrID), slog.Any("error", err))
			http.Error(w, "Failed to list team", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(items)
	}
}
