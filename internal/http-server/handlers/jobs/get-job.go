package jobs

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
)

func GetJob(log *slog.Logger, handler Core) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		srID := chi.URLParam(r, "sr_id")
		if srID == "" {
			http.Error(w, "sr_id is required", http.StatusBadRequest)
			return
		}

		j, err := handler.GetJob(r.Context(), srID)
		if err != nil {
			log.Error("Failed to get job", slog.String("sr_id", srID), slog.Any("error", err))
			http.Error(w, "Failed to get job", http.StatusInternalServerError)
			return
		}
		if j == nil {
			http.Error(w, "Job not found", http.StatusNotFound)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(j)
	}
}
