package stats

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

func Overview(log *slog.Logger, handler Core) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ov, err := handler.StatsOverview(r.Context())
		if err != nil {
			log.Error("Failed to compute stats", slog.Any("error", err))
			http.Error(w, "Failed to compute stats", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(ov)
	}
}
