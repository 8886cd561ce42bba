package jobs

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"FiberTrack/internal/service/job"
)

func ListJobs(log *slog.Logger, handler Core) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		f := job.Filters{
			Area:   r.URL.Query().Get("area"),
			Status: r.URL.Query().Get("status"),
			Date:   r.URL.Query().Get("date"),
		}

		items, err := handler.ListJobs(r.Context(), f)
		if err != nil {
			log.Error("Failed to list jobs", slog.Any("error", err))
			http.Error(w, "Failed to list jobs", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(items)
	}
}
