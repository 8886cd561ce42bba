package jobs

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"FiberTrack/internal/lib/api/response"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
)

func UpdateJob(log *slog.Logger, handler Core) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		srID := chi.URLParam(r, "sr_id")
		if srID == "" {
			http.Error(w, "sr_id is required", http.StatusBadRequest)
			return
		}

		var fields map[string]string
		if err := json.NewDecoder(r.Body).Decode(&fields); err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}
		if len(fields) == 0 {
			http.Error(w, "No fields to update", http.StatusBadRequest)
			return
		}

		if err := handler.UpdateJob(r.Context(), srID, fields); err != nil {
			log.Error("Failed to update job", slog.String("sr_id", srID), slog.Any("error", err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error(err.Error()))
			return
		}

		render.JSON(w, r, response.OK())
	}
}
