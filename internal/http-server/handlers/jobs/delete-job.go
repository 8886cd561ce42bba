package jobs

import (
	"log/slog"
	"net/http"

	"FiberTrack/internal/lib/api/response"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
)

func DeleteJob(log *slog.Logger, handler Core) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		srID := chi.URLParam(r, "sr_id")
		if srID == "" {
			http.Error(w, "sr_id is required", http.StatusBadRequest)
			return
		}

		if err := handler.DeleteJob(r.Context(), srID); err != nil {
			log.Error("Failed to delete job", slog.String("sr_id", srID), slog.Any("error", err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error(err.Error()))
			return
		}

		render.JSON(w, r, response.OK())
	}
}
