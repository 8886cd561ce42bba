package jobs

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"FiberTrack/entity"
	"FiberTrack/internal/lib/api/response"

	"github.com/go-chi/render"
)

func CreateJob(log *slog.Logger, handler Core) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var j entity.Job
		if err := json.NewDecoder(r.Body).Decode(&j); err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}

		if err := handler.CreateJob(r.Context(), j); err != nil {
			log.Error("Failed to create job", slog.String("sr_id", j.SrID), slog.Any("error", err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error(err.Error()))
			return
		}

		render.Status(r, http.StatusCreated)
		render.JSON(w, r, response.OK())
	}
}
