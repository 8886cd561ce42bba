package teams

import (
	"log/slog"
	"net/http"

	"FiberTrack/internal/lib/api/response"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
)

func RemoveMember(log *slog.Logger, handler Core) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		teamID := chi.URLParam(r, "team_id")
		if teamID == "" {
			http.Error(w, "team_id is required", http.StatusBadRequest)
			return
		}

		if err := handler.RemoveTeamMember(r.Context(), teamID); err != nil {
			log.Error("Failed to remove team member", slog.String("team_id", teamID), slog.Any("error", err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error(err.Error()))
			return
		}

		render.JSON(w, r, response.OK())
	}
}
