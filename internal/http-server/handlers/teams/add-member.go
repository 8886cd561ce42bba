package teams

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"FiberTrack/internal/lib/api/response"

	"github.com/go-chi/render"
)

type AddRequest struct {
	JobSrID  string `json:"job_sr_id"`
	UserID   string `json:"user_id"`
	TeamType string `json:"team_type"`
}

func AddMember(log *slog.Logger, handler Core) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req AddRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}
		if req.JobSrID == "" || req.UserID == "" || req.TeamType == "" {
			http.Error(w, "job_sr_id, user_id and team_type are required", http.StatusBadRequest)
			return
		}

		member, err := handler.AddTeamMember(r.Context(), req.JobSrID, req.UserID, req.TeamType)
		if err != nil {
			log.Error("Failed to add team member",
				slog.String("job_sr_id", req.JobSrID),
				slog.String("user_id", req.UserID),
				slog.Any("error", err),
			)
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error(err.Error()))
			return
		}

		render.Status(r, http.StatusCreated)
		render.JSON(w, r, member)
	}
}
