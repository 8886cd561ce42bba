package sites

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"FiberTrack/internal/lib/api/response"

	"github.com/go-chi/render"
)

type AssignRequest struct {
	SiteID string `json:"site_id"`
	UserID string `json:"user_id"`
}

func AssignWorker(log *slog.Logger, handler Core) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req AssignRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}
		if req.SiteID == "" || req.UserID == "" {
			http.Error(w, "site_id and user_id are required", http.StatusBadRequest)
			return
		}

		if err := handler.AssignWorker(r.Context(), req.SiteID, req.UserID); err != nil {
			log.Error("Failed to assign worker",
				slog.String("site_id", req.SiteID),
				slog.String("user_id", req.UserID),
				slog.Any("error", err),
			)
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error(err.Error()))
			return
		}

		render.JSON(w, r, response.OK())
	}
}
