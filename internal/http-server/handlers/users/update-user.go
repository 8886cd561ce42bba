package users

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"FiberTrack/internal/lib/api/response"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
)

// UpdateUser merges role, name or active changes into a worker record.
// Role changes here are how an admin promotes a PENDING registration.
func UpdateUser(log *slog.Logger, handler Core) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := chi.URLParam(r, "user_id")
		if userID == "" {
			http.Error(w, "user_id is required", http.StatusBadRequest)
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

		if err := handler.UpdateUser(r.Context(), userID, fields); err != nil {
			log.Error("Failed to update user", slog.String("user_id", userID), slog.Any("error", err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error(err.Error()))
			return
		}

		render.JSON(w, r, response.OK())
	}
}
