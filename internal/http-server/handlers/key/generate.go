package key

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"FiberTrack/internal/lib/api/response"

	"github.com/go-chi/render"
)

type GenerateRequest struct {
	Username string `json:"username"`
}

type GenerateResponse struct {
	Username string `json:"username"`
	Key      string `json:"key"`
}

func Generate(log *slog.Logger, handler Core) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req GenerateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}
		if req.Username == "" {
			http.Error(w, "username is required", http.StatusBadRequest)
			return
		}

		k, err := handler.GenerateApiKey(req.Username)
		if err != nil {
			log.Error("Failed to generate api key", slog.String("username", req.Username), slog.Any("error", err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("Failed to generate api key"))
			return
		}

		render.JSON(w, r, GenerateResponse{Username: req.Username, Key: k})
	}
}
