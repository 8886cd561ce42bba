package photo

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
)

// GetPhoto resolves a Telegram file id to a downloadable URL and
// redirects the dashboard to it. Telegram file URLs are short-lived, so
// the redirect is resolved per request instead of being stored.
func GetPhoto(log *slog.Logger, handler Core) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		fileID := chi.URLParam(r, "file_id")
		if fileID == "" {
			http.Error(w, "file_id is required", http.StatusBadRequest)
			return
		}

		url, err := handler.PhotoURL(fileID)
		if err != nil {
			log.Error("Failed to resolve photo", slog.String("file_id", fileID), slog.Any("error", err))
			http.Error(w, "Failed to resolve photo", http.StatusNotFound)
			return
		}

		http.Redirect(w, r, url, http.StatusTemporaryRedirect)
	}
}
