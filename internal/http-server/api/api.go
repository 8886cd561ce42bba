package api

import (
	"fmt"
	"log/slog"
	"net"
	"net/http"

	"FiberTrack/internal/config"
	"FiberTrack/internal/http-server/handlers/errors"
	"FiberTrack/internal/http-server/handlers/jobs"
	"FiberTrack/internal/http-server/handlers/key"
	"FiberTrack/internal/http-server/handlers/photo"
	"FiberTrack/internal/http-server/handlers/reports"
	"FiberTrack/internal/http-server/handlers/sites"
	"FiberTrack/internal/http-server/handlers/stats"
	"FiberTrack/internal/http-server/handlers/teams"
	"FiberTrack/internal/http-server/handlers/users"
	"FiberTrack/internal/http-server/middleware/authenticate"
	"FiberTrack/internal/http-server/middleware/timeout"
	"FiberTrack/internal/lib/sl"
	"FiberTrack/internal/ws"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
)

type Server struct {
	conf       *config.Config
	httpServer *http.Server
	log        *slog.Logger
}

type Handler interface {
	authenticate.Authenticate
	ws.Authenticator
	jobs.Core
	sites.Core
	users.Core
	reports.Core
	teams.Core
	stats.Core
	photo.Core
	key.Core
}

func New(conf *config.Config, log *slog.Logger, handler Handler, hub *ws.Hub) error {

	server := Server{
		conf: conf,
		log:  log.With(sl.Module("api.server")),
	}

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Recoverer)

	// The websocket endpoint authenticates via query token and must not
	// pass through the Bearer middleware or the request timeout.
	router.Get("/ws", func(w http.ResponseWriter, r *http.Request) {
		ws.ServeWs(hub, handler, log, w, r)
	})

	router.Group(func(r chi.Router) {
		r.Use(timeout.Timeout(15))
		r.Use(render.SetContentType(render.ContentTypeJSON))
		r.Use(authenticate.New(log, handler))

		r.NotFound(errors.NotFound(log))
		r.MethodNotAllowed(errors.NotAllowed(log))

		r.Route("/api/v1", func(v1 chi.Router) {
			v1.Route("/jobs", func(r chi.Router) {
				r.Get("/", jobs.ListJobs(log, handler))
				r.Post("/", jobs.CreateJob(log, handler))
				r.Get("/{sr_id}", jobs.GetJob(log, handler))
				r.Put("/{sr_id}", jobs.UpdateJob(log, handler))
				r.Delete("/{sr_id}", jobs.DeleteJob(log, handler))
				r.Get("/{sr_id}/team", teams.ListTeam(log, handler))
			})
			v1.Route("/sites", func(r chi.Router) {
				r.Get("/", sites.ListSites(log, handler))
				r.Post("/assign", sites.AssignWorker(log, handler))
			})
			v1.Route("/users", func(r chi.Router) {
				r.Get("/", users.ListUsers(log, handler))
				r.Put("/{user_id}", users.UpdateUser(log, handler))
			})
			v1.Route("/reports", func(r chi.Router) {
				r.Get("/", reports.ListReports(log, handler))
			})
			v1.Route("/teams", func(r chi.Router) {
				r.Get("/available", teams.AvailableUsers(log, handler))
				r.Post("/", teams.AddMember(log, handler))
				r.Delete("/{team_id}", teams.RemoveMember(log, handler))
			})
			v1.Route("/stats", func(r chi.Router) {
				r.Get("/overview", stats.Overview(log, handler))
			})
			v1.Route("/photo", func(r chi.Router) {
				r.Get("/{file_id}", photo.GetPhoto(log, handler))
			})
			v1.Route("/key", func(r chi.Router) {
				r.Post("/new", key.Generate(log, handler))
			})
		})
	})

	httpLog := slog.NewLogLogger(log.Handler(), slog.LevelError)
	server.httpServer = &http.Server{
		Handler:  router,
		ErrorLog: httpLog,
	}

	serverAddress := fmt.Sprintf("%s:%s", conf.Listen.BindIP, conf.Listen.Port)
	listener, err := net.Listen("tcp", serverAddress)
	if err != nil {
		return err
	}

	server.log.Info("starting api server", slog.String("address", serverAddress))

	return server.httpServer.Serve(listener)
}
