package main

import (
	"context"
	"flag"
	"log/slog"

	"FiberTrack/bot"
	"FiberTrack/bot/form"
	"FiberTrack/impl/core"
	"FiberTrack/internal/config"
	repository "FiberTrack/internal/database"
	"FiberTrack/internal/http-server/api"
	"FiberTrack/internal/lib/logger"
	"FiberTrack/internal/lib/sl"
	"FiberTrack/internal/rowstore"
	"FiberTrack/internal/service/job"
	"FiberTrack/internal/service/report"
	"FiberTrack/internal/service/stats"
	"FiberTrack/internal/service/team"
	"FiberTrack/internal/service/user"
	"FiberTrack/internal/ws"
)

func main() {

	configPath := flag.String("conf", "config.yml", "path to config file")
	logPath := flag.String("log", "/var/log/", "path to log file directory")
	flag.Parse()

	conf := config.MustLoad(*configPath)
	lg := logger.SetupLogger(conf.Env, *logPath)

	lg.Info("starting fibertrack", slog.String("config", *configPath), slog.String("env", conf.Env))
	lg.Debug("debug messages enabled")

	ctx := context.Background()

	var store rowstore.Store
	if conf.Sheets.SpreadsheetID != "" && conf.Sheets.CredentialsFile != "" {
		sheetsStore, err := rowstore.NewSheetsStore(ctx, conf, lg)
		if err != nil {
			lg.With(sl.Err(err)).Error("sheets store")
			return
		}
		store = sheetsStore
	} else {
		lg.Warn("sheets not configured, using in-memory store; data will not survive restarts")
		store = rowstore.NewMemoryStore()
	}

	db, err := repository.NewMongoClient(conf, lg)
	if err != nil {
		lg.With(sl.Err(err)).Error("mongo client")
	}
	if db != nil {
		lg.With(
			slog.String("host", conf.Mongo.Host),
			slog.String("port", conf.Mongo.Port),
			slog.String("database", conf.Mongo.Database),
		).Info("mongo client initialized")
	}

	userService := user.NewUserService(store, lg)
	jobService := job.NewJobService(store, conf.Sheets.JobsSheet, lg)
	teamService := team.NewTeamService(store, lg)
	statsService := stats.NewStatsService(store, conf.Sheets.JobsSheet, lg)
	reportService := report.NewReportService(store, lg)

	hub := ws.NewHub(lg)
	go hub.Run()
	reportService.SetNotifier(hub)

	var stateStorage form.StateStorage
	if conf.FormState.Backend == "mongo" && db != nil {
		stateStorage = form.NewMongoStorage(db)
		lg.Info("form state backend: mongo")
	} else {
		stateStorage = form.NewRowStoreStorage(store)
		lg.Info("form state backend: sheet")
	}

	engine := form.NewEngine(stateStorage, reportService, lg)

	handler := core.New(lg)
	handler.SetAuthKey(conf.Listen.ApiKey)
	handler.SetUserService(userService)
	handler.SetJobService(jobService)
	handler.SetTeamService(teamService)
	handler.SetStatsService(statsService)
	handler.SetReportService(reportService)
	if db != nil {
		handler.SetRepository(db)
	}

	if conf.Telegram.Enabled {
		tgBot, err := bot.NewTgBot(conf.Telegram.BotName, conf.Telegram.ApiKey, lg)
		if err != nil {
			lg.Error("failed to initialize telegram bot", sl.Err(err))
		} else {
			tgBot.SetFormEngine(engine)
			tgBot.SetUserService(userService)
			tgBot.SetJobService(jobService)
			handler.SetPhotoResolver(tgBot)
			lg.With(
				slog.String("bot_name", conf.Telegram.BotName),
			).Info("telegram bot initialized")

			go func() {
				if err := tgBot.Start(); err != nil {
					lg.Error("telegram bot error", sl.Err(err))
				}
			}()
		}
	}

	// *** blocking start with http server ***
	err = api.New(conf, lg, handler, hub)
	if err != nil {
		lg.Error("server start", sl.Err(err))
		return
	}
	lg.Error("service stopped")
}
