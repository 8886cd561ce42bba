package core

import (
	"context"
	"fmt"
	"log/slog"

	"FiberTrack/entity"
	"FiberTrack/internal/lib/sl"
	"FiberTrack/internal/service/job"
	"FiberTrack/internal/service/stats"
)

type Repository interface {
	CheckApiKey(key string) (string, error)
	GenerateApiKey(username string) (string, error)
}

type UserService interface {
	Register(ctx context.Context, telegramChatID, name string) (*entity.User, error)
	GetByTelegramID(ctx context.Context, telegramChatID string) (*entity.User, error)
	List(ctx context.Context) ([]entity.User, error)
	Update(ctx context.Context, userID string, fields map[string]string) error
	AssignWorker(ctx context.Context, siteID, userID string) error
	Sites(ctx context.Context, status string) ([]entity.Site, error)
}

type JobService interface {
	List(ctx context.Context, f job.Filters) ([]entity.Job, error)
	Get(ctx context.Context, srID string) (*entity.Job, error)
	Create(ctx context.Context, j entity.Job) error
	Update(ctx context.Context, srID string, fields map[string]string) error
	Delete(ctx context.Context, srID string) error
}

type TeamService interface {
	List(ctx context.Context, jobSrID string) ([]entity.TeamMember, error)
	AvailableUsers(ctx context.Context, teamType string) ([]entity.User, error)
	Add(ctx context.Context, jobSrID, userID, teamType string) (*entity.TeamMember, error)
	Remove(ctx context.Context, teamID string) error
}

type StatsService interface {
	Overview(ctx context.Context) (*stats.Overview, error)
}

type ReportService interface {
	ListByRole(ctx context.Context, role string) ([]entity.Report, error)
}

// PhotoResolver turns a stored file reference into a downloadable URL.
type PhotoResolver interface {
	PhotoURL(fileID string) (string, error)
}

// Core wires the services behind the HTTP API into one handler.
type Core struct {
	repo    Repository
	users   UserService
	jobs    JobService
	teams   TeamService
	stats   StatsService
	reports ReportService
	photos  PhotoResolver
	authKey string
	keys    map[string]string
	log     *slog.Logger
}

func New(log *slog.Logger) *Core {
	return &Core{
		log:  log.With(sl.Module("core")),
		keys: make(map[string]string),
	}
}

func (c *Core) SetRepository(repo Repository) {
	c.repo = repo
}

func (c *Core) SetAuthKey(key string) {
	c.authKey = key
}

func (c *Core) SetUserService(users UserService) {
	c.users = users
}

func (c *Core) SetJobService(jobs JobService) {
	c.jobs = jobs
}

func (c *Core) SetTeamService(teams TeamService) {
	c.teams = teams
}

func (c *Core) SetStatsService(stats StatsService) {
	c.stats = stats
}

func (c *Core) SetReportService(reports ReportService) {
	c.reports = reports
}

func (c *Core) SetPhotoResolver(photos PhotoResolver) {
	c.photos = photos
}

// AuthenticateByToken resolves a Bearer token to a dashboard identity.
// The static key from the config always works; per-user keys require the
// Mongo repository.
func (c *Core) AuthenticateByToken(token string) (*entity.UserAuth, error) {
	if c.authKey != "" && token == c.authKey {
		return &entity.UserAuth{Username: "admin", Token: token}, nil
	}

	if username, ok := c.keys[token]; ok {
		return &entity.UserAuth{Username: username, Token: token}, nil
	}

	if c.repo == nil {
		return nil, fmt.Errorf("token not found")
	}

	username, err := c.repo.CheckApiKey(token)
	if err != nil {
		return nil, fmt.Errorf("token not found: %w", err)
	}

	c.keys[token] = username
	return &entity.UserAuth{Username: username, Token: token}, nil
}

// ValidateToken adapts AuthenticateByToken for the websocket upgrade.
func (c *Core) ValidateToken(token string) (string, error) {
	user, err := c.AuthenticateByToken(token)
	if err != nil {
		return "", err
	}
	return user.Username, nil
}

func (c *Core) GenerateApiKey(username string) (string, error) {
	if c.repo == nil {
		return "", fmt.Errorf("repository is not set")
	}

	apiKey, err := c.repo.GenerateApiKey(username)
	if err != nil {
		return "", fmt.Errorf("failed to generate API key: %w", err)
	}

	c.keys[apiKey] = username
	return apiKey, nil
}
