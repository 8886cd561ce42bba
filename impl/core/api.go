package core

import (
	"context"
	"fmt"

	"FiberTrack/entity"
	"FiberTrack/internal/service/job"
	"FiberTrack/internal/service/stats"
)

func (c *Core) ListJobs(ctx context.Context, f job.Filters) ([]entity.Job, error) {
	if c.jobs == nil {
		return nil, fmt.Errorf("job service is not set")
	}
	return c.jobs.List(ctx, f)
}

func (c *Core) GetJob(ctx context.Context, srID string) (*entity.Job, error) {
	if c.jobs == nil {
		return nil, fmt.Errorf("job service is not set")
	}
	return c.jobs.Get(ctx, srID)
}

func (c *Core) CreateJob(ctx context.Context, j entity.Job) error {
	if c.jobs == nil {
		return fmt.Errorf("job service is not set")
	}
	return c.jobs.Create(ctx, j)
}

func (c *Core) UpdateJob(ctx context.Context, srID string, fields map[string]string) error {
	if c.jobs == nil {
		return fmt.Errorf("job service is not set")
	}
	return c.jobs.Update(ctx, srID, fields)
}

func (c *Core) DeleteJob(ctx context.Context, srID string) error {
	if c.jobs == nil {
		return fmt.Errorf("job service is not set")
	}
	return c.jobs.Delete(ctx, srID)
}

func (c *Core) ListSites(ctx context.Context, status string) ([]entity.Site, error) {
	if c.users == nil {
		return nil, fmt.Errorf("user service is not set")
	}
	return c.users.Sites(ctx, status)
}

func (c *Core) AssignWorker(ctx context.Context, siteID, userID string) error {
	if c.users == nil {
		return fmt.Errorf("user service is not set")
	}
	return c.users.AssignWorker(ctx, siteID, userID)
}

func (c *Core) ListUsers(ctx context.Context) ([]entity.User, error) {
	if c.users == nil {
		return nil, fmt.Errorf("user service is not set")
	}
	return c.users.List(ctx)
}

func (c *Core) UpdateUser(ctx context.Context, userID string, fields map[string]string) error {
	if c.users == nil {
		return fmt.Errorf("user service is not set")
	}
	return c.users.Update(ctx, userID, fields)
}

func (c *Core) ListReports(ctx context.Context, role string) ([]entity.Report, error) {
	if c.reports == nil {
		return nil, fmt.Errorf("report service is not set")
	}
	return c.reports.ListByRole(ctx, role)
}

func (c *Core) ListTeam(ctx context.Context, jobSrID string) ([]entity.TeamMember, error) {
	if c.teams == nil {
		return nil, fmt.Errorf("team service is not set")
	}
	return c.teams.List(ctx, jobSrID)
}

func (c *Core) AvailableUsers(ctx context.Context, teamType string) ([]entity.User, error) {
	if c.teams == nil {
		return nil, fmt.Errorf("team service is not set")
	}
	return c.teams.AvailableUsers(ctx, teamType)
}

func (c *Core) AddTeamMember(ctx context.Context, jobSrID, userID, teamType string) (*entity.TeamMember, error) {
	if c.teams == nil {
		return nil, fmt.Errorf("team service is not set")
	}
	return c.teams.Add(ctx, jobSrID, userID, teamType)
}

func (c *Core) RemoveTeamMember(ctx context.Context, teamID string) error {
	if c.teams == nil {
		return fmt.Errorf("team service is not set")
	}
	return c.teams.Remove(ctx, teamID)
}

func (c *Core) StatsOverview(ctx context.Context) (*stats.Overview, error) {
	if c.stats == nil {
		return nil, fmt.Errorf("stats service is not set")
	}
	return c.stats.Overview(ctx)
}

func (c *Core) PhotoURL(fileID string) (string, error) {
	if c.photos == nil {
		return "", fmt.Errorf("photo resolver is not set")
	}
	return c.photos.PhotoURL(fileID)
}
