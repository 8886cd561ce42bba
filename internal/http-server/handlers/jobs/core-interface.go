package jobs

import (
	"context"

	"FiberTrack/entity"
	"FiberTrack/internal/service/job"
)

type Core interface {
	ListJobs(ctx context.Context, f job.Filters) ([]entity.Job, error)
	GetJob(ctx context.Context, srID string) (*entity.Job, error)
	CreateJob(ctx context.Context, j entity.Job) error
	UpdateJob(ctx context.Context, srID string, fields map[string]string) error
	DeleteJob(ctx context.Context, srID string) error
}
