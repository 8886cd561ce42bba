package stats

import (
	"context"

	"FiberTrack/internal/service/stats"
)

type Core interface {
	StatsOverview(ctx context.Context) (*stats.Overview, error)
}
