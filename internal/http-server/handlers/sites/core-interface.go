package sites

import (
	"context"

	"FiberTrack/entity"
)

type Core interface {
	ListSites(ctx context.Context, status string) ([]entity.Site, error)
	AssignWorker(ctx context.Context, siteID, userID string) error
}
