package reports

import (
	"context"

	"FiberTrack/entity"
)

type Core interface {
	ListReports(ctx context.Context, role string) ([]entity.Report, error)
}
