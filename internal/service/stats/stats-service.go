package stats

import (
	"context"
	"fmt"
	"log/slog"

	"FiberTrack/internal/lib/sl"
	"FiberTrack/internal/rowstore"
)

// Overview aggregates the jobs sheet for the dashboard landing page.
type Overview struct {
	Total    int            `json:"total"`
	ByStatus map[string]int `json:"by_status"`
	ByArea   map[string]int `json:"by_area"`
	ByPhase  map[string]int `json:"by_phase"`
}

// StatsService computes aggregates over the master jobs sheet.
type StatsService struct {
	store rowstore.Store
	sheet string
	log   *slog.Logger
}

func NewStatsService(store rowstore.Store, sheet string, log *slog.Logger) *StatsService {
	return &StatsService{
		store: store,
		sheet: sheet,
		log:   log.With(sl.Module("service.stats")),
	}
}

func (s *StatsService) Overview(ctx context.Context) (*Overview, error) {
	rows, err := s.store.GetRows(ctx, s.sheet, nil)
	if err != nil {
		return nil, fmt.Errorf("reading jobs sheet: %w", err)
	}

	ov := &Overview{
		ByStatus: make(map[string]int),
		ByArea:   make(map[string]int),
		ByPhase:  make(map[string]int),
	}
	for _, row := range rows {
		ov.Total++
		if v := row.Get("STATUS\nΕΡΓΑΣΙΩΝ"); v != "" {
			ov.ByStatus[v]++
		}
		if v := row.Get("ΠΕΡΙΟΧΗ"); v != "" {
			ov.ByArea[v]++
		}
		if v := row.Get("ΠΕΡΙΓΡΑΦΗ ΕΡΓΑΣΙΩΝ - ΦΑΣΗ"); v != "" {
			ov.ByPhase[v]++
		}
	}
	return ov, nil
}
