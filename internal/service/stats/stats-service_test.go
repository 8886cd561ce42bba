package stats

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"FiberTrack/internal/rowstore"
)

func TestOverview(t *testing.T) {
	store := rowstore.NewMemoryStore()
	ctx := context.Background()

	rows := []map[string]string{
		{"SR ID": "SR-1", "STATUS\nΕΡΓΑΣΙΩΝ": "PENDING", "ΠΕΡΙΟΧΗ": "Athens"},
		{"SR ID": "SR-2", "STATUS\nΕΡΓΑΣΙΩΝ": "PENDING", "ΠΕΡΙΟΧΗ": "Patra"},
		{"SR ID": "SR-3", "STATUS\nΕΡΓΑΣΙΩΝ": "COMPLETED", "ΠΕΡΙΟΧΗ": "Athens"},
		{"SR ID": "SR-4"},
	}
	for _, row := range rows {
		if _, err := store.AddRow(ctx, "Φύλλο1", row); err != nil {
			t.Fatalf("seeding: %v", err)
		}
	}

	svc := NewStatsService(store, "Φύλλο1", slog.New(slog.NewTextHandler(io.Discard, nil)))
	ov, err := svc.Overview(ctx)
	if err != nil {
		t.Fatalf("Overview: %v", err)
	}

	if ov.Total != 4 {
		t.Errorf("total = %d, want 4", ov.Total)
	}
	if ov.ByStatus["PENDING"] != 2 || ov.ByStatus["COMPLETED"] != 1 {
		t.Errorf("by status: %v", ov.ByStatus)
	}
	if ov.ByArea["Athens"] != 2 || ov.ByArea["Patra"] != 1 {
		t.Errorf("by area: %v", ov.ByArea)
	}
	// Empty cells are not counted as a bucket.
	if _, ok := ov.ByStatus[""]; ok {
		t.Error("empty status counted")
	}
}
