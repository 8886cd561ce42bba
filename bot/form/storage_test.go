package form

import (
	"context"
	"testing"

	"FiberTrack/entity"
	"FiberTrack/internal/rowstore"
)

func TestRowStoreStorageRoundTrip(t *testing.T) {
	store := rowstore.NewMemoryStore()
	storage := NewRowStoreStorage(store)
	ctx := context.Background()

	state := NewFormState("100", "S1", "U1", entity.RoleDigging, "trench_dug")
	state.Set("trench_dug", AnswerYes)
	state.Step = "cable_laid"
	state.ReportID = "R-D-123"

	if err := storage.Save(ctx, state); err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded, err := storage.Load(ctx, "100")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded == nil {
		t.Fatal("Load returned nil for saved state")
	}
	if loaded.SiteID != "S1" || loaded.UserID != "U1" || loaded.Role != entity.RoleDigging {
		t.Errorf("identity fields lost: %+v", loaded)
	}
	if loaded.Step != "cable_laid" {
		t.Errorf("step = %s", loaded.Step)
	}
	if loaded.ReportID != "R-D-123" {
		t.Errorf("report id = %s", loaded.ReportID)
	}
	if loaded.Fields["trench_dug"] != AnswerYes {
		t.Errorf("fields lost: %v", loaded.Fields)
	}
}

func TestRowStoreStorageUpsert(t *testing.T) {
	store := rowstore.NewMemoryStore()
	storage := NewRowStoreStorage(store)
	ctx := context.Background()

	state := NewFormState("100", "S1", "U1", entity.RoleOptical, "splicing_done")
	if err := storage.Save(ctx, state); err != nil {
		t.Fatalf("Save: %v", err)
	}
	state.Step = "measurements"
	if err := storage.Save(ctx, state); err != nil {
		t.Fatalf("second Save: %v", err)
	}

	rows, err := store.GetRows(ctx, rowstore.CategoryFormState, map[string]string{"chat_id": "100"})
	if err != nil {
		t.Fatalf("GetRows: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("%d rows after two saves, want 1", len(rows))
	}
	if rows[0].Get("step") != "measurements" {
		t.Errorf("step column = %s", rows[0].Get("step"))
	}
	if rows[0].Get("last_updated") == "" {
		t.Error("last_updated not stamped")
	}
}

func TestRowStoreStorageLoadAbsent(t *testing.T) {
	storage := NewRowStoreStorage(rowstore.NewMemoryStore())

	loaded, err := storage.Load(context.Background(), "missing")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded != nil {
		t.Error("Load of absent state should return nil")
	}
}

func TestRowStoreStorageClear(t *testing.T) {
	store := rowstore.NewMemoryStore()
	storage := NewRowStoreStorage(store)
	ctx := context.Background()

	state := NewFormState("100", "S1", "U1", entity.RoleConstruction, "bcp_installed")
	if err := storage.Save(ctx, state); err != nil {
		t.Fatalf("Save: %v", err)
	}

	if err := storage.Clear(ctx, "100"); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	loaded, err := storage.Load(ctx, "100")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded != nil {
		t.Error("state survived Clear")
	}

	// Clearing again is not an error.
	if err := storage.Clear(ctx, "100"); err != nil {
		t.Errorf("repeat Clear: %v", err)
	}
}
