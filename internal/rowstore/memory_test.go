package rowstore

import (
	"context"
	"testing"
)

func TestMemoryStoreAddAndGet(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	if _, err := store.AddRow(ctx, "Users", map[string]string{"user_id": "U1", "role": "ADMIN"}); err != nil {
		t.Fatalf("AddRow: %v", err)
	}
	if _, err := store.AddRow(ctx, "Users", map[string]string{"user_id": "U2", "role": "WORKER_DIGGING"}); err != nil {
		t.Fatalf("AddRow: %v", err)
	}

	all, err := store.GetRows(ctx, "Users", nil)
	if err != nil {
		t.Fatalf("GetRows: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("got %d rows, want 2", len(all))
	}
	if all[0].Index != 2 || all[1].Index != 3 {
		t.Errorf("indexes %d, %d; data rows start at 2", all[0].Index, all[1].Index)
	}

	admins, err := store.GetRows(ctx, "Users", map[string]string{"role": "ADMIN"})
	if err != nil {
		t.Fatalf("GetRows filtered: %v", err)
	}
	if len(admins) != 1 || admins[0].Get("user_id") != "U1" {
		t.Errorf("filter mismatch: %v", admins)
	}
}

func TestMemoryStoreUpdateRow(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	store.AddRow(ctx, "Sites", map[string]string{"site_id": "S1", "status": "PENDING"})

	updated, err := store.UpdateRow(ctx, "Sites", "site_id", "S1", map[string]string{"status": "DIGGING_DONE"})
	if err != nil {
		t.Fatalf("UpdateRow: %v", err)
	}
	if !updated {
		t.Fatal("existing row not updated")
	}

	rows, _ := store.GetRows(ctx, "Sites", nil)
	if rows[0].Get("status") != "DIGGING_DONE" {
		t.Errorf("status = %s", rows[0].Get("status"))
	}

	updated, err = store.UpdateRow(ctx, "Sites", "site_id", "S9", map[string]string{"status": "X"})
	if err != nil {
		t.Fatalf("UpdateRow missing: %v", err)
	}
	if updated {
		t.Error("update of missing row reported success")
	}
}

func TestMemoryStoreDeleteKeepsIndexes(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	store.AddRow(ctx, "Teams", map[string]string{"team_id": "T1"})
	store.AddRow(ctx, "Teams", map[string]string{"team_id": "T2"})
	store.AddRow(ctx, "Teams", map[string]string{"team_id": "T3"})

	rows, _ := store.GetRows(ctx, "Teams", nil)
	if err := store.DeleteRow(ctx, rows[1]); err != nil {
		t.Fatalf("DeleteRow: %v", err)
	}

	// Indexes of surviving rows are unchanged after a delete.
	rest, _ := store.GetRows(ctx, "Teams", nil)
	if len(rest) != 2 {
		t.Fatalf("got %d rows, want 2", len(rest))
	}
	if rest[0].Get("team_id") != "T1" || rest[0].Index != 2 {
		t.Errorf("first row moved: %+v", rest[0])
	}
	if rest[1].Get("team_id") != "T3" || rest[1].Index != 4 {
		t.Errorf("third row moved: %+v", rest[1])
	}

	// Deleting a tombstoned row is an error.
	if err := store.DeleteRow(ctx, rows[1]); err == nil {
		t.Error("double delete succeeded")
	}
}

func TestMemoryStoreRowCopies(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	store.AddRow(ctx, "Users", map[string]string{"user_id": "U1"})

	rows, _ := store.GetRows(ctx, "Users", nil)
	rows[0].Values["user_id"] = "mutated"

	fresh, _ := store.GetRows(ctx, "Users", nil)
	if fresh[0].Get("user_id") != "U1" {
		t.Error("caller mutation leaked into the store")
	}
}
