package job

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"FiberTrack/entity"
	"FiberTrack/internal/rowstore"
)

const testSheet = "Φύλλο1"

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestIsDateQuery(t *testing.T) {
	tests := []struct {
		text string
		want bool
	}{
		{"20/01/2025", true},
		{"1/1/2025", true},
		{"2025-01-20", false},
		{"20/01/25", false},
		{"hello", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := IsDateQuery(tt.text); got != tt.want {
			t.Errorf("IsDateQuery(%q) = %v, want %v", tt.text, got, tt.want)
		}
	}
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("20/01/2025")
	if err != nil {
		t.Fatalf("ParseDate: %v", err)
	}
	if d.Day() != 20 || int(d.Month()) != 1 || d.Year() != 2025 {
		t.Errorf("parsed %v", d)
	}

	if _, err := ParseDate("31/02/2025"); err == nil {
		t.Error("impossible date accepted")
	}
	if _, err := ParseDate("2025-01-20"); err == nil {
		t.Error("wrong format accepted")
	}
}

func seedJobs(t *testing.T) *rowstore.MemoryStore {
	t.Helper()
	store := rowstore.NewMemoryStore()
	ctx := context.Background()

	// Appointment dates use the workbook's M/D/YYYY rendering.
	rows := []map[string]string{
		{
			colSrID:            "SR-1",
			colAddress:         "Ermou 10",
			colAppointmentDate: "1/20/2025",
			colAppointmentTime: "09:00",
		},
		{
			colSrID:            "SR-2",
			colAddress:         "Stadiou 5",
			colAppointmentDate: "1/20/2025",
			colAutopsyDate:     "1/15/2025",
		},
		{
			colSrID:            "SR-3",
			colAddress:         "Patision 100",
			colAppointmentDate: "1/21/2025",
			colAutopsyDate:     "1/15/2025",
		},
	}
	for _, row := range rows {
		if _, err := store.AddRow(ctx, testSheet, row); err != nil {
			t.Fatalf("seeding: %v", err)
		}
	}
	return store
}

func TestAppointmentsByDateSequentialFilter(t *testing.T) {
	store := seedJobs(t)
	svc := NewJobService(store, testSheet, testLogger())
	ctx := context.Background()

	// Autopsy sees every appointment of the day.
	jobs, err := svc.AppointmentsByDate(ctx, "20/01/2025", entity.RoleAutopsy)
	if err != nil {
		t.Fatalf("AppointmentsByDate: %v", err)
	}
	if len(jobs) != 2 {
		t.Fatalf("autopsy sees %d jobs, want 2", len(jobs))
	}

	// Digging only sees jobs with a completed autopsy.
	jobs, err = svc.AppointmentsByDate(ctx, "20/01/2025", entity.RoleDigging)
	if err != nil {
		t.Fatalf("AppointmentsByDate: %v", err)
	}
	if len(jobs) != 1 || jobs[0].SrID != "SR-2" {
		t.Fatalf("digging sees %v", jobs)
	}

	// Construction needs the digging date, which nothing has.
	jobs, err = svc.AppointmentsByDate(ctx, "20/01/2025", entity.RoleConstruction)
	if err != nil {
		t.Fatalf("AppointmentsByDate: %v", err)
	}
	if len(jobs) != 0 {
		t.Fatalf("construction sees %v", jobs)
	}

	if _, err := svc.AppointmentsByDate(ctx, "not-a-date", entity.RoleAutopsy); err == nil {
		t.Error("invalid date accepted")
	}
}

func TestJobCRUD(t *testing.T) {
	store := rowstore.NewMemoryStore()
	svc := NewJobService(store, testSheet, testLogger())
	ctx := context.Background()

	j := entity.Job{SrID: "SR-9", Address: "Akadimias 3", Area: "Athens", Status: "PENDING"}
	if err := svc.Create(ctx, j); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := svc.Create(ctx, j); err == nil {
		t.Error("duplicate create accepted")
	}
	if err := svc.Create(ctx, entity.Job{}); err == nil {
		t.Error("create without sr_id accepted")
	}

	got, err := svc.Get(ctx, "SR-9")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got == nil || got.Address != "Akadimias 3" {
		t.Fatalf("Get returned %+v", got)
	}

	missing, err := svc.Get(ctx, "SR-404")
	if err != nil {
		t.Fatalf("Get missing: %v", err)
	}
	if missing != nil {
		t.Error("missing job returned non-nil")
	}

	if err := svc.Update(ctx, "SR-9", map[string]string{colStatus: "IN_PROGRESS"}); err != nil {
		t.Fatalf("Update: %v", err)
	}
	got, _ = svc.Get(ctx, "SR-9")
	if got.Status != "IN_PROGRESS" {
		t.Errorf("status = %s", got.Status)
	}
	if err := svc.Update(ctx, "SR-404", map[string]string{colStatus: "X"}); err == nil {
		t.Error("update of missing job accepted")
	}

	if err := svc.Delete(ctx, "SR-9"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	got, _ = svc.Get(ctx, "SR-9")
	if got != nil {
		t.Error("job survived delete")
	}
	if err := svc.Delete(ctx, "SR-9"); err == nil {
		t.Error("delete of missing job accepted")
	}
}

func TestListFilters(t *testing.T) {
	store := rowstore.NewMemoryStore()
	svc := NewJobService(store, testSheet, testLogger())
	ctx := context.Background()

	seed := []entity.Job{
		{SrID: "SR-1", Area: "Athens", Status: "PENDING", AppointmentDate: "1/20/2025"},
		{SrID: "SR-2", Area: "Patra", Status: "PENDING", AppointmentDate: "1/21/2025"},
		{SrID: "SR-3", Area: "Athens", Status: "COMPLETED", AppointmentDate: "1/20/2025"},
	}
	for _, j := range seed {
		if err := svc.Create(ctx, j); err != nil {
			t.Fatalf("Create: %v", err)
		}
	}

	all, err := svc.List(ctx, Filters{})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("%d jobs, want 3", len(all))
	}

	athens, _ := svc.List(ctx, Filters{Area: "Athens"})
	if len(athens) != 2 {
		t.Errorf("area filter: %d, want 2", len(athens))
	}

	pendingAthens, _ := svc.List(ctx, Filters{Area: "Athens", Status: "PENDING"})
	if len(pendingAthens) != 1 || pendingAthens[0].SrID != "SR-1" {
		t.Errorf("combined filter: %v", pendingAthens)
	}
}
