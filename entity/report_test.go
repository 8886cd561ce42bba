package entity

import (
	"strings"
	"testing"
)

func TestNewReportIDPrefixes(t *testing.T) {
	tests := []struct {
		role   string
		prefix string
	}{
		{RoleAutopsy, "R-A-"},
		{RoleConstruction, "R-C-"},
		{RoleDigging, "R-D-"},
		{RoleOptical, "R-O-"},
		{"UNKNOWN", "R-X-"},
	}
	for _, tt := range tests {
		id := NewReportID(tt.role)
		if !strings.HasPrefix(id, tt.prefix) {
			t.Errorf("NewReportID(%s) = %s, want prefix %s", tt.role, id, tt.prefix)
		}
		if len(id) <= len(tt.prefix) {
			t.Errorf("NewReportID(%s) = %s has no timestamp", tt.role, id)
		}
	}
}

func TestUserIsWorker(t *testing.T) {
	worker := &User{Role: RoleDigging}
	if !worker.IsWorker() {
		t.Error("digging role should be a worker")
	}
	for _, role := range []string{RolePending, RoleAdmin, ""} {
		u := &User{Role: role}
		if u.IsWorker() {
			t.Errorf("role %q should not be a worker", role)
		}
	}
	if !(&User{Role: RoleAdmin}).IsAdmin() {
		t.Error("admin role not recognized")
	}
}

func TestJobType(t *testing.T) {
	tests := []struct {
		name string
		job  Job
		want string
	}{
		{"autopsy date wins", Job{AutopsyDate: "1/15/2025", DiggingDate: "1/20/2025"}, "Autopsy"},
		{"digging", Job{DiggingDate: "1/20/2025"}, "Digging"},
		{"construction", Job{ConstructionDate: "1/22/2025"}, "Construction"},
		{"optical", Job{OpticalDate: "1/25/2025"}, "Optical"},
		{"no dates", Job{}, "Unknown"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.job.Type(); got != tt.want {
				t.Errorf("Type() = %s, want %s", got, tt.want)
			}
		})
	}
}
