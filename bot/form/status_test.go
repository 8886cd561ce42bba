package form

import (
	"testing"

	"FiberTrack/entity"
)

func TestDeriveSiteStatus(t *testing.T) {
	tests := []struct {
		name   string
		role   string
		fields map[string]string
		want   string
	}{
		{
			name:   "autopsy always completes",
			role:   entity.RoleAutopsy,
			fields: map[string]string{},
			want:   entity.StatusAutopsyDone,
		},
		{
			name: "construction both yes",
			role: entity.RoleConstruction,
			fields: map[string]string{
				"bcp_installed": AnswerYes,
				"bep_installed": AnswerYes,
				"bmo_installed": AnswerNo,
			},
			want: entity.StatusConstructionDone,
		},
		{
			name: "construction bep missing",
			role: entity.RoleConstruction,
			fields: map[string]string{
				"bcp_installed": AnswerYes,
				"bep_installed": AnswerNo,
				"bmo_installed": AnswerYes,
			},
			want: entity.StatusInProgress,
		},
		{
			name: "digging all yes",
			role: entity.RoleDigging,
			fields: map[string]string{
				"trench_dug":    AnswerYes,
				"cable_laid":    AnswerYes,
				"backfill_done": AnswerYes,
			},
			want: entity.StatusDiggingDone,
		},
		{
			name: "digging backfill pending",
			role: entity.RoleDigging,
			fields: map[string]string{
				"trench_dug":    AnswerYes,
				"cable_laid":    AnswerYes,
				"backfill_done": AnswerNo,
			},
			want: entity.StatusInProgress,
		},
		{
			name: "optical splicing done",
			role: entity.RoleOptical,
			fields: map[string]string{
				"splicing_done": AnswerYes,
			},
			want: entity.StatusOpticalDone,
		},
		{
			name: "optical splicing not done",
			role: entity.RoleOptical,
			fields: map[string]string{
				"splicing_done": AnswerNo,
			},
			want: entity.StatusInProgress,
		},
		{
			name:   "unknown role falls back to in progress",
			role:   "SOMETHING_ELSE",
			fields: map[string]string{},
			want:   entity.StatusInProgress,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DeriveSiteStatus(tt.role, tt.fields)
			if got != tt.want {
				t.Errorf("DeriveSiteStatus(%s) = %s, want %s", tt.role, got, tt.want)
			}
		})
	}
}
