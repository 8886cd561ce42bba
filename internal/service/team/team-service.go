package team

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"FiberTrack/entity"
	"FiberTrack/internal/lib/sl"
	"FiberTrack/internal/rowstore"
)

// Team types follow the workflow phases.
const (
	TypeAutopsy      = "AUTOPSY"
	TypeConstruction = "CONSTRUCTION"
	TypeDigging      = "DIGGING"
	TypeOptical      = "OPTICAL"
)

// TeamService manages per-job crew assignments.
type TeamService struct {
	store rowstore.Store
	log   *slog.Logger
}

func NewTeamService(store rowstore.Store, log *slog.Logger) *TeamService {
	return &TeamService{
		store: store,
		log:   log.With(sl.Module("service.team")),
	}
}

// List returns the crew assigned to a job.
func (s *TeamService) List(ctx context.Context, jobSrID string) ([]entity.TeamMember, error) {
	rows, err := s.store.GetRows(ctx, rowstore.CategoryTeams, map[string]string{"job_sr_id": jobSrID})
	if err != nil {
		return nil, fmt.Errorf("listing team: %w", err)
	}

	members := make([]entity.TeamMember, 0, len(rows))
	for _, row := range rows {
		members = append(members, entity.TeamMember{
			TeamID:   row.Get("team_id"),
			JobSrID:  row.Get("job_sr_id"),
			UserID:   row.Get("user_id"),
			TeamType: row.Get("team_type"),
		})
	}
	return members, nil
}

// AvailableUsers returns the active workers whose role matches a team type.
func (s *TeamService) AvailableUsers(ctx context.Context, teamType string) ([]entity.User, error) {
	role, ok := roleForType(teamType)
	if !ok {
		return nil, fmt.Errorf("unknown team type %s", teamType)
	}

	rows, err := s.store.GetRows(ctx, rowstore.CategoryUsers, map[string]string{"role": role})
	if err != nil {
		return nil, fmt.Errorf("listing users: %w", err)
	}

	var users []entity.User
	for _, row := range rows {
		if row.Get("active") != "TRUE" {
			continue
		}
		users = append(users, entity.User{
			UserID:         row.Get("user_id"),
			Name:           row.Get("name"),
			Role:           row.Get("role"),
			TelegramChatID: row.Get("telegram_chat_id"),
			Active:         true,
		})
	}
	return users, nil
}

// Add assigns a worker to a job's crew. Re-adding the same worker for the
// same type is a no-op.
func (s *TeamService) Add(ctx context.Context, jobSrID, userID, teamType string) (*entity.TeamMember, error) {
	if _, ok := roleForType(teamType); !ok {
		return nil, fmt.Errorf("unknown team type %s", teamType)
	}

	existing, err := s.List(ctx, jobSrID)
	if err != nil {
		return nil, err
	}
	for _, m := range existing {
		if m.UserID == userID && m.TeamType == teamType {
			return &m, nil
		}
	}

	member := entity.TeamMember{
		TeamID:   fmt.Sprintf("T-%d", time.Now().UnixMilli()),
		JobSrID:  jobSrID,
		UserID:   userID,
		TeamType: teamType,
	}
	_, err = s.store.AddRow(ctx, rowstore.CategoryTeams, map[string]string{
		"team_id":   member.TeamID,
		"job_sr_id": member.JobSrID,
		"user_id":   member.UserID,
		"team_type": member.TeamType,
	})
	if err != nil {
		return nil, fmt.Errorf("adding team member: %w", err)
	}

	s.log.Info("team member added",
		slog.String("job_sr_id", jobSrID),
		slog.String("user_id", userID),
		slog.String("team_type", teamType),
	)
	return &member, nil
}

// Remove drops a worker from a job's crew.
func (s *TeamService) Remove(ctx context.Context, teamID string) error {
	rows, err := s.store.GetRows(ctx, rowstore.CategoryTeams, map[string]string{"team_id": teamID})
	if err != nil {
		return fmt.Errorf("looking up team member: %w", err)
	}
	if len(rows) == 0 {
		return fmt.Errorf("team member %s not found", teamID)
	}
	if err := s.store.DeleteRow(ctx, rows[0]); err != nil {
		return fmt.Errorf("removing team member: %w", err)
	}
	return nil
}

func roleForType(teamType string) (string, bool) {
	switch teamType {
	case TypeAutopsy:
		return entity.RoleAutopsy, true
	case TypeConstruction:
		return entity.RoleConstruction, true
	case TypeDigging:
		return entity.RoleDigging, true
	case TypeOptical:
		return entity.RoleOptical, true
	}
	return "", false
}
