package teams

import (
	"context"

	"FiberTrack/entity"
)

type Core interface {
	ListTeam(ctx context.Context, jobSrID string) ([]entity.TeamMember, error)
	AvailableUsers(ctx context.Context, teamType string) ([]entity.User, error)
	AddTeamMember(ctx context.Context, jobSrID, userID, teamType string) (*entity.TeamMember, error)
	RemoveTeamMember(ctx context.Context, teamID string) error
}
