package users

import (
	"context"

	"FiberTrack/entity"
)

type Core interface {
	ListUsers(ctx context.Context) ([]entity.User, error)
	UpdateUser(ctx context.Context, userID string, fields map[string]string) error
}
