package cont

import (
	"context"

	"FiberTrack/entity"
)

type ctxKey int

const userKey ctxKey = iota

// PutUser stores the authenticated dashboard user in the request context.
func PutUser(ctx context.Context, user *entity.UserAuth) context.Context {
	return context.WithValue(ctx, userKey, user)
}

// GetUser returns the authenticated dashboard user, or nil.
func GetUser(ctx context.Context) *entity.UserAuth {
	user, _ := ctx.Value(userKey).(*entity.UserAuth)
	return user
}
