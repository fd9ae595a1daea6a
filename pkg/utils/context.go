package utils

import (
	"context"

	"github.com/google/uuid"
)

type contextKey string

const currentUserKey contextKey = "current_user"

// CurrentUser is the authenticated requester as resolved by the auth
// middleware. Role and Superuser are snapshots of the user row at
// request time.
type CurrentUser struct {
	ID        uuid.UUID
	Username  string
	Role      string
	Superuser bool
}

func SetCurrentUser(ctx context.Context, user CurrentUser) context.Context {
	return context.WithValue(ctx, currentUserKey, user)
}

func GetCurrentUser(ctx context.Context) (CurrentUser, bool) {
	user, ok := ctx.Value(currentUserKey).(CurrentUser)
	return user, ok
}
