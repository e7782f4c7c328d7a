package api_context

import (
	"context"

	"github.com/google/uuid"
)

type ctxKey string

const (
	JobIDKey      ctxKey = "jobID"
	AuthUserIDKey ctxKey = "authUserID"
	AuthRolesKey  ctxKey = "authRoles"
)

func JobIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(JobIDKey).(uuid.UUID)
	return id, ok
}

func WithJobID(ctx context.Context, id uuid.UUID) context.Context {
	return context.WithValue(ctx, JobIDKey, id)
}

func AuthUserIDFromContext(ctx context.Context) (string, bool) {
	sub, ok := ctx.Value(AuthUserIDKey).(string)
	return sub, ok && sub != ""
}

func AuthRolesFromContext(ctx context.Context) ([]string, bool) {
	roles, ok := ctx.Value(AuthRolesKey).([]string)
	return roles, ok
}

func WithAuth(ctx context.Context, userID string, roles []string) context.Context {
	ctx = context.WithValue(ctx, AuthUserIDKey, userID)
	return context.WithValue(ctx, AuthRolesKey, roles)
}
