// Package actorctx carries the verified caller identity on a
// context.Context so layers below the HTTP handlers (repos, log
// handlers) can see who is acting without importing gin.
package actorctx

import "context"

type ctxKey string

const keyUserID ctxKey = "actor.user_id"

func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, keyUserID, userID)
}

func UserIDFrom(ctx context.Context) (string, bool) {
	v, ok := ctx.Value(keyUserID).(string)

	return v, ok && v != ""
}
