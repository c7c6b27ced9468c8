package auth

import "context"

type ctxKey int

const ownerCtxKey ctxKey = 0

func ContextWithOwner(ctx context.Context, ownerID string) context.Context {
	return context.WithValue(ctx, ownerCtxKey, ownerID)
}

func OwnerFromContext(ctx context.Context) (string, bool) {
	ownerID, ok := ctx.Value(ownerCtxKey).(string)
	if !ok || ownerID == "" {
		return "", false
	}
	return ownerID, true
}
