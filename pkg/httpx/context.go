package httpx

import "context"

type ctxKey string

const (
	// CtxKeyUserID holds the authenticated user's id as a string.
	CtxKeyUserID ctxKey = "user_id"
)

// WithUserID records the authenticated caller for downstream middleware such
// as RateLimitByUser.
func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, CtxKeyUserID, userID)
}

// UserIDFromContext returns the id stored by WithUserID.
func UserIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(CtxKeyUserID).(string)
	return id, ok && id != ""
}
