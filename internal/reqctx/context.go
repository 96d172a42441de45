package reqctx

import "context"

type ctxKey string

const (
	keyRID   ctxKey = "support_rid"
	keyMsgID ctxKey = "support_msg_id"
)

// WithRID stores a correlation id for AI generation logs.
func WithRID(ctx context.Context, rid string) context.Context {
	return context.WithValue(ctx, keyRID, rid)
}

// RID returns the correlation id if present.
func RID(ctx context.Context) string {
	v, _ := ctx.Value(keyRID).(string)
	return v
}

// WithMessageID stores the support message id for AI generation logs.
func WithMessageID(ctx context.Context, id uint64) context.Context {
	return context.WithValue(ctx, keyMsgID, id)
}

// MessageID returns the support message id if present.
func MessageID(ctx context.Context) uint64 {
	v, _ := ctx.Value(keyMsgID).(uint64)
	return v
}
