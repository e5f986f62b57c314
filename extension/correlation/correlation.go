package correlation

import (
	"context"

	"github.com/get-eventually/go-messagebus/message"
)

// Parameter keys used to store correlation data in a message.Message.
const (
	MessageIDKey     = "Message-Id"
	CorrelationIDKey = "Correlation-Id"
	CausationIDKey   = "Causation-Id"
)

type (
	correlationCtxKey struct{}
	causationCtxKey   struct{}
)

// WithCorrelationID returns a context carrying the provided correlation id,
// used by Bus for the Messages dispatched with it.
func WithCorrelationID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, correlationCtxKey{}, id)
}

// WithCausationID returns a context carrying the provided causation id,
// used by Bus for the Messages dispatched with it.
func WithCausationID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, causationCtxKey{}, id)
}

// CorrelationIDFromContext returns the correlation id carried by the context, if any.
func CorrelationIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(correlationCtxKey{}).(string)
	return id, ok && id != ""
}

// CausationIDFromContext returns the causation id carried by the context, if any.
func CausationIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(causationCtxKey{}).(string)
	return id, ok && id != ""
}

// MessageID returns the id assigned to the Message by Bus, if any.
func MessageID(msg *message.Message) (string, bool) { return stringParam(msg, MessageIDKey) }

// CorrelationID returns the correlation id of the Message, if any.
func CorrelationID(msg *message.Message) (string, bool) { return stringParam(msg, CorrelationIDKey) }

// CausationID returns the causation id of the Message, if any.
func CausationID(msg *message.Message) (string, bool) { return stringParam(msg, CausationIDKey) }

func stringParam(msg *message.Message, key string) (string, bool) {
	v, ok := msg.Param(key)
	if !ok {
		return "", false
	}

	id, ok := v.(string)

	return id, ok
}
