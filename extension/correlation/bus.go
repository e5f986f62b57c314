package correlation

import (
	"context"

	"github.com/google/uuid"

	"github.com/get-eventually/go-messagebus/dispatch"
	"github.com/get-eventually/go-messagebus/message"
)

// Generator returns a new unique id every time it is called.
type Generator func() string

// Dispatcher is a dispatch.Bus able to hand a different dispatch.Bus
// to the Listeners it invokes.
//
// Both dispatch.Dispatcher and otelmessagebus.InstrumentedDispatcher implement it.
type Dispatcher interface {
	dispatch.Bus

	DispatchAs(ctx context.Context, msg *message.Message, bus dispatch.Bus) error
}

var _ dispatch.Bus = &Bus{}

// Bus is a dispatch.Bus wrapper that assigns an id to every Message
// dispatched, together with its correlation and causation ids.
//
// The correlation id is inherited from the context, or set to the Message id
// when missing. The causation id is the id of the Message being handled
// when the dispatch happens, or the Message id itself for root Messages.
//
// Listeners receive the Bus, so nested dispatches are correlated as well.
type Bus struct {
	dispatcher  Dispatcher
	idGenerator Generator
}

// WrapBus wraps the provided Dispatcher to correlate the dispatched Messages.
// A nil Generator falls back to random UUIDs.
func WrapBus(dispatcher Dispatcher, generator Generator) *Bus {
	if generator == nil {
		generator = uuid.NewString
	}

	return &Bus{
		dispatcher:  dispatcher,
		idGenerator: generator,
	}
}

// Attach calls the wrapped Dispatcher.Attach method.
func (b *Bus) Attach(l dispatch.Listener) (dispatch.UID, error) {
	return b.dispatcher.Attach(l)
}

// AttachAggregate lets the dispatch.ListenerAggregate attach its Listeners through the Bus.
func (b *Bus) AttachAggregate(aggregate dispatch.ListenerAggregate) error {
	return dispatch.AttachAggregateTo(b, aggregate)
}

// Detach calls the wrapped Dispatcher.Detach method.
func (b *Bus) Detach(uid dispatch.UID) error {
	return b.dispatcher.Detach(uid)
}

// Dispatch stamps the correlation parameters on the Message and dispatches it.
//
// Parameters already set on the Message are left untouched, so re-dispatching
// the same Message keeps its identity.
func (b *Bus) Dispatch(ctx context.Context, msg *message.Message) error {
	if msg == nil {
		return b.dispatcher.DispatchAs(ctx, msg, b)
	}

	messageID, ok := MessageID(msg)
	if !ok {
		messageID = b.idGenerator()
		msg.SetParam(MessageIDKey, messageID)
	}

	correlationID, ok := CorrelationIDFromContext(ctx)
	if !ok {
		correlationID = messageID
	}

	causationID, ok := CausationIDFromContext(ctx)
	if !ok {
		causationID = messageID
	}

	if id, ok := CorrelationID(msg); ok {
		correlationID = id
	} else {
		msg.SetParam(CorrelationIDKey, correlationID)
	}

	if !msg.HasParam(CausationIDKey) {
		msg.SetParam(CausationIDKey, causationID)
	}

	ctx = WithCorrelationID(ctx, correlationID)
	ctx = WithCausationID(ctx, messageID)

	return b.dispatcher.DispatchAs(ctx, msg, b)
}
