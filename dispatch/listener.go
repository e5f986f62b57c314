package dispatch

import (
	"context"

	"github.com/google/uuid"

	"github.com/get-eventually/go-messagebus/message"
)

// UID identifies a Listener attached to a Dispatcher.
//
// UIDs are generated on attach and stay the same for as long as the
// Listener is attached; use them to Detach the Listener.
type UID uuid.UUID

// NilUID is the zero value of UID, never assigned to an attached Listener.
var NilUID = UID(uuid.Nil)

func newUID() UID { return UID(uuid.New()) }

// String returns the canonical representation of the UID.
func (uid UID) String() string { return uuid.UUID(uid).String() }

// Handler is the reaction of a Listener to a Message.
//
// The Bus is the one that is dispatching the Message, and can be used to
// dispatch further Messages or to attach and detach Listeners.
//
// A non-nil value returned by Handle is pushed into the Message responses.
// A non-nil error aborts the dispatch, and is returned to the caller of Dispatch.
type Handler interface {
	Handle(ctx context.Context, msg *message.Message, bus Bus) (any, error)
}

// HandlerFunc is a functional type that implements the Handler interface.
type HandlerFunc func(ctx context.Context, msg *message.Message, bus Bus) (any, error)

// Handle implements dispatch.Handler.
func (fn HandlerFunc) Handle(ctx context.Context, msg *message.Message, bus Bus) (any, error) {
	return fn(ctx, msg, bus)
}

// Listener binds a Handler to a message name, with a priority:
// Listeners with higher priority are invoked first.
//
// Use NewListener to create a new Listener.
type Listener struct {
	messageName string
	priority    int
	handler     Handler
}

// NewListener creates a Listener reacting to Messages named messageName.
//
// Any priority value is valid, including zero and negative values.
func NewListener(messageName string, priority int, handler Handler) (Listener, error) {
	if messageName == "" {
		return Listener{}, ErrEmptyMessageName
	}

	if handler == nil {
		return Listener{}, ErrNilHandler
	}

	return Listener{
		messageName: messageName,
		priority:    priority,
		handler:     handler,
	}, nil
}

// MessageName returns the name of the Messages the Listener reacts to.
func (l Listener) MessageName() string { return l.messageName }

// Priority returns the Listener priority.
func (l Listener) Priority() int { return l.priority }

// Handler returns the Handler invoked by the Listener.
func (l Listener) Handler() Handler { return l.handler }

// WithHandler returns a copy of the Listener using the provided Handler,
// useful to decorate the Handler of an existing Listener.
func (l Listener) WithHandler(handler Handler) (Listener, error) {
	return NewListener(l.messageName, l.priority, handler)
}

func (l Listener) isValid() bool {
	return l.messageName != "" && l.handler != nil
}
