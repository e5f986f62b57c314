// Package recording contains a dispatch.Bus fake used to track
// the Messages going through a dispatcher.
package recording

import (
	"context"
	"sync"

	"github.com/get-eventually/go-messagebus/dispatch"
	"github.com/get-eventually/go-messagebus/message"
)

// Dispatcher is a dispatch.Bus able to hand a different dispatch.Bus
// to the Listeners it invokes.
type Dispatcher interface {
	dispatch.Bus

	DispatchAs(ctx context.Context, msg *message.Message, bus dispatch.Bus) error
}

var _ dispatch.Bus = &Bus{}

// Bus is a dispatch.Bus wrapper that records the name of every Message
// dispatched through it, nested dispatches included.
//
// Useful for tests assertion.
type Bus struct {
	dispatcher Dispatcher

	mx       sync.RWMutex
	recorded []string
}

// NewBus wraps a Dispatcher to record the Messages dispatched through it.
func NewBus(dispatcher Dispatcher) *Bus {
	return &Bus{dispatcher: dispatcher}
}

// Recorded returns the names of the Messages dispatched so far,
// in the order the dispatches started.
func (b *Bus) Recorded() []string {
	b.mx.RLock()
	defer b.mx.RUnlock()

	return b.recorded
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

// Dispatch records the Message name and forwards the call to the wrapped Dispatcher.
//
// The recorded names can be accessed by calling Recorded().
func (b *Bus) Dispatch(ctx context.Context, msg *message.Message) error {
	if msg != nil {
		b.mx.Lock()
		b.recorded = append(b.recorded, msg.Name())
		b.mx.Unlock()
	}

	return b.dispatcher.DispatchAs(ctx, msg, b)
}
