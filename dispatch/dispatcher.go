package dispatch

import (
	"context"
	"errors"
	"fmt"

	"github.com/get-eventually/go-messagebus/logger"
	"github.com/get-eventually/go-messagebus/message"
)

// Bus is the interface exposed by a Dispatcher to the Listeners it invokes,
// and to the components that want to publish Messages.
type Bus interface {
	Attach(l Listener) (UID, error)
	AttachAggregate(aggregate ListenerAggregate) error
	Detach(uid UID) error
	Dispatch(ctx context.Context, msg *message.Message) error
}

// ListenerAggregate is implemented by components attaching several
// Listeners at once.
type ListenerAggregate interface {
	AttachListeners(bus Bus) error
}

// ListenerAggregateFunc is a functional type that implements the ListenerAggregate interface.
type ListenerAggregateFunc func(bus Bus) error

// AttachListeners implements dispatch.ListenerAggregate.
func (fn ListenerAggregateFunc) AttachListeners(bus Bus) error {
	return fn(bus)
}

var _ Bus = &Dispatcher{}

// Dispatcher invokes the Listeners attached to the name of a Message,
// synchronously and by priority order.
//
// Use New to create a new Dispatcher instance.
type Dispatcher struct {
	listeners *Collection
	depths    *RecursionDepthList
	logger    logger.Logger
}

// New returns a new Dispatcher with no Listener attached.
//
// ErrInvalidRecursionLimit is returned if the limit specified
// with WithRecursionLimit is lower than 1.
func New(opts ...Option) (*Dispatcher, error) {
	cfg := newConfig(opts...)

	depths, err := NewRecursionDepthList(cfg.RecursionLimit)
	if err != nil {
		return nil, fmt.Errorf("dispatch.New: invalid configuration, %w", err)
	}

	return &Dispatcher{
		listeners: NewCollection(),
		depths:    depths,
		logger:    cfg.Logger,
	}, nil
}

// Attach registers the Listener and returns its UID, to be used with Detach.
//
// ErrInvalidListener is returned when the Listener has not been created
// using NewListener.
func (d *Dispatcher) Attach(l Listener) (UID, error) {
	if !l.isValid() {
		return NilUID, ErrInvalidListener
	}

	uid := d.listeners.Add(l)

	logger.Debug(d.logger, "dispatch.Dispatcher: listener attached",
		logger.With("listener.uid", uid.String()),
		logger.With("message.name", l.messageName),
		logger.With("listener.priority", l.priority),
	)

	return uid, nil
}

// AttachAggregate lets the ListenerAggregate attach its Listeners.
//
// The Listeners attached before a failure of the ListenerAggregate
// stay attached.
func (d *Dispatcher) AttachAggregate(aggregate ListenerAggregate) error {
	return attachAggregate(d, aggregate)
}

// AttachAggregateTo is a convenience function for Bus implementations wrapping a
// Dispatcher, to let the ListenerAggregate attach its Listeners to the wrapper.
func AttachAggregateTo(bus Bus, aggregate ListenerAggregate) error {
	return attachAggregate(bus, aggregate)
}

func attachAggregate(bus Bus, aggregate ListenerAggregate) error {
	if aggregate == nil {
		return ErrNilAggregate
	}

	if err := aggregate.AttachListeners(bus); err != nil {
		return fmt.Errorf("dispatch.Dispatcher: failed to attach aggregated listeners, %w", err)
	}

	return nil
}

// Detach removes the Listener with the specified UID.
//
// A ListenerNotAvailableError is returned if no attached Listener has that UID.
func (d *Dispatcher) Detach(uid UID) error {
	if err := d.listeners.Remove(uid); err != nil {
		return err
	}

	logger.Debug(d.logger, "dispatch.Dispatcher: listener detached",
		logger.With("listener.uid", uid.String()),
	)

	return nil
}

// HasListeners reports whether a Listener has ever been attached
// for the message name.
func (d *Dispatcher) HasListeners(messageName string) bool {
	return d.listeners.HasListeners(messageName)
}

// Listeners returns the Listeners attached for the message name, in invocation order.
func (d *Dispatcher) Listeners(messageName string) ([]Listener, error) {
	return d.listeners.Listeners(messageName)
}

// RecursionDepth returns the number of dispatches of the message name
// currently in progress.
func (d *Dispatcher) RecursionDepth(messageName string) int {
	return d.depths.Depth(messageName)
}

// Dispatch invokes the Listeners attached for the Message name, in order,
// until one of them stops the Message or returns an error.
//
// Dispatching a Message no Listener has ever been attached for is a no-op.
//
// A MaxRecursionDepthReachedError is returned, before invoking any Listener,
// when the Message name is already being dispatched as many times as the
// recursion limit down the call stack.
//
// Errors returned by nested dispatches are returned as they are; any other
// error returned by a Listener is wrapped in a ListenerError. Responses pushed
// before a failure are kept in the Message.
func (d *Dispatcher) Dispatch(ctx context.Context, msg *message.Message) error {
	return d.DispatchAs(ctx, msg, d)
}

// DispatchAs works like Dispatch, but hands the provided Bus to the Listeners
// in place of the Dispatcher.
//
// Bus implementations wrapping a Dispatcher use it so that reentrant dispatches
// from the Listeners go through the wrapper too.
func (d *Dispatcher) DispatchAs(ctx context.Context, msg *message.Message, bus Bus) error {
	if msg == nil {
		return message.ErrNilMessage
	}

	if bus == nil {
		bus = d
	}

	name := msg.Name()

	if !d.listeners.HasListeners(name) {
		return nil
	}

	if d.depths.IsDepthLimitReached(name) {
		err := MaxRecursionDepthReachedError{
			MessageName: name,
			Depth:       d.depths.Depth(name),
		}

		logger.Error(d.logger, "dispatch.Dispatcher: recursion limit reached",
			logger.With("message.name", name),
			logger.With("depth", err.Depth),
		)

		return err
	}

	d.depths.IncreaseDepth(name)
	defer d.depths.DecreaseDepth(name)

	listeners, err := d.listeners.attached(name)
	if err != nil {
		return err
	}

	logger.Debug(d.logger, "dispatch.Dispatcher: dispatching message",
		logger.With("message.name", name),
		logger.With("depth", d.depths.Depth(name)),
		logger.With("listeners", len(listeners)),
	)

	for _, l := range listeners {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("dispatch.Dispatcher: context error, %w", err)
		}

		response, err := l.handler.Handle(ctx, msg, bus)
		if err != nil {
			return listenerError(l.uid, name, err)
		}

		msg.Responses().Push(response)

		if msg.IsStopped() {
			logger.Debug(d.logger, "dispatch.Dispatcher: message stopped",
				logger.With("message.name", name),
				logger.With("listener.uid", l.uid.String()),
			)

			break
		}
	}

	return nil
}

// listenerError wraps err in a ListenerError, unless it is coming from
// a nested dispatch.
func listenerError(uid UID, messageName string, err error) error {
	var nested ListenerError

	if errors.Is(err, ErrMaxRecursionDepthReached) || errors.As(err, &nested) {
		return err
	}

	return ListenerError{
		UID:         uid,
		MessageName: messageName,
		Err:         err,
	}
}
