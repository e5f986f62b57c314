package dispatch

import (
	"errors"
	"fmt"
)

var (
	// ErrListenerNotAvailable is matched by ListenerNotAvailableError.
	ErrListenerNotAvailable = errors.New("dispatch: listener not available")

	// ErrListenersNotAvailable is matched by ListenersNotAvailableError.
	ErrListenersNotAvailable = errors.New("dispatch: no listeners registered")

	// ErrMaxRecursionDepthReached is matched by MaxRecursionDepthReachedError.
	ErrMaxRecursionDepthReached = errors.New("dispatch: max recursion depth reached")

	// ErrEmptyMessageName is returned when creating a Listener with no message name.
	ErrEmptyMessageName = errors.New("dispatch.Listener: message name is empty")

	// ErrNilHandler is returned when creating a Listener with a nil Handler.
	ErrNilHandler = errors.New("dispatch.Listener: handler is nil")

	// ErrInvalidListener is returned when attaching a Listener not created with NewListener.
	ErrInvalidListener = errors.New("dispatch.Dispatcher: invalid listener, use dispatch.NewListener")

	// ErrNilAggregate is returned when attaching a nil ListenerAggregate.
	ErrNilAggregate = errors.New("dispatch.Dispatcher: listener aggregate is nil")

	// ErrInvalidRecursionLimit is returned when the configured recursion limit is lower than 1.
	ErrInvalidRecursionLimit = errors.New("dispatch: recursion limit must be at least 1")
)

// ListenerNotAvailableError is returned when looking up or removing
// a Listener using an unknown UID.
type ListenerNotAvailableError struct {
	UID UID
}

func (err ListenerNotAvailableError) Error() string {
	return fmt.Sprintf("dispatch: listener not available, uid: %s", err.UID)
}

// Is makes errors.Is match ErrListenerNotAvailable.
func (err ListenerNotAvailableError) Is(target error) bool {
	return target == ErrListenerNotAvailable
}

// ListenersNotAvailableError is returned when requesting the Listeners of
// a message name no Listener has ever been attached to.
type ListenersNotAvailableError struct {
	MessageName string
}

func (err ListenersNotAvailableError) Error() string {
	return fmt.Sprintf("dispatch: no listeners registered for message %q", err.MessageName)
}

// Is makes errors.Is match ErrListenersNotAvailable.
func (err ListenersNotAvailableError) Is(target error) bool {
	return target == ErrListenersNotAvailable
}

// MaxRecursionDepthReachedError is returned by Dispatch when a message name is
// already being dispatched Depth times down the call stack, and Depth is the
// configured recursion limit. No Listener is invoked in that case.
type MaxRecursionDepthReachedError struct {
	MessageName string
	Depth       int
}

func (err MaxRecursionDepthReachedError) Error() string {
	return fmt.Sprintf(
		"dispatch: max recursion depth reached for message %q, depth: %d",
		err.MessageName,
		err.Depth,
	)
}

// Is makes errors.Is match ErrMaxRecursionDepthReached.
func (err MaxRecursionDepthReachedError) Is(target error) bool {
	return target == ErrMaxRecursionDepthReached
}

// ListenerError wraps the error returned by a Listener Handler.
type ListenerError struct {
	UID         UID
	MessageName string
	Err         error
}

func (err ListenerError) Error() string {
	return fmt.Sprintf(
		"dispatch: listener %s failed to handle message %q, %v",
		err.UID,
		err.MessageName,
		err.Err,
	)
}

// Unwrap returns the error returned by the Listener Handler.
func (err ListenerError) Unwrap() error {
	return err.Err
}
