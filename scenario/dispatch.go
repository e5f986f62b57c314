// Package scenario provides a Given/When/Then API to test the outcome
// of dispatching a message.Message through a set of dispatch.Listener.
package scenario

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/get-eventually/go-messagebus/dispatch"
	"github.com/get-eventually/go-messagebus/internal/recording"
	"github.com/get-eventually/go-messagebus/message"
)

// DispatchInit is the entrypoint of the Dispatch scenario API.
//
// A Dispatch scenario can either set the Listeners attached to the dispatcher
// by using Given(), or test a dispatch with no Listener by using When() directly.
type DispatchInit struct{}

// Dispatch is a scenario type to test the responses produced by the Listeners
// handling a dispatched Message.
func Dispatch() DispatchInit { return DispatchInit{} }

// Given sets the Listeners attached to the dispatcher before the Message is dispatched.
//
// Listeners are attached in the order they are specified, which is also their
// invocation order when they share the same priority.
func (sc DispatchInit) Given(listeners ...dispatch.Listener) DispatchGiven {
	return DispatchGiven{given: listeners}
}

// When provides the Message to dispatch.
func (sc DispatchInit) When(msg *message.Message) DispatchWhen {
	return DispatchWhen{when: msg}
}

// DispatchGiven is the state of the scenario once the Listeners
// have been provided using Given().
type DispatchGiven struct {
	given []dispatch.Listener
}

// When provides the Message to dispatch.
func (sc DispatchGiven) When(msg *message.Message) DispatchWhen {
	return DispatchWhen{
		DispatchGiven: sc,
		when:          msg,
	}
}

// DispatchWhen is the state of the scenario once the Listeners
// and the Message to dispatch have been provided.
type DispatchWhen struct {
	DispatchGiven

	when *message.Message
}

// Then sets a positive expectation on the scenario outcome, to collect
// the responses provided in input.
//
// Responses should be specified in the order the Listeners push them.
func (sc DispatchWhen) Then(responses ...any) DispatchThen {
	return DispatchThen{
		DispatchWhen: sc,
		then:         responses,
	}
}

// ThenError sets a negative expectation on the scenario outcome,
// to produce an error value that is similar to the one provided in input.
//
// Error assertion happens using errors.Is(), so the error returned
// by the dispatcher is unwrapped until the cause error to match
// the provided expectation.
func (sc DispatchWhen) ThenError(err error) DispatchThen {
	return DispatchThen{
		DispatchWhen: sc,
		wantError:    true,
		thenError:    err,
	}
}

// ThenFails sets a negative expectation on the scenario outcome,
// to fail the dispatch with no particular assertion on the error returned.
func (sc DispatchWhen) ThenFails() DispatchThen {
	return DispatchThen{
		DispatchWhen: sc,
		wantError:    true,
	}
}

// DispatchThen is the state of the scenario once the preconditions
// and expectations have been fully specified.
type DispatchThen struct {
	DispatchWhen

	then           []any
	thenError      error
	wantError      bool
	wantStopped    bool
	thenDispatched []string
}

// ThenStopped adds the expectation that one of the Listeners
// stopped the Message propagation.
func (sc DispatchThen) ThenStopped() DispatchThen {
	sc.wantStopped = true
	return sc
}

// ThenDispatched adds the expectation on the names of all the Messages
// dispatched during the scenario, in the order the dispatches started.
//
// The Message provided with When() is the first one, followed by those
// dispatched by the Listeners.
func (sc DispatchThen) ThenDispatched(names ...string) DispatchThen {
	sc.thenDispatched = names
	return sc
}

// AssertOn performs the specified expectations of the scenario, using a new
// dispatch.Dispatcher built with the provided options.
func (sc DispatchThen) AssertOn(t *testing.T, opts ...dispatch.Option) { //nolint:gocritic
	t.Helper()

	dispatcher, err := dispatch.New(opts...)
	if !assert.NoError(t, err) {
		return
	}

	bus := recording.NewBus(dispatcher)

	for _, l := range sc.given {
		if _, err := bus.Attach(l); !assert.NoError(t, err) {
			return
		}
	}

	err = bus.Dispatch(context.Background(), sc.when)

	if sc.thenDispatched != nil {
		assert.Equal(t, sc.thenDispatched, bus.Recorded())
	}

	if sc.wantStopped && sc.when != nil {
		assert.True(t, sc.when.IsStopped(), "expected the message propagation to be stopped")
	}

	if !sc.wantError {
		if !assert.NoError(t, err) {
			return
		}

		assert.Equal(t, sc.then, sc.when.Responses().Slice())

		return
	}

	if !assert.Error(t, err) {
		return
	}

	if sc.thenError != nil {
		assert.ErrorIs(t, err, sc.thenError)
	}
}
