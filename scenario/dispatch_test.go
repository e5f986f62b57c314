package scenario_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/get-eventually/go-messagebus/dispatch"
	"github.com/get-eventually/go-messagebus/message"
	"github.com/get-eventually/go-messagebus/scenario"
)

func respond(t *testing.T, name string, priority int, response any) dispatch.Listener {
	t.Helper()

	l, err := dispatch.NewListener(name, priority, dispatch.HandlerFunc(
		func(context.Context, *message.Message, dispatch.Bus) (any, error) {
			return response, nil
		},
	))
	require.NoError(t, err)

	return l
}

func newMessage(t *testing.T, name string) *message.Message {
	t.Helper()

	msg, err := message.New(name)
	require.NoError(t, err)

	return msg
}

func TestDispatch(t *testing.T) {
	t.Run("no listeners produce no responses", func(t *testing.T) {
		scenario.Dispatch().
			When(newMessage(t, "user.created")).
			Then().
			AssertOn(t)
	})

	t.Run("responses are collected in priority order", func(t *testing.T) {
		scenario.Dispatch().
			Given(
				respond(t, "user.created", 0, "low"),
				respond(t, "user.created", 10, "high"),
				respond(t, "user.deleted", 100, "unrelated"),
			).
			When(newMessage(t, "user.created")).
			Then("high", "low").
			AssertOn(t)
	})

	t.Run("stopped messages skip lower-priority listeners", func(t *testing.T) {
		stopper, err := dispatch.NewListener("user.created", 5, dispatch.HandlerFunc(
			func(_ context.Context, msg *message.Message, _ dispatch.Bus) (any, error) {
				msg.Stop()
				return "stopped", nil
			},
		))
		require.NoError(t, err)

		scenario.Dispatch().
			Given(
				respond(t, "user.created", 10, "first"),
				stopper,
				respond(t, "user.created", 0, "skipped"),
			).
			When(newMessage(t, "user.created")).
			Then("first", "stopped").
			ThenStopped().
			AssertOn(t)
	})

	t.Run("listener errors are reported", func(t *testing.T) {
		boom := errors.New("boom")

		failing, err := dispatch.NewListener("user.created", 0, dispatch.HandlerFunc(
			func(context.Context, *message.Message, dispatch.Bus) (any, error) {
				return nil, boom
			},
		))
		require.NoError(t, err)

		scenario.Dispatch().
			Given(failing).
			When(newMessage(t, "user.created")).
			ThenError(boom).
			AssertOn(t)
	})

	t.Run("recursion limit is configurable", func(t *testing.T) {
		recursive, err := dispatch.NewListener("loop", 0, dispatch.HandlerFunc(
			func(ctx context.Context, msg *message.Message, bus dispatch.Bus) (any, error) {
				return nil, bus.Dispatch(ctx, msg)
			},
		))
		require.NoError(t, err)

		scenario.Dispatch().
			Given(recursive).
			When(newMessage(t, "loop")).
			ThenError(dispatch.ErrMaxRecursionDepthReached).
			AssertOn(t, dispatch.WithRecursionLimit(2))
	})

	t.Run("nested dispatches are tracked", func(t *testing.T) {
		forward, err := dispatch.NewListener("order.placed", 0, dispatch.HandlerFunc(
			func(ctx context.Context, _ *message.Message, bus dispatch.Bus) (any, error) {
				msg, err := message.New("invoice.requested")
				if err != nil {
					return nil, err
				}

				if err := bus.Dispatch(ctx, msg); err != nil {
					return nil, err
				}

				return msg.Responses().Slice(), nil
			},
		))
		require.NoError(t, err)

		scenario.Dispatch().
			Given(forward, respond(t, "invoice.requested", 0, "invoice")).
			When(newMessage(t, "order.placed")).
			Then([]any{"invoice"}).
			ThenDispatched("order.placed", "invoice.requested").
			AssertOn(t)
	})

	t.Run("nil messages fail the dispatch", func(t *testing.T) {
		scenario.Dispatch().
			When(nil).
			ThenFails().
			AssertOn(t)
	})
}
