package message_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/get-eventually/go-messagebus/message"
)

func TestNew(t *testing.T) {
	t.Run("fails when the name is empty", func(t *testing.T) {
		msg, err := message.New("")

		assert.Nil(t, msg)
		assert.ErrorIs(t, err, message.ErrEmptyName)
	})

	t.Run("creates a message with no parameters and no responses", func(t *testing.T) {
		msg, err := message.New("user.created")
		require.NoError(t, err)

		assert.Equal(t, "user.created", msg.Name())
		assert.Nil(t, msg.Sender())
		assert.Empty(t, msg.Params())
		assert.False(t, msg.IsStopped())
		require.NotNil(t, msg.Responses())
		assert.True(t, msg.Responses().IsEmpty())
	})

	t.Run("applies the provided options", func(t *testing.T) {
		sender := struct{ name string }{"sender"}
		responses := message.NewResponses().Push("previous")

		msg, err := message.New("user.created",
			message.WithSender(sender),
			message.WithParams(message.Params{"id": 1}),
			message.WithParams(message.Params{"email": "john@doe.com"}),
			message.WithResponses(responses),
		)
		require.NoError(t, err)

		assert.Equal(t, sender, msg.Sender())
		assert.Equal(t, message.Params{"id": 1, "email": "john@doe.com"}, msg.Params())
		assert.Same(t, responses, msg.Responses())
	})
}

func TestMessage_Params(t *testing.T) {
	msg, err := message.New("user.created", message.WithParams(message.Params{"id": 1}))
	require.NoError(t, err)

	msg.SetParam("email", "john@doe.com").SetParam("id", 2)

	v, ok := msg.Param("id")
	assert.True(t, ok)
	assert.Equal(t, 2, v)

	v, ok = msg.Param("missing")
	assert.False(t, ok)
	assert.Nil(t, v)

	assert.True(t, msg.HasParam("email"))
	assert.False(t, msg.HasParam("missing"))

	assert.True(t, msg.HasParams())
	assert.True(t, msg.HasParams("id", "email"))
	assert.False(t, msg.HasParams("id", "missing"))

	// Params returns a copy, changes do not leak into the message.
	params := msg.Params()
	params["id"] = 100

	v, _ = msg.Param("id")
	assert.Equal(t, 2, v)
}

func TestMessage_Stop(t *testing.T) {
	msg, err := message.New("user.created")
	require.NoError(t, err)

	assert.False(t, msg.IsStopped())
	assert.Same(t, msg, msg.Stop())
	assert.True(t, msg.IsStopped())

	msg.Stop()
	assert.True(t, msg.IsStopped())
}

func TestMessage_SetResponses(t *testing.T) {
	msg, err := message.New("user.created")
	require.NoError(t, err)

	shared := message.NewResponses()
	msg.SetResponses(shared)
	assert.Same(t, shared, msg.Responses())

	msg.SetResponses(nil)
	require.NotNil(t, msg.Responses())
	assert.NotSame(t, shared, msg.Responses())
	assert.True(t, msg.Responses().IsEmpty())
}

func TestParams(t *testing.T) {
	var params message.Params

	params = params.With("a", 1)
	assert.Equal(t, message.Params{"a": 1}, params)

	var empty message.Params
	merged := empty.Merge(message.Params{"b": 2})
	assert.Equal(t, message.Params{"b": 2}, merged)

	merged = params.Merge(message.Params{"a": 3, "c": 4})
	assert.Equal(t, message.Params{"a": 3, "c": 4}, merged)
}
