// Package message exposes the Message type, the envelope that flows through
// a dispatch.Dispatcher, together with its parameters and the collection of
// responses contributed by the listeners that handled it.
package message

import "errors"

var (
	// ErrEmptyName is returned by New when no message name is provided.
	ErrEmptyName = errors.New("message.Message: name is empty")

	// ErrNilMessage is returned by components that expect a Message and receive nil.
	ErrNilMessage = errors.New("message.Message: message is nil")
)

// Message is a named envelope dispatched to every listener registered
// for its name.
//
// Listeners can read and modify the parameters, push responses and stop
// the propagation of the Message to lower-priority listeners.
// Once stopped, a Message cannot be resumed: build a new one instead.
type Message struct {
	name      string
	sender    any
	params    Params
	stopped   bool
	responses *Responses
}

// Option customizes a Message built with New.
type Option interface {
	apply(*Message)
}

type senderOption struct{ sender any }

func (o senderOption) apply(m *Message) { m.sender = o.sender }

// WithSender attaches the component originating the Message.
// The sender is opaque to the dispatcher.
func WithSender(sender any) Option {
	return senderOption{sender}
}

type paramsOption struct{ params Params }

func (o paramsOption) apply(m *Message) { m.params = m.params.Merge(o.params) }

// WithParams sets the initial parameters of the Message.
// Calling it more than once merges the provided parameters.
func WithParams(params Params) Option {
	return paramsOption{params}
}

type responsesOption struct{ responses *Responses }

func (o responsesOption) apply(m *Message) {
	if o.responses != nil {
		m.responses = o.responses
	}
}

// WithResponses makes the Message push its responses into an existing collection,
// useful to share a single collection between several dispatches.
func WithResponses(responses *Responses) Option {
	return responsesOption{responses}
}

// New creates a new Message with the specified name.
func New(name string, opts ...Option) (*Message, error) {
	if name == "" {
		return nil, ErrEmptyName
	}

	m := &Message{
		name:      name,
		params:    make(Params),
		responses: NewResponses(),
	}

	for _, opt := range opts {
		opt.apply(m)
	}

	return m, nil
}

// Name returns the name used to route the Message to its listeners.
func (m *Message) Name() string { return m.name }

// Sender returns the component that originated the Message, if any.
func (m *Message) Sender() any { return m.sender }

// Param returns the parameter stored under key, and whether it was present.
func (m *Message) Param(key string) (any, bool) {
	v, ok := m.params[key]
	return v, ok
}

// SetParam stores value under key, replacing any previous value.
func (m *Message) SetParam(key string, value any) *Message {
	m.params = m.params.With(key, value)
	return m
}

// HasParam reports whether a parameter is stored under key.
func (m *Message) HasParam(key string) bool {
	_, ok := m.params[key]
	return ok
}

// HasParams reports whether all the specified keys are present.
// It returns true when no key is specified.
func (m *Message) HasParams(keys ...string) bool {
	for _, key := range keys {
		if !m.HasParam(key) {
			return false
		}
	}

	return true
}

// Params returns a copy of the Message parameters.
func (m *Message) Params() Params {
	return make(Params, len(m.params)).Merge(m.params)
}

// Stop halts the propagation of the Message: listeners with a lower
// priority than the current one will not be invoked.
func (m *Message) Stop() *Message {
	m.stopped = true
	return m
}

// IsStopped reports whether a listener has stopped the Message propagation.
func (m *Message) IsStopped() bool { return m.stopped }

// Responses returns the collection listeners push their results into.
func (m *Message) Responses() *Responses { return m.responses }

// SetResponses replaces the response collection of the Message.
// A nil collection is replaced with a new, empty one.
func (m *Message) SetResponses(responses *Responses) *Message {
	if responses == nil {
		responses = NewResponses()
	}

	m.responses = responses

	return m
}
