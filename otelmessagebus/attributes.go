package otelmessagebus

import "go.opentelemetry.io/otel/attribute"

// Attribute keys used by the instrumentation.
const (
	// ErrorAttribute is used with a metric when an error is recorded.
	ErrorAttribute attribute.Key = "error"

	// MessageNameAttribute contains the name of the dispatched Message.
	MessageNameAttribute attribute.Key = "message.name"

	// MessageStoppedAttribute tells whether a listener stopped the Message propagation.
	MessageStoppedAttribute attribute.Key = "message.stopped"

	// MessageResponsesAttribute contains the number of responses of the Message.
	MessageResponsesAttribute attribute.Key = "message.responses"

	// RecursionDepthAttribute contains the number of dispatches of the same
	// Message name in progress when the dispatch started.
	RecursionDepthAttribute attribute.Key = "dispatch.recursion_depth"

	// ListenerPriorityAttribute contains the priority of the invoked Listener.
	ListenerPriorityAttribute attribute.Key = "listener.priority"
)
