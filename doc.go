// Package messagebus contains an in-process, synchronous publish/subscribe
// mechanism: named messages are dispatched to the listeners registered
// for that name, in priority order, within the caller's call stack.
//
// The library contains multiple packages, you might want to start from `message`
// to build the messages to dispatch, and `dispatch` to register listeners
// and dispatch messages to them.
//
// `otelmessagebus` adds OpenTelemetry instrumentation to a dispatcher,
// `extension/correlation` tracks which message caused which, and
// `scenario` helps you test the behavior of your listeners.
package messagebus
