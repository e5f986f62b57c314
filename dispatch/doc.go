// Package dispatch contains the synchronous, in-process message dispatcher.
//
// Listeners are attached to a single message name with a priority: when a
// message.Message with that name is dispatched, the listeners are invoked
// one after the other, from the highest priority to the lowest, and in
// attach order among listeners with the same priority.
//
// A listener can stop the propagation of a Message by calling Stop on it,
// push values into its response collection, or dispatch other Messages
// through the Bus it receives. Reentrant dispatches of the same message name
// are bounded by a recursion limit (DefaultRecursionLimit unless configured
// with WithRecursionLimit), after which Dispatch fails with
// MaxRecursionDepthReachedError.
//
// A Dispatcher is not safe for concurrent use: it must be confined to a single
// goroutine, or access to it must be serialized by the caller.
package dispatch
