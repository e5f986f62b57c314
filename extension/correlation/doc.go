// Package correlation contains a dispatch.Bus extension to support
// correlated messages for tracing and debugging purposes.
//
// You can read more about messages correlation here:
// https://blog.arkency.com/correlation-id-and-causation-id-in-evented-systems/
package correlation
