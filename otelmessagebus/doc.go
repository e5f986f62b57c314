// Package otelmessagebus provides OpenTelemetry instrumentation, in the form
// of traces and metrics, for dispatch.Dispatcher and dispatch.Listener.
package otelmessagebus
