package otelmessagebus

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/get-eventually/go-messagebus/dispatch"
	"github.com/get-eventually/go-messagebus/message"
)

var _ dispatch.Handler = instrumentedHandler{}

type instrumentedHandler struct {
	handler  dispatch.Handler
	priority int

	tracer   trace.Tracer
	duration metric.Int64Histogram
}

// InstrumentListener wraps the Handler of a dispatch.Listener to provide
// support for exporting telemetry data using OpenTelemetry.
//
// The returned Listener keeps the message name and priority of the original one.
func InstrumentListener(l dispatch.Listener, opts ...Option) (dispatch.Listener, error) {
	cfg := newConfig(opts...)

	duration, err := cfg.meter().Int64Histogram(
		"messagebus.listener.duration.milliseconds",
		metric.WithUnit("ms"),
		metric.WithDescription("Duration in milliseconds of dispatch.Listener invocations."),
	)
	if err != nil {
		return dispatch.Listener{}, fmt.Errorf("otelmessagebus: failed to register metric: %w", err)
	}

	instrumented, err := l.WithHandler(instrumentedHandler{
		handler:  l.Handler(),
		priority: l.Priority(),
		tracer:   cfg.tracer(),
		duration: duration,
	})
	if err != nil {
		return dispatch.Listener{}, fmt.Errorf("otelmessagebus: failed to instrument listener: %w", err)
	}

	return instrumented, nil
}

// Handle invokes the wrapped Handler and reports telemetry data on its execution.
func (ih instrumentedHandler) Handle(
	ctx context.Context,
	msg *message.Message,
	bus dispatch.Bus,
) (response any, err error) {
	attributes := []attribute.KeyValue{
		MessageNameAttribute.String(msg.Name()),
		ListenerPriorityAttribute.Int(ih.priority),
	}

	ctx, span := ih.tracer.Start(ctx, "messagebus.Listener", trace.WithAttributes(attributes...))
	start := time.Now()

	defer func() {
		ih.duration.Record(ctx, time.Since(start).Milliseconds(),
			metric.WithAttributes(append(attributes, ErrorAttribute.Bool(err != nil))...),
		)

		span.SetAttributes(MessageStoppedAttribute.Bool(msg.IsStopped()))

		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}

		span.End()
	}()

	response, err = ih.handler.Handle(ctx, msg, bus)

	return
}
