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

var _ dispatch.Bus = &InstrumentedDispatcher{}

// InstrumentedDispatcher is a wrapper type over a dispatch.Dispatcher
// instance to provide instrumentation, in the form of metrics and traces
// using OpenTelemetry.
//
// Listeners receive the InstrumentedDispatcher as their dispatch.Bus, so
// nested dispatches are instrumented as well.
//
// Use NewInstrumentedDispatcher for constructing a new instance of this type.
type InstrumentedDispatcher struct {
	dispatcher *dispatch.Dispatcher

	tracer           trace.Tracer
	dispatchDuration metric.Int64Histogram
	dispatchCount    metric.Int64Counter
}

func (id *InstrumentedDispatcher) registerMetrics(meter metric.Meter) error {
	var err error

	if id.dispatchDuration, err = meter.Int64Histogram(
		"messagebus.dispatch.duration.milliseconds",
		metric.WithUnit("ms"),
		metric.WithDescription("Duration in milliseconds of dispatch.Dispatcher.Dispatch operations performed."),
	); err != nil {
		return fmt.Errorf("otelmessagebus.InstrumentedDispatcher: failed to register metric: %w", err)
	}

	if id.dispatchCount, err = meter.Int64Counter(
		"messagebus.dispatch.count",
		metric.WithDescription("Count of dispatch.Dispatcher.Dispatch operations performed."),
	); err != nil {
		return fmt.Errorf("otelmessagebus.InstrumentedDispatcher: failed to register metric: %w", err)
	}

	return nil
}

// NewInstrumentedDispatcher returns a wrapper type to provide OpenTelemetry
// instrumentation (metrics and traces) around a dispatch.Dispatcher.
//
// An error is returned if metrics could not be registered.
func NewInstrumentedDispatcher(
	dispatcher *dispatch.Dispatcher,
	options ...Option,
) (*InstrumentedDispatcher, error) {
	cfg := newConfig(options...)

	id := &InstrumentedDispatcher{
		dispatcher: dispatcher,
		tracer:     cfg.tracer(),
	}

	if err := id.registerMetrics(cfg.meter()); err != nil {
		return nil, err
	}

	return id, nil
}

// Attach calls the wrapped dispatch.Dispatcher.Attach method.
func (id *InstrumentedDispatcher) Attach(l dispatch.Listener) (dispatch.UID, error) {
	return id.dispatcher.Attach(l)
}

// AttachAggregate lets the dispatch.ListenerAggregate attach its Listeners
// through the InstrumentedDispatcher.
func (id *InstrumentedDispatcher) AttachAggregate(aggregate dispatch.ListenerAggregate) error {
	return dispatch.AttachAggregateTo(id, aggregate)
}

// Detach calls the wrapped dispatch.Dispatcher.Detach method.
func (id *InstrumentedDispatcher) Detach(uid dispatch.UID) error {
	return id.dispatcher.Detach(uid)
}

// Dispatch calls the wrapped dispatch.Dispatcher and records metrics and traces around it.
func (id *InstrumentedDispatcher) Dispatch(ctx context.Context, msg *message.Message) error {
	return id.DispatchAs(ctx, msg, id)
}

// DispatchAs works like Dispatch, but Listeners receive the provided
// dispatch.Bus instead of the InstrumentedDispatcher.
//
// Use it when the InstrumentedDispatcher is itself wrapped by another dispatch.Bus.
func (id *InstrumentedDispatcher) DispatchAs(
	ctx context.Context,
	msg *message.Message,
	bus dispatch.Bus,
) (err error) {
	if msg == nil {
		return id.dispatcher.DispatchAs(ctx, msg, bus)
	}

	attributes := []attribute.KeyValue{
		MessageNameAttribute.String(msg.Name()),
	}

	spanAttributes := append(attributes, //nolint:gocritic // Intended behavior.
		RecursionDepthAttribute.Int(id.dispatcher.RecursionDepth(msg.Name())),
	)

	ctx, span := id.tracer.Start(ctx, "messagebus.Dispatch", trace.WithAttributes(spanAttributes...))
	start := time.Now()

	defer func() {
		id.dispatchDuration.Record(ctx, time.Since(start).Milliseconds(), metric.WithAttributes(attributes...))
		id.dispatchCount.Add(ctx, 1, metric.WithAttributes(append(attributes, ErrorAttribute.Bool(err != nil))...))

		span.SetAttributes(
			MessageStoppedAttribute.Bool(msg.IsStopped()),
			MessageResponsesAttribute.Int(msg.Responses().Len()),
		)

		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}

		span.End()
	}()

	err = id.dispatcher.DispatchAs(ctx, msg, bus)

	return
}
