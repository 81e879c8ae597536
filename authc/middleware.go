// Package authc wires the security scheme descriptors into the request pipeline of HTTP clients.
package authc

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/relychan/oasecurity/authc/authscheme"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

const (
	interceptSpanName        = "security.intercept"
	schemeApplicationsMetric = "oasecurity.scheme.applications"
	operationIDAttributeKey  = "oasecurity.operation_id"
	schemeTypeAttributeKey   = "oasecurity.scheme_type"
	outcomeAttributeKey      = "oasecurity.outcome"
	outcomeApplied           = "applied"
	outcomeSkipped           = "skipped"
	outcomeFailed            = "failed"
	noSchemeAttributeValue   = "none"
)

// Next forwards the request to the next stage of the pipeline.
type Next func(req *http.Request, baseURL *url.URL) (*http.Response, error)

// SecurityMiddleware attaches the credential of the resolved security scheme to outgoing requests.
// It never retries and never inspects responses.
type SecurityMiddleware struct {
	resolver     *Resolver
	logger       *slog.Logger
	tracer       trace.Tracer
	applyCounter metric.Int64Counter
}

type middlewareOptions struct {
	Logger *slog.Logger
	Tracer trace.Tracer
	Meter  metric.Meter
}

// MiddlewareOption abstracts a function to modify the middleware options.
type MiddlewareOption func(*middlewareOptions)

// WithLogger create an option to set the logger.
func WithLogger(logger *slog.Logger) MiddlewareOption {
	return func(mo *middlewareOptions) {
		if logger != nil {
			mo.Logger = logger
		}
	}
}

// WithTracer create an option to set the tracer.
func WithTracer(tracer trace.Tracer) MiddlewareOption {
	return func(mo *middlewareOptions) {
		mo.Tracer = tracer
	}
}

// WithMeter create an option to set the meter for metrics.
func WithMeter(meter metric.Meter) MiddlewareOption {
	return func(mo *middlewareOptions) {
		mo.Meter = meter
	}
}

// NewSecurityMiddleware creates a security middleware with the resolver.
func NewSecurityMiddleware(resolver *Resolver, options ...MiddlewareOption) (*SecurityMiddleware, error) {
	opts := &middlewareOptions{
		Logger: slog.Default(),
	}

	for _, option := range options {
		option(opts)
	}

	if resolver == nil {
		resolver = NewResolver()
	}

	mw := &SecurityMiddleware{
		resolver: resolver,
		logger:   opts.Logger,
		tracer:   opts.Tracer,
	}

	if opts.Meter != nil {
		counter, err := opts.Meter.Int64Counter(
			schemeApplicationsMetric,
			metric.WithDescription("The number of outgoing requests processed by the security middleware."),
			metric.WithUnit("{request}"),
		)
		if err != nil {
			return nil, err
		}

		mw.applyCounter = counter
	}

	return mw, nil
}

// Resolver returns the resolver of the middleware.
func (sm *SecurityMiddleware) Resolver() *Resolver {
	return sm.resolver
}

// Intercept resolves the security scheme of the operation, applies it to a copy of the request
// and forwards the result to next. next is called exactly once unless applying fails.
// The original request is forwarded when there is no security scheme.
func (sm *SecurityMiddleware) Intercept(
	req *http.Request,
	baseURL *url.URL,
	operationID string,
	next Next,
) (*http.Response, error) {
	ctx := req.Context()
	desc, ok := sm.resolver.Resolve(operationID)

	schemeType := noSchemeAttributeValue
	if ok {
		schemeType = string(desc.GetType())
	}

	var span trace.Span

	if sm.tracer != nil {
		ctx, span = sm.tracer.Start(
			ctx,
			interceptSpanName,
			trace.WithSpanKind(trace.SpanKindInternal),
			trace.WithAttributes(
				attribute.String(operationIDAttributeKey, operationID),
				attribute.String(schemeTypeAttributeKey, schemeType),
			),
		)
	}

	if !ok {
		sm.record(ctx, schemeType, outcomeSkipped)
		endSpan(span, nil)

		return next(req, baseURL)
	}

	result, err := authscheme.Apply(desc, req, operationID)
	if err != nil {
		sm.logger.LogAttrs(
			ctx,
			slog.LevelWarn,
			"failed to apply the security scheme",
			slog.String("operation_id", operationID),
			slog.String("scheme_type", schemeType),
			slog.String("error", err.Error()),
		)
		sm.record(ctx, schemeType, outcomeFailed)
		endSpan(span, err)

		return nil, err
	}

	if sm.logger.Enabled(ctx, slog.LevelDebug) {
		sm.logger.LogAttrs(
			ctx,
			slog.LevelDebug,
			"applied the security scheme",
			slog.String("operation_id", operationID),
			slog.String("scheme_type", schemeType),
		)
	}

	sm.record(ctx, schemeType, outcomeApplied)
	endSpan(span, nil)

	return next(result, baseURL)
}

// Validate checks if the request carries the credential of the security scheme of the operation.
// Requests of operations without security scheme are always valid.
func (sm *SecurityMiddleware) Validate(req *http.Request, operationID string) error {
	desc, ok := sm.resolver.Resolve(operationID)
	if !ok {
		return nil
	}

	return authscheme.Validate(desc, req, operationID)
}

func (sm *SecurityMiddleware) record(ctx context.Context, schemeType string, outcome string) {
	if sm.applyCounter == nil {
		return
	}

	sm.applyCounter.Add(
		ctx,
		1,
		metric.WithAttributes(
			attribute.String(schemeTypeAttributeKey, schemeType),
			attribute.String(outcomeAttributeKey, outcome),
		),
	)
}

func endSpan(span trace.Span, err error) {
	if span == nil {
		return
	}

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetStatus(codes.Ok, "")
	}

	span.End()
}
