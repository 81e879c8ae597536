// Package oasecurity creates HTTP clients which apply OpenAPI security schemes
// to outgoing requests of each operation.
package oasecurity

import (
	"context"
	"log/slog"
	"time"

	"github.com/relychan/oasecurity/authc"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"resty.dev/v3"
)

// NewClientFromConfig creates a resty client with configuration.
// The security middleware wraps the transport, so schemes are applied
// to the final request of every attempt.
func NewClientFromConfig(config ClientConfig, options ...Option) (*resty.Client, error) {
	opts := &clientOptions{
		Logger: slog.Default(),
	}

	for _, option := range options {
		option(opts)
	}

	resolver := opts.Resolver
	if resolver == nil {
		var err error

		resolver, err = config.Security.NewResolver()
		if err != nil {
			return nil, err
		}
	}

	middlewareOptions := []authc.MiddlewareOption{authc.WithLogger(opts.Logger)}

	if opts.Tracer != nil {
		middlewareOptions = append(middlewareOptions, authc.WithTracer(opts.Tracer))
	}

	if opts.Meter != nil {
		middlewareOptions = append(middlewareOptions, authc.WithMeter(opts.Meter))
	}

	middleware, err := authc.NewSecurityMiddleware(resolver, middlewareOptions...)
	if err != nil {
		return nil, err
	}

	isDebug := opts.Logger.Enabled(context.TODO(), slog.LevelDebug)

	client := resty.New().
		SetTransport(authc.NewRoundTripper(middleware, config.ToTransport())).
		SetDebug(isDebug).
		SetDebugLogFormatter(nil).
		OnDebugLog(createDebugLogCallback(opts.Logger)).
		SetLogger(&slogWrapper{Logger: opts.Logger})

	err = addTelemetryMiddlewares(client, opts)
	if err != nil {
		return nil, err
	}

	if !isDebug {
		client = client.AddResponseMiddleware(createResponseLoggingMiddleware(opts.Logger))
	}

	if config.Timeout != nil && *config.Timeout > 0 {
		client = client.SetTimeout(time.Duration(*config.Timeout))
	}

	client = setRetryConfig(client, config.Retry)

	return addContentDecompresser(client), nil
}

// SetOperationID attaches the OpenAPI operation id to the request,
// so the client applies the security scheme of that operation.
func SetOperationID(req *resty.Request, operationID string) *resty.Request {
	return req.SetContext(authc.WithOperationID(req.Context(), operationID))
}

type clientOptions struct {
	Logger   *slog.Logger
	Tracer   trace.Tracer
	Meter    metric.Meter
	Resolver *authc.Resolver
}

// Option abstracts a function to modify client options.
type Option func(*clientOptions)

// WithLogger create an option to set the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(co *clientOptions) {
		if logger != nil {
			co.Logger = logger
		}
	}
}

// WithTracer create an option to set the tracer.
func WithTracer(tracer trace.Tracer) Option {
	return func(co *clientOptions) {
		co.Tracer = tracer
	}
}

// WithMeter create an option to set the meter for metrics.
func WithMeter(meter metric.Meter) Option {
	return func(co *clientOptions) {
		co.Meter = meter
	}
}

// WithResolver sets the descriptor resolver.
// It replaces the resolver built from the security configuration.
func WithResolver(resolver *authc.Resolver) Option {
	return func(co *clientOptions) {
		co.Resolver = resolver
	}
}
