package authc

import (
	"net/http"
	"net/url"
)

// RoundTripper adapts the security middleware to [http.RoundTripper].
// The operation id is read from the request context, see [WithOperationID].
type RoundTripper struct {
	middleware *SecurityMiddleware
	base       http.RoundTripper
}

var _ http.RoundTripper = (*RoundTripper)(nil)

// NewRoundTripper creates a round tripper which applies security schemes before calling the base transport.
// If base is nil, [http.DefaultTransport] is used.
func NewRoundTripper(middleware *SecurityMiddleware, base http.RoundTripper) *RoundTripper {
	if base == nil {
		base = http.DefaultTransport
	}

	return &RoundTripper{
		middleware: middleware,
		base:       base,
	}
}

// Base returns the underlying transport.
func (rt *RoundTripper) Base() http.RoundTripper {
	return rt.base
}

// RoundTrip implements http.RoundTripper.
func (rt *RoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	var baseURL *url.URL

	if req.URL != nil {
		baseURL = &url.URL{
			Scheme: req.URL.Scheme,
			Host:   req.URL.Host,
		}
	}

	forwarded := false

	resp, err := rt.middleware.Intercept(
		req,
		baseURL,
		OperationIDFromContext(req.Context()),
		func(r *http.Request, _ *url.URL) (*http.Response, error) {
			forwarded = true

			return rt.base.RoundTrip(r)
		},
	)

	// the base transport owns the body once the request is forwarded.
	if err != nil && !forwarded && req.Body != nil {
		_ = req.Body.Close()
	}

	return resp, err
}

// CloseIdleConnections closes idle connections of the base transport if it supports that.
func (rt *RoundTripper) CloseIdleConnections() {
	type closeIdler interface {
		CloseIdleConnections()
	}

	if tr, ok := rt.base.(closeIdler); ok {
		tr.CloseIdleConnections()
	}
}
