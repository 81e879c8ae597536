package oasecurity

import (
	"errors"
	"fmt"
	"net"
	"net/http"
	"runtime"
	"time"

	"github.com/prometheus/common/model"
	"github.com/relychan/gocompress"
	"github.com/relychan/oasecurity/authc"
	"resty.dev/v3"
)

var errNegativeTimeout = errors.New("timeout must not be negative")

// ClientConfig contains configurations to create an HTTP client
// which applies OpenAPI security schemes to outgoing requests.
type ClientConfig struct {
	// Default timeout of every request. Zero means no timeout.
	Timeout *model.Duration `json:"timeout,omitempty" jsonschema:"nullable,type=string,pattern=^((([0-9]+h)?([0-9]+m)?([0-9]+s))|(([0-9]+h)?([0-9]+m))|([0-9]+h))$" mapstructure:"timeout" yaml:"timeout,omitempty"`
	// Options of the underlying http.Transport.
	Transport *TransportConfig `json:"transport,omitempty" mapstructure:"transport" yaml:"transport,omitempty"`
	// Retry policy of failed requests.
	Retry *RetryConfig `json:"retry,omitempty" mapstructure:"retry" yaml:"retry,omitempty"`
	// Security schemes applied per operation.
	Security *authc.SecurityConfig `json:"security,omitempty" mapstructure:"security" yaml:"security,omitempty"`
}

// Validate checks if the configuration is valid.
func (c ClientConfig) Validate(strict bool) error {
	if c.Timeout != nil && *c.Timeout < 0 {
		return fmt.Errorf("timeout: %w", errNegativeTimeout)
	}

	if c.Retry != nil && c.Retry.Count < 0 {
		return errNegativeRetryCount
	}

	if c.Security == nil {
		return nil
	}

	err := c.Security.Validate(strict)
	if err != nil {
		return fmt.Errorf("security: %w", err)
	}

	return nil
}

// ToTransport creates the base http transport from configurations.
// Security schemes are applied on top of it, see [NewClientFromConfig].
func (c ClientConfig) ToTransport() *http.Transport {
	if c.Transport != nil {
		return c.Transport.ToTransport()
	}

	transport, ok := http.DefaultTransport.(*http.Transport)
	if !ok {
		return TransportConfig{}.ToTransport()
	}

	return transport.Clone()
}

// DialerConfig contains options of the net.Dialer.
type DialerConfig struct {
	// Maximum time a dial waits for a connect to complete. Defaults to 30s.
	Timeout *model.Duration `json:"timeout,omitempty" jsonschema:"nullable,type=string,pattern=^((([0-9]+h)?([0-9]+m)?([0-9]+s))|(([0-9]+h)?([0-9]+m))|([0-9]+h))$" mapstructure:"timeout" yaml:"timeout"`
	// Enables TCP keep-alive probes. Defaults to true.
	KeepAliveEnabled *bool `json:"keep_alive_enabled,omitempty" mapstructure:"keep_alive_enabled" yaml:"keep_alive_enabled"`
	// Time between keep-alive probes. Defaults to 30s.
	KeepAliveInterval *model.Duration `json:"keep_alive_interval,omitempty" jsonschema:"nullable,type=string,pattern=^((([0-9]+h)?([0-9]+m)?([0-9]+s))|(([0-9]+h)?([0-9]+m))|([0-9]+h))$" mapstructure:"keep_alive_interval" yaml:"keep_alive_interval"`
}

// TransportConfig stores the http.Transport options of the client.
type TransportConfig struct {
	// Options of the dialer.
	Dialer *DialerConfig `json:"dialer,omitempty" mapstructure:"dialer" yaml:"dialer"`
	// Maximum time an idle connection remains open. Defaults to 90s.
	IdleConnTimeout *model.Duration `json:"idle_conn_timeout,omitempty" jsonschema:"nullable,type=string,pattern=^((([0-9]+h)?([0-9]+m)?([0-9]+s))|(([0-9]+h)?([0-9]+m))|([0-9]+h))$" mapstructure:"idle_conn_timeout" yaml:"idle_conn_timeout"`
	// Time to wait for the response headers after the request is written. Defaults to 1m.
	ResponseHeaderTimeout *model.Duration `json:"response_header_timeout,omitempty" jsonschema:"nullable,type=string,pattern=^((([0-9]+h)?([0-9]+m)?([0-9]+s))|(([0-9]+h)?([0-9]+m))|([0-9]+h))$" mapstructure:"response_header_timeout" yaml:"response_header_timeout"`
	// Maximum time to wait for a TLS handshake. Defaults to 10s.
	TLSHandshakeTimeout *model.Duration `json:"tls_handshake_timeout,omitempty" jsonschema:"nullable,type=string,pattern=^((([0-9]+h)?([0-9]+m)?([0-9]+s))|(([0-9]+h)?([0-9]+m))|([0-9]+h))$" mapstructure:"tls_handshake_timeout" yaml:"tls_handshake_timeout"`
	// Maximum idle connections across all hosts. Defaults to 100.
	MaxIdleConns *int `json:"max_idle_conns,omitempty" jsonschema:"nullable,min=0" mapstructure:"max_idle_conns" yaml:"max_idle_conns"`
	// Maximum idle connections per host. Defaults to GOMAXPROCS + 1.
	MaxIdleConnsPerHost *int `json:"max_idle_conns_per_host,omitempty" jsonschema:"nullable,min=0" mapstructure:"max_idle_conns_per_host" yaml:"max_idle_conns_per_host"`
	// Limits the total connections per host. Zero means no limit.
	MaxConnsPerHost *int `json:"max_conns_per_host,omitempty" jsonschema:"nullable,min=0" mapstructure:"max_conns_per_host" yaml:"max_conns_per_host"`
	// Disables HTTP keep-alives.
	DisableKeepAlives bool `json:"disable_keep_alives,omitempty" mapstructure:"disable_keep_alives" yaml:"disable_keep_alives"`
}

// ToTransport creates an http transport from the configuration.
func (tc TransportConfig) ToTransport() *http.Transport {
	transport := &http.Transport{
		Proxy:                 http.ProxyFromEnvironment,
		DialContext:           tc.toDialer().DialContext,
		MaxIdleConns:          100,
		MaxIdleConnsPerHost:   runtime.GOMAXPROCS(0) + 1,
		ResponseHeaderTimeout: time.Minute,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   10 * time.Second,
		ExpectContinueTimeout: time.Second,
		ForceAttemptHTTP2:     true,
		DisableKeepAlives:     tc.DisableKeepAlives,
		DisableCompression:    true, // resty decompresses, see addContentDecompresser
	}

	if tc.IdleConnTimeout != nil {
		transport.IdleConnTimeout = time.Duration(*tc.IdleConnTimeout)
	}

	if tc.ResponseHeaderTimeout != nil {
		transport.ResponseHeaderTimeout = time.Duration(*tc.ResponseHeaderTimeout)
	}

	if tc.TLSHandshakeTimeout != nil {
		transport.TLSHandshakeTimeout = time.Duration(*tc.TLSHandshakeTimeout)
	}

	if tc.MaxIdleConns != nil {
		transport.MaxIdleConns = *tc.MaxIdleConns
	}

	if tc.MaxIdleConnsPerHost != nil && *tc.MaxIdleConnsPerHost > 0 {
		transport.MaxIdleConnsPerHost = *tc.MaxIdleConnsPerHost
	}

	if tc.MaxConnsPerHost != nil {
		transport.MaxConnsPerHost = *tc.MaxConnsPerHost
	}

	return transport
}

func (tc TransportConfig) toDialer() *net.Dialer {
	dialer := &net.Dialer{
		Timeout: 30 * time.Second,
		KeepAliveConfig: net.KeepAliveConfig{
			Enable:   true,
			Interval: 30 * time.Second,
		},
	}

	if tc.Dialer == nil {
		return dialer
	}

	if tc.Dialer.Timeout != nil {
		dialer.Timeout = time.Duration(*tc.Dialer.Timeout)
	}

	if tc.Dialer.KeepAliveEnabled != nil {
		dialer.KeepAliveConfig.Enable = *tc.Dialer.KeepAliveEnabled
	}

	if tc.Dialer.KeepAliveInterval != nil {
		dialer.KeepAliveConfig.Interval = time.Duration(*tc.Dialer.KeepAliveInterval)
	}

	return dialer
}

func addContentDecompresser(client *resty.Client) *resty.Client {
	gzipc := gocompress.GzipCompressor{}
	deflatec := gocompress.DeflateCompressor{}
	zstdc := gocompress.ZstdCompressor{}

	return client.AddContentDecompresser(string(gocompress.EncodingGzip), gzipc.Decompress).
		AddContentDecompresser(string(gocompress.EncodingDeflate), deflatec.Decompress).
		AddContentDecompresser(string(gocompress.EncodingZstd), zstdc.Decompress)
}
