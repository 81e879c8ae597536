package authscheme

import (
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"
)

var sensitiveHeaderRegex = regexp.MustCompile(`auth|key|secret|token|cookie`)

// RequestSnapshot is a read-only copy of the request for error reporting.
// Sensitive header values and query parameters are masked.
type RequestSnapshot struct {
	Method string      `json:"method"`
	URL    string      `json:"url"`
	Header http.Header `json:"header,omitempty"`
}

// NewRequestSnapshot creates a masked snapshot of the request.
func NewRequestSnapshot(req *http.Request) RequestSnapshot {
	if req == nil {
		return RequestSnapshot{}
	}

	result := RequestSnapshot{
		Method: req.Method,
		Header: NewRedactedHeaders(req.Header),
	}

	if req.URL != nil {
		result.URL = redactURL(req.URL)
	}

	return result
}

// IsSensitiveHeader checks if the header name may hold a credential.
func IsSensitiveHeader(name string) bool {
	return sensitiveHeaderRegex.MatchString(strings.ToLower(name))
}

// NewRedactedHeaders creates a new header map with sensitive values masked.
func NewRedactedHeaders(httpHeaders http.Header, allowedHeaders ...string) http.Header {
	result := http.Header{}

	if len(allowedHeaders) > 0 {
		for _, key := range allowedHeaders {
			value := httpHeaders.Get(key)

			if value == "" {
				continue
			}

			if IsSensitiveHeader(key) {
				result.Set(key, MaskString(value))
			} else {
				result.Set(key, value)
			}
		}

		return result
	}

	for key, headers := range httpHeaders {
		if len(headers) == 0 {
			continue
		}

		values := make([]string, len(headers))

		for i, header := range headers {
			if IsSensitiveHeader(key) {
				values[i] = MaskString(header)
			} else {
				values[i] = header
			}
		}

		result[key] = values
	}

	return result
}

// MaskString masks the string value. Short values are masked entirely,
// otherwise only the first characters are kept.
func MaskString(input string) string {
	switch inputLength := len(input); {
	case inputLength == 0:
		return ""
	case inputLength < 12:
		return "*******"
	default:
		return input[:4] + "*******(" + strconv.Itoa(inputLength) + ")"
	}
}

func redactURL(u *url.URL) string {
	redacted := *u
	redacted.User = nil

	if u.RawQuery == "" {
		return redacted.String()
	}

	query, err := url.ParseQuery(u.RawQuery)
	if err != nil {
		redacted.RawQuery = ""

		return redacted.String()
	}

	for key, values := range query {
		for i, value := range values {
			values[i] = MaskString(value)
		}

		query[key] = values
	}

	redacted.RawQuery = query.Encode()

	return redacted.String()
}
