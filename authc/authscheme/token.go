package authscheme

import (
	"encoding/base64"
	"errors"
	"net/http"
	"net/url"
	"strings"
)

// AuthorizationHeader is the header name of the http and oauth2 security schemes.
const AuthorizationHeader = "Authorization"

var errNilRequestURL = errors.New("request URL is nil")

// TokenLocation contains the location of the credential of a security scheme in the request.
type TokenLocation struct {
	// Location where the credential is in.
	In AuthLocation `json:"in" yaml:"in"`
	// Name of the header, query or cookie parameter, for example, the Authorization header.
	Name string `json:"name" yaml:"name"`
	// The name of the HTTP Authentication scheme to be used in the Authorization header as defined in RFC7235.
	// Empty for api keys.
	Scheme HTTPAuthSchemeName `json:"scheme,omitempty" yaml:"scheme,omitempty"`
}

// FormatValue formats the raw credential with the authentication scheme prefix.
func (tl TokenLocation) FormatValue(value string) string {
	switch tl.Scheme {
	case BearerAuthScheme:
		return "Bearer " + value
	case BasicAuthScheme:
		return "Basic " + value
	default:
		return value
	}
}

// InjectRequest injects the formatted credential into the request. The request is modified in place.
func (tl TokenLocation) InjectRequest(req *http.Request, value string) error {
	value = tl.FormatValue(value)

	switch tl.In {
	case InHeader:
		req.Header.Set(tl.Name, value)
	case InQuery:
		if req.URL == nil {
			return errNilRequestURL
		}

		pair := url.QueryEscape(tl.Name) + "=" + url.QueryEscape(value)

		if req.URL.RawQuery == "" {
			req.URL.RawQuery = pair
		} else {
			req.URL.RawQuery += "&" + pair
		}
	case InCookie:
		SetCookie(req.Header, tl.Name, value)
	default:
		return tl.In.Validate()
	}

	return nil
}

// ContainsValue checks if the request carries the formatted credential at the location.
func (tl TokenLocation) ContainsValue(req *http.Request, value string) bool {
	expected := tl.FormatValue(value)

	switch tl.In {
	case InHeader:
		for _, header := range req.Header.Values(tl.Name) {
			if tl.Scheme == "" {
				if secureCompare(header, expected) {
					return true
				}

				continue
			}

			// the authentication scheme name is case-insensitive.
			scheme, credential, ok := strings.Cut(header, " ")
			if ok && strings.EqualFold(scheme, string(tl.Scheme)) &&
				secureCompare(strings.TrimLeft(credential, " "), value) {
				return true
			}
		}
	case InQuery:
		if req.URL == nil {
			return false
		}

		query, err := url.ParseQuery(req.URL.RawQuery)
		if err != nil {
			return false
		}

		for _, param := range query[tl.Name] {
			if secureCompare(param, expected) {
				return true
			}
		}
	case InCookie:
		for _, pair := range ParseCookiePairs(req.Header) {
			if pair.Name == tl.Name && pair.HasValue && secureCompare(pair.Value, expected) {
				return true
			}
		}
	}

	return false
}

// GetTokenLocation returns the location and the raw credential of the descriptor.
func GetTokenLocation(desc Descriptor) (TokenLocation, string, error) {
	switch scheme := desc.(type) {
	case *APIKey:
		return TokenLocation{
			In:   scheme.in,
			Name: scheme.name,
		}, scheme.key, nil
	case *HTTPBasic:
		return TokenLocation{
			In:     InHeader,
			Name:   AuthorizationHeader,
			Scheme: BasicAuthScheme,
		}, EncodeBasicCredential(scheme.username, scheme.password), nil
	case *HTTPBearer:
		return TokenLocation{
			In:     InHeader,
			Name:   AuthorizationHeader,
			Scheme: BearerAuthScheme,
		}, scheme.accessToken, nil
	case *OAuth2:
		return TokenLocation{
			In:     InHeader,
			Name:   AuthorizationHeader,
			Scheme: BearerAuthScheme,
		}, scheme.accessToken, nil
	default:
		return TokenLocation{}, "", NewInvalidDescriptorError(
			"",
			"type",
			errors.New("unsupported security scheme descriptor"),
		)
	}
}

// EncodeBasicCredential encodes the user name and password for the basic authentication, see RFC 7617.
func EncodeBasicCredential(username, password string) string {
	var sb strings.Builder

	sb.Grow(len(username) + len(password) + 1)
	sb.WriteString(username)
	sb.WriteByte(':')
	sb.WriteString(password)

	return base64.StdEncoding.EncodeToString([]byte(sb.String()))
}
