package authscheme

import (
	"errors"
	"net/http"
	"strings"

	"golang.org/x/net/http/httpguts"
	"golang.org/x/oauth2"
)

var (
	errInvalidHeaderName   = errors.New("not a valid header field name")
	errInvalidHeaderValue  = errors.New("not a valid header field value")
	errInvalidCookie       = errors.New("not a valid cookie name or value")
	errUsernameContainsSep = errors.New("must not contain a colon")
	errOAuth2FlowRequired  = errors.New("require at least 1 flow for oauth2 security")
	errNilToken            = errors.New("token is nil")
)

// Descriptor is the in-memory representation of one configured security scheme.
// The set of implementations is closed: [APIKey], [HTTPBasic], [HTTPBearer] and [OAuth2].
// Descriptors are immutable once constructed and safe for concurrent use.
type Descriptor interface {
	// GetType gets the type of security scheme.
	GetType() SecuritySchemeType

	descriptor()
}

// APIKey describes the [apiKey] security scheme.
//
// [apiKey]: https://swagger.io/docs/specification/authentication/api-keys/
type APIKey struct {
	name string
	in   AuthLocation
	key  string
}

var _ Descriptor = (*APIKey)(nil)

// NewAPIKey creates an API key descriptor that places the key in the query, a header or a cookie.
func NewAPIKey(name string, in AuthLocation, key string) (*APIKey, error) {
	if name == "" {
		return nil, NewRequiredSecurityFieldError(APIKeyScheme, "name")
	}

	if err := in.Validate(); err != nil {
		return nil, NewInvalidDescriptorError(APIKeyScheme, "in", err)
	}

	if key == "" {
		return nil, NewRequiredSecurityFieldError(APIKeyScheme, "key")
	}

	switch in {
	case InHeader:
		if !httpguts.ValidHeaderFieldName(name) {
			return nil, NewInvalidDescriptorError(APIKeyScheme, "name", errInvalidHeaderName)
		}

		if !httpguts.ValidHeaderFieldValue(key) {
			return nil, NewInvalidDescriptorError(APIKeyScheme, "key", errInvalidHeaderValue)
		}
	case InCookie:
		cookie := http.Cookie{Name: name, Value: key}
		if err := cookie.Valid(); err != nil {
			return nil, NewInvalidDescriptorError(APIKeyScheme, "name", errors.Join(errInvalidCookie, err))
		}

		// net/http quotes values with a space or a comma, and surrounding spaces don't survive parsing.
		if strings.ContainsAny(key, " ,") {
			return nil, NewInvalidDescriptorError(APIKeyScheme, "key", errInvalidCookie)
		}
	case InQuery:
	}

	return &APIKey{
		name: name,
		in:   in,
		key:  key,
	}, nil
}

// GetType gets the type of security scheme.
func (*APIKey) GetType() SecuritySchemeType {
	return APIKeyScheme
}

// Name returns the name of the header, query or cookie parameter.
func (ak *APIKey) Name() string {
	return ak.name
}

// In returns the location of the API key.
func (ak *APIKey) In() AuthLocation {
	return ak.in
}

// Key returns the API key value.
func (ak *APIKey) Key() string {
	return ak.key
}

func (*APIKey) descriptor() {}

// HTTPBasic describes the http security scheme with the [basic] authentication.
//
// [basic]: https://swagger.io/docs/specification/authentication/basic-authentication
type HTTPBasic struct {
	username string
	password string
}

var _ Descriptor = (*HTTPBasic)(nil)

// NewHTTPBasic creates a basic authentication descriptor.
func NewHTTPBasic(username, password string) (*HTTPBasic, error) {
	if username == "" {
		return nil, NewRequiredSecurityFieldError(HTTPAuthScheme, "username")
	}

	// RFC 7617: the user-id must not contain a colon.
	if strings.Contains(username, ":") {
		return nil, NewInvalidDescriptorError(HTTPAuthScheme, "username", errUsernameContainsSep)
	}

	if password == "" {
		return nil, NewRequiredSecurityFieldError(HTTPAuthScheme, "password")
	}

	return &HTTPBasic{
		username: username,
		password: password,
	}, nil
}

// GetType gets the type of security scheme.
func (*HTTPBasic) GetType() SecuritySchemeType {
	return HTTPAuthScheme
}

// Scheme returns the HTTP authentication scheme name.
func (*HTTPBasic) Scheme() HTTPAuthSchemeName {
	return BasicAuthScheme
}

// Username returns the user name.
func (hb *HTTPBasic) Username() string {
	return hb.username
}

// Password returns the password.
func (hb *HTTPBasic) Password() string {
	return hb.password
}

func (*HTTPBasic) descriptor() {}

// HTTPBearer describes the http security scheme with the [bearer] authentication.
//
// [bearer]: https://swagger.io/docs/specification/authentication/bearer-authentication
type HTTPBearer struct {
	accessToken string
	format      string
}

var _ Descriptor = (*HTTPBearer)(nil)

// NewHTTPBearer creates a bearer authentication descriptor.
// The format is a hint to the client to identify how the bearer token is formatted, e.g. JWT.
// It is never validated nor sent.
func NewHTTPBearer(accessToken string, format string) (*HTTPBearer, error) {
	if err := validateAccessToken(HTTPAuthScheme, accessToken); err != nil {
		return nil, err
	}

	return &HTTPBearer{
		accessToken: accessToken,
		format:      format,
	}, nil
}

// GetType gets the type of security scheme.
func (*HTTPBearer) GetType() SecuritySchemeType {
	return HTTPAuthScheme
}

// Scheme returns the HTTP authentication scheme name.
func (*HTTPBearer) Scheme() HTTPAuthSchemeName {
	return BearerAuthScheme
}

// AccessToken returns the bearer token.
func (hb *HTTPBearer) AccessToken() string {
	return hb.accessToken
}

// Format returns the bearer format hint.
func (hb *HTTPBearer) Format() string {
	return hb.format
}

// WithAccessToken returns a copy of the descriptor with another access token.
func (hb *HTTPBearer) WithAccessToken(accessToken string) (*HTTPBearer, error) {
	return NewHTTPBearer(accessToken, hb.format)
}

func (*HTTPBearer) descriptor() {}

// OAuth2 describes the [oauth2] security scheme. At the request level it behaves like
// the bearer authentication; the flows are descriptive metadata only.
//
// [oauth2]: https://swagger.io/docs/specification/authentication/oauth2
type OAuth2 struct {
	flows       OAuth2Flows
	accessToken string
}

var _ Descriptor = (*OAuth2)(nil)

// NewOAuth2 creates an OAuth2 descriptor with an already obtained access token.
func NewOAuth2(flows OAuth2Flows, accessToken string) (*OAuth2, error) {
	if flows.IsZero() {
		return nil, NewInvalidDescriptorError(OAuth2Scheme, "flows", errOAuth2FlowRequired)
	}

	if err := validateAccessToken(OAuth2Scheme, accessToken); err != nil {
		return nil, err
	}

	return &OAuth2{
		flows:       flows,
		accessToken: accessToken,
	}, nil
}

// NewOAuth2FromToken creates an OAuth2 descriptor from a token obtained by an OAuth2 flow.
func NewOAuth2FromToken(flows OAuth2Flows, token *oauth2.Token) (*OAuth2, error) {
	if token == nil {
		return nil, NewInvalidDescriptorError(OAuth2Scheme, "accessToken", errNilToken)
	}

	return NewOAuth2(flows, token.AccessToken)
}

// GetType gets the type of security scheme.
func (*OAuth2) GetType() SecuritySchemeType {
	return OAuth2Scheme
}

// Scheme returns the HTTP authentication scheme name used to send the token.
func (*OAuth2) Scheme() HTTPAuthSchemeName {
	return BearerAuthScheme
}

// Flows returns the supported OAuth2 flows.
func (o *OAuth2) Flows() OAuth2Flows {
	return o.flows
}

// AccessToken returns the access token.
func (o *OAuth2) AccessToken() string {
	return o.accessToken
}

// WithAccessToken returns a copy of the descriptor with another access token.
func (o *OAuth2) WithAccessToken(accessToken string) (*OAuth2, error) {
	return NewOAuth2(o.flows, accessToken)
}

func (*OAuth2) descriptor() {}

func validateAccessToken(scheme SecuritySchemeType, accessToken string) error {
	if accessToken == "" {
		return NewRequiredSecurityFieldError(scheme, "accessToken")
	}

	if !httpguts.ValidHeaderFieldValue(accessToken) {
		return NewInvalidDescriptorError(scheme, "accessToken", errInvalidHeaderValue)
	}

	return nil
}
