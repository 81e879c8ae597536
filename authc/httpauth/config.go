package httpauth

import (
	"github.com/hasura/goenvconf"
	"github.com/relychan/oasecurity/authc/authscheme"
)

// HTTPAuthConfig contains configurations for http authentication.
// The credential is always sent in the Authorization header.
// If the scheme is [bearer], the authenticator follows OpenAPI 3 specification.
//
// [bearer]: https://swagger.io/docs/specification/authentication/bearer-authentication
type HTTPAuthConfig struct {
	Type authscheme.SecuritySchemeType `json:"type" yaml:"type" jsonschema:"enum=http"`
	// The name of the HTTP Authentication scheme to be used in the Authorization header as defined in RFC7235.
	// The value is case-insensitive, as defined in RFC7235.
	Scheme string `json:"scheme" yaml:"scheme" jsonschema:"enum=basic,enum=bearer,default=bearer"`
	// A hint to the client to identify how the bearer token is formatted, e.g. JWT.
	BearerFormat string `json:"bearerFormat,omitempty" yaml:"bearerFormat,omitempty"`
	// Value of the access token. Required by the bearer scheme.
	Value *goenvconf.EnvString `json:"value,omitempty" yaml:"value,omitempty"`
	// Username to authenticate. Required by the basic scheme.
	Username *goenvconf.EnvString `json:"username,omitempty" yaml:"username,omitempty"`
	// Password to authenticate. Required by the basic scheme.
	Password *goenvconf.EnvString `json:"password,omitempty" yaml:"password,omitempty"`
	// A description for security scheme.
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
}

var _ authscheme.SecuritySchemeDefinition = (*HTTPAuthConfig)(nil)

// NewHTTPBearerAuthConfig creates a new HTTPAuthConfig instance with the bearer scheme.
func NewHTTPBearerAuthConfig(value goenvconf.EnvString) *HTTPAuthConfig {
	return &HTTPAuthConfig{
		Type:   authscheme.HTTPAuthScheme,
		Scheme: string(authscheme.BearerAuthScheme),
		Value:  &value,
	}
}

// NewHTTPBasicAuthConfig creates a new HTTPAuthConfig instance with the basic scheme.
func NewHTTPBasicAuthConfig(username, password goenvconf.EnvString) *HTTPAuthConfig {
	return &HTTPAuthConfig{
		Type:     authscheme.HTTPAuthScheme,
		Scheme:   string(authscheme.BasicAuthScheme),
		Username: &username,
		Password: &password,
	}
}

// Validate if the current instance is valid.
func (ss *HTTPAuthConfig) Validate(strict bool) error {
	authType := ss.GetType()

	if ss.Type != authType {
		return authscheme.NewUnmatchedSecuritySchemeError(authType, ss.Type)
	}

	if ss.Scheme == "" {
		return authscheme.NewRequiredSecurityFieldError(authType, "scheme")
	}

	scheme, err := authscheme.ParseHTTPAuthSchemeName(ss.Scheme)
	if err != nil {
		return authscheme.NewInvalidDescriptorError(authType, "scheme", err)
	}

	if !strict {
		return nil
	}

	switch scheme {
	case authscheme.BasicAuthScheme:
		if isZeroEnv(ss.Username) {
			return authscheme.NewRequiredSecurityFieldError(authType, "username")
		}

		if isZeroEnv(ss.Password) {
			return authscheme.NewRequiredSecurityFieldError(authType, "password")
		}
	case authscheme.BearerAuthScheme:
		if isZeroEnv(ss.Value) {
			return authscheme.NewRequiredSecurityFieldError(authType, "value")
		}
	}

	return nil
}

// GetType get the type of security scheme.
func (HTTPAuthConfig) GetType() authscheme.SecuritySchemeType {
	return authscheme.HTTPAuthScheme
}

func isZeroEnv(value *goenvconf.EnvString) bool {
	return value == nil || value.IsZero()
}
