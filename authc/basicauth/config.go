// Package basicauth implements a shorthand configuration of the http security scheme with the basic authentication.
package basicauth

import (
	"github.com/hasura/goenvconf"
	"github.com/relychan/oasecurity/authc/authscheme"
)

// BasicAuthType is the discriminator of the basic authentication config.
const BasicAuthType = string(authscheme.BasicAuthScheme)

// BasicAuthConfig contains configurations for the [basic] authentication.
//
// [basic]: https://swagger.io/docs/specification/authentication/basic-authentication
type BasicAuthConfig struct {
	Type string `json:"type" jsonschema:"enum=basic" yaml:"type"`
	// Username to authenticate.
	Username goenvconf.EnvString `json:"username" yaml:"username"`
	// Password to authenticate.
	Password goenvconf.EnvString `json:"password" yaml:"password"`
	// A description for security scheme.
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
}

var _ authscheme.SecuritySchemeDefinition = (*BasicAuthConfig)(nil)

// NewBasicAuthConfig creates a new BasicAuthConfig instance.
func NewBasicAuthConfig(username, password goenvconf.EnvString) *BasicAuthConfig {
	return &BasicAuthConfig{
		Type:     BasicAuthType,
		Username: username,
		Password: password,
	}
}

// Validate if the current instance is valid.
func (ss BasicAuthConfig) Validate(strict bool) error {
	authType := ss.GetType()

	if ss.Type != BasicAuthType {
		return authscheme.NewUnmatchedSecuritySchemeError(
			authscheme.SecuritySchemeType(BasicAuthType),
			authscheme.SecuritySchemeType(ss.Type),
		)
	}

	if !strict {
		return nil
	}

	if ss.Username.IsZero() {
		return authscheme.NewRequiredSecurityFieldError(authType, "username")
	}

	if ss.Password.IsZero() {
		return authscheme.NewRequiredSecurityFieldError(authType, "password")
	}

	return nil
}

// GetType get the type of security scheme. The basic authentication is an http security scheme.
func (BasicAuthConfig) GetType() authscheme.SecuritySchemeType {
	return authscheme.HTTPAuthScheme
}
