// Package apikey implements the configuration of the apiKey security scheme.
package apikey

import (
	"github.com/hasura/goenvconf"
	"github.com/relychan/oasecurity/authc/authscheme"
)

// APIKeyAuthConfig contains configurations for [apiKey authentication] according to the OpenAPI specification.
//
// [apiKey authentication]: https://swagger.io/docs/specification/authentication/api-keys/
type APIKeyAuthConfig struct {
	Type authscheme.SecuritySchemeType `json:"type" yaml:"type" jsonschema:"enum=apiKey"`
	// Name of the header, query or cookie parameter to be used.
	Name string `json:"name" yaml:"name"`
	// Location of the API key.
	In authscheme.AuthLocation `json:"in" yaml:"in" jsonschema:"enum=header,enum=query,enum=cookie"`
	// Value of the API key.
	Value goenvconf.EnvString `json:"value" yaml:"value"`
	// A description for security scheme.
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
}

var _ authscheme.SecuritySchemeDefinition = (*APIKeyAuthConfig)(nil)

// NewAPIKeyAuthConfig creates a new APIKeyAuthConfig instance.
func NewAPIKeyAuthConfig(
	name string,
	in authscheme.AuthLocation,
	value goenvconf.EnvString,
) *APIKeyAuthConfig {
	return &APIKeyAuthConfig{
		Type:  authscheme.APIKeyScheme,
		Name:  name,
		In:    in,
		Value: value,
	}
}

// Validate if the current instance is valid.
func (ap APIKeyAuthConfig) Validate(strict bool) error {
	authType := ap.GetType()

	if ap.Type != authType {
		return authscheme.NewUnmatchedSecuritySchemeError(authType, ap.Type)
	}

	if ap.Name == "" {
		return authscheme.NewRequiredSecurityFieldError(authType, "name")
	}

	err := ap.In.Validate()
	if err != nil {
		return authscheme.NewInvalidDescriptorError(authType, "in", err)
	}

	if !strict {
		return nil
	}

	if ap.Value.IsZero() {
		return authscheme.NewRequiredSecurityFieldError(authType, "value")
	}

	return nil
}

// GetType get the type of security scheme.
func (APIKeyAuthConfig) GetType() authscheme.SecuritySchemeType {
	return authscheme.APIKeyScheme
}
