// Package openidscheme implements the configuration of the openIdConnect security scheme.
// The scheme can be declared but the discovery flow isn't supported, so it can't be applied to requests.
package openidscheme

import (
	"errors"
	"fmt"

	"github.com/relychan/goutils"
	"github.com/relychan/oasecurity/authc/authscheme"
)

// ErrOpenIDConnectURLRequired is the error when the discovery URL is empty.
var ErrOpenIDConnectURLRequired = errors.New("openIdConnectUrl is required for oidc security")

// OpenIDConnectConfig contains configurations for [OpenID Connect] API specification
//
// [OpenID Connect]: https://swagger.io/docs/specification/authentication/openid-connect-discovery
type OpenIDConnectConfig struct {
	Type authscheme.SecuritySchemeType `json:"type" yaml:"type" jsonschema:"enum=openIdConnect"`
	// Well-known URL to discover the OpenID-Connect-Discovery provider metadata.
	OpenIDConnectURL string `json:"openIdConnectUrl" yaml:"openIdConnectUrl"`
	// A description for security scheme.
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
}

var _ authscheme.SecuritySchemeDefinition = (*OpenIDConnectConfig)(nil)

// NewOpenIDConnectConfig creates a new OpenIDConnectConfig instance.
func NewOpenIDConnectConfig(oidcURL string) *OpenIDConnectConfig {
	return &OpenIDConnectConfig{
		Type:             authscheme.OpenIDConnectScheme,
		OpenIDConnectURL: oidcURL,
	}
}

// GetType get the type of security scheme.
func (OpenIDConnectConfig) GetType() authscheme.SecuritySchemeType {
	return authscheme.OpenIDConnectScheme
}

// Validate if the current instance is valid.
func (ss OpenIDConnectConfig) Validate(_ bool) error {
	authType := ss.GetType()

	if ss.Type != authType {
		return authscheme.NewUnmatchedSecuritySchemeError(authType, ss.Type)
	}

	if ss.OpenIDConnectURL == "" {
		return ErrOpenIDConnectURLRequired
	}

	if _, err := goutils.ParseRelativeOrHTTPURL(ss.OpenIDConnectURL); err != nil {
		return fmt.Errorf("openIdConnectUrl: %w", err)
	}

	return nil
}

// ToDescriptor always fails. OpenID Connect discovery is not supported.
func (ss OpenIDConnectConfig) ToDescriptor() (authscheme.Descriptor, error) {
	err := ss.Validate(true)
	if err != nil {
		return nil, err
	}

	return nil, fmt.Errorf("%w: %s", authscheme.ErrUnsupportedSecurityScheme, ss.GetType())
}
