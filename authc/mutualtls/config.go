// Package mutualtls implements the configuration of the mutualTLS security scheme.
// The scheme can be declared but the TLS negotiation belongs to the transport, so it can't be applied to requests.
package mutualtls

import (
	"fmt"

	"github.com/relychan/oasecurity/authc/authscheme"
)

// MutualTLSAuthConfig represents a mutualTLS authentication configuration.
type MutualTLSAuthConfig struct {
	Type authscheme.SecuritySchemeType `json:"type" yaml:"type" jsonschema:"enum=mutualTLS"`
	// A description for security scheme.
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
}

var _ authscheme.SecuritySchemeDefinition = (*MutualTLSAuthConfig)(nil)

// NewMutualTLSAuthConfig creates a new MutualTLSAuthConfig instance.
func NewMutualTLSAuthConfig() *MutualTLSAuthConfig {
	return &MutualTLSAuthConfig{
		Type: authscheme.MutualTLSScheme,
	}
}

// GetType get the type of security scheme.
func (MutualTLSAuthConfig) GetType() authscheme.SecuritySchemeType {
	return authscheme.MutualTLSScheme
}

// Validate if the current instance is valid.
func (ss MutualTLSAuthConfig) Validate(_ bool) error {
	authType := ss.GetType()

	if ss.Type != authType {
		return authscheme.NewUnmatchedSecuritySchemeError(authType, ss.Type)
	}

	return nil
}

// ToDescriptor always fails. Client certificates are configured on the transport.
func (ss MutualTLSAuthConfig) ToDescriptor() (authscheme.Descriptor, error) {
	err := ss.Validate(true)
	if err != nil {
		return nil, err
	}

	return nil, fmt.Errorf("%w: %s", authscheme.ErrUnsupportedSecurityScheme, ss.GetType())
}
