package authc

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/relychan/oasecurity/authc/apikey"
	"github.com/relychan/oasecurity/authc/authscheme"
	"github.com/relychan/oasecurity/authc/basicauth"
	"github.com/relychan/oasecurity/authc/httpauth"
	"github.com/relychan/oasecurity/authc/mutualtls"
	"github.com/relychan/oasecurity/authc/oauth2scheme"
	"github.com/relychan/oasecurity/authc/openidscheme"
	"go.yaml.in/yaml/v4"
)

var (
	errSecuritySchemeDefinitionRequired = errors.New("security scheme definition is required")
	errEmptyOperationID                 = errors.New("operation id must not be empty")
)

// SecuritySchemeConfig contains the configuration of a security scheme.
// The schema follows [OpenAPI 3] specification.
//
// [OpenAPI 3]: https://swagger.io/docs/specification/authentication
type SecuritySchemeConfig struct {
	authscheme.SecuritySchemeDefinition
}

type rawSecuritySchemeConfig struct {
	Type string `json:"type" yaml:"type"`
}

// UnmarshalJSON implements json.Unmarshaler.
func (j *SecuritySchemeConfig) UnmarshalJSON(b []byte) error {
	var rawScheme rawSecuritySchemeConfig

	err := json.Unmarshal(b, &rawScheme)
	if err != nil {
		return err
	}

	if rawScheme.Type == basicauth.BasicAuthType {
		var config basicauth.BasicAuthConfig

		err := json.Unmarshal(b, &config)
		if err != nil {
			return err
		}

		j.SecuritySchemeDefinition = &config

		return nil
	}

	schemeType, err := authscheme.ParseSecuritySchemeType(rawScheme.Type)
	if err != nil {
		return err
	}

	switch schemeType {
	case authscheme.APIKeyScheme:
		var config apikey.APIKeyAuthConfig

		err := json.Unmarshal(b, &config)
		if err != nil {
			return err
		}

		j.SecuritySchemeDefinition = &config
	case authscheme.HTTPAuthScheme:
		var config httpauth.HTTPAuthConfig

		err := json.Unmarshal(b, &config)
		if err != nil {
			return err
		}

		j.SecuritySchemeDefinition = &config
	case authscheme.OAuth2Scheme:
		var config oauth2scheme.OAuth2Config

		err := json.Unmarshal(b, &config)
		if err != nil {
			return err
		}

		j.SecuritySchemeDefinition = &config
	case authscheme.OpenIDConnectScheme:
		var config openidscheme.OpenIDConnectConfig

		err := json.Unmarshal(b, &config)
		if err != nil {
			return err
		}

		j.SecuritySchemeDefinition = &config
	case authscheme.MutualTLSScheme:
		var config mutualtls.MutualTLSAuthConfig

		err := json.Unmarshal(b, &config)
		if err != nil {
			return err
		}

		j.SecuritySchemeDefinition = &config
	default:
		return fmt.Errorf("%w: %s", authscheme.ErrUnsupportedSecurityScheme, rawScheme.Type)
	}

	return nil
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (j *SecuritySchemeConfig) UnmarshalYAML(value *yaml.Node) error {
	var raw map[string]any

	err := value.Decode(&raw)
	if err != nil {
		return err
	}

	b, err := json.Marshal(raw)
	if err != nil {
		return err
	}

	return j.UnmarshalJSON(b)
}

// MarshalJSON implements json.Marshaler.
func (j SecuritySchemeConfig) MarshalJSON() ([]byte, error) {
	return json.Marshal(j.SecuritySchemeDefinition)
}

// Validate if the current instance is valid.
func (j *SecuritySchemeConfig) Validate(strict bool) error {
	if j.SecuritySchemeDefinition == nil {
		return errSecuritySchemeDefinitionRequired
	}

	return j.SecuritySchemeDefinition.Validate(strict)
}

// IsZero if the current instance is empty.
func (j *SecuritySchemeConfig) IsZero() bool {
	return j.SecuritySchemeDefinition == nil
}

// ToDescriptor resolves the security scheme descriptor.
func (j *SecuritySchemeConfig) ToDescriptor() (authscheme.Descriptor, error) {
	if j.SecuritySchemeDefinition == nil {
		return nil, errSecuritySchemeDefinitionRequired
	}

	return j.SecuritySchemeDefinition.ToDescriptor()
}

// SecurityConfig contains the security schemes of the client.
type SecurityConfig struct {
	// The security scheme to be used by operations which don't have a specific one.
	Default *SecuritySchemeConfig `json:"default,omitempty" yaml:"default,omitempty"`
	// Security schemes by operation id.
	Operations map[string]SecuritySchemeConfig `json:"operations,omitempty" yaml:"operations,omitempty"`
}

// IsZero if the current instance is empty.
func (sc *SecurityConfig) IsZero() bool {
	return sc == nil || ((sc.Default == nil || sc.Default.IsZero()) && len(sc.Operations) == 0)
}

// Validate if the current instance is valid.
func (sc *SecurityConfig) Validate(strict bool) error {
	if sc.Default != nil {
		err := sc.Default.Validate(strict)
		if err != nil {
			return fmt.Errorf("default: %w", err)
		}
	}

	for operationID, scheme := range sc.Operations {
		if operationID == "" {
			return errEmptyOperationID
		}

		err := scheme.Validate(strict)
		if err != nil {
			return fmt.Errorf("operations[%s]: %w", operationID, err)
		}
	}

	return nil
}

// NewResolver resolves all descriptors and creates a resolver from the configuration.
func (sc *SecurityConfig) NewResolver(options ...ResolverOption) (*Resolver, error) {
	if sc.IsZero() {
		return NewResolver(options...), nil
	}

	var defaultDescriptor authscheme.Descriptor

	if sc.Default != nil && !sc.Default.IsZero() {
		desc, err := sc.Default.ToDescriptor()
		if err != nil {
			return nil, fmt.Errorf("default: %w", err)
		}

		defaultDescriptor = desc
	}

	descriptors := make(map[string]authscheme.Descriptor, len(sc.Operations))

	for operationID, scheme := range sc.Operations {
		if operationID == "" {
			return nil, errEmptyOperationID
		}

		desc, err := scheme.ToDescriptor()
		if err != nil {
			return nil, fmt.Errorf("operations[%s]: %w", operationID, err)
		}

		descriptors[operationID] = desc
	}

	opts := make([]ResolverOption, 0, len(options)+2)
	opts = append(opts, WithDefault(defaultDescriptor))

	if len(descriptors) > 0 {
		opts = append(opts, WithDelegate(DelegateFromMap(descriptors)))
	}

	opts = append(opts, options...)

	return NewResolver(opts...), nil
}
