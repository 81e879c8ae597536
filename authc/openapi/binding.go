// Package openapi binds the security schemes and requirements of an OpenAPI 3 document to descriptors.
package openapi

import (
	"errors"
	"fmt"
	"slices"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/relychan/oasecurity/authc"
	"github.com/relychan/oasecurity/authc/authscheme"
)

var errNilDocument = errors.New("OpenAPI document is nil")

// Credential contains the secret values of a security scheme.
// Only the values used by the scheme type need to be set.
type Credential struct {
	// Key is the value of the apiKey scheme.
	Key string
	// Username of the http basic scheme.
	Username string
	// Password of the http basic scheme.
	Password string
	// AccessToken of the http bearer and oauth2 schemes.
	AccessToken string
}

// Binding holds the descriptors of an OpenAPI document.
// It is immutable and safe for concurrent use.
type Binding struct {
	schemes           map[string]authscheme.Descriptor
	operations        map[string]authscheme.Descriptor
	defaultDescriptor authscheme.Descriptor
}

// LoadBinding loads an OpenAPI document from JSON or YAML data and binds it.
func LoadBinding(data []byte, credentials map[string]Credential) (*Binding, error) {
	doc, err := openapi3.NewLoader().LoadFromData(data)
	if err != nil {
		return nil, fmt.Errorf("failed to load the OpenAPI document: %w", err)
	}

	return NewBinding(doc, credentials)
}

// NewBinding builds descriptors of the security schemes which have a credential
// and selects the descriptor of every operation.
// The operation security overrides the document security. Within a list of alternatives,
// the first requirement that is either empty or made of a single bound scheme wins.
func NewBinding(doc *openapi3.T, credentials map[string]Credential) (*Binding, error) {
	if doc == nil {
		return nil, errNilDocument
	}

	schemes := map[string]authscheme.Descriptor{}

	if doc.Components != nil {
		for name, schemeRef := range doc.Components.SecuritySchemes {
			credential, ok := credentials[name]
			if !ok || schemeRef == nil || schemeRef.Value == nil {
				continue
			}

			desc, err := NewDescriptor(schemeRef.Value, credential)
			if err != nil {
				return nil, fmt.Errorf("securitySchemes[%s]: %w", name, err)
			}

			schemes[name] = desc
		}
	}

	binding := &Binding{
		schemes:    schemes,
		operations: map[string]authscheme.Descriptor{},
	}

	binding.defaultDescriptor = binding.selectDescriptor(doc.Security)

	for _, pathItem := range doc.Paths.Map() {
		if pathItem == nil {
			continue
		}

		for _, operation := range pathItem.Operations() {
			if operation == nil || operation.OperationID == "" {
				continue
			}

			if operation.Security == nil {
				binding.operations[operation.OperationID] = binding.defaultDescriptor

				continue
			}

			binding.operations[operation.OperationID] = binding.selectDescriptor(*operation.Security)
		}
	}

	return binding, nil
}

// Scheme returns the descriptor of a named security scheme.
func (b *Binding) Scheme(name string) (authscheme.Descriptor, bool) {
	desc, ok := b.schemes[name]

	return desc, ok
}

// Default returns the descriptor selected by the document security. It may be nil.
func (b *Binding) Default() authscheme.Descriptor {
	return b.defaultDescriptor
}

// OperationIDs returns the sorted ids of operations in the document.
func (b *Binding) OperationIDs() []string {
	results := make([]string, 0, len(b.operations))

	for operationID := range b.operations {
		results = append(results, operationID)
	}

	slices.Sort(results)

	return results
}

// Delegate returns a delegate which resolves descriptors of operations in the document.
// Operations which aren't in the document fall back to the document security.
func (b *Binding) Delegate() authc.DescriptorDelegate {
	return func(operationID string) authscheme.Descriptor {
		desc, ok := b.operations[operationID]
		if !ok {
			return b.defaultDescriptor
		}

		return desc
	}
}

// NewResolver creates a resolver from the binding.
// The resolver doesn't have a default descriptor, so an operation
// with an explicit empty security requirement is never authenticated.
func (b *Binding) NewResolver() *authc.Resolver {
	return authc.NewResolver(authc.WithDelegate(b.Delegate()))
}

func (b *Binding) selectDescriptor(requirements openapi3.SecurityRequirements) authscheme.Descriptor {
	for _, requirement := range requirements {
		// an empty requirement makes the security optional.
		if len(requirement) == 0 {
			return nil
		}

		// a single hook applies exactly one scheme.
		if len(requirement) > 1 {
			continue
		}

		for name := range requirement {
			if desc, ok := b.schemes[name]; ok {
				return desc
			}
		}
	}

	return nil
}

// NewDescriptor creates a descriptor from the OpenAPI security scheme object and the credential.
func NewDescriptor(scheme *openapi3.SecurityScheme, credential Credential) (authscheme.Descriptor, error) {
	schemeType, err := authscheme.ParseSecuritySchemeType(scheme.Type)
	if err != nil {
		return nil, err
	}

	switch schemeType {
	case authscheme.APIKeyScheme:
		location, err := authscheme.ParseAuthLocation(scheme.In)
		if err != nil {
			return nil, authscheme.NewInvalidDescriptorError(schemeType, "in", err)
		}

		desc, err := authscheme.NewAPIKey(scheme.Name, location, credential.Key)
		if err != nil {
			return nil, err
		}

		return desc, nil
	case authscheme.HTTPAuthScheme:
		return newHTTPDescriptor(scheme, credential)
	case authscheme.OAuth2Scheme:
		flows, err := newOAuth2Flows(scheme.Flows)
		if err != nil {
			return nil, err
		}

		desc, err := authscheme.NewOAuth2(flows, credential.AccessToken)
		if err != nil {
			return nil, err
		}

		return desc, nil
	default:
		return nil, fmt.Errorf("%w: %s", authscheme.ErrUnsupportedSecurityScheme, schemeType)
	}
}

func newHTTPDescriptor(scheme *openapi3.SecurityScheme, credential Credential) (authscheme.Descriptor, error) {
	schemeName, err := authscheme.ParseHTTPAuthSchemeName(scheme.Scheme)
	if err != nil {
		return nil, authscheme.NewInvalidDescriptorError(authscheme.HTTPAuthScheme, "scheme", err)
	}

	if schemeName == authscheme.BasicAuthScheme {
		desc, err := authscheme.NewHTTPBasic(credential.Username, credential.Password)
		if err != nil {
			return nil, err
		}

		return desc, nil
	}

	desc, err := authscheme.NewHTTPBearer(credential.AccessToken, scheme.BearerFormat)
	if err != nil {
		return nil, err
	}

	return desc, nil
}

func newOAuth2Flows(flows *openapi3.OAuthFlows) (authscheme.OAuth2Flows, error) {
	var result authscheme.OAuth2Flows

	if flows == nil {
		return result, nil
	}

	var err error

	if flow := flows.Implicit; flow != nil {
		result.Implicit, err = authscheme.NewImplicitFlow(flow.AuthorizationURL, flow.RefreshURL, flow.Scopes)
		if err != nil {
			return result, err
		}
	}

	if flow := flows.Password; flow != nil {
		result.Password, err = authscheme.NewPasswordFlow(flow.TokenURL, flow.RefreshURL, flow.Scopes)
		if err != nil {
			return result, err
		}
	}

	if flow := flows.ClientCredentials; flow != nil {
		result.ClientCredentials, err = authscheme.NewClientCredentialsFlow(
			flow.TokenURL,
			flow.RefreshURL,
			flow.Scopes,
		)
		if err != nil {
			return result, err
		}
	}

	if flow := flows.AuthorizationCode; flow != nil {
		result.AuthorizationCode, err = authscheme.NewAuthorizationCodeFlow(
			flow.AuthorizationURL,
			flow.TokenURL,
			flow.RefreshURL,
			flow.Scopes,
		)
		if err != nil {
			return result, err
		}
	}

	return result, nil
}
