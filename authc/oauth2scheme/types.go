package oauth2scheme

import (
	"fmt"
	"slices"
)

// OAuthFlowType is the key of a flow in the oauth2 flows object.
type OAuthFlowType string

const (
	// AuthorizationCodeFlow is the authorizationCode flow. Requires authorizationUrl and tokenUrl.
	AuthorizationCodeFlow OAuthFlowType = "authorizationCode"
	// ImplicitFlow is the implicit flow. Requires authorizationUrl.
	ImplicitFlow OAuthFlowType = "implicit"
	// PasswordFlow is the resource owner password flow. Requires tokenUrl.
	PasswordFlow OAuthFlowType = "password"
	// ClientCredentialsFlow is the clientCredentials flow. Requires tokenUrl.
	ClientCredentialsFlow OAuthFlowType = "clientCredentials"
)

var supportedOAuthFlowTypes = []OAuthFlowType{
	ImplicitFlow,
	PasswordFlow,
	ClientCredentialsFlow,
	AuthorizationCodeFlow,
}

var errInvalidOAuthFlowType = fmt.Errorf("invalid oauth2 flow type, expected one of %v", supportedOAuthFlowTypes)

// Validate checks if the flow type is known.
func (j OAuthFlowType) Validate() error {
	if !slices.Contains(supportedOAuthFlowTypes, j) {
		return fmt.Errorf("%w, got <%s>", errInvalidOAuthFlowType, j)
	}

	return nil
}

// RequiresTokenURL reports whether the flow exchanges a grant at the token endpoint.
func (j OAuthFlowType) RequiresTokenURL() bool {
	return j != ImplicitFlow
}

// RequiresAuthorizationURL reports whether the flow redirects the user agent to the authorization endpoint.
func (j OAuthFlowType) RequiresAuthorizationURL() bool {
	return j == ImplicitFlow || j == AuthorizationCodeFlow
}

// ParseOAuthFlowType parses OAuthFlowType from string.
func ParseOAuthFlowType(value string) (OAuthFlowType, error) {
	result := OAuthFlowType(value)

	return result, result.Validate()
}

// GetSupportedOAuthFlowTypes returns the flow types of the oauth2 flows object.
func GetSupportedOAuthFlowTypes() []OAuthFlowType {
	return slices.Clone(supportedOAuthFlowTypes)
}
