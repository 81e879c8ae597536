package oauth2scheme

import (
	"errors"
	"fmt"

	"github.com/hasura/goenvconf"
	"github.com/relychan/oasecurity/authc/authscheme"
)

var (
	// ErrOAuth2FlowRequired is the error when there isn't any flow is configured.
	ErrOAuth2FlowRequired = errors.New("require at least 1 flow for oauth2 security")
	// ErrTokenURLRequired is the error when the token URL is configured without any value.
	ErrTokenURLRequired = errors.New("tokenUrl: value and env are empty")
	// ErrAuthorizationURLRequired is the error when the authorization URL is configured without any value.
	ErrAuthorizationURLRequired = errors.New("authorizationUrl: value and env are empty")
)

// OAuth2Config contains configurations for [OAuth 2.0] API specification.
// The access token must be obtained by the application. It is sent as a bearer token.
//
// [OAuth 2.0]: https://swagger.io/docs/specification/authentication/oauth2
type OAuth2Config struct {
	Type authscheme.SecuritySchemeType `json:"type" yaml:"type" jsonschema:"enum=oauth2"`
	// An object containing configuration information for the flow types supported.
	Flows map[OAuthFlowType]OAuthFlow `json:"flows" yaml:"flows"`
	// The access token which was obtained by one of the flows.
	AccessToken goenvconf.EnvString `json:"accessToken" yaml:"accessToken"`
	// A description for security scheme.
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
}

var _ authscheme.SecuritySchemeDefinition = (*OAuth2Config)(nil)

// NewOAuth2Config creates a new OAuth2Config instance.
func NewOAuth2Config(flows map[OAuthFlowType]OAuthFlow, accessToken goenvconf.EnvString) *OAuth2Config {
	return &OAuth2Config{
		Type:        authscheme.OAuth2Scheme,
		Flows:       flows,
		AccessToken: accessToken,
	}
}

// GetType get the type of security scheme.
func (OAuth2Config) GetType() authscheme.SecuritySchemeType {
	return authscheme.OAuth2Scheme
}

// Validate if the current instance is valid.
func (ss OAuth2Config) Validate(strict bool) error {
	authType := ss.GetType()

	if ss.Type != authType {
		return authscheme.NewUnmatchedSecuritySchemeError(authType, ss.Type)
	}

	if len(ss.Flows) == 0 {
		return ErrOAuth2FlowRequired
	}

	for key, flow := range ss.Flows {
		err := key.Validate()
		if err != nil {
			return err
		}

		if err := flow.Validate(key); err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
	}

	if strict && ss.AccessToken.IsZero() {
		return authscheme.NewRequiredSecurityFieldError(authType, "accessToken")
	}

	return nil
}

// OAuthFlow contains flow configurations for [OAuth 2.0] API specification
//
// [OAuth 2.0]: https://swagger.io/docs/specification/authentication/oauth2
type OAuthFlow struct {
	// The authorization URL to be used for this flow. This MUST be in the form of a URL. The OAuth2 standard requires the use of TLS.
	AuthorizationURL *goenvconf.EnvString `json:"authorizationUrl,omitempty" yaml:"authorizationUrl,omitempty"`
	// The token URL to be used for this flow. This MUST be in the form of a URL. The OAuth2 standard requires the use of TLS.
	TokenURL *goenvconf.EnvString `json:"tokenUrl,omitempty"         yaml:"tokenUrl,omitempty"`
	// The URL to be used for obtaining refresh tokens. This MUST be in the form of a URL. The OAuth2 standard requires the use of TLS.
	RefreshURL *goenvconf.EnvString `json:"refreshUrl,omitempty"       yaml:"refreshUrl,omitempty"`
	// The available scopes for the OAuth2 security scheme. A map between the scope name and a short description for it. The map MAY be empty.
	Scopes map[string]string `json:"scopes,omitempty"           yaml:"scopes,omitempty"`
}

// Validate checks the URLs required by the flow type.
func (ss OAuthFlow) Validate(flowType OAuthFlowType) error {
	switch {
	case ss.TokenURL != nil && ss.TokenURL.IsZero():
		return ErrTokenURLRequired
	case ss.TokenURL == nil && flowType.RequiresTokenURL():
		return fmt.Errorf("tokenUrl is required for the oauth2 %s flow", flowType)
	case ss.AuthorizationURL != nil && ss.AuthorizationURL.IsZero():
		return ErrAuthorizationURLRequired
	case ss.AuthorizationURL == nil && flowType.RequiresAuthorizationURL():
		return fmt.Errorf("authorizationUrl is required for the oauth2 %s flow", flowType)
	}

	return nil
}
