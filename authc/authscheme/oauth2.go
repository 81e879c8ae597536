package authscheme

import (
	"errors"
	"fmt"
	"maps"
	"net/url"
	"slices"

	"github.com/relychan/goutils"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
)

var (
	errInsecureURL = errors.New("the OAuth2 standard requires the use of TLS, expected an absolute https URL")
	errInvalidURL  = errors.New("invalid URL")
)

// OAuth2Flows contains the OAuth2 flows supported by a security scheme.
// A nil flow means the grant type is not supported.
type OAuth2Flows struct {
	Implicit          *ImplicitFlow
	Password          *PasswordFlow
	ClientCredentials *ClientCredentialsFlow
	AuthorizationCode *AuthorizationCodeFlow
}

// IsZero checks if there isn't any flow.
func (of OAuth2Flows) IsZero() bool {
	return of.Implicit == nil &&
		of.Password == nil &&
		of.ClientCredentials == nil &&
		of.AuthorizationCode == nil
}

type oauth2FlowBase struct {
	refreshURL *url.URL
	scopes     map[string]string
}

// RefreshURL returns the URL to be used for obtaining refresh tokens. It may be nil.
func (fb oauth2FlowBase) RefreshURL() *url.URL {
	return cloneURL(fb.refreshURL)
}

// Scopes returns the available scopes, a map between the scope name and a short description for it.
func (fb oauth2FlowBase) Scopes() map[string]string {
	return maps.Clone(fb.scopes)
}

// ScopeNames returns the sorted scope names.
func (fb oauth2FlowBase) ScopeNames() []string {
	return slices.Sorted(maps.Keys(fb.scopes))
}

// ImplicitFlow holds the metadata of the OAuth2 implicit flow.
type ImplicitFlow struct {
	oauth2FlowBase

	authorizationURL *url.URL
}

// NewImplicitFlow creates an implicit flow. The refresh URL is optional.
func NewImplicitFlow(
	authorizationURL string,
	refreshURL string,
	scopes map[string]string,
) (*ImplicitFlow, error) {
	base, err := newOAuth2FlowBase("implicit", refreshURL, scopes)
	if err != nil {
		return nil, err
	}

	authURL, err := parseSecureURL("implicit.authorizationUrl", authorizationURL)
	if err != nil {
		return nil, err
	}

	return &ImplicitFlow{
		oauth2FlowBase:   base,
		authorizationURL: authURL,
	}, nil
}

// AuthorizationURL returns the authorization URL to be used for this flow.
func (f *ImplicitFlow) AuthorizationURL() *url.URL {
	return cloneURL(f.authorizationURL)
}

// Endpoint returns the OAuth2 endpoint of the flow.
func (f *ImplicitFlow) Endpoint() oauth2.Endpoint {
	return oauth2.Endpoint{
		AuthURL: f.authorizationURL.String(),
	}
}

// PasswordFlow holds the metadata of the OAuth2 resource owner password flow.
type PasswordFlow struct {
	oauth2FlowBase

	tokenURL *url.URL
}

// NewPasswordFlow creates a password flow. The refresh URL is optional.
func NewPasswordFlow(
	tokenURL string,
	refreshURL string,
	scopes map[string]string,
) (*PasswordFlow, error) {
	base, err := newOAuth2FlowBase("password", refreshURL, scopes)
	if err != nil {
		return nil, err
	}

	tokURL, err := parseSecureURL("password.tokenUrl", tokenURL)
	if err != nil {
		return nil, err
	}

	return &PasswordFlow{
		oauth2FlowBase: base,
		tokenURL:       tokURL,
	}, nil
}

// TokenURL returns the token URL to be used for this flow.
func (f *PasswordFlow) TokenURL() *url.URL {
	return cloneURL(f.tokenURL)
}

// Endpoint returns the OAuth2 endpoint of the flow.
func (f *PasswordFlow) Endpoint() oauth2.Endpoint {
	return oauth2.Endpoint{
		TokenURL: f.tokenURL.String(),
	}
}

// Config creates an [oauth2.Config] which the application can use to exchange
// the resource owner credentials for a token.
func (f *PasswordFlow) Config(clientID, clientSecret string) *oauth2.Config {
	return &oauth2.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		Endpoint:     f.Endpoint(),
		Scopes:       f.ScopeNames(),
	}
}

// ClientCredentialsFlow holds the metadata of the OAuth2 client credentials flow.
type ClientCredentialsFlow struct {
	oauth2FlowBase

	tokenURL *url.URL
}

// NewClientCredentialsFlow creates a client credentials flow. The refresh URL is optional.
func NewClientCredentialsFlow(
	tokenURL string,
	refreshURL string,
	scopes map[string]string,
) (*ClientCredentialsFlow, error) {
	base, err := newOAuth2FlowBase("clientCredentials", refreshURL, scopes)
	if err != nil {
		return nil, err
	}

	tokURL, err := parseSecureURL("clientCredentials.tokenUrl", tokenURL)
	if err != nil {
		return nil, err
	}

	return &ClientCredentialsFlow{
		oauth2FlowBase: base,
		tokenURL:       tokURL,
	}, nil
}

// TokenURL returns the token URL to be used for this flow.
func (f *ClientCredentialsFlow) TokenURL() *url.URL {
	return cloneURL(f.tokenURL)
}

// Endpoint returns the OAuth2 endpoint of the flow.
func (f *ClientCredentialsFlow) Endpoint() oauth2.Endpoint {
	return oauth2.Endpoint{
		TokenURL: f.tokenURL.String(),
	}
}

// Config creates a [clientcredentials.Config] which the application can use to obtain tokens.
func (f *ClientCredentialsFlow) Config(clientID, clientSecret string) *clientcredentials.Config {
	return &clientcredentials.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		TokenURL:     f.tokenURL.String(),
		Scopes:       f.ScopeNames(),
	}
}

// AuthorizationCodeFlow holds the metadata of the OAuth2 authorization code flow.
type AuthorizationCodeFlow struct {
	oauth2FlowBase

	authorizationURL *url.URL
	tokenURL         *url.URL
}

// NewAuthorizationCodeFlow creates an authorization code flow. The refresh URL is optional.
func NewAuthorizationCodeFlow(
	authorizationURL string,
	tokenURL string,
	refreshURL string,
	scopes map[string]string,
) (*AuthorizationCodeFlow, error) {
	base, err := newOAuth2FlowBase("authorizationCode", refreshURL, scopes)
	if err != nil {
		return nil, err
	}

	authURL, err := parseSecureURL("authorizationCode.authorizationUrl", authorizationURL)
	if err != nil {
		return nil, err
	}

	tokURL, err := parseSecureURL("authorizationCode.tokenUrl", tokenURL)
	if err != nil {
		return nil, err
	}

	return &AuthorizationCodeFlow{
		oauth2FlowBase:   base,
		authorizationURL: authURL,
		tokenURL:         tokURL,
	}, nil
}

// AuthorizationURL returns the authorization URL to be used for this flow.
func (f *AuthorizationCodeFlow) AuthorizationURL() *url.URL {
	return cloneURL(f.authorizationURL)
}

// TokenURL returns the token URL to be used for this flow.
func (f *AuthorizationCodeFlow) TokenURL() *url.URL {
	return cloneURL(f.tokenURL)
}

// Endpoint returns the OAuth2 endpoint of the flow.
func (f *AuthorizationCodeFlow) Endpoint() oauth2.Endpoint {
	return oauth2.Endpoint{
		AuthURL:  f.authorizationURL.String(),
		TokenURL: f.tokenURL.String(),
	}
}

// Config creates an [oauth2.Config] which the application can use to run the authorization code grant.
func (f *AuthorizationCodeFlow) Config(clientID, clientSecret, redirectURL string) *oauth2.Config {
	return &oauth2.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		Endpoint:     f.Endpoint(),
		RedirectURL:  redirectURL,
		Scopes:       f.ScopeNames(),
	}
}

func newOAuth2FlowBase(flowName string, refreshURL string, scopes map[string]string) (oauth2FlowBase, error) {
	result := oauth2FlowBase{
		scopes: maps.Clone(scopes),
	}

	if result.scopes == nil {
		result.scopes = map[string]string{}
	}

	if refreshURL == "" {
		return result, nil
	}

	u, err := parseSecureURL(flowName+".refreshUrl", refreshURL)
	if err != nil {
		return result, err
	}

	result.refreshURL = u

	return result, nil
}

func parseSecureURL(field string, rawURL string) (*url.URL, error) {
	if rawURL == "" {
		return nil, NewRequiredSecurityFieldError(OAuth2Scheme, field)
	}

	u, err := goutils.ParseRelativeOrHTTPURL(rawURL)
	if err != nil {
		return nil, NewInvalidDescriptorError(OAuth2Scheme, field, fmt.Errorf("%w: %w", errInvalidURL, err))
	}

	if u.Scheme != "https" || u.Host == "" {
		return nil, NewInvalidDescriptorError(OAuth2Scheme, field, errInsecureURL)
	}

	return u, nil
}

func cloneURL(u *url.URL) *url.URL {
	if u == nil {
		return nil
	}

	result := *u

	if u.User != nil {
		user := *u.User
		result.User = &user
	}

	return &result
}
