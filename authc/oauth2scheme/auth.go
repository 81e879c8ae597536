// Package oauth2scheme implements the configuration of the oauth2 security scheme.
package oauth2scheme

import (
	"fmt"

	"github.com/hasura/goenvconf"
	"github.com/relychan/oasecurity/authc/authscheme"
)

// ToDescriptor resolves the flow URLs and the access token and creates the OAuth2 descriptor.
func (ss OAuth2Config) ToDescriptor() (authscheme.Descriptor, error) {
	err := ss.Validate(true)
	if err != nil {
		return nil, err
	}

	flows, err := ss.ToFlows()
	if err != nil {
		return nil, err
	}

	accessToken, err := ss.AccessToken.Get()
	if err != nil {
		return nil, fmt.Errorf("accessToken: %w", err)
	}

	desc, err := authscheme.NewOAuth2(flows, accessToken)
	if err != nil {
		return nil, err
	}

	return desc, nil
}

// ToFlows resolves and validates the flow metadata.
func (ss OAuth2Config) ToFlows() (authscheme.OAuth2Flows, error) {
	var result authscheme.OAuth2Flows

	for flowType, flow := range ss.Flows {
		authorizationURL, err := getEnvOrEmpty(flow.AuthorizationURL)
		if err != nil {
			return result, fmt.Errorf("%s.authorizationUrl: %w", flowType, err)
		}

		tokenURL, err := getEnvOrEmpty(flow.TokenURL)
		if err != nil {
			return result, fmt.Errorf("%s.tokenUrl: %w", flowType, err)
		}

		refreshURL, err := getEnvOrEmpty(flow.RefreshURL)
		if err != nil {
			return result, fmt.Errorf("%s.refreshUrl: %w", flowType, err)
		}

		switch flowType {
		case ImplicitFlow:
			result.Implicit, err = authscheme.NewImplicitFlow(authorizationURL, refreshURL, flow.Scopes)
		case PasswordFlow:
			result.Password, err = authscheme.NewPasswordFlow(tokenURL, refreshURL, flow.Scopes)
		case ClientCredentialsFlow:
			result.ClientCredentials, err = authscheme.NewClientCredentialsFlow(
				tokenURL,
				refreshURL,
				flow.Scopes,
			)
		case AuthorizationCodeFlow:
			result.AuthorizationCode, err = authscheme.NewAuthorizationCodeFlow(
				authorizationURL,
				tokenURL,
				refreshURL,
				flow.Scopes,
			)
		default:
			err = flowType.Validate()
		}

		if err != nil {
			return result, err
		}
	}

	return result, nil
}

func getEnvOrEmpty(value *goenvconf.EnvString) (string, error) {
	if value == nil {
		return "", nil
	}

	return value.GetOrDefault("")
}
