package authscheme

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"
)

func TestNewAPIKey(t *testing.T) {
	testCases := []struct {
		Name       string
		KeyName    string
		In         AuthLocation
		Key        string
		ErrorField string
	}{
		{Name: "header", KeyName: "X-Api-Key", In: InHeader, Key: "abc123"},
		{Name: "query", KeyName: "api key", In: InQuery, Key: "a&b"},
		{Name: "cookie", KeyName: "api_key", In: InCookie, Key: "abc123"},
		{Name: "empty_name", KeyName: "", In: InHeader, Key: "abc123", ErrorField: "name"},
		{Name: "empty_key", KeyName: "X-Api-Key", In: InHeader, Key: "", ErrorField: "key"},
		{Name: "invalid_location", KeyName: "api_key", In: "body", Key: "abc123", ErrorField: "in"},
		{Name: "invalid_header_name", KeyName: "X Api Key", In: InHeader, Key: "abc123", ErrorField: "name"},
		{Name: "invalid_header_value", KeyName: "X-Api-Key", In: InHeader, Key: "abc\r\n123", ErrorField: "key"},
		{Name: "invalid_cookie_name", KeyName: "api;key", In: InCookie, Key: "abc123", ErrorField: "name"},
		{Name: "cookie_leading_space", KeyName: "api_key", In: InCookie, Key: " abc", ErrorField: "key"},
		{Name: "cookie_trailing_space", KeyName: "api_key", In: InCookie, Key: "abc ", ErrorField: "key"},
		{Name: "cookie_quoted_value", KeyName: "api_key", In: InCookie, Key: "a,b", ErrorField: "key"},
	}

	for _, tc := range testCases {
		t.Run(tc.Name, func(t *testing.T) {
			desc, err := NewAPIKey(tc.KeyName, tc.In, tc.Key)
			if tc.ErrorField == "" {
				require.NoError(t, err)
				assert.Equal(t, APIKeyScheme, desc.GetType())
				assert.Equal(t, tc.KeyName, desc.Name())
				assert.Equal(t, tc.In, desc.In())
				assert.Equal(t, tc.Key, desc.Key())

				return
			}

			require.ErrorIs(t, err, ErrInvalidDescriptor)

			var descErr *InvalidDescriptorError
			require.True(t, errors.As(err, &descErr))
			assert.Equal(t, APIKeyScheme, descErr.Type)
			assert.Equal(t, tc.ErrorField, descErr.Field)
		})
	}
}

func TestNewHTTPBasic(t *testing.T) {
	desc, err := NewHTTPBasic("aladdin", "open sesame")
	require.NoError(t, err)
	assert.Equal(t, HTTPAuthScheme, desc.GetType())
	assert.Equal(t, BasicAuthScheme, desc.Scheme())
	assert.Equal(t, "aladdin", desc.Username())
	assert.Equal(t, "open sesame", desc.Password())

	_, err = NewHTTPBasic("", "secret")
	require.ErrorIs(t, err, ErrInvalidDescriptor)

	_, err = NewHTTPBasic("user", "")
	require.ErrorIs(t, err, ErrInvalidDescriptor)

	_, err = NewHTTPBasic("us:er", "secret")
	require.ErrorIs(t, err, ErrInvalidDescriptor)
}

func TestNewHTTPBearer(t *testing.T) {
	desc, err := NewHTTPBearer("t0ken", BearerFormatJWT)
	require.NoError(t, err)
	assert.Equal(t, HTTPAuthScheme, desc.GetType())
	assert.Equal(t, BearerAuthScheme, desc.Scheme())
	assert.Equal(t, "t0ken", desc.AccessToken())
	assert.Equal(t, BearerFormatJWT, desc.Format())

	rotated, err := desc.WithAccessToken("n3w")
	require.NoError(t, err)
	assert.Equal(t, "n3w", rotated.AccessToken())
	assert.Equal(t, BearerFormatJWT, rotated.Format())
	assert.Equal(t, "t0ken", desc.AccessToken())

	_, err = NewHTTPBearer("", "")
	require.ErrorIs(t, err, ErrInvalidDescriptor)

	_, err = NewHTTPBearer("bad\ntoken", "")
	require.ErrorIs(t, err, ErrInvalidDescriptor)
}

func TestNewOAuth2(t *testing.T) {
	flow, err := NewClientCredentialsFlow("https://auth.example.com/token", "", map[string]string{
		"read:widgets": "read widgets",
	})
	require.NoError(t, err)

	flows := OAuth2Flows{ClientCredentials: flow}

	desc, err := NewOAuth2(flows, "t0ken")
	require.NoError(t, err)
	assert.Equal(t, OAuth2Scheme, desc.GetType())
	assert.Equal(t, BearerAuthScheme, desc.Scheme())
	assert.Equal(t, "t0ken", desc.AccessToken())
	assert.Equal(t, flow, desc.Flows().ClientCredentials)

	_, err = NewOAuth2(OAuth2Flows{}, "t0ken")
	require.ErrorIs(t, err, ErrInvalidDescriptor)

	_, err = NewOAuth2(flows, "")
	require.ErrorIs(t, err, ErrInvalidDescriptor)

	fromToken, err := NewOAuth2FromToken(flows, &oauth2.Token{AccessToken: "from-flow"})
	require.NoError(t, err)
	assert.Equal(t, "from-flow", fromToken.AccessToken())

	_, err = NewOAuth2FromToken(flows, nil)
	require.ErrorIs(t, err, ErrInvalidDescriptor)
}

func TestParseEnums(t *testing.T) {
	schemeName, err := ParseHTTPAuthSchemeName(" Bearer ")
	require.NoError(t, err)
	assert.Equal(t, BearerAuthScheme, schemeName)

	_, err = ParseHTTPAuthSchemeName("digest")
	require.Error(t, err)

	location, err := ParseAuthLocation("cookie")
	require.NoError(t, err)
	assert.Equal(t, InCookie, location)

	_, err = ParseAuthLocation("body")
	require.Error(t, err)

	schemeType, err := ParseSecuritySchemeType("openIdConnect")
	require.NoError(t, err)
	assert.Equal(t, OpenIDConnectScheme, schemeType)

	_, err = ParseSecuritySchemeType("digest")
	require.Error(t, err)
}
