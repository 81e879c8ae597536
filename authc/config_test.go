package authc

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/relychan/goutils"
	"github.com/relychan/oasecurity/authc/apikey"
	"github.com/relychan/oasecurity/authc/authscheme"
	"github.com/relychan/oasecurity/authc/basicauth"
	"github.com/relychan/oasecurity/authc/httpauth"
	"github.com/relychan/oasecurity/authc/oauth2scheme"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSecurityConfigFromYAML(t *testing.T) {
	t.Setenv("WIDGETS_ACCESS_TOKEN", "default-t0ken")
	t.Setenv("WIDGETS_API_KEY", "abc123")
	t.Setenv("WIDGETS_PASSWORD", "open sesame")
	t.Setenv("WIDGETS_OAUTH_TOKEN", "oauth-t0ken")

	config, err := goutils.ReadJSONOrYAMLFile[SecurityConfig]("testdata/security.yaml")
	require.NoError(t, err)
	require.NoError(t, config.Validate(true))

	assert.IsType(t, &httpauth.HTTPAuthConfig{}, config.Default.SecuritySchemeDefinition)
	assert.IsType(t, &apikey.APIKeyAuthConfig{}, config.Operations["listWidgets"].SecuritySchemeDefinition)
	assert.IsType(t, &basicauth.BasicAuthConfig{}, config.Operations["getWidget"].SecuritySchemeDefinition)
	assert.IsType(t, &oauth2scheme.OAuth2Config{}, config.Operations["createWidget"].SecuritySchemeDefinition)

	resolver, err := config.NewResolver()
	require.NoError(t, err)

	testCases := []struct {
		OperationID string
		Check       func(t *testing.T, req *http.Request)
	}{
		{
			OperationID: "listWidgets",
			Check: func(t *testing.T, req *http.Request) {
				assert.Equal(t, "abc123", req.URL.Query().Get("api_key"))
				assert.Empty(t, req.Header.Get("Authorization"))
			},
		},
		{
			OperationID: "getWidget",
			Check: func(t *testing.T, req *http.Request) {
				user, password, ok := req.BasicAuth()
				require.True(t, ok)
				assert.Equal(t, "aladdin", user)
				assert.Equal(t, "open sesame", password)
			},
		},
		{
			OperationID: "createWidget",
			Check: func(t *testing.T, req *http.Request) {
				assert.Equal(t, "Bearer oauth-t0ken", req.Header.Get("Authorization"))
			},
		},
		{
			OperationID: "deleteWidget",
			Check: func(t *testing.T, req *http.Request) {
				assert.Equal(t, "Bearer default-t0ken", req.Header.Get("Authorization"))
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.OperationID, func(t *testing.T) {
			desc, ok := resolver.Resolve(tc.OperationID)
			require.True(t, ok)

			req, err := authscheme.Apply(desc, httptest.NewRequest(http.MethodGet, "/widgets", nil), tc.OperationID)
			require.NoError(t, err)
			tc.Check(t, req)
		})
	}

	oauth, ok := resolver.Resolve("createWidget")
	require.True(t, ok)

	flow := oauth.(*authscheme.OAuth2).Flows().ClientCredentials
	require.NotNil(t, flow)
	assert.Equal(t, "https://auth.example.com/token", flow.TokenURL().String())
	assert.Equal(t, []string{"write:widgets"}, flow.ScopeNames())
}

func TestSecurityConfigFromJSON(t *testing.T) {
	config, err := goutils.ReadJSONOrYAMLFile[SecurityConfig]("testdata/security.json")
	require.NoError(t, err)
	assert.Nil(t, config.Default)

	resolver, err := config.NewResolver()
	require.NoError(t, err)

	_, ok := resolver.Resolve("listWidgets")
	assert.False(t, ok)

	desc, ok := resolver.Resolve("deleteWidget")
	require.True(t, ok)
	assert.IsType(t, &authscheme.HTTPBasic{}, desc)

	desc, ok = resolver.Resolve("updateWidget")
	require.True(t, ok)
	assert.Equal(t, authscheme.InHeader, desc.(*authscheme.APIKey).In())
}

func TestSecuritySchemeConfigJSON(t *testing.T) {
	raw := `{"type":"apiKey","name":"api_key","in":"cookie","value":{"value":"abc123"},"description":"cookie key"}`

	var config SecuritySchemeConfig

	require.NoError(t, json.Unmarshal([]byte(raw), &config))
	assert.Equal(t, authscheme.APIKeyScheme, config.GetType())

	b, err := json.Marshal(config)
	require.NoError(t, err)

	var roundTrip SecuritySchemeConfig

	require.NoError(t, json.Unmarshal(b, &roundTrip))
	assert.Equal(t, config, roundTrip)
}

func TestSecuritySchemeConfigErrors(t *testing.T) {
	testCases := []struct {
		Name string
		Raw  string
		Is   error
	}{
		{
			Name: "unknown_type",
			Raw:  `{"type":"digest"}`,
		},
		{
			Name: "openid_connect",
			Raw:  `{"type":"openIdConnect","openIdConnectUrl":"https://auth.example.com/.well-known/openid-configuration"}`,
			Is:   authscheme.ErrUnsupportedSecurityScheme,
		},
		{
			Name: "mutual_tls",
			Raw:  `{"type":"mutualTLS"}`,
			Is:   authscheme.ErrUnsupportedSecurityScheme,
		},
		{
			Name: "invalid_location",
			Raw:  `{"type":"apiKey","name":"api_key","in":"body","value":{"value":"abc123"}}`,
			Is:   authscheme.ErrInvalidDescriptor,
		},
		{
			Name: "insecure_token_url",
			Raw:  `{"type":"oauth2","flows":{"password":{"tokenUrl":{"value":"http://auth.example.com/token"}}},"accessToken":{"value":"t0ken"}}`,
			Is:   authscheme.ErrInvalidDescriptor,
		},
		{
			Name: "missing_bearer_value",
			Raw:  `{"type":"http","scheme":"bearer"}`,
			Is:   authscheme.ErrInvalidDescriptor,
		},
		{
			Name: "unsupported_http_scheme",
			Raw:  `{"type":"http","scheme":"digest","value":{"value":"t0ken"}}`,
			Is:   authscheme.ErrInvalidDescriptor,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.Name, func(t *testing.T) {
			var config SecuritySchemeConfig

			err := json.Unmarshal([]byte(tc.Raw), &config)
			if err == nil {
				_, err = config.ToDescriptor()
			}

			require.Error(t, err)

			if tc.Is != nil {
				require.ErrorIs(t, err, tc.Is)
			}
		})
	}
}

func TestSecurityConfigEmpty(t *testing.T) {
	var config *SecurityConfig

	assert.True(t, config.IsZero())

	resolver, err := config.NewResolver()
	require.NoError(t, err)

	_, ok := resolver.Resolve("listWidgets")
	assert.False(t, ok)
}
