package openapi

import (
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/relychan/oasecurity/authc"
	"github.com/relychan/oasecurity/authc/authscheme"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func widgetCredentials() map[string]Credential {
	return map[string]Credential{
		"apiKeyQuery":  {Key: "query-key"},
		"apiKeyHeader": {Key: "header-key"},
		"apiKeyCookie": {Key: "cookie-key"},
		"basicAuth":    {Username: "aladdin", Password: "open sesame"},
		"bearerAuth":   {AccessToken: "bearer-t0ken"},
		"oauth":        {AccessToken: "oauth-t0ken"},
	}
}

func loadWidgets(t *testing.T, credentials map[string]Credential) (*Binding, error) {
	t.Helper()

	data, err := os.ReadFile("testdata/widgets.yaml")
	require.NoError(t, err)

	return LoadBinding(data, credentials)
}

func TestBinding(t *testing.T) {
	binding, err := loadWidgets(t, widgetCredentials())
	require.NoError(t, err)

	assert.Equal(t, []string{
		"createWidget",
		"deleteWidget",
		"getWidget",
		"health",
		"listWidgets",
		"searchWidgets",
	}, binding.OperationIDs())

	defaultDesc, ok := binding.Scheme("bearerAuth")
	require.True(t, ok)
	assert.Same(t, defaultDesc, binding.Default())
	assert.Equal(t, authscheme.BearerFormatJWT, defaultDesc.(*authscheme.HTTPBearer).Format())

	resolver := binding.NewResolver()

	testCases := []struct {
		OperationID string
		Scheme      string
	}{
		{OperationID: "listWidgets", Scheme: "apiKeyQuery"},
		{OperationID: "createWidget", Scheme: "oauth"},
		{OperationID: "getWidget", Scheme: "bearerAuth"},
		{OperationID: "deleteWidget", Scheme: "basicAuth"},
		{OperationID: "searchWidgets", Scheme: "apiKeyCookie"},
		{OperationID: "unknownOperation", Scheme: "bearerAuth"},
		{OperationID: "health"},
	}

	for _, tc := range testCases {
		t.Run(tc.OperationID, func(t *testing.T) {
			desc, ok := resolver.Resolve(tc.OperationID)
			if tc.Scheme == "" {
				assert.False(t, ok)
				assert.Nil(t, desc)

				return
			}

			require.True(t, ok)

			expected, ok := binding.Scheme(tc.Scheme)
			require.True(t, ok)
			assert.Same(t, expected, desc)
		})
	}
}

func TestBindingMiddleware(t *testing.T) {
	binding, err := loadWidgets(t, widgetCredentials())
	require.NoError(t, err)

	mw, err := authc.NewSecurityMiddleware(binding.NewResolver())
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/widgets", nil)

	applied, err := authscheme.Apply(mustResolve(t, mw.Resolver(), "listWidgets"), req, "listWidgets")
	require.NoError(t, err)
	assert.Equal(t, "query-key", applied.URL.Query().Get("api_key"))
	require.NoError(t, mw.Validate(applied, "listWidgets"))
	require.ErrorIs(t, mw.Validate(req, "listWidgets"), authscheme.ErrSchemeMismatch)
	require.NoError(t, mw.Validate(req, "health"))
}

func mustResolve(t *testing.T, resolver *authc.Resolver, operationID string) authscheme.Descriptor {
	t.Helper()

	desc, ok := resolver.Resolve(operationID)
	require.True(t, ok)

	return desc
}

func TestBindingMissingCredentials(t *testing.T) {
	binding, err := loadWidgets(t, map[string]Credential{
		"apiKeyHeader": {Key: "header-key"},
	})
	require.NoError(t, err)

	assert.Nil(t, binding.Default())

	resolver := binding.NewResolver()

	_, ok := resolver.Resolve("listWidgets")
	assert.False(t, ok)

	// the requirement which includes apiKeyHeader also needs bearerAuth.
	_, ok = resolver.Resolve("createWidget")
	assert.False(t, ok)
}

func TestBindingErrors(t *testing.T) {
	_, err := NewBinding(nil, nil)
	require.Error(t, err)

	credentials := widgetCredentials()
	credentials["openId"] = Credential{AccessToken: "t0ken"}

	_, err = loadWidgets(t, credentials)
	require.ErrorIs(t, err, authscheme.ErrUnsupportedSecurityScheme)

	credentials = widgetCredentials()
	credentials["basicAuth"] = Credential{Username: "aladdin"}

	_, err = loadWidgets(t, credentials)
	require.ErrorIs(t, err, authscheme.ErrInvalidDescriptor)

	_, err = LoadBinding([]byte("openapi: [invalid"), nil)
	require.Error(t, err)
}

func TestNewDescriptor(t *testing.T) {
	desc, err := NewDescriptor(&openapi3.SecurityScheme{
		Type:   "http",
		Scheme: "Bearer",
	}, Credential{AccessToken: "t0ken"})
	require.NoError(t, err)
	assert.Equal(t, "t0ken", desc.(*authscheme.HTTPBearer).AccessToken())

	_, err = NewDescriptor(&openapi3.SecurityScheme{
		Type: "oauth2",
		Flows: &openapi3.OAuthFlows{
			Implicit: &openapi3.OAuthFlow{AuthorizationURL: "http://auth.example.com/authorize"},
		},
	}, Credential{AccessToken: "t0ken"})
	require.ErrorIs(t, err, authscheme.ErrInvalidDescriptor)

	_, err = NewDescriptor(&openapi3.SecurityScheme{
		Type: "apiKey",
		Name: "api_key",
		In:   "body",
	}, Credential{Key: "abc123"})
	require.ErrorIs(t, err, authscheme.ErrInvalidDescriptor)

	_, err = NewDescriptor(&openapi3.SecurityScheme{Type: "oauth2"}, Credential{AccessToken: "t0ken"})
	require.ErrorIs(t, err, authscheme.ErrInvalidDescriptor)
}
