package apikey

import (
	"encoding/json"
	"testing"

	"github.com/relychan/oasecurity/authc/authscheme"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAPIKeyAuthConfig(t *testing.T) {
	t.Setenv("WIDGETS_API_KEY", "abc123")

	var config APIKeyAuthConfig

	require.NoError(t, json.Unmarshal(
		[]byte(`{"type":"apiKey","name":"X-Api-Key","in":"header","value":{"env":"WIDGETS_API_KEY"}}`),
		&config,
	))

	desc, err := config.ToDescriptor()
	require.NoError(t, err)

	apiKey, ok := desc.(*authscheme.APIKey)
	require.True(t, ok)
	assert.Equal(t, "X-Api-Key", apiKey.Name())
	assert.Equal(t, authscheme.InHeader, apiKey.In())
	assert.Equal(t, "abc123", apiKey.Key())

	config.Name = "X Api Key"

	desc, err = config.ToDescriptor()
	require.ErrorIs(t, err, authscheme.ErrInvalidDescriptor)
	assert.Nil(t, desc)

	config.Name = ""
	require.Error(t, config.Validate(false))
}
