package basicauth

import (
	"encoding/json"
	"testing"

	"github.com/relychan/oasecurity/authc/authscheme"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBasicAuthConfig(t *testing.T) {
	t.Setenv("BASIC_USER", "aladdin")
	t.Setenv("BASIC_PASSWORD", "open sesame")

	var config BasicAuthConfig

	require.NoError(t, json.Unmarshal(
		[]byte(`{"type":"basic","username":{"env":"BASIC_USER"},"password":{"env":"BASIC_PASSWORD"}}`),
		&config,
	))
	assert.Equal(t, authscheme.HTTPAuthScheme, config.GetType())

	desc, err := config.ToDescriptor()
	require.NoError(t, err)

	basic, ok := desc.(*authscheme.HTTPBasic)
	require.True(t, ok)
	assert.Equal(t, "aladdin", basic.Username())
	assert.Equal(t, "open sesame", basic.Password())

	config.Type = "http"
	require.Error(t, config.Validate(false))
}
