package apikey

import (
	"fmt"

	"github.com/relychan/oasecurity/authc/authscheme"
)

// ToDescriptor resolves the API key value and creates the descriptor.
func (ap APIKeyAuthConfig) ToDescriptor() (authscheme.Descriptor, error) {
	err := ap.Validate(true)
	if err != nil {
		return nil, err
	}

	value, err := ap.Value.Get()
	if err != nil {
		return nil, fmt.Errorf("failed to resolve the api key value: %w", err)
	}

	desc, err := authscheme.NewAPIKey(ap.Name, ap.In, value)
	if err != nil {
		return nil, err
	}

	return desc, nil
}
