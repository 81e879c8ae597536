package basicauth

import (
	"fmt"

	"github.com/relychan/oasecurity/authc/authscheme"
)

// ToDescriptor resolves the credential and creates the basic authentication descriptor.
func (ss BasicAuthConfig) ToDescriptor() (authscheme.Descriptor, error) {
	err := ss.Validate(true)
	if err != nil {
		return nil, err
	}

	user, err := ss.Username.Get()
	if err != nil {
		return nil, fmt.Errorf("failed to create basic credential. Invalid username: %w", err)
	}

	password, err := ss.Password.Get()
	if err != nil {
		return nil, fmt.Errorf("failed to create basic credential. Invalid password: %w", err)
	}

	desc, err := authscheme.NewHTTPBasic(user, password)
	if err != nil {
		return nil, err
	}

	return desc, nil
}
