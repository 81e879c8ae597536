// Package httpauth implements the configuration of the http security scheme.
package httpauth

import (
	"fmt"

	"github.com/relychan/oasecurity/authc/authscheme"
)

// ToDescriptor resolves the credential and creates the basic or bearer descriptor.
func (ss *HTTPAuthConfig) ToDescriptor() (authscheme.Descriptor, error) {
	err := ss.Validate(true)
	if err != nil {
		return nil, err
	}

	// the scheme is validated above.
	scheme, _ := authscheme.ParseHTTPAuthSchemeName(ss.Scheme)

	if scheme == authscheme.BasicAuthScheme {
		user, err := ss.Username.Get()
		if err != nil {
			return nil, fmt.Errorf("failed to create HTTP credential. Invalid username: %w", err)
		}

		password, err := ss.Password.Get()
		if err != nil {
			return nil, fmt.Errorf("failed to create HTTP credential. Invalid password: %w", err)
		}

		desc, err := authscheme.NewHTTPBasic(user, password)
		if err != nil {
			return nil, err
		}

		return desc, nil
	}

	value, err := ss.Value.Get()
	if err != nil {
		return nil, fmt.Errorf("failed to create HTTP credential: %w", err)
	}

	desc, err := authscheme.NewHTTPBearer(value, ss.BearerFormat)
	if err != nil {
		return nil, err
	}

	return desc, nil
}
