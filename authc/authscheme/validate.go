package authscheme

import (
	"crypto/subtle"
	"net/http"
)

// Validate checks if the request already carries the credential of the descriptor.
// The request is never modified. A nil descriptor always passes.
func Validate(desc Descriptor, req *http.Request, operationID string) error {
	if IsNil(desc) {
		return nil
	}

	location, value, err := GetTokenLocation(desc)
	if err != nil {
		return err
	}

	if req != nil && location.ContainsValue(req, value) {
		return nil
	}

	return &SchemeMismatchError{
		OperationID: operationID,
		Type:        desc.GetType(),
		Request:     NewRequestSnapshot(req),
	}
}

func secureCompare(value string, expected string) bool {
	return subtle.ConstantTimeCompare([]byte(value), []byte(expected)) == 1
}
