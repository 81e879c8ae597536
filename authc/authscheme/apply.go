package authscheme

import (
	"net/http"

	"golang.org/x/net/http/httpguts"
)

// Apply returns a copy of the request which carries the credential of the descriptor.
// The original request is never modified; the body is shared with the copy.
// A nil descriptor returns the request unchanged.
func Apply(desc Descriptor, req *http.Request, operationID string) (*http.Request, error) {
	if req == nil || IsNil(desc) {
		return req, nil
	}

	location, value, err := GetTokenLocation(desc)
	if err != nil {
		return nil, err
	}

	if location.Name == "" ||
		(location.In == InHeader && !httpguts.ValidHeaderFieldName(location.Name)) {
		return nil, &UnresolvedHeaderNameError{
			OperationID: operationID,
			Name:        location.Name,
		}
	}

	if location.In == InQuery && req.URL == nil {
		return nil, errNilRequestURL
	}

	result := req.Clone(req.Context())
	if result.Header == nil {
		result.Header = http.Header{}
	}

	err = location.InjectRequest(result, value)
	if err != nil {
		return nil, err
	}

	return result, nil
}

// IsNil checks if the descriptor is nil or a typed nil pointer.
func IsNil(desc Descriptor) bool {
	switch scheme := desc.(type) {
	case nil:
		return true
	case *APIKey:
		return scheme == nil
	case *HTTPBasic:
		return scheme == nil
	case *HTTPBearer:
		return scheme == nil
	case *OAuth2:
		return scheme == nil
	default:
		return false
	}
}
