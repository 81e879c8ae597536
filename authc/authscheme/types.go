// Package authscheme defines the security scheme descriptors of the OpenAPI specification
// and the logic to apply them to, or validate them against, HTTP requests.
package authscheme

import (
	"fmt"
	"slices"
)

// SecuritySchemeType represents the security scheme type enum.
type SecuritySchemeType string

const (
	APIKeyScheme        SecuritySchemeType = "apiKey"
	HTTPAuthScheme      SecuritySchemeType = "http"
	MutualTLSScheme     SecuritySchemeType = "mutualTLS"
	OAuth2Scheme        SecuritySchemeType = "oauth2"
	OpenIDConnectScheme SecuritySchemeType = "openIdConnect"
)

var enumValueSecuritySchemeTypes = []SecuritySchemeType{
	APIKeyScheme,
	HTTPAuthScheme,
	MutualTLSScheme,
	OAuth2Scheme,
	OpenIDConnectScheme,
}

var errInvalidSecuritySchemeType = fmt.Errorf(
	"invalid SecuritySchemeType. Expected %v",
	enumValueSecuritySchemeTypes,
)

// Validate checks if the security scheme type is valid.
func (j SecuritySchemeType) Validate() error {
	if !slices.Contains(GetSupportedSecuritySchemeTypes(), j) {
		return fmt.Errorf(
			"%w, got <%s>",
			errInvalidSecuritySchemeType,
			j,
		)
	}

	return nil
}

// ParseSecuritySchemeType parses SecuritySchemeType from string.
func ParseSecuritySchemeType(value string) (SecuritySchemeType, error) {
	result := SecuritySchemeType(value)

	return result, result.Validate()
}

// GetSupportedSecuritySchemeTypes get the list of supported security scheme types.
func GetSupportedSecuritySchemeTypes() []SecuritySchemeType {
	return enumValueSecuritySchemeTypes
}

// AuthLocation represents the location enum for setting authentication value.
type AuthLocation string

const (
	InHeader AuthLocation = "header"
	InQuery  AuthLocation = "query"
	InCookie AuthLocation = "cookie"
)

var (
	enumValuesAuthLocations = []AuthLocation{InHeader, InQuery, InCookie}
	errInvalidAuthLocation  = fmt.Errorf(
		"invalid AuthLocation. Expected %v",
		enumValuesAuthLocations,
	)
)

// Validate checks if the auth location is valid.
func (j AuthLocation) Validate() error {
	if !slices.Contains(GetSupportedAuthLocations(), j) {
		return fmt.Errorf(
			"%w, got <%s>",
			errInvalidAuthLocation,
			j,
		)
	}

	return nil
}

// ParseAuthLocation parses the auth location from string.
func ParseAuthLocation(value string) (AuthLocation, error) {
	result := AuthLocation(value)

	return result, result.Validate()
}

// GetSupportedAuthLocations get the list of supported auth locations.
func GetSupportedAuthLocations() []AuthLocation {
	return enumValuesAuthLocations
}

// HTTPAuthSchemeName represents the name of the HTTP Authentication scheme
// to be used in the Authorization header as defined in RFC7235.
type HTTPAuthSchemeName string

const (
	BasicAuthScheme  HTTPAuthSchemeName = "basic"
	BearerAuthScheme HTTPAuthSchemeName = "bearer"
)

var (
	enumValuesHTTPAuthSchemeNames = []HTTPAuthSchemeName{BasicAuthScheme, BearerAuthScheme}
	errInvalidHTTPAuthSchemeName  = fmt.Errorf(
		"invalid HTTPAuthSchemeName. Expected %v",
		enumValuesHTTPAuthSchemeNames,
	)
)

// Validate checks if the HTTP auth scheme name is valid.
func (j HTTPAuthSchemeName) Validate() error {
	if !slices.Contains(enumValuesHTTPAuthSchemeNames, j) {
		return fmt.Errorf(
			"%w, got <%s>",
			errInvalidHTTPAuthSchemeName,
			j,
		)
	}

	return nil
}

// ParseHTTPAuthSchemeName parses the HTTP auth scheme name from string.
// The value is case-insensitive, as defined in RFC7235.
func ParseHTTPAuthSchemeName(value string) (HTTPAuthSchemeName, error) {
	result := HTTPAuthSchemeName(normalizeName(value))

	return result, result.Validate()
}

// BearerFormatJWT is the common bearer format hint for JSON Web Tokens.
const BearerFormatJWT = "JWT"
