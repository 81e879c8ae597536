package authscheme

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidDescriptor occurs when a security scheme descriptor violates its construction rules.
	ErrInvalidDescriptor = errors.New("invalid security scheme descriptor")
	// ErrSchemeMismatch occurs when a request does not carry the credential of the expected security scheme.
	ErrSchemeMismatch = errors.New("security scheme mismatch")
	// ErrUnresolvedHeaderName occurs when the name of a descriptor can't be used as an HTTP header field.
	ErrUnresolvedHeaderName = errors.New("unresolved header name")
	// ErrUnsupportedSecurityScheme occurs when a security scheme can be configured but can't be applied to requests.
	ErrUnsupportedSecurityScheme = errors.New("unsupported security scheme")

	errUnmatchedSecurityScheme = errors.New("security scheme type does not match")
	errRequiredSecurityField   = errors.New("required field")
)

// InvalidDescriptorError describes a field of a security scheme descriptor which violates
// the construction rules.
type InvalidDescriptorError struct {
	Type   SecuritySchemeType
	Field  string
	Reason error
}

// Error implements the error interface.
func (e *InvalidDescriptorError) Error() string {
	return fmt.Sprintf("%s: %s scheme, %s: %s", ErrInvalidDescriptor, e.Type, e.Field, e.Reason)
}

// Unwrap returns the underlying reason.
func (e *InvalidDescriptorError) Unwrap() error {
	return e.Reason
}

// Is reports whether the target is ErrInvalidDescriptor.
func (e *InvalidDescriptorError) Is(target error) bool {
	return target == ErrInvalidDescriptor
}

// NewInvalidDescriptorError creates an error for an invalid field of the security scheme descriptor.
func NewInvalidDescriptorError(scheme SecuritySchemeType, field string, reason error) error {
	return &InvalidDescriptorError{
		Type:   scheme,
		Field:  field,
		Reason: reason,
	}
}

// NewRequiredSecurityFieldError creates an error for required field in the security scheme config.
func NewRequiredSecurityFieldError(scheme SecuritySchemeType, name string) error {
	return NewInvalidDescriptorError(
		scheme,
		name,
		fmt.Errorf("%w %s for the %s security scheme", errRequiredSecurityField, name, scheme),
	)
}

// NewUnmatchedSecuritySchemeError creates an error for unexpected security scheme type.
func NewUnmatchedSecuritySchemeError(expected SecuritySchemeType, got SecuritySchemeType) error {
	return fmt.Errorf("%w, expected `%s`, got `%s`", errUnmatchedSecurityScheme, expected, got)
}

// UnresolvedHeaderNameError is returned when a descriptor name can't be turned into a valid
// header field token. It indicates a configuration bug.
type UnresolvedHeaderNameError struct {
	OperationID string
	Name        string
}

// Error implements the error interface.
func (e *UnresolvedHeaderNameError) Error() string {
	return fmt.Sprintf("%s %q for operation %q", ErrUnresolvedHeaderName, e.Name, e.OperationID)
}

// Is reports whether the target is ErrUnresolvedHeaderName.
func (e *UnresolvedHeaderNameError) Is(target error) bool {
	return target == ErrUnresolvedHeaderName
}

// SchemeMismatchError is returned by the validator when a request does not carry
// the credential expected for an operation.
type SchemeMismatchError struct {
	OperationID string
	Type        SecuritySchemeType
	Request     RequestSnapshot
}

// Error implements the error interface.
func (e *SchemeMismatchError) Error() string {
	return fmt.Sprintf(
		"%s: operation %q requires the %s scheme; %s %s",
		ErrSchemeMismatch,
		e.OperationID,
		e.Type,
		e.Request.Method,
		e.Request.URL,
	)
}

// Is reports whether the target is ErrSchemeMismatch.
func (e *SchemeMismatchError) Is(target error) bool {
	return target == ErrSchemeMismatch
}

func normalizeName(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}
