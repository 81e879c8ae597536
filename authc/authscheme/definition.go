package authscheme

// SecuritySchemeDefinition abstracts the declarative configuration of a security scheme.
type SecuritySchemeDefinition interface {
	// GetType gets the type of security scheme.
	GetType() SecuritySchemeType
	// Validate checks if the configuration is valid. Secret values are only checked in strict mode.
	Validate(strict bool) error
	// ToDescriptor resolves secret values and builds the descriptor.
	ToDescriptor() (Descriptor, error)
}
