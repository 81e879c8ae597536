package authc

import (
	"maps"
	"sync/atomic"

	"github.com/relychan/oasecurity/authc/authscheme"
)

// DescriptorDelegate resolves the descriptor of an operation.
// It returns nil when the operation has no specific security scheme.
// Delegates must be synchronous, free of I/O and safe for concurrent use.
type DescriptorDelegate func(operationID string) authscheme.Descriptor

// DelegateFromMap creates a delegate which looks up descriptors by operation id.
// The map is copied.
func DelegateFromMap(descriptors map[string]authscheme.Descriptor) DescriptorDelegate {
	lookup := maps.Clone(descriptors)

	return func(operationID string) authscheme.Descriptor {
		return lookup[operationID]
	}
}

type resolverState struct {
	delegate          DescriptorDelegate
	defaultDescriptor authscheme.Descriptor
}

// Resolver determines which descriptor applies to an operation.
// The delegate wins over the default descriptor.
type Resolver struct {
	state atomic.Pointer[resolverState]
}

// ResolverOption abstracts a function to modify the resolver.
type ResolverOption func(*resolverState)

// WithDelegate sets the per-operation delegate.
func WithDelegate(delegate DescriptorDelegate) ResolverOption {
	return func(rs *resolverState) {
		rs.delegate = delegate
	}
}

// WithDefault sets the default descriptor which is used when the delegate doesn't return any descriptor.
func WithDefault(desc authscheme.Descriptor) ResolverOption {
	return func(rs *resolverState) {
		rs.defaultDescriptor = normalizeDescriptor(desc)
	}
}

// NewResolver creates a new resolver.
func NewResolver(options ...ResolverOption) *Resolver {
	state := &resolverState{}

	for _, option := range options {
		option(state)
	}

	resolver := &Resolver{}
	resolver.state.Store(state)

	return resolver
}

// Resolve returns the descriptor of the operation.
// It returns false if no security scheme applies.
func (r *Resolver) Resolve(operationID string) (authscheme.Descriptor, bool) {
	state := r.state.Load()

	if state.delegate != nil {
		desc := normalizeDescriptor(state.delegate(operationID))
		if desc != nil {
			return desc, true
		}
	}

	if state.defaultDescriptor != nil {
		return state.defaultDescriptor, true
	}

	return nil, false
}

// SetDefault replaces the default descriptor, e.g. to rotate an access token.
// Concurrent resolutions observe either the old or the new descriptor.
func (r *Resolver) SetDefault(desc authscheme.Descriptor) {
	r.update(WithDefault(desc))
}

// SetDelegate replaces the per-operation delegate.
func (r *Resolver) SetDelegate(delegate DescriptorDelegate) {
	r.update(WithDelegate(delegate))
}

func (r *Resolver) update(option ResolverOption) {
	for {
		current := r.state.Load()
		next := *current
		option(&next)

		if r.state.CompareAndSwap(current, &next) {
			return
		}
	}
}

func normalizeDescriptor(desc authscheme.Descriptor) authscheme.Descriptor {
	if authscheme.IsNil(desc) {
		return nil
	}

	return desc
}
