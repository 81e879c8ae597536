package authc

import (
	"sync"
	"testing"

	"github.com/relychan/oasecurity/authc/authscheme"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustBearer(t *testing.T, token string) *authscheme.HTTPBearer {
	t.Helper()

	desc, err := authscheme.NewHTTPBearer(token, "")
	require.NoError(t, err)

	return desc
}

func TestResolverPrecedence(t *testing.T) {
	defaultDesc := mustBearer(t, "default")
	special := mustBearer(t, "special")

	resolver := NewResolver(
		WithDefault(defaultDesc),
		WithDelegate(DelegateFromMap(map[string]authscheme.Descriptor{
			"createWidget": special,
		})),
	)

	desc, ok := resolver.Resolve("createWidget")
	require.True(t, ok)
	assert.Same(t, special, desc)

	desc, ok = resolver.Resolve("listWidgets")
	require.True(t, ok)
	assert.Same(t, defaultDesc, desc)
}

func TestResolverNoScheme(t *testing.T) {
	resolver := NewResolver()

	desc, ok := resolver.Resolve("listWidgets")
	assert.False(t, ok)
	assert.Nil(t, desc)

	var typedNil *authscheme.HTTPBearer

	resolver = NewResolver(
		WithDefault(typedNil),
		WithDelegate(func(string) authscheme.Descriptor { return typedNil }),
	)

	desc, ok = resolver.Resolve("listWidgets")
	assert.False(t, ok)
	assert.Nil(t, desc)
}

func TestResolverDelegateOnly(t *testing.T) {
	special := mustBearer(t, "special")
	resolver := NewResolver(WithDelegate(func(operationID string) authscheme.Descriptor {
		if operationID == "createWidget" {
			return special
		}

		return nil
	}))

	_, ok := resolver.Resolve("listWidgets")
	assert.False(t, ok)

	desc, ok := resolver.Resolve("createWidget")
	require.True(t, ok)
	assert.Same(t, special, desc)
}

func TestDelegateFromMapCopies(t *testing.T) {
	descriptors := map[string]authscheme.Descriptor{}
	delegate := DelegateFromMap(descriptors)

	descriptors["createWidget"] = mustBearer(t, "late")

	assert.Nil(t, delegate("createWidget"))
}

func TestResolverRotation(t *testing.T) {
	first := mustBearer(t, "first")
	second := mustBearer(t, "second")
	resolver := NewResolver(WithDefault(first))

	var wg sync.WaitGroup

	for range 8 {
		wg.Add(1)

		go func() {
			defer wg.Done()

			for range 100 {
				desc, ok := resolver.Resolve("listWidgets")
				if !ok {
					t.Error("expected a descriptor")

					return
				}

				token := desc.(*authscheme.HTTPBearer).AccessToken()
				if token != "first" && token != "second" {
					t.Errorf("unexpected token %s", token)

					return
				}
			}
		}()
	}

	resolver.SetDefault(second)
	wg.Wait()

	desc, ok := resolver.Resolve("listWidgets")
	require.True(t, ok)
	assert.Same(t, second, desc)

	resolver.SetDelegate(DelegateFromMap(map[string]authscheme.Descriptor{"listWidgets": first}))

	desc, ok = resolver.Resolve("listWidgets")
	require.True(t, ok)
	assert.Same(t, first, desc)
}
