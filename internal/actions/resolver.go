package actions

import "strings"

// AliasResolver maps command-line tokens to canonical action identifiers.
type AliasResolver struct {
	registry *Registry
}

// NewAliasResolver wraps registry.
func NewAliasResolver(registry *Registry) AliasResolver {
	return AliasResolver{registry: registry}
}

// Resolve trims token and looks it up among the registered aliases.
func (resolver AliasResolver) Resolve(token string) (ActionID, error) {
	if resolver.registry == nil {
		return "", &UnknownActionError{Token: token}
	}
	return resolver.registry.ResolveAlias(strings.TrimSpace(token))
}
