package effectchain

import (
	"errors"
	"fmt"
	"maps"
	"slices"
)

// Factory builds the runtime for one node.
type Factory func(ctx Context) (Runtime, error)

var (
	// ErrDuplicateEffect is returned when a type name is registered twice.
	ErrDuplicateEffect = errors.New("duplicate effect type")
	// ErrInvalidEffect is returned for an empty type name or a nil factory.
	ErrInvalidEffect = errors.New("invalid effect registration")
)

// Registry maps node type names to factories. Structural types such as
// split and sum are handled by the chain and cannot be registered.
type Registry struct {
	factories map[string]Factory
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{factories: map[string]Factory{}}
}

// Register adds factory under effectType.
func (r *Registry) Register(effectType string, factory Factory) error {
	switch {
	case effectType == "" || factory == nil:
		return fmt.Errorf("%w: type %q", ErrInvalidEffect, effectType)
	case isStructuralNodeType(effectType):
		return fmt.Errorf("%w: %q is a structural node type", ErrInvalidEffect, effectType)
	}

	if _, dup := r.factories[effectType]; dup {
		return fmt.Errorf("%w: %s", ErrDuplicateEffect, effectType)
	}

	r.factories[effectType] = factory

	return nil
}

// MustRegister is Register for package-level setup; it panics on error.
func (r *Registry) MustRegister(effectType string, factory Factory) {
	if err := r.Register(effectType, factory); err != nil {
		panic(fmt.Sprintf("effectchain: %v", err))
	}
}

// Lookup returns the factory registered under effectType.
func (r *Registry) Lookup(effectType string) (Factory, bool) {
	f, ok := r.factories[effectType]
	return f, ok
}

// Types returns the registered type names in sorted order.
func (r *Registry) Types() []string {
	return slices.Sorted(maps.Keys(r.factories))
}
