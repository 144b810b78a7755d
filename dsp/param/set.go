package param

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownParameter is returned when a name does not match any parameter.
	ErrUnknownParameter = errors.New("param: unknown parameter")
	// ErrDuplicateParameter is returned when two parameters share a name.
	ErrDuplicateParameter = errors.New("param: duplicate parameter")
)

// Set is an ordered, fixed collection of parameters. The declaration order
// is stable and defines the state layout.
type Set struct {
	params []*Param
	index  map[string]int
	bypass *Param
}

// NewSet collects params in order. Names must be unique and non-empty.
func NewSet(params ...*Param) (*Set, error) {
	s := &Set{
		params: make([]*Param, 0, len(params)),
		index:  make(map[string]int, len(params)),
	}

	for _, p := range params {
		if p == nil || p.Name == "" {
			return nil, fmt.Errorf("param: parameter %d has no name", len(s.params))
		}

		if _, exists := s.index[p.Name]; exists {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateParameter, p.Name)
		}

		s.index[p.Name] = len(s.params)
		s.params = append(s.params, p)

		if p.IsBypass() && s.bypass == nil {
			s.bypass = p
		}
	}

	return s, nil
}

// MustSet is NewSet that panics on error. Use it for static declarations.
func MustSet(params ...*Param) *Set {
	s, err := NewSet(params...)
	if err != nil {
		panic(err)
	}

	return s
}

// Len returns the number of parameters.
func (s *Set) Len() int { return len(s.params) }

// At returns the i-th parameter in declaration order.
func (s *Set) At(i int) *Param { return s.params[i] }

// All returns the parameters in declaration order. The slice is shared.
func (s *Set) All() []*Param { return s.params }

// Names returns parameter names in declaration order.
func (s *Set) Names() []string {
	names := make([]string, len(s.params))
	for i, p := range s.params {
		names[i] = p.Name
	}

	return names
}

// Lookup finds a parameter by name.
func (s *Set) Lookup(name string) (*Param, bool) {
	i, ok := s.index[name]
	if !ok {
		return nil, false
	}

	return s.params[i], true
}

// Bypass returns the bypass parameter, or nil.
func (s *Set) Bypass() *Param { return s.bypass }

// Normalized returns the normalized value of name.
func (s *Set) Normalized(name string) (float64, bool) {
	p, ok := s.Lookup(name)
	if !ok {
		return 0, false
	}

	return p.Normalized(), true
}

// SetNormalized writes a normalized value, reporting whether name exists.
func (s *Set) SetNormalized(name string, n float64) bool {
	p, ok := s.Lookup(name)
	if !ok {
		return false
	}

	p.SetNormalized(n)

	return true
}

// Apply writes several normalized values. Every known name is applied; the
// returned error lists unknown names and wraps ErrUnknownParameter.
func (s *Set) Apply(values map[string]float64) error {
	var unknown []string

	for name, n := range values {
		if !s.SetNormalized(name, n) {
			unknown = append(unknown, name)
		}
	}

	if len(unknown) > 0 {
		return fmt.Errorf("%w: %v", ErrUnknownParameter, unknown)
	}

	return nil
}

// Reset restores every default.
func (s *Set) Reset() {
	for _, p := range s.params {
		p.Reset()
	}
}

// Snapshot returns the normalized values keyed by name.
func (s *Set) Snapshot() map[string]float64 {
	out := make(map[string]float64, len(s.params))
	for _, p := range s.params {
		out[p.Name] = p.Normalized()
	}

	return out
}
