// Package registry maps record type identifiers to their definitions and to
// rule overrides.
//
// A Scheme holds record type definitions: a factory producing the type's
// default instance and the omission input the type declared for itself.
// Override entries, typically read from configuration, rewrite the rules of
// types defined elsewhere. Build combines both into a rules.Engine.
//
// Registration happens once during process setup; lookups afterwards are
// read-only.
package registry

import (
	"fmt"
	"reflect"
	"sort"
	"sync"

	"github.com/solatis/quietrepr/internal/rules"
	"github.com/solatis/quietrepr/internal/types"
)

// Factory returns a default-constructed instance of a record type.
type Factory func() (any, error)

type definition struct {
	factory Factory
	input   rules.Input
}

// Scheme is a registry of record type definitions.
type Scheme struct {
	mu    sync.RWMutex
	types map[string]definition
}

// NewScheme creates an empty scheme.
func NewScheme() *Scheme {
	return &Scheme{types: make(map[string]definition)}
}

// Register defines a record type with its default factory and the omission
// input it declares for itself.
func (s *Scheme) Register(name string, factory Factory, in rules.Input) error {
	if name == "" {
		return fmt.Errorf("register: empty type name: %w", types.ErrUnknownType)
	}
	if factory == nil {
		return fmt.Errorf("register %q: nil factory: %w", name, types.ErrNoDefault)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.types[name]; exists {
		return fmt.Errorf("register %q: %w", name, types.ErrDuplicateType)
	}
	s.types[name] = definition{factory: factory, input: in}
	return nil
}

// MustRegister is Register that panics on error.
func (s *Scheme) MustRegister(name string, factory Factory, in rules.Input) {
	if err := s.Register(name, factory, in); err != nil {
		panic(err)
	}
}

// RegisterRecord defines a Go struct type from a prototype value.
// The identifier is the Go type string. The default instance comes from
// types.Defaulter when the prototype implements it, else the zero value.
func (s *Scheme) RegisterRecord(prototype any, in rules.Input) (string, error) {
	t := reflect.TypeOf(prototype)
	if t == nil {
		return "", fmt.Errorf("register: nil prototype: %w", types.ErrNotRewritable)
	}
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return "", fmt.Errorf("register %s: not a struct: %w", t, types.ErrNotRewritable)
	}

	name := types.GoTypeName(t)
	factory := func() (any, error) {
		zero := reflect.New(t)
		if d, ok := zero.Interface().(types.Defaulter); ok {
			return d.Default()
		}
		return zero.Elem().Interface(), nil
	}
	return name, s.Register(name, factory, in)
}

// IsRecordType reports whether name has a record definition.
func (s *Scheme) IsRecordType(name string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.types[name]
	return ok
}

// Input returns the omission input a type declared; Empty for unknown types.
func (s *Scheme) Input(name string) rules.Input {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if def, ok := s.types[name]; ok {
		return def.input
	}
	return rules.Empty()
}

// Names returns the registered identifiers, sorted.
func (s *Scheme) Names() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	names := make([]string, 0, len(s.types))
	for name := range s.types {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// DefaultFor builds the default instance of the named type.
// Implements rules.DefaultSource.
func (s *Scheme) DefaultFor(name string) (any, error) {
	s.mu.RLock()
	def, ok := s.types[name]
	s.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%q: %w", name, types.ErrUnknownType)
	}
	v, err := def.factory()
	if err != nil {
		return nil, fmt.Errorf("default %q: %w", name, err)
	}
	return v, nil
}
