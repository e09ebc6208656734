// Package types provides the record model shared across quietrepr components.
//
// Zero-dependency design: the rule engine, renderers and sources all exchange
// Records, so this package imports nothing outside the standard library.
//
// A Record is an ordered list of (name, value) pairs with an optional type
// name. Values are left as plain Go values; classification happens in
// internal/rules and never mutates what it inspects.
package types

// TypeTagField is the synthetic pseudo-field carrying a record's type name.
// Filtering handles it by name, never by value.
const TypeTagField = "__type__"

// MapTypeName identifies the universal untyped-mapping type in the override
// registry. Records with an empty Type resolve their rules under this name.
const MapTypeName = "map"

// RuleSetTypeName is the identifier of the rule set type itself.
// The override registry refuses it as a rewritable type.
const RuleSetTypeName = "quietrepr.RuleSet"

// Field is one (name, value) pair of a record.
type Field struct {
	Name  string
	Value any
}

// Record is a named, ordered collection of fields.
// Empty Type means an untyped mapping.
type Record struct {
	Type   string
	Fields []Field
}

// Tuple is a fixed-arity sequence.
// Distinct from []any so empty tuples and empty lists classify separately.
type Tuple []any

// Defaulter is implemented by record-like values that can produce a
// default-constructed instance of their own type.
// Returning an error marks the type as not default-constructible.
type Defaulter interface {
	Default() (any, error)
}

// Typed reports whether the record carries a declared type.
func (r Record) Typed() bool {
	return r.Type != ""
}

// DisplayName returns the type name, or "" for untyped mappings.
func (r Record) DisplayName() string {
	return r.Type
}

// RulesKey returns the identifier under which the record's rules are resolved.
func (r Record) RulesKey() string {
	if r.Type == "" {
		return MapTypeName
	}
	return r.Type
}

// Pairs returns the record's fields prefixed by the type tag for typed records.
// The returned slice is freshly allocated; Fields is not shared.
func (r Record) Pairs() []Field {
	pairs := make([]Field, 0, len(r.Fields)+1)
	if r.Typed() {
		pairs = append(pairs, Field{Name: TypeTagField, Value: r.Type})
	}
	for _, f := range r.Fields {
		if f.Name == TypeTagField {
			continue
		}
		pairs = append(pairs, f)
	}
	return pairs
}

// Get returns the value of the named field.
func (r Record) Get(name string) (any, bool) {
	for _, f := range r.Fields {
		if f.Name == name {
			return f.Value, true
		}
	}
	return nil, false
}

// Len returns the number of fields, excluding the type tag.
func (r Record) Len() int {
	n := 0
	for _, f := range r.Fields {
		if f.Name != TypeTagField {
			n++
		}
	}
	return n
}
