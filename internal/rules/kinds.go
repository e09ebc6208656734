// internal/rules/kinds.go
package rules

import (
	"reflect"

	"github.com/solatis/quietrepr/internal/types"
)

/*
 * Value classification.
 *
 * Maps an arbitrary Go value onto the small set of shapes the emptiness
 * predicates understand. Pointers and interfaces are followed; a nil one
 * classifies as kindNil.
 *
 * Shape rules:
 *   - nil slices and nil maps are empty containers, not nil values
 *   - types.Tuple and Go arrays are tuples; other slices are lists
 *   - types.Record is a typed record when it has a Type, else a mapping
 *   - Go structs are typed records
 *   - channels, funcs and complex numbers match no category
 */

type valueKind int

const (
	kindOther valueKind = iota
	kindNil
	kindInt
	kindFloat
	kindString
	kindBool
	kindList
	kindMap
	kindTuple
	kindRecord
)

var (
	recordType = reflect.TypeOf(types.Record{})
	tupleType  = reflect.TypeOf(types.Tuple(nil))
)

// classified is a value reduced to what the predicates need.
type classified struct {
	kind   valueKind
	orig   any           // value as passed in, before dereferencing
	rv     reflect.Value // dereferenced value; invalid for kindNil
	size   int           // element count for containers
	record types.Record  // set when rv holds a types.Record
	isRec  bool
}

// classify determines the shape of v.
func classify(v any) classified {
	c := classified{orig: v}
	if v == nil {
		c.kind = kindNil
		return c
	}

	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			c.kind = kindNil
			return c
		}
		rv = rv.Elem()
	}
	c.rv = rv

	switch rv.Type() {
	case recordType:
		c.record = rv.Interface().(types.Record)
		c.isRec = true
		if c.record.Typed() {
			c.kind = kindRecord
		} else {
			c.kind = kindMap
		}
		c.size = c.record.Len()
		return c
	case tupleType:
		c.kind = kindTuple
		c.size = rv.Len()
		return c
	}

	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		c.kind = kindInt
	case reflect.Float32, reflect.Float64:
		c.kind = kindFloat
	case reflect.String:
		c.kind = kindString
		c.size = rv.Len()
	case reflect.Bool:
		c.kind = kindBool
	case reflect.Slice:
		c.kind = kindList
		c.size = rv.Len()
	case reflect.Array:
		c.kind = kindTuple
		c.size = rv.Len()
	case reflect.Map:
		c.kind = kindMap
		c.size = rv.Len()
	case reflect.Struct:
		c.kind = kindRecord
	default:
		c.kind = kindOther
	}
	return c
}

// isZeroInt reports whether an integer-kind value equals 0.
func isZeroInt(rv reflect.Value) bool {
	switch rv.Kind() {
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return rv.Uint() == 0
	default:
		return rv.Int() == 0
	}
}
