// internal/rules/equal.go
package rules

import (
	"errors"
	"reflect"

	"github.com/solatis/quietrepr/internal/types"
)

/*
 * Default instances and structural equality for empty_struct.
 *
 * A typed record is empty when every one of its fields equals the same field
 * of a default-constructed instance of its own type. The default instance is
 * looked up in order:
 *   1. the value implements types.Defaulter
 *   2. the DefaultSource knows the type identifier
 *   3. Go structs only: the zero value of the struct type
 *
 * Failure is fail-open. A type that cannot produce a default (error, panic,
 * or a typed Record with no registered definition) classifies as not empty,
 * so the field stays visible.
 *
 * Equality is by value and recursive: numbers compare across Go kinds (config
 * files decode to int, YAML sources to int64), records field by field, lists
 * and tuples element-wise, maps key-wise. A nested record inside the default
 * is compared by equality, not by re-running the emptiness predicates.
 */

// DefaultSource supplies default instances by record type identifier.
// Implementations return an error wrapping types.ErrUnknownType for types
// they do not define.
type DefaultSource interface {
	DefaultFor(typeName string) (any, error)
}

// isDefaultInstance reports whether a typed record equals its type's default.
func isDefaultInstance(cv classified, src DefaultSource) (empty bool) {
	defer func() {
		if r := recover(); r != nil {
			empty = false
		}
	}()

	def, ok := defaultInstance(cv, src)
	if !ok {
		return false
	}
	return sameAsDefault(cv, def)
}

// defaultInstance builds the default for the candidate's type.
func defaultInstance(cv classified, src DefaultSource) (any, bool) {
	if d, ok := asDefaulter(cv); ok {
		def, err := d.Default()
		if err != nil {
			return nil, false
		}
		return def, true
	}

	if src != nil {
		def, err := src.DefaultFor(recordTypeName(cv))
		if err == nil {
			return def, true
		}
		if !errors.Is(err, types.ErrUnknownType) {
			return nil, false
		}
	}

	if cv.isRec {
		return nil, false
	}
	return reflect.Zero(cv.rv.Type()).Interface(), true
}

// asDefaulter checks the value as passed, then its pointer form, so both
// value and pointer receivers are found.
func asDefaulter(cv classified) (types.Defaulter, bool) {
	if d, ok := cv.orig.(types.Defaulter); ok {
		return d, true
	}
	if cv.isRec {
		return nil, false
	}
	if d, ok := cv.rv.Interface().(types.Defaulter); ok {
		return d, true
	}
	ptr := reflect.New(cv.rv.Type())
	ptr.Elem().Set(cv.rv)
	if d, ok := ptr.Interface().(types.Defaulter); ok {
		return d, true
	}
	return nil, false
}

func recordTypeName(cv classified) string {
	if cv.isRec {
		return cv.record.Type
	}
	return types.GoTypeName(cv.rv.Type())
}

// sameAsDefault compares the candidate against def field by field. Every
// field of the default must be present in the candidate and the reverse, so
// a partial record is never the default instance.
func sameAsDefault(cv classified, def any) bool {
	if !cv.isRec && opaqueStruct(cv.rv) {
		dv := reflect.ValueOf(def)
		for dv.Kind() == reflect.Pointer || dv.Kind() == reflect.Interface {
			if dv.IsNil() {
				return false
			}
			dv = dv.Elem()
		}
		return dv.IsValid() && dv.Type() == cv.rv.Type() &&
			reflect.DeepEqual(cv.rv.Interface(), dv.Interface())
	}

	var cand types.Record
	if cv.isRec {
		cand = cv.record
	} else {
		var ok bool
		if cand, ok = types.FromValue(cv.rv.Interface()); !ok {
			return false
		}
	}
	defRec, ok := types.FromValue(def)
	if !ok {
		return false
	}
	return fieldsEqual(cand, defRec)
}

// Equal reports structural value equality of a and b.
func Equal(a, b any) bool {
	ca, cb := classify(a), classify(b)
	if ca.kind == kindNil || cb.kind == kindNil {
		return ca.kind == cb.kind
	}

	if isNumber(ca) || isNumber(cb) {
		return isNumber(ca) && isNumber(cb) && numbersEqual(ca.rv, cb.rv)
	}
	if ca.kind != cb.kind {
		return false
	}

	switch ca.kind {
	case kindString:
		return ca.rv.String() == cb.rv.String()
	case kindBool:
		return ca.rv.Bool() == cb.rv.Bool()
	case kindList, kindTuple:
		if ca.size != cb.size {
			return false
		}
		for i := 0; i < ca.size; i++ {
			if !Equal(ca.rv.Index(i).Interface(), cb.rv.Index(i).Interface()) {
				return false
			}
		}
		return true
	case kindMap, kindRecord:
		if !ca.isRec && opaqueStruct(ca.rv) {
			return !cb.isRec && cb.rv.Type() == ca.rv.Type() &&
				reflect.DeepEqual(ca.rv.Interface(), cb.rv.Interface())
		}
		ra, oka := types.FromValue(ca.rv.Interface())
		rb, okb := types.FromValue(cb.rv.Interface())
		if !oka || !okb {
			return reflect.DeepEqual(ca.rv.Interface(), cb.rv.Interface())
		}
		return recordsEqual(ra, rb)
	default:
		return reflect.DeepEqual(ca.rv.Interface(), cb.rv.Interface())
	}
}

// recordsEqual compares type names and fields by name, ignoring field order.
func recordsEqual(a, b types.Record) bool {
	return a.Type == b.Type && fieldsEqual(a, b)
}

// fieldsEqual compares fields by name, ignoring order and the type tag.
func fieldsEqual(a, b types.Record) bool {
	if a.Len() != b.Len() {
		return false
	}
	for _, f := range a.Fields {
		if f.Name == types.TypeTagField {
			continue
		}
		bv, ok := b.Get(f.Name)
		if !ok || !Equal(f.Value, bv) {
			return false
		}
	}
	return true
}

// opaqueStruct reports whether rv is a struct whose state is all unexported,
// such as time.Time. Field-wise comparison would see no fields at all.
func opaqueStruct(rv reflect.Value) bool {
	if rv.Kind() != reflect.Struct || rv.NumField() == 0 {
		return false
	}
	t := rv.Type()
	for i := 0; i < t.NumField(); i++ {
		if t.Field(i).IsExported() {
			return false
		}
	}
	return true
}

func isNumber(cv classified) bool {
	return cv.kind == kindInt || cv.kind == kindFloat
}

// numbersEqual handles int/uint/float mixing; ints compare exactly.
func numbersEqual(a, b reflect.Value) bool {
	ai, aSigned, aInt := intValue(a)
	bi, bSigned, bInt := intValue(b)
	if aInt && bInt {
		switch {
		case aSigned && bSigned:
			return ai.i == bi.i
		case !aSigned && !bSigned:
			return ai.u == bi.u
		case aSigned:
			return ai.i >= 0 && uint64(ai.i) == bi.u
		default:
			return bi.i >= 0 && uint64(bi.i) == ai.u
		}
	}
	return toFloat64(a) == toFloat64(b)
}

type intParts struct {
	i int64
	u uint64
}

func intValue(rv reflect.Value) (intParts, bool, bool) {
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return intParts{i: rv.Int()}, true, true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return intParts{u: rv.Uint()}, false, true
	default:
		return intParts{}, false, false
	}
}

func toFloat64(rv reflect.Value) float64 {
	switch rv.Kind() {
	case reflect.Float32, reflect.Float64:
		return rv.Float()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int())
	default:
		return float64(rv.Uint())
	}
}
