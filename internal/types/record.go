package types

import (
	"reflect"
	"sort"
)

// FromValue adapts v into a Record.
// Accepts Record, *Record, Go structs (and pointers to them) and maps with
// string keys. Struct records are typed by their Go type string and list
// exported fields in declaration order; maps are untyped with sorted keys.
// Returns false for anything else, including nil pointers.
func FromValue(v any) (Record, bool) {
	switch r := v.(type) {
	case Record:
		return r, true
	case *Record:
		if r == nil {
			return Record{}, false
		}
		return *r, true
	}

	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return Record{}, false
		}
		rv = rv.Elem()
	}

	switch rv.Kind() {
	case reflect.Struct:
		return structRecord(rv), true
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return Record{}, false
		}
		return mapRecord(rv), true
	default:
		return Record{}, false
	}
}

// GoTypeName returns the record type identifier used for a Go struct type.
func GoTypeName(t reflect.Type) string {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t.String()
}

func structRecord(rv reflect.Value) Record {
	t := rv.Type()
	rec := Record{
		Type:   GoTypeName(t),
		Fields: make([]Field, 0, t.NumField()),
	}
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		if !sf.IsExported() {
			continue
		}
		rec.Fields = append(rec.Fields, Field{Name: sf.Name, Value: rv.Field(i).Interface()})
	}
	return rec
}

// mapRecord sorts keys: Go maps have no order and output must be deterministic.
func mapRecord(rv reflect.Value) Record {
	keys := make([]string, 0, rv.Len())
	byName := make(map[string]reflect.Value, rv.Len())
	iter := rv.MapRange()
	for iter.Next() {
		k := iter.Key().String()
		keys = append(keys, k)
		byName[k] = iter.Value()
	}
	sort.Strings(keys)

	rec := Record{Fields: make([]Field, 0, len(keys))}
	for _, k := range keys {
		rec.Fields = append(rec.Fields, Field{Name: k, Value: byName[k].Interface()})
	}
	return rec
}
