package render

import (
	"bytes"
	"encoding/json"
	"fmt"
	"reflect"

	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/solatis/quietrepr/internal/types"
)

// ProtoJSON renders rec as {"type": <name>, "fields": {...}} through
// structpb and protojson. JSON objects are unordered; use Text when field
// order matters.
func ProtoJSON(rec types.Record) ([]byte, error) {
	fields, err := ToStruct(rec)
	if err != nil {
		return nil, err
	}
	envelope := &structpb.Struct{Fields: map[string]*structpb.Value{
		"type":   structpb.NewStringValue(rec.DisplayName()),
		"fields": structpb.NewStructValue(fields),
	}}
	data, err := protojson.Marshal(envelope)
	if err != nil {
		return nil, fmt.Errorf("marshal record: %w", err)
	}
	return data, nil
}

// ToStruct converts the record's fields into a structpb.Struct.
func ToStruct(rec types.Record) (*structpb.Struct, error) {
	s := &structpb.Struct{Fields: make(map[string]*structpb.Value, len(rec.Fields))}
	for _, f := range rec.Fields {
		v, err := toValue(f.Value)
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", f.Name, err)
		}
		s.Fields[f.Name] = v
	}
	return s, nil
}

// toValue maps v onto a structpb.Value.
// Nested typed records keep their type under the tag field.
func toValue(v any) (*structpb.Value, error) {
	switch x := v.(type) {
	case nil:
		return structpb.NewNullValue(), nil
	case types.Record:
		return recordValue(x)
	case *types.Record:
		if x == nil {
			return structpb.NewNullValue(), nil
		}
		return recordValue(*x)
	case types.Tuple:
		return listValue(reflect.ValueOf(x))
	case []any:
		return listValue(reflect.ValueOf(x))
	case map[string]any:
		rec, _ := types.FromValue(x)
		return recordValue(rec)
	}

	// value may be simply mappable to a structpb.Value.
	if nv, err := structpb.NewValue(v); err == nil {
		return nv, nil
	}

	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Pointer && rv.IsNil() {
		return structpb.NewNullValue(), nil
	}
	if rv.Kind() == reflect.Array {
		return listValue(rv)
	}
	return asJSON(v)
}

func recordValue(rec types.Record) (*structpb.Value, error) {
	s, err := ToStruct(rec)
	if err != nil {
		return nil, err
	}
	if rec.Typed() {
		if _, ok := s.Fields[types.TypeTagField]; !ok {
			s.Fields[types.TypeTagField] = structpb.NewStringValue(rec.Type)
		}
	}
	return structpb.NewStructValue(s), nil
}

func listValue(rv reflect.Value) (*structpb.Value, error) {
	l := &structpb.ListValue{Values: make([]*structpb.Value, 0, rv.Len())}
	for i := 0; i < rv.Len(); i++ {
		ev, err := toValue(rv.Index(i).Interface())
		if err != nil {
			return nil, err
		}
		l.Values = append(l.Values, ev)
	}
	return structpb.NewListValue(l), nil
}

// asJSON round-trips v through encoding/json for types structpb cannot map.
func asJSON(v any) (*structpb.Value, error) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(v); err != nil {
		return nil, fmt.Errorf("encode %T: %w", v, err)
	}
	var generic any
	if err := json.Unmarshal(buf.Bytes(), &generic); err != nil {
		return nil, fmt.Errorf("decode %T: %w", v, err)
	}
	return structpb.NewValue(generic)
}
