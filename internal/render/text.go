package render

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/solatis/quietrepr/internal/types"
)

// Text renders rec as Name{a: 1, b: "x"}; untyped records render as {a: 1}.
func Text(rec types.Record) string {
	var b strings.Builder
	writeRecord(&b, rec)
	return b.String()
}

func writeRecord(b *strings.Builder, rec types.Record) {
	b.WriteString(rec.DisplayName())
	b.WriteByte('{')
	for i, f := range rec.Fields {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(f.Name)
		b.WriteString(": ")
		writeValue(b, f.Value)
	}
	b.WriteByte('}')
}

func writeValue(b *strings.Builder, v any) {
	switch x := v.(type) {
	case nil:
		b.WriteString("nil")
		return
	case string:
		b.WriteString(strconv.Quote(x))
		return
	case float64:
		b.WriteString(formatFloat(x, 64))
		return
	case float32:
		b.WriteString(formatFloat(float64(x), 32))
		return
	case types.Record:
		writeRecord(b, x)
		return
	case *types.Record:
		if x == nil {
			b.WriteString("nil")
			return
		}
		writeRecord(b, *x)
		return
	case types.Tuple:
		writeSeq(b, reflect.ValueOf(x), '(', ')')
		return
	case error:
		b.WriteString(x.Error())
		return
	case fmt.Stringer:
		b.WriteString(x.String())
		return
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			b.WriteString("nil")
			return
		}
		writeValue(b, rv.Elem().Interface())
	case reflect.Slice:
		if rv.Type().Elem().Kind() == reflect.Uint8 {
			fmt.Fprintf(b, "%q", rv.Bytes())
			return
		}
		writeSeq(b, rv, '[', ']')
	case reflect.Array:
		writeSeq(b, rv, '(', ')')
	case reflect.Map, reflect.Struct:
		if rec, ok := types.FromValue(v); ok {
			writeRecord(b, rec)
			return
		}
		fmt.Fprintf(b, "%+v", v)
	default:
		fmt.Fprintf(b, "%v", v)
	}
}

func writeSeq(b *strings.Builder, rv reflect.Value, left, right byte) {
	b.WriteByte(left)
	for i := 0; i < rv.Len(); i++ {
		if i > 0 {
			b.WriteString(", ")
		}
		writeValue(b, rv.Index(i).Interface())
	}
	b.WriteByte(right)
}

// formatFloat keeps a decimal point so 0.0 does not read as an integer.
func formatFloat(f float64, bits int) string {
	s := strconv.FormatFloat(f, 'g', -1, bits)
	if strings.ContainsAny(s, ".eEIN") {
		return s
	}
	return s + ".0"
}
