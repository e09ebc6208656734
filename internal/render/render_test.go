package render

import (
	"bytes"
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/solatis/quietrepr/internal/types"
)

type point struct {
	X, Y int
}

type level int

func (l level) String() string { return "level-" + string(rune('0'+int(l))) }

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"", FormatText, false},
		{"text", FormatText, false},
		{" JSON ", FormatJSON, false},
		{"xml", 0, true},
	}

	for _, tt := range tests {
		got, err := ParseFormat(tt.in)
		if tt.wantErr {
			assert.Error(t, err, "ParseFormat(%q)", tt.in)
			continue
		}
		require.NoError(t, err)
		assert.Equal(t, tt.want, got)
	}
	assert.Equal(t, "json", FormatJSON.String())
	assert.Equal(t, "unknown", Format(9).String())
}

func TestText(t *testing.T) {
	var nilPtr *int
	tests := []struct {
		name string
		rec  types.Record
		want string
	}{
		{
			name: "typed",
			rec: types.Record{Type: "User", Fields: []types.Field{
				{Name: "id", Value: 1},
				{Name: "name", Value: "Gemini"},
			}},
			want: `User{id: 1, name: "Gemini"}`,
		},
		{
			name: "untyped",
			rec:  types.Record{Fields: []types.Field{{Name: "a", Value: true}}},
			want: `{a: true}`,
		},
		{
			name: "empty",
			rec:  types.Record{Type: "Empty"},
			want: `Empty{}`,
		},
		{
			name: "tag kept",
			rec: types.Record{Type: "T", Fields: []types.Field{
				{Name: types.TypeTagField, Value: "T"},
				{Name: "x", Value: nil},
			}},
			want: `T{__type__: "T", x: nil}`,
		},
		{
			name: "floats",
			rec: types.Record{Fields: []types.Field{
				{Name: "zero", Value: 0.0},
				{Name: "neg", Value: math.Copysign(0, -1)},
				{Name: "half", Value: float32(0.5)},
				{Name: "big", Value: 1e21},
				{Name: "inf", Value: math.Inf(1)},
			}},
			want: `{zero: 0.0, neg: -0.0, half: 0.5, big: 1e+21, inf: +Inf}`,
		},
		{
			name: "containers",
			rec: types.Record{Fields: []types.Field{
				{Name: "list", Value: []any{1, "a"}},
				{Name: "tuple", Value: types.Tuple{1, 2}},
				{Name: "array", Value: [2]int{3, 4}},
				{Name: "bytes", Value: []byte("hi")},
				{Name: "map", Value: map[string]int{"b": 2, "a": 1}},
			}},
			want: `{list: [1, "a"], tuple: (1, 2), array: (3, 4), bytes: "hi", map: {a: 1, b: 2}}`,
		},
		{
			name: "nested",
			rec: types.Record{Type: "Shape", Fields: []types.Field{
				{Name: "at", Value: types.Record{Type: "Point", Fields: []types.Field{{Name: "x", Value: 0}}}},
				{Name: "go", Value: point{X: 1}},
				{Name: "ptr", Value: &point{Y: 2}},
				{Name: "nilptr", Value: nilPtr},
			}},
			want: `Shape{at: Point{x: 0}, go: render.point{X: 1, Y: 0}, ptr: render.point{X: 0, Y: 2}, nilptr: nil}`,
		},
		{
			name: "stringer and error",
			rec: types.Record{Fields: []types.Field{
				{Name: "lvl", Value: level(3)},
				{Name: "err", Value: errors.New("boom")},
			}},
			want: `{lvl: level-3, err: boom}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Text(tt.rec))
		})
	}
}

func decodeEnvelope(t *testing.T, data []byte) *structpb.Struct {
	t.Helper()
	var s structpb.Struct
	require.NoError(t, protojson.Unmarshal(data, &s))
	return &s
}

func TestProtoJSON(t *testing.T) {
	rec := types.Record{Type: "User", Fields: []types.Field{
		{Name: "id", Value: int64(7)},
		{Name: "name", Value: "Gemini"},
		{Name: "tags", Value: []any{"a", "b"}},
		{Name: "pos", Value: types.Tuple{1, 2}},
		{Name: "home", Value: types.Record{Type: "Address", Fields: []types.Field{{Name: "zip", Value: 1000}}}},
		{Name: "meta", Value: map[string]any{"k": true}},
		{Name: "bio", Value: nil},
		{Name: "at", Value: point{X: 3}},
	}}

	data, err := ProtoJSON(rec)
	require.NoError(t, err)

	env := decodeEnvelope(t, data)
	assert.Equal(t, "User", env.Fields["type"].GetStringValue())

	fields := env.Fields["fields"].GetStructValue().AsMap()
	assert.Equal(t, float64(7), fields["id"])
	assert.Equal(t, "Gemini", fields["name"])
	assert.Equal(t, []any{"a", "b"}, fields["tags"])
	assert.Equal(t, []any{float64(1), float64(2)}, fields["pos"])
	assert.Equal(t, map[string]any{"zip": float64(1000), types.TypeTagField: "Address"}, fields["home"])
	assert.Equal(t, map[string]any{"k": true}, fields["meta"])
	assert.Nil(t, fields["bio"])
	assert.Contains(t, fields, "bio")
	assert.Equal(t, map[string]any{"X": float64(3), "Y": float64(0)}, fields["at"])
}

func TestProtoJSON_Untyped(t *testing.T) {
	data, err := ProtoJSON(types.Record{Fields: []types.Field{{Name: "a", Value: 1}}})
	require.NoError(t, err)

	env := decodeEnvelope(t, data)
	assert.Equal(t, "", env.Fields["type"].GetStringValue())
	assert.Equal(t, map[string]any{"a": float64(1)}, env.Fields["fields"].GetStructValue().AsMap())
}

func TestRender(t *testing.T) {
	rec := types.Record{Type: "T", Fields: []types.Field{{Name: "a", Value: 1}}}

	var text bytes.Buffer
	require.NoError(t, Render(&text, FormatText, rec))
	assert.Equal(t, "T{a: 1}\n", text.String())

	var js bytes.Buffer
	require.NoError(t, Render(&js, FormatJSON, rec))
	out := js.Bytes()
	require.NotEmpty(t, out)
	assert.Equal(t, byte('\n'), out[len(out)-1])
	decodeEnvelope(t, out[:len(out)-1])
}
