package rules

import (
	"slices"
	"testing"
)

func TestResolve_Empty(t *testing.T) {
	base := NewRuleSet([]Category{TrueValue}, []string{"x"})
	if got := Resolve(base, Empty()); !got.Equal(base) {
		t.Errorf("Resolve(Empty) = %s, want %s", got, base)
	}
}

func TestResolve_KeyedMerge(t *testing.T) {
	in := Keyed(Overrides{Flags: map[Category]bool{
		NilValue:         false,
		ZeroIntegerValue: true,
	}})
	got := Resolve(Defaults(), in)

	if got.Omits(NilValue) {
		t.Error("nil_value should be disabled by the keyed override")
	}
	if !got.Omits(ZeroIntegerValue) {
		t.Error("zero_integer_value should be enabled by the keyed override")
	}
	if !got.Omits(EmptyString) {
		t.Error("empty_string should keep its baseline value")
	}
	if !slices.Equal(got.Except(), Defaults().Except()) {
		t.Errorf("Except() = %v, want baseline %v", got.Except(), Defaults().Except())
	}
}

func TestResolve_KeyedExcept(t *testing.T) {
	in := Keyed(Overrides{Except: []string{"password"}, HasExcept: true})
	got := Resolve(Defaults(), in)

	if !slices.Equal(got.Except(), []string{"password"}) {
		t.Errorf("Except() = %v, want [password]", got.Except())
	}
	if got.HidesTypeTag() {
		t.Error("replacing except should stop hiding the type tag")
	}
}

func TestResolve_KeyedDoesNotAliasOverrides(t *testing.T) {
	flags := map[Category]bool{NilValue: false}
	in := Keyed(Overrides{Flags: flags})
	flags[NilValue] = true

	if Resolve(Defaults(), in).Omits(NilValue) {
		t.Error("Keyed should copy its flags")
	}
}

func TestResolve_NamesIsDestructive(t *testing.T) {
	got := Resolve(Defaults(), Names(FalseValue, TrueValue))

	enabled := got.Enabled()
	if !slices.Equal(enabled, []Category{TrueValue, FalseValue}) {
		t.Errorf("Enabled() = %v, want [true_value false_value]", enabled)
	}
	if len(got.Except()) != 0 {
		t.Errorf("Except() = %v, want empty", got.Except())
	}
}

func TestResolve_ResolvedShortCircuits(t *testing.T) {
	fixed := NewRuleSet([]Category{EmptyTuple}, []string{"id"})
	got := Resolve(NewRuleSet([]Category{NilValue}, nil), Resolved(fixed))
	if !got.Equal(fixed) {
		t.Errorf("Resolve(Resolved) = %s, want %s", got, fixed)
	}
}

func TestResolveLayers(t *testing.T) {
	process := Keyed(Overrides{Flags: map[Category]bool{FalseValue: true}})
	perCall := Keyed(Overrides{Flags: map[Category]bool{NilValue: false}})

	got := ResolveLayers(process, perCall)
	if !got.Omits(FalseValue) {
		t.Error("process layer lost")
	}
	if got.Omits(NilValue) {
		t.Error("per-call layer lost")
	}
	if !got.Omits(EmptyString) {
		t.Error("builtin default lost")
	}
}

func TestParseInput(t *testing.T) {
	tests := []struct {
		name      string
		raw       any
		kind      InputKind
		flags     map[Category]bool
		names     []Category
		except    []string
		hasExcept bool
	}{
		{name: "nil", raw: nil, kind: InputEmpty},
		{name: "blank string", raw: "  ", kind: InputEmpty},
		{name: "unsupported", raw: 42, kind: InputEmpty},
		{
			name:  "comma string",
			raw:   "nil_value, bogus ,TRUE_VALUE",
			kind:  InputNames,
			names: []Category{NilValue, TrueValue},
		},
		{
			name:  "string slice",
			raw:   []string{"empty_list"},
			kind:  InputNames,
			names: []Category{EmptyList},
		},
		{
			name:  "any slice skips non-strings",
			raw:   []any{"false_value", 3, "empty_map"},
			kind:  InputNames,
			names: []Category{FalseValue, EmptyMap},
		},
		{
			name: "keyed map",
			raw: map[string]any{
				"nil_value":    false,
				"empty_string": "yes",
				"bogus":        true,
				"except":       "a, b",
			},
			kind:      InputKeyed,
			flags:     map[Category]bool{NilValue: false},
			except:    []string{"a", "b"},
			hasExcept: true,
		},
		{
			name:      "keyed null except",
			raw:       map[string]any{"except": nil},
			kind:      InputKeyed,
			flags:     map[Category]bool{},
			except:    []string{},
			hasExcept: true,
		},
		{
			name:  "yaml v2 map",
			raw:   map[any]any{"true_value": true, 7: true},
			kind:  InputKeyed,
			flags: map[Category]bool{TrueValue: true},
		},
		{
			name:  "bool map",
			raw:   map[string]bool{"empty_tuple": false},
			kind:  InputKeyed,
			flags: map[Category]bool{EmptyTuple: false},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := ParseInput(tt.raw)
			if in.Kind() != tt.kind {
				t.Fatalf("Kind() = %s, want %s", in.Kind(), tt.kind)
			}
			switch tt.kind {
			case InputNames:
				if got := in.Categories(); !slices.Equal(got, tt.names) {
					t.Errorf("Categories() = %v, want %v", got, tt.names)
				}
			case InputKeyed:
				o := in.Overrides()
				if len(o.Flags) != len(tt.flags) {
					t.Errorf("Flags = %v, want %v", o.Flags, tt.flags)
				}
				for c, v := range tt.flags {
					if got, ok := o.Flags[c]; !ok || got != v {
						t.Errorf("Flags[%s] = %v, %v; want %v", c, got, ok, v)
					}
				}
				if o.HasExcept != tt.hasExcept {
					t.Errorf("HasExcept = %v, want %v", o.HasExcept, tt.hasExcept)
				}
				if tt.hasExcept && !slices.Equal(o.Except, tt.except) {
					t.Errorf("Except = %v, want %v", o.Except, tt.except)
				}
			}
		})
	}
}

func TestParseInput_PassThrough(t *testing.T) {
	rs := NewRuleSet([]Category{TrueValue}, nil)
	if in := ParseInput(rs); in.Kind() != InputResolved || !Resolve(Defaults(), in).Equal(rs) {
		t.Errorf("ParseInput(RuleSet) should produce a Resolved input")
	}

	names := Names(NilValue)
	if in := ParseInput(names); in.Kind() != InputNames {
		t.Errorf("ParseInput(Input) kind = %s, want names", in.Kind())
	}
}
