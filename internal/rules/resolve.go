// internal/rules/resolve.go
package rules

import (
	"slices"
	"strings"
)

/*
 * Rule set resolution.
 *
 * Merges one configuration layer (an Input) over a baseline RuleSet. The
 * system resolves three layers in order: builtin defaults, process-wide
 * configuration, per-type input.
 *
 * Input shapes:
 *   - Empty: baseline unchanged
 *   - Keyed: additive merge, present keys overwrite, absent keys keep baseline
 *   - Names: destructive, exactly the named categories are enabled and the
 *     exclude list is reset
 *   - Resolved: a complete RuleSet, short-circuits the baseline
 *
 * Resolve is total. Unknown kinds behave as Empty and unknown categories are
 * ignored: configuration mistakes degrade to defaults instead of failing the
 * rendering that depends on them.
 */

// InputKind discriminates the Input variants.
type InputKind int

const (
	InputEmpty InputKind = iota
	InputKeyed
	InputNames
	InputResolved
)

// String returns a short name for diagnostics.
func (k InputKind) String() string {
	switch k {
	case InputEmpty:
		return "empty"
	case InputKeyed:
		return "keyed"
	case InputNames:
		return "names"
	case InputResolved:
		return "resolved"
	default:
		return "unknown"
	}
}

// Overrides is the payload of a keyed input.
type Overrides struct {
	Flags     map[Category]bool
	Except    []string
	HasExcept bool // disambiguates an explicit empty except from an absent one
}

// Input is one configuration layer. Build it with Empty, Keyed, Names or Resolved.
type Input struct {
	kind      InputKind
	overrides Overrides
	names     []Category
	resolved  RuleSet
}

// Empty returns the identity input.
func Empty() Input {
	return Input{kind: InputEmpty}
}

// Keyed returns an additive-merge input.
func Keyed(o Overrides) Input {
	cp := Overrides{
		Flags:     make(map[Category]bool, len(o.Flags)),
		Except:    slices.Clone(o.Except),
		HasExcept: o.HasExcept,
	}
	for c, v := range o.Flags {
		cp.Flags[c] = v
	}
	return Input{kind: InputKeyed, overrides: cp}
}

// Names returns a destructive input enabling exactly the given categories.
func Names(names ...Category) Input {
	return Input{kind: InputNames, names: slices.Clone(names)}
}

// Resolved returns an input that replaces the baseline with rs.
func Resolved(rs RuleSet) Input {
	return Input{kind: InputResolved, resolved: rs}
}

// Kind returns the variant of the input.
func (in Input) Kind() InputKind {
	return in.kind
}

// Overrides returns the keyed payload; zero for other kinds.
func (in Input) Overrides() Overrides {
	return in.overrides
}

// Categories returns the names-only payload; nil for other kinds.
func (in Input) Categories() []Category {
	return slices.Clone(in.names)
}

// Resolve merges in over baseline and returns the resulting rule set.
func Resolve(baseline RuleSet, in Input) RuleSet {
	switch in.kind {
	case InputEmpty:
		return baseline
	case InputResolved:
		return in.resolved
	case InputKeyed:
		return resolveKeyed(baseline, in.overrides)
	case InputNames:
		return NewRuleSet(in.names, nil)
	default:
		return baseline
	}
}

// ResolveLayers resolves the full chain: defaults, process-wide, per-call.
func ResolveLayers(process, perCall Input) RuleSet {
	return Resolve(Resolve(Defaults(), process), perCall)
}

// resolveKeyed overwrites each present key. Keys outside the category
// range are ignored.
func resolveKeyed(baseline RuleSet, o Overrides) RuleSet {
	out := baseline.clone()
	for c, on := range o.Flags {
		if !c.Valid() {
			continue
		}
		out.flags[c] = on
	}
	if o.HasExcept {
		out.except = slices.Clone(o.Except)
	}
	return out
}

// ParseInput converts a loosely typed configuration value into an Input.
//
//	nil                         -> Empty
//	map[string]any              -> Keyed (bool values only; "except" takes a list or a comma-separated string)
//	[]any, []string             -> Names
//	string                      -> Names, comma-separated (blank -> Empty)
//	RuleSet                     -> Resolved
//	Input                       -> returned as is
//	anything else               -> Empty
func ParseInput(raw any) Input {
	switch v := raw.(type) {
	case nil:
		return Empty()
	case Input:
		return v
	case RuleSet:
		return Resolved(v)
	case map[string]any:
		return parseKeyed(v)
	case map[any]any:
		m := make(map[string]any, len(v))
		for k, val := range v {
			if ks, ok := k.(string); ok {
				m[ks] = val
			}
		}
		return parseKeyed(m)
	case map[string]bool:
		m := make(map[string]any, len(v))
		for k, val := range v {
			m[k] = val
		}
		return parseKeyed(m)
	case []string:
		return Names(parseNames(v)...)
	case []any:
		return Names(parseNames(stringsOf(v))...)
	case string:
		if strings.TrimSpace(v) == "" {
			return Empty()
		}
		return Names(parseNames(splitList(v))...)
	default:
		return Empty()
	}
}

func parseKeyed(m map[string]any) Input {
	o := Overrides{Flags: make(map[Category]bool, len(m))}
	for key, val := range m {
		if key == "except" {
			if names, ok := exceptList(val); ok {
				o.Except = names
				o.HasExcept = true
			}
			continue
		}
		c, ok := ParseCategory(strings.ToLower(strings.TrimSpace(key)))
		if !ok {
			continue
		}
		on, ok := val.(bool)
		if !ok {
			continue
		}
		o.Flags[c] = on
	}
	return Keyed(o)
}

func exceptList(val any) ([]string, bool) {
	switch v := val.(type) {
	case nil:
		return []string{}, true
	case []string:
		return slices.Clone(v), true
	case []any:
		return stringsOf(v), true
	case string:
		return splitList(v), true
	default:
		return nil, false
	}
}

func parseNames(names []string) []Category {
	out := make([]Category, 0, len(names))
	for _, n := range names {
		if c, ok := ParseCategory(strings.ToLower(strings.TrimSpace(n))); ok {
			out = append(out, c)
		}
	}
	return out
}

func stringsOf(items []any) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		if s, ok := it.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

func splitList(s string) []string {
	out := []string{}
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
