package registry

import (
	"log/slog"

	"github.com/solatis/quietrepr/internal/rules"
	"github.com/solatis/quietrepr/internal/types"
)

// Entry is one override registry item: a type identifier, optionally with
// an omission input. Bare entries carry no input.
type Entry struct {
	Type  string
	Input rules.Input
	Bare  bool
}

// Bare returns an entry that resets the type to the builtin defaults.
func Bare(typeName string) Entry {
	return Entry{Type: typeName, Bare: true}
}

// With returns an entry overriding the type with in.
func With(typeName string, in rules.Input) Entry {
	return Entry{Type: typeName, Input: in}
}

// Rewritable reports whether the registry may override name.
// The untyped-mapping type always qualifies; otherwise name must be a
// record type defined in s and must not be the rule set type itself.
func Rewritable(name string, s *Scheme) bool {
	if name == types.MapTypeName {
		return true
	}
	if name == types.RuleSetTypeName {
		return false
	}
	return s != nil && s.IsRecordType(name)
}

// Normalize turns entries into per-type inputs.
// Bare entries become Resolved(rules.Defaults()); entries with an input keep
// it. Entries failing Rewritable are dropped without error. A later entry
// for the same type replaces an earlier one.
func Normalize(entries []Entry, s *Scheme) map[string]rules.Input {
	out := make(map[string]rules.Input, len(entries))
	for _, e := range entries {
		if !Rewritable(e.Type, s) {
			slog.Debug("Dropping override for non-rewritable type", "type", e.Type)
			continue
		}
		if e.Bare {
			out[e.Type] = rules.Resolved(rules.Defaults())
			continue
		}
		out[e.Type] = e.Input
	}
	return out
}

// Build creates an engine from the process-wide input, the scheme's type
// definitions and the override entries. Overrides replace a type's own input.
func Build(process rules.Input, s *Scheme, entries []Entry) *rules.Engine {
	var opts []rules.EngineOption
	defined := 0
	if s != nil {
		opts = append(opts, rules.WithDefaultSource(s))
		for _, name := range s.Names() {
			defined++
			if in := s.Input(name); in.Kind() != rules.InputEmpty {
				opts = append(opts, rules.WithTypeInput(name, in))
			}
		}
	}

	overrides := Normalize(entries, s)
	for name, in := range overrides {
		opts = append(opts, rules.WithTypeInput(name, in))
	}

	slog.Debug("Built omission engine",
		"types", defined,
		"overrides", len(overrides),
	)
	return rules.NewEngine(process, opts...)
}
