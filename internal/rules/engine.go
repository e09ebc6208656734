package rules

import "github.com/solatis/quietrepr/internal/types"

// Engine filters records with the rule set resolved for their type.
// Per-type rule sets are resolved once at construction
// (defaults, then the process-wide input, then the type's input); an Engine
// is never modified afterwards and is safe for concurrent use.
type Engine struct {
	baseline RuleSet
	perType  map[string]RuleSet
	defaults DefaultSource
}

// EngineOption configures NewEngine.
type EngineOption func(*engineConfig)

type engineConfig struct {
	typeInputs map[string]Input
	defaults   DefaultSource
}

// WithTypeInput sets the per-type layer for records of the named type.
// Use types.MapTypeName for untyped records. Later calls for the same name win.
func WithTypeInput(name string, in Input) EngineOption {
	return func(c *engineConfig) {
		c.typeInputs[name] = in
	}
}

// WithDefaultSource supplies default instances for empty_struct checks.
func WithDefaultSource(src DefaultSource) EngineOption {
	return func(c *engineConfig) {
		c.defaults = src
	}
}

// NewEngine creates an engine with the given process-wide configuration layer.
func NewEngine(process Input, opts ...EngineOption) *Engine {
	cfg := engineConfig{typeInputs: make(map[string]Input)}
	for _, opt := range opts {
		opt(&cfg)
	}

	baseline := Resolve(Defaults(), process)
	perType := make(map[string]RuleSet, len(cfg.typeInputs))
	for name, in := range cfg.typeInputs {
		perType[name] = Resolve(baseline, in)
	}

	return &Engine{
		baseline: baseline,
		perType:  perType,
		defaults: cfg.defaults,
	}
}

// Baseline returns the rule set used for types without their own layer.
func (e *Engine) Baseline() RuleSet {
	return e.baseline
}

// RulesFor returns the effective rule set for a type identifier.
// The empty name selects the untyped-mapping rules.
func (e *Engine) RulesFor(typeName string) RuleSet {
	if typeName == "" {
		typeName = types.MapTypeName
	}
	if rs, ok := e.perType[typeName]; ok {
		return rs
	}
	return e.baseline
}

// Filter returns rec with only the fields its type's rules keep.
// The type tag, when kept, stays in Fields as the first pair.
func (e *Engine) Filter(rec types.Record) types.Record {
	return e.FilterWith(rec)
}

// FilterWith applies extra per-call layers, in order, over the type's rules.
func (e *Engine) FilterWith(rec types.Record, extra ...Input) types.Record {
	rs := e.RulesFor(rec.Type)
	for _, in := range extra {
		rs = Resolve(rs, in)
	}
	return types.Record{
		Type:   rec.Type,
		Fields: Filter(rec.Pairs(), rs, WithDefaults(e.defaults)),
	}
}

// FilterValue adapts v with types.FromValue and filters it.
// Returns false when v is not record-like.
func (e *Engine) FilterValue(v any) (types.Record, bool) {
	rec, ok := types.FromValue(v)
	if !ok {
		return types.Record{}, false
	}
	return e.Filter(rec), true
}
