package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/solatis/quietrepr/internal/registry"
	"github.com/solatis/quietrepr/internal/render"
	"github.com/solatis/quietrepr/internal/rules"
	"github.com/solatis/quietrepr/internal/source"
	"github.com/solatis/quietrepr/internal/types"
)

// LoadConfig loads configuration from file using viper.
// CLI flags > environment > config file > defaults precedence.
func LoadConfig(configPath string) (*Config, error) {
	v := viper.New()

	// Set defaults matching DefaultConfig
	v.SetDefault("render.format", "text")

	// Bind environment variables with QR_ prefix
	v.SetEnvPrefix("QR")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Load config file if provided
	var fileDefaults map[string]types.Record
	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		fileDefaults = typeDefaultsFromFile(configPath)
	}

	format, err := render.ParseFormat(v.GetString("render.format"))
	if err != nil {
		return nil, err
	}

	typeConfigs, err := parseTypes(v.Get("types"), fileDefaults)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		// Malformed omit shapes degrade to Empty inside ParseInput
		Omit:      rules.ParseInput(v.Get("omit")),
		Render:    RenderConfig{Format: format},
		Types:     typeConfigs,
		Overrides: parseOverrides(v.Get("overrides")),
	}

	if err := validateConfig(cfg); err != nil {
		return nil, err
	}

	slog.Debug("Loaded configuration",
		"omit", cfg.Omit.Kind().String(),
		"types", len(cfg.Types),
		"overrides", len(cfg.Overrides),
		"format", cfg.Render.Format.String(),
	)
	return cfg, nil
}

// validateConfig rejects reserved and duplicate type names.
func validateConfig(cfg *Config) error {
	seen := make(map[string]bool, len(cfg.Types))
	for _, tc := range cfg.Types {
		if tc.Name == types.MapTypeName || tc.Name == types.RuleSetTypeName {
			return fmt.Errorf("type name %q is reserved", tc.Name)
		}
		if seen[tc.Name] {
			return fmt.Errorf("type %q defined more than once", tc.Name)
		}
		seen[tc.Name] = true
	}
	return nil
}

// parseTypes reads the "types" list. Each item needs a name; defaults and
// omit are optional. Defaults found in fileDefaults win over viper's copy,
// whose keys are lowercased.
func parseTypes(raw any, fileDefaults map[string]types.Record) ([]TypeConfig, error) {
	if raw == nil {
		return nil, nil
	}
	items, ok := raw.([]any)
	if !ok {
		return nil, fmt.Errorf("types must be a list, got %T", raw)
	}

	out := make([]TypeConfig, 0, len(items))
	for i, item := range items {
		m, ok := stringMap(item)
		if !ok {
			return nil, fmt.Errorf("types[%d] must be a mapping, got %T", i, item)
		}
		name, _ := m["name"].(string)
		if name == "" {
			return nil, fmt.Errorf("types[%d]: name is required", i)
		}

		tc := TypeConfig{Name: name, Omit: rules.ParseInput(m["omit"])}
		if rec, ok := fileDefaults[name]; ok {
			tc.Defaults = types.Record{Type: name, Fields: rec.Fields}
		} else if d, ok := stringMap(m["defaults"]); ok {
			rec, _ := types.FromValue(d)
			tc.Defaults = types.Record{Type: name, Fields: rec.Fields}
		} else {
			tc.Defaults = types.Record{Type: name}
		}
		out = append(out, tc)
	}
	return out, nil
}

// typeDefaultsFromFile decodes types[].defaults from the raw YAML (or JSON)
// file, keeping field name case and order. Other formats return nil and the
// viper values are used as they are.
func typeDefaultsFromFile(path string) map[string]types.Record {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil
	}
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil || len(doc.Content) == 0 {
		slog.Debug("Config file is not YAML; type defaults keep viper key case", "path", path)
		return nil
	}

	items := mappingValue(doc.Content[0], "types")
	if items == nil || items.Kind != yaml.SequenceNode {
		return nil
	}
	out := make(map[string]types.Record, len(items.Content))
	for _, item := range items.Content {
		name := mappingValue(item, "name")
		defaults := mappingValue(item, "defaults")
		if name == nil || defaults == nil || defaults.Kind != yaml.MappingNode {
			continue
		}
		rec, err := source.RecordFromNode(defaults)
		if err != nil {
			slog.Warn("Ignoring type defaults", "type", name.Value, "error", err)
			continue
		}
		out[name.Value] = rec
	}
	return out
}

// mappingValue returns the value node for key in a mapping node.
func mappingValue(n *yaml.Node, key string) *yaml.Node {
	if n == nil || n.Kind != yaml.MappingNode {
		return nil
	}
	for i := 0; i+1 < len(n.Content); i += 2 {
		if n.Content[i].Value == key {
			return n.Content[i+1]
		}
	}
	return nil
}

// parseOverrides reads the "overrides" list. A string item is a bare type
// identifier; a mapping item has a name and an optional omit input.
// Unusable items are skipped: malformed overrides must not stop rendering.
func parseOverrides(raw any) []registry.Entry {
	items, ok := raw.([]any)
	if !ok {
		if raw != nil {
			slog.Warn("Ignoring overrides: expected a list", "got", fmt.Sprintf("%T", raw))
		}
		return nil
	}

	out := make([]registry.Entry, 0, len(items))
	for i, item := range items {
		switch x := item.(type) {
		case string:
			out = append(out, registry.Bare(x))
		default:
			m, ok := stringMap(x)
			if !ok {
				slog.Warn("Ignoring override entry", "index", i, "got", fmt.Sprintf("%T", item))
				continue
			}
			name, _ := m["name"].(string)
			if name == "" {
				slog.Warn("Ignoring override entry without name", "index", i)
				continue
			}
			omit, present := m["omit"]
			if !present {
				out = append(out, registry.Bare(name))
				continue
			}
			out = append(out, registry.With(name, rules.ParseInput(omit)))
		}
	}
	return out
}

// stringMap accepts both map shapes viper and yaml produce.
func stringMap(raw any) (map[string]any, bool) {
	switch m := raw.(type) {
	case map[string]any:
		return m, true
	case map[any]any:
		out := make(map[string]any, len(m))
		for k, v := range m {
			out[fmt.Sprint(k)] = v
		}
		return out, true
	default:
		return nil, false
	}
}
