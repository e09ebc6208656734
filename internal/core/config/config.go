// Package config provides configuration management for quietrepr.
package config

import (
	"fmt"

	"github.com/solatis/quietrepr/internal/registry"
	"github.com/solatis/quietrepr/internal/render"
	"github.com/solatis/quietrepr/internal/rules"
	"github.com/solatis/quietrepr/internal/types"
)

// Config is the process-wide configuration.
type Config struct {
	// Omit is the process-wide layer, merged over the builtin defaults.
	Omit      rules.Input
	Render    RenderConfig
	Types     []TypeConfig
	Overrides []registry.Entry
}

// RenderConfig holds output settings.
type RenderConfig struct {
	Format render.Format
}

// TypeConfig defines a record type from configuration.
// Defaults is the field set of the type's default instance.
type TypeConfig struct {
	Name     string
	Defaults types.Record
	Omit     rules.Input
}

// DefaultConfig returns configuration with default values.
func DefaultConfig() *Config {
	return &Config{
		Omit: rules.Empty(),
		Render: RenderConfig{
			Format: render.FormatText,
		},
	}
}

// Scheme registers the configured record types in a new scheme.
func (c *Config) Scheme() (*registry.Scheme, error) {
	s := registry.NewScheme()
	for _, tc := range c.Types {
		def := types.Record{Type: tc.Name, Fields: append([]types.Field(nil), tc.Defaults.Fields...)}
		factory := func() (any, error) {
			return types.Record{Type: def.Type, Fields: append([]types.Field(nil), def.Fields...)}, nil
		}
		if err := s.Register(tc.Name, factory, tc.Omit); err != nil {
			return nil, fmt.Errorf("type %q: %w", tc.Name, err)
		}
	}
	return s, nil
}

// Engine builds the omission engine for this configuration.
// Extra scheme setup (Go record types) can be applied through register.
func (c *Config) Engine(register ...func(*registry.Scheme) error) (*rules.Engine, error) {
	s, err := c.Scheme()
	if err != nil {
		return nil, err
	}
	for _, fn := range register {
		if err := fn(s); err != nil {
			return nil, err
		}
	}
	return registry.Build(c.Omit, s, c.Overrides), nil
}
