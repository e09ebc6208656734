package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/solatis/quietrepr/internal/core/config"
	"github.com/solatis/quietrepr/internal/render"
	"github.com/solatis/quietrepr/internal/rules"
)

var (
	configFile string
	logLevel   string
	logFormat  string
)

var rootCmd = &cobra.Command{
	Use:   "quietrepr",
	Short: "Render records with empty fields omitted",
	Long: `quietrepr prints records for debugging with nil, empty and other
configured "empty" values left out, plus an explicit exclude list.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return setupLogging(cmd.ErrOrStderr())
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "json", "log format (json, text)")
}

func Execute() error {
	return rootCmd.Execute()
}

// setupLogging installs the default slog logger.
// Logs go to stderr so stdout carries only rendered records.
func setupLogging(w io.Writer) error {
	var level slog.Level
	switch strings.ToLower(logLevel) {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("invalid log level %q", logLevel)
	}

	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	switch strings.ToLower(logFormat) {
	case "json":
		handler = slog.NewJSONHandler(w, opts)
	case "text":
		handler = slog.NewTextHandler(w, opts)
	default:
		return fmt.Errorf("invalid log format %q", logFormat)
	}
	slog.SetDefault(slog.New(handler))
	return nil
}

// renderFlags are shared by commands that print records.
type renderFlags struct {
	format string
	omit   string
	except string
}

func (f *renderFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.format, "format", "", "output format (text, json); overrides config")
	cmd.Flags().StringVar(&f.omit, "omit", "", "comma-separated categories to omit, replacing configured flags")
	cmd.Flags().StringVar(&f.except, "except", "", "comma-separated field names to always hide")
}

// perCall builds the ad-hoc layer applied over each type's rules.
// --omit is names-only (destructive); --except is a keyed except override.
func (f *renderFlags) perCall(cmd *cobra.Command) []rules.Input {
	var layers []rules.Input
	if cmd.Flags().Changed("omit") {
		if strings.TrimSpace(f.omit) == "" {
			layers = append(layers, rules.Names())
		} else {
			layers = append(layers, rules.ParseInput(f.omit))
		}
	}
	if cmd.Flags().Changed("except") {
		layers = append(layers, rules.ParseInput(map[string]any{"except": f.except}))
	}
	return layers
}

// setup loads configuration and applies the render flags to it.
func (f *renderFlags) setup(cmd *cobra.Command) (*config.Config, *rules.Engine, error) {
	cfg, err := config.LoadConfig(configFile)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}
	if cmd.Flags().Changed("format") {
		format, err := render.ParseFormat(f.format)
		if err != nil {
			return nil, nil, err
		}
		cfg.Render.Format = format
	}
	engine, err := cfg.Engine()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to build engine: %w", err)
	}
	return cfg, engine, nil
}
