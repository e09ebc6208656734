package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/solatis/quietrepr/internal/render"
	"github.com/solatis/quietrepr/internal/rules"
	"github.com/solatis/quietrepr/internal/source"
	"github.com/solatis/quietrepr/internal/types"
)

var (
	inspectFlags renderFlags
	inputFormat  string
)

var inspectCmd = &cobra.Command{
	Use:   "inspect [file]",
	Short: "Render records read from a YAML or JSON Lines file (stdin if omitted)",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runInspect,
}

func init() {
	rootCmd.AddCommand(inspectCmd)
	inspectFlags.register(inspectCmd)
	inspectCmd.Flags().StringVar(&inputFormat, "input", "yaml", "input format (yaml, jsonl)")
}

func runInspect(cmd *cobra.Command, args []string) error {
	cfg, engine, err := inspectFlags.setup(cmd)
	if err != nil {
		return err
	}

	var r io.Reader = cmd.InOrStdin()
	if len(args) == 1 {
		f, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("failed to open input: %w", err)
		}
		defer f.Close()
		r = f
	}

	var records []types.Record
	switch inputFormat {
	case "yaml", "json":
		records, err = source.DecodeYAML(r)
	case "jsonl":
		records, err = source.DecodeJSONLines(r)
	default:
		return fmt.Errorf("unknown input format %q (expected yaml or jsonl)", inputFormat)
	}
	if err != nil {
		return fmt.Errorf("failed to decode input: %w", err)
	}

	slog.Debug("Decoded records", "count", len(records), "input", inputFormat)
	return renderAll(cmd.OutOrStdout(), engine, cfg.Render.Format, records, inspectFlags.perCall(cmd))
}

// renderAll filters and writes each record in input order.
func renderAll(w io.Writer, engine *rules.Engine, format render.Format, records []types.Record, layers []rules.Input) error {
	for _, rec := range records {
		filtered := engine.FilterWith(rec, layers...)
		if err := render.Render(w, format, filtered); err != nil {
			return err
		}
	}
	return nil
}
