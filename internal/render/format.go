// Package render turns filtered records into display text.
//
// Renderers do not interpret omission rules: they print exactly the fields
// they are handed, in order. Nested records inside a value are printed in
// full.
package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/solatis/quietrepr/internal/types"
)

// Format selects a renderer.
type Format int

const (
	FormatText Format = iota
	FormatJSON
)

// String returns the configuration name of the format.
func (f Format) String() string {
	switch f {
	case FormatText:
		return "text"
	case FormatJSON:
		return "json"
	default:
		return "unknown"
	}
}

// ParseFormat maps "text" or "json" (case-insensitive) to a Format.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "text":
		return FormatText, nil
	case "json":
		return FormatJSON, nil
	default:
		return 0, fmt.Errorf("unknown render format %q (expected text or json)", s)
	}
}

// Render writes rec to w in the given format, followed by a newline.
func Render(w io.Writer, f Format, rec types.Record) error {
	switch f {
	case FormatJSON:
		data, err := ProtoJSON(rec)
		if err != nil {
			return err
		}
		if _, err := w.Write(append(data, '\n')); err != nil {
			return fmt.Errorf("write record: %w", err)
		}
		return nil
	default:
		if _, err := io.WriteString(w, Text(rec)+"\n"); err != nil {
			return fmt.Errorf("write record: %w", err)
		}
		return nil
	}
}
