// Package source decodes records from YAML and JSON Lines input.
//
// Decoding goes through yaml.v3 nodes rather than maps so mapping order is
// kept: the filtered output lists fields in the order the input wrote them.
// JSON is valid YAML, so both share one node decoder.
package source

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/solatis/quietrepr/internal/types"
)

// TupleTag marks a YAML sequence as a fixed-arity tuple.
const TupleTag = "!tuple"

// maxLineSize bounds a single JSON Lines record.
const maxLineSize = 4 * 1024 * 1024

// DecodeYAML reads one record per YAML document.
// Empty documents are skipped; a document that is not a mapping is an error.
func DecodeYAML(r io.Reader) ([]types.Record, error) {
	dec := yaml.NewDecoder(r)
	var out []types.Record
	for i := 0; ; i++ {
		var doc yaml.Node
		err := dec.Decode(&doc)
		if errors.Is(err, io.EOF) {
			return out, nil
		}
		if err != nil {
			return nil, fmt.Errorf("document %d: %w", i, err)
		}
		if isEmptyDocument(&doc) {
			continue
		}
		rec, err := RecordFromNode(doc.Content[0])
		if err != nil {
			return nil, fmt.Errorf("document %d: %w", i, err)
		}
		out = append(out, rec)
	}
}

// DecodeJSONLines reads one record per non-blank line.
func DecodeJSONLines(r io.Reader) ([]types.Record, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	var out []types.Record
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" {
			continue
		}
		var doc yaml.Node
		if err := yaml.Unmarshal([]byte(text), &doc); err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		if isEmptyDocument(&doc) {
			continue
		}
		rec, err := RecordFromNode(doc.Content[0])
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		out = append(out, rec)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read lines: %w", err)
	}
	return out, nil
}

// RecordFromNode converts a mapping node into a Record.
// A "__type__" key sets the record type and is not kept as a field.
func RecordFromNode(n *yaml.Node) (types.Record, error) {
	n = resolveAlias(n)
	if n.Kind != yaml.MappingNode {
		return types.Record{}, fmt.Errorf("line %d: %w", n.Line, types.ErrInvalidInput)
	}

	rec := types.Record{Fields: make([]types.Field, 0, len(n.Content)/2)}
	for i := 0; i+1 < len(n.Content); i += 2 {
		key := n.Content[i].Value
		valNode := n.Content[i+1]
		if key == types.TypeTagField {
			rec.Type = resolveAlias(valNode).Value
			continue
		}
		val, err := valueFromNode(valNode)
		if err != nil {
			return types.Record{}, fmt.Errorf("field %q: %w", key, err)
		}
		rec.Fields = append(rec.Fields, types.Field{Name: key, Value: val})
	}
	return rec, nil
}

// valueFromNode maps scalars by their resolved tag:
// !!int -> int64, !!float -> float64, !!bool -> bool, !!null -> nil,
// anything else -> string.
func valueFromNode(n *yaml.Node) (any, error) {
	n = resolveAlias(n)
	switch n.Kind {
	case yaml.MappingNode:
		return RecordFromNode(n)
	case yaml.SequenceNode:
		items := make([]any, 0, len(n.Content))
		for _, c := range n.Content {
			v, err := valueFromNode(c)
			if err != nil {
				return nil, err
			}
			items = append(items, v)
		}
		if n.Tag == TupleTag {
			return types.Tuple(items), nil
		}
		return items, nil
	case yaml.ScalarNode:
		return scalarValue(n)
	default:
		return nil, fmt.Errorf("line %d: unsupported node kind %d", n.Line, n.Kind)
	}
}

func scalarValue(n *yaml.Node) (any, error) {
	switch n.ShortTag() {
	case "!!null":
		return nil, nil
	case "!!bool":
		var b bool
		if err := n.Decode(&b); err != nil {
			return nil, err
		}
		return b, nil
	case "!!int":
		var i int64
		if err := n.Decode(&i); err != nil {
			// out of int64 range: keep the literal
			return n.Value, nil
		}
		return i, nil
	case "!!float":
		var f float64
		if err := n.Decode(&f); err != nil {
			return nil, err
		}
		return f, nil
	case "!!str":
		return n.Value, nil
	default:
		if n.Style&(yaml.DoubleQuotedStyle|yaml.SingleQuotedStyle) == 0 {
			if f, err := strconv.ParseFloat(n.Value, 64); err == nil {
				return f, nil
			}
		}
		return n.Value, nil
	}
}

// isEmptyDocument reports documents with no content or a bare null.
func isEmptyDocument(doc *yaml.Node) bool {
	if len(doc.Content) == 0 {
		return true
	}
	n := doc.Content[0]
	return n.Kind == yaml.ScalarNode && n.ShortTag() == "!!null"
}

func resolveAlias(n *yaml.Node) *yaml.Node {
	for n.Kind == yaml.AliasNode && n.Alias != nil {
		n = n.Alias
	}
	return n
}
