// internal/rules/ruleset.go
package rules

import (
	"slices"
	"strings"

	"github.com/solatis/quietrepr/internal/types"
)

// RuleSet is a resolved omission configuration: one flag per Category plus
// field names that are always excluded.
// Immutable: every constructor returns a fresh value and no method mutates.
// Safe to share between goroutines.
type RuleSet struct {
	flags  [numCategories]bool
	except []string
}

// Defaults returns the builtin rule set.
// Nil and empty containers are omitted; zeros and booleans are kept; the
// type tag is excluded.
func Defaults() RuleSet {
	return NewRuleSet(
		[]Category{NilValue, EmptyString, EmptyList, EmptyMap, EmptyStruct, EmptyTuple},
		[]string{types.TypeTagField},
	)
}

// NewRuleSet builds a rule set with exactly the given categories enabled.
// Invalid categories are ignored.
func NewRuleSet(enabled []Category, except []string) RuleSet {
	var rs RuleSet
	for _, c := range enabled {
		if c.Valid() {
			rs.flags[c] = true
		}
	}
	rs.except = slices.Clone(except)
	return rs
}

// Omits reports whether values matching c are dropped.
func (rs RuleSet) Omits(c Category) bool {
	if !c.Valid() {
		return false
	}
	return rs.flags[c]
}

// Enabled returns the enabled categories in declaration order.
func (rs RuleSet) Enabled() []Category {
	var out []Category
	for i, on := range rs.flags {
		if on {
			out = append(out, Category(i))
		}
	}
	return out
}

// Except returns a copy of the exclude-by-name list.
func (rs RuleSet) Except() []string {
	return slices.Clone(rs.except)
}

// Excludes reports whether name is in the exclude-by-name list.
func (rs RuleSet) Excludes(name string) bool {
	return slices.Contains(rs.except, name)
}

// HidesTypeTag reports whether the synthetic type tag is dropped.
func (rs RuleSet) HidesTypeTag() bool {
	return rs.Excludes(types.TypeTagField)
}

// Equal compares flags and the exclude list (order-sensitive).
func (rs RuleSet) Equal(other RuleSet) bool {
	return rs.flags == other.flags && slices.Equal(rs.except, other.except)
}

// String renders the enabled categories and exclusions for diagnostics.
func (rs RuleSet) String() string {
	var b strings.Builder
	b.WriteString("RuleSet{omit: [")
	for i, c := range rs.Enabled() {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(c.String())
	}
	b.WriteString("], except: [")
	b.WriteString(strings.Join(rs.except, ", "))
	b.WriteString("]}")
	return b.String()
}

// clone returns a copy that shares no memory with rs.
func (rs RuleSet) clone() RuleSet {
	out := rs
	out.except = slices.Clone(rs.except)
	return out
}
