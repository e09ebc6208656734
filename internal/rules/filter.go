// internal/rules/filter.go
package rules

import "github.com/solatis/quietrepr/internal/types"

/*
 * Field filtering.
 *
 * Applies a resolved RuleSet to a record's ordered field list and returns the
 * fields to display.
 *
 * Per field, in original order:
 *   1. Type tag: kept unless the rule set hides it; never value-classified
 *   2. Name in except: dropped, whatever the value
 *   3. Value matches any enabled category: dropped
 *   4. Otherwise kept unchanged
 *
 * The output is a subsequence of the input. Values are passed through as is;
 * a kept nested record is not filtered itself.
 *
 * Errors: none. Default construction failures inside empty_struct resolve to
 * "not empty" (fail-open), so inspection never fails its caller.
 */

// FilterOption configures a Filter call.
type FilterOption func(*filterOptions)

type filterOptions struct {
	defaults DefaultSource
}

// WithDefaults supplies default instances for typed records.
func WithDefaults(src DefaultSource) FilterOption {
	return func(o *filterOptions) {
		o.defaults = src
	}
}

// Filter returns the fields of the list that survive rs, in input order.
func Filter(fields []types.Field, rs RuleSet, opts ...FilterOption) []types.Field {
	var o filterOptions
	for _, opt := range opts {
		opt(&o)
	}

	out := make([]types.Field, 0, len(fields))
	for _, f := range fields {
		if keepField(f, rs, o.defaults) {
			out = append(out, f)
		}
	}
	return out
}

// keepField applies the four filtering steps to a single field.
func keepField(f types.Field, rs RuleSet, src DefaultSource) bool {
	if f.Name == types.TypeTagField {
		return !rs.HidesTypeTag()
	}
	if rs.Excludes(f.Name) {
		return false
	}
	return !IsEmpty(f.Value, rs, src)
}
