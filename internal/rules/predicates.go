// internal/rules/predicates.go
package rules

import "math"

/*
 * Category predicates.
 *
 * One switch maps each Category to its test over a classified value. The
 * values are never converted or mutated; predicates only read.
 *
 * Float zero is +0.0 only: -0.0 is a distinct, displayable value.
 * empty_struct is the only predicate with real cost, it builds the
 * candidate type's default instance (see equal.go).
 */

// Matches reports whether v matches category c.
// src supplies default instances for empty_struct; nil is allowed.
func Matches(c Category, v any, src DefaultSource) bool {
	return matchClassified(c, classify(v), src)
}

// IsEmpty reports whether v matches any category enabled in rs.
func IsEmpty(v any, rs RuleSet, src DefaultSource) bool {
	cv := classify(v)
	for _, c := range rs.Enabled() {
		if matchClassified(c, cv, src) {
			return true
		}
	}
	return false
}

// matchClassified applies the predicate for c to an already classified value.
func matchClassified(c Category, cv classified, src DefaultSource) bool {
	switch c {
	case NilValue:
		return cv.kind == kindNil
	case ZeroIntegerValue:
		return cv.kind == kindInt && isZeroInt(cv.rv)
	case ZeroFloatValue:
		return cv.kind == kindFloat && isPositiveZero(cv.rv.Float())
	case EmptyString:
		return cv.kind == kindString && cv.size == 0
	case EmptyList:
		return cv.kind == kindList && cv.size == 0
	case EmptyMap:
		return cv.kind == kindMap && cv.size == 0
	case EmptyTuple:
		return cv.kind == kindTuple && cv.size == 0
	case TrueValue:
		return cv.kind == kindBool && cv.rv.Bool()
	case FalseValue:
		return cv.kind == kindBool && !cv.rv.Bool()
	case EmptyStruct:
		return cv.kind == kindRecord && isDefaultInstance(cv, src)
	default:
		return false
	}
}

func isPositiveZero(f float64) bool {
	return f == 0 && !math.Signbit(f)
}
