// internal/rules/category.go
package rules

/*
 * Omission categories.
 *
 * Each category names one predicate over a field value. A RuleSet enables
 * any subset of them; a field is omitted when its value matches at least one
 * enabled category. Categories are independent: none implies another.
 *
 * Identifiers are snake_case and are what configuration files use. Unknown
 * identifiers are ignored by every parser in this package.
 */

// Category identifies one emptiness predicate.
type Category int

const (
	NilValue Category = iota
	ZeroIntegerValue
	ZeroFloatValue
	EmptyString
	EmptyList
	EmptyMap
	EmptyStruct
	EmptyTuple
	TrueValue
	FalseValue

	numCategories
)

var categoryNames = [numCategories]string{
	NilValue:         "nil_value",
	ZeroIntegerValue: "zero_integer_value",
	ZeroFloatValue:   "zero_float_value",
	EmptyString:      "empty_string",
	EmptyList:        "empty_list",
	EmptyMap:         "empty_map",
	EmptyStruct:      "empty_struct",
	EmptyTuple:       "empty_tuple",
	TrueValue:        "true_value",
	FalseValue:       "false_value",
}

// String returns the configuration identifier of the category.
func (c Category) String() string {
	if !c.Valid() {
		return "unknown"
	}
	return categoryNames[c]
}

// Valid reports whether c is one of the ten known categories.
func (c Category) Valid() bool {
	return c >= 0 && c < numCategories
}

// ParseCategory maps a configuration identifier to its Category.
func ParseCategory(name string) (Category, bool) {
	for i, n := range categoryNames {
		if n == name {
			return Category(i), true
		}
	}
	return 0, false
}

// AllCategories returns every category in declaration order.
func AllCategories() []Category {
	all := make([]Category, numCategories)
	for i := range all {
		all[i] = Category(i)
	}
	return all
}
