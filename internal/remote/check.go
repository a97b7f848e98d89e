package remote

import (
	"math"
	"strings"
)

// Check is a local precondition. It returns the violated kind and false,
// or true when the precondition holds.
type Check[E Kind] func() (E, bool)

func pass[E Kind]() (E, bool) {
	var zero E

	return zero, true
}

// NotBlank fails with kind when any of values is empty or whitespace only.
func NotBlank[E Kind](kind E, values ...string) Check[E] {
	return func() (E, bool) {
		for _, v := range values {
			if strings.TrimSpace(v) == "" {
				return kind, false
			}
		}

		return pass[E]()
	}
}

// Contains fails with kind when value does not contain substr.
func Contains[E Kind](kind E, value, substr string) Check[E] {
	return func() (E, bool) {
		if !strings.Contains(value, substr) {
			return kind, false
		}

		return pass[E]()
	}
}

// AtLeast fails with kind when value is set and below minimum, NaN or infinite.
func AtLeast[N int | float64, E Kind](kind E, value *N, minimum N) Check[E] {
	return func() (E, bool) {
		if value != nil && (!finite(*value) || *value < minimum) {
			return kind, false
		}

		return pass[E]()
	}
}

// Between fails with kind when value is set and outside [low, high], NaN or infinite.
func Between[N int | float64, E Kind](kind E, value *N, low, high N) Check[E] {
	return func() (E, bool) {
		if value != nil && (!finite(*value) || *value < low || *value > high) {
			return kind, false
		}

		return pass[E]()
	}
}

func finite[N int | float64](value N) bool {
	f := float64(value)

	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// ExactlyOne requires exactly one of a and b to be set.
// Both set fails with both, neither set fails with neither.
func ExactlyOne[E Kind](both, neither E, a, b bool) Check[E] {
	return func() (E, bool) {
		switch {
		case a && b:
			return both, false
		case !a && !b:
			return neither, false
		default:
			return pass[E]()
		}
	}
}

// NotBoth fails with kind when a and b are both true.
func NotBoth[E Kind](kind E, a, b bool) Check[E] {
	return func() (E, bool) {
		if a && b {
			return kind, false
		}

		return pass[E]()
	}
}

// First runs checks in order and returns the first violated kind.
func First[E Kind](checks ...Check[E]) (E, bool) {
	for _, check := range checks {
		if kind, ok := check(); !ok {
			return kind, false
		}
	}

	return pass[E]()
}

// Position validates a reading position given as exactly one of page or percentage.
// Pages start at 0, percentages lie in [0, 100].
func Position[E Kind](both, neither, badPage, badPercentage E, page *int, percentage *float64) []Check[E] {
	return []Check[E]{
		ExactlyOne(both, neither, page != nil, percentage != nil),
		AtLeast(badPage, page, 0),
		Between(badPercentage, percentage, 0, 100),
	}
}
