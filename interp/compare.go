// Copyright 2026 The Flowrt Authors.
// Licensed under the Apache License, Version 2.0.

package interp

import (
	"reflect"
	"regexp"
	"strconv"
	"strings"

	"github.com/flowrt/flowrt/flow"
)

// Match evaluates a single Condition rule's operator against the resolved
// left-hand value and the rule's configured right-hand value, following
// the normalisation rules in specification §4.1:
//   - equals/not_equals fall back to string equality when direct
//     equality fails.
//   - ordered comparisons require both sides to parse as numbers;
//     otherwise the rule does not match.
//   - contains/starts_with/ends_with/matches_regex operate on string
//     forms.
//   - is_empty matches an absent value, an explicit null, or "".
//   - matches_regex with an invalid pattern never matches (and never
//     panics or returns an error).
func Match(op flow.Operator, left any, leftPresent bool, right any) bool {
	switch op {
	case flow.OpIsEmpty:
		if !leftPresent || left == nil {
			return true
		}
		return Stringify(left) == ""
	case flow.OpEquals:
		return equalsFold(left, right)
	case flow.OpNotEquals:
		return !equalsFold(left, right)
	case flow.OpGreaterThan, flow.OpLessThan, flow.OpGreaterEqual, flow.OpLessEqual:
		ln, lok := asNumber(left)
		rn, rok := asNumber(right)
		if !lok || !rok {
			return false
		}
		switch op {
		case flow.OpGreaterThan:
			return ln > rn
		case flow.OpLessThan:
			return ln < rn
		case flow.OpGreaterEqual:
			return ln >= rn
		case flow.OpLessEqual:
			return ln <= rn
		}
		return false
	case flow.OpContains:
		return strings.Contains(Stringify(left), Stringify(right))
	case flow.OpStartsWith:
		return strings.HasPrefix(Stringify(left), Stringify(right))
	case flow.OpEndsWith:
		return strings.HasSuffix(Stringify(left), Stringify(right))
	case flow.OpMatchesRegex:
		re, err := regexp.Compile(Stringify(right))
		if err != nil {
			return false
		}
		return re.MatchString(Stringify(left))
	default:
		return false
	}
}

func equalsFold(left, right any) bool {
	if isComparable(left) && isComparable(right) && left == right {
		return true
	}
	return Stringify(left) == Stringify(right)
}

// isComparable reports whether v can safely be used with ==. Maps and
// slices (legal values for object/array-typed variables) are not.
func isComparable(v any) bool {
	if v == nil {
		return true
	}
	return reflect.TypeOf(v).Comparable()
}

func asNumber(v any) (float64, bool) {
	switch t := v.(type) {
	case float64:
		return t, true
	case float32:
		return float64(t), true
	case int:
		return float64(t), true
	case int64:
		return float64(t), true
	case string:
		n, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		if err != nil {
			return 0, false
		}
		return n, true
	default:
		return 0, false
	}
}
