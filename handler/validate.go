// Copyright 2026 The Flowrt Authors.
// Licensed under the Apache License, Version 2.0.

package handler

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/flowrt/flowrt/flow"
)

var (
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phonePattern = regexp.MustCompile(`^[\d\s\-+()]{10,}$`)
)

// validate checks raw against v, per specification §4.4.3 step 1. A nil
// validation always passes.
func validate(v *flow.Validation, raw string) bool {
	if v == nil {
		return true
	}
	switch v.Type {
	case flow.ValidationText:
		if v.MinLength != nil && len(raw) < *v.MinLength {
			return false
		}
		if v.MaxLength != nil && len(raw) > *v.MaxLength {
			return false
		}
		return true
	case flow.ValidationNumber:
		n, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		if err != nil {
			return false
		}
		if v.Min != nil && n < *v.Min {
			return false
		}
		if v.Max != nil && n > *v.Max {
			return false
		}
		return true
	case flow.ValidationEmail:
		return emailPattern.MatchString(raw)
	case flow.ValidationPhone:
		return phonePattern.MatchString(raw)
	case flow.ValidationRegex:
		if v.Pattern == "" {
			return true
		}
		re, err := regexp.Compile(v.Pattern)
		if err != nil {
			return false
		}
		return re.MatchString(raw)
	case flow.ValidationDate, flow.ValidationCustom:
		return true
	default:
		return true
	}
}
