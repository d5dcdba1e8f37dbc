// Copyright 2026 The Flowrt Authors.
// Licensed under the Apache License, Version 2.0.

// Package interp implements template interpolation and dotted-path
// variable access, per specification §4.1.
package interp

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var templateToken = regexp.MustCompile(`\{\{\s*([a-zA-Z_][a-zA-Z0-9_]*)\s*\}\}`)

// Interpolate replaces every {{name}} in template with the string form of
// vars[name]. A token whose name is absent from vars, or bound to an
// explicit nil, is left intact. Only flat names are recognised — dotted
// paths inside {{...}} are not evaluated here; see Resolve for that.
func Interpolate(template string, vars map[string]any) string {
	if template == "" {
		return template
	}
	return templateToken.ReplaceAllStringFunc(template, func(tok string) string {
		m := templateToken.FindStringSubmatch(tok)
		if m == nil {
			return tok
		}
		name := m[1]
		val, ok := vars[name]
		if !ok || val == nil {
			return tok
		}
		return Stringify(val)
	})
}

// Stringify renders a value's string form the way Interpolate and the
// condition comparisons do.
func Stringify(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case bool:
		return strconv.FormatBool(t)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(t), 'f', -1, 32)
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	default:
		return fmt.Sprintf("%v", t)
	}
}

// Resolve walks vars along the dotted path (e.g. "a.b.c") and returns the
// value found and whether the path resolved to anything at all — a
// missing intermediate or leaf key returns (nil, false); an explicit null
// leaf returns (nil, true).
func Resolve(vars map[string]any, path string) (any, bool) {
	if path == "" {
		return nil, false
	}
	parts := strings.Split(path, ".")
	var cur any = vars
	for i, part := range parts {
		m, ok := cur.(map[string]any)
		if !ok {
			return nil, false
		}
		v, exists := m[part]
		if !exists {
			return nil, false
		}
		if i == len(parts)-1 {
			return v, true
		}
		cur = v
	}
	return nil, false
}
