// Copyright 2026 The Flowrt Authors.
// Licensed under the Apache License, Version 2.0.

package interp

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInterpolate(t *testing.T) {
	vars := map[string]any{"name": "Ada", "count": 3, "missing_is_nil": nil}

	assert.Equal(t, "Hello Ada!", Interpolate("Hello {{name}}!", vars))
	assert.Equal(t, "You have 3 items", Interpolate("You have {{count}} items", vars))
	assert.Equal(t, "Unknown: {{ghost}}", Interpolate("Unknown: {{ghost}}", vars))
	assert.Equal(t, "nil stays: {{missing_is_nil}}", Interpolate("nil stays: {{missing_is_nil}}", vars))
	assert.Equal(t, "no tokens here", Interpolate("no tokens here", vars))
}

func TestResolve(t *testing.T) {
	vars := map[string]any{
		"user": map[string]any{
			"name":    "Ada",
			"address": map[string]any{"city": "London"},
			"note":    nil,
		},
	}

	v, ok := Resolve(vars, "user.name")
	assert.True(t, ok)
	assert.Equal(t, "Ada", v)

	v, ok = Resolve(vars, "user.address.city")
	assert.True(t, ok)
	assert.Equal(t, "London", v)

	v, ok = Resolve(vars, "user.note")
	assert.True(t, ok, "explicit null is present")
	assert.Nil(t, v)

	_, ok = Resolve(vars, "user.age")
	assert.False(t, ok, "missing field is absent")

	_, ok = Resolve(vars, "ghost.nested")
	assert.False(t, ok)

	_, ok = Resolve(vars, "user.name.nested")
	assert.False(t, ok, "cannot descend into a non-map leaf")
}

func TestStringify(t *testing.T) {
	assert.Equal(t, "", Stringify(nil))
	assert.Equal(t, "hi", Stringify("hi"))
	assert.Equal(t, "true", Stringify(true))
	assert.Equal(t, "3", Stringify(3.0))
	assert.Equal(t, "3.5", Stringify(3.5))
}
