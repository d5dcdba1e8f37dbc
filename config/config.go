// Copyright 2026 The Flowrt Authors.
// Licensed under the Apache License, Version 2.0.

// Package config reads the environment variables that influence the core,
// per the specification's external interfaces section.
package config

import (
	"os"
	"strconv"
)

// Default values used when the corresponding environment variable is
// absent or unparsable.
const (
	defaultMaxSteps      = 100
	defaultToolTimeoutMS = 30000
)

// MaxSteps returns MAX_STEPS, the per-run handler-invocation bound.
func MaxSteps() int {
	return envInt("MAX_STEPS", defaultMaxSteps)
}

// ToolTimeoutMS returns DEFAULT_TOOL_TIMEOUT_MS.
func ToolTimeoutMS() int {
	return envInt("DEFAULT_TOOL_TIMEOUT_MS", defaultToolTimeoutMS)
}

// Debug returns whether DEBUG is set to a truthy value.
func Debug() bool {
	return envBool("DEBUG", false)
}

func envInt(name string, def int) int {
	v := os.Getenv(name)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func envBool(name string, def bool) bool {
	v := os.Getenv(name)
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}
