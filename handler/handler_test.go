// Copyright 2026 The Flowrt Authors.
// Licensed under the Apache License, Version 2.0.

package handler

import (
	"context"
	"time"

	"github.com/flowrt/flowrt/flow"
	"github.com/flowrt/flowrt/service"
)

type fakeClassifier struct {
	result service.ClassifyResult
	err    error
}

func (f *fakeClassifier) Classify(_ context.Context, _, _ string,
	_ []service.IntentDescriptor, _ *flow.ModelConfig) (service.ClassifyResult, error) {
	return f.result, f.err
}

type fakeSearcher struct {
	result service.SearchResult
	err    error
}

func (f *fakeSearcher) Search(_ context.Context, _, _ string, _ int, _ float64) (service.SearchResult, error) {
	return f.result, f.err
}

type fakeTools struct {
	result service.ToolResult
	err    error
	calls  int
}

func (f *fakeTools) Execute(_ context.Context, _ string, _ map[string]any, _ time.Duration) (service.ToolResult, error) {
	f.calls++
	return f.result, f.err
}
