// Copyright 2026 The Flowrt Authors.
// Licensed under the Apache License, Version 2.0.

// Package httptool implements service.ToolExecutor by invoking each
// declared tool as a JSON-over-HTTP call, grounded on the teacher's own
// webfetch/httpfetch tool, which reaches for net/http directly rather
// than a third-party HTTP client: the ecosystem has no single dominant
// REST-call library the rest of the example pack agrees on, and the
// standard client already gives per-call timeouts and context
// cancellation, so there is nothing a wrapper library would add here.
package httptool

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/flowrt/flowrt/service"
)

// Endpoint describes how a declared tool id maps to an HTTP call.
type Endpoint struct {
	Method string
	URL    string
	Header http.Header
}

// Executor implements service.ToolExecutor by POSTing each tool's
// inputs as a JSON body to its registered endpoint and parsing a JSON
// response body back into the result.
type Executor struct {
	client    *http.Client
	endpoints map[string]Endpoint
}

// New builds an Executor with no registered endpoints; register tools
// with Register before passing it to the engine.
func New() *Executor {
	return &Executor{
		client:    &http.Client{},
		endpoints: make(map[string]Endpoint),
	}
}

// Register associates toolID with the HTTP endpoint that implements it.
func (e *Executor) Register(toolID string, ep Endpoint) {
	e.endpoints[toolID] = ep
}

// Execute implements service.ToolExecutor.
func (e *Executor) Execute(ctx context.Context, toolID string, inputs map[string]any,
	timeout time.Duration) (service.ToolResult, error) {
	ep, ok := e.endpoints[toolID]
	if !ok {
		return service.ToolResult{Success: false, Error: fmt.Sprintf("no endpoint registered for tool %q", toolID)}, nil
	}

	body, err := json.Marshal(inputs)
	if err != nil {
		return service.ToolResult{}, fmt.Errorf("httptool: marshal inputs for %q: %w", toolID, err)
	}

	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	method := ep.Method
	if method == "" {
		method = http.MethodPost
	}
	req, err := http.NewRequestWithContext(ctx, method, ep.URL, bytes.NewReader(body))
	if err != nil {
		return service.ToolResult{}, fmt.Errorf("httptool: build request for %q: %w", toolID, err)
	}
	req.Header.Set("Content-Type", "application/json")
	for k, vs := range ep.Header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}

	resp, err := e.client.Do(req)
	if err != nil {
		return service.ToolResult{Success: false, Error: err.Error()}, nil
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return service.ToolResult{}, fmt.Errorf("httptool: read response from %q: %w", toolID, err)
	}

	if resp.StatusCode >= 300 {
		return service.ToolResult{Success: false, Error: fmt.Sprintf("%s returned status %d: %s",
			toolID, resp.StatusCode, string(respBody))}, nil
	}

	var output any
	if len(respBody) > 0 {
		if err := json.Unmarshal(respBody, &output); err != nil {
			output = string(respBody)
		}
	}

	return service.ToolResult{Success: true, Output: output}, nil
}
