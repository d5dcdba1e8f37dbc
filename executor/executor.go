// Copyright 2026 The Flowrt Authors.
// Licensed under the Apache License, Version 2.0.

// Package executor dispatches a single node visit to its registered
// handler, per specification §4.5. It owns no state across calls; the
// engine package drives the run loop and owns the session.
package executor

import (
	"context"
	"errors"
	"fmt"

	"github.com/flowrt/flowrt/flow"
	"github.com/flowrt/flowrt/flowerr"
	"github.com/flowrt/flowrt/handler"
	"github.com/flowrt/flowrt/session"
)

// Executor dispatches node visits to the handler registered for the
// node's kind.
type Executor struct {
	registry handler.Registry
}

// New builds an Executor backed by the given handler registry. Passing
// a nil registry uses handler.Default().
func New(registry handler.Registry) *Executor {
	if registry == nil {
		registry = handler.Default()
	}
	return &Executor{registry: registry}
}

// Execute runs the handler for node.Type against sess, returning the
// handler's NodeResult. Unrecognised kinds and handler panics/errors are
// surfaced as flowerr.Error values so the engine can record them on the
// session's history uniformly.
func (e *Executor) Execute(ctx context.Context, node *flow.Node, sess *session.Session,
	in handler.Input, svcs handler.Services) (result *handler.NodeResult, err error) {
	fn, ok := e.registry[node.Type]
	if !ok {
		return nil, flowerr.Newf(flowerr.CodeUnknownNodeType,
			"no handler registered for node type %q (node %s)", node.Type, node.ID)
	}

	defer func() {
		if r := recover(); r != nil {
			err = flowerr.Newf(flowerr.CodeExecutionError,
				"handler for node %s (%s) panicked: %v", node.ID, node.Type, r)
			result = nil
		}
	}()

	result, err = fn(ctx, node, sess, in, svcs)
	if err != nil {
		var fe *flowerr.Error
		if errors.As(err, &fe) {
			return nil, fe
		}
		return nil, flowerr.Newf(flowerr.CodeExecutionError,
			"handler for node %s (%s): %s", node.ID, node.Type, err.Error()).WithDetails(
			map[string]any{"cause": err.Error()})
	}
	if result == nil {
		return nil, fmt.Errorf("handler for node %s (%s) returned nil result with no error", node.ID, node.Type)
	}
	return result, nil
}
