// Copyright 2026 The Flowrt Authors.
// Licensed under the Apache License, Version 2.0.

package handler

import (
	"context"
	"fmt"

	"github.com/flowrt/flowrt/flow"
	"github.com/flowrt/flowrt/interp"
	"github.com/flowrt/flowrt/session"
)

// Condition implements the Condition node, per specification §4.4.7:
// rules are evaluated in declaration order and the first match wins.
func Condition(_ context.Context, node *flow.Node, sess *session.Session,
	_ Input, _ Services) (*NodeResult, error) {
	cfg, err := node.DecodeCondition()
	if err != nil {
		return nil, fmt.Errorf("condition node %s: %w", node.ID, err)
	}

	for _, rule := range cfg.Conditions {
		left, present := interp.Resolve(sess.Variables, rule.Variable)
		if interp.Match(rule.Operator, left, present, rule.Value) {
			target := rule.TargetNodeID
			return &NodeResult{NextNodeID: &target}, nil
		}
	}

	if cfg.DefaultNode != "" {
		target := cfg.DefaultNode
		return &NodeResult{NextNodeID: &target}, nil
	}

	// No rule matched and no default: let the engine fall back to
	// edge-based routing (the node's sole outgoing edge, if any).
	return &NodeResult{}, nil
}
