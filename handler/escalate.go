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

// Escalate implements the Escalate node, per specification §4.4.8: it
// always terminates the run with status = escalated.
func Escalate(_ context.Context, node *flow.Node, sess *session.Session,
	_ Input, _ Services) (*NodeResult, error) {
	cfg, err := node.DecodeEscalate()
	if err != nil {
		return nil, fmt.Errorf("escalate node %s: %w", node.ID, err)
	}

	res := &NodeResult{
		End:            true,
		TerminalStatus: session.StatusEscalated,
		Output: map[string]any{
			"reason":   cfg.Reason,
			"queue":    cfg.Queue,
			"priority": cfg.Priority,
			"context":  interpolateInputs(cfg.Context, sess.Variables),
		},
	}
	if cfg.HandoffMessage != "" {
		res.Message = strPtr(interp.Interpolate(cfg.HandoffMessage, sess.Variables))
	}
	return res, nil
}
