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

// End implements the End node, per specification §4.4.9: it always
// terminates the run with the node's configured status.
func End(_ context.Context, node *flow.Node, sess *session.Session,
	_ Input, _ Services) (*NodeResult, error) {
	cfg, err := node.DecodeEnd()
	if err != nil {
		return nil, fmt.Errorf("end node %s: %w", node.ID, err)
	}

	status := session.Status(cfg.Status)
	if status == "" {
		status = session.StatusCompleted
	}

	res := &NodeResult{
		End:            true,
		TerminalStatus: status,
	}
	if cfg.Message != "" {
		res.Message = strPtr(interp.Interpolate(cfg.Message, sess.Variables))
	}
	if cfg.Summary != "" {
		res.Output = map[string]any{"summary": cfg.Summary}
	}
	return res, nil
}
