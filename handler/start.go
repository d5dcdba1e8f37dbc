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

// Start implements the Start node, per specification §4.4.1.
func Start(_ context.Context, node *flow.Node, sess *session.Session,
	_ Input, _ Services) (*NodeResult, error) {
	cfg, err := node.DecodeStart()
	if err != nil {
		return nil, fmt.Errorf("start node %s: %w", node.ID, err)
	}

	res := &NodeResult{}
	if cfg.WelcomeMessage != "" {
		res.Message = strPtr(interp.Interpolate(cfg.WelcomeMessage, sess.Variables))
	}
	if len(cfg.InitVariables) > 0 {
		res.Variables = cfg.InitVariables
	}
	return res, nil
}
