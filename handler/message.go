// Copyright 2026 The Flowrt Authors.
// Licensed under the Apache License, Version 2.0.

package handler

import (
	"context"
	"fmt"
	"time"

	"github.com/flowrt/flowrt/flow"
	"github.com/flowrt/flowrt/interp"
	"github.com/flowrt/flowrt/session"
)

// Message implements the Message node, per specification §4.4.2. A
// configured delay suspends the handler (honouring context
// cancellation) before the message is emitted.
func Message(ctx context.Context, node *flow.Node, sess *session.Session,
	_ Input, _ Services) (*NodeResult, error) {
	cfg, err := node.DecodeMessage()
	if err != nil {
		return nil, fmt.Errorf("message node %s: %w", node.ID, err)
	}

	if cfg.DelayMS > 0 {
		timer := time.NewTimer(time.Duration(cfg.DelayMS) * time.Millisecond)
		defer timer.Stop()
		select {
		case <-timer.C:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	text := interp.Interpolate(cfg.Message, sess.Variables)
	return &NodeResult{Message: strPtr(text)}, nil
}
