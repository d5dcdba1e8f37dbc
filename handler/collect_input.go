// Copyright 2026 The Flowrt Authors.
// Licensed under the Apache License, Version 2.0.

package handler

import (
	"context"
	"fmt"

	"github.com/flowrt/flowrt/flow"
	"github.com/flowrt/flowrt/flowerr"
	"github.com/flowrt/flowrt/interp"
	"github.com/flowrt/flowrt/session"
)

// CollectInput implements the Collect-Input node's two-phase semantics,
// per specification §4.4.3.
func CollectInput(_ context.Context, node *flow.Node, sess *session.Session,
	in Input, _ Services) (*NodeResult, error) {
	cfg, err := node.DecodeCollectInput()
	if err != nil {
		return nil, fmt.Errorf("collect_input node %s: %w", node.ID, err)
	}

	attemptsKey := cfg.VariableName + "_attempts"

	if !in.Present {
		res := &NodeResult{WaitForInput: true}
		if cfg.Prompt != "" {
			res.Message = strPtr(interp.Interpolate(cfg.Prompt, sess.Variables))
		}
		return res, nil
	}

	if validate(cfg.Validation, in.Value) {
		patch := map[string]any{cfg.VariableName: in.Value}
		if cfg.Retry != nil {
			patch[attemptsKey] = 0
		}
		return &NodeResult{Variables: patch}, nil
	}

	if cfg.Retry != nil {
		attempts := attemptCount(sess.Variables[attemptsKey]) + 1
		if attempts >= cfg.Retry.MaxAttempts {
			return &NodeResult{
				Variables: map[string]any{attemptsKey: attempts},
				Error: flowerr.Newf(flowerr.CodeMaxRetriesExceeded,
					"max retry attempts (%d) exceeded for variable %q", cfg.Retry.MaxAttempts, cfg.VariableName),
			}, nil
		}
		res := &NodeResult{
			WaitForInput: true,
			Variables:    map[string]any{attemptsKey: attempts},
		}
		if cfg.Retry.RetryMessage != "" {
			res.Message = strPtr(cfg.Retry.RetryMessage)
		}
		return res, nil
	}

	errMsg := "Invalid input. Please try again."
	if cfg.Validation != nil && cfg.Validation.ErrorMessage != "" {
		errMsg = cfg.Validation.ErrorMessage
	}
	return &NodeResult{WaitForInput: true, Message: strPtr(errMsg)}, nil
}

func attemptCount(v any) int {
	switch t := v.(type) {
	case int:
		return t
	case int64:
		return int(t)
	case float64:
		return int(t)
	default:
		return 0
	}
}
