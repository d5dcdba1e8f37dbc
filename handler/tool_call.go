// Copyright 2026 The Flowrt Authors.
// Licensed under the Apache License, Version 2.0.

package handler

import (
	"context"
	"fmt"
	"time"

	"github.com/flowrt/flowrt/config"
	"github.com/flowrt/flowrt/flow"
	"github.com/flowrt/flowrt/flowerr"
	"github.com/flowrt/flowrt/interp"
	"github.com/flowrt/flowrt/session"
)

// ToolCall implements the Tool-Call node, per specification §4.4.6.
func ToolCall(ctx context.Context, node *flow.Node, sess *session.Session,
	_ Input, svcs Services) (*NodeResult, error) {
	cfg, err := node.DecodeToolCall()
	if err != nil {
		return nil, fmt.Errorf("tool_call node %s: %w", node.ID, err)
	}

	inputs := interpolateInputs(cfg.Inputs, sess.Variables)

	timeout := time.Duration(config.ToolTimeoutMS()) * time.Millisecond
	if cfg.TimeoutSeconds != nil {
		timeout = time.Duration(*cfg.TimeoutSeconds) * time.Second
	}

	result, execErr := svcs.Tools.Execute(ctx, cfg.ToolID, inputs, timeout)
	if execErr == nil && result.Success {
		varName := cfg.ResultVariable
		if varName == "" {
			varName = "tool_result"
		}
		return &NodeResult{
			Variables: map[string]any{varName: result.Output},
			Output:    result,
		}, nil
	}

	failureMsg := result.Error
	if execErr != nil {
		failureMsg = execErr.Error()
	}

	if cfg.OnError == nil {
		return &NodeResult{Error: flowerr.Newf(flowerr.CodeToolCallFailed,
			"tool %q failed: %s", cfg.ToolID, failureMsg).WithDetails(map[string]any{
			"toolId": cfg.ToolID,
		})}, nil
	}

	switch cfg.OnError.Action {
	case flow.ToolErrorContinue:
		varName := cfg.ResultVariable
		if varName == "" {
			varName = "tool_result"
		}
		return &NodeResult{
			Variables: map[string]any{varName: map[string]any{
				"success": false,
				"error":   failureMsg,
			}},
		}, nil
	case flow.ToolErrorGoto:
		if cfg.OnError.TargetNodeID == "" {
			return &NodeResult{Error: flowerr.Newf(flowerr.CodeToolCallFailed,
				"tool %q failed and onError.goto has no targetNodeId", cfg.ToolID)}, nil
		}
		target := cfg.OnError.TargetNodeID
		return &NodeResult{NextNodeID: &target}, nil
	case flow.ToolErrorEscalate:
		return &NodeResult{
			End:            true,
			TerminalStatus: session.StatusEscalated,
			Message:        strPtr(fmt.Sprintf("Tool %q failed: %s", cfg.ToolID, failureMsg)),
		}, nil
	case flow.ToolErrorRetry:
		attempts := 1
		if cfg.Retry != nil && cfg.Retry.MaxAttempts > 0 {
			attempts = cfg.Retry.MaxAttempts
		}
		msg := failureMsg
		for attempt := 1; attempt <= attempts; attempt++ {
			if cfg.Retry != nil && cfg.Retry.BackoffMS > 0 {
				timer := time.NewTimer(time.Duration(cfg.Retry.BackoffMS) * time.Millisecond)
				select {
				case <-timer.C:
				case <-ctx.Done():
					timer.Stop()
					return nil, ctx.Err()
				}
			}
			res, err := svcs.Tools.Execute(ctx, cfg.ToolID, inputs, timeout)
			if err == nil && res.Success {
				varName := cfg.ResultVariable
				if varName == "" {
					varName = "tool_result"
				}
				return &NodeResult{
					Variables: map[string]any{varName: res.Output},
					Output:    res,
				}, nil
			}
			if err != nil {
				msg = err.Error()
			} else {
				msg = res.Error
			}
		}
		return &NodeResult{Error: flowerr.Newf(flowerr.CodeToolCallFailed,
			"tool %q failed after %d retries: %s", cfg.ToolID, attempts, msg)}, nil
	default:
		return &NodeResult{Error: flowerr.Newf(flowerr.CodeToolCallFailed,
			"tool %q failed: %s", cfg.ToolID, failureMsg)}, nil
	}
}

func interpolateInputs(raw map[string]any, vars map[string]any) map[string]any {
	if raw == nil {
		return nil
	}
	out := make(map[string]any, len(raw))
	for k, v := range raw {
		if s, ok := v.(string); ok {
			out[k] = interp.Interpolate(s, vars)
			continue
		}
		out[k] = v
	}
	return out
}
