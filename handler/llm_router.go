// Copyright 2026 The Flowrt Authors.
// Licensed under the Apache License, Version 2.0.

package handler

import (
	"context"
	"fmt"

	"github.com/flowrt/flowrt/flow"
	"github.com/flowrt/flowrt/flowerr"
	"github.com/flowrt/flowrt/interp"
	"github.com/flowrt/flowrt/service"
	"github.com/flowrt/flowrt/session"
)

const defaultConfidenceThreshold = 0.5

// LLMRouter implements the LLM-Router node, per specification §4.4.4.
func LLMRouter(ctx context.Context, node *flow.Node, sess *session.Session,
	in Input, svcs Services) (*NodeResult, error) {
	cfg, err := node.DecodeLLMRouter()
	if err != nil {
		return nil, fmt.Errorf("llm_router node %s: %w", node.ID, err)
	}

	userMessage := resolveUserMessage(in, sess.Variables)

	descriptors := make([]service.IntentDescriptor, len(cfg.Intents))
	for i, it := range cfg.Intents {
		descriptors[i] = service.IntentDescriptor{Name: it.Name, Description: it.Description}
	}

	threshold := defaultConfidenceThreshold
	if cfg.ConfidenceThreshold != nil {
		threshold = *cfg.ConfidenceThreshold
	}

	result, classifyErr := svcs.AI.Classify(ctx, cfg.SystemPrompt, userMessage, descriptors, cfg.Model)
	if classifyErr != nil {
		usesRules := cfg.Model != nil && cfg.Model.Provider == "rules"
		if cfg.FallbackIntent != "" || usesRules {
			fallback, ok := findIntent(cfg.Intents, cfg.FallbackIntent)
			if !ok {
				return &NodeResult{Error: flowerr.Newf(flowerr.CodeIntentNotFound,
					"fallback intent %q not declared on node %s", cfg.FallbackIntent, node.ID)}, nil
			}
			return routeTo(fallback.TargetNodeID, cfg.FallbackIntent, cfg.FallbackIntent, 0, true), nil
		}
		return nil, fmt.Errorf("llm_router node %s: classify: %w", node.ID, classifyErr)
	}

	if result.Confidence < threshold && cfg.FallbackIntent != "" {
		fallback, ok := findIntent(cfg.Intents, cfg.FallbackIntent)
		if !ok {
			return &NodeResult{Error: flowerr.Newf(flowerr.CodeIntentNotFound,
				"fallback intent %q not declared on node %s", cfg.FallbackIntent, node.ID)}, nil
		}
		res := routeTo(fallback.TargetNodeID, cfg.FallbackIntent, result.Intent, result.Confidence, true)
		return res, nil
	}

	matched, ok := findIntent(cfg.Intents, result.Intent)
	if !ok {
		if cfg.FallbackIntent != "" {
			fallback, fbOK := findIntent(cfg.Intents, cfg.FallbackIntent)
			if !fbOK {
				return &NodeResult{Error: flowerr.Newf(flowerr.CodeIntentNotFound,
					"fallback intent %q not declared on node %s", cfg.FallbackIntent, node.ID)}, nil
			}
			return routeTo(fallback.TargetNodeID, cfg.FallbackIntent, result.Intent, result.Confidence, true), nil
		}
		return &NodeResult{Error: flowerr.Newf(flowerr.CodeIntentNotFound,
			"classifier returned unrecognised intent %q on node %s", result.Intent, node.ID)}, nil
	}

	return routeTo(matched.TargetNodeID, matched.Name, result.Intent, result.Confidence, false), nil
}

func resolveUserMessage(in Input, vars map[string]any) string {
	if in.Present {
		return in.Value
	}
	if v, ok := vars["user_message"]; ok && v != nil {
		return interp.Stringify(v)
	}
	if v, ok := vars["customer_message"]; ok && v != nil {
		return interp.Stringify(v)
	}
	return ""
}

func findIntent(intents []flow.Intent, name string) (flow.Intent, bool) {
	for _, it := range intents {
		if it.Name == name {
			return it, true
		}
	}
	return flow.Intent{}, false
}

func routeTo(targetNodeID, routedIntent, originalIntent string, confidence float64, fellBack bool) *NodeResult {
	vars := map[string]any{
		"last_intent":     routedIntent,
		"last_confidence": confidence,
	}
	output := map[string]any{
		"intent":     routedIntent,
		"confidence": confidence,
	}
	if fellBack {
		output["originalIntent"] = originalIntent
		output["fellback"] = true
	}
	target := targetNodeID
	return &NodeResult{
		Variables:  vars,
		Output:     output,
		NextNodeID: &target,
	}
}
