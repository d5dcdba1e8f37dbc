// Copyright 2026 The Flowrt Authors.
// Licensed under the Apache License, Version 2.0.

package handler

import (
	"context"
	"fmt"

	"github.com/flowrt/flowrt/flow"
	"github.com/flowrt/flowrt/interp"
	"github.com/flowrt/flowrt/service"
	"github.com/flowrt/flowrt/session"
)

const (
	defaultTopK     = 3
	defaultMinScore = 0.5
)

// KnowledgeSearch implements the Knowledge-Search node, per
// specification §4.4.5.
func KnowledgeSearch(ctx context.Context, node *flow.Node, sess *session.Session,
	_ Input, svcs Services) (*NodeResult, error) {
	cfg, err := node.DecodeKnowledgeSearch()
	if err != nil {
		return nil, fmt.Errorf("knowledge_search node %s: %w", node.ID, err)
	}

	query := interp.Interpolate(cfg.Query, sess.Variables)

	topK := defaultTopK
	if cfg.TopK != nil {
		topK = *cfg.TopK
	}
	minScore := defaultMinScore
	if cfg.MinScore != nil {
		minScore = *cfg.MinScore
	}

	result, searchErr := svcs.Knowledge.Search(ctx, cfg.KnowledgeBaseID, query, topK, minScore)
	if searchErr != nil {
		return nil, fmt.Errorf("knowledge_search node %s: search: %w", node.ID, searchErr)
	}

	varName := cfg.ResultVariable
	if varName == "" {
		varName = "knowledge_result"
	}

	if cfg.GroundedOnly && !result.Grounded {
		return &NodeResult{
			Variables: map[string]any{
				varName: map[string]any{
					"answer":     "",
					"sources":    []service.Document{},
					"confidence": 0.0,
					"grounded":   false,
				},
			},
			Output: result,
		}, nil
	}

	return &NodeResult{
		Variables: map[string]any{
			varName: map[string]any{
				"results":    result.Results,
				"answer":     result.Answer,
				"confidence": result.Confidence,
				"grounded":   result.Grounded,
			},
		},
		Output: result,
	}, nil
}
