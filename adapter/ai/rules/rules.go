// Copyright 2026 The Flowrt Authors.
// Licensed under the Apache License, Version 2.0.

// Package rules implements service.Classifier with a dependency-free
// keyword matcher. It has no network calls to make and no SDK to wrap,
// so it is the one AI adapter built on the standard library alone; it
// exists as the LLM-Router's zero-configuration fallback and as a
// deterministic stand-in for tests.
package rules

import (
	"context"
	"strings"

	"github.com/flowrt/flowrt/flow"
	"github.com/flowrt/flowrt/service"
)

// Classifier matches the user message against the words (three letters
// or longer) of each intent's name and description by case-insensitive
// substring containment. The intent with the most matching words wins;
// ties are broken by declaration order.
type Classifier struct{}

// New builds a keyword-based Classifier.
func New() *Classifier { return &Classifier{} }

// Classify implements service.Classifier.
func (c *Classifier) Classify(_ context.Context, _, userMessage string,
	intents []service.IntentDescriptor, _ *flow.ModelConfig) (service.ClassifyResult, error) {
	lowered := strings.ToLower(userMessage)

	best := -1
	bestScore := 0
	for i, it := range intents {
		score := keywordScore(lowered, it.Name) + keywordScore(lowered, it.Description)
		if score > bestScore {
			bestScore = score
			best = i
		}
	}

	if best < 0 {
		return service.ClassifyResult{Intent: "", Confidence: 0, Reasoning: "no keyword match"}, nil
	}

	confidence := 1.0
	if bestScore == 1 {
		confidence = 0.6
	}
	return service.ClassifyResult{
		Intent:     intents[best].Name,
		Confidence: confidence,
		Reasoning:  "keyword match",
	}, nil
}

func keywordScore(lowered, phrase string) int {
	score := 0
	for _, word := range strings.Fields(strings.ToLower(phrase)) {
		if len(word) < 3 {
			continue
		}
		if strings.Contains(lowered, word) {
			score++
		}
	}
	return score
}
