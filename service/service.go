// Copyright 2026 The Flowrt Authors.
// Licensed under the Apache License, Version 2.0.

// Package service defines the three pluggable collaborator contracts the
// node handlers consume, per specification §4.3: AI classification,
// knowledge-base search, and tool execution. Concrete implementations
// (cloud providers, local model servers, vector databases, HTTP tools)
// live under adapter/ and are interchangeable behind these interfaces.
package service

import (
	"context"
	"time"

	"github.com/flowrt/flowrt/flow"
)

// IntentDescriptor is the name/description pair an AI classifier is
// given for each candidate intent. Examples are intentionally omitted
// from the wire contract — they are authoring hints, not something a
// classifier call needs repeated back.
type IntentDescriptor struct {
	Name        string
	Description string
}

// ClassifyResult is AI.classify's return value, per specification §4.3.
type ClassifyResult struct {
	Intent     string
	Confidence float64
	Reasoning  string
}

// Classifier is the AI service's classification contract. Implementations
// MUST return one of the provided intent names on success; returning an
// unrecognised name is permitted when reasoning fails — callers treat it
// as no-match rather than an error.
type Classifier interface {
	Classify(ctx context.Context, systemPrompt, userMessage string,
		intents []IntentDescriptor, model *flow.ModelConfig) (ClassifyResult, error)
}

// Document is a single retrieved knowledge-base passage.
type Document struct {
	Content string  `json:"content"`
	Source  string  `json:"source,omitempty"`
	Score   float64 `json:"score"`
}

// SearchResult is Knowledge.search's return value, per specification
// §4.3.
type SearchResult struct {
	Results    []Document `json:"results"`
	Answer     string     `json:"answer,omitempty"`
	Confidence float64    `json:"confidence"`
	Grounded   bool       `json:"grounded"`
}

// Searcher is the knowledge-base retrieval contract.
type Searcher interface {
	Search(ctx context.Context, knowledgeBaseID, query string,
		topK int, minScore float64) (SearchResult, error)
}

// ToolResult is Tool.execute's return value, per specification §4.3.
type ToolResult struct {
	Success bool
	Output  any
	Error   string
}

// ToolExecutor is the HTTP/tool execution contract. The core never
// retries a failed call itself beyond what the calling node's retry
// configuration requests.
type ToolExecutor interface {
	Execute(ctx context.Context, toolID string, inputs map[string]any,
		timeout time.Duration) (ToolResult, error)
}
