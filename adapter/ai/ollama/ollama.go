// Copyright 2026 The Flowrt Authors.
// Licensed under the Apache License, Version 2.0.

// Package ollama implements service.Classifier against a local Ollama
// server using github.com/ollama/ollama/api.
package ollama

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/ollama/ollama/api"

	"github.com/flowrt/flowrt/flow"
	"github.com/flowrt/flowrt/service"
)

// Classifier calls a local Ollama server's chat endpoint and asks the
// model to pick one of the declared intents.
type Classifier struct {
	client *api.Client
	model  string
}

// Option configures a Classifier.
type Option func(*Classifier)

// WithModel overrides the default model ("llama3.1").
func WithModel(model string) Option {
	return func(c *Classifier) { c.model = model }
}

// WithClient overrides the default client built from the environment
// (OLLAMA_HOST).
func WithClient(client *api.Client) Option {
	return func(c *Classifier) { c.client = client }
}

// New builds a Classifier backed by a local Ollama server.
func New(opts ...Option) (*Classifier, error) {
	client, err := api.ClientFromEnvironment()
	if err != nil {
		return nil, fmt.Errorf("ollama classifier: %w", err)
	}
	c := &Classifier{client: client, model: "llama3.1"}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Classify implements service.Classifier.
func (c *Classifier) Classify(ctx context.Context, systemPrompt, userMessage string,
	intents []service.IntentDescriptor, modelCfg *flow.ModelConfig) (service.ClassifyResult, error) {
	model := c.model
	if modelCfg != nil && modelCfg.Model != "" {
		model = modelCfg.Model
	}

	req := &api.ChatRequest{
		Model: model,
		Messages: []api.Message{
			{Role: "system", Content: buildPrompt(systemPrompt, intents)},
			{Role: "user", Content: userMessage},
		},
		Stream: boolPtr(false),
	}

	var content strings.Builder
	err := c.client.Chat(ctx, req, func(resp api.ChatResponse) error {
		content.WriteString(resp.Message.Content)
		return nil
	})
	if err != nil {
		return service.ClassifyResult{}, fmt.Errorf("ollama classify: %w", err)
	}

	return parseClassification(content.String()), nil
}

func buildPrompt(systemPrompt string, intents []service.IntentDescriptor) string {
	var b strings.Builder
	if systemPrompt != "" {
		b.WriteString(systemPrompt)
		b.WriteString("\n\n")
	}
	b.WriteString("Classify the user's message into exactly one of the following intents. ")
	b.WriteString("Respond with a JSON object of the form {\"intent\": \"<name>\", \"confidence\": <0..1>}.\n")
	for _, it := range intents {
		fmt.Fprintf(&b, "- %s: %s\n", it.Name, it.Description)
	}
	return b.String()
}

type classification struct {
	Intent     string  `json:"intent"`
	Confidence float64 `json:"confidence"`
}

func parseClassification(raw string) service.ClassifyResult {
	var c classification
	if err := json.Unmarshal([]byte(extractJSON(raw)), &c); err != nil {
		return service.ClassifyResult{Intent: strings.TrimSpace(raw), Confidence: 1, Reasoning: raw}
	}
	if c.Confidence == 0 {
		c.Confidence = 1
	}
	return service.ClassifyResult{Intent: c.Intent, Confidence: c.Confidence, Reasoning: raw}
}

func extractJSON(raw string) string {
	start := strings.IndexByte(raw, '{')
	end := strings.LastIndexByte(raw, '}')
	if start < 0 || end < 0 || end < start {
		return raw
	}
	return raw[start : end+1]
}

func boolPtr(b bool) *bool { return &b }
