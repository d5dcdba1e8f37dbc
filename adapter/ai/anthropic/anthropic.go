// Copyright 2026 The Flowrt Authors.
// Licensed under the Apache License, Version 2.0.

// Package anthropic implements service.Classifier against the Claude
// Messages API using github.com/anthropics/anthropic-sdk-go.
package anthropic

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/flowrt/flowrt/flow"
	"github.com/flowrt/flowrt/service"
)

// Classifier calls the Claude Messages API and asks it to pick one of
// the declared intents.
type Classifier struct {
	client anthropic.Client
	model  string
}

// Option configures a Classifier.
type Option func(*options)

type options struct {
	apiKey string
	model  string
}

// WithAPIKey overrides the ANTHROPIC_API_KEY environment variable.
func WithAPIKey(key string) Option { return func(o *options) { o.apiKey = key } }

// WithModel overrides the default model ("claude-3-5-haiku-latest").
func WithModel(model string) Option { return func(o *options) { o.model = model } }

// New builds a Classifier backed by the Claude Messages API.
func New(opts ...Option) *Classifier {
	o := options{apiKey: os.Getenv("ANTHROPIC_API_KEY"), model: "claude-3-5-haiku-latest"}
	for _, opt := range opts {
		opt(&o)
	}

	var clientOpts []option.RequestOption
	if o.apiKey != "" {
		clientOpts = append(clientOpts, option.WithAPIKey(o.apiKey))
	}

	return &Classifier{client: anthropic.NewClient(clientOpts...), model: o.model}
}

// Classify implements service.Classifier.
func (c *Classifier) Classify(ctx context.Context, systemPrompt, userMessage string,
	intents []service.IntentDescriptor, modelCfg *flow.ModelConfig) (service.ClassifyResult, error) {
	model := c.model
	if modelCfg != nil && modelCfg.Model != "" {
		model = modelCfg.Model
	}
	maxTokens := int64(256)
	if modelCfg != nil && modelCfg.MaxTokens != nil {
		maxTokens = int64(*modelCfg.MaxTokens)
	}

	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(model),
		MaxTokens: maxTokens,
		System: []anthropic.TextBlockParam{
			{Text: buildPrompt(systemPrompt, intents)},
		},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(userMessage)),
		},
	}
	if modelCfg != nil && modelCfg.Temperature != nil {
		params.Temperature = anthropic.Float(*modelCfg.Temperature)
	}

	msg, err := c.client.Messages.New(ctx, params)
	if err != nil {
		return service.ClassifyResult{}, fmt.Errorf("anthropic classify: %w", err)
	}
	if len(msg.Content) == 0 {
		return service.ClassifyResult{}, fmt.Errorf("anthropic classify: empty response")
	}

	return parseClassification(msg.Content[0].Text), nil
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
