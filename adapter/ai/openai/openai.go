// Copyright 2026 The Flowrt Authors.
// Licensed under the Apache License, Version 2.0.

// Package openai implements service.Classifier against an
// OpenAI-compatible chat completions endpoint using
// github.com/openai/openai-go.
package openai

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/shared"

	"github.com/flowrt/flowrt/flow"
	"github.com/flowrt/flowrt/service"
)

// Classifier calls an OpenAI-compatible chat completions endpoint and
// asks the model to pick one of the declared intents.
type Classifier struct {
	client openai.Client
	model  string
}

// Option configures a Classifier.
type Option func(*options)

type options struct {
	apiKey  string
	baseURL string
	model   string
}

// WithAPIKey overrides the OPENAI_API_KEY environment variable.
func WithAPIKey(key string) Option { return func(o *options) { o.apiKey = key } }

// WithBaseURL points the client at an OpenAI-compatible endpoint other
// than the default.
func WithBaseURL(url string) Option { return func(o *options) { o.baseURL = url } }

// WithModel overrides the default chat model ("gpt-4o-mini").
func WithModel(model string) Option { return func(o *options) { o.model = model } }

// New builds a Classifier backed by the OpenAI chat completions API.
func New(opts ...Option) *Classifier {
	o := options{apiKey: os.Getenv("OPENAI_API_KEY"), model: "gpt-4o-mini"}
	for _, opt := range opts {
		opt(&o)
	}

	var clientOpts []option.RequestOption
	if o.apiKey != "" {
		clientOpts = append(clientOpts, option.WithAPIKey(o.apiKey))
	}
	if o.baseURL != "" {
		clientOpts = append(clientOpts, option.WithBaseURL(o.baseURL))
	}

	return &Classifier{client: openai.NewClient(clientOpts...), model: o.model}
}

// Classify implements service.Classifier by asking the model to reply
// with a JSON object naming an intent and a confidence, then parsing that
// reply. The returned name is not checked against the declared intents.
func (c *Classifier) Classify(ctx context.Context, systemPrompt, userMessage string,
	intents []service.IntentDescriptor, modelCfg *flow.ModelConfig) (service.ClassifyResult, error) {
	model := c.model
	if modelCfg != nil && modelCfg.Model != "" {
		model = modelCfg.Model
	}

	prompt := buildPrompt(systemPrompt, userMessage, intents)

	params := openai.ChatCompletionNewParams{
		Model: shared.ChatModel(model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(prompt),
			openai.UserMessage(userMessage),
		},
	}
	if modelCfg != nil && modelCfg.Temperature != nil {
		params.Temperature = openai.Float(*modelCfg.Temperature)
	}
	if modelCfg != nil && modelCfg.MaxTokens != nil {
		params.MaxCompletionTokens = openai.Int(int64(*modelCfg.MaxTokens))
	}

	completion, err := c.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return service.ClassifyResult{}, fmt.Errorf("openai classify: %w", err)
	}
	if len(completion.Choices) == 0 {
		return service.ClassifyResult{}, fmt.Errorf("openai classify: empty response")
	}

	return parseClassification(completion.Choices[0].Message.Content, intents), nil
}

func buildPrompt(systemPrompt, userMessage string, intents []service.IntentDescriptor) string {
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

func parseClassification(raw string, intents []service.IntentDescriptor) service.ClassifyResult {
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
