// Copyright 2026 The Flowrt Authors.
// Licensed under the Apache License, Version 2.0.

package flow

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNode_DecodeStart(t *testing.T) {
	n := &Node{Type: KindStart, Config: map[string]any{
		"welcomeMessage": "Hi {{name}}",
		"initVariables":  map[string]any{"count": 0},
	}}
	cfg, err := n.DecodeStart()
	require.NoError(t, err)
	assert.Equal(t, "Hi {{name}}", cfg.WelcomeMessage)
	assert.Equal(t, 0, cfg.InitVariables["count"])
}

func TestNode_DecodeCollectInput(t *testing.T) {
	n := &Node{Type: KindCollectInput, Config: map[string]any{
		"prompt":       "What is your email?",
		"variableName": "email",
		"validation":   map[string]any{"type": "email"},
		"retry":        map[string]any{"maxAttempts": 3, "retryMessage": "Try again"},
	}}
	cfg, err := n.DecodeCollectInput()
	require.NoError(t, err)
	assert.Equal(t, "email", cfg.VariableName)
	require.NotNil(t, cfg.Validation)
	assert.Equal(t, ValidationEmail, cfg.Validation.Type)
	require.NotNil(t, cfg.Retry)
	assert.Equal(t, 3, cfg.Retry.MaxAttempts)
}

func TestNode_DecodeLLMRouter(t *testing.T) {
	n := &Node{Type: KindLLMRouter, Config: map[string]any{
		"systemPrompt": "route the user",
		"intents": []any{
			map[string]any{"name": "billing", "targetNodeId": "n1"},
			map[string]any{"name": "support", "targetNodeId": "n2"},
		},
		"fallbackIntent":      "support",
		"confidenceThreshold": 0.7,
	}}
	cfg, err := n.DecodeLLMRouter()
	require.NoError(t, err)
	require.Len(t, cfg.Intents, 2)
	assert.Equal(t, "billing", cfg.Intents[0].Name)
	require.NotNil(t, cfg.ConfidenceThreshold)
	assert.InDelta(t, 0.7, *cfg.ConfidenceThreshold, 0.0001)
}

func TestNode_DecodeToolCall(t *testing.T) {
	n := &Node{Type: KindToolCall, Config: map[string]any{
		"toolId":         "lookup_order",
		"inputs":         map[string]any{"orderId": "{{order_id}}"},
		"resultVariable": "order",
		"onError":        map[string]any{"action": "continue"},
	}}
	cfg, err := n.DecodeToolCall()
	require.NoError(t, err)
	assert.Equal(t, "lookup_order", cfg.ToolID)
	require.NotNil(t, cfg.OnError)
	assert.Equal(t, ToolErrorContinue, cfg.OnError.Action)
}

func TestNode_DecodeCondition(t *testing.T) {
	n := &Node{Type: KindCondition, Config: map[string]any{
		"conditions": []any{
			map[string]any{"variable": "age", "operator": "greater_than", "value": 18, "targetNodeId": "adult"},
		},
		"defaultNodeId": "minor",
	}}
	cfg, err := n.DecodeCondition()
	require.NoError(t, err)
	require.Len(t, cfg.Conditions, 1)
	assert.Equal(t, OpGreaterThan, cfg.Conditions[0].Operator)
	assert.Equal(t, "minor", cfg.DefaultNode)
}

func TestNode_DecodeEnd(t *testing.T) {
	n := &Node{Type: KindEnd, Config: map[string]any{
		"message": "Goodbye",
		"status":  "completed",
	}}
	cfg, err := n.DecodeEnd()
	require.NoError(t, err)
	assert.Equal(t, StatusCompleted, cfg.Status)
}
