// Copyright 2026 The Flowrt Authors.
// Licensed under the Apache License, Version 2.0.

package handler

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flowrt/flowrt/flow"
	"github.com/flowrt/flowrt/flowerr"
	"github.com/flowrt/flowrt/session"
)

func emailNode() *flow.Node {
	return &flow.Node{ID: "collect", Type: flow.KindCollectInput, Config: map[string]any{
		"prompt":       "What is your email?",
		"variableName": "email",
		"validation":   map[string]any{"type": "email", "errorMessage": "That's not an email."},
		"retry":        map[string]any{"maxAttempts": 2, "retryMessage": "Please try again."},
	}}
}

func TestCollectInput_FirstVisitPrompts(t *testing.T) {
	sess := session.New("sess-1", "flow-1", "collect")
	res, err := CollectInput(context.Background(), emailNode(), sess, Input{}, Services{})
	require.NoError(t, err)
	assert.True(t, res.WaitForInput)
	require.NotNil(t, res.Message)
	assert.Equal(t, "What is your email?", *res.Message)
}

func TestCollectInput_ValidInputStoresVariable(t *testing.T) {
	sess := session.New("sess-1", "flow-1", "collect")
	res, err := CollectInput(context.Background(), emailNode(), sess, Input{Value: "ada@example.com", Present: true}, Services{})
	require.NoError(t, err)
	assert.False(t, res.WaitForInput)
	assert.Equal(t, "ada@example.com", res.Variables["email"])
	assert.Equal(t, 0, res.Variables["email_attempts"])
}

func TestCollectInput_RetryThenSuccess(t *testing.T) {
	sess := session.New("sess-1", "flow-1", "collect")

	res, err := CollectInput(context.Background(), emailNode(), sess, Input{Value: "not-an-email", Present: true}, Services{})
	require.NoError(t, err)
	assert.True(t, res.WaitForInput)
	assert.Nil(t, res.Error)
	assert.Equal(t, 1, res.Variables["email_attempts"])
	require.NotNil(t, res.Message)
	assert.Equal(t, "Please try again.", *res.Message)
	sess.ApplyVariables(res.Variables)

	res, err = CollectInput(context.Background(), emailNode(), sess, Input{Value: "ada@example.com", Present: true}, Services{})
	require.NoError(t, err)
	assert.False(t, res.WaitForInput)
	assert.Equal(t, "ada@example.com", res.Variables["email"])
}

func TestCollectInput_RetryExhausted(t *testing.T) {
	sess := session.New("sess-1", "flow-1", "collect")
	sess.Variables["email_attempts"] = 1

	res, err := CollectInput(context.Background(), emailNode(), sess, Input{Value: "still-bad", Present: true}, Services{})
	require.NoError(t, err)
	require.NotNil(t, res.Error)
	assert.Equal(t, flowerr.CodeMaxRetriesExceeded, res.Error.Code)
}

func TestCollectInput_NoRetryConfigured(t *testing.T) {
	node := &flow.Node{ID: "collect", Type: flow.KindCollectInput, Config: map[string]any{
		"variableName": "email",
		"validation":   map[string]any{"type": "email"},
	}}
	sess := session.New("sess-1", "flow-1", "collect")

	res, err := CollectInput(context.Background(), node, sess, Input{Value: "not-an-email", Present: true}, Services{})
	require.NoError(t, err)
	assert.True(t, res.WaitForInput)
	require.NotNil(t, res.Message)
	assert.Equal(t, "Invalid input. Please try again.", *res.Message)
}
