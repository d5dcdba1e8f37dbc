// Copyright 2026 The Flowrt Authors.
// Licensed under the Apache License, Version 2.0.

package handler

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flowrt/flowrt/flow"
	"github.com/flowrt/flowrt/session"
)

func TestMessage_Interpolates(t *testing.T) {
	node := &flow.Node{ID: "msg", Type: flow.KindMessage, Config: map[string]any{
		"message": "Your balance is {{balance}}",
	}}
	sess := session.New("sess-1", "flow-1", "msg")
	sess.Variables["balance"] = 42.5

	res, err := Message(context.Background(), node, sess, Input{}, Services{})
	require.NoError(t, err)
	require.NotNil(t, res.Message)
	assert.Equal(t, "Your balance is 42.5", *res.Message)
}

func TestMessage_RespectsContextCancellation(t *testing.T) {
	node := &flow.Node{ID: "msg", Type: flow.KindMessage, Config: map[string]any{
		"message": "slow",
		"delay":   5000,
	}}
	sess := session.New("sess-1", "flow-1", "msg")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := Message(ctx, node, sess, Input{}, Services{})
	require.Error(t, err)
}
