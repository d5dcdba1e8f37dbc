// Copyright 2026 The Flowrt Authors.
// Licensed under the Apache License, Version 2.0.

package handler

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flowrt/flowrt/flow"
	"github.com/flowrt/flowrt/session"
)

func TestEnd_DefaultsToCompleted(t *testing.T) {
	node := &flow.Node{ID: "end", Type: flow.KindEnd, Config: map[string]any{
		"message": "Goodbye {{name}}",
	}}
	sess := session.New("sess-1", "flow-1", "end")
	sess.Variables["name"] = "Ada"

	res, err := End(context.Background(), node, sess, Input{}, Services{})
	require.NoError(t, err)
	assert.True(t, res.End)
	assert.Equal(t, session.StatusCompleted, res.TerminalStatus)
	require.NotNil(t, res.Message)
	assert.Equal(t, "Goodbye Ada", *res.Message)
}

func TestEnd_ExplicitAbandonedStatus(t *testing.T) {
	node := &flow.Node{ID: "end", Type: flow.KindEnd, Config: map[string]any{
		"status": "abandoned",
	}}
	sess := session.New("sess-1", "flow-1", "end")

	res, err := End(context.Background(), node, sess, Input{}, Services{})
	require.NoError(t, err)
	assert.Equal(t, session.StatusAbandoned, res.TerminalStatus)
}
