// Copyright 2026 The Flowrt Authors.
// Licensed under the Apache License, Version 2.0.

package engine

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flowrt/flowrt/flow"
	"github.com/flowrt/flowrt/flowerr"
	"github.com/flowrt/flowrt/handler"
	"github.com/flowrt/flowrt/service"
	"github.com/flowrt/flowrt/session"
	"github.com/flowrt/flowrt/session/inmemory"
)

type stubClassifier struct {
	result service.ClassifyResult
}

func (s *stubClassifier) Classify(context.Context, string, string,
	[]service.IntentDescriptor, *flow.ModelConfig) (service.ClassifyResult, error) {
	return s.result, nil
}

// routerFlow builds: start -> router -> {billing_msg, support_msg} -> end.
func routerFlow() *flow.Flow {
	f := &flow.Flow{
		Version:   "1.0",
		ID:        "support",
		EntryNode: "start",
		Nodes: []*flow.Node{
			{ID: "start", Type: flow.KindStart},
			{ID: "router", Type: flow.KindLLMRouter, Config: map[string]any{
				"systemPrompt": "route",
				"intents": []any{
					map[string]any{"name": "billing", "targetNodeId": "billing_msg"},
					map[string]any{"name": "support", "targetNodeId": "support_msg"},
				},
				"fallbackIntent": "support",
			}},
			{ID: "billing_msg", Type: flow.KindMessage, Config: map[string]any{"message": "Let's sort your bill."}},
			{ID: "support_msg", Type: flow.KindMessage, Config: map[string]any{"message": "How can I help?"}},
			{ID: "end", Type: flow.KindEnd, Config: map[string]any{"status": "completed"}},
		},
		Edges: []*flow.Edge{
			{ID: "e1", Source: "start", Target: "router"},
			{ID: "e2", Source: "billing_msg", Target: "end"},
			{ID: "e3", Source: "support_msg", Target: "end"},
		},
	}
	f.Index()
	return f
}

func TestEngine_HappyPathRouter(t *testing.T) {
	ctx := context.Background()
	svcs := handler.Services{AI: &stubClassifier{result: service.ClassifyResult{Intent: "billing", Confidence: 0.9}}}
	eng := New(inmemory.New(), svcs)

	f := routerFlow()
	sess, err := eng.StartSession(ctx, f)
	require.NoError(t, err)
	assert.Equal(t, session.StatusCompleted, sess.Status)
	assert.Equal(t, "billing", sess.Variables["last_intent"])
}

func collectFlow() *flow.Flow {
	f := &flow.Flow{
		Version:   "1.0",
		ID:        "signup",
		EntryNode: "start",
		Nodes: []*flow.Node{
			{ID: "start", Type: flow.KindStart},
			{ID: "collect", Type: flow.KindCollectInput, Config: map[string]any{
				"prompt":       "What is your email?",
				"variableName": "email",
				"validation":   map[string]any{"type": "email", "errorMessage": "Not an email."},
				"retry":        map[string]any{"maxAttempts": 2, "retryMessage": "Try again."},
			}},
			{ID: "end", Type: flow.KindEnd, Config: map[string]any{"status": "completed"}},
		},
		Edges: []*flow.Edge{
			{ID: "e1", Source: "start", Target: "collect"},
			{ID: "e2", Source: "collect", Target: "end"},
		},
	}
	f.Index()
	return f
}

func TestEngine_ValidationRetryThenSuccess(t *testing.T) {
	ctx := context.Background()
	eng := New(inmemory.New(), handler.Services{})
	f := collectFlow()

	sess, err := eng.StartSession(ctx, f)
	require.NoError(t, err)
	require.Equal(t, session.StatusWaitingInput, sess.Status)

	sess, err = eng.ProcessInput(ctx, f, sess.ID, "not-an-email")
	require.NoError(t, err)
	require.Equal(t, session.StatusWaitingInput, sess.Status)
	assert.Equal(t, 1, sess.Variables["email_attempts"])

	sess, err = eng.ProcessInput(ctx, f, sess.ID, "ada@example.com")
	require.NoError(t, err)
	assert.Equal(t, session.StatusCompleted, sess.Status)
	assert.Equal(t, "ada@example.com", sess.Variables["email"])
}

func TestEngine_RetryExhausted(t *testing.T) {
	ctx := context.Background()
	eng := New(inmemory.New(), handler.Services{})
	f := collectFlow()

	sess, err := eng.StartSession(ctx, f)
	require.NoError(t, err)

	sess, err = eng.ProcessInput(ctx, f, sess.ID, "bad-1")
	require.NoError(t, err)
	require.Equal(t, session.StatusWaitingInput, sess.Status)

	sess, err = eng.ProcessInput(ctx, f, sess.ID, "bad-2")
	require.NoError(t, err)
	assert.Equal(t, session.StatusError, sess.Status)

	last := sess.History[len(sess.History)-1]
	require.NotNil(t, last.Error)
	assert.Equal(t, string(flowerr.CodeMaxRetriesExceeded), last.Error.Code)
}

func conditionFlow() *flow.Flow {
	f := &flow.Flow{
		Version:   "1.0",
		ID:        "age-gate",
		EntryNode: "start",
		Nodes: []*flow.Node{
			{ID: "start", Type: flow.KindStart, Config: map[string]any{
				"initVariables": map[string]any{"user": map[string]any{"age": 25.0}},
			}},
			{ID: "cond", Type: flow.KindCondition, Config: map[string]any{
				"conditions": []any{
					map[string]any{"variable": "user.age", "operator": "greater_than_or_equal", "value": 18.0, "targetNodeId": "adult"},
				},
				"defaultNodeId": "minor",
			}},
			{ID: "adult", Type: flow.KindEnd, Config: map[string]any{"status": "completed", "message": "adult"}},
			{ID: "minor", Type: flow.KindEnd, Config: map[string]any{"status": "completed", "message": "minor"}},
		},
		Edges: []*flow.Edge{
			{ID: "e1", Source: "start", Target: "cond"},
		},
	}
	f.Index()
	return f
}

func TestEngine_ConditionWithDottedPath(t *testing.T) {
	ctx := context.Background()
	eng := New(inmemory.New(), handler.Services{})
	f := conditionFlow()

	sess, err := eng.StartSession(ctx, f)
	require.NoError(t, err)
	assert.Equal(t, session.StatusCompleted, sess.Status)
	assert.Equal(t, "adult", sess.CurrentNodeID)
}

func escalateFlow() *flow.Flow {
	f := &flow.Flow{
		Version:   "1.0",
		ID:        "escalation",
		EntryNode: "start",
		Nodes: []*flow.Node{
			{ID: "start", Type: flow.KindStart},
			{ID: "esc", Type: flow.KindEscalate, Config: map[string]any{"reason": "angry", "handoffMessage": "handing off"}},
		},
		Edges: []*flow.Edge{
			{ID: "e1", Source: "start", Target: "esc"},
		},
	}
	f.Index()
	return f
}

func TestEngine_EscalationTerminates(t *testing.T) {
	ctx := context.Background()
	eng := New(inmemory.New(), handler.Services{})
	f := escalateFlow()

	sess, err := eng.StartSession(ctx, f)
	require.NoError(t, err)
	assert.Equal(t, session.StatusEscalated, sess.Status)
}

func TestEngine_ProcessInputRejectsNonWaitingSession(t *testing.T) {
	ctx := context.Background()
	eng := New(inmemory.New(), handler.Services{})
	f := escalateFlow()

	sess, err := eng.StartSession(ctx, f)
	require.NoError(t, err)
	require.Equal(t, session.StatusEscalated, sess.Status)

	_, err = eng.ProcessInput(ctx, f, sess.ID, "hello")
	require.Error(t, err)
	fe, ok := flowerr.As(err)
	require.True(t, ok)
	assert.Equal(t, flowerr.CodeSessionNotWaiting, fe.Code)
}

func TestEngine_SeedsDeclaredVariableDefaults(t *testing.T) {
	ctx := context.Background()
	f := &flow.Flow{
		Version:   "1.0",
		ID:        "defaults",
		EntryNode: "start",
		Nodes: []*flow.Node{
			{ID: "start", Type: flow.KindStart, Config: map[string]any{
				"initVariables": map[string]any{"tier": "gold"},
			}},
			{ID: "end", Type: flow.KindEnd, Config: map[string]any{
				"status": "completed", "message": "{{locale}}/{{tier}}",
			}},
		},
		Edges: []*flow.Edge{
			{ID: "e1", Source: "start", Target: "end"},
		},
		Variables: []flow.VariableDecl{
			{Name: "locale", Type: flow.VarString, DefaultValue: "en-US"},
			{Name: "tier", Type: flow.VarString, DefaultValue: "bronze"},
		},
	}
	f.Index()

	eng := New(inmemory.New(), handler.Services{})
	sess, err := eng.StartSession(ctx, f)
	require.NoError(t, err)

	// locale keeps its declared default; tier is overwritten by Start's
	// initVariables, which applies after the declared defaults.
	assert.Equal(t, "en-US", sess.Variables["locale"])
	assert.Equal(t, "gold", sess.Variables["tier"])
}

func TestEngine_MaxStepsExceeded(t *testing.T) {
	ctx := context.Background()
	f := &flow.Flow{
		Version:   "1.0",
		ID:        "loop",
		EntryNode: "a",
		Nodes: []*flow.Node{
			{ID: "a", Type: flow.KindMessage, Config: map[string]any{"message": "looping"}},
			{ID: "b", Type: flow.KindMessage, Config: map[string]any{"message": "looping"}},
		},
		Edges: []*flow.Edge{
			{ID: "e1", Source: "a", Target: "b"},
			{ID: "e2", Source: "b", Target: "a"},
		},
	}
	f.Index()

	eng := New(inmemory.New(), handler.Services{}, WithMaxSteps(5))
	sess, err := eng.StartSession(ctx, f)
	require.NoError(t, err)
	assert.Equal(t, session.StatusError, sess.Status)
	last := sess.History[len(sess.History)-1]
	require.NotNil(t, last.Error)
	assert.Equal(t, string(flowerr.CodeMaxStepsExceeded), last.Error.Code)
}
