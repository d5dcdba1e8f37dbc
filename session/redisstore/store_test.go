// Copyright 2026 The Flowrt Authors.
// Licensed under the Apache License, Version 2.0.

package redisstore

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flowrt/flowrt/session"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return New(client)
}

func TestStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	sess := session.New("sess-1", "flow-1", "start")
	sess.ApplyVariables(map[string]any{"count": 2.0, "name": "Ada"})
	sess.AppendStep(session.ExecutionStep{StepID: "1", NodeID: "start", NodeKind: "start"})

	require.NoError(t, store.Set(ctx, sess))

	got, ok, err := store.Get(ctx, "sess-1")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, sess.ID, got.ID)
	assert.Equal(t, sess.FlowID, got.FlowID)
	assert.Equal(t, sess.CurrentNodeID, got.CurrentNodeID)
	assert.Equal(t, sess.Variables["count"], got.Variables["count"])
	assert.Equal(t, sess.Variables["name"], got.Variables["name"])
	require.Len(t, got.History, 1)
	assert.Equal(t, "start", got.History[0].NodeID)
}

func TestStore_GetMissing(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	_, ok, err := store.Get(ctx, "ghost")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestStore_Delete(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	sess := session.New("sess-1", "flow-1", "start")
	require.NoError(t, store.Set(ctx, sess))
	require.NoError(t, store.Delete(ctx, "sess-1"))

	_, ok, err := store.Get(ctx, "sess-1")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestWithKeyPrefix(t *testing.T) {
	ctx := context.Background()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	store := New(client, WithKeyPrefix("custom:"))
	sess := session.New("sess-1", "flow-1", "start")
	require.NoError(t, store.Set(ctx, sess))

	assert.True(t, mr.Exists("custom:sess-1"))
}
