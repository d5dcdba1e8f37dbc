// Copyright 2026 The Flowrt Authors.
// Licensed under the Apache License, Version 2.0.

// Package redisstore provides a Redis-backed session.Store — the
// "external (e.g. key-value)" implementation specification §4.2 calls
// out as the alternative to the default in-memory store.
package redisstore

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/flowrt/flowrt/session"
)

const defaultKeyPrefix = "flowrt:session:"

// Store persists sessions to Redis as JSON, satisfying the round-trip
// property R2 (serialising a session and reloading it yields an equal
// session).
type Store struct {
	client    redis.Cmdable
	keyPrefix string
	ttl       time.Duration
}

// Option configures a Store.
type Option func(*Store)

// WithKeyPrefix overrides the default "flowrt:session:" key prefix.
func WithKeyPrefix(prefix string) Option {
	return func(s *Store) { s.keyPrefix = prefix }
}

// WithTTL sets an expiration for stored sessions. Zero (the default)
// means sessions never expire.
func WithTTL(ttl time.Duration) Option {
	return func(s *Store) { s.ttl = ttl }
}

// New creates a Store backed by client, which may be a *redis.Client, a
// *redis.ClusterClient, or (in tests) a client pointed at miniredis —
// anything satisfying redis.Cmdable.
func New(client redis.Cmdable, opts ...Option) *Store {
	s := &Store{client: client, keyPrefix: defaultKeyPrefix}
	for _, o := range opts {
		o(s)
	}
	return s
}

var _ session.Store = (*Store)(nil)

func (s *Store) key(id string) string {
	return s.keyPrefix + id
}

// Get implements session.Store.
func (s *Store) Get(ctx context.Context, id string) (*session.Session, bool, error) {
	raw, err := s.client.Get(ctx, s.key(id)).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redisstore: get %s: %w", id, err)
	}
	var sess session.Session
	if err := json.Unmarshal(raw, &sess); err != nil {
		return nil, false, fmt.Errorf("redisstore: unmarshal %s: %w", id, err)
	}
	return &sess, true, nil
}

// Set implements session.Store.
func (s *Store) Set(ctx context.Context, sess *session.Session) error {
	raw, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("redisstore: marshal %s: %w", sess.ID, err)
	}
	if err := s.client.Set(ctx, s.key(sess.ID), raw, s.ttl).Err(); err != nil {
		return fmt.Errorf("redisstore: set %s: %w", sess.ID, err)
	}
	return nil
}

// Delete implements session.Store.
func (s *Store) Delete(ctx context.Context, id string) error {
	if err := s.client.Del(ctx, s.key(id)).Err(); err != nil {
		return fmt.Errorf("redisstore: delete %s: %w", id, err)
	}
	return nil
}
