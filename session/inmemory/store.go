// Copyright 2026 The Flowrt Authors.
// Licensed under the Apache License, Version 2.0.

// Package inmemory provides the default, process-wide session store.
package inmemory

import (
	"context"
	"sync"

	"github.com/flowrt/flowrt/session"
)

// Store is a process-wide, mutex-guarded map from session id to session.
// It is the default session.Store implementation, matching the shape of
// the teacher's in-memory session service: a single map instance shared
// across the process, guarded by one RWMutex, with Set performing a full
// replacement under the write lock so concurrent Gets never observe a
// partially-updated session.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*session.Session
}

// New creates an empty in-memory store.
func New() *Store {
	return &Store{sessions: make(map[string]*session.Session)}
}

var _ session.Store = (*Store)(nil)

// Get implements session.Store.
func (s *Store) Get(_ context.Context, id string) (*session.Session, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.sessions[id]
	if !ok {
		return nil, false, nil
	}
	return sess.Clone(), true, nil
}

// Set implements session.Store.
func (s *Store) Set(_ context.Context, sess *session.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sess.ID] = sess.Clone()
	return nil
}

// Delete implements session.Store.
func (s *Store) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
	return nil
}

// Len returns the number of sessions currently stored. Intended for
// tests and debug tooling.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}
