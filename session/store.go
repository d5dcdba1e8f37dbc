// Copyright 2026 The Flowrt Authors.
// Licensed under the Apache License, Version 2.0.

package session

import "context"

// Store is the session persistence contract the engine depends on,
// per specification §4.2. Implementations must preserve insertion and
// write order in the sense that Set is a full replacement, atomic with
// respect to concurrent Gets of the same id.
type Store interface {
	// Get returns the session for id, or ok=false if none exists.
	Get(ctx context.Context, id string) (sess *Session, ok bool, err error)
	// Set persists a full replacement of the session keyed by its ID.
	Set(ctx context.Context, sess *Session) error
	// Delete removes the session for id. Deleting a nonexistent id is
	// not an error.
	Delete(ctx context.Context, id string) error
}
