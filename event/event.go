// Copyright 2026 The Flowrt Authors.
// Licensed under the Apache License, Version 2.0.

// Package event implements the engine's synchronous lifecycle event bus,
// per specification §4.7 and §9 ("Event bus is synchronous by design").
package event

import (
	"time"

	"github.com/google/uuid"
)

// Type enumerates the event taxonomy defined in specification §4.7.
type Type string

// Event type constants.
const (
	TypeSessionStarted   Type = "session_started"
	TypeNodeStarted      Type = "node_started"
	TypeNodeCompleted    Type = "node_completed"
	TypeNodeError        Type = "node_error"
	TypeMessageSent      Type = "message_sent"
	TypeInputReceived    Type = "input_received"
	TypeSessionCompleted Type = "session_completed"
	TypeSessionEscalated Type = "session_escalated"
)

// Event is a single lifecycle notification fanned out to subscribers.
type Event struct {
	ID        string         `json:"id"`
	Type      Type           `json:"type"`
	SessionID string         `json:"sessionId"`
	Timestamp time.Time      `json:"timestamp"`
	Data      map[string]any `json:"data,omitempty"`
}

// New creates an Event of the given type for sessionID, stamped with a
// generated id and the current time.
func New(typ Type, sessionID string, data map[string]any) *Event {
	return &Event{
		ID:        uuid.New().String(),
		Type:      typ,
		SessionID: sessionID,
		Timestamp: time.Now().UTC(),
		Data:      data,
	}
}
