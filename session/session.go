// Copyright 2026 The Flowrt Authors.
// Licensed under the Apache License, Version 2.0.

// Package session defines the durable per-user execution state the
// engine drives forward one turn at a time, and the store contract that
// persists it across turns.
package session

import "time"

// Status enumerates the lifecycle states of a session, per
// specification §3.
type Status string

// Session status constants.
const (
	StatusActive       Status = "active"
	StatusWaitingInput Status = "waiting_input"
	StatusCompleted    Status = "completed"
	StatusEscalated    Status = "escalated"
	StatusAbandoned    Status = "abandoned"
	StatusError        Status = "error"
	StatusTimeout      Status = "timeout"
)

// Terminal reports whether status permits no further execution, per
// invariant I5.
func (s Status) Terminal() bool {
	switch s {
	case StatusCompleted, StatusEscalated, StatusAbandoned, StatusError:
		return true
	default:
		return false
	}
}

// StepError is the structured error recorded against a failed
// ExecutionStep. It is a narrow view of flowerr.Error kept dependency-free
// so the session package does not need to import the flowerr package;
// the engine populates it from a *flowerr.Error.
type StepError struct {
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}

// ExecutionStep is one append-only entry in a session's audit history,
// per specification §3.
type ExecutionStep struct {
	StepID    string         `json:"stepId"`
	NodeID    string         `json:"nodeId"`
	NodeKind  string         `json:"nodeKind"`
	Timestamp time.Time      `json:"timestamp"`
	Input     any            `json:"input,omitempty"`
	Output    any            `json:"output,omitempty"`
	DurationMS int64         `json:"duration"`
	Error     *StepError     `json:"error,omitempty"`
}

// Session is the mutable execution state of one user's progress through a
// flow, per specification §3.
type Session struct {
	ID            string         `json:"id"`
	FlowID        string         `json:"flowId"`
	CurrentNodeID string         `json:"currentNodeId"`
	Variables     map[string]any `json:"variables"`
	History       []ExecutionStep `json:"history"`
	Status        Status         `json:"status"`
	CreatedAt     time.Time      `json:"createdAt"`
	UpdatedAt     time.Time      `json:"updatedAt"`
	Metadata      map[string]any `json:"metadata,omitempty"`
}

// New creates a fresh, active session positioned at entryNodeID.
func New(id, flowID, entryNodeID string) *Session {
	now := time.Now().UTC()
	return &Session{
		ID:            id,
		FlowID:        flowID,
		CurrentNodeID: entryNodeID,
		Variables:     make(map[string]any),
		History:       []ExecutionStep{},
		Status:        StatusActive,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

// Clone returns a deep-enough copy of sess suitable for storing in an
// in-memory backend without aliasing the caller's maps/slices.
func (sess *Session) Clone() *Session {
	if sess == nil {
		return nil
	}
	cp := *sess
	cp.Variables = make(map[string]any, len(sess.Variables))
	for k, v := range sess.Variables {
		cp.Variables[k] = v
	}
	cp.History = make([]ExecutionStep, len(sess.History))
	copy(cp.History, sess.History)
	if sess.Metadata != nil {
		cp.Metadata = make(map[string]any, len(sess.Metadata))
		for k, v := range sess.Metadata {
			cp.Metadata[k] = v
		}
	}
	return &cp
}

// ApplyVariables applies a shallow-overwrite patch to sess.Variables, per
// invariant I4: nested object values are replaced wholesale, never merged.
func (sess *Session) ApplyVariables(patch map[string]any) {
	if len(patch) == 0 {
		return
	}
	if sess.Variables == nil {
		sess.Variables = make(map[string]any)
	}
	for k, v := range patch {
		sess.Variables[k] = v
	}
}

// AppendStep appends a step to sess.History. History is monotonic per
// invariant I3: this is the only mutator the engine uses to grow it.
func (sess *Session) AppendStep(step ExecutionStep) {
	sess.History = append(sess.History, step)
}
