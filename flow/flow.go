// Copyright 2026 The Flowrt Authors.
// Licensed under the Apache License, Version 2.0.

// Package flow defines the wire-format data model for a conversational
// flow definition: the immutable graph of typed nodes and edges the
// engine interprets against a live session.
package flow

import "fmt"

// Metadata carries authoring information about a flow; none of it is
// consulted by the runtime.
type Metadata struct {
	CreatedAt string   `json:"createdAt,omitempty"`
	UpdatedAt string   `json:"updatedAt,omitempty"`
	CreatedBy string   `json:"createdBy,omitempty"`
	Tags      []string `json:"tags,omitempty"`
	Channel   string   `json:"channel,omitempty"`
}

// VariableType enumerates the five variable types a flow may declare.
type VariableType string

// Variable type constants.
const (
	VarString  VariableType = "string"
	VarNumber  VariableType = "number"
	VarBoolean VariableType = "boolean"
	VarObject  VariableType = "object"
	VarArray   VariableType = "array"
)

// VariableDecl is a declared flow variable.
type VariableDecl struct {
	Name         string       `json:"name"`
	Type         VariableType `json:"type"`
	DefaultValue any          `json:"defaultValue,omitempty"`
	Persistent   bool         `json:"persistent,omitempty"`
}

// ToolDecl is a declared tool, referenced by a Tool-Call node's toolId.
type ToolDecl struct {
	ID          string `json:"id"`
	Name        string `json:"name,omitempty"`
	Description string `json:"description,omitempty"`
}

// Edge connects two nodes, optionally labelled or tied to a handle on the
// source node for routing hints.
type Edge struct {
	ID            string `json:"id"`
	Source        string `json:"source"`
	Target        string `json:"target"`
	SourceHandle  string `json:"sourceHandle,omitempty"`
	TargetHandle  string `json:"targetHandle,omitempty"`
	Label         string `json:"label,omitempty"`
	Condition     string `json:"condition,omitempty"`
}

// Flow is the immutable, schema-valid graph the engine executes against a
// session. version must equal "1.0".
type Flow struct {
	Version     string         `json:"version"`
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	Description string         `json:"description,omitempty"`
	EntryNode   string         `json:"entryNode"`
	Nodes       []*Node        `json:"nodes"`
	Edges       []*Edge        `json:"edges"`
	Variables   []VariableDecl `json:"variables"`
	Tools       []ToolDecl     `json:"tools"`
	Metadata    Metadata       `json:"metadata,omitempty"`

	// nodeIndex and edgesFrom are built by Index for O(1) lookups.
	// They are not part of the wire format.
	nodeIndex map[string]*Node
	edgesFrom map[string][]*Edge
}

// Index builds the internal id->node and source->edges lookup tables.
// It must be called (directly, or implicitly via ValidateEntry, NodeByID or
// OutgoingEdges) before
// the flow is driven by the engine; it is idempotent and cheap to repeat.
func (f *Flow) Index() {
	f.nodeIndex = make(map[string]*Node, len(f.Nodes))
	for _, n := range f.Nodes {
		f.nodeIndex[n.ID] = n
	}
	f.edgesFrom = make(map[string][]*Edge, len(f.Edges))
	for _, e := range f.Edges {
		f.edgesFrom[e.Source] = append(f.edgesFrom[e.Source], e)
	}
}

// NodeByID returns the node with the given id, indexing the flow on first
// use if necessary.
func (f *Flow) NodeByID(id string) (*Node, bool) {
	if f.nodeIndex == nil {
		f.Index()
	}
	n, ok := f.nodeIndex[id]
	return n, ok
}

// OutgoingEdges returns the edges declared in order whose source is id,
// indexing the flow on first use if necessary.
func (f *Flow) OutgoingEdges(id string) []*Edge {
	if f.edgesFrom == nil {
		f.Index()
	}
	return f.edgesFrom[id]
}

// UniqueOutgoingEdge returns the single outgoing edge from id. Handlers
// that have no explicit routing logic rely on this; it is an error for a
// well-formed flow to call it on a node with zero or multiple outgoing
// edges when no other routing signal is available.
func (f *Flow) UniqueOutgoingEdge(id string) (*Edge, bool) {
	edges := f.OutgoingEdges(id)
	if len(edges) == 0 {
		return nil, false
	}
	return edges[0], true
}

// ValidateEntry checks that EntryNode resolves to a node in the flow.
func (f *Flow) ValidateEntry() error {
	if _, ok := f.NodeByID(f.EntryNode); !ok {
		return fmt.Errorf("entry node %q not found in flow %q", f.EntryNode, f.ID)
	}
	return nil
}

// ToolByID returns the tool declaration with the given id.
func (f *Flow) ToolByID(id string) (ToolDecl, bool) {
	for _, t := range f.Tools {
		if t.ID == id {
			return t, true
		}
	}
	return ToolDecl{}, false
}
