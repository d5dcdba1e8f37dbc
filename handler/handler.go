// Copyright 2026 The Flowrt Authors.
// Licensed under the Apache License, Version 2.0.

// Package handler implements the per-node-kind semantics of
// specification §4.4: one pure function per kind, each taking
// (node, session, input, services) and returning a NodeResult describing
// the side effects the engine should apply.
package handler

import (
	"context"

	"github.com/flowrt/flowrt/flow"
	"github.com/flowrt/flowrt/flowerr"
	"github.com/flowrt/flowrt/service"
	"github.com/flowrt/flowrt/session"
)

// Input is the optional user input handed to a handler. Present
// distinguishes "no input given" (entering a node) from an explicit
// empty string answer, which Collect-Input's two-phase semantics
// depend on.
type Input struct {
	Value   string
	Present bool
}

// Services bundles the three pluggable collaborators a handler may call.
type Services struct {
	AI      service.Classifier
	Knowledge service.Searcher
	Tools   service.ToolExecutor
}

// NodeResult is a handler's description of the side effects of visiting
// one node, per specification §4.4.
type NodeResult struct {
	// Message, if non-nil, is surfaced to the user.
	Message *string
	// Output is opaque log data recorded in the session's history.
	Output any
	// Variables is a shallow-overwrite patch applied to session variables.
	Variables map[string]any
	// NextNodeID, if non-nil, explicitly selects the next node, bypassing
	// edge-based routing.
	NextNodeID *string
	// WaitForInput, when true, tells the engine to pause the run and set
	// status = waiting_input.
	WaitForInput bool
	// End, when true, tells the engine to terminate the run with
	// TerminalStatus.
	End            bool
	TerminalStatus session.Status
	// Error, when non-nil, is fatal: the engine sets status = error and
	// stops.
	Error *flowerr.Error
}

// Func is the signature every node-kind handler implements.
type Func func(ctx context.Context, node *flow.Node, sess *session.Session,
	in Input, svcs Services) (*NodeResult, error)

// Registry maps a node kind to the handler implementing it. It is a
// direct map rather than virtual dispatch, matching the closed,
// tagged-union node set described in specification §9.
type Registry map[flow.Kind]Func

// Default returns the registry of built-in handlers for all nine node
// kinds.
func Default() Registry {
	return Registry{
		flow.KindStart:           Start,
		flow.KindMessage:         Message,
		flow.KindCollectInput:    CollectInput,
		flow.KindLLMRouter:       LLMRouter,
		flow.KindKnowledgeSearch: KnowledgeSearch,
		flow.KindToolCall:        ToolCall,
		flow.KindCondition:       Condition,
		flow.KindEscalate:        Escalate,
		flow.KindEnd:             End,
	}
}

func strPtr(s string) *string { return &s }
