// Copyright 2026 The Flowrt Authors.
// Licensed under the Apache License, Version 2.0.

// Package engine drives a flow definition forward against a live
// session, one user turn at a time, per specification §4.6. It is the
// only package that mutates a session's lifecycle: handlers describe
// effects, the executor dispatches to them, and engine applies the
// effects and persists the result.
package engine

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/flowrt/flowrt/config"
	"github.com/flowrt/flowrt/event"
	"github.com/flowrt/flowrt/executor"
	"github.com/flowrt/flowrt/flow"
	"github.com/flowrt/flowrt/flowerr"
	"github.com/flowrt/flowrt/handler"
	"github.com/flowrt/flowrt/internal/flog"
	"github.com/flowrt/flowrt/session"
)

// Engine binds a session store, a node executor, and an event bus
// together to run flow definitions. One Engine may drive any number of
// distinct flows; the flow is supplied per call rather than registered
// up front.
type Engine struct {
	store    session.Store
	exec     *executor.Executor
	bus      *event.Bus
	services handler.Services
	maxSteps int
}

// Option configures an Engine built by New.
type Option func(*Engine)

// WithExecutor overrides the default executor (handler.Default()
// wrapped in executor.New). Mainly useful in tests that register a
// fake handler.Registry.
func WithExecutor(exec *executor.Executor) Option {
	return func(e *Engine) { e.exec = exec }
}

// WithEventBus overrides the engine's event bus. Mainly useful when a
// caller wants to share one bus across multiple engines.
func WithEventBus(bus *event.Bus) Option {
	return func(e *Engine) { e.bus = bus }
}

// WithMaxSteps overrides config.MaxSteps() for this engine.
func WithMaxSteps(n int) Option {
	return func(e *Engine) { e.maxSteps = n }
}

// New builds an Engine persisting sessions to store and calling out to
// svcs for AI/knowledge/tool side effects.
func New(store session.Store, svcs handler.Services, opts ...Option) *Engine {
	e := &Engine{
		store:    store,
		exec:     executor.New(nil),
		bus:      event.NewBus(),
		services: svcs,
		maxSteps: config.MaxSteps(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Subscribe registers h on the engine's event bus and returns a function
// that removes it.
func (e *Engine) Subscribe(h event.Handler) (unsubscribe func()) {
	return e.bus.Subscribe(h)
}

// GetSession returns the session with the given id, if one exists.
func (e *Engine) GetSession(ctx context.Context, sessionID string) (*session.Session, bool, error) {
	return e.store.Get(ctx, sessionID)
}

// EndSession removes a session from the store. It does not emit an
// event; callers that want a terminal notification should route the
// session through an End or Escalate node instead.
func (e *Engine) EndSession(ctx context.Context, sessionID string) error {
	return e.store.Delete(ctx, sessionID)
}

// StartSession creates a new session at f's entry node and runs it
// forward until the first pause, completion, or error, per
// specification §4.6.
func (e *Engine) StartSession(ctx context.Context, f *flow.Flow) (*session.Session, error) {
	if err := f.ValidateEntry(); err != nil {
		return nil, flowerr.Newf(flowerr.CodeEntryNotFound, "%s", err.Error())
	}

	sess := session.New(uuid.New().String(), f.ID, f.EntryNode)
	sess.ApplyVariables(declaredDefaults(f.Variables))
	e.bus.Emit(event.New(event.TypeSessionStarted, sess.ID, map[string]any{"flowId": f.ID}))

	return e.run(ctx, f, sess, handler.Input{})
}

// ProcessInput resumes a waiting session with raw and runs it forward
// until the next pause, completion, or error, per specification §4.6.
// It is an error to call ProcessInput on a session that is not
// currently waiting for input.
func (e *Engine) ProcessInput(ctx context.Context, f *flow.Flow, sessionID, raw string) (*session.Session, error) {
	sess, ok, err := e.store.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, flowerr.Newf(flowerr.CodeSessionNotFound, "session %q not found", sessionID)
	}
	if sess.Status != session.StatusWaitingInput {
		return nil, flowerr.Newf(flowerr.CodeSessionNotWaiting,
			"session %q is not waiting for input (status=%s)", sessionID, sess.Status)
	}

	e.bus.Emit(event.New(event.TypeInputReceived, sess.ID, map[string]any{"value": raw}))
	sess.Status = session.StatusActive

	return e.run(ctx, f, sess, handler.Input{Value: raw, Present: true})
}

// run drives sess forward through f, dispatching one node per
// iteration, until a handler pauses the run (waitForInput), ends it
// (end/escalate), the step bound is exceeded, or an error occurs. The
// session is persisted exactly once, on the way out.
func (e *Engine) run(ctx context.Context, f *flow.Flow, sess *session.Session, in handler.Input) (*session.Session, error) {
	steps := 0
	for {
		if sess.Status.Terminal() {
			break
		}
		if steps >= e.maxSteps {
			fe := flowerr.Newf(flowerr.CodeMaxStepsExceeded,
				"session %q exceeded the maximum of %d steps in a single run", sess.ID, e.maxSteps)
			if node, ok := f.NodeByID(sess.CurrentNodeID); ok {
				e.recordStep(sess, node, nil, 0, fe)
			}
			e.fail(sess, fe)
			break
		}
		steps++

		node, ok := f.NodeByID(sess.CurrentNodeID)
		if !ok {
			e.fail(sess, flowerr.Newf(flowerr.CodeNodeNotFound,
				"node %q not found in flow %q", sess.CurrentNodeID, f.ID))
			break
		}

		e.bus.Emit(event.New(event.TypeNodeStarted, sess.ID, map[string]any{
			"nodeId": node.ID, "nodeType": string(node.Type),
		}))

		start := time.Now()
		result, err := e.exec.Execute(ctx, node, sess, in, e.services)
		duration := time.Since(start)
		in = handler.Input{} // only the first node of a turn sees the caller's input

		if err != nil {
			fe, _ := flowerr.As(err)
			if fe == nil {
				fe = flowerr.Newf(flowerr.CodeExecutionError, "%s", err.Error())
			}
			e.recordStep(sess, node, nil, duration, fe)
			e.fail(sess, fe)
			break
		}

		if result.Error != nil {
			e.recordStep(sess, node, result.Output, duration, result.Error)
			e.fail(sess, result.Error)
			break
		}

		e.recordStep(sess, node, result.Output, duration, nil)
		e.bus.Emit(event.New(event.TypeNodeCompleted, sess.ID, map[string]any{
			"nodeId": node.ID, "nodeType": string(node.Type),
		}))

		sess.ApplyVariables(result.Variables)

		if result.Message != nil {
			e.bus.Emit(event.New(event.TypeMessageSent, sess.ID, map[string]any{
				"nodeId": node.ID, "message": *result.Message,
			}))
		}

		if result.WaitForInput {
			sess.Status = session.StatusWaitingInput
			break
		}

		if result.End {
			status := result.TerminalStatus
			if status == "" {
				status = session.StatusCompleted
			}
			sess.Status = status
			if status == session.StatusEscalated {
				e.bus.Emit(event.New(event.TypeSessionEscalated, sess.ID, map[string]any{"nodeId": node.ID}))
			} else {
				e.bus.Emit(event.New(event.TypeSessionCompleted, sess.ID, map[string]any{
					"nodeId": node.ID, "status": string(status),
				}))
			}
			break
		}

		next, ok := e.nextNode(f, node, result)
		if !ok {
			sess.Status = session.StatusCompleted
			e.bus.Emit(event.New(event.TypeSessionCompleted, sess.ID, map[string]any{
				"nodeId": node.ID, "status": string(session.StatusCompleted),
			}))
			break
		}
		sess.CurrentNodeID = next
	}

	sess.UpdatedAt = time.Now().UTC()
	if err := e.store.Set(ctx, sess); err != nil {
		flog.Errorf("engine: persisting session %s: %v", sess.ID, err)
		return sess, err
	}
	return sess, nil
}

// nextNode resolves the node to visit after node, per specification
// §4.6: an explicit NextNodeID wins; otherwise the node's outgoing
// edges are consulted, preferring one whose sourceHandle or label
// matches a "handle" hint the handler left in its output, and falling
// back to the first declared edge. A node with no outgoing edges and no
// explicit target ends the run.
func (e *Engine) nextNode(f *flow.Flow, node *flow.Node, result *handler.NodeResult) (string, bool) {
	if result.NextNodeID != nil {
		return *result.NextNodeID, true
	}

	edges := f.OutgoingEdges(node.ID)
	if len(edges) == 0 {
		return "", false
	}

	if m, ok := result.Output.(map[string]any); ok {
		if handle, ok := m["handle"].(string); ok && handle != "" {
			for _, edge := range edges {
				if edge.SourceHandle == handle || edge.Label == handle {
					return edge.Target, true
				}
			}
		}
	}

	return edges[0].Target, true
}

func (e *Engine) recordStep(sess *session.Session, node *flow.Node, output any, duration time.Duration, fe *flowerr.Error) {
	step := session.ExecutionStep{
		StepID:     uuid.New().String(),
		NodeID:     node.ID,
		NodeKind:   string(node.Type),
		Timestamp:  time.Now().UTC(),
		Output:     output,
		DurationMS: duration.Milliseconds(),
	}
	if fe != nil {
		step.Error = &session.StepError{Code: string(fe.Code), Message: fe.Message, Details: fe.Details}
	}
	sess.AppendStep(step)
}

// declaredDefaults builds the initial variable patch from a flow's
// declared variables, per specification §4.6: session variables are
// seeded from variables[].defaultValue before Start's initVariables are
// applied. Declarations with no defaultValue contribute nothing.
func declaredDefaults(vars []flow.VariableDecl) map[string]any {
	defaults := make(map[string]any, len(vars))
	for _, v := range vars {
		if v.DefaultValue != nil {
			defaults[v.Name] = v.DefaultValue
		}
	}
	return defaults
}

func (e *Engine) fail(sess *session.Session, fe *flowerr.Error) {
	sess.Status = session.StatusError
	e.bus.Emit(event.New(event.TypeNodeError, sess.ID, map[string]any{
		"code": string(fe.Code), "message": fe.Message,
	}))
}
