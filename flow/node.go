// Copyright 2026 The Flowrt Authors.
// Licensed under the Apache License, Version 2.0.

package flow

import (
	"fmt"

	"github.com/mitchellh/mapstructure"
)

// Kind is the node discriminator. The node set is closed: nine kinds,
// resolved by the executor through a handler.Registry map keyed by kind
// rather than virtual dispatch.
type Kind string

// The closed set of node kinds.
const (
	KindStart           Kind = "start"
	KindMessage         Kind = "message"
	KindCollectInput    Kind = "collect_input"
	KindLLMRouter       Kind = "llm_router"
	KindKnowledgeSearch Kind = "knowledge_search"
	KindToolCall        Kind = "tool_call"
	KindCondition       Kind = "condition"
	KindEscalate        Kind = "escalate"
	KindEnd             Kind = "end"
)

// Position is the node's authoring-time canvas position. The runtime
// never reads it; it round-trips for the benefit of the (out-of-scope)
// flow editor.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Node is a single step in a flow: a tagged union discriminated by Type.
// Config carries the per-kind fields as a loosely-typed map, decoded into
// one of the *Config structs below on demand by the node's handler.
type Node struct {
	ID       string         `json:"id"`
	Type     Kind           `json:"type"`
	Name     string         `json:"name,omitempty"`
	Position Position       `json:"position,omitempty"`
	Config   map[string]any `json:"config,omitempty"`
}

func decode(src map[string]any, dst any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           dst,
		WeaklyTypedInput: true,
		TagName:          "json",
	})
	if err != nil {
		return fmt.Errorf("build config decoder: %w", err)
	}
	if err := dec.Decode(src); err != nil {
		return fmt.Errorf("decode node config: %w", err)
	}
	return nil
}

// StartConfig is the Start node's per-kind configuration.
type StartConfig struct {
	WelcomeMessage string         `json:"welcomeMessage,omitempty"`
	InitVariables  map[string]any `json:"initVariables,omitempty"`
}

// DecodeStart decodes n.Config into a StartConfig.
func (n *Node) DecodeStart() (*StartConfig, error) {
	cfg := &StartConfig{}
	return cfg, decode(n.Config, cfg)
}

// MessageConfig is the Message node's per-kind configuration.
type MessageConfig struct {
	Message string `json:"message"`
	DelayMS int    `json:"delay,omitempty"`
}

// DecodeMessage decodes n.Config into a MessageConfig.
func (n *Node) DecodeMessage() (*MessageConfig, error) {
	cfg := &MessageConfig{}
	return cfg, decode(n.Config, cfg)
}

// ValidationType enumerates Collect-Input's validation kinds.
type ValidationType string

// Validation type constants.
const (
	ValidationText   ValidationType = "text"
	ValidationNumber ValidationType = "number"
	ValidationEmail  ValidationType = "email"
	ValidationPhone  ValidationType = "phone"
	ValidationRegex  ValidationType = "regex"
	ValidationDate   ValidationType = "date"
	ValidationCustom ValidationType = "custom"
)

// Validation describes how a collected input is validated.
type Validation struct {
	Type         ValidationType `json:"type"`
	MinLength    *int           `json:"minLength,omitempty"`
	MaxLength    *int           `json:"maxLength,omitempty"`
	Min          *float64       `json:"min,omitempty"`
	Max          *float64       `json:"max,omitempty"`
	Pattern      string         `json:"pattern,omitempty"`
	ErrorMessage string         `json:"errorMessage,omitempty"`
}

// Retry configures Collect-Input's retry-on-invalid-input policy.
type Retry struct {
	MaxAttempts  int    `json:"maxAttempts"`
	RetryMessage string `json:"retryMessage,omitempty"`
}

// InputTimeout configures Collect-Input's caller-enforced input timeout.
type InputTimeout struct {
	Seconds      int    `json:"seconds"`
	TimeoutNodeID string `json:"timeoutNodeId,omitempty"`
}

// CollectInputConfig is the Collect-Input node's per-kind configuration.
type CollectInputConfig struct {
	Prompt       string        `json:"prompt,omitempty"`
	VariableName string        `json:"variableName"`
	Validation   *Validation   `json:"validation,omitempty"`
	Retry        *Retry        `json:"retry,omitempty"`
	Timeout      *InputTimeout `json:"timeout,omitempty"`
}

// DecodeCollectInput decodes n.Config into a CollectInputConfig.
func (n *Node) DecodeCollectInput() (*CollectInputConfig, error) {
	cfg := &CollectInputConfig{}
	return cfg, decode(n.Config, cfg)
}

// Intent is a single named classification target for LLM-Router.
type Intent struct {
	Name         string   `json:"name"`
	Description  string   `json:"description,omitempty"`
	Examples     []string `json:"examples,omitempty"`
	TargetNodeID string   `json:"targetNodeId"`
}

// ModelConfig selects the AI provider and generation parameters used by
// an LLM-Router node.
type ModelConfig struct {
	Provider    string   `json:"provider,omitempty"`
	Model       string   `json:"model,omitempty"`
	Temperature *float64 `json:"temperature,omitempty"`
	MaxTokens   *int     `json:"maxTokens,omitempty"`
}

// LLMRouterConfig is the LLM-Router node's per-kind configuration.
type LLMRouterConfig struct {
	SystemPrompt        string       `json:"systemPrompt"`
	Intents             []Intent     `json:"intents"`
	Model               *ModelConfig `json:"model,omitempty"`
	FallbackIntent      string       `json:"fallbackIntent,omitempty"`
	ConfidenceThreshold *float64     `json:"confidenceThreshold,omitempty"`
}

// DecodeLLMRouter decodes n.Config into an LLMRouterConfig.
func (n *Node) DecodeLLMRouter() (*LLMRouterConfig, error) {
	cfg := &LLMRouterConfig{}
	return cfg, decode(n.Config, cfg)
}

// KnowledgeSearchConfig is the Knowledge-Search node's per-kind
// configuration.
type KnowledgeSearchConfig struct {
	KnowledgeBaseID string   `json:"knowledgeBaseId"`
	Query           string   `json:"query"`
	TopK            *int     `json:"topK,omitempty"`
	MinScore        *float64 `json:"minScore,omitempty"`
	ResultVariable  string   `json:"resultVariable"`
	GroundedOnly    bool     `json:"groundedOnly,omitempty"`
}

// DecodeKnowledgeSearch decodes n.Config into a KnowledgeSearchConfig.
func (n *Node) DecodeKnowledgeSearch() (*KnowledgeSearchConfig, error) {
	cfg := &KnowledgeSearchConfig{}
	return cfg, decode(n.Config, cfg)
}

// ToolErrorAction enumerates Tool-Call's onError.action values.
type ToolErrorAction string

// Tool error action constants.
const (
	ToolErrorContinue  ToolErrorAction = "continue"
	ToolErrorRetry     ToolErrorAction = "retry"
	ToolErrorEscalate  ToolErrorAction = "escalate"
	ToolErrorGoto      ToolErrorAction = "goto"
)

// ToolOnError configures Tool-Call's failure routing policy.
type ToolOnError struct {
	Action       ToolErrorAction `json:"action"`
	TargetNodeID string          `json:"targetNodeId,omitempty"`
}

// ToolRetry configures Tool-Call's retries for onError.action = "retry":
// after the first failed call the tool is retried up to MaxAttempts
// times (once when MaxAttempts is unset), waiting BackoffMS before each
// retry.
type ToolRetry struct {
	MaxAttempts int `json:"maxAttempts,omitempty"`
	BackoffMS   int `json:"backoffMs,omitempty"`
}

// ToolCallConfig is the Tool-Call node's per-kind configuration.
type ToolCallConfig struct {
	ToolID         string         `json:"toolId"`
	Inputs         map[string]any `json:"inputs,omitempty"`
	ResultVariable string         `json:"resultVariable"`
	TimeoutSeconds *int           `json:"timeout,omitempty"`
	Retry          *ToolRetry     `json:"retry,omitempty"`
	OnError        *ToolOnError   `json:"onError,omitempty"`
}

// DecodeToolCall decodes n.Config into a ToolCallConfig.
func (n *Node) DecodeToolCall() (*ToolCallConfig, error) {
	cfg := &ToolCallConfig{}
	return cfg, decode(n.Config, cfg)
}

// Operator enumerates the Condition node's comparison operators.
type Operator string

// Condition operator constants.
const (
	OpEquals        Operator = "equals"
	OpNotEquals     Operator = "not_equals"
	OpGreaterThan   Operator = "greater_than"
	OpLessThan      Operator = "less_than"
	OpGreaterEqual  Operator = "greater_than_or_equal"
	OpLessEqual     Operator = "less_than_or_equal"
	OpContains      Operator = "contains"
	OpStartsWith    Operator = "starts_with"
	OpEndsWith      Operator = "ends_with"
	OpMatchesRegex  Operator = "matches_regex"
	OpIsEmpty       Operator = "is_empty"
)

// ConditionRule is a single ordered rule within a Condition node.
type ConditionRule struct {
	ID           string   `json:"id"`
	Variable     string   `json:"variable"`
	Operator     Operator `json:"operator"`
	Value        any      `json:"value,omitempty"`
	TargetNodeID string   `json:"targetNodeId"`
}

// ConditionConfig is the Condition node's per-kind configuration.
type ConditionConfig struct {
	Conditions  []ConditionRule `json:"conditions"`
	DefaultNode string          `json:"defaultNodeId,omitempty"`
}

// DecodeCondition decodes n.Config into a ConditionConfig.
func (n *Node) DecodeCondition() (*ConditionConfig, error) {
	cfg := &ConditionConfig{}
	return cfg, decode(n.Config, cfg)
}

// EscalateConfig is the Escalate node's per-kind configuration.
type EscalateConfig struct {
	Reason         string         `json:"reason"`
	Queue          string         `json:"queue,omitempty"`
	Priority       string         `json:"priority,omitempty"`
	Context        map[string]any `json:"context,omitempty"`
	HandoffMessage string         `json:"handoffMessage,omitempty"`
}

// DecodeEscalate decodes n.Config into an EscalateConfig.
func (n *Node) DecodeEscalate() (*EscalateConfig, error) {
	cfg := &EscalateConfig{}
	return cfg, decode(n.Config, cfg)
}

// Status enumerates the terminal status an End node assigns to a session.
type Status string

// Terminal status constants shared with session.Status.
const (
	StatusCompleted Status = "completed"
	StatusEscalated Status = "escalated"
	StatusAbandoned Status = "abandoned"
	StatusError     Status = "error"
)

// EndConfig is the End node's per-kind configuration.
type EndConfig struct {
	Message string `json:"message,omitempty"`
	Status  Status `json:"status"`
	Summary string `json:"summary,omitempty"`
}

// DecodeEnd decodes n.Config into an EndConfig.
func (n *Node) DecodeEnd() (*EndConfig, error) {
	cfg := &EndConfig{}
	return cfg, decode(n.Config, cfg)
}
