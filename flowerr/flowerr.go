// Copyright 2026 The Flowrt Authors.
// Licensed under the Apache License, Version 2.0.

// Package flowerr defines the structured error type surfaced across the
// flow runtime's public interfaces.
package flowerr

import (
	"errors"
	"fmt"
)

// Code enumerates the error codes the core is allowed to surface, per
// the error taxonomy in the specification.
type Code string

// Error codes defined by the core.
const (
	CodeEntryNotFound        Code = "ENTRY_NOT_FOUND"
	CodeNodeNotFound         Code = "NODE_NOT_FOUND"
	CodeSessionNotFound      Code = "SESSION_NOT_FOUND"
	CodeSessionNotWaiting    Code = "SESSION_NOT_WAITING"
	CodeMaxStepsExceeded     Code = "MAX_STEPS_EXCEEDED"
	CodeMaxRetriesExceeded   Code = "MAX_RETRIES_EXCEEDED"
	CodeIntentNotFound       Code = "INTENT_NOT_FOUND"
	CodeToolCallFailed       Code = "TOOL_CALL_FAILED"
	CodeToolCallError        Code = "TOOL_CALL_ERROR"
	CodeUnknownNodeType      Code = "UNKNOWN_NODE_TYPE"
	CodeExecutionError       Code = "EXECUTION_ERROR"
)

// Error is the structured error carried in ExecutionStep.Error and
// returned by the engine's public surface.
type Error struct {
	Code    Code           `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// New creates a structured error with no details.
func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Newf creates a structured error with a formatted message.
func Newf(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// WithDetails returns a copy of e with Details set.
func (e *Error) WithDetails(details map[string]any) *Error {
	if e == nil {
		return nil
	}
	cp := *e
	cp.Details = details
	return &cp
}

// As reports whether err is (or wraps) a *Error and, if so, returns it.
func As(err error) (*Error, bool) {
	if err == nil {
		return nil, false
	}
	var fe *Error
	if errors.As(err, &fe) {
		return fe, true
	}
	return nil, false
}
