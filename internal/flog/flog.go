// Copyright 2026 The Flowrt Authors.
// Licensed under the Apache License, Version 2.0.

// Package flog provides the logging utilities used throughout the flow
// runtime. It mirrors the shape of a zap-backed Logger interface so the
// concrete backend can be swapped without touching call sites.
package flog

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Level names accepted by SetLevel.
const (
	LevelDebug = "debug"
	LevelInfo  = "info"
	LevelWarn  = "warn"
	LevelError = "error"
)

var zapLevel = zap.NewAtomicLevelAt(zapcore.InfoLevel)

var encoderConfig = zapcore.EncoderConfig{
	TimeKey:        "ts",
	LevelKey:       "lvl",
	NameKey:        "name",
	CallerKey:      "caller",
	MessageKey:     "message",
	StacktraceKey:  "stacktrace",
	LineEnding:     zapcore.DefaultLineEnding,
	EncodeLevel:    zapcore.CapitalLevelEncoder,
	EncodeTime:     zapcore.RFC3339TimeEncoder,
	EncodeDuration: zapcore.SecondsDurationEncoder,
	EncodeCaller:   zapcore.ShortCallerEncoder,
}

// Logger is the logging interface used across the runtime. Satisfied by
// *zap.SugaredLogger.
type Logger interface {
	Debug(args ...any)
	Debugf(format string, args ...any)
	Info(args ...any)
	Infof(format string, args ...any)
	Warn(args ...any)
	Warnf(format string, args ...any)
	Error(args ...any)
	Errorf(format string, args ...any)
}

// Default is the package-level logger used by the free functions below.
var Default Logger = zap.New(
	zapcore.NewCore(
		zapcore.NewConsoleEncoder(encoderConfig),
		zapcore.AddSync(os.Stdout),
		zapLevel,
	),
	zap.AddCaller(),
	zap.AddCallerSkip(1),
).Sugar()

// SetLevel sets the minimum level logged by Default. Unknown levels fall
// back to info.
func SetLevel(level string) {
	switch level {
	case LevelDebug:
		zapLevel.SetLevel(zapcore.DebugLevel)
	case LevelInfo:
		zapLevel.SetLevel(zapcore.InfoLevel)
	case LevelWarn:
		zapLevel.SetLevel(zapcore.WarnLevel)
	case LevelError:
		zapLevel.SetLevel(zapcore.ErrorLevel)
	default:
		zapLevel.SetLevel(zapcore.InfoLevel)
	}
}

// Debug logs at debug level.
func Debug(args ...any) { Default.Debug(args...) }

// Debugf logs at debug level with formatting.
func Debugf(format string, args ...any) { Default.Debugf(format, args...) }

// Info logs at info level.
func Info(args ...any) { Default.Info(args...) }

// Infof logs at info level with formatting.
func Infof(format string, args ...any) { Default.Infof(format, args...) }

// Warn logs at warn level.
func Warn(args ...any) { Default.Warn(args...) }

// Warnf logs at warn level with formatting.
func Warnf(format string, args ...any) { Default.Warnf(format, args...) }

// Error logs at error level.
func Error(args ...any) { Default.Error(args...) }

// Errorf logs at error level with formatting.
func Errorf(format string, args ...any) { Default.Errorf(format, args...) }
