// Copyright 2026 The Flowrt Authors.
// Licensed under the Apache License, Version 2.0.

package main

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/flowrt/flowrt/adapter/ai/rules"
	"github.com/flowrt/flowrt/adapter/knowledge/inmemory"
	"github.com/flowrt/flowrt/adapter/tool/httptool"
	"github.com/flowrt/flowrt/engine"
	"github.com/flowrt/flowrt/event"
	"github.com/flowrt/flowrt/flow"
	"github.com/flowrt/flowrt/handler"
	"github.com/flowrt/flowrt/session"
	sessioninmemory "github.com/flowrt/flowrt/session/inmemory"
)

var runCmd = &cobra.Command{
	Use:   "run [flow.json]",
	Short: "Run a flow definition interactively against stdin/stdout",
	Args:  cobra.ExactArgs(1),
	RunE:  runFlow,
}

func init() {
	rootCmd.AddCommand(runCmd)
}

func runFlow(cmd *cobra.Command, args []string) error {
	raw, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("read flow file: %w", err)
	}

	var f flow.Flow
	if err := json.Unmarshal(raw, &f); err != nil {
		return fmt.Errorf("parse flow file: %w", err)
	}
	f.Index()

	svcs := handler.Services{
		AI:        rules.New(),
		Knowledge: inmemory.New(),
		Tools:     httptool.New(),
	}
	eng := engine.New(sessioninmemory.New(), svcs)
	eng.Subscribe(func(e *event.Event) {
		if e.Type == event.TypeMessageSent {
			fmt.Printf("bot: %v\n", e.Data["message"])
		}
	})

	ctx := context.Background()
	sess, err := eng.StartSession(ctx, &f)
	if err != nil {
		return fmt.Errorf("start session: %w", err)
	}
	printStatus(sess)

	reader := bufio.NewScanner(os.Stdin)
	for sess.Status == session.StatusWaitingInput {
		fmt.Print("> ")
		if !reader.Scan() {
			break
		}
		sess, err = eng.ProcessInput(ctx, &f, sess.ID, reader.Text())
		if err != nil {
			return fmt.Errorf("process input: %w", err)
		}
		printStatus(sess)
	}

	return nil
}

func printStatus(sess *session.Session) {
	if n := len(sess.History); n > 0 {
		if step := sess.History[n-1]; step.Error != nil {
			fmt.Printf("error: %s: %s\n", step.Error.Code, step.Error.Message)
		}
	}
	if sess.Status != session.StatusWaitingInput {
		fmt.Printf("[%s] status=%s node=%s\n", sess.ID, sess.Status, sess.CurrentNodeID)
	}
}
