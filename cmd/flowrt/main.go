// Copyright 2026 The Flowrt Authors.
// Licensed under the Apache License, Version 2.0.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "flowrt",
	Short: "flowrt drives a conversational flow definition from the command line",
	Long:  "flowrt loads a JSON flow definition and runs it as a REPL against stdin/stdout, for local authoring and debugging of flows.",
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
