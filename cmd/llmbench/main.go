// Package main is the entry point for the llmbench CLI, the batch pipeline
// that benchmarks free language-model providers against queued questions.
package main

import (
	"os"

	"github.com/keyday/llmbench/cmd/llmbench/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
