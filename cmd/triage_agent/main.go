// Package main provides the entry point for the claims triage agent CLI.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "triage_agent",
	Short: "Claims triage agent",
	Long:  "Claims triage agent extracts structured clinical and policy fields from claim documents and applies a deterministic, auditable rule set to produce an approve/deny/refer decision.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
