package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/claims-triage/internal/rules"
	"github.com/jonathan/claims-triage/internal/schema"
)

var rulesCommand = &cobra.Command{
	Use:   "rules [ruleset.json]",
	Short: "Validate and print a triage ruleset",
	Long: `Loads a ruleset file, validates it against the ruleset schema and the
claim field schema, and prints the tiers and rules in evaluation order.
Without an argument the built-in claims ruleset is shown.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runRulesCmd,
}

func init() {
	rootCmd.AddCommand(rulesCommand)
}

func runRulesCmd(_ *cobra.Command, args []string) error {
	ruleset := rules.Default()
	if len(args) == 1 {
		loaded, err := rules.Load(args[0])
		if err != nil {
			return err
		}
		ruleset = loaded
	}

	engine, err := rules.Bind(ruleset, schema.ClaimSchema(), rules.DefaultScoring())
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stdout, "Ruleset: %s\n", ruleset.Version)
	fmt.Fprintf(os.Stdout, "Critical inputs: %v\n\n", engine.CriticalFields())
	for _, tier := range ruleset.Tiers {
		fmt.Fprintf(os.Stdout, "Tier %s:\n", tier.Name)
		for _, rule := range tier.Rules {
			fmt.Fprintf(os.Stdout, "  %-24s %-8s w=%.2f  %s\n",
				rule.ID, rule.Outcome, rule.Weight, rule.Explain)
		}
		fmt.Fprintln(os.Stdout)
	}
	return nil
}
