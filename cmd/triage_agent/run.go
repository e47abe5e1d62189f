package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/claims-triage/internal/config"
	"github.com/jonathan/claims-triage/internal/db"
	"github.com/jonathan/claims-triage/internal/llm"
	"github.com/jonathan/claims-triage/internal/observability"
	"github.com/jonathan/claims-triage/internal/pipeline"
	"github.com/jonathan/claims-triage/internal/rules"
	"github.com/jonathan/claims-triage/internal/schema"
)

// demoDocument is a synthetic fallback used when no input is supplied, so
// the agent can be exercised without any claim documents on hand.
const demoDocument = `MEDICAL REPORT (SYNTHETIC - for demonstration only)
Patient: Jane Doe
DOB: 1978-04-12
Report Date: 2024-11-02
Provider: Dr Amit Sharma, Cardiologist
Policy Number: LP-0044821
Policy Status: Active

History: Presented with chest pain and shortness of breath on 2024-10-29.
Assessment: Acute coronary syndrome ruled out. Diagnosis: Stable angina.
Investigations: ECG normal. Troponin negative.
Plan: Start Aspirin 100mg daily and Atorvastatin 40mg nightly. Follow-up in 2 weeks.
Procedure: Stress echocardiogram scheduled for 2024-11-10.`

var runCommand = &cobra.Command{
	Use:   "run",
	Short: "Triage one claim document or a directory of documents",
	Long: `Runs the full triage pipeline: load -> extract -> evaluate -> decide.

Configuration can be loaded from a JSON file using --config. Command-line
arguments override config file values. Without any input a built-in
synthetic demo document is triaged.`,
	RunE: runTriageCmd,
}

var (
	runConfigPath  string
	runDocument    string
	runDocumentURL string
	runInputDir    string
	runRuleset     string
	runOutput      string
	runAPIKey      string
	runModel       string
	runDatabaseURL string
	runWorkers     int
	runVerbose     bool
)

func init() {
	runCommand.Flags().StringVar(&runConfigPath, "config", "", "Path to config.json file (values can be overridden by other flags)")

	runCommand.Flags().StringVarP(&runDocument, "document", "d", "", "Path to a claim document, text or PDF (mutually exclusive with --document-url and --input-dir)")
	runCommand.Flags().StringVar(&runDocumentURL, "document-url", "", "URL to fetch the claim document from")
	runCommand.Flags().StringVar(&runInputDir, "input-dir", "", "Directory of claim documents to triage concurrently")
	runCommand.Flags().StringVarP(&runRuleset, "ruleset", "r", "", "Path to a ruleset JSON file (defaults to the built-in claims ruleset)")
	runCommand.Flags().StringVarP(&runOutput, "output", "o", "", "Path to write the decision JSON to")
	runCommand.Flags().IntVar(&runWorkers, "workers", 0, "Concurrent runs in batch mode")
	runCommand.Flags().BoolVarP(&runVerbose, "verbose", "v", false, "Print detailed progress and the extracted record")

	// API key can be passed as a flag, or read from env var GEMINI_API_KEY
	runCommand.Flags().StringVar(&runAPIKey, "api-key", "", "Gemini API key (optional, defaults to GEMINI_API_KEY env var)")
	runCommand.Flags().StringVar(&runModel, "model", "", "Model name (optional, defaults to TRIAGE_MODEL env var or the built-in default)")

	// Database URL for decision audit persistence
	runCommand.Flags().StringVar(&runDatabaseURL, "db-url", "", "PostgreSQL connection URL (optional, defaults to DATABASE_URL env var)")

	rootCmd.AddCommand(runCommand)
}

func runTriageCmd(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()

	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	agent, cleanup, err := buildAgent(ctx, cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	printer := observability.NewPrinter(os.Stdout)
	var onProgress pipeline.ProgressCallback
	if cfg.Verbose {
		onProgress = func(event pipeline.ProgressEvent) {
			fmt.Fprintf(os.Stdout, "[%s] %s\n", event.Step, event.Message)
		}
	}

	if cfg.InputDir != "" {
		results, err := agent.RunBatch(ctx, cfg.InputDir, cfg.Workers, onProgress)
		if err != nil {
			return err
		}
		for _, result := range results {
			fmt.Fprintf(os.Stdout, "%-40s %-8s %.2f\n",
				result.Path, result.Decision.Outcome, result.Decision.Confidence)
		}
		return writeOutput(cfg.Output, results)
	}

	opts := pipeline.RunOptions{
		Path:       cfg.Document,
		URL:        cfg.DocumentURL,
		OnProgress: onProgress,
	}
	if cfg.Document == "" && cfg.DocumentURL == "" {
		fmt.Fprintln(os.Stdout, "No document provided - triaging built-in demo document.")
		opts.Text = demoDocument
	}

	decision, runErr := agent.Run(ctx, opts)
	if runErr != nil {
		// Load failures still produce a conservative refer decision; report
		// the cause but keep emitting the decision shape.
		fmt.Fprintf(os.Stderr, "Warning: %v\n", runErr)
	}

	if cfg.Verbose {
		printer.PrintSummary(decision.Extracted)
		printer.PrintRecord(decision.Extracted)
	}
	printer.PrintDecision(decision)

	return writeOutput(cfg.Output, decision)
}

// resolveConfig merges config file values, CLI flags, env fallbacks and
// defaults, in ascending priority of: defaults < config file < env < flags.
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	var cfg config.Config
	if runConfigPath != "" {
		loaded, err := config.LoadConfig(runConfigPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = *loaded
	}

	if cmd.Flags().Changed("document") {
		cfg.Document = runDocument
	}
	if cmd.Flags().Changed("document-url") {
		cfg.DocumentURL = runDocumentURL
	}
	if cmd.Flags().Changed("input-dir") {
		cfg.InputDir = runInputDir
	}
	if cmd.Flags().Changed("ruleset") {
		cfg.Ruleset = runRuleset
	}
	if cmd.Flags().Changed("output") {
		cfg.Output = runOutput
	}
	if cmd.Flags().Changed("api-key") {
		cfg.APIKey = runAPIKey
	}
	if cmd.Flags().Changed("model") {
		cfg.Model = runModel
	}
	if cmd.Flags().Changed("db-url") {
		cfg.DatabaseURL = runDatabaseURL
	}
	if cmd.Flags().Changed("workers") {
		cfg.Workers = runWorkers
	}
	if cmd.Flags().Changed("verbose") {
		cfg.Verbose = runVerbose
	}

	cfg = cfg.MergeWithDefaults(config.Config{
		APIKey:      os.Getenv("GEMINI_API_KEY"),
		Model:       os.Getenv("TRIAGE_MODEL"),
		DatabaseURL: os.Getenv("DATABASE_URL"),
	})

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("API key is required: pass --api-key or set GEMINI_API_KEY")
	}
	return &cfg, nil
}

// buildAgent wires schema, ruleset, LLM client and optional audit store.
func buildAgent(ctx context.Context, cfg *config.Config) (*pipeline.Agent, func(), error) {
	claimSchema := schema.ClaimSchema()

	ruleset := rules.Default()
	if cfg.Ruleset != "" {
		loaded, err := rules.Load(cfg.Ruleset)
		if err != nil {
			return nil, nil, err
		}
		ruleset = loaded
	}

	engine, err := rules.Bind(ruleset, claimSchema, rules.DefaultScoring())
	if err != nil {
		return nil, nil, err
	}

	client, err := llm.NewGeminiClient(ctx, cfg.Model, cfg.APIKey)
	if err != nil {
		return nil, nil, err
	}

	agent := &pipeline.Agent{
		Schema: claimSchema,
		Engine: engine,
		Client: client,
	}
	cleanup := func() { _ = client.Close() }

	if cfg.DatabaseURL != "" {
		store, err := db.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			cleanup()
			return nil, nil, err
		}
		if err := store.Migrate(ctx); err != nil {
			store.Close()
			cleanup()
			return nil, nil, err
		}
		agent.Store = store
		cleanup = func() {
			store.Close()
			_ = client.Close()
		}
	}

	return agent, cleanup, nil
}

// writeOutput persists the result JSON when an output path is configured.
func writeOutput(path string, content any) error {
	if path == "" {
		return nil
	}
	data, err := json.MarshalIndent(content, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	fmt.Fprintf(os.Stdout, "Decision saved to: %s\n", path)
	return nil
}
