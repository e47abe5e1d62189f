package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/jonathan/claims-triage/internal/pipeline"
)

var serveCommand = &cobra.Command{
	Use:   "serve",
	Short: "Serve triage over HTTP",
	Long: `Starts a minimal HTTP API. POST /v1/triage with {"text": "..."} or
{"url": "..."} returns the decision JSON. This surface is presentation only;
all triage semantics live in the pipeline.`,
	RunE: runServeCmd,
}

var serveAddr string

func init() {
	serveCommand.Flags().StringVar(&serveAddr, "addr", ":8080", "Listen address")
	serveCommand.Flags().StringVar(&runConfigPath, "config", "", "Path to config.json file")
	serveCommand.Flags().StringVarP(&runRuleset, "ruleset", "r", "", "Path to a ruleset JSON file")
	serveCommand.Flags().StringVar(&runAPIKey, "api-key", "", "Gemini API key (optional, defaults to GEMINI_API_KEY env var)")
	serveCommand.Flags().StringVar(&runModel, "model", "", "Model name override")
	serveCommand.Flags().StringVar(&runDatabaseURL, "db-url", "", "PostgreSQL connection URL for decision audit")
	rootCmd.AddCommand(serveCommand)
}

type triageRequest struct {
	Text string `json:"text,omitempty"`
	URL  string `json:"url,omitempty"`
}

func runServeCmd(cmd *cobra.Command, _ []string) error {
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

	mux := http.NewServeMux()
	mux.HandleFunc("POST /v1/triage", func(w http.ResponseWriter, r *http.Request) {
		var req triageRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid request body", http.StatusBadRequest)
			return
		}
		if req.Text == "" && req.URL == "" {
			http.Error(w, "one of 'text' or 'url' is required", http.StatusBadRequest)
			return
		}

		decision, _ := agent.Run(r.Context(), pipeline.RunOptions{
			Text: req.Text,
			URL:  req.URL,
		})
		// Load failures still yield a complete refer decision; the HTTP
		// status stays 200 so the decision shape is the single contract.
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(decision)
	})

	server := &http.Server{
		Addr:              serveAddr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}
	fmt.Fprintf(os.Stdout, "Listening on %s\n", serveAddr)
	return server.ListenAndServe()
}
