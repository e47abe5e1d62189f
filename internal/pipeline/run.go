// Package pipeline composes loader, extractor and rule engine into the
// single triage entry point and shapes the final decision.
package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/claims-triage/internal/db"
	"github.com/jonathan/claims-triage/internal/extractor"
	"github.com/jonathan/claims-triage/internal/ingest"
	"github.com/jonathan/claims-triage/internal/llm"
	"github.com/jonathan/claims-triage/internal/rules"
	"github.com/jonathan/claims-triage/internal/schema"
	"github.com/jonathan/claims-triage/internal/types"
)

// ProgressEvent is a progress update during a triage run.
type ProgressEvent struct {
	Step    string `json:"step"`
	Message string `json:"message"`
	RunID   string `json:"run_id,omitempty"`
}

// ProgressCallback is called when pipeline progress occurs.
type ProgressCallback func(event ProgressEvent)

// Agent runs the triage pipeline. Schema and engine are bound once and are
// safe to share across concurrent runs; each run owns its record and
// decision.
type Agent struct {
	Schema *schema.Schema
	Engine *rules.Engine
	Client llm.Client
	Store  *db.DB // optional decision audit store
}

// RunOptions identifies the document for one run. Exactly one of Path, URL
// or Text must be set.
type RunOptions struct {
	Path       string
	URL        string
	Text       string
	OnProgress ProgressCallback
}

// Source returns the label describing where the document came from.
func (o *RunOptions) Source() string {
	switch {
	case o.Path != "":
		return o.Path
	case o.URL != "":
		return o.URL
	default:
		return "(inline text)"
	}
}

// Run triages one document: load, extract, evaluate, assemble.
//
// A load failure short-circuits to a refer decision with confidence 0 and
// the cause in the rationale; the extractor is never invoked on empty
// input. The load error is also returned so callers can distinguish "could
// not even start" from "ran but could not decide". Every other failure mode
// degrades inside the extractor or engine, so the caller always receives a
// complete decision.
func (a *Agent) Run(ctx context.Context, opts RunOptions) (*types.Decision, error) {
	runID := uuid.New()
	emit := func(step, message string) {
		if opts.OnProgress != nil {
			opts.OnProgress(ProgressEvent{Step: step, Message: message, RunID: runID.String()})
		}
	}

	emit("load", fmt.Sprintf("loading document from %s", opts.Source()))
	text, err := a.loadDocument(ctx, opts)
	if err != nil {
		decision := a.loadFailureDecision(runID, err)
		a.persist(ctx, decision, opts.Source(), emit)
		return decision, err
	}

	emit("extract", "extracting structured fields")
	record := extractor.Extract(ctx, text, a.Schema, a.Client)

	emit("evaluate", "evaluating triage rules")
	verdict := a.Engine.Evaluate(record)

	decision := &types.Decision{
		ID:             runID,
		Outcome:        verdict.Outcome,
		Confidence:     verdict.Confidence,
		Rationale:      verdict.Rationale,
		MatchedRuleID:  verdict.RuleID,
		Tier:           verdict.Tier,
		Extracted:      record,
		Issues:         record.Issues,
		RulesetVersion: a.Engine.Version(),
		CreatedAt:      time.Now().UTC(),
	}

	a.persist(ctx, decision, opts.Source(), emit)
	emit("done", fmt.Sprintf("decision: %s (confidence %.2f)", decision.Outcome, decision.Confidence))
	return decision, nil
}

func (a *Agent) loadDocument(ctx context.Context, opts RunOptions) (string, error) {
	switch {
	case opts.Path != "":
		return ingest.FromFile(opts.Path)
	case opts.URL != "":
		return ingest.FromURL(ctx, opts.URL)
	case opts.Text != "":
		return ingest.FromText(opts.Text)
	default:
		return "", &ingest.LoadError{Source: "(none)", Message: "no document provided"}
	}
}

// loadFailureDecision shapes the conservative decision for an unreadable or
// empty document.
func (a *Agent) loadFailureDecision(runID uuid.UUID, cause error) *types.Decision {
	return &types.Decision{
		ID:         runID,
		Outcome:    types.OutcomeRefer,
		Confidence: 0,
		Rationale: []string{
			fmt.Sprintf("document load failure: %v; manual review required", cause),
		},
		RulesetVersion: a.Engine.Version(),
		CreatedAt:      time.Now().UTC(),
	}
}

// persist saves the decision when an audit store is configured. Audit
// failures never fail the run; they surface as progress events.
func (a *Agent) persist(ctx context.Context, decision *types.Decision, source string, emit func(string, string)) {
	if a.Store == nil {
		return
	}
	if err := a.Store.SaveDecision(ctx, decision, source); err != nil {
		emit("audit", fmt.Sprintf("failed to persist decision: %v", err))
	}
}
