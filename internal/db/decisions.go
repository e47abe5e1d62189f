package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jonathan/claims-triage/internal/types"
)

// SaveDecision stores the full decision JSON for audit, keyed by decision ID.
// source records where the document came from (path, URL, or "(inline)").
func (db *DB) SaveDecision(ctx context.Context, decision *types.Decision, source string) error {
	payload, err := json.Marshal(decision)
	if err != nil {
		return fmt.Errorf("failed to marshal decision: %w", err)
	}

	_, err = db.pool.Exec(ctx,
		`INSERT INTO triage_decisions (id, outcome, confidence, matched_rule_id, ruleset_version, source, decision, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		decision.ID, string(decision.Outcome), decision.Confidence,
		decision.MatchedRuleID, decision.RulesetVersion, source, payload, decision.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save decision %s: %w", decision.ID, err)
	}
	return nil
}

// GetDecision loads a stored decision by ID. Returns nil when not found.
func (db *DB) GetDecision(ctx context.Context, id uuid.UUID) (*types.Decision, error) {
	var payload []byte
	err := db.pool.QueryRow(ctx,
		`SELECT decision FROM triage_decisions WHERE id = $1`, id,
	).Scan(&payload)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to load decision %s: %w", id, err)
	}

	var decision types.Decision
	if err := json.Unmarshal(payload, &decision); err != nil {
		return nil, fmt.Errorf("failed to unmarshal decision %s: %w", id, err)
	}
	return &decision, nil
}
