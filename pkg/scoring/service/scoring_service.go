package service

import (
	"context"

	"agrocredit/entities"
	"agrocredit/pkg/scoring/types"
)

// Outcome reports a single scoring run. The numeric result is always
// durably stored before the narrative step runs; NarrativeErr is
// informational and never implies a failed computation.
type Outcome struct {
	Result            *entities.ScoringResult `json:"result"`
	NarrativeAttached bool                    `json:"narrative_attached"`
	NarrativeErr      string                  `json:"narrative_error,omitempty"`
}

type ScoringService interface {
	ComputeAndStore(ctx context.Context, farmerID uint) (*Outcome, error)
	RecalculateAll(ctx context.Context) (*types.RecalcSummary, error)
	Report(ctx context.Context, farmerID uint) (string, error)
}
