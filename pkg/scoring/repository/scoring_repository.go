package repository

import (
	"context"

	"agrocredit/entities"
)

// ScoringRepository is the durable store for scoring results and their
// append-only history trail.
type ScoringRepository interface {
	// Put clears the farmer's previous latest flag, inserts the new result
	// with IsLatest=true and appends the history row — all in one
	// transaction. Any failure rolls back the whole sequence.
	Put(ctx context.Context, r *entities.ScoringResult, h *entities.ScoringHistory) error

	// AttachNarrative updates the narrative fields of an already stored
	// result. Numeric fields are never touched.
	AttachNarrative(ctx context.Context, scoringID uint, narrative, recommendations string) error

	ByID(ctx context.Context, scoringID uint) (*entities.ScoringResult, error)
	LatestByFarmer(ctx context.Context, farmerID uint) (*entities.ScoringResult, error)
	HistoryByFarmer(ctx context.Context, farmerID uint) ([]entities.ScoringHistory, error)
	AllLatest(ctx context.Context) ([]entities.ScoringResult, error)
}
