package models

import "context"

// PickStore is the persistence boundary for picks. The pipeline only reads
// picks and proposes writes; the store owns the records.
type PickStore interface {
	// CreatePick persists a new pick. It returns false when the store
	// rejected the write as a duplicate of an existing matchup/week.
	CreatePick(ctx context.Context, pick *Pick) (bool, error)
	GetPicks(ctx context.Context) ([]Pick, error)
	GetPendingPicks(ctx context.Context) ([]Pick, error)
	UpdateResults(ctx context.Context, pick *Pick) error
}

// AgentClient fetches one raw text blob from the prediction-generating agent.
type AgentClient interface {
	FetchPredictions(ctx context.Context, week int) (string, error)
}
