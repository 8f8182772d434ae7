// Package recommend implements the savings-recommendation pipeline: prompt
// construction, the interchangeable generation backends, and the orchestrator
// that ties a date window of transactions to a backend's output.
package recommend

import (
	"context"

	"finsight/internal/models"
)

// Backend is the single capability both generators implement: turn a
// transaction window and a prompt template into a recommendation list.
// Additional backends plug in by implementing this interface; selection is by
// explicit variant, never ad hoc branching inside the orchestrator.
type Backend interface {
	// Generate produces recommendations from the given transactions.
	// An empty template selects the backend's default prompt.
	Generate(ctx context.Context, txs []models.Transaction, promptTemplate string) ([]models.Recommendation, error)

	// Source returns the provenance tag attached to this backend's output.
	Source() string
}
