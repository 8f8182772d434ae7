package recommend

import (
	"context"
	"fmt"
	"time"

	"finsight/internal/dateutils"
	"finsight/internal/logging"
	"finsight/internal/models"
	"finsight/internal/store"
)

// Request describes one recommendation query. Empty dates fall back to the
// default trailing window; an empty template selects the backend default.
type Request struct {
	UseRemote      bool
	StartDate      string
	EndDate        string
	PromptTemplate string
}

// Service orchestrates one recommendation pass: resolve the window, fetch the
// transactions, pick a backend, generate, and report provenance. It holds no
// per-request state between calls.
type Service struct {
	store  store.TransactionLister
	local  Backend
	remote Backend
	now    func() time.Time
	log    logging.Logger
}

// NewService wires the orchestrator. Either backend may be nil when the
// deployment does not offer that path; selecting a nil backend is an error.
func NewService(lister store.TransactionLister, local, remote Backend, log logging.Logger) *Service {
	if log == nil {
		log = &logging.MockLogger{}
	}
	return &Service{
		store:  lister,
		local:  local,
		remote: remote,
		now:    time.Now,
		log:    log,
	}
}

// SetClock overrides the time source. Used by tests to pin the default window.
func (s *Service) SetClock(now func() time.Time) {
	s.now = now
}

// Recommend runs one pass of the orchestration state machine.
func (s *Service) Recommend(ctx context.Context, req Request) (models.RecommendationSet, error) {
	window, err := dateutils.ResolveWindow(req.StartDate, req.EndDate, s.now())
	if err != nil {
		return models.RecommendationSet{}, err
	}

	txs, err := s.store.ListBetween(ctx, window)
	if err != nil {
		return models.RecommendationSet{}, fmt.Errorf("fetch transactions: %w", err)
	}

	// An empty window is a defined terminal state, not an error. The backend
	// is never invoked with zero transactions.
	if len(txs) == 0 {
		s.log.WithFields(
			logging.Field{Key: logging.FieldStartDate, Value: window.Start},
			logging.Field{Key: logging.FieldEndDate, Value: window.End},
		).Info("No transactions in window, skipping generation")
		return models.RecommendationSet{
			Recommendations: []models.Recommendation{},
			Source:          models.SourceNoTransactions,
		}, nil
	}

	backend := s.local
	if req.UseRemote {
		backend = s.remote
	}
	if backend == nil {
		return models.RecommendationSet{}, fmt.Errorf("selected backend is not configured")
	}

	s.log.WithFields(
		logging.Field{Key: logging.FieldBackend, Value: backend.Source()},
		logging.Field{Key: logging.FieldCount, Value: len(txs)},
		logging.Field{Key: logging.FieldStartDate, Value: window.Start},
		logging.Field{Key: logging.FieldEndDate, Value: window.End},
	).Info("Generating recommendations")

	// An error from the chosen backend propagates as-is: there is no
	// automatic fallback from one backend to the other.
	recs, err := backend.Generate(ctx, txs, req.PromptTemplate)
	if err != nil {
		return models.RecommendationSet{}, err
	}

	return models.RecommendationSet{
		Recommendations: recs,
		Source:          backend.Source(),
	}, nil
}
