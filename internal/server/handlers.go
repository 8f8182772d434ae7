package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"finsight/internal/dateutils"
	"finsight/internal/recommend"
)

// recommendationRequest is the wire shape of a recommendation query.
type recommendationRequest struct {
	UseExternalAgent bool   `json:"use_external_agent"`
	StartDate        string `json:"start_date,omitempty"`
	EndDate          string `json:"end_date,omitempty"`
}

func (s *Server) handleRecommendations(w http.ResponseWriter, r *http.Request) {
	var req recommendationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, fmt.Errorf("invalid request body: %w", err))
		return
	}

	set, err := s.svc.Recommend(r.Context(), recommend.Request{
		UseRemote: req.UseExternalAgent,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
	})
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, dateutils.ErrInvalidWindow) {
			status = http.StatusBadRequest
		}
		s.writeError(w, status, err)
		return
	}

	s.writeJSON(w, http.StatusOK, set)
}

func (s *Server) handleTransactions(w http.ResponseWriter, r *http.Request) {
	txs, err := s.store.ListAll(r.Context())
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}
	s.writeJSON(w, http.StatusOK, txs)
}
