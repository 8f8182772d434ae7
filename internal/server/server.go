// Package server exposes the HTTP request surface: a recommendation endpoint
// and the full transaction listing.
package server

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"finsight/internal/logging"
	"finsight/internal/recommend"
	"finsight/internal/store"
)

// Server routes HTTP requests to the recommendation orchestrator and the
// transaction store. The local model behind the orchestrator is loaded once
// at startup and shared across requests.
type Server struct {
	svc   *recommend.Service
	store store.TransactionLister
	log   logging.Logger
	mux   *http.ServeMux
}

// New builds the server and its routes.
func New(svc *recommend.Service, lister store.TransactionLister, log logging.Logger) *Server {
	if log == nil {
		log = &logging.MockLogger{}
	}
	s := &Server{
		svc:   svc,
		store: lister,
		log:   log,
		mux:   http.NewServeMux(),
	}
	s.mux.HandleFunc("/recommendations", methodOnly(http.MethodPost, s.handleRecommendations))
	s.mux.HandleFunc("/transactions", methodOnly(http.MethodGet, s.handleTransactions))
	return s
}

// methodOnly restricts a route to one HTTP method, mirroring the behavior of
// Go 1.22+ ServeMux method patterns ("POST /path") on older toolchains: a GET
// route also serves HEAD, and other methods get 405 with an Allow header.
func methodOnly(method string, h http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != method && !(method == http.MethodGet && r.Method == http.MethodHead) {
			w.Header().Set("Allow", method)
			http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
			return
		}
		h(w, r)
	}
}

// Handler returns the root handler with middleware applied.
func (s *Server) Handler() http.Handler {
	return s.withLogging(s.withCORS(s.mux))
}

// ListenAndServe blocks serving HTTP on addr until the context is canceled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	s.log.WithField("addr", addr).Info("HTTP server listening")
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// withCORS allows cross-origin requests from any origin, as the original
// deployment sat behind a separate frontend.
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.log.WithFields(
			logging.Field{Key: "method", Value: r.Method},
			logging.Field{Key: "path", Value: r.URL.Path},
			logging.Field{Key: logging.FieldDuration, Value: time.Since(start).Milliseconds()},
		).Debug("Handled request")
	})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.log.WithError(err).Error("Failed to encode response")
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, err error) {
	s.writeJSON(w, status, map[string]string{"detail": err.Error()})
}
