// Package api exposes commission status over HTTP: JSON endpoints for
// reports and phases, and a websocket stream of live status events.
package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/lumenstage/verifier/internal/domain"
	"github.com/lumenstage/verifier/internal/orchestrator"
	"github.com/lumenstage/verifier/internal/reportstore"
)

// HistoryStore is the persistence surface the server reads from
type HistoryStore interface {
	ListRecent(limit int) ([]reportstore.RunSummary, error)
	GetReport(id string) (*domain.CommissionReport, error)
}

// QuickChecker runs a reduced health check on demand
type QuickChecker interface {
	RunQuickCheck(ctx context.Context, overrides domain.Context) *orchestrator.QuickCheckResult
}

// Server is the HTTP status server
type Server struct {
	store  HistoryStore
	phases []*orchestrator.Phase
	addr   string
	mux    *http.ServeMux
	hub    *Hub
	quick  QuickChecker
}

// NewServer creates a status server
func NewServer(store HistoryStore, phases []*orchestrator.Phase, addr string) *Server {
	s := &Server{
		store:  store,
		phases: phases,
		addr:   addr,
		mux:    http.NewServeMux(),
		hub:    NewHub(),
	}
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.mux.HandleFunc("/api/health", s.healthHandler())
	s.mux.HandleFunc("/api/phases", s.phasesHandler())
	s.mux.HandleFunc("/api/reports", s.listReportsHandler())
	s.mux.HandleFunc("/api/reports/", s.getReportHandler())
	s.mux.HandleFunc("/api/quick", s.quickHandler())
	s.mux.HandleFunc("/ws", s.wsHandler())
}

// SetQuickChecker enables the /api/quick trigger endpoint
func (s *Server) SetQuickChecker(qc QuickChecker) {
	s.quick = qc
}

// Start starts the HTTP server
func (s *Server) Start() error {
	go s.hub.Run()
	return http.ListenAndServe(s.addr, s.mux)
}

// Handler returns the server's HTTP handler
func (s *Server) Handler() http.Handler {
	return s.mux
}

// Hub returns the event hub for broadcasting status events
func (s *Server) Hub() *Hub {
	return s.hub
}

// Broadcast sends an event to all websocket clients
func (s *Server) Broadcast(event Event) {
	s.hub.Broadcast(event)
}

func writeJSON(w http.ResponseWriter, data any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, code int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
