// Package httpapi exposes story analysis over HTTP: a JSON analyze endpoint,
// a health check, and a WebSocket stream of completed results.
package httpapi

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/felixgeelhaar/storylint/pkg/application"
)

// Server serves the analysis API.
type Server struct {
	service  *application.AnalysisService
	hub      *Hub
	addr     string
	httpSrv  *http.Server
	onResult func(*application.AnalysisResult)
}

// NewServer creates an API server on the given address.
func NewServer(service *application.AnalysisService, addr string) *Server {
	return &Server{
		service: service,
		hub:     NewHub(),
		addr:    addr,
	}
}

// Hub returns the WebSocket hub so callers can broadcast results produced
// outside the HTTP boundary, such as watch mode.
func (s *Server) Hub() *Hub {
	return s.hub
}

// SetOnResult registers a callback invoked for every completed analysis, in
// addition to the WebSocket broadcast. Used to wire webhook delivery.
func (s *Server) SetOnResult(fn func(*application.AnalysisResult)) {
	s.onResult = fn
}

// Start begins serving HTTP requests. It blocks until the server stops.
func (s *Server) Start() error {
	s.httpSrv = &http.Server{
		Addr:         s.addr,
		Handler:      s.Handler(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	log.Printf("analysis API listening on %s", s.addr)
	if err := s.httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("api server: %w", err)
	}
	return nil
}

// Handler returns the server's routes as an http.Handler for testing.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/analyze", s.handleAnalyze)
	mux.HandleFunc("/health", s.handleHealth)
	mux.HandleFunc("/ws", s.hub.handleWS)
	return mux
}

type analyzeRequest struct {
	Story              *string `json:"story"`
	AcceptanceCriteria string  `json:"acceptanceCriteria"`
}

type errorResponse struct {
	Error  string `json:"error"`
	Detail string `json:"detail,omitempty"`
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", "")
		return
	}

	defer func() {
		if rec := recover(); rec != nil {
			log.Printf("analyze handler panic: %v", rec)
			writeError(w, http.StatusInternalServerError, "analysis failed", fmt.Sprint(rec))
		}
	}()

	var req analyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body", err.Error())
		return
	}
	if req.Story == nil {
		writeError(w, http.StatusBadRequest, "missing required field: story", "")
		return
	}

	result := s.service.Analyze(*req.Story, req.AcceptanceCriteria)

	s.hub.Broadcast(result)
	if s.onResult != nil {
		s.onResult(result)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(result.Report); err != nil {
		log.Printf("write analyze response: %v", err)
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", "")
		return
	}
	w.Header().Set("Content-Type", "application/json")
	fmt.Fprintln(w, `{"status":"ok"}`)
}

func writeError(w http.ResponseWriter, status int, msg, detail string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(errorResponse{Error: msg, Detail: detail})
}
