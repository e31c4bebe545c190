package agent

import (
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"time"

	"isolation/game"
	"isolation/searcher"

	"github.com/rs/zerolog/log"
)

// Server exposes an agent over HTTP: POST /findmove with a game.Snapshot
// body answers the agent's game.Move.
type Server struct {
	agent     Agent
	timeLimit time.Duration
	mu        sync.Mutex // Agents run one search at a time
	mux       *http.ServeMux
}

func NewServer(a Agent, timeLimit time.Duration) *Server {
	s := &Server{agent: a, timeLimit: timeLimit, mux: http.NewServeMux()}
	s.mux.HandleFunc("/findmove", s.handleFindMove)
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

// StartAgentServer serves a until the listener fails.
func StartAgentServer(addr string, a Agent, timeLimit time.Duration) error {
	log.Info().Msgf("starting agent server on %s", addr)
	err := http.ListenAndServe(addr, NewServer(a, timeLimit))
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

func (s *Server) handleFindMove(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var snapshot game.Snapshot
	if err := json.NewDecoder(r.Body).Decode(&snapshot); err != nil {
		http.Error(w, "bad request: "+err.Error(), http.StatusBadRequest)
		return
	}
	board, err := game.FromSnapshot(snapshot)
	if err != nil {
		http.Error(w, "bad request: "+err.Error(), http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	move, metric := s.agent.FindMove(board, searcher.Countdown(s.timeLimit))
	s.mu.Unlock()
	log.Debug().Msgf("served move %v for %s at depth %d", move, board.ActivePlayer(), metric.Depth)

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(move); err != nil {
		http.Error(w, "failed to encode move: "+err.Error(), http.StatusInternalServerError)
	}
}
