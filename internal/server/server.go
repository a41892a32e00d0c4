// Package server exposes remote game sessions over HTTP and WebSocket.
package server

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"minigames/internal/engine"
	"minigames/internal/remote"
)

// Server is the HTTP server.
type Server struct {
	mux      *http.ServeMux
	registry *engine.Registry
	store    remote.DocStore
}

// New creates a server with all routes.
func New(registry *engine.Registry, store remote.DocStore) *Server {
	s := &Server{
		mux:      http.NewServeMux(),
		registry: registry,
		store:    store,
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	s.mux.HandleFunc("GET /api/games", s.handleListGames)
	s.mux.HandleFunc("POST /api/sessions", s.handleCreateSession)
	s.mux.HandleFunc("GET /api/sessions/{id}", s.handleGetSession)
	s.mux.HandleFunc("GET /api/sessions/{id}/ws", s.handleWebSocket)
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

func (s *Server) handleListGames(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.registry.List())
}

type createSessionRequest struct {
	GameKey string    `json:"gameKey"`
	Players [2]string `json:"players"`
}

type createSessionResponse struct {
	ID string `json:"id"`
}

func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	var req createSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	req.GameKey = strings.TrimSpace(req.GameKey)
	if req.GameKey == "" || req.Players[0] == "" || req.Players[1] == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "gameKey and two players required"})
		return
	}
	entry, ok := s.registry.Get(req.GameKey)
	if !ok {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "unknown game: " + req.GameKey})
		return
	}

	state, err := json.Marshal(entry.Def.Setup())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	doc := &remote.Doc{
		ID:      uuid.NewString(),
		GameKey: entry.Key,
		Players: req.Players,
		State:   state,
		Current: engine.PlayerX.String(),
	}
	if err := s.store.Create(r.Context(), doc); err != nil {
		log.Error().Err(err).Str("game", req.GameKey).Msg("create session")
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "create session failed"})
		return
	}
	writeJSON(w, http.StatusCreated, createSessionResponse{ID: doc.ID})
}

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	doc, err := s.store.Get(r.Context(), id)
	if err == remote.ErrNotFound {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "session not found"})
		return
	}
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, doc)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
