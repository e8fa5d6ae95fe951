// Package transport implements the HTTP/WebSocket surface of
// SPEC_FULL.md §6.3: new-game, list-games, map, list-maps, and the
// duplex websocket itself. It only ever talks to a game through its
// gameactor.Actor - never touches engine.Game fields directly, per the
// single-writer boundary in §5.
package transport

import (
	"encoding/json"
	"net/http"

	"github.com/mvolfik/roborally-sub000/internal/lobby"
	"github.com/mvolfik/roborally-sub000/internal/logging"
)

// Server bundles the lobby registry and the HTTP mux serving it.
type Server struct {
	registry *lobby.Registry
	log      *logging.Logger
	mux      *http.ServeMux
}

// NewServer builds a Server wired to registry and registers its routes.
func NewServer(registry *lobby.Registry) *Server {
	s := &Server{registry: registry, log: logging.New("transport"), mux: http.NewServeMux()}
	s.mux.HandleFunc("/api/new-game", s.handleNewGame)
	s.mux.HandleFunc("/api/list-games", s.handleListGames)
	s.mux.HandleFunc("/api/map", s.handleMap)
	s.mux.HandleFunc("/api/list-maps", s.handleListMaps)
	s.mux.HandleFunc("/websocket/game/", s.handleWebsocket)
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

type newGameRequest struct {
	Players int    `json:"players"`
	MapName string `json:"map_name"`
	Name    string `json:"name"`
}

type newGameResponse struct {
	GameID string `json:"game_id"`
}

func (s *Server) handleNewGame(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var req newGameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "malformed request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	id, err := s.registry.NewGame(req.MapName, req.Name, req.Players)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(newGameResponse{GameID: id})
}

func (s *Server) handleListGames(w http.ResponseWriter, r *http.Request) {
	json.NewEncoder(w).Encode(s.registry.ListGames())
}

func (s *Server) handleMap(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("name")
	if name == "" {
		http.Error(w, "missing name parameter", http.StatusBadRequest)
		return
	}
	data, err := s.registry.GetMap(name)
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/octet-stream")
	w.Write(data)
}

func (s *Server) handleListMaps(w http.ResponseWriter, r *http.Request) {
	names, err := s.registry.ListMaps()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	json.NewEncoder(w).Encode(names)
}
