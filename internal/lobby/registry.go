package lobby

import (
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"sync"

	"github.com/mvolfik/roborally-sub000/internal/cards"
	"github.com/mvolfik/roborally-sub000/internal/gameactor"
	"github.com/mvolfik/roborally-sub000/internal/grid"
	"github.com/mvolfik/roborally-sub000/internal/logging"
	"github.com/mvolfik/roborally-sub000/internal/mapfile"
)

// GameSummary is the listing row returned by GET /api/list-games.
type GameSummary struct {
	ID      string
	Name    string
	MapName string
	Seats   []string // empty string = open seat
}

// gameEntry is the registry's record for one in-progress game.
type gameEntry struct {
	id      string
	name    string
	mapName string
	actor   *gameactor.Actor
	seats   []string
}

// Registry is the in-memory new-game/list-games/map-catalogue service
// of §6.3, backed by a directory of map files on disk and an optional
// History for archiving finished games.
type Registry struct {
	mapDir  string
	history *History
	log     *logging.Logger

	mu    sync.Mutex
	games map[string]*gameEntry
	seq   int
}

// NewRegistry builds a Registry reading map files from mapDir.
func NewRegistry(mapDir string, history *History) *Registry {
	return &Registry{
		mapDir:  mapDir,
		history: history,
		log:     logging.New("lobby"),
		games:   make(map[string]*gameEntry),
	}
}

// ListMaps returns the names of every map file available.
func (r *Registry) ListMaps() ([]string, error) {
	entries, err := os.ReadDir(r.mapDir)
	if err != nil {
		return nil, fmt.Errorf("reading map directory: %w", err)
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		names = append(names, e.Name())
	}
	return names, nil
}

// GetMap returns the raw bytes of one map file, for the /api/map blob
// endpoint.
func (r *Registry) GetMap(name string) ([]byte, error) {
	path := filepath.Join(r.mapDir, filepath.Base(name))
	return os.ReadFile(path)
}

func (r *Registry) loadMap(name string) (*grid.GameMap, error) {
	data, err := r.GetMap(name)
	if err != nil {
		return nil, err
	}
	return mapfile.Parse(string(data))
}

// NewGame creates a new game on the named map with the given number of
// seats, per the POST /api/new-game contract: players must not exceed
// the map's spawn point count.
func (r *Registry) NewGame(mapName, gameName string, players int) (string, error) {
	m, err := r.loadMap(mapName)
	if err != nil {
		return "", fmt.Errorf("loading map %q: %w", mapName, err)
	}
	if players <= 0 || players > len(m.SpawnPoints) {
		return "", fmt.Errorf("players must be between 1 and %d, got %d", len(m.SpawnPoints), players)
	}

	r.mu.Lock()
	r.seq++
	id := fmt.Sprintf("g%d", r.seq)
	r.mu.Unlock()

	entry := &gameEntry{id: id, name: gameName, mapName: mapName, seats: make([]string, players)}

	shuffler := cards.NewRandShuffler(rand.Int63())
	actor, err := gameactor.New(m, mapName, players, shuffler, func(winner int, log []string) {
		if r.history == nil {
			return
		}
		names := append([]string(nil), entry.seats...)
		r.history.Archive(FinishedGame{GameID: id, MapName: mapName, PlayerNames: names, Winner: winner, Log: log})
	})
	if err != nil {
		return "", err
	}
	entry.actor = actor

	r.mu.Lock()
	r.games[id] = entry
	r.mu.Unlock()

	return id, nil
}

// ListGames returns a summary row for every active game.
func (r *Registry) ListGames() []GameSummary {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]GameSummary, 0, len(r.games))
	for _, e := range r.games {
		out = append(out, GameSummary{ID: e.id, Name: e.name, MapName: e.mapName, Seats: append([]string(nil), e.seats...)})
	}
	return out
}

// Get returns the actor for an active game id.
func (r *Registry) Get(id string) (*gameactor.Actor, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.games[id]
	if !ok {
		return nil, false
	}
	return e.actor, true
}

// SeatName claims a seat with a display name and returns its index.
// It rejects a name already claimed by another seat in this game (§7
// kind 1, "already-occupied seat") distinctly from the game simply
// having no open seats left.
func (r *Registry) SeatName(gameID, playerName string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.games[gameID]
	if !ok {
		return 0, fmt.Errorf("no such game %q", gameID)
	}
	for _, s := range e.seats {
		if s != "" && s == playerName {
			return 0, fmt.Errorf("seat %q in game %q is already occupied", playerName, gameID)
		}
	}
	for i, s := range e.seats {
		if s == "" {
			e.seats[i] = playerName
			e.actor.SetName(i, playerName)
			return i, nil
		}
	}
	return 0, fmt.Errorf("game %q has no open seats", gameID)
}
