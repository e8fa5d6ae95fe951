package transport

import (
	"net/http"
	"strings"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"
	channerics "github.com/niceyeti/channerics/channels"

	"github.com/mvolfik/roborally-sub000/internal/engine"
	"github.com/mvolfik/roborally-sub000/internal/gameactor"
	"github.com/mvolfik/roborally-sub000/internal/wire"
)

// pingInterval/pongTimeout ground the 20-second liveness window from
// SPEC_FULL.md §5 ("a client that fails to respond to server pings
// within 20 seconds is disconnected"), mirrored from the original's
// game_connection.rs ping loop.
const (
	pingInterval = 8 * time.Second
	pongTimeout  = 20 * time.Second
	writeWait    = 2 * time.Second
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// handleWebsocket upgrades the connection, claims a seat by player
// name, and runs the reader/pinger/writer loops until the client
// disconnects. Path shape: /websocket/game/{id}?name={playerName}.
func (s *Server) handleWebsocket(w http.ResponseWriter, r *http.Request) {
	gameID := strings.TrimPrefix(r.URL.Path, "/websocket/game/")
	if gameID == "" {
		http.Error(w, "missing game id", http.StatusBadRequest)
		return
	}
	actor, ok := s.registry.Get(gameID)
	if !ok {
		http.Error(w, "no such game", http.StatusNotFound)
		return
	}

	playerName := r.URL.Query().Get("name")
	seat, err := s.registry.SeatName(gameID, playerName)
	if err != nil {
		http.Error(w, err.Error(), http.StatusConflict)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Printf("websocket upgrade failed for game %s: %v", gameID, err)
		return
	}

	done := make(chan struct{})
	outbound := make(chan any, 16)
	sink := engine.NewOutboundSink[any](outbound)
	actor.Connect(seat, sink)

	go s.runPinger(conn, done)
	go s.runWriter(conn, outbound, done)
	s.runReader(conn, actor, seat, done)

	close(done)
	sink.Revoke()
	actor.Connect(seat, nil)
	conn.Close()
}

// runReader blocks until the connection errors or closes, decoding
// each client message into a Program intent. Reading is how gorilla's
// pong handler gets invoked, so this loop doubles as the liveness
// feed for runPinger.
func (s *Server) runReader(conn *websocket.Conn, actor *gameactor.Actor, seat int, done chan struct{}) {
	for {
		msgType, data, err := conn.ReadMessage()
		if err != nil {
			return
		}
		if msgType != websocket.BinaryMessage {
			continue
		}

		cm, err := wire.DecodeClientMessage(data)
		if err != nil {
			s.log.Printf("malformed client message on seat %d: %v", seat, err)
			continue
		}

		if err := actor.SubmitProgram(seat, cm.Program); err != nil {
			s.log.Printf("program rejected for seat %d: %v", seat, err)
		}
	}
}

func (s *Server) runPinger(conn *websocket.Conn, done <-chan struct{}) {
	var lastPong atomic.Int64
	lastPong.Store(time.Now().UnixNano())
	conn.SetPongHandler(func(string) error {
		lastPong.Store(time.Now().UnixNano())
		return nil
	})

	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			if time.Since(time.Unix(0, lastPong.Load())) > pongTimeout {
				conn.Close()
				return
			}
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (s *Server) runWriter(conn *websocket.Conn, outbound <-chan any, done <-chan struct{}) {
	for msg := range channerics.OrDone[any](done, outbound) {
		sm, ok := msg.(*wire.ServerMessage)
		if !ok {
			continue
		}
		data, err := wire.EncodeServerMessage(sm)
		if err != nil {
			s.log.Printf("failed to encode outbound message: %v", err)
			continue
		}
		conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := conn.WriteMessage(websocket.BinaryMessage, data); err != nil {
			return
		}
	}
}
