// Command server runs the RoboRally game-server HTTP/WebSocket
// listener: lobby registry, finished-game history, and the transport
// layer from SPEC_FULL.md §6.3/§6.4.
package main

import (
	"net/http"
	"os"

	"github.com/mvolfik/roborally-sub000/internal/lobby"
	"github.com/mvolfik/roborally-sub000/internal/logging"
	"github.com/mvolfik/roborally-sub000/internal/transport"
)

func main() {
	log := logging.New("server")

	mapDir := os.Getenv("MAP_DIR")
	if mapDir == "" {
		mapDir = "testdata/maps"
	}
	historyDir := os.Getenv("HISTORY_DIR")
	if historyDir == "" {
		historyDir = "game-history"
	}

	history, err := lobby.OpenHistory(historyDir)
	if err != nil {
		log.Fatalf("failed to open game history store: %v", err)
	}
	defer history.Close()

	registry := lobby.NewRegistry(mapDir, history)
	server := transport.NewServer(registry)

	port := os.Getenv("PORT")
	addr := "127.0.0.1:8080"
	if port != "" {
		addr = "0.0.0.0:" + port
	} else {
		addr = "127.0.0.1:8080"
	}

	log.Printf("listening on %s (maps: %s, history: %s)", addr, mapDir, historyDir)
	if err := http.ListenAndServe(addr, server); err != nil {
		log.Fatalf("server exited: %v", err)
	}
}
