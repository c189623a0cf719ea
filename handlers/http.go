package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/smidy/ChickenFight-sub000/models"
	"github.com/smidy/ChickenFight-sub000/persistence"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// Browser clients are served from other origins
		return true
	},
}

// NewRouter builds the HTTP surface: the websocket endpoint plus read-only status routes
func NewRouter(opts Options, store persistence.Storage) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			opts.Logger.Printf("Failed to upgrade connection: %v", err)
			return
		}
		HandleClientConnection(conn, opts)
	})

	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{
			"status":   "ok",
			"sessions": opts.Clients.Count(),
		})
	})

	mux.HandleFunc("/api/fights", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
			return
		}
		playerID := r.URL.Query().Get("player")
		if playerID == "" {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "player is required"})
			return
		}
		records, err := store.LoadFightRecords(playerID)
		if err != nil {
			opts.Logger.Printf("Error loading fights for %s: %v", playerID, err)
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to load fights"})
			return
		}
		if records == nil {
			records = []*models.FightRecord{}
		}
		writeJSON(w, http.StatusOK, records)
	})

	return mux
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
