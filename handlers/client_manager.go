package handlers

import (
	"log"
	"sync"

	"github.com/smidy/ChickenFight-sub000/messages"
)

// ClientManager tracks connected websocket sessions
type ClientManager struct {
	clients map[string]*ClientHandler // Map SessionID to ClientHandler
	mutex   sync.RWMutex
	logger  *log.Logger
}

// NewClientManager creates a new client manager
func NewClientManager(logger *log.Logger) *ClientManager {
	return &ClientManager{
		clients: make(map[string]*ClientHandler),
		logger:  logger,
	}
}

// AddClient adds a client to the manager
func (cm *ClientManager) AddClient(sessionID string, handler *ClientHandler) {
	cm.mutex.Lock()
	defer cm.mutex.Unlock()
	cm.clients[sessionID] = handler
}

// RemoveClient removes a client from the manager
func (cm *ClientManager) RemoveClient(sessionID string) {
	cm.mutex.Lock()
	defer cm.mutex.Unlock()
	delete(cm.clients, sessionID)
}

// Count returns the number of connected sessions
func (cm *ClientManager) Count() int {
	cm.mutex.RLock()
	defer cm.mutex.RUnlock()
	return len(cm.clients)
}

// SessionIDs lists the connected sessions
func (cm *ClientManager) SessionIDs() []string {
	cm.mutex.RLock()
	defer cm.mutex.RUnlock()

	ids := make([]string, 0, len(cm.clients))
	for id := range cm.clients {
		ids = append(ids, id)
	}
	return ids
}

// BroadcastToAll sends a message to all connected clients
func (cm *ClientManager) BroadcastToAll(msg messages.Message) {
	cm.ExecuteOnAllClients(func(client *ClientHandler) {
		if err := client.conn.SendMessage(msg); err != nil {
			cm.logger.Printf("Error broadcasting to client %s: %v", client.sessionID, err)
		}
	})
}

// DisconnectAll tells every client the server is going away and closes the connections
func (cm *ClientManager) DisconnectAll() {
	cm.BroadcastToAll(messages.ErrorMessage{Code: CodeServerShutdown, Message: "Server is shutting down"})
	cm.ExecuteOnAllClients((*ClientHandler).Close)
}

// ExecuteOnAllClients executes a function for each connected client
func (cm *ClientManager) ExecuteOnAllClients(action func(*ClientHandler)) {
	cm.mutex.RLock()
	clients := make([]*ClientHandler, 0, len(cm.clients))
	for _, client := range cm.clients {
		clients = append(clients, client)
	}
	cm.mutex.RUnlock()

	for _, client := range clients {
		action(client)
	}
}
