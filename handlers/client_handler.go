package handlers

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/smidy/ChickenFight-sub000/actor"
	"github.com/smidy/ChickenFight-sub000/messages"
	"github.com/smidy/ChickenFight-sub000/network"
	"github.com/smidy/ChickenFight-sub000/services"
)

// Error codes sent back for frames that cannot be handled
const (
	CodeMalformedMessage   = "MALFORMED_MESSAGE"
	CodeUnknownMessageType = "UNKNOWN_MESSAGE_TYPE"
	CodeServerShutdown     = "SERVER_SHUTDOWN"
)

// ClientHandler bridges one websocket session to its player actor
type ClientHandler struct {
	conn      *network.Connection
	sessionID string
	player    *actor.PID
	logger    *log.Logger
}

// HandleClientConnection runs a websocket session until the client goes away
func HandleClientConnection(wsConn *websocket.Conn, opts Options) {
	conn := network.NewConnection(wsConn, opts.Logger)
	go conn.WritePump()

	sessionID := uuid.NewString()
	handler, err := newClientHandler(conn, sessionID, opts)
	if err != nil {
		opts.Logger.Printf("Session %s from %s rejected: %v", sessionID, conn.RemoteAddr(), err)
		conn.Close()
		return
	}
	opts.Clients.AddClient(sessionID, handler)
	opts.Logger.Printf("Session %s connected from %s", sessionID, conn.RemoteAddr())

	conn.ReadPump(handler)

	// Clean up when the connection is closed
	handler.player.Send(services.Disconnect{})
	opts.Clients.RemoveClient(sessionID)
	opts.Logger.Printf("Session %s disconnected", sessionID)
}

// newClientHandler asks the manager for a player actor bound to this connection
func newClientHandler(conn *network.Connection, sessionID string, opts Options) (*ClientHandler, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opts.AskTimeout)
	defer cancel()

	reply, err := actor.Ask(ctx, opts.Manager, func(replyTo *actor.PID) actor.Message {
		return services.CreatePlayer{
			PlayerID: sessionID,
			Name:     "Player-" + sessionID[:8],
			Sink:     conn,
			ReplyTo:  replyTo,
		}
	})
	if err != nil {
		return nil, fmt.Errorf("create player: %w", err)
	}
	created, ok := reply.(services.PlayerCreated)
	if !ok {
		return nil, fmt.Errorf("create player: unexpected reply %T", reply)
	}
	if created.Err != nil {
		return nil, created.Err
	}

	return &ClientHandler{
		conn:      conn,
		sessionID: sessionID,
		player:    created.PID,
		logger:    opts.Logger,
	}, nil
}

// HandleMessage decodes a client frame and hands it to the player actor.
// Frames that cannot be decoded are dropped; the connection stays open.
func (h *ClientHandler) HandleMessage(conn *network.Connection, message []byte) {
	msg, err := messages.Decode(message)
	if err != nil {
		h.logger.Printf("Session %s: dropping frame: %v", h.sessionID, err)
		code := CodeMalformedMessage
		if errors.Is(err, messages.ErrUnknownType) {
			code = CodeUnknownMessageType
		}
		conn.SendMessage(messages.ErrorMessage{Code: code, Message: err.Error()})
		return
	}

	h.player.Send(msg)
}

// SessionID returns the id shared by the session and its player
func (h *ClientHandler) SessionID() string {
	return h.sessionID
}

// Close drops the client connection; the read pump then runs the disconnect cleanup
func (h *ClientHandler) Close() {
	h.conn.Close()
}

// Options wires the websocket layer to the rest of the server
type Options struct {
	Manager    *actor.PID
	Clients    *ClientManager
	AskTimeout time.Duration
	Logger     *log.Logger
}
