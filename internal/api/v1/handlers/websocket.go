package handlers

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/pathwise/compass/internal/connections"
	"github.com/rs/zerolog/log"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		// Origin policy is enforced by the CORS middleware for the REST
		// surface; the socket accepts the same browser clients.
		return true
	},
}

// wsRequest is one inbound chat frame.
type wsRequest struct {
	SessionID string `json:"session_id"`
	Message   string `json:"message"`
}

// HandleChatSocket streams chat responses over a WebSocket. Each inbound
// frame is one user message; the reply is a sequence of message frames
// followed by a done or error frame, mirroring the SSE contract.
func HandleChatSocket(responder Responder, manager *connections.Manager, w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Warn().Err(err).Msg("WebSocket upgrade failed")
		return
	}

	manager.Add(conn)
	defer func() {
		manager.Remove(conn)
		conn.Close()
	}()

	timeouts := manager.Timeouts()
	conn.SetReadDeadline(time.Now().Add(timeouts.PongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(timeouts.PongWait))
	})

	// Keepalive: pings refresh the read deadline via the pong handler, so an
	// idle client is only dropped once it stops answering. WriteControl is
	// safe alongside the response writes in the read loop.
	stopPings := make(chan struct{})
	defer close(stopPings)
	go pingLoop(conn, timeouts, stopPings)

	// Session identity defaults per connection; a frame may override it.
	defaultSession := uuid.New().String()

	for {
		var req wsRequest
		if err := conn.ReadJSON(&req); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Warn().Err(err).Msg("Unexpected WebSocket closure")
			}
			return
		}
		conn.SetReadDeadline(time.Now().Add(timeouts.PongWait))

		if req.Message == "" {
			if err := writeFrame(conn, timeouts.WriteWait, StreamEvent{Type: "error", Content: "Message cannot be empty"}); err != nil {
				return
			}
			continue
		}

		sessionID := req.SessionID
		if sessionID == "" {
			sessionID = defaultSession
		}

		_, err := responder.Respond(r.Context(), sessionID, req.Message, func(fragment string) error {
			return writeFrame(conn, timeouts.WriteWait, StreamEvent{Type: "message", Content: fragment})
		})
		if err != nil {
			log.Error().Err(err).Str("session_id", sessionID).Msg("WebSocket chat failed")
			if err := writeFrame(conn, timeouts.WriteWait, StreamEvent{Type: "error", Content: "Failed to generate response"}); err != nil {
				return
			}
			continue
		}

		if err := writeFrame(conn, timeouts.WriteWait, StreamEvent{Type: "done"}); err != nil {
			return
		}
	}
}

func pingLoop(conn *websocket.Conn, timeouts connections.TimeoutConfig, stop <-chan struct{}) {
	ticker := time.NewTicker(timeouts.PingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			deadline := time.Now().Add(timeouts.WriteWait)
			if err := conn.WriteControl(websocket.PingMessage, nil, deadline); err != nil {
				return
			}
		case <-stop:
			return
		}
	}
}

func writeFrame(conn *websocket.Conn, writeWait time.Duration, event StreamEvent) error {
	conn.SetWriteDeadline(time.Now().Add(writeWait))
	return conn.WriteJSON(event)
}
