package connections

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// TimeoutConfig holds the timeout settings for chat WebSocket connections
type TimeoutConfig struct {
	PongWait   time.Duration
	PingPeriod time.Duration
	WriteWait  time.Duration
}

// DefaultTimeouts provides sensible default timeout values
var DefaultTimeouts = TimeoutConfig{
	PongWait:   60 * time.Second,
	PingPeriod: 54 * time.Second, // (PongWait * 9) / 10
	WriteWait:  10 * time.Second,
}

// Manager tracks live chat WebSocket connections so the server can report
// and drain them on shutdown.
type Manager struct {
	connections sync.Map
	timeouts    TimeoutConfig
}

func NewManager(timeouts TimeoutConfig) *Manager {
	return &Manager{timeouts: timeouts}
}

// Timeouts returns the configured timeout settings
func (m *Manager) Timeouts() TimeoutConfig {
	return m.timeouts
}

// Add registers a connection
func (m *Manager) Add(conn *websocket.Conn) {
	m.connections.Store(conn, struct{}{})
}

// Remove drops a connection from tracking
func (m *Manager) Remove(conn *websocket.Conn) {
	m.connections.Delete(conn)
}

// Count returns the number of live connections
func (m *Manager) Count() int {
	count := 0
	m.connections.Range(func(_, _ interface{}) bool {
		count++
		return true
	})
	return count
}

// CloseAll closes every tracked connection, used on shutdown
func (m *Manager) CloseAll() {
	m.connections.Range(func(key, _ interface{}) bool {
		conn := key.(*websocket.Conn)
		_ = conn.WriteControl(
			websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"),
			time.Now().Add(m.timeouts.WriteWait),
		)
		conn.Close()
		m.connections.Delete(key)
		return true
	})
}
