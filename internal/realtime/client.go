package realtime

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/astra-capstone/astra-backend/internal/platform/logger"
)

const (
	writeTimeout = 10 * time.Second

	// Close code sent when the requested session does not exist.
	CloseSessionNotFound = 4004
)

// Client adapts one gorilla connection to the hub's Subscriber interface.
// Broadcasts and keep-alive replies share the connection, so every write
// goes through a single mutex.
type Client struct {
	ID        uuid.UUID
	SessionID string

	conn    *websocket.Conn
	log     *logger.Logger
	writeMu sync.Mutex
	once    sync.Once
}

func NewClient(sessionID string, conn *websocket.Conn, log *logger.Logger) *Client {
	id := uuid.New()
	return &Client{
		ID:        id,
		SessionID: sessionID,
		conn:      conn,
		log:       log.With("client_id", id.String(), "session_id", sessionID),
	}
}

func (c *Client) Send(msg Message) error {
	raw, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	return c.writeText(raw)
}

func (c *Client) writeText(payload []byte) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	_ = c.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
	return c.conn.WriteMessage(websocket.TextMessage, payload)
}

// ReadLoop blocks until the peer goes away. The only interpreted inbound
// payload is the literal "ping", answered with a unicast "pong"; everything
// else is ignored.
func (c *Client) ReadLoop() {
	for {
		msgType, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				c.log.Warn("websocket read error", "error", err)
			} else {
				c.log.Info("websocket disconnected")
			}
			return
		}
		if msgType == websocket.TextMessage && string(data) == "ping" {
			if err := c.writeText([]byte("pong")); err != nil {
				c.log.Warn("pong write failed", "error", err)
				return
			}
		}
	}
}

// Close tears the connection down once; later calls are no-ops.
func (c *Client) Close() {
	c.once.Do(func() {
		_ = c.conn.Close()
	})
}

// Reject completes the handshake and immediately closes with the given code
// so the client can observe why it was turned away.
func Reject(conn *websocket.Conn, code int, reason string) {
	msg := websocket.FormatCloseMessage(code, reason)
	_ = conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(writeTimeout))
	_ = conn.Close()
}
