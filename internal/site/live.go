package site

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/gitmesh/docs-hub/internal/metrics"
)

const (
	liveWriteWait  = 10 * time.Second
	liveSendBuffer = 8
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// liveMessage is pushed to every dev-mode browser when the grid changes.
type liveMessage struct {
	Type     string         `json:"type"` // "hello" or "layout"
	ClientID string         `json:"client_id,omitempty"`
	Layout   layoutSnapshot `json:"layout"`
}

type liveClient struct {
	id   string
	conn *websocket.Conn
	send chan []byte
}

// liveHub fans layout changes out to connected browsers.
type liveHub struct {
	log     *slog.Logger
	metrics *metrics.HubMetrics

	mu      sync.Mutex
	clients map[string]*liveClient
}

func newLiveHub(log *slog.Logger, m *metrics.HubMetrics) *liveHub {
	return &liveHub{log: log, metrics: m, clients: make(map[string]*liveClient)}
}

// serve upgrades the request and streams layout updates until the browser
// goes away. Incoming messages are read only to notice the close.
func (lh *liveHub) serve(current func() layoutSnapshot) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			lh.log.Warn("live: websocket upgrade", "error", err)
			return
		}

		c := &liveClient{id: uuid.NewString(), conn: conn, send: make(chan []byte, liveSendBuffer)}
		hello, err := json.Marshal(liveMessage{Type: "hello", ClientID: c.id, Layout: current()})
		if err != nil {
			conn.Close()
			return
		}
		c.send <- hello
		lh.add(c)

		go lh.writeLoop(c)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
					lh.log.Debug("live: websocket read", "client", c.id, "error", err)
				}
				break
			}
		}
		lh.remove(c)
	}
}

func (lh *liveHub) writeLoop(c *liveClient) {
	defer c.conn.Close()
	for msg := range c.send {
		c.conn.SetWriteDeadline(time.Now().Add(liveWriteWait))
		if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			lh.log.Debug("live: websocket write", "client", c.id, "error", err)
			return
		}
	}
	c.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
}

func (lh *liveHub) add(c *liveClient) {
	lh.mu.Lock()
	lh.clients[c.id] = c
	lh.mu.Unlock()
	lh.metrics.LiveClientConnected()
	lh.log.Debug("live client connected", "client", c.id)
}

// remove drops c and ends its write loop. It is safe to call more than once.
func (lh *liveHub) remove(c *liveClient) {
	lh.mu.Lock()
	_, ok := lh.clients[c.id]
	if ok {
		delete(lh.clients, c.id)
		close(c.send)
	}
	lh.mu.Unlock()
	if ok {
		lh.metrics.LiveClientDisconnected()
		lh.log.Debug("live client disconnected", "client", c.id)
	}
}

func (lh *liveHub) count() int {
	lh.mu.Lock()
	defer lh.mu.Unlock()
	return len(lh.clients)
}

// broadcast queues snap for every client. A client whose buffer is full is
// disconnected rather than allowed to stall the others.
func (lh *liveHub) broadcast(snap layoutSnapshot) {
	msg, err := json.Marshal(liveMessage{Type: "layout", Layout: snap})
	if err != nil {
		lh.log.Error("live: encoding layout", "error", err)
		return
	}

	lh.mu.Lock()
	var slow []*liveClient
	for _, c := range lh.clients {
		select {
		case c.send <- msg:
		default:
			slow = append(slow, c)
		}
	}
	lh.mu.Unlock()

	for _, c := range slow {
		lh.remove(c)
	}
}

func (lh *liveHub) closeAll() {
	lh.mu.Lock()
	clients := make([]*liveClient, 0, len(lh.clients))
	for _, c := range lh.clients {
		clients = append(clients, c)
	}
	lh.mu.Unlock()
	for _, c := range clients {
		lh.remove(c)
	}
}
