// Package websocket fans out snapshot change events to dashboard clients.
//
// The hub runs as a single actor goroutine owning the client set; all
// mutations go through its command channel. Each connection gets its
// own writer goroutine so one slow client never blocks the others. The
// change event carries no payload, clients refetch through the API.
package websocket

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/gorilla/websocket"

	"github.com/Tanishqstar/sentiment-command-center/internal/metrics"
)

const writeTimeout = 5 * time.Second

// changedEvent is the only message the hub ever sends.
type changedEvent struct {
	Type string `json:"type"`
}

// --- Command types ---

type hubCmd interface{ hubCmd() }

type cmdRegister struct {
	conn  *websocket.Conn
	errCh chan error
}

func (cmdRegister) hubCmd() {}

type cmdUnregister struct {
	conn *websocket.Conn
}

func (cmdUnregister) hubCmd() {}

type cmdBroadcast struct {
	data []byte
}

func (cmdBroadcast) hubCmd() {}

type cmdClientCount struct {
	replyCh chan int
}

func (cmdClientCount) hubCmd() {}

type cmdStop struct{}

func (cmdStop) hubCmd() {}

// --- Per-connection writer ---

type clientWriter struct {
	conn   *websocket.Conn
	sendCh chan []byte
	done   chan struct{}
}

func newClientWriter(conn *websocket.Conn) *clientWriter {
	cw := &clientWriter{
		conn:   conn,
		sendCh: make(chan []byte, 16),
		done:   make(chan struct{}),
	}
	go cw.run()
	return cw
}

func (cw *clientWriter) run() {
	for {
		select {
		case msg, ok := <-cw.sendCh:
			if !ok {
				return
			}
			cw.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
			if err := cw.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-cw.done:
			return
		}
	}
}

func (cw *clientWriter) stop() {
	close(cw.done)
	cw.conn.Close()
}

// --- Hub ---

// Hub manages all dashboard connections as a single room.
type Hub struct {
	cmdCh      chan hubCmd
	clients    map[*websocket.Conn]*clientWriter
	maxClients int
}

func NewHub(maxClients int) *Hub {
	h := &Hub{
		cmdCh:      make(chan hubCmd, 256),
		clients:    make(map[*websocket.Conn]*clientWriter),
		maxClients: maxClients,
	}
	go h.run()
	return h
}

func (h *Hub) run() {
	for cmd := range h.cmdCh {
		switch c := cmd.(type) {
		case cmdRegister:
			h.handleRegister(c)
		case cmdUnregister:
			h.handleUnregister(c.conn)
		case cmdBroadcast:
			h.handleBroadcast(c.data)
		case cmdClientCount:
			c.replyCh <- len(h.clients)
		case cmdStop:
			h.handleStop()
			return
		}
	}
}

func (h *Hub) handleRegister(c cmdRegister) {
	if len(h.clients) >= h.maxClients {
		slog.Warn("Rejecting websocket client, connection limit reached", "limit", h.maxClients)
		c.conn.Close()
		c.errCh <- fmt.Errorf("max websocket connections (%d) reached", h.maxClients)
		return
	}

	h.clients[c.conn] = newClientWriter(c.conn)
	metrics.WebSocketConnectedClients.Set(float64(len(h.clients)))
	slog.Debug("Websocket client registered", "total", len(h.clients))
	c.errCh <- nil
}

func (h *Hub) handleUnregister(conn *websocket.Conn) {
	cw, exists := h.clients[conn]
	if !exists {
		return
	}

	cw.stop()
	delete(h.clients, conn)
	metrics.WebSocketConnectedClients.Set(float64(len(h.clients)))
	slog.Debug("Websocket client unregistered", "remaining", len(h.clients))
}

func (h *Hub) handleBroadcast(data []byte) {
	var slow []*websocket.Conn
	for conn, cw := range h.clients {
		select {
		case cw.sendCh <- data:
		default:
			slow = append(slow, conn)
		}
	}

	for _, conn := range slow {
		slog.Warn("Disconnecting slow websocket client")
		h.handleUnregister(conn)
	}

	metrics.WebSocketBroadcastsTotal.Inc()
}

func (h *Hub) handleStop() {
	for conn, cw := range h.clients {
		cw.stop()
		delete(h.clients, conn)
	}
	metrics.WebSocketConnectedClients.Set(0)
}

// --- Public API ---

// Register adds a client connection. It returns an error and closes the
// connection when the hub is full.
func (h *Hub) Register(conn *websocket.Conn) error {
	errCh := make(chan error, 1)
	h.cmdCh <- cmdRegister{conn: conn, errCh: errCh}
	return <-errCh
}

// Unregister removes a client connection.
func (h *Hub) Unregister(conn *websocket.Conn) {
	h.cmdCh <- cmdUnregister{conn: conn}
}

// NotifyChanged pushes the zero-payload change event to every client.
// It is wired as a snapshot cache subscriber.
func (h *Hub) NotifyChanged() {
	data, err := json.Marshal(changedEvent{Type: "changed"})
	if err != nil {
		slog.Error("Failed to marshal change event", "error", err)
		return
	}
	h.cmdCh <- cmdBroadcast{data: data}
}

// ClientCount returns the number of connected clients.
func (h *Hub) ClientCount() int {
	replyCh := make(chan int, 1)
	h.cmdCh <- cmdClientCount{replyCh: replyCh}
	return <-replyCh
}

// Stop shuts down the hub, closing all client connections.
func (h *Hub) Stop() {
	h.cmdCh <- cmdStop{}
}
