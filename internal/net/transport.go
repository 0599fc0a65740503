// Package net carries live-share plumbing: a websocket hub run by the host,
// a client dialer, mDNS session discovery and share-link helpers.
package net

import (
	"fmt"
	"log"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
)

// SharePath is the websocket endpoint a host exposes.
const SharePath = "/share"

// Hub is run by the HOST: it accepts editor connections, hands incoming
// messages to OnMessage and relays broadcasts to everyone else.
type Hub struct {
	mu       sync.Mutex
	conns    map[*websocket.Conn]bool
	upgrader websocket.Upgrader

	// OnMessage receives every message a connected editor sends. The from
	// connection is passed so relays can exclude the sender.
	OnMessage func(data []byte, from *websocket.Conn)
}

func NewHub() *Hub {
	return &Hub{
		conns: make(map[*websocket.Conn]bool),
		upgrader: websocket.Upgrader{
			// Sessions are LAN-local; no origin policy to enforce.
			CheckOrigin: func(*http.Request) bool { return true },
		},
	}
}

// ListenAndServe blocks serving the share endpoint on the given port.
func (h *Hub) ListenAndServe(port int) error {
	mux := http.NewServeMux()
	mux.HandleFunc(SharePath, h.handleShare)
	log.Printf("[NET] Host listening on :%d%s", port, SharePath)
	return http.ListenAndServe(fmt.Sprintf(":%d", port), mux)
}

func (h *Hub) handleShare(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[NET] Upgrade failed for %s: %v", r.RemoteAddr, err)
		return
	}
	h.add(conn)
	defer func() {
		h.remove(conn)
		conn.Close()
	}()

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			log.Printf("[NET] Editor %s disconnected: %v", conn.RemoteAddr(), err)
			return
		}
		if h.OnMessage != nil {
			h.OnMessage(data, conn)
		}
	}
}

func (h *Hub) add(conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.conns[conn] = true
	log.Printf("[NET] Editor connected from %s", conn.RemoteAddr())
}

func (h *Hub) remove(conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.conns, conn)
}

// Broadcast sends data to every connected editor except exclude (pass nil
// to reach everyone). The hub lock doubles as the per-connection write
// lock websocket connections require.
func (h *Hub) Broadcast(data []byte, exclude *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for conn := range h.conns {
		if conn == exclude {
			continue
		}
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			log.Printf("[NET] Send to %s failed: %v", conn.RemoteAddr(), err)
		}
	}
}

// Client is one editor's connection to a host.
type Client struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

// Dial connects to a host's share endpoint at host:port.
func Dial(addr string) (*Client, error) {
	url := fmt.Sprintf("ws://%s%s", addr, SharePath)
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", url, err)
	}
	log.Printf("[NET] Connected to host %s", addr)
	return &Client{conn: conn}, nil
}

// Send writes one message to the host.
func (c *Client) Send(data []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn.WriteMessage(websocket.TextMessage, data)
}

// Listen delivers incoming messages to onMessage until the connection
// drops, then returns the read error.
func (c *Client) Listen(onMessage func(data []byte)) error {
	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			return err
		}
		onMessage(data)
	}
}

func (c *Client) Close() error {
	return c.conn.Close()
}
