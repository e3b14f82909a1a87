package jsonrpc

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/mintforge/goMintd/internal/events"
)

// WebSocketServer streams ledger notifications to websocket clients. A
// client subscribes to streams by name and receives each committed event
// as a JSON object.
type WebSocketServer struct {
	upgrader     websocket.Upgrader
	events       *events.SubscriptionManager
	pingInterval time.Duration

	mu    sync.Mutex
	conns map[*wsConn]struct{}
}

// NewWebSocketServer creates the websocket endpoint over the given
// subscription manager.
func NewWebSocketServer(manager *events.SubscriptionManager, pingInterval time.Duration) *WebSocketServer {
	if pingInterval <= 0 {
		pingInterval = 30 * time.Second
	}
	return &WebSocketServer{
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		events:       manager,
		pingInterval: pingInterval,
		conns:        make(map[*wsConn]struct{}),
	}
}

// wsCommand is a client request on the websocket.
type wsCommand struct {
	Command string   `json:"command"`
	Streams []string `json:"streams,omitempty"`
	ID      rawID    `json:"id,omitempty"`
}

type rawID = json.RawMessage

// wsReply acknowledges a command.
type wsReply struct {
	Status  string   `json:"status"`
	Command string   `json:"command"`
	Streams []string `json:"streams,omitempty"`
	Error   string   `json:"error,omitempty"`
	ID      rawID    `json:"id,omitempty"`
}

type wsConn struct {
	conn *websocket.Conn
	send chan []byte
	done chan struct{}

	mu  sync.Mutex
	sub *events.Subscription
}

// ServeHTTP upgrades the request and runs the connection loops.
func (ws *WebSocketServer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := ws.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("websocket upgrade failed: %v", err)
		return
	}

	c := &wsConn{
		conn: conn,
		send: make(chan []byte, 256),
		done: make(chan struct{}),
	}

	ws.mu.Lock()
	ws.conns[c] = struct{}{}
	ws.mu.Unlock()

	go ws.writeLoop(c)
	ws.readLoop(c)

	ws.mu.Lock()
	delete(ws.conns, c)
	ws.mu.Unlock()
	c.close()
}

// CloseAll drops every active connection. Used on shutdown.
func (ws *WebSocketServer) CloseAll() {
	ws.mu.Lock()
	conns := make([]*wsConn, 0, len(ws.conns))
	for c := range ws.conns {
		conns = append(conns, c)
	}
	ws.conns = make(map[*wsConn]struct{})
	ws.mu.Unlock()

	for _, c := range conns {
		c.close()
	}
}

func (ws *WebSocketServer) readLoop(c *wsConn) {
	defer c.close()

	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			return
		}

		var cmd wsCommand
		if err := json.Unmarshal(raw, &cmd); err != nil {
			c.reply(wsReply{Status: "error", Error: "invalid command"})
			continue
		}

		switch cmd.Command {
		case "subscribe":
			ws.subscribe(c, cmd)
		case "unsubscribe":
			c.unsubscribe()
			c.reply(wsReply{Status: "success", Command: cmd.Command, ID: cmd.ID})
		case "ping":
			c.reply(wsReply{Status: "success", Command: cmd.Command, ID: cmd.ID})
		default:
			c.reply(wsReply{Status: "error", Command: cmd.Command, Error: "unknown command", ID: cmd.ID})
		}
	}
}

// subscribe replaces the connection's subscription with one covering the
// requested streams and starts forwarding its events.
func (ws *WebSocketServer) subscribe(c *wsConn, cmd wsCommand) {
	for _, stream := range cmd.Streams {
		switch stream {
		case events.StreamPrepared, events.StreamMinted,
			events.StreamRoyaltySet, events.StreamBasePathSet:
		default:
			c.reply(wsReply{Status: "error", Command: cmd.Command, Error: "unknown stream: " + stream, ID: cmd.ID})
			return
		}
	}

	c.unsubscribe()
	sub := ws.events.Subscribe(cmd.Streams...)

	c.mu.Lock()
	c.sub = sub
	c.mu.Unlock()

	go c.forward(sub)
	c.reply(wsReply{Status: "success", Command: cmd.Command, Streams: cmd.Streams, ID: cmd.ID})
}

// forward pushes subscription events to the send channel until either
// side goes away.
func (c *wsConn) forward(sub *events.Subscription) {
	for {
		select {
		case ev, ok := <-sub.C:
			if !ok {
				return
			}
			raw, err := json.Marshal(ev)
			if err != nil {
				continue
			}
			select {
			case c.send <- raw:
			case <-c.done:
				return
			}
		case <-c.done:
			return
		}
	}
}

func (ws *WebSocketServer) writeLoop(c *wsConn) {
	ticker := time.NewTicker(ws.pingInterval)
	defer ticker.Stop()
	defer c.conn.Close()

	for {
		select {
		case raw := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if err := c.conn.WriteMessage(websocket.TextMessage, raw); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-c.done:
			return
		}
	}
}

func (c *wsConn) reply(r wsReply) {
	raw, err := json.Marshal(r)
	if err != nil {
		return
	}
	select {
	case c.send <- raw:
	case <-c.done:
	}
}

func (c *wsConn) unsubscribe() {
	c.mu.Lock()
	sub := c.sub
	c.sub = nil
	c.mu.Unlock()

	if sub != nil {
		sub.Unsubscribe()
	}
}

func (c *wsConn) close() {
	c.unsubscribe()

	c.mu.Lock()
	select {
	case <-c.done:
	default:
		close(c.done)
	}
	c.mu.Unlock()

	c.conn.Close()
}
