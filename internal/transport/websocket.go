// SPDX-License-Identifier: MIT
package transport

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// WebSocketTransport broadcasts pattern frames as JSON to every
// connected preview client.
type WebSocketTransport struct {
	addr      string
	upgrader  websocket.Upgrader
	clients   map[*websocket.Conn]bool
	clientsMu sync.Mutex
	broadcast chan *PatternFrame
	server    *http.Server
	done      chan struct{}
}

var _ Transport = (*WebSocketTransport)(nil)

// NewWebSocketTransport starts a WebSocket server on addr and returns
// the transport. Clients connect at /ws.
func NewWebSocketTransport(addr string) *WebSocketTransport {
	wst := &WebSocketTransport{
		addr: addr,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// Preview clients connect from arbitrary local origins.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		clients:   make(map[*websocket.Conn]bool),
		broadcast: make(chan *PatternFrame, 16),
		done:      make(chan struct{}),
	}
	wst.start()
	return wst
}

func (wst *WebSocketTransport) start() {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", wst.handleWebSocket)

	wst.server = &http.Server{Addr: wst.addr, Handler: mux}

	go func() {
		transportLog.Infof("preview feed listening on %s", wst.addr)
		if err := wst.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			transportLog.Errorf("preview server: %v", err)
		}
	}()

	go wst.broadcastLoop()
}

func (wst *WebSocketTransport) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := wst.upgrader.Upgrade(w, r, nil)
	if err != nil {
		transportLog.Errorf("upgrade failed: %v", err)
		return
	}
	wst.clientsMu.Lock()
	wst.clients[conn] = true
	wst.clientsMu.Unlock()
	transportLog.Debugf("preview client connected from %s", conn.RemoteAddr())
}

func (wst *WebSocketTransport) broadcastLoop() {
	for {
		select {
		case frame := <-wst.broadcast:
			wst.clientsMu.Lock()
			for conn := range wst.clients {
				if err := conn.WriteJSON(frame); err != nil {
					transportLog.Debugf("dropping preview client: %v", err)
					conn.Close()
					delete(wst.clients, conn)
				}
			}
			wst.clientsMu.Unlock()
		case <-wst.done:
			return
		}
	}
}

// Send queues a frame for broadcast. Frames are dropped when the
// broadcast queue is full rather than blocking the pipeline.
func (wst *WebSocketTransport) Send(frame *PatternFrame) error {
	select {
	case wst.broadcast <- frame:
	default:
		transportLog.Warnf("broadcast queue full, dropping frame %s", frame.RunID)
	}
	return nil
}

// Close disconnects all clients and shuts the server down.
func (wst *WebSocketTransport) Close() error {
	close(wst.done)

	wst.clientsMu.Lock()
	for conn := range wst.clients {
		conn.Close()
		delete(wst.clients, conn)
	}
	wst.clientsMu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	return wst.server.Shutdown(ctx)
}
