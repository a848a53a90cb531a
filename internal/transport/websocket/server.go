// Package websocket serves the text protocol over WebSocket text frames, one
// record per frame. ReliableOrdered sends block until the client's send
// buffer accepts the record; Unreliable sends are dropped when the buffer is
// full.
package websocket

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/playforge/gameroom-backend/internal/transport"
)

const (
	sendBufferSize = 256
	pongWait       = 60 * time.Second
	pingPeriod     = 54 * time.Second
	writeWait      = 10 * time.Second
)

var ErrConnectionClosed = errors.New("connection is closed")

type Server struct {
	logger   *slog.Logger
	events   chan<- transport.Event
	upgrader websocket.Upgrader
}

func New(logger *slog.Logger, events chan<- transport.Event) *Server {
	return &Server{
		logger: logger.With("component", "websocket"),
		events: events,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
	}
}

// Start serves WebSocket upgrades on /ws until the context is canceled.
func (that *Server) Start(ctx context.Context, port string) error {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", that.serveWS)

	srv := &http.Server{
		Addr:        ":" + port,
		Handler:     mux,
		IdleTimeout: 30 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), writeWait)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			that.logger.Error("failed to shut down server", "error", err)
		}
	}()

	that.logger.Info("WebSocket server listening", "port", port)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

func (that *Server) serveWS(w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "serveWS", "remote", r.RemoteAddr)

	conn, err := that.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Error("failed to upgrade connection", "error", err)
		return
	}

	handle := &connection{
		conn: conn,
		send: make(chan []byte, sendBufferSize),
		done: make(chan struct{}),
	}

	that.events <- transport.Event{Kind: transport.Connected, Conn: handle}

	go handle.writePump(log)
	that.readPump(handle, log)

	that.events <- transport.Event{Kind: transport.Disconnected, Conn: handle}
}

func (that *Server) readPump(handle *connection, log *slog.Logger) {
	defer func() {
		if err := handle.Close(); err != nil {
			log.Warn("failed to close connection", "error", err)
		}
	}()

	_ = handle.conn.SetReadDeadline(time.Now().Add(pongWait))
	handle.conn.SetPongHandler(func(string) error {
		return handle.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		messageType, payload, err := handle.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Warn("connection read error", "error", err)
			}
			return
		}

		if messageType != websocket.TextMessage || len(payload) == 0 {
			continue
		}

		that.events <- transport.Event{
			Kind:    transport.MessageReceived,
			Conn:    handle,
			Payload: payload,
			Mode:    transport.ReliableOrdered,
		}
	}
}

// connection adapts one upgraded socket to the transport handle contract.
// Writes go through a buffered channel so a slow client never blocks the
// engine on unreliable sends.
type connection struct {
	conn *websocket.Conn
	send chan []byte
	done chan struct{}
	once sync.Once
}

func (that *connection) Send(payload []byte, mode transport.Mode) error {
	if mode == transport.Unreliable {
		select {
		case that.send <- payload:
		default:
			// buffer full, drop the record
		}
		return nil
	}

	select {
	case that.send <- payload:
		return nil
	case <-that.done:
		return ErrConnectionClosed
	}
}

func (that *connection) Close() error {
	that.once.Do(func() { close(that.done) })

	if err := that.conn.Close(); err != nil {
		return fmt.Errorf("failed to close connection: %w", err)
	}

	return nil
}

func (that *connection) RemoteAddr() string {
	return that.conn.RemoteAddr().String()
}

func (that *connection) writePump(log *slog.Logger) {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case payload := <-that.send:
			_ = that.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := that.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				log.Warn("failed to write record", "error", err)
				return
			}

		case <-ticker.C:
			_ = that.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := that.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}

		case <-that.done:
			return
		}
	}
}
