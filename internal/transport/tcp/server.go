// Package tcp serves the text protocol over plain TCP, one newline-delimited
// record per message. TCP is the reliable-ordered pipeline; sends requested
// as Unreliable go over the same socket but are fire-and-forget.
package tcp

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"sync"

	"github.com/playforge/gameroom-backend/internal/transport"
)

type Server struct {
	logger *slog.Logger
	events chan<- transport.Event
}

func New(logger *slog.Logger, events chan<- transport.Event) *Server {
	return &Server{
		logger: logger.With("component", "tcp"),
		events: events,
	}
}

// Start accepts connections until the context is canceled. Each connection
// gets its own reader goroutine; all of them funnel into one event channel.
func (that *Server) Start(ctx context.Context, port string) error {
	listener, err := net.Listen("tcp", ":"+port)
	if err != nil {
		return fmt.Errorf("failed to listen on port %s: %w", port, err)
	}

	go func() {
		<-ctx.Done()
		if err := listener.Close(); err != nil {
			that.logger.Error("failed to close listener", "error", err)
		}
	}()

	that.logger.Info("TCP server listening", "port", port)

	for {
		conn, err := listener.Accept()
		if err != nil {
			if errors.Is(err, net.ErrClosed) {
				return nil
			}
			return fmt.Errorf("failed to accept connection: %w", err)
		}

		go that.handleConnection(conn)
	}
}

func (that *Server) handleConnection(conn net.Conn) {
	log := that.logger.With("method", "handleConnection", "remote", conn.RemoteAddr().String())

	handle := &connection{conn: conn}
	that.events <- transport.Event{Kind: transport.Connected, Conn: handle}

	scanner := bufio.NewScanner(conn)
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}

		that.events <- transport.Event{
			Kind:    transport.MessageReceived,
			Conn:    handle,
			Payload: []byte(line),
			Mode:    transport.ReliableOrdered,
		}
	}

	if err := scanner.Err(); err != nil {
		log.Warn("connection read error", "error", err)
	}

	that.events <- transport.Event{Kind: transport.Disconnected, Conn: handle}

	if err := conn.Close(); err != nil && !errors.Is(err, net.ErrClosed) {
		log.Error("failed to close connection", "error", err)
	}
}

// connection adapts one accepted socket to the transport handle contract.
type connection struct {
	conn net.Conn
	mu   sync.Mutex
}

func (that *connection) Send(payload []byte, mode transport.Mode) error {
	record := make([]byte, 0, len(payload)+1)
	record = append(record, payload...)
	record = append(record, '\n')

	that.mu.Lock()
	_, err := that.conn.Write(record)
	that.mu.Unlock()

	if mode == transport.Unreliable {
		return nil
	}

	if err != nil {
		return fmt.Errorf("failed to write record: %w", err)
	}

	return nil
}

func (that *connection) Close() error {
	if err := that.conn.Close(); err != nil {
		return fmt.Errorf("failed to close connection: %w", err)
	}

	return nil
}

func (that *connection) RemoteAddr() string {
	return that.conn.RemoteAddr().String()
}
