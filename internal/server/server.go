// Package server runs the session engine: a single goroutine that drains
// connect, disconnect and message events from the transports and drives the
// account store and room manager. Because every event passes through this one
// goroutine, no room or connection state is ever mutated concurrently.
package server

import (
	"context"
	"log/slog"
	"strings"

	"github.com/playforge/gameroom-backend/internal/protocol"
	"github.com/playforge/gameroom-backend/internal/registry"
	"github.com/playforge/gameroom-backend/internal/repository"
	"github.com/playforge/gameroom-backend/internal/transport"
)

type roomManager interface {
	CreateOrJoin(name string, clientID int, mode transport.Mode)
	ObserverJoin(name string, clientID int)
	Move(name string, clientID, x, y int)
	Relay(name string, senderID int, text string, mode transport.Mode)
	Leave(name string, clientID int)
	Disconnect(clientID int)
}

type sender interface {
	SendTo(id int, message string, mode transport.Mode)
}

type Server struct {
	logger   *slog.Logger
	accounts repository.AccountRepository
	registry *registry.Registry
	rooms    roomManager
	sender   sender
	events   <-chan transport.Event
}

func New(logger *slog.Logger, accounts repository.AccountRepository, reg *registry.Registry, rooms roomManager, sender sender, events <-chan transport.Event) *Server {
	return &Server{
		logger:   logger.With("component", "engine"),
		accounts: accounts,
		registry: reg,
		rooms:    rooms,
		sender:   sender,
		events:   events,
	}
}

// Run drains transport events until the context is canceled or the event
// channel is closed.
func (that *Server) Run(ctx context.Context) error {
	that.logger.Info("engine started")

	for {
		select {
		case <-ctx.Done():
			that.logger.Info("engine stopped")
			return nil
		case event, ok := <-that.events:
			if !ok {
				that.logger.Info("event channel closed, engine stopped")
				return nil
			}

			that.handleEvent(ctx, event)
		}
	}
}

func (that *Server) handleEvent(ctx context.Context, event transport.Event) {
	switch event.Kind {
	case transport.Connected:
		clientID := that.registry.Register(event.Conn)
		that.logger.Info("client connected", "client_id", clientID, "remote", event.Conn.RemoteAddr())
		that.sendAccountList(ctx, clientID, transport.ReliableOrdered)

	case transport.Disconnected:
		clientID, ok := that.registry.Resolve(event.Conn)
		if !ok {
			that.logger.Warn("disconnect from unknown connection", "remote", event.Conn.RemoteAddr())
			return
		}

		username := that.registry.Username(clientID)
		that.rooms.Disconnect(clientID)
		that.registry.Unregister(clientID)
		that.logger.Info("client disconnected", "client_id", clientID, "username", username)

	case transport.MessageReceived:
		clientID, ok := that.registry.Resolve(event.Conn)
		if !ok {
			that.logger.Warn("message from unknown connection", "remote", event.Conn.RemoteAddr())
			return
		}

		that.dispatch(ctx, clientID, strings.TrimRight(string(event.Payload), "\r\n"), event.Mode)
	}
}

func (that *Server) sendAccountList(ctx context.Context, clientID int, mode transport.Mode) {
	log := that.logger.With("method", "sendAccountList", "client_id", clientID)

	all, err := that.accounts.ListAll(ctx)
	if err != nil {
		log.Error("failed to list accounts", "error", err)
		return
	}

	pairs := make([]string, 0, len(all))
	for _, account := range all {
		pairs = append(pairs, account.Username+":"+account.Password)
	}

	that.sender.SendTo(clientID, protocol.Format(protocol.AccountList, strings.Join(pairs, ",")), mode)
}
