// Package broadcast fans formatted records out to connections through the
// transport channel.
package broadcast

import (
	"log/slog"

	"github.com/playforge/gameroom-backend/internal/transport"
)

type connResolver interface {
	Handle(id int) (transport.Conn, bool)
}

type Broadcaster struct {
	logger   *slog.Logger
	resolver connResolver
}

func New(logger *slog.Logger, resolver connResolver) *Broadcaster {
	return &Broadcaster{
		logger:   logger.With("component", "broadcaster"),
		resolver: resolver,
	}
}

// SendTo delivers one record to one client. An unresolvable ID or a failed
// send is logged and swallowed; nothing here is fatal.
func (that *Broadcaster) SendTo(id int, message string, mode transport.Mode) {
	handle, ok := that.resolver.Handle(id)
	if !ok {
		that.logger.Warn("connection not found, dropping message", "client_id", id)
		return
	}

	if err := handle.Send([]byte(message), mode); err != nil {
		that.logger.Error("failed to send message", "client_id", id, "mode", mode.String(), "error", err)
	}
}

// SendToAll delivers one record to every listed client. Failures are skipped,
// never fatal to the batch.
func (that *Broadcaster) SendToAll(ids []int, message string, mode transport.Mode) {
	for _, id := range ids {
		that.SendTo(id, message, mode)
	}
}
