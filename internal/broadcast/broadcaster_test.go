package broadcast

import (
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/playforge/gameroom-backend/internal/transport"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeConn struct {
	sent    []string
	modes   []transport.Mode
	sendErr error
}

func (that *fakeConn) Send(payload []byte, mode transport.Mode) error {
	if that.sendErr != nil {
		return that.sendErr
	}

	that.sent = append(that.sent, string(payload))
	that.modes = append(that.modes, mode)
	return nil
}

func (that *fakeConn) Close() error       { return nil }
func (that *fakeConn) RemoteAddr() string { return "fake" }

type fakeResolver struct {
	conns map[int]transport.Conn
}

func (that *fakeResolver) Handle(id int) (transport.Conn, bool) {
	conn, ok := that.conns[id]
	return conn, ok
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestBroadcaster_SendTo(t *testing.T) {
	t.Run("Delivers the record on the requested mode", func(t *testing.T) {
		conn := &fakeConn{}
		caster := New(discardLogger(), &fakeResolver{conns: map[int]transport.Conn{5: conn}})

		caster.SendTo(5, "9,room1,1,1", transport.ReliableOrdered)

		require.Equal(t, []string{"9,room1,1,1"}, conn.sent)
		assert.Equal(t, []transport.Mode{transport.ReliableOrdered}, conn.modes)
	})

	t.Run("Unresolvable ID is skipped, not fatal", func(t *testing.T) {
		caster := New(discardLogger(), &fakeResolver{conns: map[int]transport.Conn{}})

		caster.SendTo(99, "16", transport.ReliableOrdered)
	})

	t.Run("Send failure is swallowed", func(t *testing.T) {
		conn := &fakeConn{sendErr: errors.New("broken pipe")}
		caster := New(discardLogger(), &fakeResolver{conns: map[int]transport.Conn{5: conn}})

		caster.SendTo(5, "16", transport.ReliableOrdered)
	})
}

func TestBroadcaster_SendToAll(t *testing.T) {
	t.Run("A missing member does not break the batch", func(t *testing.T) {
		first := &fakeConn{}
		third := &fakeConn{}
		caster := New(discardLogger(), &fakeResolver{conns: map[int]transport.Conn{
			1: first,
			3: third,
		}})

		caster.SendToAll([]int{1, 2, 3}, "16", transport.ReliableOrdered)

		assert.Equal(t, []string{"16"}, first.sent)
		assert.Equal(t, []string{"16"}, third.sent)
	})
}
