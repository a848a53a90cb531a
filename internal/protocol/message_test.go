package protocol

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	t.Run("Parses signifier and fields", func(t *testing.T) {
		message, err := Parse("11,room1,0,2")

		require.NoError(t, err)
		assert.Equal(t, CmdPlayerMove, message.Signifier)
		assert.Equal(t, []string{"room1", "0", "2"}, message.Fields)
	})

	t.Run("Parses a bare signifier", func(t *testing.T) {
		message, err := Parse("13")

		require.NoError(t, err)
		assert.Equal(t, CmdRequestAccountList, message.Signifier)
		assert.Empty(t, message.Fields)
	})

	t.Run("Error on non-numeric signifier", func(t *testing.T) {
		_, err := Parse("hello,world")

		require.ErrorIs(t, err, ErrBadSignifier)
	})

	t.Run("Error on empty record", func(t *testing.T) {
		_, err := Parse("")

		require.ErrorIs(t, err, ErrBadSignifier)
	})

	t.Run("Embedded commas split free-text fields", func(t *testing.T) {
		// no escaping on the wire; handlers that accept free text re-join
		// their tail fields
		message, err := Parse("6,room1,hello, world")

		require.NoError(t, err)
		assert.Equal(t, []string{"room1", "hello", " world"}, message.Fields)
	})
}

func TestFormat(t *testing.T) {
	t.Run("Formats signifier with fields", func(t *testing.T) {
		assert.Equal(t, "9,room1,1,1", Format(StartGame, "room1", "1", "1"))
	})

	t.Run("Formats a bare signifier", func(t *testing.T) {
		assert.Equal(t, "16", Format(GameRoomDestroyed))
	})
}
