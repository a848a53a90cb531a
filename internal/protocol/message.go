// Package protocol implements the comma-separated text records exchanged with
// clients. Every record starts with an integer signifier identifying the
// command or reply kind.
package protocol

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Client to server signifiers.
const (
	CmdCreateAccount         = 1
	CmdLogin                 = 2
	CmdDeleteAccount         = 3
	CmdCreateOrJoinGameRoom  = 4
	CmdLeaveGameRoom         = 5
	CmdSendMessageToOpponent = 6
	CmdPlayerMove            = 11
	CmdRequestAccountList    = 13
	CmdObserverJoin          = 14
)

// Server to client signifiers.
const (
	AccountCreated          = 1
	AccountCreationFailed   = 2
	LoginSuccessful         = 3
	LoginFailed             = 4
	AccountList             = 5
	AccountDeleted          = 6
	AccountDeletionFailed   = 7
	GameRoomCreatedOrJoined = 8
	StartGame               = 9
	OpponentMessage         = 10
	PlayerMove              = 11
	GameResult              = 12
	TurnUpdate              = 13
	ObserverJoined          = 14
	GameRoomDestroyed       = 16
)

var ErrBadSignifier = errors.New("message has no parseable signifier")

// Message is one parsed inbound record: the signifier and the remaining
// fields in wire order.
type Message struct {
	Signifier int
	Fields    []string
}

// Parse splits a raw record into signifier and fields. Field contents are not
// unescaped; embedded commas split free-text fields, which handlers that
// accept free text undo by re-joining their tail fields.
func Parse(raw string) (*Message, error) {
	parts := strings.Split(raw, ",")

	signifier, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrBadSignifier, parts[0])
	}

	return &Message{
		Signifier: signifier,
		Fields:    parts[1:],
	}, nil
}

// Format renders an outbound record: the signifier followed by the fields,
// comma-separated.
func Format(signifier int, fields ...string) string {
	if len(fields) == 0 {
		return strconv.Itoa(signifier)
	}

	return strconv.Itoa(signifier) + "," + strings.Join(fields, ",")
}
