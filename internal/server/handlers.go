package server

import (
	"context"
	"strconv"
	"strings"

	"github.com/playforge/gameroom-backend/internal/protocol"
	"github.com/playforge/gameroom-backend/internal/transport"
)

// dispatch parses one inbound record and routes it to its handler. A record
// with an unparseable signifier, an unknown signifier or the wrong field
// count is dropped with a warning; the connection stays up and no reply is
// sent.
func (that *Server) dispatch(ctx context.Context, clientID int, raw string, mode transport.Mode) {
	log := that.logger.With("method", "dispatch", "client_id", clientID)

	message, err := protocol.Parse(raw)
	if err != nil {
		log.Warn("dropping unparseable message", "error", err)
		return
	}

	fields := message.Fields

	switch message.Signifier {
	case protocol.CmdCreateAccount:
		if len(fields) != 2 {
			log.Warn("dropping CreateAccount with wrong field count", "fields", len(fields))
			return
		}
		that.handleCreateAccount(ctx, clientID, fields[0], fields[1], mode)

	case protocol.CmdLogin:
		if len(fields) != 2 {
			log.Warn("dropping Login with wrong field count", "fields", len(fields))
			return
		}
		that.handleLogin(ctx, clientID, fields[0], fields[1], mode)

	case protocol.CmdDeleteAccount:
		if len(fields) != 2 {
			log.Warn("dropping DeleteAccount with wrong field count", "fields", len(fields))
			return
		}
		that.handleDeleteAccount(ctx, clientID, fields[0], fields[1], mode)

	case protocol.CmdCreateOrJoinGameRoom:
		if len(fields) != 1 {
			log.Warn("dropping CreateOrJoinGameRoom with wrong field count", "fields", len(fields))
			return
		}
		that.rooms.CreateOrJoin(fields[0], clientID, mode)

	case protocol.CmdLeaveGameRoom:
		if len(fields) != 1 {
			log.Warn("dropping LeaveGameRoom with wrong field count", "fields", len(fields))
			return
		}
		that.rooms.Leave(fields[0], clientID)

	case protocol.CmdSendMessageToOpponent:
		if len(fields) < 2 {
			log.Warn("dropping SendMessageToOpponent with wrong field count", "fields", len(fields))
			return
		}
		// free text may contain commas; everything after the room name is
		// the payload
		that.rooms.Relay(fields[0], clientID, strings.Join(fields[1:], ","), mode)

	case protocol.CmdPlayerMove:
		if len(fields) != 3 {
			log.Warn("dropping PlayerMove with wrong field count", "fields", len(fields))
			return
		}
		that.handlePlayerMove(clientID, fields[0], fields[1], fields[2])

	case protocol.CmdRequestAccountList:
		if len(fields) != 0 {
			log.Warn("dropping RequestAccountList with wrong field count", "fields", len(fields))
			return
		}
		that.sendAccountList(ctx, clientID, mode)

	case protocol.CmdObserverJoin:
		if len(fields) != 1 {
			log.Warn("dropping ObserverJoin with wrong field count", "fields", len(fields))
			return
		}
		that.rooms.ObserverJoin(fields[0], clientID)

	default:
		log.Warn("dropping message with unknown signifier", "signifier", message.Signifier)
	}
}

func (that *Server) handleCreateAccount(ctx context.Context, clientID int, username, password string, mode transport.Mode) {
	log := that.logger.With("method", "handleCreateAccount", "client_id", clientID, "username", username)

	if err := that.accounts.Create(ctx, username, password); err != nil {
		log.Warn("account creation failed", "error", err)
		that.sender.SendTo(clientID, protocol.Format(protocol.AccountCreationFailed), mode)
		return
	}

	log.Info("account created")
	that.sender.SendTo(clientID, protocol.Format(protocol.AccountCreated), mode)
}

func (that *Server) handleLogin(ctx context.Context, clientID int, username, password string, mode transport.Mode) {
	log := that.logger.With("method", "handleLogin", "client_id", clientID, "username", username)

	if err := that.accounts.Validate(ctx, username, password); err != nil {
		log.Warn("login failed", "error", err)
		that.sender.SendTo(clientID, protocol.Format(protocol.LoginFailed), mode)
		return
	}

	that.registry.SetUsername(clientID, username)
	log.Info("login successful")
	that.sender.SendTo(clientID, protocol.Format(protocol.LoginSuccessful), mode)
}

func (that *Server) handleDeleteAccount(ctx context.Context, clientID int, username, password string, mode transport.Mode) {
	log := that.logger.With("method", "handleDeleteAccount", "client_id", clientID, "username", username)

	if err := that.accounts.Delete(ctx, username, password); err != nil {
		log.Warn("account deletion failed", "error", err)
		that.sender.SendTo(clientID, protocol.Format(protocol.AccountDeletionFailed, username), mode)
		return
	}

	log.Info("account deleted")
	that.sender.SendTo(clientID, protocol.Format(protocol.AccountDeleted, username), mode)
}

func (that *Server) handlePlayerMove(clientID int, roomName, rawX, rawY string) {
	log := that.logger.With("method", "handlePlayerMove", "client_id", clientID, "room", roomName)

	x, err := strconv.Atoi(rawX)
	if err != nil {
		log.Warn("dropping PlayerMove with bad x coordinate", "x", rawX)
		return
	}

	y, err := strconv.Atoi(rawY)
	if err != nil {
		log.Warn("dropping PlayerMove with bad y coordinate", "y", rawY)
		return
	}

	that.rooms.Move(roomName, clientID, x, y)
}
