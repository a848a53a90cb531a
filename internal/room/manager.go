// Package room owns the lifecycle of game rooms: membership, board, turn
// order and the broadcasts that keep players and observers consistent.
package room

import (
	"log/slog"
	"strconv"
	"sync/atomic"

	"github.com/playforge/gameroom-backend/internal/entity"
	"github.com/playforge/gameroom-backend/internal/protocol"
	"github.com/playforge/gameroom-backend/internal/transport"
)

type sender interface {
	SendTo(id int, message string, mode transport.Mode)
	SendToAll(ids []int, message string, mode transport.Mode)
}

// Manager is the exclusive owner of all rooms. Every method runs on the
// single engine goroutine; mutation of one room is never concurrent with
// another operation on the same room.
type Manager struct {
	logger *slog.Logger
	sender sender
	rooms  map[string]*entity.Room

	// count mirrors len(rooms) for readers outside the engine goroutine.
	count atomic.Int64
}

func NewManager(logger *slog.Logger, sender sender) *Manager {
	return &Manager{
		logger: logger.With("component", "rooms"),
		sender: sender,
		rooms:  make(map[string]*entity.Room),
	}
}

// CreateOrJoin puts clientID into the named room, creating it first when
// absent. The first two clients become players; every later client is
// attached as an observer. When the second player arrives the game starts.
func (that *Manager) CreateOrJoin(name string, clientID int, mode transport.Mode) {
	log := that.logger.With("method", "CreateOrJoin", "room", name, "client_id", clientID)

	existingRoom, ok := that.rooms[name]
	if !ok {
		existingRoom = entity.NewRoom(name)
		that.rooms[name] = existingRoom
		that.count.Add(1)
		log.Info("room created")
	}

	if existingRoom.IsFull() {
		that.attachObserver(existingRoom, clientID)
		return
	}

	existingRoom.Players = append(existingRoom.Players, clientID)
	that.sender.SendTo(clientID, protocol.Format(protocol.GameRoomCreatedOrJoined, name, strconv.Itoa(len(existingRoom.Players))), mode)
	log.Info("player joined", "players", len(existingRoom.Players))

	if existingRoom.IsFull() {
		that.startGame(existingRoom)
	}
}

// ObserverJoin attaches clientID to an existing room as a non-playing
// observer. Joining a missing room is a logged no-op.
func (that *Manager) ObserverJoin(name string, clientID int) {
	log := that.logger.With("method", "ObserverJoin", "room", name, "client_id", clientID)

	existingRoom, ok := that.rooms[name]
	if !ok {
		log.Warn("room does not exist")
		return
	}

	that.attachObserver(existingRoom, clientID)
}

// attachObserver records the observer and replays the current board to it,
// cell by cell in row-major order, before the ObserverJoined confirmation.
// The replay order is part of the protocol contract.
func (that *Manager) attachObserver(room *entity.Room, clientID int) {
	log := that.logger.With("method", "attachObserver", "room", room.Name, "client_id", clientID)

	if room.PlayerIndex(clientID) >= 0 {
		log.Warn("client is already a player in this room")
		return
	}

	if room.IsObserver(clientID) {
		log.Warn("client is already observing this room")
		return
	}

	room.Observers[clientID] = struct{}{}

	for x := 0; x < entity.BoardSize; x++ {
		for y := 0; y < entity.BoardSize; y++ {
			mark := room.Board[x][y]
			if mark == entity.EmptyCell {
				continue
			}

			move := protocol.Format(protocol.PlayerMove, strconv.Itoa(x), strconv.Itoa(y), strconv.Itoa(mark))
			that.sender.SendTo(clientID, move, transport.ReliableOrdered)
		}
	}

	that.sender.SendTo(clientID, protocol.Format(protocol.ObserverJoined, room.Name), transport.ReliableOrdered)
	log.Info("observer joined", "observers", len(room.Observers))
}

// startGame transitions the room to ongoing: fresh board, first player's
// turn, and a StartGame record to each player with its own mark and turn
// flag.
func (that *Manager) startGame(room *entity.Room) {
	room.Board = entity.Board{}
	room.Status = entity.StatusOngoing
	room.TurnHolder = room.Players[0]

	for i, playerID := range room.Players {
		turnFlag := "0"
		if playerID == room.TurnHolder {
			turnFlag = "1"
		}

		start := protocol.Format(protocol.StartGame, room.Name, strconv.Itoa(entity.MarkOf(i)), turnFlag)
		that.sender.SendTo(playerID, start, transport.ReliableOrdered)
	}

	that.logger.Info("game started", "room", room.Name, "player_x", room.Players[0], "player_o", room.Players[1])
}

// Move applies one move for clientID. Every rule violation - missing room,
// game not in progress, out of turn, occupied cell, out-of-range coordinates -
// is a logged no-op with no reply to the mover.
func (that *Manager) Move(name string, clientID, x, y int) {
	log := that.logger.With("method", "Move", "room", name, "client_id", clientID)

	existingRoom, ok := that.rooms[name]
	if !ok {
		log.Warn("room does not exist")
		return
	}

	if !existingRoom.IsOngoing() {
		log.Warn("room has no game in progress")
		return
	}

	if clientID != existingRoom.TurnHolder {
		log.Warn("move out of turn", "turn_holder", existingRoom.TurnHolder)
		return
	}

	playerIndex := existingRoom.PlayerIndex(clientID)
	mark := entity.MarkOf(playerIndex)

	if err := existingRoom.Board.ApplyMove(x, y, mark); err != nil {
		log.Warn("move rejected", "error", err)
		return
	}

	members := existingRoom.Members()
	move := protocol.Format(protocol.PlayerMove, strconv.Itoa(x), strconv.Itoa(y), strconv.Itoa(mark))
	that.sender.SendToAll(members, move, transport.ReliableOrdered)

	switch {
	case existingRoom.Board.HasWin(mark):
		that.sender.SendToAll(members, protocol.Format(protocol.GameResult, strconv.Itoa(mark)), transport.ReliableOrdered)
		log.Info("game won", "mark", mark)
		that.Destroy(name)
	case existingRoom.Board.IsFull():
		that.sender.SendToAll(members, protocol.Format(protocol.GameResult, "0"), transport.ReliableOrdered)
		log.Info("game drawn")
		that.Destroy(name)
	default:
		existingRoom.TurnHolder = existingRoom.Players[1-playerIndex]

		for _, playerID := range existingRoom.Players {
			turnFlag := "0"
			if playerID == existingRoom.TurnHolder {
				turnFlag = "1"
			}
			that.sender.SendTo(playerID, protocol.Format(protocol.TurnUpdate, turnFlag), transport.ReliableOrdered)
		}
	}
}

// Relay forwards a free-text chat payload to every other member of the room,
// players and observers alike.
func (that *Manager) Relay(name string, senderID int, text string, mode transport.Mode) {
	log := that.logger.With("method", "Relay", "room", name, "client_id", senderID)

	existingRoom, ok := that.rooms[name]
	if !ok {
		log.Warn("room does not exist")
		return
	}

	message := protocol.Format(protocol.OpponentMessage, text)
	for _, memberID := range existingRoom.Members() {
		if memberID == senderID {
			continue
		}
		that.sender.SendTo(memberID, message, mode)
	}
}

// Leave removes clientID from the named room. A leaving player destroys the
// room for everyone; a leaving observer slips out silently.
func (that *Manager) Leave(name string, clientID int) {
	log := that.logger.With("method", "Leave", "room", name, "client_id", clientID)

	existingRoom, ok := that.rooms[name]
	if !ok {
		log.Warn("room does not exist")
		return
	}

	if existingRoom.PlayerIndex(clientID) >= 0 {
		that.sender.SendToAll(existingRoom.Members(), protocol.Format(protocol.GameRoomDestroyed), transport.ReliableOrdered)
		that.Destroy(name)
		return
	}

	if existingRoom.IsObserver(clientID) {
		delete(existingRoom.Observers, clientID)
		log.Info("observer left", "observers", len(existingRoom.Observers))
		return
	}

	log.Warn("client is not a member of this room")
}

// Disconnect scans all rooms for clientID after its connection dropped. A
// disconnected player destroys its room, notifying the remaining members; a
// room left with no players at all goes away silently. A disconnected
// observer is just removed.
func (that *Manager) Disconnect(clientID int) {
	log := that.logger.With("method", "Disconnect", "client_id", clientID)

	names := make([]string, 0, len(that.rooms))
	for name := range that.rooms {
		names = append(names, name)
	}

	for _, name := range names {
		existingRoom := that.rooms[name]

		playerIndex := existingRoom.PlayerIndex(clientID)
		if playerIndex >= 0 {
			existingRoom.Players = append(existingRoom.Players[:playerIndex], existingRoom.Players[playerIndex+1:]...)

			if len(existingRoom.Players) == 0 {
				log.Info("last player disconnected, destroying room silently", "room", name)
				that.Destroy(name)
				continue
			}

			that.sender.SendToAll(existingRoom.Members(), protocol.Format(protocol.GameRoomDestroyed), transport.ReliableOrdered)
			that.Destroy(name)
			continue
		}

		if existingRoom.IsObserver(clientID) {
			delete(existingRoom.Observers, clientID)
			log.Info("observer disconnected", "room", name)
		}
	}
}

// Destroy removes the room and with it board, turn, players and observers in
// one step. Destroying an absent room is a logged no-op.
func (that *Manager) Destroy(name string) {
	if _, ok := that.rooms[name]; !ok {
		that.logger.Warn("attempted to destroy a non-existent room", "room", name)
		return
	}

	delete(that.rooms, name)
	that.count.Add(-1)
	that.logger.Info("room destroyed", "room", name)
}

// Room returns the named room, or nil when absent.
func (that *Manager) Room(name string) *entity.Room {
	return that.rooms[name]
}

// Count returns the number of live rooms. Safe to call from any goroutine.
func (that *Manager) Count() int {
	return int(that.count.Load())
}
