package entity

const (
	StatusWaiting  = "waiting"
	StatusOngoing  = "ongoing"
	MaxRoomPlayers = 2
)

// Room is a named session holding up to two players, any number of observers
// and one board. Board, turn, players and observers live and die together
// with the room entry.
type Room struct {
	Name       string
	Players    []int
	Observers  map[int]struct{}
	Board      Board
	TurnHolder int
	Status     string
}

func NewRoom(name string) *Room {
	return &Room{
		Name:      name,
		Players:   make([]int, 0, MaxRoomPlayers),
		Observers: make(map[int]struct{}),
		Status:    StatusWaiting,
	}
}

// PlayerIndex returns the join-order index of clientID, or -1 if clientID is
// not a player. Index 0 plays mark 1 (X), index 1 plays mark 2 (O).
func (that *Room) PlayerIndex(clientID int) int {
	for i, id := range that.Players {
		if id == clientID {
			return i
		}
	}

	return -1
}

func (that *Room) IsObserver(clientID int) bool {
	_, ok := that.Observers[clientID]
	return ok
}

func (that *Room) IsFull() bool {
	return len(that.Players) >= MaxRoomPlayers
}

func (that *Room) IsOngoing() bool {
	return that.Status == StatusOngoing
}

// Members returns player IDs in join order followed by observer IDs.
func (that *Room) Members() []int {
	members := make([]int, 0, len(that.Players)+len(that.Observers))
	members = append(members, that.Players...)
	for id := range that.Observers {
		members = append(members, id)
	}

	return members
}

// MarkOf returns the mark the player at index plays.
func MarkOf(playerIndex int) int {
	if playerIndex == 0 {
		return MarkX
	}
	return MarkO
}
