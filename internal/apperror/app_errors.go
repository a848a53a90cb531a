package apperror

import "errors"

var (
	ErrCellOccupied  = errors.New("cell is already occupied")
	ErrOutOfRange    = errors.New("cell coordinates are out of range")
	ErrNotYourTurn   = errors.New("it's not your turn")
	ErrRoomNotFound  = errors.New("room not found")
	ErrRoomNotActive = errors.New("room has no game in progress")

	ErrAccountExists   = errors.New("account already exists")
	ErrAccountNotFound = errors.New("account not found")
	ErrWrongPassword   = errors.New("wrong password")
)
