package session

import "errors"

var (
	ErrInvalidSelection = errors.New("no piece of the side to move on that square")
	ErrIllegalMove      = errors.New("illegal move")
	ErrGameAlreadyOver  = errors.New("game already over")
	ErrEmptyHistory     = errors.New("no snapshot in that direction")
)
