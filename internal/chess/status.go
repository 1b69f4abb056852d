package chess

import (
	"errors"
	"fmt"
	"strings"
)

// Status is the lifecycle state of a position or game.
type Status uint8

const (
	Ongoing Status = iota
	Check
	Checkmate
	Stalemate
	Resigned
	KingCaptured
)

var statusNames = [...]string{
	Ongoing:      "ongoing",
	Check:        "check",
	Checkmate:    "checkmate",
	Stalemate:    "stalemate",
	Resigned:     "resigned",
	KingCaptured: "king_captured",
}

func (s Status) String() string {
	if int(s) < len(statusNames) {
		return statusNames[s]
	}
	return fmt.Sprintf("status(%d)", s)
}

// Terminal reports whether no further moves are accepted in this state.
func (s Status) Terminal() bool {
	return s != Ongoing && s != Check
}

var ErrUnknownStatus = errors.New("unknown status")

func ParseStatus(raw string) (Status, error) {
	v := strings.ToLower(strings.TrimSpace(raw))
	for i, name := range statusNames {
		if name == v {
			return Status(i), nil
		}
	}
	return Ongoing, fmt.Errorf("%w: %q", ErrUnknownStatus, raw)
}
