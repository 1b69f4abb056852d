package hub

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Mode selects who plays the second side of a game.
type Mode string

const (
	ModeCPU    Mode = "cpu"
	ModePlayer Mode = "player"
)

var (
	ErrGameNotFound = errors.New("game not found")
	ErrNotYourTurn  = errors.New("the cpu is to move")
	ErrBadSquare    = errors.New("invalid square")
	ErrUnknownMode  = errors.New("unknown game mode")
)

func ParseMode(raw string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(raw))) {
	case ModeCPU, "":
		return ModeCPU, nil
	case ModePlayer, "pvp", "hotseat":
		return ModePlayer, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownMode, raw)
}

// Timer is the handle of a scheduled CPU move. *time.Timer satisfies it.
type Timer interface {
	Stop() bool
}

// Scheduler runs f once after d. time.AfterFunc is the default.
type Scheduler func(d time.Duration, f func()) Timer

func realScheduler(d time.Duration, f func()) Timer { return time.AfterFunc(d, f) }
