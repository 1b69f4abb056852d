package chessdto

import "time"

// GameRecord summarises a finished game.
type GameRecord struct {
	ID        string
	Mode      string
	Result    string
	Method    string
	Plies     int
	MovesSAN  []string
	MovesUCI  []string
	ECOCode   string
	ECOTitle  string
	PGN       string
	StartedAt time.Time
	EndedAt   time.Time
	Duration  time.Duration
}
