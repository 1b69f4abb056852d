package domain

import "time"

// GameRecord is the archived summary of a finished game.
type GameRecord struct {
	ID          string        `json:"id"`
	Mode        string        `json:"mode"`
	CPUColor    string        `json:"cpu_color,omitempty"`
	StartFEN    string        `json:"start_fen"`
	FinalFEN    string        `json:"final_fen"`
	Result      string        `json:"result"` // white, black or draw
	Method      string        `json:"method"` // terminal status name
	MovesUCI    []string      `json:"moves_uci"`
	MovesSAN    []string      `json:"moves_san,omitempty"`
	Annotations []string      `json:"annotations"`
	ECOCode     string        `json:"eco_code,omitempty"`
	ECOTitle    string        `json:"eco_title,omitempty"`
	PGN         string        `json:"pgn"`
	StartedAt   time.Time     `json:"started_at"`
	EndedAt     time.Time     `json:"ended_at"`
	Duration    time.Duration `json:"duration"`
}

// Plies counts the board moves of the game.
func (r *GameRecord) Plies() int {
	if r == nil {
		return 0
	}
	return len(r.MovesUCI)
}
