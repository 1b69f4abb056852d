package chessdto

type MaterialScore struct {
	White int
	Black int
}

// CapturedPieces lists piece letters taken by each side.
type CapturedPieces struct {
	White []string
	Black []string
}

// SessionState is the read-only projection of a hub game for presenters.
type SessionState struct {
	GameID      string
	Mode        string
	Board       [8][8]string // row 0 is rank 8
	FEN         string
	Turn        string
	Status      string
	Winner      string
	Check       bool
	Moves       []string
	LastMove    string
	Captured    CapturedPieces
	Material    MaterialScore
	Step        int
	Plies       int
	CanUndo     bool
	CanRedo     bool
	CPUColor    string
	CPUThinking bool
}

// Finished reports whether the game has reached a terminal status.
func (s *SessionState) Finished() bool {
	if s == nil {
		return false
	}
	switch s.Status {
	case "", "ongoing", "check":
		return false
	}
	return true
}
