package hub

import (
	"time"

	"github.com/park285/gamehub/internal/chess"
	"github.com/park285/gamehub/internal/domain"
	"github.com/park285/gamehub/internal/notation"
	"github.com/park285/gamehub/internal/session"
	"github.com/park285/gamehub/pkg/chessdto"
)

// RecordMeta describes the game around a history.
type RecordMeta struct {
	ID        string
	Mode      Mode
	CPUColor  *chess.Color
	StartedAt time.Time
	EndedAt   time.Time
}

// BuildRecord summarises the current snapshot of h and the moves leading to it.
// SAN is filled only as far as the notation replay gets.
func BuildRecord(meta RecordMeta, h *session.History) *domain.GameRecord {
	start, _ := h.At(0)
	cur := h.Current()
	rec := &domain.GameRecord{
		ID:          meta.ID,
		Mode:        string(meta.Mode),
		FinalFEN:    cur.FEN(),
		Result:      resultOf(cur),
		Method:      cur.Status().String(),
		Annotations: cur.Annotations(),
		StartedAt:   meta.StartedAt,
		EndedAt:     meta.EndedAt,
	}
	if meta.CPUColor != nil {
		rec.CPUColor = meta.CPUColor.String()
	}
	if !rec.EndedAt.IsZero() && !rec.StartedAt.IsZero() {
		if d := rec.EndedAt.Sub(rec.StartedAt); d > 0 {
			rec.Duration = d
		}
	}
	for _, r := range cur.Records() {
		if r.Kind == session.KindMove {
			rec.MovesUCI = append(rec.MovesUCI, r.Move.String())
		}
	}

	standard := start.Board() == chess.StandardBoard() && start.SideToMove() == chess.White
	if !standard {
		rec.StartFEN = start.FEN()
	}
	replay, err := notation.Annotate(rec.StartFEN, rec.MovesUCI)
	rec.MovesSAN = replay.SAN
	rec.ECOCode, rec.ECOTitle = replay.ECOCode, replay.ECOTitle

	movetext := rec.MovesSAN
	if err != nil || len(movetext) != len(rec.MovesUCI) {
		movetext = rec.MovesUCI
	}
	white, black := "Player", "Player"
	if meta.CPUColor != nil {
		if *meta.CPUColor == chess.White {
			white = "CPU"
		} else {
			black = "CPU"
		}
	}
	rec.PGN = notation.PGN(notation.Header{
		Date:        rec.EndedAt,
		White:       white,
		Black:       black,
		StartFEN:    rec.StartFEN,
		Termination: rec.Method,
		ECO:         rec.ECOCode,
		Opening:     rec.ECOTitle,
	}, movetext, rec.Result)
	return rec
}

func resultOf(s *session.GameSession) string {
	if w, ok := s.Winner(); ok {
		return w.String()
	}
	if s.Status() == chess.Stalemate {
		return "draw"
	}
	return ""
}

func recordDTO(rec *domain.GameRecord) chessdto.GameRecord {
	return chessdto.GameRecord{
		ID:        rec.ID,
		Mode:      rec.Mode,
		Result:    rec.Result,
		Method:    rec.Method,
		Plies:     rec.Plies(),
		MovesSAN:  append([]string(nil), rec.MovesSAN...),
		MovesUCI:  append([]string(nil), rec.MovesUCI...),
		ECOCode:   rec.ECOCode,
		ECOTitle:  rec.ECOTitle,
		PGN:       rec.PGN,
		StartedAt: rec.StartedAt,
		EndedAt:   rec.EndedAt,
		Duration:  rec.Duration,
	}
}
