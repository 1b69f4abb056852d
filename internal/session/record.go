package session

import (
	"fmt"

	"github.com/park285/gamehub/internal/chess"
	"github.com/park285/gamehub/internal/msgcat"
)

type Kind uint8

const (
	KindMove Kind = iota
	KindResign
)

func (k Kind) String() string {
	if k == KindResign {
		return "resign"
	}
	return "move"
}

// MoveRecord is one entry of the move log. Resignations carry no move and
// leave the board untouched.
type MoveRecord struct {
	Kind       Kind
	Move       chess.Move
	Piece      chess.Piece
	Captured   chess.Piece
	Check      bool
	Annotation string
	Note       string
}

// HasCapture reports whether the move took a piece.
func (r MoveRecord) HasCapture() bool { return !r.Captured.IsEmpty() }

// Notes renders move log text by message key. *msgcat.Catalog satisfies it.
type Notes interface {
	Render(key string, data any) (string, error)
}

func defaultNotes() Notes { return msgcat.Default() }

func render(n Notes, key string, data map[string]any, fallback string) string {
	if n == nil {
		return fallback
	}
	out, err := n.Render(key, data)
	if err != nil || out == "" {
		return fallback
	}
	return out
}

func annotate(n Notes, p chess.Piece, m chess.Move) string {
	from, to := m.From.String(), m.To.String()
	return render(n, "session.move",
		map[string]any{"Piece": p.Letter(), "From": from, "To": to},
		fmt.Sprintf("%s%s → %s", p.Letter(), from, to))
}

// note builds the suffix for a position reached by mover's move.
func note(n Notes, status chess.Status, mover chess.Color) string {
	switch status {
	case chess.Check:
		c := mover.Opposite().Title()
		return render(n, "session.note.check", map[string]any{"Color": c}, c+" is in check!")
	case chess.Checkmate:
		w := mover.Title()
		return render(n, "session.note.checkmate", map[string]any{"Winner": w}, w+" wins by checkmate!")
	case chess.Stalemate:
		return render(n, "session.note.stalemate", nil, "Stalemate! The game is a draw.")
	case chess.KingCaptured:
		w := mover.Title()
		return render(n, "session.note.king_captured", map[string]any{"Winner": w}, w+" captured the king!")
	case chess.Resigned:
		c := mover.Title()
		return render(n, "session.note.resigned", map[string]any{"Color": c}, c+" surrendered")
	}
	return ""
}
